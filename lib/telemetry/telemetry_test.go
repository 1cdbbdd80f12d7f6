package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := Setup(context.Background(), "test", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestReadUsage(t *testing.T) {
	usage, err := ReadUsage()
	require.NoError(t, err)
	require.Greater(t, usage.RssMB, int64(0))
	require.GreaterOrEqual(t, usage.Goroutines, 1)
}
