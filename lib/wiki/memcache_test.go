package wiki

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type mapCache struct {
	pages map[string][]byte
	gets  int
}

func (m *mapCache) Get(_ context.Context, url string) ([]byte, bool, error) {
	m.gets++
	body, ok := m.pages[url]
	return body, ok, nil
}

func (m *mapCache) Put(_ context.Context, url string, body []byte) error {
	m.pages[url] = body
	return nil
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	next := &mapCache{pages: map[string][]byte{}}
	cache := NewMemoryCache(8, time.Hour, next)

	_, ok, err := cache.Get(ctx, "https://wiki.test/wiki/Arsenal_F.C.")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, cache.Put(ctx, "https://wiki.test/wiki/Arsenal_F.C.", []byte("arsenal")))
	require.Equal(t, []byte("arsenal"), next.pages["https://wiki.test/wiki/Arsenal_F.C."])

	gets := next.gets
	body, ok, err := cache.Get(ctx, "https://wiki.test/wiki/Arsenal_F.C.#History")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("arsenal"), body)
	require.Equal(t, gets, next.gets)
}

func TestMemoryCacheFillsFromNext(t *testing.T) {
	ctx := context.Background()
	next := &mapCache{pages: map[string][]byte{
		"https://wiki.test/wiki/Everton_F.C.": []byte("everton"),
	}}
	cache := NewMemoryCache(8, time.Hour, next)

	for i := 0; i < 3; i++ {
		body, ok, err := cache.Get(ctx, "https://wiki.test/wiki/Everton_F.C.")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte("everton"), body)
	}
	require.Equal(t, 1, next.gets)
}

func TestMemoryCacheAlone(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(1, time.Hour, nil)
	require.NoError(t, cache.Put(ctx, "https://wiki.test/wiki/A", []byte("a")))
	require.NoError(t, cache.Put(ctx, "https://wiki.test/wiki/B", []byte("b")))

	_, ok, _ := cache.Get(ctx, "https://wiki.test/wiki/A")
	require.False(t, ok)
	_, ok, _ = cache.Get(ctx, "https://wiki.test/wiki/B")
	require.True(t, ok)
}
