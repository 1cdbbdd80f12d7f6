package pipeline

import (
	"context"
	"log/slog"
	"time"

	"eplgraph/lib/serviceutil"
	libtelemetry "eplgraph/lib/telemetry"
)

// Job is one stage of the pipeline.
type Job func(ctx context.Context, env Env) error

// Main is the body of a single job entry point: it sets up the environment,
// runs `job` until done or interrupted and exits non-zero on failure.
func Main(service string, job Job) {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()

	env, cleanup, err := Setup(ctx, service)
	if err != nil {
		serviceutil.Fatal("failed to set up "+service, err)
	}

	t1 := time.Now()
	err = job(ctx, env)
	t2 := time.Now()
	cleanup()
	if err != nil {
		serviceutil.Fatal(service+" failed", err)
	}

	usage, err := libtelemetry.ReadUsage()
	if err != nil {
		slog.Debug("failed to read process usage", "err", err)
	}
	slog.Info("job time", "seconds", t2.Sub(t1).Seconds(), "usage", usage)
}
