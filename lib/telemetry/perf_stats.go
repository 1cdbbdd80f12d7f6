package telemetry

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("eplgraph.perf_stats")
var cpuGauge, _ = meter.Float64Gauge("cpu_usage")
var rssGauge, _ = meter.Int64Gauge("rss_mb")
var goroutineGauge, _ = meter.Int64Gauge("goroutine_count")

// Usage is a snapshot of the resources used by this process.
type Usage struct {
	// CPUPercent is averaged over the lifetime of the process.
	CPUPercent float64
	RssMB      int64
	Goroutines int
}

func ReadUsage() (Usage, error) {
	usage := Usage{Goroutines: runtime.NumGoroutine()}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return usage, err
	}
	usage.CPUPercent, err = proc.CPUPercent()
	if err != nil {
		return usage, err
	}
	mem, err := proc.MemoryInfo()
	if err != nil {
		return usage, err
	}
	usage.RssMB = int64(mem.RSS / 1_000_000)
	return usage, nil
}

// LogValue lets a Usage be passed straight to slog.
func (u Usage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("cpu_percent", u.CPUPercent),
		slog.Int64("rss_mb", u.RssMB),
		slog.Int("goroutines", u.Goroutines),
	)
}

// InstrumentPerfStats records the process usage every `interval` until ctx is
// done. It only makes sense once a meter provider is installed.
func InstrumentPerfStats(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				usage, err := ReadUsage()
				if err != nil {
					slog.Debug("failed to read process usage", "err", err)
					continue
				}
				cpuGauge.Record(ctx, usage.CPUPercent)
				rssGauge.Record(ctx, usage.RssMB)
				goroutineGauge.Record(ctx, int64(usage.Goroutines))
			case <-ctx.Done():
				return
			}
		}
	}()
}
