package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"eplgraph/internal/components/chrono"
	"eplgraph/internal/components/telemetry"
	configsqlite "eplgraph/lib/configutil/sqlite"
	"eplgraph/lib/restyutil"
	libtelemetry "eplgraph/lib/telemetry"
	"eplgraph/lib/wiki"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
)

// pages kept in memory for the length of a run
const memoryCacheSize = 256

// Env is everything a job needs to run. Jobs never reach for globals, tests
// build an Env with NewEnv and a fake fetcher.
type Env struct {
	Config Config
	Paths  Paths
	// Seasons is the crawl window, most recent first.
	Seasons []string
	Fetcher wiki.Fetcher
	Tel     telemetry.API
	RunID   string
}

func NewEnv(cfg Config, fetcher wiki.Fetcher, tel telemetry.API, clock chrono.TimeAPI) Env {
	return Env{
		Config:  cfg,
		Paths:   NewPaths(cfg.DataDir),
		Seasons: cfg.Window(clock),
		Fetcher: fetcher,
		Tel:     tel,
	}
}

// CoachSeason is the season coached relations are attributed to.
func (e Env) CoachSeason() string {
	return e.Config.TargetCoachSeason(e.Seasons)
}

// InitSlog installs a colored console logger as the default logger.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

// ClientOptions turns the config into options for the live wiki client.
func (c Config) ClientOptions() wiki.Options {
	return wiki.Options{
		BaseURL:       c.BaseURL,
		UserAgent:     c.UserAgent,
		Timeout:       time.Duration(c.RequestTimeoutSeconds) * time.Second,
		RetryCount:    c.RetryCount,
		RetryWait:     millis(c.RetryWaitMs),
		RetryMaxWait:  millis(c.RetryMaxWaitMs),
		CourtesyDelay: millis(c.CourtesyDelayMs),
	}
}

// Setup loads the config and builds the live environment for `service`. The
// returned cleanup function must be called once the job is done.
func Setup(ctx context.Context, service string) (Env, func(), error) {
	cfg, err := LoadConfig()
	if err != nil {
		return Env{}, nil, err
	}
	InitSlog(cfg.Verbose)

	runId := uuid.NewString()
	logger := slog.Default().With("run_id", runId, "job", service)
	slog.SetDefault(logger)
	tel := telemetry.NewSlogAPI(logger)

	var closers []func() error
	cleanup := func() {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		if err := errors.Join(errs...); err != nil {
			slog.Warn("cleanup failed", "err", err)
		}
	}

	otel, err := libtelemetry.Setup(ctx, "eplgraph:"+service, cfg.Telemetry)
	if err != nil {
		return Env{}, nil, err
	}
	closers = append(closers, func() error {
		return otel.Shutdown(context.Background())
	})
	if otel.MeterProvider != nil {
		libtelemetry.InstrumentPerfStats(ctx, 30*time.Second)
	}

	opts := cfg.ClientOptions()
	var persistent wiki.Cache
	if cfg.CacheFile != "" {
		db, err := configsqlite.Struct{File: cfg.CacheFile}.OpenDB()
		if err != nil {
			cleanup()
			return Env{}, nil, err
		}
		closers = append(closers, db.Close)

		cache, err := wiki.NewSQLiteCache(db)
		if err != nil {
			cleanup()
			return Env{}, nil, err
		}
		cache.MaxAge = time.Duration(cfg.CacheMaxAgeHours) * time.Hour
		persistent = cache
	}
	opts.Cache = wiki.NewMemoryCache(memoryCacheSize, time.Hour, persistent)
	if cfg.DebugDumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(cfg.DebugDumpDir, service)
		if err != nil {
			cleanup()
			return Env{}, nil, err
		}
		opts.Output = output
	}

	env := NewEnv(cfg, wiki.NewClient(opts, tel), tel, chrono.NewStandardTime())
	env.RunID = runId
	slog.Info(
		"pipeline ready",
		"seasons", env.Seasons,
		"data_dir", cfg.DataDir,
		"cache", cfg.CacheFile != "",
	)
	return env, cleanup, nil
}
