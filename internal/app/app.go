package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnlens/internal/analysis/orchestrator"
	"github.com/yungbote/learnlens/internal/analysis/runner"
	"github.com/yungbote/learnlens/internal/config"
	"github.com/yungbote/learnlens/internal/observability"
	"github.com/yungbote/learnlens/internal/platform/logger"
	"github.com/yungbote/learnlens/internal/platform/shutdown"
)

const defaultShutdownTimeout = 15 * time.Second

type App struct {
	Log      *logger.Logger
	Config   *config.Config
	Router   *gin.Engine
	Analyzer *orchestrator.Analyzer
	Runner   *runner.Runner
	Metrics  *observability.Metrics

	server       *http.Server
	otelShutdown func(context.Context) error
	draining     atomic.Bool
}

func New(ctx context.Context, version string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if isProd(cfg.Env) {
		gin.SetMode(gin.ReleaseMode)
	}

	a := &App{Log: log, Config: cfg}
	a.otelShutdown = observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.Telemetry.OtelEnabled,
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.Env,
		Version:     version,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if cfg.Telemetry.MetricsEnabled {
		a.Metrics = observability.NewMetrics(log)
	}

	core := wireCore(log, cfg, a.Metrics)
	a.Analyzer, a.Runner = core.Analyzer, core.Runner
	a.Router = wireRouter(log, cfg, core, a.Metrics, a.ready)
	a.server = newServer(cfg, a.Router)

	log.Info("app initialized",
		"env", cfg.Env,
		"addr", cfg.HTTP.Addr,
		"min_words", cfg.Analysis.MinWords,
		"max_concurrent_runs", cfg.Analysis.MaxConcurrentRuns,
		"isolate_evaluator_failures", cfg.Analysis.IsolateEvaluatorFailures,
		"metrics", a.Metrics != nil,
		"otel", cfg.Telemetry.OtelEnabled,
	)
	return a, nil
}

func (a *App) ready() error {
	if a.draining.Load() {
		return errors.New("shutting down")
	}
	return nil
}

// Run serves until ctx is cancelled, then drains the HTTP server and any
// in-flight runs within the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("HTTP server listening", "addr", a.server.Addr)
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		a.Log.Info("shutdown requested")
		return a.shutdown()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		_ = a.shutdown()
		return err
	}
}

func (a *App) shutdown() error {
	a.draining.Store(true)
	ctx, cancel := shutdown.Deadline(a.Config.HTTP.ShutdownTimeout.Duration, defaultShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := a.Runner.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("drain runs: %w", err))
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("otel shutdown: %w", err))
		}
	}
	err := errors.Join(errs...)
	if err != nil {
		a.Log.Warn("shutdown incomplete", "error", err)
	} else {
		a.Log.Info("shutdown complete")
	}
	return err
}

func (a *App) Close() {
	if a == nil || a.Log == nil {
		return
	}
	a.Log.Sync()
}

func isProd(env string) bool {
	return env == "prod" || env == "production"
}
