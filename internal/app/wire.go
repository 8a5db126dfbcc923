package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnlens/internal/analysis/orchestrator"
	"github.com/yungbote/learnlens/internal/analysis/runner"
	"github.com/yungbote/learnlens/internal/config"
	httpapi "github.com/yungbote/learnlens/internal/http"
	httpH "github.com/yungbote/learnlens/internal/http/handlers"
	"github.com/yungbote/learnlens/internal/ingest"
	"github.com/yungbote/learnlens/internal/observability"
	"github.com/yungbote/learnlens/internal/platform/logger"
)

// Core is the analysis stack shared by the HTTP service and the CLI.
type Core struct {
	Validator *ingest.Validator
	Analyzer  *orchestrator.Analyzer
	Runner    *runner.Runner
}

// WireCore builds the validator, analyzer and runner from config. metrics
// may be nil.
func WireCore(log *logger.Logger, cfg *config.Config, metrics *observability.Metrics) Core {
	return wireCore(log, cfg, metrics)
}

func wireCore(log *logger.Logger, cfg *config.Config, metrics *observability.Metrics) Core {
	validator := ingest.NewValidator(cfg.Analysis.MinWords)

	opts := orchestrator.DefaultOptions()
	opts.Weights = cfg.Analysis.PrincipleWeights()
	opts.IsolateFailures = cfg.Analysis.IsolateEvaluatorFailures
	opts.EvaluatorConcurrency = cfg.Analysis.EvaluatorConcurrency
	opts.MaxConcepts = cfg.Analysis.MaxConcepts
	opts.DefaultDomain = cfg.Analysis.DefaultDomain

	ropts := runner.Options{
		MaxConcurrent: cfg.Analysis.MaxConcurrentRuns,
		Validate:      validator.Validate,
	}
	if metrics != nil {
		opts.Metrics = metrics
		ropts.Metrics = metrics
	}
	analyzer := orchestrator.New(log, nil, opts)
	return Core{
		Validator: validator,
		Analyzer:  analyzer,
		Runner:    runner.New(log, analyzer, ropts),
	}
}

func wireRouter(log *logger.Logger, cfg *config.Config, core Core, metrics *observability.Metrics, ready func() error) *gin.Engine {
	rc := httpapi.RouterConfig{
		Log:              log,
		CORSOrigins:      cfg.HTTP.CORSOrigins,
		MaxBodyBytes:     cfg.HTTP.MaxRequestBytes,
		HealthHandler:    httpH.NewHealthHandler(ready),
		PrincipleHandler: httpH.NewPrincipleHandler(core.Analyzer.Weights()),
		AnalysisHandler:  httpH.NewAnalysisHandler(log, core.Runner, core.Analyzer, core.Validator, cfg.Analysis.RunTimeout.Duration),
	}
	if cfg.Telemetry.OtelEnabled {
		rc.ServiceName = cfg.Telemetry.ServiceName
	}
	if metrics != nil {
		rc.Metrics = metrics
		rc.MetricsHandler = metrics.Handler()
	}
	return httpapi.NewRouter(rc)
}

func newServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return httpapi.NewServer(httpapi.ServerConfig{
		Addr:              cfg.HTTP.Addr,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.HTTP.IdleTimeout.Duration,
	}, engine)
}
