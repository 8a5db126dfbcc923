package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/learnlens/internal/http/handlers"
	httpMW "github.com/yungbote/learnlens/internal/http/middleware"
	"github.com/yungbote/learnlens/internal/http/response"
	"github.com/yungbote/learnlens/internal/platform/logger"
)

type RouterConfig struct {
	Log          *logger.Logger
	ServiceName  string
	CORSOrigins  []string
	MaxBodyBytes int64

	// Metrics, when set, instruments requests and is served at /metrics.
	Metrics        httpMW.APIMetrics
	MetricsHandler http.Handler

	HealthHandler    *httpH.HealthHandler
	PrincipleHandler *httpH.PrincipleHandler
	AnalysisHandler  *httpH.AnalysisHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(httpMW.Recover(cfg.Log))
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	r.NoRoute(func(c *gin.Context) {
		response.RespondError(c, http.StatusNotFound, "not_found", nil)
	})

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Healthz)
		r.GET("/readyz", cfg.HealthHandler.Readyz)
	}
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	v1 := r.Group("/v1")
	v1.Use(httpMW.LimitBody(cfg.MaxBodyBytes))
	{
		if cfg.PrincipleHandler != nil {
			v1.GET("/principles", cfg.PrincipleHandler.List)
		}
		if cfg.AnalysisHandler != nil {
			v1.POST("/concepts/extract", cfg.AnalysisHandler.ExtractConcepts)
			v1.POST("/analyses", cfg.AnalysisHandler.Analyze)
			v1.POST("/analyses/stream", cfg.AnalysisHandler.Stream)
		}
	}

	return r
}
