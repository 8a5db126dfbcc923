package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/learnlens/internal/domain"
	"github.com/yungbote/learnlens/internal/platform/logger"
)

const namespace = "learnlens"

// Metrics owns a private registry so tests and multiple servers in one
// process never collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	runs             *prometheus.CounterVec
	runDuration      prometheus.Histogram
	evaluatorLatency *prometheus.HistogramVec
	evaluatorFailure *prometheus.CounterVec
	principleScore   *prometheus.HistogramVec
	apiRequests      *prometheus.CounterVec
	apiLatency       *prometheus.HistogramVec
	apiInflight      prometheus.Gauge
}

func NewMetrics(log *logger.Logger) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	m := &Metrics{
		registry: reg,
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_runs_total",
			Help:      "Analysis runs by terminal outcome.",
		}, []string{"outcome"}),
		runDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of an analysis run.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		evaluatorLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluator_duration_seconds",
			Help:      "Time spent in one principle evaluator.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, 1},
		}, []string{"principle"}),
		evaluatorFailure: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluator_failures_total",
			Help:      "Evaluator invocations that returned an error or panicked.",
		}, []string{"principle"}),
		principleScore: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "principle_score",
			Help:      "Distribution of per-principle scores.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}, []string{"principle"}),
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiInflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_inflight_requests",
			Help:      "HTTP requests currently being served.",
		}),
	}
	if log != nil {
		log.Info("metrics initialized", "namespace", namespace)
	}
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRun(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveEvaluator(principle domain.PrincipleID, d time.Duration, failed bool) {
	if m == nil {
		return
	}
	m.evaluatorLatency.WithLabelValues(string(principle)).Observe(d.Seconds())
	if failed {
		m.evaluatorFailure.WithLabelValues(string(principle)).Inc()
	}
}

func (m *Metrics) ObserveScore(principle domain.PrincipleID, score int) {
	if m == nil {
		return
	}
	m.principleScore.WithLabelValues(string(principle)).Observe(float64(score))
}

func (m *Metrics) ObserveAPI(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}
