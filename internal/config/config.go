package config

import "time"

type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `json:"addr" yaml:"addr"`
	ReadHeaderTimeout Duration `json:"read_header_timeout" yaml:"read_header_timeout"`
	IdleTimeout       Duration `json:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout   Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `json:"max_request_bytes" yaml:"max_request_bytes"`

	// CORSOrigins lists allowed browser origins. Empty allows the local dev
	// front ends only.
	CORSOrigins []string `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`
}

type AnalysisConfig struct {
	// MinWords is the floor below which a chapter is rejected before a run.
	MinWords             int `json:"min_words" yaml:"min_words"`
	MaxConcurrentRuns    int `json:"max_concurrent_runs" yaml:"max_concurrent_runs"`
	EvaluatorConcurrency int `json:"evaluator_concurrency" yaml:"evaluator_concurrency"`
	MaxConcepts          int `json:"max_concepts" yaml:"max_concepts"`

	// IsolateEvaluatorFailures reports a failing evaluator as unavailable
	// instead of failing the whole run.
	IsolateEvaluatorFailures bool   `json:"isolate_evaluator_failures" yaml:"isolate_evaluator_failures"`
	DefaultDomain            string `json:"default_domain" yaml:"default_domain"`

	// RunTimeout bounds a synchronous HTTP analysis. Zero disables it.
	RunTimeout Duration `json:"run_timeout,omitempty" yaml:"run_timeout,omitempty"`

	// Weights override per-principle weights, keyed by principle id.
	Weights map[string]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
}

type TelemetryConfig struct {
	ServiceName    string  `json:"service_name" yaml:"service_name"`
	OtelEnabled    bool    `json:"otel_enabled" yaml:"otel_enabled"`
	SampleRatio    float64 `json:"sample_ratio" yaml:"sample_ratio"`
	MetricsEnabled bool    `json:"metrics_enabled" yaml:"metrics_enabled"`
}

type Config struct {
	Env       string          `json:"env" yaml:"env"`
	HTTP      HTTPConfig      `json:"http" yaml:"http"`
	Analysis  AnalysisConfig  `json:"analysis" yaml:"analysis"`
	Telemetry TelemetryConfig `json:"telemetry" yaml:"telemetry"`
}
