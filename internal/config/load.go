package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/learnlens/internal/domain"
	"github.com/yungbote/learnlens/internal/platform/envutil"
)

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		d.Duration = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		return d.parse(u)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a JSON string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = time.Duration(n)
	return nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	if value.Tag == "!!int" {
		n, err := strconv.ParseInt(value.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		d.Duration = time.Duration(n)
		return nil
	}
	return d.parse(value.Value)
}

func (d *Duration) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		d.Duration = 0
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = dd
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   10 << 20,
		},
		Analysis: AnalysisConfig{
			MinWords:                 200,
			MaxConcurrentRuns:        4,
			EvaluatorConcurrency:     len(domain.PrincipleOrder),
			MaxConcepts:              60,
			IsolateEvaluatorFailures: true,
			DefaultDomain:            "general",
			RunTimeout:               Duration{Duration: 2 * time.Minute},
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "learnlens",
			SampleRatio:    1,
			MetricsEnabled: true,
		},
	}
}

// Load builds the configuration from defaults, an optional config file and
// environment overrides, in that order.
func Load() (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("LEARNLENS_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			for _, name := range []string{"config.yaml", "config.yml", "config.json"} {
				p := filepath.Join(wd, "config", name)
				if _, err := os.Stat(p); err == nil {
					cfgPath = p
					break
				}
			}
		}
	}
	if cfgPath != "" {
		if err := decodeFile(cfgPath, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	if err := normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeFile decodes on top of cfg so keys absent from the file keep their
// defaults.
func decodeFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, cfg)
	default:
		err = yaml.Unmarshal(b, cfg)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.HTTP.Addr = envutil.String("LEARNLENS_HTTP_ADDR", cfg.HTTP.Addr)

	a := &cfg.Analysis
	a.MinWords = envutil.Int("LEARNLENS_MIN_WORDS", a.MinWords)
	a.MaxConcurrentRuns = envutil.Int("LEARNLENS_MAX_CONCURRENT_RUNS", a.MaxConcurrentRuns)
	a.EvaluatorConcurrency = envutil.Int("LEARNLENS_EVALUATOR_CONCURRENCY", a.EvaluatorConcurrency)
	a.IsolateEvaluatorFailures = envutil.Bool("LEARNLENS_ISOLATE_EVALUATORS", a.IsolateEvaluatorFailures)
	a.DefaultDomain = envutil.String("LEARNLENS_DOMAIN", a.DefaultDomain)
	a.RunTimeout.Duration = envutil.Duration("LEARNLENS_RUN_TIMEOUT", a.RunTimeout.Duration)

	t := &cfg.Telemetry
	t.OtelEnabled = envutil.Bool("OTEL_ENABLED", t.OtelEnabled)
	t.SampleRatio = envutil.Float("OTEL_SAMPLE_RATIO", t.SampleRatio)
	t.MetricsEnabled = envutil.Bool("METRICS_ENABLED", t.MetricsEnabled)
}

func normalize(cfg *Config) error {
	cfg.Env = strings.TrimSpace(cfg.Env)
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 10 << 20
	}

	a := &cfg.Analysis
	if a.MinWords < 0 {
		return fmt.Errorf("analysis.min_words must be >= 0, got %d", a.MinWords)
	}
	if a.MaxConcurrentRuns <= 0 {
		a.MaxConcurrentRuns = 4
	}
	if a.EvaluatorConcurrency <= 0 {
		a.EvaluatorConcurrency = len(domain.PrincipleOrder)
	}
	if a.MaxConcepts <= 0 {
		a.MaxConcepts = 60
	}
	a.DefaultDomain = strings.ToLower(strings.TrimSpace(a.DefaultDomain))
	if a.DefaultDomain == "" {
		a.DefaultDomain = "general"
	}
	if a.RunTimeout.Duration < 0 {
		return fmt.Errorf("analysis.run_timeout must not be negative")
	}
	keys := make([]string, 0, len(a.Weights))
	for k := range a.Weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !domain.PrincipleID(k).Valid() {
			return fmt.Errorf("analysis.weights: unknown principle %q", k)
		}
		if w := a.Weights[k]; w <= 0 {
			return fmt.Errorf("analysis.weights: %s must be > 0, got %v", k, w)
		}
	}

	t := &cfg.Telemetry
	if strings.TrimSpace(t.ServiceName) == "" {
		t.ServiceName = "learnlens"
	}
	if t.SampleRatio <= 0 || t.SampleRatio > 1 {
		t.SampleRatio = 1
	}
	return nil
}

// PrincipleWeights returns the configured overrides keyed by principle.
func (a AnalysisConfig) PrincipleWeights() map[domain.PrincipleID]float64 {
	if len(a.Weights) == 0 {
		return nil
	}
	out := make(map[domain.PrincipleID]float64, len(a.Weights))
	for k, w := range a.Weights {
		out[domain.PrincipleID(k)] = w
	}
	return out
}
