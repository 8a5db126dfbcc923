// Package orchestrator runs one stateless analysis pass: concept extraction,
// the ten principle evaluators, and the aggregates and visualizations built
// from their output.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/learnlens/internal/analysis/concepts"
	"github.com/yungbote/learnlens/internal/analysis/principles"
	"github.com/yungbote/learnlens/internal/domain"
	"github.com/yungbote/learnlens/internal/platform/logger"
)

const tracerName = "github.com/yungbote/learnlens/internal/analysis/orchestrator"

// Progress is one pipeline step report. Completed/Total are only set while
// principles are being evaluated.
type Progress struct {
	Stage     domain.Stage
	Detail    string
	Completed int
	Total     int
}

// ProgressFunc receives progress in pipeline order. It is never called
// concurrently.
type ProgressFunc func(Progress)

// Metrics is the subset of the metrics collector the analyzer reports to.
type Metrics interface {
	ObserveEvaluator(principle domain.PrincipleID, d time.Duration, failed bool)
	ObserveScore(principle domain.PrincipleID, score int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveEvaluator(domain.PrincipleID, time.Duration, bool) {}
func (nopMetrics) ObserveScore(domain.PrincipleID, int)                     {}

type Options struct {
	// Weights override the default principle weights.
	Weights map[domain.PrincipleID]float64
	// IsolateFailures turns a failing evaluator into an unavailable
	// evaluation instead of failing the run.
	IsolateFailures      bool
	EvaluatorConcurrency int
	MaxConcepts          int
	DefaultDomain        string
	// Evaluators replaces the registry; tests use it to inject failures.
	Evaluators []principles.Evaluator
	Metrics    Metrics
	Clock      func() time.Time
}

func DefaultOptions() Options {
	return Options{
		IsolateFailures:      true,
		EvaluatorConcurrency: len(domain.PrincipleOrder),
		MaxConcepts:          concepts.DefaultMaxConcepts,
		DefaultDomain:        "general",
	}
}

type Analyzer struct {
	log        *logger.Logger
	extractor  concepts.Extractor
	evaluators []principles.Evaluator
	opts       Options
	metrics    Metrics
	tracer     trace.Tracer
	clock      func() time.Time
}

func New(log *logger.Logger, extractor concepts.Extractor, opts Options) *Analyzer {
	if log == nil {
		log = logger.Nop()
	}
	if extractor == nil {
		extractor = concepts.NewLexical(opts.MaxConcepts)
	}
	evaluators := opts.Evaluators
	if len(evaluators) == 0 {
		evaluators = principles.All()
	}
	if opts.EvaluatorConcurrency <= 0 {
		opts.EvaluatorConcurrency = len(evaluators)
	}
	m := opts.Metrics
	if m == nil {
		m = nopMetrics{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Analyzer{
		log:        log.With("component", "Analyzer"),
		extractor:  extractor,
		evaluators: evaluators,
		opts:       opts,
		metrics:    m,
		tracer:     otel.Tracer(tracerName),
		clock:      clock,
	}
}

// Weight returns the effective weight of a principle.
func (a *Analyzer) Weight(id domain.PrincipleID) float64 {
	if w, ok := a.opts.Weights[id]; ok && w > 0 {
		return w
	}
	return domain.DefaultWeights[id]
}

// Weights returns the effective weight of every principle.
func (a *Analyzer) Weights() map[domain.PrincipleID]float64 {
	out := make(map[domain.PrincipleID]float64, len(domain.PrincipleOrder))
	for _, id := range domain.PrincipleOrder {
		out[id] = a.Weight(id)
	}
	return out
}

// ExtractConcepts runs only the extraction stage on a prepared copy of the
// chapter. Invalid graphs are replaced by an empty one.
func (a *Analyzer) ExtractConcepts(ctx context.Context, req domain.AnalysisRequest) (domain.Chapter, domain.ConceptGraph, error) {
	ch := PrepareChapter(req.Chapter)
	g, err := a.extract(ctx, &ch, req)
	return ch, g, err
}

// Analyze runs the full pipeline. It returns an error only when the context
// is cancelled, or when an evaluator fails and failures are not isolated.
func (a *Analyzer) Analyze(ctx context.Context, runID string, req domain.AnalysisRequest, progress ProgressFunc) (*domain.ChapterAnalysis, error) {
	if progress == nil {
		progress = func(Progress) {}
	}
	ctx, span := a.tracer.Start(ctx, "analysis.run", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("chapter.id", req.Chapter.ID),
	))
	defer span.End()

	log := a.log.With("run_id", runID, "chapter_id", req.Chapter.ID)
	state := NewRunState(runID, a.clock)
	fail := func(stage domain.Stage, err error) (*domain.ChapterAnalysis, error) {
		state.Fail(stage, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("analysis stopped", "stage", stage, "error", err, "stages", state.Summary())
		return nil, err
	}

	state.Start(domain.StageReceived, 0)
	ch := PrepareChapter(req.Chapter)
	progress(Progress{Stage: domain.StageReceived, Detail: fmt.Sprintf("%d words in %d sections", ch.WordCount, len(ch.Sections))})
	state.Succeed(domain.StageReceived)

	state.Start(domain.StageExtractingConcepts, 0)
	progress(Progress{Stage: domain.StageExtractingConcepts, Detail: "identifying concepts"})
	graph, err := a.extract(ctx, &ch, req)
	if err != nil {
		return fail(domain.StageExtractingConcepts, err)
	}
	state.Succeed(domain.StageExtractingConcepts)

	state.Start(domain.StageEvaluatingPrinciples, len(a.evaluators))
	evals, err := a.evaluate(ctx, &ch, &graph, progress)
	if err != nil {
		return fail(domain.StageEvaluatingPrinciples, err)
	}
	state.Succeed(domain.StageEvaluatingPrinciples)

	if err := ctx.Err(); err != nil {
		return fail(domain.StageBuildingVisualization, err)
	}
	state.Start(domain.StageBuildingVisualization, 0)
	progress(Progress{Stage: domain.StageBuildingVisualization, Detail: "building concept map and curves"})
	vis := BuildVisualizations(&ch, &graph)
	state.Succeed(domain.StageBuildingVisualization)

	if err := ctx.Err(); err != nil {
		return fail(domain.StageFinalizing, err)
	}
	state.Start(domain.StageFinalizing, 0)
	progress(Progress{Stage: domain.StageFinalizing, Detail: "computing overall score"})
	result := &domain.ChapterAnalysis{
		RunID:             runID,
		ChapterID:         ch.ID,
		ChapterTitle:      ch.Title,
		AnalyzedAt:        a.clock().UTC(),
		OverallScore:      OverallScore(evals),
		Principles:        evals,
		ConceptAnalysis:   BuildConceptAnalysis(&ch, &graph, vis.ReviewSchedule),
		StructureAnalysis: BuildStructureAnalysis(&ch),
		Recommendations:   Recommendations(evals),
		Visualizations:    vis,
	}
	state.Succeed(domain.StageFinalizing)

	for _, ev := range evals {
		if ev.Status == domain.EvaluationOK {
			a.metrics.ObserveScore(ev.Principle, ev.Score)
		}
	}
	span.SetAttributes(
		attribute.Int("analysis.overall_score", result.OverallScore),
		attribute.Int("analysis.concepts", len(graph.Concepts)),
	)
	log.Info("analysis complete",
		"overall_score", result.OverallScore,
		"concepts", len(graph.Concepts),
		"recommendations", len(result.Recommendations),
		"stages", state.Summary(),
	)
	return result, nil
}

// extract never fails on bad input: extractor errors, panics and invalid
// graphs all degrade to an empty graph. Only cancellation is returned.
func (a *Analyzer) extract(ctx context.Context, ch *domain.Chapter, req domain.AnalysisRequest) (g domain.ConceptGraph, err error) {
	ctx, span := a.tracer.Start(ctx, "analysis.extract")
	defer span.End()

	dom := strings.TrimSpace(req.Domain)
	if dom == "" {
		dom = strings.TrimSpace(ch.Metadata.Domain)
	}
	if dom == "" {
		dom = a.opts.DefaultDomain
	}
	opts := concepts.Options{
		Domain:             dom,
		IncludeCrossDomain: req.IncludeCrossDomain,
		CustomConcepts:     req.CustomConcepts,
		MaxConcepts:        a.opts.MaxConcepts,
	}

	defer func() {
		if r := recover(); r != nil {
			a.log.Error("concept extractor panic", "chapter_id", ch.ID, "panic", r)
			g, err = domain.EmptyGraph(), nil
		}
	}()
	g, err = a.extractor.Extract(ctx, ch, opts)
	if cerr := ctx.Err(); cerr != nil {
		return domain.EmptyGraph(), cerr
	}
	if err != nil {
		a.log.Warn("concept extraction failed, continuing with empty graph", "chapter_id", ch.ID, "error", err)
		span.RecordError(err)
		return domain.EmptyGraph(), nil
	}
	if verr := concepts.Validate(&g, len(ch.Content)); verr != nil {
		a.log.Warn("concept graph invalid, continuing with empty graph", "chapter_id", ch.ID, "error", verr)
		span.RecordError(verr)
		return domain.EmptyGraph(), nil
	}
	span.SetAttributes(attribute.Int("concepts", len(g.Concepts)), attribute.Int("relationships", len(g.Relationships)))
	return g, nil
}

// evaluate fans the evaluators out over a bounded group. Results keep the
// registry order regardless of completion order.
func (a *Analyzer) evaluate(ctx context.Context, ch *domain.Chapter, g *domain.ConceptGraph, progress ProgressFunc) ([]domain.PrincipleEvaluation, error) {
	total := len(a.evaluators)
	results := make([]domain.PrincipleEvaluation, total)

	var mu sync.Mutex
	completed := 0
	progress(Progress{Stage: domain.StageEvaluatingPrinciples, Detail: "evaluating principles", Completed: 0, Total: total})

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(a.opts.EvaluatorConcurrency)
	for i, e := range a.evaluators {
		i, e := i, e
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id := e.Principle()
			ev, err := a.runEvaluator(gctx, e, ch, g)
			if err != nil {
				if !a.opts.IsolateFailures {
					return &EvaluatorError{Principle: id, Err: err}
				}
				ev = Unavailable(id, err)
			}
			ev.Principle = id
			ev.Name = id.Name()
			ev.Weight = a.Weight(id)
			results[i] = ev

			mu.Lock()
			completed++
			progress(Progress{Stage: domain.StageEvaluatingPrinciples, Detail: id.Name(), Completed: completed, Total: total})
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *Analyzer) runEvaluator(ctx context.Context, e principles.Evaluator, ch *domain.Chapter, g *domain.ConceptGraph) (ev domain.PrincipleEvaluation, err error) {
	id := e.Principle()
	_, span := a.tracer.Start(ctx, "analysis.evaluate", trace.WithAttributes(attribute.String("principle", string(id))))
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("evaluator panic", "principle", id, "panic", r)
			err = &PanicError{Value: r}
		}
		a.metrics.ObserveEvaluator(id, time.Since(start), err != nil)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("score", ev.Score))
		}
		span.End()
	}()
	return e.Evaluate(ch, g), nil
}

// Unavailable is the evaluation recorded for a principle whose evaluator
// failed. It scores 0 and is left out of the overall score.
func Unavailable(id domain.PrincipleID, cause error) domain.PrincipleEvaluation {
	msg := "unknown failure"
	if cause != nil {
		msg = cause.Error()
	}
	return domain.PrincipleEvaluation{
		Principle: id,
		Name:      id.Name(),
		Weight:    domain.DefaultWeights[id],
		Status:    domain.EvaluationUnavailable,
		Findings: []domain.Finding{{
			Type:     domain.FindingCritical,
			Message:  id.Name() + " could not be evaluated and is excluded from the overall score",
			Severity: 1,
			Evidence: msg,
		}},
		Suggestions: []domain.Suggestion{},
		Evidence: []domain.Evidence{{
			Type:        domain.EvidenceMetric,
			Metric:      "evaluatorAvailability",
			Value:       0,
			Quality:     domain.QualityWeak,
			Description: "evaluator failed: " + msg,
		}},
	}
}

// EvaluatorError reports the principle whose evaluator failed the run.
type EvaluatorError struct {
	Principle domain.PrincipleID
	Err       error
}

func (e *EvaluatorError) Error() string {
	return fmt.Sprintf("evaluate %s: %v", e.Principle, e.Err)
}

func (e *EvaluatorError) Unwrap() error { return e.Err }

type PanicError struct{ Value any }

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// IsEvaluatorFailure reports whether err came from a failing evaluator.
func IsEvaluatorFailure(err error) bool {
	var ee *EvaluatorError
	return errors.As(err, &ee)
}
