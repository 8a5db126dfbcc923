// Package runner executes analyses off the caller's goroutine and reports
// them as an ordered message stream: progress messages, then exactly one
// terminal message, then the channel is closed.
package runner

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/learnlens/internal/analysis/orchestrator"
	"github.com/yungbote/learnlens/internal/domain"
	"github.com/yungbote/learnlens/internal/platform/apierr"
	"github.com/yungbote/learnlens/internal/platform/logger"
)

const (
	CodeAnalysisFailed    = "analysis_failed"
	CodeAnalysisCancelled = "analysis_cancelled"
	CodeRunnerBusy        = "runner_busy"
	CodeRunnerClosed      = "runner_closed"

	// StatusClientClosedRequest is the nginx convention for a request the
	// client abandoned.
	StatusClientClosedRequest = 499
)

// Outcomes reported to Metrics.ObserveRun.
const (
	OutcomeComplete  = "complete"
	OutcomeError     = "error"
	OutcomeCancelled = "cancelled"
)

// DefaultMaxConcurrent bounds simultaneous runs when Options leaves it unset.
const DefaultMaxConcurrent = 4

// messageBuffer holds every message a default run produces, so a worker
// never waits on a slow reader.
const messageBuffer = 64

// Analyzer is the work a run performs.
type Analyzer interface {
	Analyze(ctx context.Context, runID string, req domain.AnalysisRequest, progress orchestrator.ProgressFunc) (*domain.ChapterAnalysis, error)
}

type Metrics interface {
	ObserveRun(outcome string, d time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) ObserveRun(string, time.Duration) {}

type Options struct {
	MaxConcurrent int
	// Validate rejects a request before a run is created.
	Validate func(*domain.AnalysisRequest) error
	Metrics  Metrics
	NewID    func() string
}

type Runner struct {
	log      *logger.Logger
	analyzer Analyzer
	opts     Options
	metrics  Metrics
	slots    chan struct{}

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func New(log *logger.Logger, analyzer Analyzer, opts Options) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	m := opts.Metrics
	if m == nil {
		m = nopMetrics{}
	}
	return &Runner{
		log:      log.With("component", "AnalysisRunner"),
		analyzer: analyzer,
		opts:     opts,
		metrics:  m,
		slots:    make(chan struct{}, opts.MaxConcurrent),
	}
}

// Run is a handle on one in-flight analysis.
type Run struct {
	ID       string
	Messages <-chan domain.RunMessage

	cancel context.CancelFunc
	done   chan struct{}
	result *domain.ChapterAnalysis
	err    error
}

// Cancel aborts the run. A cancelled run never produces a result.
func (r *Run) Cancel() { r.cancel() }

// Done is closed after the terminal message has been sent.
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait drains any unread messages and returns the outcome.
func (r *Run) Wait() (*domain.ChapterAnalysis, error) {
	for range r.Messages {
	}
	<-r.done
	return r.result, r.err
}

// Submit validates req and starts a run once a slot is free. Validation
// errors are returned here and never produce a run. The run is cancelled
// with ctx.
func (x *Runner) Submit(ctx context.Context, req domain.AnalysisRequest) (*Run, error) {
	if x.opts.Validate != nil {
		if err := x.opts.Validate(&req); err != nil {
			return nil, err
		}
	}

	x.mu.Lock()
	if x.closed {
		x.mu.Unlock()
		return nil, apierr.New(http.StatusServiceUnavailable, CodeRunnerClosed, errors.New("runner is shutting down"))
	}
	x.wg.Add(1)
	x.mu.Unlock()

	select {
	case x.slots <- struct{}{}:
	case <-ctx.Done():
		x.wg.Done()
		return nil, apierr.Newf(http.StatusServiceUnavailable, CodeRunnerBusy, "no run slot available: %w", ctx.Err())
	}

	runCtx, cancel := context.WithCancel(ctx)
	msgs := make(chan domain.RunMessage, messageBuffer)
	run := &Run{
		ID:       x.opts.NewID(),
		Messages: msgs,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go x.execute(runCtx, run, msgs, req)
	return run, nil
}

func (x *Runner) execute(ctx context.Context, run *Run, msgs chan<- domain.RunMessage, req domain.AnalysisRequest) {
	start := time.Now()
	log := x.log.With("run_id", run.ID)
	defer func() {
		run.cancel()
		<-x.slots
		x.wg.Done()
	}()
	log.Debug("run started", "chapter_id", req.Chapter.ID)

	progress := func(p orchestrator.Progress) {
		m := domain.RunMessage{
			Type:      domain.MessageProgress,
			RunID:     run.ID,
			Step:      p.Stage,
			Detail:    p.Detail,
			Completed: p.Completed,
			Total:     p.Total,
		}
		select {
		case msgs <- m:
		case <-ctx.Done():
		}
	}

	result, err := x.analyze(ctx, run.ID, req, progress)

	terminal := domain.RunMessage{RunID: run.ID}
	outcome := OutcomeComplete
	switch {
	case ctx.Err() != nil:
		outcome = OutcomeCancelled
		result = nil
		err = apierr.Newf(StatusClientClosedRequest, CodeAnalysisCancelled, "analysis cancelled: %w", ctx.Err())
		terminal.Type = domain.MessageCancelled
		terminal.Message = "analysis cancelled"
	case err != nil:
		outcome = OutcomeError
		result = nil
		err = apierr.New(http.StatusInternalServerError, CodeAnalysisFailed, err)
		terminal.Type = domain.MessageError
		terminal.Step = domain.StageError
		terminal.Message = err.Error()
	default:
		terminal.Type = domain.MessageComplete
		terminal.Step = domain.StageComplete
		terminal.Result = result
	}

	d := time.Since(start)
	x.metrics.ObserveRun(outcome, d)

	run.result, run.err = result, err
	msgs <- terminal
	close(msgs)
	close(run.done)

	if outcome == OutcomeError {
		log.Warn("run failed", "error", err, "duration_ms", d.Milliseconds())
		return
	}
	log.Info("run finished", "outcome", outcome, "duration_ms", d.Milliseconds())
}

// analyze converts a panic anywhere in the pipeline into an error so the
// run still ends with a terminal message.
func (x *Runner) analyze(ctx context.Context, runID string, req domain.AnalysisRequest, progress orchestrator.ProgressFunc) (res *domain.ChapterAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			x.log.Error("analysis panic", "run_id", runID, "panic", r)
			res, err = nil, &orchestrator.PanicError{Value: r}
		}
	}()
	return x.analyzer.Analyze(ctx, runID, req, progress)
}

// Analyze submits req and waits for its outcome, forwarding progress to fn.
func (x *Runner) Analyze(ctx context.Context, req domain.AnalysisRequest, fn func(domain.RunMessage)) (*domain.ChapterAnalysis, error) {
	run, err := x.Submit(ctx, req)
	if err != nil {
		return nil, err
	}
	for m := range run.Messages {
		if fn != nil {
			fn(m)
		}
	}
	return run.Wait()
}

// Shutdown stops accepting runs and waits for in-flight ones to finish or
// for ctx to end.
func (x *Runner) Shutdown(ctx context.Context) error {
	x.mu.Lock()
	x.closed = true
	x.mu.Unlock()

	done := make(chan struct{})
	go func() {
		x.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
