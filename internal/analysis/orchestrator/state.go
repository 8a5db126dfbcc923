package orchestrator

import (
	"time"

	"github.com/yungbote/learnlens/internal/domain"
)

type StageStatus string

const (
	StagePending   StageStatus = "pending"
	StageRunning   StageStatus = "running"
	StageSucceeded StageStatus = "succeeded"
	StageFailed    StageStatus = "failed"
	StageSkipped   StageStatus = "skipped"
)

// pipeline is the fixed stage order of one run.
var pipeline = []domain.Stage{
	domain.StageReceived,
	domain.StageExtractingConcepts,
	domain.StageEvaluatingPrinciples,
	domain.StageBuildingVisualization,
	domain.StageFinalizing,
}

type StageState struct {
	Name       domain.Stage `json:"name"`
	Status     StageStatus  `json:"status"`
	StartedAt  *time.Time   `json:"started_at,omitempty"`
	FinishedAt *time.Time   `json:"finished_at,omitempty"`
	LastError  string       `json:"last_error,omitempty"`
	Completed  int          `json:"completed,omitempty"`
	Total      int          `json:"total,omitempty"`
}

func (s *StageState) Duration() time.Duration {
	if s == nil || s.StartedAt == nil || s.FinishedAt == nil {
		return 0
	}
	return s.FinishedAt.Sub(*s.StartedAt)
}

// RunState tracks the stages of a single in-memory run. It is owned by one
// goroutine and discarded when the run ends.
type RunState struct {
	RunID  string                       `json:"run_id"`
	Stages map[domain.Stage]*StageState `json:"stages"`
	// Current is the last stage that was started.
	Current domain.Stage `json:"current"`
	now     func() time.Time
}

func NewRunState(runID string, now func() time.Time) *RunState {
	if now == nil {
		now = time.Now
	}
	st := &RunState{RunID: runID, Stages: map[domain.Stage]*StageState{}, now: now}
	for _, name := range pipeline {
		st.EnsureStage(name)
	}
	return st
}

func (s *RunState) EnsureStage(name domain.Stage) *StageState {
	if s.Stages == nil {
		s.Stages = map[domain.Stage]*StageState{}
	}
	ss := s.Stages[name]
	if ss == nil {
		ss = &StageState{Name: name, Status: StagePending}
		s.Stages[name] = ss
	}
	return ss
}

func (s *RunState) Start(name domain.Stage, total int) *StageState {
	ss := s.EnsureStage(name)
	t := s.now()
	ss.Status = StageRunning
	ss.StartedAt = &t
	ss.FinishedAt = nil
	ss.LastError = ""
	ss.Completed = 0
	ss.Total = total
	s.Current = name
	return ss
}

func (s *RunState) Succeed(name domain.Stage) {
	ss := s.EnsureStage(name)
	t := s.now()
	ss.Status = StageSucceeded
	ss.FinishedAt = &t
	if ss.Total > 0 {
		ss.Completed = ss.Total
	}
}

// Fail marks the stage failed and every later pending stage skipped.
func (s *RunState) Fail(name domain.Stage, err error) {
	ss := s.EnsureStage(name)
	t := s.now()
	ss.Status = StageFailed
	ss.FinishedAt = &t
	if err != nil {
		ss.LastError = err.Error()
	}
	after := false
	for _, p := range pipeline {
		if p == name {
			after = true
			continue
		}
		if after && s.Stages[p].Status == StagePending {
			s.Stages[p].Status = StageSkipped
		}
	}
}

// Done reports whether every stage succeeded.
func (s *RunState) Done() bool {
	for _, p := range pipeline {
		if ss := s.Stages[p]; ss == nil || ss.Status != StageSucceeded {
			return false
		}
	}
	return true
}

// Summary flattens stage durations for a single log line.
func (s *RunState) Summary() map[string]interface{} {
	out := make(map[string]interface{}, len(pipeline))
	for _, p := range pipeline {
		ss := s.Stages[p]
		if ss == nil {
			continue
		}
		out[string(p)] = string(ss.Status) + " " + ss.Duration().String()
	}
	return out
}
