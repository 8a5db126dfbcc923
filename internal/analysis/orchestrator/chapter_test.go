package orchestrator

import (
	"errors"
	"testing"
	"time"

	"github.com/yungbote/learnlens/internal/domain"
)

func TestPrepareChapterNormalisesSections(t *testing.T) {
	content := "aaaa bbbb cccc dddd eeee ffff gggg hhhh"
	in := domain.Chapter{
		Content: content,
		Sections: []domain.Section{
			{ID: "late", StartPosition: 20, EndPosition: len(content)},
			{ID: "bad-range", StartPosition: 30, EndPosition: 10},
			{ID: "out", StartPosition: 5, EndPosition: len(content) + 5},
			{ID: "early", StartPosition: 0, EndPosition: 25, WordCount: 99},
			{StartPosition: 10, EndPosition: 15},
		},
	}
	out := PrepareChapter(in)
	if len(out.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %+v", out.Sections)
	}
	first, second := out.Sections[0], out.Sections[1]
	if first.ID != "early" || first.StartPosition != 0 || first.EndPosition != 25 || first.WordCount != 5 {
		t.Fatalf("unexpected first section %+v", first)
	}
	if second.ID != "late" || second.StartPosition != 25 || second.Content != content[25:] {
		t.Fatalf("overlap not trimmed: %+v", second)
	}
	if out.WordCount != 8 {
		t.Fatalf("word count = %d, want 8", out.WordCount)
	}
	if in.Sections[0].ID != "late" || len(in.Sections) != 5 {
		t.Fatalf("input chapter was modified")
	}
}

func TestPrepareChapterImplicitSection(t *testing.T) {
	out := PrepareChapter(domain.Chapter{Title: "T", Content: "one two three"})
	if len(out.Sections) != 1 {
		t.Fatalf("expected implicit section, got %+v", out.Sections)
	}
	s := out.Sections[0]
	if s.ID != ImplicitSectionID || s.Heading != "T" || s.EndPosition != 13 || s.WordCount != 3 {
		t.Fatalf("unexpected implicit section %+v", s)
	}
	if empty := PrepareChapter(domain.Chapter{Content: "   "}); len(empty.Sections) != 0 {
		t.Fatalf("blank content should not get a section")
	}
}

func TestRunStateTransitions(t *testing.T) {
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	st := NewRunState("r", func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	})
	st.Start(domain.StageReceived, 0)
	st.Succeed(domain.StageReceived)
	if got := st.Stages[domain.StageReceived].Duration(); got != time.Second {
		t.Fatalf("duration = %v", got)
	}
	st.Start(domain.StageEvaluatingPrinciples, 10)
	st.Fail(domain.StageEvaluatingPrinciples, errors.New("boom"))
	ev := st.Stages[domain.StageEvaluatingPrinciples]
	if ev.Status != StageFailed || ev.LastError != "boom" {
		t.Fatalf("unexpected failed stage %+v", ev)
	}
	if st.Stages[domain.StageFinalizing].Status != StageSkipped || st.Stages[domain.StageBuildingVisualization].Status != StageSkipped {
		t.Fatalf("later stages should be skipped")
	}
	if st.Stages[domain.StageExtractingConcepts].Status != StagePending {
		t.Fatalf("earlier untouched stage should stay pending")
	}
	if st.Done() {
		t.Fatalf("failed run is not done")
	}
	if st.Current != domain.StageEvaluatingPrinciples {
		t.Fatalf("current = %s", st.Current)
	}
}
