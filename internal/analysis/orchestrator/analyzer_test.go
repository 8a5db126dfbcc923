package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/learnlens/internal/analysis/concepts"
	"github.com/yungbote/learnlens/internal/analysis/principles"
	"github.com/yungbote/learnlens/internal/domain"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func buildChapter(title string, parts ...[2]string) domain.Chapter {
	var b strings.Builder
	var secs []domain.Section
	for i, p := range parts {
		start := b.Len()
		b.WriteString("# " + p[0] + "\n\n" + p[1] + "\n\n")
		secs = append(secs, domain.Section{
			ID:            fmt.Sprintf("s%d", i+1),
			Heading:       p[0],
			StartPosition: start,
			EndPosition:   b.Len(),
			Depth:         1,
		})
	}
	return domain.Chapter{ID: "ch-1", Title: title, Content: b.String(), Sections: secs}
}

func sampleChapter() domain.Chapter {
	return buildChapter("Energy in Cells",
		[2]string{"Introduction", "In this chapter we will explore how cells capture and release energy. " +
			"Have you ever wondered why you feel tired when you skip a meal? **Photosynthesis** is defined as the " +
			"process by which plants convert light into chemical energy stored in glucose."},
		[2]string{"Photosynthesis", "Now that we know why energy matters, consider photosynthesis in detail. " +
			"Photosynthesis happens in the chloroplast because chlorophyll absorbs light. For example, a leaf in " +
			"sunlight produces glucose and oxygen. Why does the chloroplast need water? Explain the light reactions " +
			"in your own words."},
		[2]string{"Cellular Respiration", "Building on photosynthesis, cellular respiration requires glucose. " +
			"Unlike photosynthesis, cellular respiration releases energy. Compare the two processes and evaluate " +
			"which one stores energy. Imagine a runner at the end of a race; her muscles rely on respiration."},
		[2]string{"Summary", "To summarize, photosynthesis stores energy in glucose and cellular respiration " +
			"releases it. Check your understanding: how confident are you that you could explain the cycle to a friend?"},
	)
}

func newTestAnalyzer(opts Options) *Analyzer {
	opts.Clock = fixedClock
	return New(nil, nil, opts)
}

func TestAnalyzeProducesCompleteReport(t *testing.T) {
	a := newTestAnalyzer(DefaultOptions())
	var got []Progress
	res, err := a.Analyze(context.Background(), "run-1", domain.AnalysisRequest{Chapter: sampleChapter(), Domain: "biology"},
		func(p Progress) { got = append(got, p) })
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.RunID != "run-1" || res.ChapterID != "ch-1" || !res.AnalyzedAt.Equal(fixedNow) {
		t.Fatalf("unexpected header %+v", res)
	}
	if len(res.Principles) != len(domain.PrincipleOrder) {
		t.Fatalf("expected %d principles, got %d", len(domain.PrincipleOrder), len(res.Principles))
	}
	for i, ev := range res.Principles {
		if ev.Principle != domain.PrincipleOrder[i] {
			t.Fatalf("principle %d is %s, want %s", i, ev.Principle, domain.PrincipleOrder[i])
		}
		if ev.Score < 0 || ev.Score > 100 {
			t.Fatalf("%s score %d out of range", ev.Principle, ev.Score)
		}
		if ev.Weight != domain.DefaultWeights[ev.Principle] {
			t.Fatalf("%s weight %v", ev.Principle, ev.Weight)
		}
	}
	if res.OverallScore < 0 || res.OverallScore > 100 {
		t.Fatalf("overall score %d out of range", res.OverallScore)
	}
	if res.OverallScore != OverallScore(res.Principles) {
		t.Fatalf("overall score %d does not match weighted mean %d", res.OverallScore, OverallScore(res.Principles))
	}
	if !res.StructureAnalysis.Scaffolding.HasSummary || !res.StructureAnalysis.Scaffolding.HasIntroduction {
		t.Fatalf("expected intro and summary scaffolding, got %+v", res.StructureAnalysis.Scaffolding)
	}
	if res.StructureAnalysis.SectionCount != 4 || len(res.Visualizations.CognitiveLoadCurve) != 4 {
		t.Fatalf("expected 4 sections in structure and curve")
	}
	if res.ConceptAnalysis.TotalConceptsIdentified == 0 || len(res.Visualizations.ConceptMap.Nodes) != res.ConceptAnalysis.TotalConceptsIdentified {
		t.Fatalf("concept map and analysis disagree: %+v", res.ConceptAnalysis)
	}
	if len(res.Recommendations) > MaxRecommendations {
		t.Fatalf("too many recommendations: %d", len(res.Recommendations))
	}

	order := map[domain.Stage]int{}
	for i, s := range pipeline {
		order[s] = i
	}
	last, lastCompleted := -1, -1
	for _, p := range got {
		idx, ok := order[p.Stage]
		if !ok {
			t.Fatalf("unexpected stage %q", p.Stage)
		}
		if idx < last {
			t.Fatalf("progress out of order: %v", got)
		}
		last = idx
		if p.Stage == domain.StageEvaluatingPrinciples {
			if p.Completed < lastCompleted || p.Total != 10 {
				t.Fatalf("evaluation progress not monotonic: %+v", p)
			}
			lastCompleted = p.Completed
		}
	}
	if got[0].Stage != domain.StageReceived || got[len(got)-1].Stage != domain.StageFinalizing || lastCompleted != 10 {
		t.Fatalf("unexpected progress sequence %+v", got)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := newTestAnalyzer(DefaultOptions())
	req := domain.AnalysisRequest{Chapter: sampleChapter()}
	first, err := a.Analyze(context.Background(), "r", req, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, err := a.Analyze(context.Background(), "r", req, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two runs over the same chapter differ")
	}
}

type panicky struct{ id domain.PrincipleID }

func (p panicky) Principle() domain.PrincipleID { return p.id }

func (p panicky) Evaluate(*domain.Chapter, *domain.ConceptGraph) domain.PrincipleEvaluation {
	panic("pattern table corrupted")
}

func withPanicking(id domain.PrincipleID) []principles.Evaluator {
	out := principles.All()
	for i, e := range out {
		if e.Principle() == id {
			out[i] = panicky{id: id}
		}
	}
	return out
}

func TestAnalyzeIsolatesPanickingEvaluator(t *testing.T) {
	opts := DefaultOptions()
	opts.Evaluators = withPanicking(domain.PrincipleDualCoding)
	a := newTestAnalyzer(opts)
	res, err := a.Analyze(context.Background(), "r", domain.AnalysisRequest{Chapter: sampleChapter()}, nil)
	if err != nil {
		t.Fatalf("isolated failure should not fail the run: %v", err)
	}
	bad := res.Principles[domain.PrincipleDualCoding.OrderIndex()]
	if bad.Status != domain.EvaluationUnavailable || bad.Score != 0 {
		t.Fatalf("expected unavailable dual coding, got %+v", bad)
	}
	if len(bad.Evidence) != 1 || bad.Evidence[0].Metric != "evaluatorAvailability" || bad.Evidence[0].Quality != domain.QualityWeak {
		t.Fatalf("unexpected evidence %+v", bad.Evidence)
	}
	if len(bad.Findings) != 1 || bad.Findings[0].Type != domain.FindingCritical || !strings.Contains(bad.Findings[0].Evidence, "pattern table corrupted") {
		t.Fatalf("unexpected findings %+v", bad.Findings)
	}

	sum, weights := 0.0, 0.0
	for _, ev := range res.Principles {
		if ev.Principle == domain.PrincipleDualCoding {
			continue
		}
		sum += float64(ev.Score) * ev.Weight
		weights += ev.Weight
	}
	if want := int(math.Round(sum / weights)); res.OverallScore != want {
		t.Fatalf("overall = %d, want %d with dual coding excluded", res.OverallScore, want)
	}
}

func TestAnalyzeFailFastWithoutIsolation(t *testing.T) {
	opts := DefaultOptions()
	opts.IsolateFailures = false
	opts.Evaluators = withPanicking(domain.PrincipleMetacognition)
	a := newTestAnalyzer(opts)
	res, err := a.Analyze(context.Background(), "r", domain.AnalysisRequest{Chapter: sampleChapter()}, nil)
	if err == nil || res != nil {
		t.Fatalf("expected a run failure, got %v / %v", res, err)
	}
	if !IsEvaluatorFailure(err) {
		t.Fatalf("expected evaluator failure, got %v", err)
	}
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected wrapped panic error, got %v", err)
	}
}

func TestAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := newTestAnalyzer(DefaultOptions())
	res, err := a.Analyze(ctx, "r", domain.AnalysisRequest{Chapter: sampleChapter()}, nil)
	if !errors.Is(err, context.Canceled) || res != nil {
		t.Fatalf("expected context.Canceled and no result, got %v / %v", res, err)
	}
}

func TestAnalyzeRecoversFromExtractionFailure(t *testing.T) {
	cases := map[string]concepts.Extractor{
		"error": concepts.ExtractorFunc(func(context.Context, *domain.Chapter, concepts.Options) (domain.ConceptGraph, error) {
			return domain.ConceptGraph{}, errors.New("boom")
		}),
		"invalid": concepts.ExtractorFunc(func(context.Context, *domain.Chapter, concepts.Options) (domain.ConceptGraph, error) {
			g := domain.EmptyGraph()
			g.Concepts = []domain.Concept{{ID: "x", Importance: domain.ImportanceCore, Mentions: []domain.Mention{{Position: 1 << 30}}, FirstMention: 1 << 30}}
			g.Hierarchy.Core = []string{"x"}
			g.Sequence = []string{"x"}
			return g, nil
		}),
		"panic": concepts.ExtractorFunc(func(context.Context, *domain.Chapter, concepts.Options) (domain.ConceptGraph, error) {
			panic("extractor bug")
		}),
	}
	for name, ex := range cases {
		a := New(nil, ex, Options{IsolateFailures: true, Clock: fixedClock})
		res, err := a.Analyze(context.Background(), "r", domain.AnalysisRequest{Chapter: sampleChapter()}, nil)
		if err != nil {
			t.Fatalf("%s: extraction failure should be recovered, got %v", name, err)
		}
		if res.ConceptAnalysis.TotalConceptsIdentified != 0 || len(res.Visualizations.ConceptMap.Nodes) != 0 {
			t.Fatalf("%s: expected empty graph, got %+v", name, res.ConceptAnalysis)
		}
	}
}

func TestAnalyzeEmptyChapter(t *testing.T) {
	a := newTestAnalyzer(DefaultOptions())
	res, err := a.Analyze(context.Background(), "r", domain.AnalysisRequest{}, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.OverallScore < 0 || res.OverallScore > 100 {
		t.Fatalf("overall %d out of range", res.OverallScore)
	}
	if res.StructureAnalysis.SectionCount != 0 || len(res.Visualizations.CognitiveLoadCurve) != 0 {
		t.Fatalf("empty chapter should have no sections: %+v", res.StructureAnalysis)
	}
	if res.Visualizations.InterleavingPattern.Assessment != AssessmentInsufficient {
		t.Fatalf("unexpected assessment %q", res.Visualizations.InterleavingPattern.Assessment)
	}
}

func TestWeightsOverride(t *testing.T) {
	opts := DefaultOptions()
	opts.Weights = map[domain.PrincipleID]float64{domain.PrincipleEmotionalRelevance: 2, domain.PrincipleDualCoding: -1}
	a := newTestAnalyzer(opts)
	if a.Weight(domain.PrincipleEmotionalRelevance) != 2 {
		t.Fatalf("override ignored")
	}
	if a.Weight(domain.PrincipleDualCoding) != 0.8 {
		t.Fatalf("non-positive weight should fall back to the default")
	}
	if len(a.Weights()) != len(domain.PrincipleOrder) {
		t.Fatalf("weights map incomplete")
	}
}
