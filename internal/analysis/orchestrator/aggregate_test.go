package orchestrator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yungbote/learnlens/internal/domain"
)

func TestOverallScore(t *testing.T) {
	cases := []struct {
		name  string
		evals []domain.PrincipleEvaluation
		want  int
	}{
		{"none", nil, 0},
		{"weighted", []domain.PrincipleEvaluation{
			{Score: 100, Weight: 3, Status: domain.EvaluationOK},
			{Score: 0, Weight: 1, Status: domain.EvaluationOK},
		}, 75},
		{"rounds", []domain.PrincipleEvaluation{
			{Score: 50, Weight: 1, Status: domain.EvaluationOK},
			{Score: 51, Weight: 1, Status: domain.EvaluationOK},
		}, 51},
		{"skips unavailable", []domain.PrincipleEvaluation{
			{Score: 80, Weight: 1, Status: domain.EvaluationOK},
			{Score: 0, Weight: 5, Status: domain.EvaluationUnavailable},
		}, 80},
		{"all unavailable", []domain.PrincipleEvaluation{
			{Score: 0, Weight: 1, Status: domain.EvaluationUnavailable},
		}, 0},
	}
	for _, tc := range cases {
		if got := OverallScore(tc.evals); got != tc.want {
			t.Fatalf("%s: OverallScore = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func suggestion(id string, p domain.PrincipleID, pr domain.Priority) domain.Suggestion {
	return domain.Suggestion{ID: id, Principle: p, Priority: pr, Title: id}
}

func TestRecommendationsPromotionAndOrder(t *testing.T) {
	evals := []domain.PrincipleEvaluation{
		{Principle: domain.PrincipleDeepProcessing, Score: 90, Suggestions: []domain.Suggestion{
			suggestion("deepProcessing.low", domain.PrincipleDeepProcessing, domain.PriorityLow),
			suggestion("deepProcessing.high", domain.PrincipleDeepProcessing, domain.PriorityHigh),
		}},
		{Principle: domain.PrincipleDualCoding, Score: 40, Suggestions: []domain.Suggestion{
			suggestion("dualCoding.low", domain.PrincipleDualCoding, domain.PriorityLow),
			suggestion("dualCoding.medium", domain.PrincipleDualCoding, domain.PriorityMedium),
			suggestion("dualCoding.medium", domain.PrincipleDualCoding, domain.PriorityMedium),
		}},
		{Principle: domain.PrincipleSpacedRepetition, Score: 60, Suggestions: []domain.Suggestion{
			suggestion("spacedRepetition.high", domain.PrincipleSpacedRepetition, domain.PriorityHigh),
		}},
	}
	got := Recommendations(evals)
	var ids []string
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	want := "deepProcessing.high,spacedRepetition.high,dualCoding.medium,dualCoding.low"
	if strings.Join(ids, ",") != want {
		t.Fatalf("recommendations = %v, want %s", ids, want)
	}
	if got[0].PrincipleScore != 90 {
		t.Fatalf("principle score not carried: %+v", got[0])
	}
}

func TestRecommendationsCapped(t *testing.T) {
	ev := domain.PrincipleEvaluation{Principle: domain.PrincipleCognitiveLoad, Score: 10}
	for i := 0; i < 20; i++ {
		ev.Suggestions = append(ev.Suggestions, suggestion(fmt.Sprintf("cognitiveLoad.s%d", i), ev.Principle, domain.PriorityMedium))
	}
	if got := Recommendations([]domain.PrincipleEvaluation{ev}); len(got) != MaxRecommendations {
		t.Fatalf("expected cap of %d, got %d", MaxRecommendations, len(got))
	}
}

func TestStructureAnalysisScaffolding(t *testing.T) {
	ch := PrepareChapter(buildChapter("Graphs",
		[2]string{"Learning Objectives", "You will learn about graphs."},
		[2]string{"Breadth-first search", "Building on the previous section, we walk level by level."},
		[2]string{"Practice Exercises", "Try these problems."},
		[2]string{"Chapter Summary", "Graphs model relationships."},
	))
	sa := BuildStructureAnalysis(&ch)
	sc := sa.Scaffolding
	if !sc.HasSummary || !sc.HasObjectives || !sc.HasPractice {
		t.Fatalf("unexpected scaffolding %+v", sc)
	}
	if sc.HasIntroduction || sc.HasReview {
		t.Fatalf("no intro or review heading present: %+v", sc)
	}
	if sa.SectionCount != 4 || sa.Pacing != domain.PacingFast {
		t.Fatalf("unexpected structure %+v", sa)
	}
	if got := sa.TransitionQuality; got < 0.333 || got > 0.334 {
		t.Fatalf("transition quality = %v, want 1/3", got)
	}
}

func TestPacingFor(t *testing.T) {
	cases := map[float64]domain.Pacing{
		0:    domain.PacingFast,
		299:  domain.PacingFast,
		300:  domain.PacingModerate,
		700:  domain.PacingModerate,
		701:  domain.PacingSlow,
		2000: domain.PacingSlow,
	}
	for avg, want := range cases {
		if got := PacingFor(avg); got != want {
			t.Fatalf("PacingFor(%v) = %s, want %s", avg, got, want)
		}
	}
}

func graphWith(conceptsByID map[string][]int) domain.ConceptGraph {
	g := domain.EmptyGraph()
	for _, id := range []string{"x", "y", "z"} {
		positions, ok := conceptsByID[id]
		if !ok {
			continue
		}
		c := domain.Concept{ID: id, Name: strings.ToUpper(id), Importance: domain.ImportanceDetail, FirstMention: positions[0]}
		for _, p := range positions {
			c.Mentions = append(c.Mentions, domain.Mention{Position: p})
		}
		g.Concepts = append(g.Concepts, c)
		g.Hierarchy.Detail = append(g.Hierarchy.Detail, id)
	}
	for _, e := range g.Timeline() {
		g.Sequence = append(g.Sequence, e.ConceptID)
	}
	return g
}

// Three mentions of X within 200 characters, a 5000-character gap, then one more.
func TestInterleavingPatternBlockedRun(t *testing.T) {
	g := graphWith(map[string][]int{"x": {0, 100, 200, 5200}})
	p := BuildInterleavingPattern(&g)
	if p.TotalMentions != 4 || p.BlockingRatio != 0.75 {
		t.Fatalf("unexpected pattern %+v", p)
	}
	if len(p.BlockingSegments) != 1 || p.BlockingSegments[0].Length != 3 || p.BlockingSegments[0].EndPosition != 200 {
		t.Fatalf("unexpected segments %+v", p.BlockingSegments)
	}
	if p.AverageBlockSize != 2 || p.TopicSwitches != 0 {
		t.Fatalf("unexpected block size/switches %+v", p)
	}
	if p.Assessment != AssessmentInsufficient {
		t.Fatalf("4 mentions is below the sample floor, got %q", p.Assessment)
	}
}

func TestInterleavingPatternAssessments(t *testing.T) {
	interleaved := graphWith(map[string][]int{"x": {0, 200, 400}, "y": {100, 300, 500}})
	if p := BuildInterleavingPattern(&interleaved); p.Assessment != AssessmentGood || p.TopicSwitches != 5 {
		t.Fatalf("expected good interleaving, got %+v", p)
	}
	blocked := graphWith(map[string][]int{"x": {0, 50, 100, 150}, "y": {300, 350, 400}})
	if p := BuildInterleavingPattern(&blocked); p.Assessment != AssessmentHigh || p.BlockingRatio != 1 {
		t.Fatalf("expected high blocking, got %+v", p)
	}
}

func TestReviewSchedule(t *testing.T) {
	g := graphWith(map[string][]int{"x": {0, 1000, 2000}, "y": {500, 600, 5600}, "z": {50}})
	rs := BuildReviewSchedule(&g)
	if len(rs.Concepts) != 2 {
		t.Fatalf("only concepts with two mentions are scheduled, got %+v", rs.Concepts)
	}
	x, y := rs.Concepts[0], rs.Concepts[1]
	if x.ConceptID != "x" || x.AverageGap != 1000 || !x.IsOptimal {
		t.Fatalf("unexpected x review %+v", x)
	}
	// gaps 100 and 5000: variance 6002500 < mean^2 6502500.
	if y.AverageGap != 2550 || !y.IsOptimal {
		t.Fatalf("unexpected y review %+v", y)
	}
	if rs.OptimalSpacing != 1775 || rs.CurrentAverageSpacing != 1775 {
		t.Fatalf("unexpected spacing %+v", rs)
	}

	ca := BuildConceptAnalysis(&domain.Chapter{WordCount: 1000}, &g, rs)
	if ca.TotalConceptsIdentified != 3 || len(ca.ReviewPatterns) != 2 || ca.ConceptDensity != 3 {
		t.Fatalf("unexpected concept analysis %+v", ca)
	}
	if len(ca.OrphanConcepts) != 3 {
		t.Fatalf("concepts without relationships are orphans, got %v", ca.OrphanConcepts)
	}
}

func TestCognitiveLoadCurve(t *testing.T) {
	ch := PrepareChapter(buildChapter("Load",
		[2]string{"One", "Alpha appears here. Beta appears here too."},
		[2]string{"Two", "Nothing new happens in this short and simple part."},
	))
	alpha := strings.Index(ch.Content, "Alpha")
	beta := strings.Index(ch.Content, "Beta")
	g := graphWith(map[string][]int{"x": {alpha}, "y": {beta}})
	curve := CognitiveLoadCurve(&ch, &g)
	if len(curve) != 2 {
		t.Fatalf("expected a point per section, got %d", len(curve))
	}
	first, second := curve[0], curve[1]
	if first.Factors.Novelty != 1 || first.Factors.Density != 1 {
		t.Fatalf("first section should carry all novelty and density: %+v", first.Factors)
	}
	if second.Factors.Novelty != 0 || second.Factors.Density != 0 {
		t.Fatalf("second section introduces nothing: %+v", second.Factors)
	}
	for _, p := range curve {
		if p.Load < 0 || p.Load > 1 {
			t.Fatalf("load %v out of range", p.Load)
		}
	}
	if first.Load <= second.Load {
		t.Fatalf("first section should be heavier: %v vs %v", first.Load, second.Load)
	}
	if first.SectionID != "s1" || first.Position != 0 {
		t.Fatalf("unexpected point header %+v", first)
	}
}
