package principles

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

func evidenceValue(t *testing.T, ev domain.PrincipleEvaluation, metric string) float64 {
	t.Helper()
	for _, e := range ev.Evidence {
		if e.Metric == metric {
			return e.Value
		}
	}
	t.Fatalf("%s: no evidence %q in %+v", ev.Principle, metric, ev.Evidence)
	return 0
}

func evidenceQuality(t *testing.T, ev domain.PrincipleEvaluation, metric string) domain.Quality {
	t.Helper()
	for _, e := range ev.Evidence {
		if e.Metric == metric {
			return e.Quality
		}
	}
	t.Fatalf("%s: no evidence %q in %+v", ev.Principle, metric, ev.Evidence)
	return ""
}

func findingTypes(ev domain.PrincipleEvaluation) []domain.FindingType {
	var out []domain.FindingType
	for _, f := range ev.Findings {
		out = append(out, f.Type)
	}
	return out
}

func hasSuggestion(ev domain.PrincipleEvaluation, id string) bool {
	for _, sg := range ev.Suggestions {
		if sg.ID == id {
			return true
		}
	}
	return false
}

func singleConceptGraph(id string, positions ...int) domain.ConceptGraph {
	g := domain.EmptyGraph()
	c := domain.Concept{ID: id, Name: id, Importance: domain.ImportanceCore, FirstMention: positions[0]}
	for _, p := range positions {
		c.Mentions = append(c.Mentions, domain.Mention{Position: p})
		g.Sequence = append(g.Sequence, id)
	}
	g.Concepts = append(g.Concepts, c)
	g.Hierarchy.Core = append(g.Hierarchy.Core, id)
	return g
}

func TestRegistryOrder(t *testing.T) {
	all := All()
	if len(all) != len(domain.PrincipleOrder) {
		t.Fatalf("expected %d evaluators, got %d", len(domain.PrincipleOrder), len(all))
	}
	for i, e := range all {
		if e.Principle() != domain.PrincipleOrder[i] {
			t.Fatalf("evaluator %d is %s, want %s", i, e.Principle(), domain.PrincipleOrder[i])
		}
		if _, ok := ByID(e.Principle()); !ok {
			t.Fatalf("ByID(%s) not found", e.Principle())
		}
	}
	cat := Catalogue(map[domain.PrincipleID]float64{domain.PrincipleInterleaving: 2})
	if cat[3].Weight != 2 || cat[0].Weight != 1.2 {
		t.Fatalf("unexpected catalogue weights %+v", cat)
	}
	if cat[4].PatternVersion != "dual-coding/v1" {
		t.Fatalf("unexpected pattern version %q", cat[4].PatternVersion)
	}
}

// Empty text with an empty graph must yield a defined score and at least one
// weak evidence entry from every evaluator.
func TestEvaluatorsOnEmptyChapter(t *testing.T) {
	ch := &domain.Chapter{ID: "empty"}
	g := domain.EmptyGraph()
	for _, e := range All() {
		ev := e.Evaluate(ch, &g)
		if ev.Score < 0 || ev.Score > 100 {
			t.Fatalf("%s: score %d out of range", e.Principle(), ev.Score)
		}
		if ev.Principle != e.Principle() || ev.Status != domain.EvaluationOK {
			t.Fatalf("%s: unexpected header %+v", e.Principle(), ev)
		}
		weak := false
		for _, evd := range ev.Evidence {
			if math.IsNaN(evd.Value) {
				t.Fatalf("%s: NaN evidence %s", e.Principle(), evd.Metric)
			}
			if evd.Quality == domain.QualityWeak {
				weak = true
			}
		}
		if !weak {
			t.Fatalf("%s: expected at least one weak evidence entry", e.Principle())
		}
		if ev.Findings == nil || ev.Suggestions == nil || ev.Evidence == nil {
			t.Fatalf("%s: nil slices in evaluation", e.Principle())
		}
	}
}

func TestEvaluatorsAcceptNilGraph(t *testing.T) {
	ch := &domain.Chapter{Content: "Why does this happen? How does it work?"}
	for _, e := range All() {
		ev := e.Evaluate(ch, nil)
		if ev.Score < 0 || ev.Score > 100 {
			t.Fatalf("%s: score %d out of range", e.Principle(), ev.Score)
		}
	}
}

func TestSpacedRepetitionAlignmentBestFit(t *testing.T) {
	content := strings.Repeat("x ", 3200)
	ch := &domain.Chapter{Content: content}
	g := singleConceptGraph("x", 100, 6100)
	ev := SpacedRepetition{}.Evaluate(ch, &g)
	got := evidenceValue(t, ev, "alignmentScore")
	if math.Abs(got-5000.0/6000.0) > 0.001 {
		t.Fatalf("alignment = %v, want ~0.833", got)
	}
	if got := AlignmentScore([]int{500, 2000}); got != 1 {
		t.Fatalf("exact targets should align perfectly, got %v", got)
	}
	if AlignmentScore(nil) != 0 {
		t.Fatalf("no gaps should score 0")
	}
}

func TestSpacedRepetitionMassedRatio(t *testing.T) {
	g := singleConceptGraph("x", 0, 100, 200, 5200)
	if got := MassedRatio(&g); got != 0.75 {
		t.Fatalf("massed ratio = %v, want 0.75", got)
	}
	if got := ForgettingPrevention([]int{100, 100, 5000}); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Fatalf("forgetting prevention = %v", got)
	}
}

func TestDeepProcessingWhyHowCount(t *testing.T) {
	ch := &domain.Chapter{Content: "Why does this happen? How does it work?"}
	g := domain.EmptyGraph()
	ev := DeepProcessing{}.Evaluate(ch, &g)
	if got := evidenceValue(t, ev, "whyHowQuestions"); got != 2 {
		t.Fatalf("why/how count = %v, want 2", got)
	}
}

func TestDeepProcessingHigherOrder(t *testing.T) {
	text := "Compare the two methods. Evaluate which one scales better. Design your own variant. What is a list?"
	levels := BloomCounts(text)
	if levels[bloomAnalyze] != 1 || levels[bloomEvaluate] != 1 || levels[bloomCreate] != 1 {
		t.Fatalf("unexpected bloom counts %v", levels)
	}
	ch := &domain.Chapter{Content: text}
	g := domain.EmptyGraph()
	ev := DeepProcessing{}.Evaluate(ch, &g)
	if got := evidenceValue(t, ev, "higherOrderPercentage"); got < 0.4 {
		t.Fatalf("higher-order percentage = %v, want >= 0.4", got)
	}
}

func TestExplanationDepthLadder(t *testing.T) {
	text := "Osmosis is defined as the movement of water across a membrane. For example, a raisin swells in water " +
		"because water moves into it. This is used in food preservation."
	g := singleConceptGraph("osmosis", 0)
	g.Concepts = append(g.Concepts, domain.Concept{ID: "water", Importance: domain.ImportanceDetail, FirstMention: 30,
		Mentions: []domain.Mention{{Position: 30}}})
	g.Hierarchy.Detail = []string{"water"}
	g.Relationships = []domain.ConceptRelationship{{Source: "water", Target: "osmosis", Type: domain.RelationshipRelated, Strength: 1}}
	if got := ExplanationDepth(text, &g, g.Concepts[0]); got != 5 {
		t.Fatalf("depth = %d, want 5", got)
	}
}

func TestInterleavingBlockingRatio(t *testing.T) {
	content := strings.Repeat("a ", 2700)
	ch := &domain.Chapter{Content: content}
	g := singleConceptGraph("x", 0, 100, 200, 5200)
	ev := Interleaving{}.Evaluate(ch, &g)
	if got := evidenceValue(t, ev, "blockingRatio"); got != 0.75 {
		t.Fatalf("blocking ratio = %v, want 0.75", got)
	}
	if BlockingRatio(nil) != 0 {
		t.Fatalf("empty timeline should give 0")
	}
}

func TestInterleavingSectionDensity(t *testing.T) {
	ch := &domain.Chapter{
		Content: strings.Repeat("w ", 100),
		Sections: []domain.Section{
			{ID: "s1", StartPosition: 0, EndPosition: 100},
			{ID: "s2", StartPosition: 100, EndPosition: 200},
		},
	}
	g := domain.EmptyGraph()
	for i, id := range []string{"a", "b", "c"} {
		g.Concepts = append(g.Concepts, domain.Concept{ID: id, Importance: domain.ImportanceDetail, FirstMention: i * 10,
			Mentions: []domain.Mention{{Position: i * 10}}})
	}
	// s1 holds three distinct concepts, s2 none.
	if got := SectionDensity(ch, &g); got != 0.5 {
		t.Fatalf("section density = %v, want 0.5", got)
	}
}

func TestMetacognitionFullMarks(t *testing.T) {
	text := "Learning objectives: explain diffusion.\n\n" +
		strings.Repeat("Diffusion moves particles from high to low concentration. ", 40) +
		"\n\nCheck your understanding: how confident are you?"
	ev := Metacognition{}.Evaluate(&domain.Chapter{Content: text}, nil)
	if ev.Score != 100 {
		t.Fatalf("score = %d, want 100; evidence %+v", ev.Score, ev.Evidence)
	}
	for _, f := range ev.Findings {
		if f.Type != domain.FindingPositive {
			t.Fatalf("unexpected finding %+v", f)
		}
	}
}

func TestCognitiveLoadPenalisesLongSections(t *testing.T) {
	long := strings.Repeat("Short words make short sentences here. ", 400)
	ch := &domain.Chapter{Content: long, Sections: []domain.Section{{ID: "s1", StartPosition: 0, EndPosition: len(long)}}}
	g := domain.EmptyGraph()
	ev := CognitiveLoad{}.Evaluate(ch, &g)
	if ev.Score >= 100 {
		t.Fatalf("expected a penalty for a 2400-word section, got %d", ev.Score)
	}
	critical := false
	for _, f := range ev.Findings {
		if f.Type == domain.FindingCritical {
			critical = true
		}
	}
	if !critical {
		t.Fatalf("expected a critical finding, got %+v", ev.Findings)
	}
	found := false
	for _, sg := range ev.Suggestions {
		if sg.ID == "cognitiveLoad.split-sections" && sg.Priority == domain.PriorityHigh {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected split-sections suggestion, got %+v", ev.Suggestions)
	}
}

func TestHierarchyBalance(t *testing.T) {
	g := domain.EmptyGraph()
	tiers := []domain.ImportanceTier{
		domain.ImportanceCore, domain.ImportanceCore,
		domain.ImportanceSupporting, domain.ImportanceSupporting, domain.ImportanceSupporting,
		domain.ImportanceDetail, domain.ImportanceDetail, domain.ImportanceDetail, domain.ImportanceDetail, domain.ImportanceDetail,
	}
	for i, tier := range tiers {
		g.Concepts = append(g.Concepts, domain.Concept{ID: string(rune('a' + i)), Importance: tier})
	}
	if got := HierarchyBalance(&g); math.Abs(got-1) > 1e-9 {
		t.Fatalf("ideal split should balance to 1, got %v", got)
	}
	for i := range g.Concepts {
		g.Concepts[i].Importance = domain.ImportanceCore
	}
	if got := HierarchyBalance(&g); math.Abs(got-0.2) > 1e-9 {
		t.Fatalf("all-core balance = %v, want 0.2", got)
	}
	empty := domain.EmptyGraph()
	if HierarchyBalance(&empty) != 0 {
		t.Fatalf("empty graph should balance to 0")
	}
}

func TestEvaluatorsDeterministic(t *testing.T) {
	text := "# Intro\nIn this chapter we will compare stacks and queues. Why does order matter?\n\n" +
		"# Practice\nExplain how a queue differs from a stack. Imagine a line at a shop; you join at the back."
	ch := &domain.Chapter{Content: text}
	g := singleConceptGraph("stack", 40, 120)
	for _, e := range All() {
		a := e.Evaluate(ch, &g)
		b := e.Evaluate(ch, &g)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s is not deterministic", e.Principle())
		}
	}
}

const slideOutline = "Preparing a slide involves four steps:\n" +
	"a) Collection of samples\n" +
	"b) Fixing the specimen\n" +
	"c) Staining with dye\n" +
	"d) Viewing under the microscope\n"

func TestClassifyPrompts(t *testing.T) {
	cases := []struct {
		name        string
		text        string
		recall      int
		recognition int
	}{
		{"outline then instruction", slideOutline + "\nExplain in two sentences why staining matters.", 1, 0},
		{"instruction then outline", "Explain in two sentences why staining matters.\n" + slideOutline[len("Preparing a slide involves four steps:\n"):], 1, 0},
		{
			"multiple choice then recall",
			"Which gas do plants absorb?\na) Oxygen\nb) Carbon dioxide\nc) Nitrogen\n\nExplain how leaves take in that gas.\nList two products of photosynthesis.",
			2, 1,
		},
		{"prompt-like option stays in its block", "Which statement is accurate?\na) Define the term first\nb) Skip the definition", 0, 1},
		{"single lettered line is not a choice", "What is osmosis?\na) Water movement\n", 1, 0},
		{"recognition cue without options", "Is a square a rectangle, true or false?", 0, 1},
		{"blank lines before options", "Which number is prime?\n\na) 4\nb) 7", 0, 1},
		{"no prompts", slideOutline, 0, 0},
	}
	for _, tc := range cases {
		recall, recognition := ClassifyPrompts(tc.text, textstat.PromptSpans(tc.text))
		if recall != tc.recall || recognition != tc.recognition {
			t.Fatalf("%s: recall/recognition = %d/%d, want %d/%d", tc.name, recall, recognition, tc.recall, tc.recognition)
		}
	}
}

func TestRetrievalPracticeEvidence(t *testing.T) {
	plain := []domain.Section{
		{ID: "s1", Content: "Cells are small."},
		{ID: "s2", Content: "Tissues group cells."},
		{ID: "s3", Content: "Organs group tissues."},
		{ID: "s4", Content: "Systems group organs."},
		{ID: "s5", Content: "Explain why cells divide."},
	}
	var plainText []string
	for _, sec := range plain {
		plainText = append(plainText, sec.Content)
	}
	mixed := []domain.Section{
		{ID: "cells", Content: "# Cells\nWhich organelle makes ATP?\na) Nucleus\nb) Mitochondrion\n\nExplain how ATP stores energy."},
		{ID: "membranes", Content: "# Membranes\nMembranes separate the cell from its surroundings."},
		{ID: "review", Content: "# Review\nDescribe the role of the membrane. List two membrane proteins."},
	}
	mixedText := mixed[0].Content + "\n\n" + mixed[1].Content + "\n\n" + mixed[2].Content

	cases := []struct {
		name         string
		ch           *domain.Chapter
		recallRatio  float64
		density      float64
		distribution float64
		findings     []domain.FindingType
	}{
		{
			name:         "lettered outline with one recall prompt",
			ch:           &domain.Chapter{Content: slideOutline + "\nExplain in two sentences why staining matters.", WordCount: 200},
			recallRatio:  1,
			density:      5,
			distribution: 1,
			findings:     []domain.FindingType{domain.FindingPositive},
		},
		{
			name:         "mixed sections",
			ch:           &domain.Chapter{Content: mixedText, WordCount: 1000, Sections: mixed},
			recallRatio:  0.75,
			density:      4,
			distribution: 0.667,
			findings:     []domain.FindingType{domain.FindingPositive},
		},
		{
			name: "recognition heavy",
			ch: &domain.Chapter{
				Content:   "Which of the following is a prime number?\na) 4\nb) 9\nc) 7\n\nIs a square a rectangle, true or false?",
				WordCount: 1000,
			},
			recallRatio:  0,
			density:      2,
			distribution: 1,
			findings:     []domain.FindingType{domain.FindingWarning},
		},
		{
			name:         "questions bunched in one section",
			ch:           &domain.Chapter{Content: strings.Join(plainText, "\n\n"), WordCount: 100, Sections: plain},
			recallRatio:  1,
			density:      10,
			distribution: 0.2,
			findings:     []domain.FindingType{domain.FindingPositive, domain.FindingWarning},
		},
		{
			name:     "no text",
			ch:       &domain.Chapter{},
			findings: []domain.FindingType{domain.FindingCritical},
		},
	}
	for _, tc := range cases {
		ev := RetrievalPractice{}.Evaluate(tc.ch, nil)
		if got := evidenceValue(t, ev, "recallRatio"); math.Abs(got-tc.recallRatio) > 0.001 {
			t.Fatalf("%s: recallRatio = %v, want %v", tc.name, got, tc.recallRatio)
		}
		if got := evidenceValue(t, ev, "retrievalDensity"); math.Abs(got-tc.density) > 0.001 {
			t.Fatalf("%s: retrievalDensity = %v, want %v", tc.name, got, tc.density)
		}
		if got := evidenceValue(t, ev, "sectionDistribution"); math.Abs(got-tc.distribution) > 0.001 {
			t.Fatalf("%s: sectionDistribution = %v, want %v", tc.name, got, tc.distribution)
		}
		if got := findingTypes(ev); !reflect.DeepEqual(got, tc.findings) {
			t.Fatalf("%s: findings = %+v, want %v", tc.name, ev.Findings, tc.findings)
		}
	}
}

func TestRetrievalPracticeOutlineIsNotRecognition(t *testing.T) {
	ch := &domain.Chapter{Content: "# Staining\n" + slideOutline + "\nExplain in two sentences why staining matters."}
	ev := RetrievalPractice{}.Evaluate(ch, nil)
	if got := evidenceQuality(t, ev, "recallRatio"); got != domain.QualityStrong {
		t.Fatalf("recallRatio quality = %s, want strong", got)
	}
	for _, f := range ev.Findings {
		if strings.Contains(f.Message, "recognition-based") {
			t.Fatalf("unexpected finding %+v", f)
		}
	}
	if hasSuggestion(ev, "retrievalPractice.prefer-free-recall") {
		t.Fatalf("unexpected free-recall suggestion in %+v", ev.Suggestions)
	}
}

func TestDualCodingVisualDensity(t *testing.T) {
	cases := []struct {
		name     string
		ch       *domain.Chapter
		density  float64
		score    int
		findings []domain.FindingType
	}{
		{
			name:     "markdown image without a reference",
			ch:       &domain.Chapter{Content: "![mitosis](m.png)\n\nThe membrane surrounds the cell.", WordCount: 500},
			density:  2,
			score:    48,
			findings: []domain.FindingType{domain.FindingWarning},
		},
		{
			name:     "image plus referenced figure",
			ch:       &domain.Chapter{Content: "![mitosis](m.png)\nAs shown in Figure 1, the chart tracks growth.", WordCount: 1000},
			density:  3,
			score:    75,
			findings: []domain.FindingType{domain.FindingPositive},
		},
		{
			name:     "prose only",
			ch:       &domain.Chapter{Content: "Plain prose only.", WordCount: 100},
			density:  0,
			score:    0,
			findings: []domain.FindingType{domain.FindingCritical},
		},
	}
	for _, tc := range cases {
		ev := DualCoding{}.Evaluate(tc.ch, nil)
		if got := evidenceValue(t, ev, "visualDensity"); math.Abs(got-tc.density) > 0.001 {
			t.Fatalf("%s: visualDensity = %v, want %v", tc.name, got, tc.density)
		}
		if ev.Score != tc.score {
			t.Fatalf("%s: score = %d, want %d; evidence %+v", tc.name, ev.Score, tc.score, ev.Evidence)
		}
		if got := findingTypes(ev); !reflect.DeepEqual(got, tc.findings) {
			t.Fatalf("%s: findings = %+v, want %v", tc.name, ev.Findings, tc.findings)
		}
	}
	if got := VisualReferences("![mitosis](m.png) ![](x.svg)"); got != 2 {
		t.Fatalf("markdown images = %d, want 2", got)
	}
}

func TestSchemaBuildingPrerequisiteOrder(t *testing.T) {
	graph := func(first map[string]int, rels ...domain.ConceptRelationship) *domain.ConceptGraph {
		g := domain.EmptyGraph()
		for _, id := range []string{"a", "b", "c"} {
			pos, ok := first[id]
			if !ok {
				continue
			}
			g.Concepts = append(g.Concepts, domain.Concept{ID: id, Name: id, Importance: domain.ImportanceCore, FirstMention: pos,
				Mentions: []domain.Mention{{Position: pos}}})
		}
		g.Relationships = rels
		return &g
	}
	prereq := func(src, dst string) domain.ConceptRelationship {
		return domain.ConceptRelationship{Source: src, Target: dst, Type: domain.RelationshipPrerequisite, Strength: 1}
	}
	cases := []struct {
		name    string
		g       *domain.ConceptGraph
		order   float64
		quality domain.Quality
		warn    bool
	}{
		{"introduced first", graph(map[string]int{"a": 0, "b": 20}, prereq("a", "b")), 1, domain.QualityStrong, false},
		{"two of three out of order", graph(map[string]int{"a": 10, "b": 50, "c": 5}, prereq("a", "b"), prereq("b", "c"), prereq("a", "c")), 0.333, domain.QualityWeak, true},
		{"half in order", graph(map[string]int{"a": 10, "b": 50, "c": 5}, prereq("a", "b"), prereq("b", "c")), 0.5, domain.QualityModerate, false},
		{
			"no prerequisite edges",
			graph(map[string]int{"a": 30, "b": 5}, domain.ConceptRelationship{Source: "a", Target: "b", Type: domain.RelationshipRelated, Strength: 1}),
			1, domain.QualityModerate, false,
		},
		{"empty graph", graph(nil), 0, domain.QualityWeak, false},
	}
	ch := &domain.Chapter{Content: "Cells divide and grow."}
	for _, tc := range cases {
		ev := SchemaBuilding{}.Evaluate(ch, tc.g)
		if got := evidenceValue(t, ev, "prerequisiteOrder"); math.Abs(got-tc.order) > 0.001 {
			t.Fatalf("%s: prerequisiteOrder = %v, want %v", tc.name, got, tc.order)
		}
		if got := evidenceQuality(t, ev, "prerequisiteOrder"); got != tc.quality {
			t.Fatalf("%s: prerequisiteOrder quality = %s, want %s", tc.name, got, tc.quality)
		}
		if got := hasSuggestion(ev, "schemaBuilding.reorder-prerequisites"); got != tc.warn {
			t.Fatalf("%s: reorder suggestion = %v, want %v", tc.name, got, tc.warn)
		}
	}
}

func TestSchemaBuildingAdvanceOrganizer(t *testing.T) {
	organizer := "In this chapter we will look at how cells divide. "
	filler := strings.Repeat("Cells divide and grow. ", 20)
	g := singleConceptGraph("cell", 0, 60)

	opening := SchemaBuilding{}.Evaluate(&domain.Chapter{Content: organizer + filler}, &g)
	closing := SchemaBuilding{}.Evaluate(&domain.Chapter{Content: filler + organizer}, &g)

	if evidenceValue(t, opening, "advanceOrganizer") != 1 || evidenceValue(t, closing, "advanceOrganizer") != 0 {
		t.Fatalf("advanceOrganizer = %v/%v, want 1/0",
			evidenceValue(t, opening, "advanceOrganizer"), evidenceValue(t, closing, "advanceOrganizer"))
	}
	if opening.Score-closing.Score != 10 {
		t.Fatalf("organizer should add 10 points, got %d vs %d", opening.Score, closing.Score)
	}
	if hasSuggestion(opening, "schemaBuilding.add-advance-organizer") || !hasSuggestion(closing, "schemaBuilding.add-advance-organizer") {
		t.Fatalf("organizer suggestion should only appear when the overview is missing")
	}
}

func TestGenerativeLearningScore(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		score    int
		findings []domain.FindingType
	}{
		{"generative tasks only", "Summarize the main idea in your own words.", 60, []domain.FindingType{domain.FindingWarning}},
		{"with predictions", "Summarize the main idea in your own words. Predict what will happen next.", 80, nil},
		{"nothing to produce", "Cells divide and grow.", 0, []domain.FindingType{domain.FindingCritical, domain.FindingWarning}},
	}
	for _, tc := range cases {
		ev := GenerativeLearning{}.Evaluate(&domain.Chapter{Content: tc.text, WordCount: 1000}, nil)
		if ev.Score != tc.score {
			t.Fatalf("%s: score = %d, want %d; evidence %+v", tc.name, ev.Score, tc.score, ev.Evidence)
		}
		if got := findingTypes(ev); !reflect.DeepEqual(got, tc.findings) {
			t.Fatalf("%s: findings = %+v, want %v", tc.name, ev.Findings, tc.findings)
		}
	}
}

func TestEmotionalRelevanceScore(t *testing.T) {
	base := "In practice, engineers use this every day at work."
	cases := []struct {
		name     string
		text     string
		score    int
		findings []domain.FindingType
	}{
		{"real-world only", base, 45, []domain.FindingType{domain.FindingPositive, domain.FindingWarning, domain.FindingWarning}},
		{
			"hook and motivation",
			base + " Have you ever wondered why bridges sway? You will be able to explain it.",
			78,
			[]domain.FindingType{domain.FindingPositive, domain.FindingWarning},
		},
	}
	for _, tc := range cases {
		ev := EmotionalRelevance{}.Evaluate(&domain.Chapter{Content: tc.text, WordCount: 500}, nil)
		if ev.Score != tc.score {
			t.Fatalf("%s: score = %d, want %d; evidence %+v", tc.name, ev.Score, tc.score, ev.Evidence)
		}
		if got := findingTypes(ev); !reflect.DeepEqual(got, tc.findings) {
			t.Fatalf("%s: findings = %+v, want %v", tc.name, ev.Findings, tc.findings)
		}
	}
}
