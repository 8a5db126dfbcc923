package principles

import (
	"math"

	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

// IdealHierarchy is the target core/supporting/detail split.
var IdealHierarchy = [3]float64{0.2, 0.3, 0.5}

const (
	balanceStrong      = 0.8
	balanceModerate    = 0.6
	relsPerConceptGoal = 1.0
	connectingTarget   = 3.0
	organizerShare     = 0.15
)

type SchemaBuilding struct{}

func (SchemaBuilding) Principle() domain.PrincipleID { return domain.PrincipleSchemaBuilding }

func (SchemaBuilding) Evaluate(ch *domain.Chapter, g *domain.ConceptGraph) domain.PrincipleEvaluation {
	s := newScorer(domain.PrincipleSchemaBuilding)
	text := contentOf(ch)
	t := SchemaBuildingPatterns

	balance := HierarchyBalance(g)
	s.award(balance, 1, 35)
	s.metric("hierarchyBalance", balance, balanceStrong, atLeast(balance, balanceStrong, balanceModerate),
		"closeness of the core/supporting/detail split to 20/30/50")
	if g.IsEmpty() {
		s.critical(0.7, "No concepts identified, so no knowledge structure can be built")
		s.suggest("name-key-concepts", domain.PriorityHigh,
			"Name and define key concepts",
			"Introduce the chapter's main ideas explicitly, with bolded terms and definitions.",
			"**Photosynthesis** is defined as the process by which plants convert light into chemical energy.")
	} else {
		switch {
		case balance < balanceModerate:
			s.warning(0.5, "Concept hierarchy is unbalanced (%.2f)", balance)
			s.suggest("rebalance-hierarchy", domain.PriorityMedium,
				"Clarify which ideas are central",
				"Too many or too few ideas compete for attention. Make a small set of concepts clearly central and subordinate the rest.",
				"Open each section by naming the one core idea it develops.")
		case balance >= balanceStrong:
			s.positive("Concept hierarchy is well balanced (%.2f)", balance)
		}
	}

	n := 0
	rels := 0
	if g != nil {
		n = len(g.Concepts)
		rels = len(g.Relationships)
	}
	perConcept := textstat.Ratio(float64(rels), float64(n))
	s.award(perConcept, relsPerConceptGoal, 25)
	s.metric("relationshipsPerConcept", perConcept, relsPerConceptGoal, atLeast(perConcept, relsPerConceptGoal, 0.5),
		"relationships per concept")
	if n > 0 && perConcept < 0.5 {
		s.warning(0.5, "Concepts are rarely connected to each other (%.2f links per concept)", perConcept)
		s.suggest("connect-concepts", domain.PriorityMedium,
			"Make connections explicit",
			"State how each new concept relates to ones introduced earlier.",
			"Osmosis builds on diffusion: it is diffusion of water across a membrane.")
	}

	order, prereqs := PrerequisiteOrder(g)
	s.award(order, 1, 15)
	q := atLeast(order, 1, 0.5)
	switch {
	case n == 0:
		q = domain.QualityWeak
	case prereqs == 0:
		q = domain.QualityModerate
	}
	s.metric("prerequisiteOrder", order, 1, q, "share of prerequisites introduced before the concepts that depend on them")
	if prereqs > 0 && order < 0.5 {
		s.warning(0.6, "Some concepts are used before their prerequisites are introduced")
		s.suggest("reorder-prerequisites", domain.PriorityHigh,
			"Introduce prerequisites first",
			"Move the explanation of foundational concepts ahead of the material that depends on them.",
			"Define a derivative before discussing the rate of change it measures.")
	}

	connecting := textstat.PerThousand(t.Count("connecting", text), wordsOf(ch))
	s.award(connecting, connectingTarget, 15)
	s.metric("connectingLanguage", connecting, connectingTarget, atLeast(connecting, connectingTarget, 1),
		"connective phrases per 1000 words")

	organizer := t.Has("organizer", leading(text, organizerShare))
	if organizer {
		s.awardPoints(10)
	}
	s.count("advanceOrganizer", boolCount(organizer), 1, presence(organizer), "overview in the first 15% of the text")
	if !organizer {
		s.suggest("add-advance-organizer", domain.PriorityLow,
			"Open with an overview",
			"A short roadmap at the start gives readers a frame to hang new ideas on.",
			"In this chapter we will first look at X, then see how it leads to Y.")
	}
	return s.result()
}

// HierarchyBalance is 1 - 0.5*sum(|actual - ideal|) over the three tiers,
// 0 for an empty graph.
func HierarchyBalance(g *domain.ConceptGraph) float64 {
	if g.IsEmpty() {
		return 0
	}
	n := float64(len(g.Concepts))
	actual := [3]float64{
		float64(len(g.ConceptsByTier(domain.ImportanceCore))) / n,
		float64(len(g.ConceptsByTier(domain.ImportanceSupporting))) / n,
		float64(len(g.ConceptsByTier(domain.ImportanceDetail))) / n,
	}
	dev := 0.0
	for i := range actual {
		dev += math.Abs(actual[i] - IdealHierarchy[i])
	}
	return textstat.Clamp01(1 - dev/2)
}

// PrerequisiteOrder is the share of prerequisite relationships whose source
// is first mentioned no later than its target. Graphs with concepts but no
// prerequisite edges score 1; empty graphs score 0.
func PrerequisiteOrder(g *domain.ConceptGraph) (float64, int) {
	if g.IsEmpty() {
		return 0, 0
	}
	first := make(map[string]int, len(g.Concepts))
	for _, c := range g.Concepts {
		first[c.ID] = c.FirstMention
	}
	total, ok := 0, 0
	for _, r := range g.Relationships {
		if r.Type != domain.RelationshipPrerequisite {
			continue
		}
		total++
		if first[r.Source] <= first[r.Target] {
			ok++
		}
	}
	if total == 0 {
		return 1, 0
	}
	return float64(ok) / float64(total), total
}
