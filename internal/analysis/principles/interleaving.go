package principles

import (
	"github.com/yungbote/learnlens/internal/analysis/concepts"
	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

const (
	BlockingModerate     = 0.3
	BlockingHigh         = 0.5
	MinInterleaveSample  = 5
	TargetSectionDensity = 3

	switchRateTarget   = 0.5
	comparisonTarget   = 3
	densityWarnBelow   = 0.5
	densityStrongAbove = 0.8
)

type Interleaving struct{}

func (Interleaving) Principle() domain.PrincipleID { return domain.PrincipleInterleaving }

func (Interleaving) Evaluate(ch *domain.Chapter, g *domain.ConceptGraph) domain.PrincipleEvaluation {
	s := newScorer(domain.PrincipleInterleaving)

	timeline := g.Timeline()
	total := len(timeline)
	ratio := BlockingRatio(timeline)
	if total >= 2 {
		s.award(1-ratio, 1, 40)
		s.metric("blockingRatio", ratio, BlockingModerate, atMost(ratio, BlockingModerate, BlockingHigh),
			"share of mentions inside runs of 3+ consecutive mentions of one concept")
	} else {
		s.metric("blockingRatio", ratio, BlockingModerate, domain.QualityWeak, "too few mentions to measure blocking")
	}
	switch {
	case total < MinInterleaveSample:
		s.warning(0.3, "Only %d concept mentions; too few to judge interleaving", total)
	case ratio > BlockingHigh:
		s.critical(0.75, "%s of concept mentions are blocked together", percent(ratio))
		s.suggest("interleave-topics", domain.PriorityHigh,
			"Interleave related concepts",
			"Long stretches treat one concept at a time. Alternate between related concepts so readers must discriminate.",
			"After two paragraphs on stacks, contrast with a queue before continuing.")
	case ratio > BlockingModerate:
		s.warning(0.5, "%s of concept mentions are blocked together", percent(ratio))
		s.suggest("interleave-topics", domain.PriorityMedium,
			"Mix concepts more often",
			"Break up runs that discuss a single concept by bringing in a related one.",
			"Insert a comparison with the previous concept in the middle of the long explanation.")
	default:
		s.positive("Concepts are well interleaved (%s blocked)", percent(ratio))
	}

	density := SectionDensity(ch, g)
	s.award(density, 1, 30)
	s.metric("sectionDensity", density, densityStrongAbove, atLeast(density, densityStrongAbove, densityWarnBelow),
		"distinct concepts per section against a target of 3")
	if density < densityWarnBelow {
		s.warning(0.4, "Sections rarely combine several concepts")
		s.suggest("mix-within-sections", domain.PriorityMedium,
			"Bring several concepts into each section",
			"Sections that revolve around a single idea give no practice at telling ideas apart.",
			"Close the section with a problem that needs both of the concepts covered so far.")
	}

	switches := concepts.TopicSwitches(timeline)
	rate := 0.0
	if total > 1 {
		rate = float64(switches) / float64(total-1)
	}
	s.award(rate, switchRateTarget, 20)
	s.metric("switchRate", rate, switchRateTarget, atLeast(rate, switchRateTarget, 0.3), "topic switches per adjacent mention pair")

	comparisons := InterleavingPatterns.Count("comparison", contentOf(ch))
	if g != nil {
		for _, r := range g.Relationships {
			if r.Type == domain.RelationshipContrasts {
				comparisons++
			}
		}
	}
	s.award(float64(comparisons), comparisonTarget, 10)
	s.count("comparisons", comparisons, comparisonTarget, atLeast(float64(comparisons), comparisonTarget, 1),
		"comparison cues and contrast relationships")
	if comparisons == 0 {
		s.suggest("add-comparisons", domain.PriorityLow,
			"Compare and contrast",
			"Explicit comparisons help readers notice what distinguishes similar concepts.",
			"Unlike mitosis, meiosis produces four genetically distinct cells.")
	}
	return s.result()
}

// BlockingRatio is mentions in blocking runs over all mentions on the
// timeline, 0 without mentions.
func BlockingRatio(timeline []domain.TimelineEntry) float64 {
	if len(timeline) == 0 {
		return 0
	}
	blocked := 0
	for _, r := range concepts.Runs(timeline, concepts.SegmentGap) {
		if r.Blocking() {
			blocked += r.Length
		}
	}
	return float64(blocked) / float64(len(timeline))
}

// SectionDensity averages min(distinct concepts / 3, 1) over sections.
func SectionDensity(ch *domain.Chapter, g *domain.ConceptGraph) float64 {
	secs := sectionsOf(ch)
	if len(secs) == 0 || g.IsEmpty() {
		return 0
	}
	vals := make([]float64, 0, len(secs))
	for _, sec := range secs {
		distinct := concepts.DistinctIn(g, sec.StartPosition, sec.EndPosition)
		vals = append(vals, textstat.Clamp01(float64(distinct)/TargetSectionDensity))
	}
	return textstat.Mean(vals)
}
