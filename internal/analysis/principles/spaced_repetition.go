package principles

import (
	"github.com/yungbote/learnlens/internal/analysis/concepts"
	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

// Character offsets stand in for reading time. The targets are calibrated
// heuristics, not a temporal model.
var SpacingTargets = []int{500, 2000, 5000}

const (
	ForgettingThreshold = 3000
	MassedGap           = 1000
	MassedRunLength     = 3

	alignmentStrong     = 0.6
	alignmentModerate   = 0.35
	forgettingStrong    = 0.7
	forgettingModerate  = 0.4
	forgettingCritical  = 0.25
	massedStrong        = 0.2
	massedModerate      = 0.4
	coreRevisitMentions = 3
)

type SpacedRepetition struct{}

func (SpacedRepetition) Principle() domain.PrincipleID { return domain.PrincipleSpacedRepetition }

func (SpacedRepetition) Evaluate(ch *domain.Chapter, g *domain.ConceptGraph) domain.PrincipleEvaluation {
	s := newScorer(domain.PrincipleSpacedRepetition)

	var gaps []int
	if g != nil {
		for _, c := range g.Concepts {
			gaps = append(gaps, concepts.Gaps(c)...)
		}
	}

	alignment := AlignmentScore(gaps)
	s.award(alignment, 1, 35)
	s.metric("alignmentScore", alignment, alignmentStrong, atLeast(alignment, alignmentStrong, alignmentModerate),
		"mean best-fit ratio of mention gaps to 500/2000/5000-character targets")
	if len(gaps) == 0 {
		s.critical(0.85, "No concept is mentioned more than once, so nothing is revisited")
		s.suggest("revisit-core-concepts", domain.PriorityHigh,
			"Revisit key concepts later in the chapter",
			"Return to each core concept after other material has intervened, ideally a few pages later.",
			"Recall that osmosis moves water across a membrane. How does that explain what happens to the cell here?")
	}

	forgetting := ForgettingPrevention(gaps)
	s.award(forgetting, 1, 25)
	s.metric("forgettingPrevention", forgetting, forgettingStrong, atLeast(forgetting, forgettingStrong, forgettingModerate),
		"share of gaps within the 3000-character forgetting threshold")
	if len(gaps) > 0 {
		switch {
		case forgetting < forgettingCritical:
			s.critical(0.7, "Only %s of revisits happen before the material is likely forgotten", percent(forgetting))
			s.suggest("shorten-review-gaps", domain.PriorityHigh,
				"Bring reviews closer together",
				"Concepts go too long without being mentioned again. Add brief callbacks between distant mentions.",
				"Add a one-sentence reminder of the earlier definition midway through the section.")
		case forgetting >= forgettingStrong:
			s.positive("%s of revisits arrive before the forgetting threshold", percent(forgetting))
		}
		if alignment < alignmentModerate {
			s.warning(0.5, "Spacing between mentions rarely matches useful review intervals")
			s.suggest("align-spacing", domain.PriorityMedium,
				"Space repetitions at growing intervals",
				"Revisit a concept shortly after introducing it, then again after a longer gap.",
				"Mention the concept again a paragraph later, then in the next section's recap.")
		}
	}

	massed := MassedRatio(g)
	if len(gaps) > 0 {
		s.award(1-massed, 1, 20)
		s.metric("massedRatio", massed, massedStrong, atMost(massed, massedStrong, massedModerate),
			"share of mentions inside runs of 3+ within 1000 characters")
		if massed > massedModerate {
			s.warning(0.5, "%s of mentions are massed together rather than distributed", percent(massed))
			s.suggest("distribute-practice", domain.PriorityMedium,
				"Distribute repetitions",
				"Several concepts are repeated many times in one place and then dropped. Spread those mentions out.",
				"Move one of the three back-to-back examples into the next section.")
		}
	} else {
		s.metric("massedRatio", 0, massedStrong, domain.QualityWeak, "no repeated mentions to classify")
	}

	coverage, cores := coreRevisitCoverage(g)
	s.award(coverage, 1, 20)
	q := atLeast(coverage, 0.75, 0.5)
	if cores == 0 {
		q = domain.QualityWeak
	}
	s.metric("coreRevisitCoverage", coverage, 0.75, q, "share of core concepts mentioned at least 3 times")

	cues := SpacedRepetitionPatterns.Count("reviewCue", contentOf(ch))
	s.count("reviewCues", cues, 3, atLeast(float64(cues), 3, 1), "explicit callbacks to earlier material")
	return s.result()
}

// AlignmentScore averages, over all gaps, the best min/max ratio against the
// spacing targets. Zero gaps give 0.
func AlignmentScore(gaps []int) float64 {
	if len(gaps) == 0 {
		return 0
	}
	vals := make([]float64, 0, len(gaps))
	for _, gap := range gaps {
		best := 0.0
		for _, t := range SpacingTargets {
			lo, hi := float64(gap), float64(t)
			if lo > hi {
				lo, hi = hi, lo
			}
			if r := textstat.Ratio(lo, hi); r > best {
				best = r
			}
		}
		vals = append(vals, best)
	}
	return textstat.Mean(vals)
}

// ForgettingPrevention is the share of gaps at or under the threshold.
func ForgettingPrevention(gaps []int) float64 {
	if len(gaps) == 0 {
		return 0
	}
	n := 0
	for _, gap := range gaps {
		if gap <= ForgettingThreshold {
			n++
		}
	}
	return float64(n) / float64(len(gaps))
}

// MassedRatio is the share of all mentions that sit inside a run of at least
// MassedRunLength mentions of one concept with successive gaps <= MassedGap.
func MassedRatio(g *domain.ConceptGraph) float64 {
	total := g.TotalMentions()
	if total == 0 {
		return 0
	}
	massed := 0
	for _, c := range g.Concepts {
		run := 1
		for i := 1; i <= len(c.Mentions); i++ {
			if i < len(c.Mentions) && c.Mentions[i].Position-c.Mentions[i-1].Position <= MassedGap {
				run++
				continue
			}
			if run >= MassedRunLength {
				massed += run
			}
			run = 1
		}
	}
	return float64(massed) / float64(total)
}

func coreRevisitCoverage(g *domain.ConceptGraph) (float64, int) {
	cores := g.ConceptsByTier(domain.ImportanceCore)
	if len(cores) == 0 {
		return 0, 0
	}
	n := 0
	for _, c := range cores {
		if len(c.Mentions) >= coreRevisitMentions {
			n++
		}
	}
	return float64(n) / float64(len(cores)), len(cores)
}
