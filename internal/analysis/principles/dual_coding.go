package principles

import (
	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

const (
	visualDensityTarget   = 3.0
	visualDensityModerate = 1.0
	integrationTarget     = 2
	imageryTarget         = 3
)

type DualCoding struct{}

func (DualCoding) Principle() domain.PrincipleID { return domain.PrincipleDualCoding }

func (DualCoding) Evaluate(ch *domain.Chapter, _ *domain.ConceptGraph) domain.PrincipleEvaluation {
	s := newScorer(domain.PrincipleDualCoding)
	text := contentOf(ch)
	t := DualCodingPatterns

	visuals := VisualReferences(text)
	density := textstat.PerThousand(visuals, wordsOf(ch))
	s.award(density, visualDensityTarget, 50)
	s.metric("visualDensity", density, visualDensityTarget, atLeast(density, visualDensityTarget, visualDensityModerate),
		"visual references and embedded images per 1000 words")
	switch {
	case visuals == 0:
		s.critical(0.8, "No figures, diagrams or images are referenced")
		s.suggest("add-visuals", domain.PriorityHigh,
			"Pair key ideas with visuals",
			"Add a diagram, chart or annotated image for the most important process or structure in the chapter.",
			"Figure 2: the cell cycle drawn as a loop with each phase labelled.")
	case density < visualDensityModerate:
		s.warning(0.5, "Visuals are sparse (%.1f per 1000 words)", density)
		s.suggest("add-visuals", domain.PriorityMedium,
			"Add more visuals",
			"Long stretches of text have no visual support. Add diagrams where processes or structures are described.",
			"A flowchart of the algorithm's main loop.")
	case density >= visualDensityTarget:
		s.positive("Visual references are frequent (%.1f per 1000 words)", density)
	}

	integration := t.Count("integration", text)
	s.award(float64(integration), integrationTarget, 20)
	s.count("verbalVisualIntegration", integration, integrationTarget, atLeast(float64(integration), integrationTarget, 1),
		"phrases tying the prose to a visual")
	if visuals > 0 && integration == 0 {
		s.warning(0.3, "Visuals are never explicitly referred to from the text")
		s.suggest("integrate-visuals", domain.PriorityLow,
			"Refer to visuals from the prose",
			"Tell readers when to look at a figure and what to notice in it.",
			"As shown in Figure 3, the curve flattens once the enzyme is saturated.")
	}

	imagery := t.Count("imagery", text)
	s.award(float64(imagery), imageryTarget, 15)
	s.count("imageryLanguage", imagery, imageryTarget, atLeast(float64(imagery), imageryTarget, 1),
		"phrases asking readers to form mental images")

	coverage := sectionCoverage(ch, func(sec string) bool { return VisualReferences(sec) > 0 })
	s.award(coverage, 1, 15)
	s.metric("sectionsWithVisuals", coverage, 0.5, atLeast(coverage, 0.5, 0.25), "share of sections with a visual")
	return s.result()
}

// VisualReferences counts visual keywords plus markdown images.
func VisualReferences(text string) int {
	return DualCodingPatterns.Count("visual", text) + DualCodingPatterns.Count("markdownImage", text)
}
