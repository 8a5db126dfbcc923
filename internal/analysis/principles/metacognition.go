package principles

import (
	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

const (
	reflectionTarget   = 2.0
	reflectionModerate = 1.0
	objectivesShare    = 0.15
	selfCheckShare     = 0.20
)

type Metacognition struct{}

func (Metacognition) Principle() domain.PrincipleID { return domain.PrincipleMetacognition }

func (Metacognition) Evaluate(ch *domain.Chapter, _ *domain.ConceptGraph) domain.PrincipleEvaluation {
	s := newScorer(domain.PrincipleMetacognition)
	text := contentOf(ch)
	t := MetacognitionPatterns

	n := t.Count("reflection", text)
	density := textstat.PerThousand(n, wordsOf(ch))
	s.award(density, reflectionTarget, 60)
	s.metric("reflectionDensity", density, reflectionTarget, atLeast(density, reflectionTarget, reflectionModerate),
		"reflection and self-monitoring prompts per 1000 words")
	switch {
	case n == 0:
		s.critical(0.7, "No prompts ask readers to monitor their own understanding")
		s.suggest("add-reflection", domain.PriorityHigh,
			"Prompt readers to reflect",
			"Add short prompts asking readers to judge how well they understood a section and what remains unclear.",
			"How confident are you that you could explain this to someone else? What is still unclear?")
	case density >= reflectionTarget:
		s.positive("Reflection prompts are frequent (%.1f per 1000 words)", density)
	case density < reflectionModerate:
		s.warning(0.4, "Reflection prompts are rare (%.1f per 1000 words)", density)
	}

	objectives := t.Has("objectives", leading(text, objectivesShare))
	if objectives {
		s.awardPoints(20)
	}
	s.count("objectivesUpFront", boolCount(objectives), 1, presence(objectives), "learning objectives stated in the first 15% of the text")
	if !objectives {
		s.warning(0.4, "No learning objectives at the start of the chapter")
		s.suggest("state-objectives", domain.PriorityMedium,
			"State learning objectives up front",
			"Objectives let readers check their progress against a known goal.",
			"By the end of this chapter you will be able to explain why sorting algorithms differ in speed.")
	}

	selfCheck := t.Has("selfCheck", trailing(text, selfCheckShare))
	if selfCheck {
		s.awardPoints(20)
	}
	s.count("selfCheckAtEnd", boolCount(selfCheck), 1, presence(selfCheck), "summary or self-check in the last 20% of the text")
	if !selfCheck {
		s.warning(0.4, "No summary or self-check near the end of the chapter")
		s.suggest("add-self-check", domain.PriorityMedium,
			"Close with a self-check",
			"A closing checklist lets readers verify they met the objectives.",
			"Check your understanding: can you now define each term in bold without looking back?")
	}
	return s.result()
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}

func presence(b bool) domain.Quality {
	if b {
		return domain.QualityStrong
	}
	return domain.QualityWeak
}
