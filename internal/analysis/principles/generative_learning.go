package principles

import (
	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

const (
	generativeTarget   = 3.0
	generativeModerate = 1.0
	predictionTarget   = 2
)

type GenerativeLearning struct{}

func (GenerativeLearning) Principle() domain.PrincipleID { return domain.PrincipleGenerativeLearning }

func (GenerativeLearning) Evaluate(ch *domain.Chapter, _ *domain.ConceptGraph) domain.PrincipleEvaluation {
	s := newScorer(domain.PrincipleGenerativeLearning)
	text := contentOf(ch)
	t := GenerativeLearningPatterns

	n := t.Count("generative", text)
	density := textstat.PerThousand(n, wordsOf(ch))
	s.award(density, generativeTarget, 60)
	s.metric("generativeDensity", density, generativeTarget, atLeast(density, generativeTarget, generativeModerate),
		"generative activities per 1000 words")
	switch {
	case n == 0:
		s.critical(0.8, "Readers are never asked to produce anything of their own")
		s.suggest("add-generative-tasks", domain.PriorityHigh,
			"Ask readers to generate",
			"Add tasks where readers summarise, draw, teach or construct something from the material.",
			"In your own words, summarise the three stages of the process for a friend who missed the lecture.")
	case density < generativeModerate:
		s.warning(0.5, "Generative activities are rare (%.1f per 1000 words)", density)
		s.suggest("add-generative-tasks", domain.PriorityMedium,
			"Add more generative tasks",
			"A short production task after each major section helps readers organise what they learned.",
			"Sketch a concept map linking the terms introduced in this section.")
	case density >= generativeTarget:
		s.positive("Generative activities are frequent (%.1f per 1000 words)", density)
	}

	predictions := t.Count("prediction", text)
	s.award(float64(predictions), predictionTarget, 20)
	s.count("predictionPrompts", predictions, predictionTarget, atLeast(float64(predictions), predictionTarget, 1),
		"prompts asking readers to predict outcomes")
	if predictions == 0 {
		s.warning(0.3, "No prediction prompts")
		s.suggest("add-predictions", domain.PriorityLow,
			"Ask for predictions before explanations",
			"Predicting an outcome before reading the answer makes the explanation more memorable.",
			"Before reading on, predict what happens to the pressure when the volume halves.")
	}

	coverage := sectionCoverage(ch, func(sec string) bool { return t.Has("generative", sec) })
	s.award(coverage, 1, 20)
	s.metric("sectionsWithGenerativeTasks", coverage, 0.5, atLeast(coverage, 0.5, 0.25),
		"share of sections with a generative prompt")
	return s.result()
}
