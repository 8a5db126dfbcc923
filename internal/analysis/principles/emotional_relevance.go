package principles

import (
	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

const (
	realWorldTarget    = 4.0
	realWorldModerate  = 1.5
	curiosityTarget    = 2.0
	secondPersonTarget = 0.015
	motivationTarget   = 2
)

type EmotionalRelevance struct{}

func (EmotionalRelevance) Principle() domain.PrincipleID { return domain.PrincipleEmotionalRelevance }

func (EmotionalRelevance) Evaluate(ch *domain.Chapter, _ *domain.ConceptGraph) domain.PrincipleEvaluation {
	s := newScorer(domain.PrincipleEmotionalRelevance)
	text := contentOf(ch)
	words := wordsOf(ch)
	t := EmotionalRelevancePatterns

	realWorld := t.Count("realWorld", text)
	density := textstat.PerThousand(realWorld, words)
	s.award(density, realWorldTarget, 45)
	s.metric("realWorldConnections", density, realWorldTarget, atLeast(density, realWorldTarget, realWorldModerate),
		"real-world connections per 1000 words")
	switch {
	case realWorld == 0:
		s.critical(0.6, "The material is never connected to real-world situations")
		s.suggest("add-real-world", domain.PriorityHigh,
			"Connect to real life",
			"Show where the ideas appear in readers' everyday lives or future work.",
			"Every time you stream a video, a compression algorithm like this one is running.")
	case density < realWorldModerate:
		s.warning(0.4, "Real-world connections are sparse (%.1f per 1000 words)", density)
		s.suggest("add-real-world", domain.PriorityMedium,
			"Add more real-world examples",
			"Anchor abstract passages with a concrete, familiar situation.",
			"Think about how a thermostat keeps your room at a steady temperature.")
	case density >= realWorldTarget:
		s.positive("Frequent real-world connections (%.1f per 1000 words)", density)
	}

	curiosity := textstat.PerThousand(t.Count("curiosity", text), words)
	s.award(curiosity, curiosityTarget, 20)
	s.metric("curiosityHooks", curiosity, curiosityTarget, atLeast(curiosity, curiosityTarget, 1), "curiosity hooks per 1000 words")
	if curiosity == 0 {
		s.warning(0.3, "No curiosity hooks")
		s.suggest("add-curiosity-hooks", domain.PriorityLow,
			"Open with a question or puzzle",
			"A surprising fact or open question at the start of a section makes readers want the answer.",
			"Have you ever wondered why ice floats when most solids sink?")
	}

	second := textstat.Ratio(float64(t.Count("secondPerson", text)), float64(words))
	s.award(second, secondPersonTarget, 20)
	s.metric("secondPersonRate", second, secondPersonTarget, atLeast(second, secondPersonTarget, 0.005),
		"share of words addressing the reader directly")
	if words > 0 && second < 0.005 {
		s.warning(0.3, "The text rarely addresses the reader directly")
	}

	motivation := t.Count("motivation", text)
	s.award(float64(motivation), motivationTarget, 15)
	s.count("motivationStatements", motivation, motivationTarget, atLeast(float64(motivation), motivationTarget, 1),
		"statements of why the material matters")
	if motivation == 0 {
		s.suggest("explain-why-it-matters", domain.PriorityLow,
			"Say why it matters",
			"Tell readers what they will be able to do with this knowledge.",
			"This matters because every database index you will ever tune is a tree like this one.")
	}
	return s.result()
}
