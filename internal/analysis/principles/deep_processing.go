package principles

import (
	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

const (
	depthWindow         = 300
	higherOrderTarget   = 0.40
	higherOrderModerate = 0.20
	depthTarget         = 4.0
	depthStrong         = 3.5
	depthModerate       = 2.0
	whyHowTarget        = 5
	elaborationTarget   = 4
	maxExplanationDepth = 5
)

// DeepProcessing measures how far prompts push readers beyond recall and how
// thoroughly key concepts are explained.
type DeepProcessing struct{}

func (DeepProcessing) Principle() domain.PrincipleID { return domain.PrincipleDeepProcessing }

func (DeepProcessing) Evaluate(ch *domain.Chapter, g *domain.ConceptGraph) domain.PrincipleEvaluation {
	s := newScorer(domain.PrincipleDeepProcessing)
	text := contentOf(ch)
	t := DeepProcessingPatterns

	prompts := textstat.PromptSpans(text)
	promptText := joinSpans(prompts)
	levels := BloomCounts(promptText)
	total := 0
	for _, n := range levels {
		total += n
	}
	higher := levels[bloomAnalyze] + levels[bloomEvaluate] + levels[bloomCreate]
	hoPct := textstat.Ratio(float64(higher), float64(total))
	s.award(hoPct, higherOrderTarget, 35)
	s.metric("higherOrderPercentage", hoPct, higherOrderTarget, atLeast(hoPct, higherOrderTarget, higherOrderModerate),
		"share of classified prompt verbs at analyze, evaluate or create level")
	if len(prompts) == 0 {
		s.critical(0.9, "No questions or prompts found; readers are never asked to work with the material")
		s.suggest("add-higher-order-questions", domain.PriorityHigh,
			"Add questions that require analysis",
			"Insert prompts that ask readers to compare, evaluate or design rather than restate facts.",
			"Compare the two approaches above: which would you choose for a large dataset, and why?")
	} else if hoPct < higherOrderModerate {
		s.critical(0.8, "Only %s of prompts target higher-order thinking", percent(hoPct))
		s.suggest("add-higher-order-questions", domain.PriorityHigh,
			"Raise the cognitive level of questions",
			"Most prompts ask for recall. Rewrite some to ask readers to analyze, evaluate or create.",
			"Instead of \"What is X?\", ask \"How would X change if Y were removed?\"")
	} else if hoPct >= higherOrderTarget {
		s.positive("%s of prompts target higher-order thinking", percent(hoPct))
	}

	depth := averageDepth(text, g)
	s.award(depth, depthTarget, 35)
	s.metric("explanationDepth", depth, depthTarget, atLeast(depth, depthStrong, depthModerate),
		"average 0-5 explanation ladder over key concepts")
	switch {
	case depth < depthModerate:
		s.warning(0.6, "Key concepts are explained shallowly (average depth %.1f of 5)", depth)
		s.suggest("deepen-explanations", domain.PriorityMedium,
			"Explain key concepts in more depth",
			"For each core concept give a definition, a concrete example, the mechanism behind it and an application.",
			"After defining the term, add \"This works because...\" and \"You can see this when...\".")
	case depth >= depthStrong:
		s.positive("Key concepts are explained in depth (average %.1f of 5)", depth)
	}

	whyHow := t.Count("whyHow", text)
	s.award(float64(whyHow), whyHowTarget, 15)
	s.count("whyHowQuestions", whyHow, whyHowTarget, atLeast(float64(whyHow), whyHowTarget, 1),
		"occurrences of why/how")
	if whyHow == 0 {
		s.warning(0.4, "No why or how questions")
		s.suggest("add-why-how-questions", domain.PriorityMedium,
			"Ask why and how",
			"Causal questions make readers build explanations instead of memorising statements.",
			"Why does increasing the temperature speed up the reaction?")
	}

	elaboration := t.Count("elaboration", text)
	s.award(float64(elaboration), elaborationTarget, 15)
	s.count("elaborationPrompts", elaboration, elaborationTarget, atLeast(float64(elaboration), elaborationTarget, 1),
		"phrases inviting elaboration or connection")
	if elaboration == 0 {
		s.suggest("add-elaboration", domain.PriorityLow,
			"Invite elaboration",
			"Ask readers to connect new ideas to what they already know.",
			"Think of a situation from your own experience where this applies.")
	}
	return s.result()
}

// BloomCounts classifies prompt text into the six Bloom levels.
func BloomCounts(promptText string) map[string]int {
	out := make(map[string]int, len(bloomLevels))
	for _, level := range bloomLevels {
		out[level] = DeepProcessingPatterns.Count(level, promptText)
	}
	return out
}

// averageDepth averages ExplanationDepth over core concepts, or over all
// concepts when none are core.
func averageDepth(text string, g *domain.ConceptGraph) float64 {
	if g.IsEmpty() {
		return 0
	}
	targets := g.ConceptsByTier(domain.ImportanceCore)
	if len(targets) == 0 {
		targets = g.Concepts
	}
	vals := make([]float64, 0, len(targets))
	for _, c := range targets {
		vals = append(vals, float64(ExplanationDepth(text, g, c)))
	}
	return textstat.Mean(vals)
}

// ExplanationDepth scores one concept 0-5: definition, example, mechanism,
// at least one relationship, application.
func ExplanationDepth(text string, g *domain.ConceptGraph, c domain.Concept) int {
	window := mentionWindows(text, c, depthWindow)
	t := DeepProcessingPatterns
	depth := 0
	for _, bucket := range []string{"definition", "example", "mechanism", "application"} {
		if t.Has(bucket, window) {
			depth++
		}
	}
	if g.RelationshipCount(c.ID) > 0 {
		depth++
	}
	if depth > maxExplanationDepth {
		depth = maxExplanationDepth
	}
	return depth
}

// mentionWindows joins the text within radius of every mention, merging
// overlapping windows.
func mentionWindows(text string, c domain.Concept, radius int) string {
	var out []byte
	lastEnd := -1
	for _, m := range c.Mentions {
		start := m.Position - radius
		if start < 0 {
			start = 0
		}
		end := m.Position + radius
		if end > len(text) {
			end = len(text)
		}
		if start < lastEnd {
			start = lastEnd
		} else if lastEnd >= 0 {
			out = append(out, '\n')
		}
		if start < end {
			out = append(out, text[start:end]...)
			lastEnd = end
		}
	}
	return string(out)
}
