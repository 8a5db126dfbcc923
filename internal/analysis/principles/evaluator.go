// Package principles holds the ten learning-principle evaluators. Each one is
// a stateless value whose Evaluate method is a pure function of the chapter
// and its concept graph, so evaluators may run in any order or in parallel.
package principles

import (
	"strings"

	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

type Evaluator interface {
	Principle() domain.PrincipleID
	Evaluate(ch *domain.Chapter, g *domain.ConceptGraph) domain.PrincipleEvaluation
}

var registry = []Evaluator{
	DeepProcessing{},
	SpacedRepetition{},
	RetrievalPractice{},
	Interleaving{},
	DualCoding{},
	GenerativeLearning{},
	Metacognition{},
	SchemaBuilding{},
	CognitiveLoad{},
	EmotionalRelevance{},
}

// All returns the evaluators in the fixed principle order.
func All() []Evaluator {
	return append([]Evaluator(nil), registry...)
}

func ByID(id domain.PrincipleID) (Evaluator, bool) {
	for _, e := range registry {
		if e.Principle() == id {
			return e, true
		}
	}
	return nil, false
}

// Info describes an evaluator for catalogue listings.
type Info struct {
	ID             domain.PrincipleID `json:"id"`
	Name           string             `json:"name"`
	Weight         float64            `json:"weight"`
	PatternVersion string             `json:"patternVersion"`
}

// Catalogue lists every principle with the given weights applied. Missing
// weights fall back to the defaults.
func Catalogue(weights map[domain.PrincipleID]float64) []Info {
	out := make([]Info, 0, len(registry))
	for _, e := range registry {
		id := e.Principle()
		w, ok := weights[id]
		if !ok || w <= 0 {
			w = domain.DefaultWeights[id]
		}
		out = append(out, Info{ID: id, Name: id.Name(), Weight: w, PatternVersion: Tables[id].ID()})
	}
	return out
}

const implicitSectionID = "implicit"

// sectionsOf returns the chapter's sections, or the whole text as a single
// implicit section when none are given.
func sectionsOf(ch *domain.Chapter) []domain.Section {
	if ch == nil {
		return nil
	}
	if len(ch.Sections) > 0 {
		return ch.Sections
	}
	if strings.TrimSpace(ch.Content) == "" {
		return nil
	}
	return []domain.Section{{
		ID:            implicitSectionID,
		Heading:       ch.Title,
		Content:       ch.Content,
		StartPosition: 0,
		EndPosition:   len(ch.Content),
		WordCount:     wordsOf(ch),
	}}
}

// sectionText prefers the section's own content and falls back to slicing
// the chapter by offsets.
func sectionText(ch *domain.Chapter, s domain.Section) string {
	if s.Content != "" {
		return s.Content
	}
	start, end := s.StartPosition, s.EndPosition
	if start < 0 || end > len(ch.Content) || start >= end {
		return ""
	}
	return ch.Content[start:end]
}

func sectionWords(ch *domain.Chapter, s domain.Section) int {
	if s.WordCount > 0 {
		return s.WordCount
	}
	return textstat.WordCount(sectionText(ch, s))
}

func wordsOf(ch *domain.Chapter) int {
	if ch == nil {
		return 0
	}
	if ch.WordCount > 0 {
		return ch.WordCount
	}
	return textstat.WordCount(ch.Content)
}

func contentOf(ch *domain.Chapter) string {
	if ch == nil {
		return ""
	}
	return ch.Content
}

// leading returns the first share of the text; trailing the last share.
func leading(text string, share float64) string {
	n := int(float64(len(text)) * share)
	if n <= 0 {
		return ""
	}
	return text[:n]
}

func trailing(text string, share float64) string {
	n := int(float64(len(text)) * share)
	if n <= 0 {
		return ""
	}
	return text[len(text)-n:]
}

// sectionCoverage is the fraction of sections for which has reports true.
func sectionCoverage(ch *domain.Chapter, has func(text string) bool) float64 {
	secs := sectionsOf(ch)
	if len(secs) == 0 {
		return 0
	}
	n := 0
	for _, s := range secs {
		if has(sectionText(ch, s)) {
			n++
		}
	}
	return float64(n) / float64(len(secs))
}

func joinSpans(spans []textstat.Span) string {
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, "\n")
}
