// Package concepts builds the concept graph for a chapter: which named
// concepts appear, where they are mentioned, how important they are and how
// they relate to each other.
package concepts

import (
	"context"

	"github.com/yungbote/learnlens/internal/domain"
)

const (
	// MinTextLength is the shortest content that is worth extracting from.
	MinTextLength      = 50
	DefaultMaxConcepts = 60
)

type Options struct {
	Domain             string
	IncludeCrossDomain bool
	CustomConcepts     []domain.CustomConcept
	MaxConcepts        int
}

// Extractor turns a chapter into a concept graph. Implementations must return
// an empty graph for empty or very short text instead of an error; an error is
// reserved for cancellation and genuine internal failures.
type Extractor interface {
	Extract(ctx context.Context, ch *domain.Chapter, opts Options) (domain.ConceptGraph, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, ch *domain.Chapter, opts Options) (domain.ConceptGraph, error)

func (f ExtractorFunc) Extract(ctx context.Context, ch *domain.Chapter, opts Options) (domain.ConceptGraph, error) {
	return f(ctx, ch, opts)
}
