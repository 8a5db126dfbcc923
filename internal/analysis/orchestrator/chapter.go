package orchestrator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

// ImplicitSectionID names the single section synthesised for chapters that
// arrive without section hints.
const ImplicitSectionID = "section-1"

// PrepareChapter returns a normalised copy of ch. Sections with offsets
// outside the text are dropped, the rest are ordered and overlaps trimmed;
// content without sections becomes one implicit section. Word counts are
// recomputed when missing. The input is not modified.
func PrepareChapter(ch domain.Chapter) domain.Chapter {
	out := ch
	n := len(ch.Content)

	secs := make([]domain.Section, 0, len(ch.Sections))
	for _, s := range ch.Sections {
		if s.StartPosition < 0 || s.EndPosition > n || s.StartPosition >= s.EndPosition {
			continue
		}
		secs = append(secs, s)
	}
	sort.SliceStable(secs, func(i, j int) bool {
		if secs[i].StartPosition != secs[j].StartPosition {
			return secs[i].StartPosition < secs[j].StartPosition
		}
		return secs[i].EndPosition > secs[j].EndPosition
	})

	kept := secs[:0]
	prevEnd := 0
	for _, s := range secs {
		if s.StartPosition < prevEnd {
			s.StartPosition = prevEnd
			s.Content = ""
		}
		if s.StartPosition >= s.EndPosition {
			continue
		}
		if s.Content == "" || len(s.Content) != s.EndPosition-s.StartPosition {
			s.Content = ch.Content[s.StartPosition:s.EndPosition]
			s.WordCount = 0
		}
		if s.WordCount <= 0 {
			s.WordCount = textstat.WordCount(s.Content)
		}
		prevEnd = s.EndPosition
		kept = append(kept, s)
	}

	if len(kept) == 0 && strings.TrimSpace(ch.Content) != "" {
		kept = append(kept, domain.Section{
			ID:            ImplicitSectionID,
			Heading:       ch.Title,
			Content:       ch.Content,
			StartPosition: 0,
			EndPosition:   n,
			WordCount:     textstat.WordCount(ch.Content),
			Depth:         1,
		})
	}
	for i := range kept {
		if strings.TrimSpace(kept[i].ID) == "" {
			kept[i].ID = fmt.Sprintf("section-%d", i+1)
		}
	}
	out.Sections = kept

	if out.WordCount <= 0 {
		out.WordCount = textstat.WordCount(ch.Content)
	}
	return out
}
