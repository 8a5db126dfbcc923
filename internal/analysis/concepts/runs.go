package concepts

import "github.com/yungbote/learnlens/internal/domain"

const (
	// SegmentGap ends a run of identical mentions when the next one is
	// further away than this many characters.
	SegmentGap = 1000
	// BlockingRunLength is the shortest run that counts as blocked practice.
	BlockingRunLength = 3
)

// Run is a maximal stretch of consecutive timeline entries for one concept.
type Run struct {
	ConceptID string
	Start     int
	End       int
	Length    int
}

func (r Run) Blocking() bool {
	return r.Length >= BlockingRunLength
}

// Runs walks a position-ordered timeline and groups consecutive mentions of
// the same concept. A run also breaks when the gap to the previous mention
// exceeds maxGap; maxGap <= 0 disables the gap rule.
func Runs(timeline []domain.TimelineEntry, maxGap int) []Run {
	var out []Run
	for _, e := range timeline {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.ConceptID == e.ConceptID && (maxGap <= 0 || e.Position-last.End <= maxGap) {
				last.End = e.Position
				last.Length++
				continue
			}
		}
		out = append(out, Run{ConceptID: e.ConceptID, Start: e.Position, End: e.Position, Length: 1})
	}
	return out
}

// TopicSwitches counts adjacent timeline entries that change concept.
func TopicSwitches(timeline []domain.TimelineEntry) int {
	n := 0
	for i := 1; i < len(timeline); i++ {
		if timeline[i].ConceptID != timeline[i-1].ConceptID {
			n++
		}
	}
	return n
}

// Gaps returns the distances between successive mentions of c.
func Gaps(c domain.Concept) []int {
	if len(c.Mentions) < 2 {
		return nil
	}
	out := make([]int, 0, len(c.Mentions)-1)
	for i := 1; i < len(c.Mentions); i++ {
		out = append(out, c.Mentions[i].Position-c.Mentions[i-1].Position)
	}
	return out
}

// NovelPerSection counts, for each section, the concepts whose first mention
// falls inside it.
func NovelPerSection(ch *domain.Chapter, g *domain.ConceptGraph) []int {
	if ch == nil {
		return nil
	}
	out := make([]int, len(ch.Sections))
	if g == nil {
		return out
	}
	for _, c := range g.Concepts {
		if idx := ch.SectionIndexAt(c.FirstMention); idx >= 0 {
			out[idx]++
		}
	}
	return out
}

// MentionsIn counts mentions of all concepts inside [start, end).
func MentionsIn(g *domain.ConceptGraph, start, end int) int {
	if g == nil {
		return 0
	}
	n := 0
	for _, c := range g.Concepts {
		for _, m := range c.Mentions {
			if m.Position >= start && m.Position < end {
				n++
			}
		}
	}
	return n
}

// DistinctIn counts concepts with at least one mention inside [start, end).
func DistinctIn(g *domain.ConceptGraph, start, end int) int {
	if g == nil {
		return 0
	}
	n := 0
	for _, c := range g.Concepts {
		for _, m := range c.Mentions {
			if m.Position >= start && m.Position < end {
				n++
				break
			}
		}
	}
	return n
}
