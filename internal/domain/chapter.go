package domain

// Chapter is the unit of analysis. It is built once per run and never mutated;
// helpers that need a normalised variant return a copy.
type Chapter struct {
	ID        string          `json:"id" validate:"max=128"`
	Title     string          `json:"title" validate:"max=300"`
	Content   string          `json:"content"`
	WordCount int             `json:"wordCount" validate:"gte=0"`
	Sections  []Section       `json:"sections" validate:"max=500,dive"`
	Metadata  ChapterMetadata `json:"metadata"`
}

type ChapterMetadata struct {
	Domain       string `json:"domain,omitempty"`
	ReadingLevel string `json:"readingLevel,omitempty"`
	Source       string `json:"source,omitempty"`
}

// Section is a contiguous slice of the chapter text. Offsets are byte offsets
// into Chapter.Content with StartPosition <= EndPosition <= len(Content).
type Section struct {
	ID            string `json:"id"`
	Heading       string `json:"heading"`
	Content       string `json:"content"`
	StartPosition int    `json:"startPosition" validate:"gte=0"`
	EndPosition   int    `json:"endPosition" validate:"gtefield=StartPosition"`
	WordCount     int    `json:"wordCount" validate:"gte=0"`
	Depth         int    `json:"depth" validate:"gte=0,lte=6"`
}

// Contains reports whether pos falls inside [StartPosition, EndPosition).
func (s Section) Contains(pos int) bool {
	return pos >= s.StartPosition && pos < s.EndPosition
}

// SectionIndexAt returns the index of the section containing pos, or -1.
// Sections must be ordered and non-overlapping.
func (c *Chapter) SectionIndexAt(pos int) int {
	if c == nil {
		return -1
	}
	lo, hi := 0, len(c.Sections)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		s := c.Sections[mid]
		switch {
		case pos < s.StartPosition:
			hi = mid - 1
		case pos >= s.EndPosition:
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}
