package domain

import "sort"

type ImportanceTier string

const (
	ImportanceCore       ImportanceTier = "core"
	ImportanceSupporting ImportanceTier = "supporting"
	ImportanceDetail     ImportanceTier = "detail"
)

// ParseImportanceTier returns ok=false for unknown tiers.
func ParseImportanceTier(s string) (ImportanceTier, bool) {
	switch ImportanceTier(s) {
	case ImportanceCore, ImportanceSupporting, ImportanceDetail:
		return ImportanceTier(s), true
	default:
		return "", false
	}
}

type RelationshipType string

const (
	RelationshipPrerequisite RelationshipType = "prerequisite"
	RelationshipRelated      RelationshipType = "related"
	RelationshipContrasts    RelationshipType = "contrasts"
	RelationshipExampleOf    RelationshipType = "example-of"
	RelationshipPartOf       RelationshipType = "part-of"
)

type Mention struct {
	Position  int    `json:"position"`
	SectionID string `json:"sectionId,omitempty"`
}

// Concept mentions are sorted strictly ascending by Position. Importance is
// assigned by the extractor and never re-derived downstream.
type Concept struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Aliases      []string       `json:"aliases,omitempty"`
	Category     string         `json:"category,omitempty"`
	Importance   ImportanceTier `json:"importance"`
	Mentions     []Mention      `json:"mentions"`
	FirstMention int            `json:"firstMention"`
}

type ConceptRelationship struct {
	Source   string           `json:"source"`
	Target   string           `json:"target"`
	Type     RelationshipType `json:"type"`
	Strength float64          `json:"strength"`
}

// ConceptHierarchy partitions concept ids by importance tier.
type ConceptHierarchy struct {
	Core       []string `json:"core"`
	Supporting []string `json:"supporting"`
	Detail     []string `json:"detail"`
}

type ConceptGraph struct {
	Concepts      []Concept             `json:"concepts"`
	Relationships []ConceptRelationship `json:"relationships"`
	Hierarchy     ConceptHierarchy      `json:"hierarchy"`
	// Sequence lists concept ids in mention order; one entry per mention.
	Sequence []string `json:"sequence"`
}

// TimelineEntry is one mention in the chapter-wide, position-ordered stream.
type TimelineEntry struct {
	ConceptID string `json:"conceptId"`
	Position  int    `json:"position"`
}

// EmptyGraph is the valid graph for text with no extractable concepts.
func EmptyGraph() ConceptGraph {
	return ConceptGraph{
		Concepts:      []Concept{},
		Relationships: []ConceptRelationship{},
		Hierarchy:     ConceptHierarchy{Core: []string{}, Supporting: []string{}, Detail: []string{}},
		Sequence:      []string{},
	}
}

func (g *ConceptGraph) IsEmpty() bool {
	return g == nil || len(g.Concepts) == 0
}

func (g *ConceptGraph) ConceptByID(id string) (Concept, bool) {
	if g == nil {
		return Concept{}, false
	}
	for _, c := range g.Concepts {
		if c.ID == id {
			return c, true
		}
	}
	return Concept{}, false
}

// TotalMentions sums mention counts across all concepts.
func (g *ConceptGraph) TotalMentions() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, c := range g.Concepts {
		n += len(c.Mentions)
	}
	return n
}

// Timeline merges every concept's mentions and sorts them by position, ties
// broken by concept id so the order is deterministic.
func (g *ConceptGraph) Timeline() []TimelineEntry {
	if g == nil {
		return nil
	}
	out := make([]TimelineEntry, 0, g.TotalMentions())
	for _, c := range g.Concepts {
		for _, m := range c.Mentions {
			out = append(out, TimelineEntry{ConceptID: c.ID, Position: m.Position})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ConceptID < out[j].ConceptID
	})
	return out
}

// RelationshipCount returns how many relationships touch the concept.
func (g *ConceptGraph) RelationshipCount(id string) int {
	if g == nil {
		return 0
	}
	n := 0
	for _, r := range g.Relationships {
		if r.Source == id || r.Target == id {
			n++
		}
	}
	return n
}

// ConceptsByTier returns the concepts of a tier in graph order.
func (g *ConceptGraph) ConceptsByTier(tier ImportanceTier) []Concept {
	if g == nil {
		return nil
	}
	var out []Concept
	for _, c := range g.Concepts {
		if c.Importance == tier {
			out = append(out, c)
		}
	}
	return out
}
