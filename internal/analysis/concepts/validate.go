package concepts

import (
	"fmt"

	"github.com/yungbote/learnlens/internal/domain"
)

// Validate checks the structural guarantees every extractor must provide for
// a text of textLen bytes. It returns the first violation found.
func Validate(g *domain.ConceptGraph, textLen int) error {
	if g == nil {
		return fmt.Errorf("concept graph is nil")
	}
	ids := make(map[string]domain.ImportanceTier, len(g.Concepts))
	total := 0
	for _, c := range g.Concepts {
		if c.ID == "" {
			return fmt.Errorf("concept %q has empty id", c.Name)
		}
		if _, dup := ids[c.ID]; dup {
			return fmt.Errorf("duplicate concept id %q", c.ID)
		}
		if _, ok := domain.ParseImportanceTier(string(c.Importance)); !ok {
			return fmt.Errorf("concept %q has invalid importance %q", c.ID, c.Importance)
		}
		ids[c.ID] = c.Importance
		for i, m := range c.Mentions {
			if m.Position < 0 || m.Position >= textLen {
				return fmt.Errorf("concept %q mention %d at %d outside text of length %d", c.ID, i, m.Position, textLen)
			}
			if i > 0 && c.Mentions[i-1].Position >= m.Position {
				return fmt.Errorf("concept %q mentions not strictly increasing at index %d", c.ID, i)
			}
		}
		if len(c.Mentions) > 0 && c.FirstMention != c.Mentions[0].Position {
			return fmt.Errorf("concept %q first mention %d does not match mentions", c.ID, c.FirstMention)
		}
		total += len(c.Mentions)
	}

	seen := make(map[string]bool, len(ids))
	check := func(tier domain.ImportanceTier, list []string) error {
		for _, id := range list {
			want, ok := ids[id]
			if !ok {
				return fmt.Errorf("hierarchy %s lists unknown concept %q", tier, id)
			}
			if seen[id] {
				return fmt.Errorf("concept %q appears in more than one hierarchy tier", id)
			}
			if want != tier {
				return fmt.Errorf("concept %q is %s but listed as %s", id, want, tier)
			}
			seen[id] = true
		}
		return nil
	}
	if err := check(domain.ImportanceCore, g.Hierarchy.Core); err != nil {
		return err
	}
	if err := check(domain.ImportanceSupporting, g.Hierarchy.Supporting); err != nil {
		return err
	}
	if err := check(domain.ImportanceDetail, g.Hierarchy.Detail); err != nil {
		return err
	}
	if len(seen) != len(ids) {
		return fmt.Errorf("hierarchy covers %d of %d concepts", len(seen), len(ids))
	}

	if len(g.Sequence) != total {
		return fmt.Errorf("sequence length %d does not match %d mentions", len(g.Sequence), total)
	}
	for _, id := range g.Sequence {
		if _, ok := ids[id]; !ok {
			return fmt.Errorf("sequence references unknown concept %q", id)
		}
	}
	for _, r := range g.Relationships {
		if _, ok := ids[r.Source]; !ok {
			return fmt.Errorf("relationship source %q unknown", r.Source)
		}
		if _, ok := ids[r.Target]; !ok {
			return fmt.Errorf("relationship target %q unknown", r.Target)
		}
		if r.Strength < 0 || r.Strength > 1 {
			return fmt.Errorf("relationship %s->%s strength %v outside [0,1]", r.Source, r.Target, r.Strength)
		}
	}
	return nil
}
