package ingest

import (
	"fmt"
	"strings"

	"github.com/yungbote/learnlens/internal/domain"
)

// ParseCustomConcept reads "name" or "name:tier", e.g. "osmosis:core".
func ParseCustomConcept(s string) (domain.CustomConcept, error) {
	name, tier, hasTier := strings.Cut(strings.TrimSpace(s), ":")
	name = collapseWhitespace(name)
	if name == "" {
		return domain.CustomConcept{}, fmt.Errorf("concept %q has no name", s)
	}
	cc := domain.CustomConcept{Name: name}
	if hasTier {
		t, ok := domain.ParseImportanceTier(strings.ToLower(strings.TrimSpace(tier)))
		if !ok {
			return domain.CustomConcept{}, fmt.Errorf("concept %q: unknown tier %q (core, supporting, detail)", name, tier)
		}
		cc.Importance = t
	}
	return cc, nil
}
