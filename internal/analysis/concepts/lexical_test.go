package concepts

import (
	"context"
	"reflect"
	"testing"

	"github.com/yungbote/learnlens/internal/domain"
)

const biologyText = "Photosynthesis is defined as the process plants use to turn light into glucose. " +
	"The chloroplast is where photosynthesis happens. " +
	"Cellular respiration depends on glucose. " +
	"Unlike cellular respiration, photosynthesis stores energy in glucose."

func extract(t *testing.T, text string, opts Options) domain.ConceptGraph {
	t.Helper()
	ch := &domain.Chapter{ID: "c1", Title: "Plants", Content: text}
	g, err := NewLexical(0).Extract(context.Background(), ch, opts)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	return g
}

func TestLexicalExtractEmptyAndShortText(t *testing.T) {
	for _, text := range []string{"", "   ", "Too short to matter."} {
		g := extract(t, text, Options{})
		if !g.IsEmpty() {
			t.Fatalf("expected empty graph for %q, got %d concepts", text, len(g.Concepts))
		}
		if g.Sequence == nil || len(g.Sequence) != 0 {
			t.Fatalf("expected empty non-nil sequence for %q", text)
		}
	}
}

func TestLexicalExtractNilChapter(t *testing.T) {
	g, err := NewLexical(0).Extract(context.Background(), nil, Options{})
	if err != nil || !g.IsEmpty() {
		t.Fatalf("expected empty graph without error, got %v %v", g, err)
	}
}

func TestLexicalExtractCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch := &domain.Chapter{Content: biologyText}
	if _, err := NewLexical(0).Extract(ctx, ch, Options{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLexicalExtractGraphInvariants(t *testing.T) {
	g := extract(t, biologyText, Options{Domain: "biology"})
	if err := Validate(&g, len(biologyText)); err != nil {
		t.Fatalf("graph invalid: %v", err)
	}
	if len(g.Sequence) != g.TotalMentions() {
		t.Fatalf("sequence %d != mentions %d", len(g.Sequence), g.TotalMentions())
	}
	p, ok := g.ConceptByID("photosynthesis")
	if !ok {
		t.Fatalf("photosynthesis not extracted: %+v", g.Concepts)
	}
	if len(p.Mentions) != 3 {
		t.Fatalf("expected 3 photosynthesis mentions, got %d", len(p.Mentions))
	}
	if p.FirstMention != 0 {
		t.Fatalf("expected first mention at 0, got %d", p.FirstMention)
	}
	if p.Importance != domain.ImportanceCore {
		t.Fatalf("expected photosynthesis to be core, got %s", p.Importance)
	}
	for _, id := range []string{"glucose", "chloroplast", "cellular-respiration"} {
		if _, ok := g.ConceptByID(id); !ok {
			t.Fatalf("expected concept %q in %+v", id, g.Concepts)
		}
	}
	for i := 1; i < len(g.Concepts); i++ {
		if g.Concepts[i-1].FirstMention > g.Concepts[i].FirstMention {
			t.Fatalf("concepts not in first-mention order")
		}
	}
}

func TestLexicalExtractRelationshipCues(t *testing.T) {
	g := extract(t, biologyText, Options{Domain: "biology"})

	var prereq, contrast bool
	for _, r := range g.Relationships {
		if r.Type == domain.RelationshipPrerequisite && r.Source == "glucose" && r.Target == "cellular-respiration" {
			prereq = true
		}
		if r.Type == domain.RelationshipContrasts &&
			((r.Source == "cellular-respiration" && r.Target == "photosynthesis") ||
				(r.Source == "photosynthesis" && r.Target == "cellular-respiration")) {
			contrast = true
		}
		if r.Strength <= 0 || r.Strength > 1 {
			t.Fatalf("strength out of range: %+v", r)
		}
	}
	if !prereq {
		t.Fatalf("expected glucose prerequisite of cellular respiration in %+v", g.Relationships)
	}
	if !contrast {
		t.Fatalf("expected contrast between cellular respiration and photosynthesis in %+v", g.Relationships)
	}
}

func TestLexicalExtractCustomConceptKeepsTier(t *testing.T) {
	g := extract(t, biologyText, Options{
		Domain: "biology",
		CustomConcepts: []domain.CustomConcept{
			{Name: "energy", Category: "physics", Importance: domain.ImportanceDetail},
		},
	})
	c, ok := g.ConceptByID("energy")
	if !ok {
		t.Fatalf("custom concept missing")
	}
	if c.Importance != domain.ImportanceDetail || c.Category != "physics" {
		t.Fatalf("unexpected custom concept %+v", c)
	}
}

func TestLexicalExtractDeterministic(t *testing.T) {
	a := extract(t, biologyText, Options{IncludeCrossDomain: true})
	b := extract(t, biologyText, Options{IncludeCrossDomain: true})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("extraction is not deterministic")
	}
}

func TestFindMentionsWholeWordAndPlural(t *testing.T) {
	text := asciiLower("A cell divides. Many cells form tissue. Cellular processes keep the cell alive.")
	got := findMentions(text, []string{"cell"})
	if len(got) != 3 {
		t.Fatalf("expected 3 mentions, got %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("mentions not strictly increasing: %v", got)
		}
	}
}

func TestCleanTerm(t *testing.T) {
	cases := []struct {
		raw  string
		cut  bool
		want string
	}{
		{"mitosis which divides", true, "mitosis"},
		{"the rate of reaction", false, "rate of reaction"},
		{"**Krebs cycle**", false, "Krebs cycle"},
		{"the", false, ""},
		{"a b", false, ""},
	}
	for _, tc := range cases {
		if got := cleanTerm(tc.raw, tc.cut); got != tc.want {
			t.Fatalf("cleanTerm(%q, %v) = %q, want %q", tc.raw, tc.cut, got, tc.want)
		}
	}
}

func TestConceptKey(t *testing.T) {
	cases := map[string]string{
		"Hash Tables":      "hash-table",
		"Big-O notation":   "big-o-notation",
		"  Mitochondria  ": "mitochondria",
		"analysis":         "analysis",
		"Processes":        "process",
		"!!!":              "",
	}
	for in, want := range cases {
		if got := conceptKey(in); got != want {
			t.Fatalf("conceptKey(%q) = %q, want %q", in, got, want)
		}
	}
}
