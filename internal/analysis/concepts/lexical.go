package concepts

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

const (
	frequentMinCount = 3
	frequentMinLen   = 4
	frequentLimit    = 25
	capitalisedMin   = 2
	maxTermWords     = 4
)

var (
	emphasisRe = regexp.MustCompile(`\*\*([^*\n]{2,60}?)\*\*|__([^_\n]{2,60}?)__`)
	calledRe   = regexp.MustCompile(`(?i)\b(?:called|known as|termed|referred to as)\s+(?:an?\s+|the\s+)?["“'*_]*([a-z][a-z0-9-]*(?:[ \t]+[a-z][a-z0-9-]*){0,2})`)
	definedRe  = regexp.MustCompile(`(?im)(?:^|[.!?]\s+)(?:an?\s+|the\s+)?["“'*_]*([a-z][a-z0-9-]*(?:[ \t]+[a-z][a-z0-9-]*){0,2})["”'*_]*\s+(?:(?:is|are)\s+defined\s+as|refers?\s+to|is\s+the\s+term\s+for)\b`)
	capRe      = regexp.MustCompile(`\b[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)+\b`)

	prerequisiteCueRe = regexp.MustCompile(`(?i)\b(?:requires?|depends? on|builds? on|is based on|are based on|relies on|rely on)\b`)
	contrastCueRe     = regexp.MustCompile(`(?i)\b(?:unlike|whereas|in contrast|versus|vs\.|compared with|compared to)`)
)

// Lexical is the default Extractor. It finds concepts with lexicons and
// surface patterns only; no language model is involved.
type Lexical struct {
	maxConcepts int
}

func NewLexical(maxConcepts int) *Lexical {
	if maxConcepts <= 0 {
		maxConcepts = DefaultMaxConcepts
	}
	return &Lexical{maxConcepts: maxConcepts}
}

type candidate struct {
	key      string
	name     string
	forms    []string
	aliases  []string
	category string
	tier     domain.ImportanceTier
	custom   bool
	defined  bool

	mentions []int
	sections int
	score    int
	id       string
}

func (x *Lexical) Extract(ctx context.Context, ch *domain.Chapter, opts Options) (domain.ConceptGraph, error) {
	if ch == nil {
		return domain.EmptyGraph(), nil
	}
	text := ch.Content
	if len(strings.TrimSpace(text)) < MinTextLength || textstat.WordCount(text) == 0 {
		return domain.EmptyGraph(), nil
	}
	if err := ctx.Err(); err != nil {
		return domain.ConceptGraph{}, err
	}
	limit := opts.MaxConcepts
	if limit <= 0 {
		limit = x.maxConcepts
	}
	lower := asciiLower(text)

	set := newCandidateSet()
	for _, cc := range opts.CustomConcepts {
		set.addCustom(cc)
	}
	for _, t := range lexiconTerms(opts.Domain, opts.IncludeCrossDomain) {
		set.add(t.name, t.forms, t.category, false)
	}
	for _, term := range definedTerms(text) {
		set.add(term, nil, "defined", true)
	}
	for _, term := range capitalisedPhrases(text) {
		set.add(term, nil, "named", false)
	}
	for _, term := range frequentTerms(lower) {
		set.add(term, nil, "term", false)
	}

	if err := ctx.Err(); err != nil {
		return domain.ConceptGraph{}, err
	}

	var found []*candidate
	for _, c := range set.order {
		c.mentions = findMentions(lower, c.forms)
		if len(c.mentions) == 0 {
			continue
		}
		c.sections = sectionsSpanned(ch, c.mentions)
		c.score = len(c.mentions) + 2*c.sections
		if c.defined || c.custom {
			c.score += 3
		}
		found = append(found, c)
	}
	if len(found) == 0 {
		return domain.EmptyGraph(), nil
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].score != found[j].score {
			return found[i].score > found[j].score
		}
		if found[i].mentions[0] != found[j].mentions[0] {
			return found[i].mentions[0] < found[j].mentions[0]
		}
		return found[i].key < found[j].key
	})
	if len(found) > limit {
		found = found[:limit]
	}
	assignTiers(found)
	assignIDs(found)

	// Graph order is first-mention order.
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].mentions[0] != found[j].mentions[0] {
			return found[i].mentions[0] < found[j].mentions[0]
		}
		return found[i].id < found[j].id
	})

	if err := ctx.Err(); err != nil {
		return domain.ConceptGraph{}, err
	}

	g := domain.EmptyGraph()
	for _, c := range found {
		mentions := make([]domain.Mention, 0, len(c.mentions))
		for _, p := range c.mentions {
			m := domain.Mention{Position: p}
			if idx := ch.SectionIndexAt(p); idx >= 0 {
				m.SectionID = ch.Sections[idx].ID
			}
			mentions = append(mentions, m)
		}
		g.Concepts = append(g.Concepts, domain.Concept{
			ID:           c.id,
			Name:         c.name,
			Aliases:      c.aliases,
			Category:     c.category,
			Importance:   c.tier,
			Mentions:     mentions,
			FirstMention: c.mentions[0],
		})
		switch c.tier {
		case domain.ImportanceCore:
			g.Hierarchy.Core = append(g.Hierarchy.Core, c.id)
		case domain.ImportanceSupporting:
			g.Hierarchy.Supporting = append(g.Hierarchy.Supporting, c.id)
		default:
			g.Hierarchy.Detail = append(g.Hierarchy.Detail, c.id)
		}
	}
	g.Relationships = relationships(text, found)
	for _, e := range g.Timeline() {
		g.Sequence = append(g.Sequence, e.ConceptID)
	}
	return g, nil
}

type candidateSet struct {
	byKey map[string]*candidate
	order []*candidate
}

func newCandidateSet() *candidateSet {
	return &candidateSet{byKey: map[string]*candidate{}}
}

func (s *candidateSet) addCustom(cc domain.CustomConcept) {
	c := s.add(cc.Name, nil, cc.Category, false)
	if c == nil {
		return
	}
	c.custom = true
	if cc.Category != "" {
		c.category = cc.Category
	}
	for _, a := range cc.Aliases {
		if a = strings.TrimSpace(a); a != "" {
			c.forms = appendUnique(c.forms, asciiLower(a))
			c.aliases = appendUnique(c.aliases, a)
		}
	}
	if tier, ok := domain.ParseImportanceTier(string(cc.Importance)); ok {
		c.tier = tier
	}
}

// add registers a candidate or merges into an existing one with the same key.
// Earlier sources win the display name.
func (s *candidateSet) add(name string, forms []string, category string, defined bool) *candidate {
	name = strings.TrimSpace(name)
	key := conceptKey(name)
	if key == "" {
		return nil
	}
	c, ok := s.byKey[key]
	if !ok {
		c = &candidate{key: key, name: name, category: category}
		s.byKey[key] = c
		s.order = append(s.order, c)
		c.forms = appendUnique(c.forms, asciiLower(name))
	}
	if c.category == "" {
		c.category = category
	}
	c.defined = c.defined || defined
	for _, f := range forms {
		f = strings.TrimSpace(asciiLower(f))
		if f == "" {
			continue
		}
		c.forms = appendUnique(c.forms, f)
		if f != asciiLower(c.name) {
			c.aliases = appendUnique(c.aliases, f)
		}
	}
	return c
}

func assignTiers(found []*candidate) {
	n := len(found)
	// top fifth core, up to half supporting, rounded up
	coreN := (n + 4) / 5
	suppN := (n+1)/2 - coreN
	for i, c := range found {
		if c.tier != "" {
			continue
		}
		switch {
		case i < coreN:
			c.tier = domain.ImportanceCore
		case i < coreN+suppN:
			c.tier = domain.ImportanceSupporting
		default:
			c.tier = domain.ImportanceDetail
		}
	}
}

func assignIDs(found []*candidate) {
	used := map[string]int{}
	for _, c := range found {
		id := c.key
		used[id]++
		if n := used[id]; n > 1 {
			id = id + "-" + strconv.Itoa(n)
		}
		c.id = id
	}
}

// findMentions returns the sorted, de-duplicated start offsets of whole-word
// matches of any form or its plural.
func findMentions(lower string, forms []string) []int {
	seen := map[int]bool{}
	for _, f := range forms {
		for _, v := range variants(f) {
			for start := 0; start < len(lower); {
				i := strings.Index(lower[start:], v)
				if i < 0 {
					break
				}
				p := start + i
				end := p + len(v)
				if (p == 0 || !isWordByte(lower[p-1])) && (end == len(lower) || !isWordByte(lower[end])) {
					seen[p] = true
				}
				start = p + 1
			}
		}
	}
	out := make([]int, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

func sectionsSpanned(ch *domain.Chapter, mentions []int) int {
	if len(ch.Sections) == 0 {
		return 1
	}
	seen := map[int]bool{}
	for _, p := range mentions {
		seen[ch.SectionIndexAt(p)] = true
	}
	return len(seen)
}

func definedTerms(text string) []string {
	var out []string
	for _, m := range emphasisRe.FindAllStringSubmatch(text, -1) {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if t := cleanTerm(raw, false); t != "" {
			out = append(out, t)
		}
	}
	for _, m := range calledRe.FindAllStringSubmatch(text, -1) {
		if t := cleanTerm(m[1], true); t != "" {
			out = append(out, t)
		}
	}
	for _, m := range definedRe.FindAllStringSubmatch(text, -1) {
		if t := cleanTerm(m[1], false); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// capitalisedPhrases returns multi-word Title Case phrases seen at least
// twice, in order of first appearance.
func capitalisedPhrases(text string) []string {
	counts := map[string]int{}
	var order []string
	for _, m := range capRe.FindAllString(text, -1) {
		t := cleanTerm(m, false)
		if len(strings.Fields(t)) < 2 {
			continue
		}
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}
	var out []string
	for _, t := range order {
		if counts[t] >= capitalisedMin {
			out = append(out, t)
		}
	}
	return out
}

// frequentTerms returns the most repeated content words, singularised.
func frequentTerms(lower string) []string {
	counts := map[string]int{}
	for _, w := range textstat.Words(lower) {
		if len(w) < frequentMinLen || isStopword(w) || !hasLetter(w) {
			continue
		}
		s := singular(w)
		if isStopword(s) {
			continue
		}
		counts[s]++
	}
	type kv struct {
		word  string
		count int
	}
	var list []kv
	for w, n := range counts {
		if n >= frequentMinCount {
			list = append(list, kv{w, n})
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].word < list[j].word
	})
	if len(list) > frequentLimit {
		list = list[:frequentLimit]
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.word)
	}
	return out
}

// cleanTerm trims stopwords from a captured phrase. With cutAtStop the phrase
// ends at its first inner stopword ("mitosis which divides" -> "mitosis").
func cleanTerm(raw string, cutAtStop bool) string {
	raw = strings.Trim(raw, " \t\r\n\"'“”*_.,;:()[]")
	words := strings.Fields(raw)
	for len(words) > 0 && isStopword(asciiLower(words[0])) {
		words = words[1:]
	}
	if cutAtStop {
		for i, w := range words {
			if isStopword(asciiLower(w)) {
				words = words[:i]
				break
			}
		}
	}
	for len(words) > 0 && isStopword(asciiLower(words[len(words)-1])) {
		words = words[:len(words)-1]
	}
	if len(words) == 0 || len(words) > maxTermWords {
		return ""
	}
	out := strings.Join(words, " ")
	if len(out) < 3 || !hasLetter(out) {
		return ""
	}
	return out
}

type pair struct{ a, b int }

type typedEdge struct {
	source, target int
	kind           domain.RelationshipType
}

// relationships derives edges from sentence co-occurrence. Cue words in the
// sentence upgrade a co-occurrence to a prerequisite or contrast edge.
func relationships(text string, found []*candidate) []domain.ConceptRelationship {
	cooc := map[pair]int{}
	typed := map[pair]typedEdge{}
	var pairs []pair

	for _, s := range textstat.Sentences(text) {
		type occ struct{ idx, pos int }
		var in []occ
		for i, c := range found {
			k := sort.SearchInts(c.mentions, s.Start)
			if k < len(c.mentions) && c.mentions[k] < s.End {
				in = append(in, occ{i, c.mentions[k]})
			}
		}
		if len(in) < 2 {
			continue
		}
		sort.Slice(in, func(i, j int) bool {
			if in[i].pos != in[j].pos {
				return in[i].pos < in[j].pos
			}
			return in[i].idx < in[j].idx
		})
		for i := 0; i < len(in); i++ {
			for j := i + 1; j < len(in); j++ {
				p := orderedPair(in[i].idx, in[j].idx)
				if cooc[p] == 0 {
					pairs = append(pairs, p)
				}
				cooc[p]++
			}
		}

		if loc := prerequisiteCueRe.FindStringIndex(s.Text); loc != nil {
			cue := s.Start + loc[0]
			for _, before := range in {
				if before.pos >= cue {
					continue
				}
				for _, after := range in {
					if after.pos <= cue {
						continue
					}
					typed[orderedPair(before.idx, after.idx)] = typedEdge{source: after.idx, target: before.idx, kind: domain.RelationshipPrerequisite}
				}
			}
		}
		if loc := contrastCueRe.FindStringIndex(s.Text); loc != nil {
			for i := 0; i < len(in); i++ {
				for j := i + 1; j < len(in); j++ {
					p := orderedPair(in[i].idx, in[j].idx)
					if e, ok := typed[p]; ok && e.kind == domain.RelationshipPrerequisite {
						continue
					}
					typed[p] = typedEdge{source: in[i].idx, target: in[j].idx, kind: domain.RelationshipContrasts}
				}
			}
		}
	}

	out := make([]domain.ConceptRelationship, 0, len(pairs))
	for _, p := range pairs {
		minMentions := len(found[p.a].mentions)
		if n := len(found[p.b].mentions); n < minMentions {
			minMentions = n
		}
		strength := textstat.Round(textstat.Clamp01(textstat.Ratio(float64(cooc[p]), float64(minMentions))), 3)
		rel := domain.ConceptRelationship{
			Source:   found[p.a].id,
			Target:   found[p.b].id,
			Type:     domain.RelationshipRelated,
			Strength: strength,
		}
		if e, ok := typed[p]; ok {
			rel.Source = found[e.source].id
			rel.Target = found[e.target].id
			rel.Type = e.kind
		}
		out = append(out, rel)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}

// orderedPair keys a pair by graph order so (a,b) and (b,a) collide.
func orderedPair(i, j int) pair {
	if i > j {
		i, j = j, i
	}
	return pair{i, j}
}
