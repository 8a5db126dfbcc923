// Package textstat holds the lexical measurements shared by the concept
// extractor, the principle evaluators and the orchestrator. Everything here is
// a pure function of its input text.
package textstat

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var (
	wordRe        = regexp.MustCompile(`[A-Za-z0-9]+(?:['’-][A-Za-z0-9]+)*`)
	listMarkerRe  = regexp.MustCompile(`^(?:[-*+>]+\s*|\d+[.)]\s*|[a-dA-D][.)]\s+|Q\d*[:.]\s*)+`)
	blockLineRe   = regexp.MustCompile(`^\s*(?:#{1,6}\s|[-*+>]\s|\d+[.)]\s|[a-dA-D][.)]\s|!\[)`)
	abbreviations = map[string]bool{
		"e.g": true, "i.e": true, "etc": true, "vs": true, "fig": true, "cf": true,
		"mr": true, "mrs": true, "dr": true, "al": true, "approx": true, "no": true,
	}
)

// promptVerbs start imperative prompts ("Explain why ...", "List three ...").
var promptVerbs = map[string]bool{
	"explain": true, "describe": true, "compare": true, "contrast": true, "list": true,
	"define": true, "summarize": true, "summarise": true, "identify": true, "predict": true,
	"consider": true, "try": true, "draw": true, "sketch": true, "write": true, "design": true,
	"evaluate": true, "analyze": true, "analyse": true, "apply": true, "calculate": true,
	"solve": true, "reflect": true, "think": true, "discuss": true, "justify": true,
	"create": true, "construct": true, "name": true, "recall": true,
}

// Span is a slice of text with byte offsets into the original string.
type Span struct {
	Text  string
	Start int
	End   int
}

// Words returns the word tokens of s. Hyphenated and apostrophe compounds stay
// one token.
func Words(s string) []string {
	return wordRe.FindAllString(s, -1)
}

func WordCount(s string) int {
	return len(wordRe.FindAllStringIndex(s, -1))
}

// WordSpans returns each word token with its offsets.
func WordSpans(s string) []Span {
	idx := wordRe.FindAllStringIndex(s, -1)
	out := make([]Span, 0, len(idx))
	for _, p := range idx {
		out = append(out, Span{Text: s[p[0]:p[1]], Start: p[0], End: p[1]})
	}
	return out
}

// Sentences splits text into sentence spans. Terminal punctuation followed by
// whitespace ends a sentence, as does a blank line or a line that starts a
// block element (heading, list item, image).
func Sentences(text string) []Span {
	var out []Span
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		raw := text[start:end]
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" && hasWordRune(trimmed) {
			lead := strings.Index(raw, trimmed)
			out = append(out, Span{Text: trimmed, Start: start + lead, End: start + lead + len(trimmed)})
		}
		start = -1
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if start < 0 {
			if isSpaceByte(c) {
				continue
			}
			start = i
		}
		switch c {
		case '.', '!', '?':
			if c == '.' && isAbbreviation(text, start, i) {
				continue
			}
			j := i + 1
			for j < len(text) && strings.IndexByte(`.!?"')]’”`, text[j]) >= 0 {
				j++
			}
			if j >= len(text) || isSpaceByte(text[j]) {
				flush(j)
				i = j - 1
			}
		case '\n':
			next := i + 1
			if next < len(text) && text[next] == '\n' {
				flush(i)
				continue
			}
			if blockLineRe.MatchString(lineAt(text, start)) || blockLineRe.MatchString(lineAt(text, next)) {
				flush(i)
			}
		}
	}
	flush(len(text))
	return out
}

// PromptSpans returns question-like sentences: those ending in '?' or starting
// with an imperative prompt verb.
func PromptSpans(text string) []Span {
	var out []Span
	for _, s := range Sentences(text) {
		if IsPrompt(s.Text) {
			out = append(out, s)
		}
	}
	return out
}

// IsPrompt reports whether a single sentence reads as a question or task.
func IsPrompt(sentence string) bool {
	t := strings.TrimSpace(sentence)
	if t == "" {
		return false
	}
	if strings.HasSuffix(strings.TrimRight(t, `"')]’”`), "?") {
		return true
	}
	if strings.HasPrefix(t, "#") {
		return false
	}
	t = listMarkerRe.ReplaceAllString(t, "")
	first := wordRe.FindString(t)
	return promptVerbs[strings.ToLower(first)]
}

// AverageSentenceLength is words per sentence, 0 for text without sentences.
func AverageSentenceLength(text string) float64 {
	sents := Sentences(text)
	if len(sents) == 0 {
		return 0
	}
	words := 0
	for _, s := range sents {
		words += WordCount(s.Text)
	}
	return float64(words) / float64(len(sents))
}

// IsTechnicalToken flags long words, tokens with digits and hyphenated terms.
func IsTechnicalToken(tok string) bool {
	if len([]rune(tok)) >= 12 {
		return true
	}
	if strings.ContainsAny(tok, "-") {
		return true
	}
	for _, r := range tok {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func TechnicalTokenCount(text string) int {
	n := 0
	for _, w := range Words(text) {
		if IsTechnicalToken(w) {
			n++
		}
	}
	return n
}

// CountMatches counts non-overlapping matches of re in s.
func CountMatches(re *regexp.Regexp, s string) int {
	if re == nil || s == "" {
		return 0
	}
	return len(re.FindAllStringIndex(s, -1))
}

// PerThousand normalises a count by words; 0 when there are no words.
func PerThousand(count, words int) float64 {
	if words <= 0 {
		return 0
	}
	return float64(count) * 1000 / float64(words)
}

// Ratio divides with a zero guard.
func Ratio(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) {
		return 0
	}
	return num / den
}

func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// Variance is the population variance.
func Variance(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := Mean(vals)
	sum := 0.0
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(vals))
}

func Median(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// isAbbreviation checks the word ending at dot against a short list.
func isAbbreviation(text string, floor, dot int) bool {
	i := dot
	for i > floor && (isWordByte(text[i-1]) || text[i-1] == '.') {
		i--
	}
	word := strings.ToLower(text[i:dot])
	return abbreviations[word]
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func lineAt(text string, pos int) string {
	if pos < 0 || pos >= len(text) {
		return ""
	}
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	end := strings.IndexByte(text[pos:], '\n')
	if end < 0 {
		return text[start:]
	}
	return text[start : pos+end]
}
