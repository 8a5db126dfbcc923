package principles

import (
	"fmt"
	"regexp"

	"github.com/yungbote/learnlens/internal/domain"
)

// PatternTable is a named, versioned set of lexical detectors. Each pattern
// feeds one bucket; a bucket's count is the sum of its patterns' matches.
type PatternTable struct {
	Name     string
	Version  int
	Patterns []Pattern
}

type Pattern struct {
	Bucket string
	Re     *regexp.Regexp
}

func p(bucket, expr string) Pattern {
	return Pattern{Bucket: bucket, Re: regexp.MustCompile(expr)}
}

// ID is the table name with its version, e.g. "dual-coding/v1".
func (t PatternTable) ID() string {
	return fmt.Sprintf("%s/v%d", t.Name, t.Version)
}

// Buckets lists bucket names in declaration order.
func (t PatternTable) Buckets() []string {
	var out []string
	seen := map[string]bool{}
	for _, pt := range t.Patterns {
		if !seen[pt.Bucket] {
			seen[pt.Bucket] = true
			out = append(out, pt.Bucket)
		}
	}
	return out
}

func (t PatternTable) Count(bucket, text string) int {
	if text == "" {
		return 0
	}
	n := 0
	for _, pt := range t.Patterns {
		if pt.Bucket == bucket {
			n += len(pt.Re.FindAllStringIndex(text, -1))
		}
	}
	return n
}

func (t PatternTable) Has(bucket, text string) bool {
	if text == "" {
		return false
	}
	for _, pt := range t.Patterns {
		if pt.Bucket == bucket && pt.Re.MatchString(text) {
			return true
		}
	}
	return false
}

// CountAll returns the count of every bucket.
func (t PatternTable) CountAll(text string) map[string]int {
	out := make(map[string]int, len(t.Patterns))
	for _, b := range t.Buckets() {
		out[b] = t.Count(b, text)
	}
	return out
}

// Bloom levels used by the deep-processing table.
const (
	bloomRemember   = "remember"
	bloomUnderstand = "understand"
	bloomApply      = "apply"
	bloomAnalyze    = "analyze"
	bloomEvaluate   = "evaluate"
	bloomCreate     = "create"
)

var bloomLevels = []string{bloomRemember, bloomUnderstand, bloomApply, bloomAnalyze, bloomEvaluate, bloomCreate}

var DeepProcessingPatterns = PatternTable{
	Name:    "deep-processing",
	Version: 1,
	Patterns: []Pattern{
		p(bloomRemember, `(?i)\b(?:define|list|name|recall|identify|state|what is|what are|who|when|where)\b`),
		p(bloomUnderstand, `(?i)\b(?:explain|describe|summari[sz]e|paraphrase|interpret|classify|in your own words|give an example)\b`),
		p(bloomApply, `(?i)\b(?:apply|use|solve|calculate|demonstrate|implement|compute|how would you use)\b`),
		p(bloomAnalyze, `(?i)\b(?:analy[sz]e|compare|contrast|differentiate|distinguish|examine|why does|why do|why is|what is the relationship|break down|categori[sz]e)\b`),
		p(bloomEvaluate, `(?i)\b(?:evaluate|justify|assess|critique|judge|defend|argue|which is better|to what extent|do you agree)\b`),
		p(bloomCreate, `(?i)\b(?:design|create|construct|propose|invent|develop|formulate|compose|what would happen if|devise)\b`),
		p("whyHow", `(?i)\b(why|how)\b\??`),
		p("elaboration", `(?i)\b(?:for example|for instance|in other words|this means that|think of|imagine|consider how|how does this relate|connect this to|what if)\b`),
		p("definition", `(?i)\b(?:is defined as|refers to|is a|are a|means|is the|is called|known as|definition)\b`),
		p("example", `(?i)(?:\b(?:for example|for instance|such as|consider|imagine|example)\b|\be\.g\.)`),
		p("mechanism", `(?i)\b(?:because|therefore|causes?|leads to|results in|due to|so that|as a result|which means|in order to|mechanism|works by)\b`),
		p("application", `(?i)\b(?:appl(?:y|ies|ied|ication)|used (?:in|to|for)|in practice|real[- ]world|in everyday|use case|practical)\b`),
	},
}

var SpacedRepetitionPatterns = PatternTable{
	Name:    "spaced-repetition",
	Version: 1,
	Patterns: []Pattern{
		p("reviewCue", `(?i)\b(?:recall that|as we saw|as discussed|remember that|earlier we|let's revisit|revisit|review|returning to|as mentioned)\b`),
	},
}

var RetrievalPracticePatterns = PatternTable{
	Name:    "retrieval-practice",
	Version: 2,
	Patterns: []Pattern{
		p("recognition", `(?i)(?:\bmultiple[- ]choice\b|\btrue or false\b|\btrue/false\b|\bwhich of the following\b|\bmatch (?:each|the following)\b|\bselect (?:the|all|one)\b|\bcircle the\b)`),
		// Lettered answer choices; only meaningful directly after a prompt.
		p("option", `^[ \t]*[a-dA-D][.)][ \t]+\S`),
		p("recall", `(?i)\b(?:explain|describe|define|list|summari[sz]e|recall|write down|in your own words|name|state|outline|what is|what are|how does|why does)\b`),
		p("easy", `(?i)\b(?:define|list|name|what is|what are|identify|recall|state)\b`),
		p("moderate", `(?i)\b(?:explain|describe|summari[sz]e|compare|give an example|outline|how does)\b`),
		p("challenging", `(?i)\b(?:why|evaluate|justify|design|predict|analy[sz]e|create|what would happen|critique|propose)\b`),
		p("practice", `(?im)(?:^#{1,6}[ \t]*(?:practice|exercises?|quiz|self[- ]test|check your understanding|review questions)\b|\b(?:practice problems?|quiz yourself|test yourself|check your understanding|try it yourself|self[- ]test)\b)`),
	},
}

var InterleavingPatterns = PatternTable{
	Name:    "interleaving",
	Version: 1,
	Patterns: []Pattern{
		p("comparison", `(?i)\b(?:compare|comparing|contrast|unlike|similarly|whereas|in contrast|versus|vs|difference between|differs? from|on the other hand)\b`),
	},
}

var DualCodingPatterns = PatternTable{
	Name:    "dual-coding",
	Version: 1,
	Patterns: []Pattern{
		p("visual", `(?i)\b(?:figure|fig|diagram|chart|graph|table|illustration|image|picture|photo|map|flowchart|infographic|visual|sketch)\b`),
		p("markdownImage", `!\[[^\]]*\]\([^)]*\)`),
		p("integration", `(?i)\b(?:as shown in|shown (?:in|below|above)|the (?:figure|diagram|chart|table) (?:shows|illustrates)|refer to (?:the )?(?:figure|diagram|table)|illustrated in|labeled|labelled|see (?:figure|fig|table|diagram))\b`),
		p("imagery", `(?i)\b(?:imagine|picture (?:this|yourself|a)|visuali[sz]e|looks like|shaped like|think of (?:it|this) as|resembles|like a)\b`),
	},
}

var GenerativeLearningPatterns = PatternTable{
	Name:    "generative-learning",
	Version: 1,
	Patterns: []Pattern{
		p("generative", `(?i)\b(?:in your own words|summari[sz]e|explain (?:to|in)|teach|draw|sketch|create|design|construct|generate|write (?:a|an|down|your)|map out|come up with|make a list)\b`),
		p("prediction", `(?i)\b(?:predict|what do you think will|what would happen|what will happen|guess|hypothesi[sz]e|what might|before reading)\b`),
	},
}

var MetacognitionPatterns = PatternTable{
	Name:    "metacognition",
	Version: 1,
	Patterns: []Pattern{
		p("reflection", `(?i)\b(?:reflect|how confident|what did you|think about (?:your|how)|monitor|what strategies|do you understand|still unclear|rate your|ask yourself|how well|what questions do you|self-assess)\b`),
		p("objectives", `(?i)\b(?:learning objectives?|objectives|by the end of this (?:chapter|section|lesson)|you will be able to|in this chapter,? you will|goals? of this|learning goals?)\b`),
		p("selfCheck", `(?i)\b(?:check your understanding|self[- ]check|review questions|key takeaways|summary|can you now|test yourself|quick check)\b`),
	},
}

var SchemaBuildingPatterns = PatternTable{
	Name:    "schema-building",
	Version: 1,
	Patterns: []Pattern{
		p("connecting", `(?i)\b(?:builds? on|recall that|as we saw|connects? to|related to|similar to|in contrast to|this means|therefore|because|is part of|is a type of|is an example of|extends|leads to)\b`),
		p("organizer", `(?i)\b(?:overview|in this chapter|we will|roadmap|outline|big picture|first,? we|this chapter covers|preview)\b`),
	},
}

var CognitiveLoadPatterns = PatternTable{
	Name:    "cognitive-load",
	Version: 1,
	Patterns: []Pattern{
		p("signaling", `(?i)\b(?:first|second|third|finally|in summary|key point|note that|importantly|to recap|step \d+)\b`),
	},
}

var EmotionalRelevancePatterns = PatternTable{
	Name:    "emotional-relevance",
	Version: 1,
	Patterns: []Pattern{
		p("realWorld", `(?i)\b(?:real[- ]world|in real life|everyday|daily life|at work|in practice|in the workplace|your life|industry|careers?|consider (?:a|your))\b`),
		p("curiosity", `(?i)\b(?:have you ever (?:wondered|noticed)|surprising(?:ly)?|mystery|what if|did you know|curious|puzzle|paradox)\b`),
		p("secondPerson", `(?i)\b(?:you|your|yours|yourself)\b`),
		p("motivation", `(?i)\b(?:this matters because|why this matters|will help you|useful (?:for|when)|important because|so that you can|you will be able to|benefits?|valuable|relevant to)\b`),
	},
}

// Tables maps each principle to its pattern table.
var Tables = map[domain.PrincipleID]PatternTable{
	domain.PrincipleDeepProcessing:     DeepProcessingPatterns,
	domain.PrincipleSpacedRepetition:   SpacedRepetitionPatterns,
	domain.PrincipleRetrievalPractice:  RetrievalPracticePatterns,
	domain.PrincipleInterleaving:       InterleavingPatterns,
	domain.PrincipleDualCoding:         DualCodingPatterns,
	domain.PrincipleGenerativeLearning: GenerativeLearningPatterns,
	domain.PrincipleMetacognition:      MetacognitionPatterns,
	domain.PrincipleSchemaBuilding:     SchemaBuildingPatterns,
	domain.PrincipleCognitiveLoad:      CognitiveLoadPatterns,
	domain.PrincipleEmotionalRelevance: EmotionalRelevancePatterns,
}
