package principles

import (
	"github.com/yungbote/learnlens/internal/analysis/concepts"
	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

const (
	SectionWordCeiling  = 800
	sectionWordModerate = 1200
	SentenceCeiling     = 20
	sentenceModerate    = 28
	NovelCeiling        = 5
	novelModerate       = 8
	TechnicalCeiling    = 0.08
	technicalModerate   = 0.12
)

type CognitiveLoad struct{}

func (CognitiveLoad) Principle() domain.PrincipleID { return domain.PrincipleCognitiveLoad }

func (CognitiveLoad) Evaluate(ch *domain.Chapter, g *domain.ConceptGraph) domain.PrincipleEvaluation {
	s := newScorer(domain.PrincipleCognitiveLoad)
	text := contentOf(ch)
	words := wordsOf(ch)

	if words == 0 {
		s.metric("avgSectionWords", 0, SectionWordCeiling, domain.QualityWeak, "no text to measure")
		s.metric("avgSentenceLength", 0, SentenceCeiling, domain.QualityWeak, "no text to measure")
		s.count("peakNovelConcepts", 0, NovelCeiling, domain.QualityWeak, "no text to measure")
		s.metric("technicalDensity", 0, TechnicalCeiling, domain.QualityWeak, "no text to measure")
		s.warning(0.3, "The chapter has no text, so cognitive load cannot be assessed")
		return s.result()
	}

	secs := sectionsOf(ch)
	lengths := make([]float64, 0, len(secs))
	for _, sec := range secs {
		lengths = append(lengths, float64(sectionWords(ch, sec)))
	}
	avgSection := textstat.Mean(lengths)
	if len(lengths) > 0 {
		s.awardPoints(inverseContribution(avgSection, SectionWordCeiling, 35))
		s.metric("avgSectionWords", avgSection, SectionWordCeiling, atMost(avgSection, SectionWordCeiling, sectionWordModerate),
			"average words per section against an 800-word ceiling")
	} else {
		s.metric("avgSectionWords", 0, SectionWordCeiling, domain.QualityWeak, "no sections to measure")
	}
	switch {
	case avgSection > sectionWordModerate:
		s.critical(0.7, "Sections average %.0f words, well above the 800-word ceiling", avgSection)
		s.suggest("split-sections", domain.PriorityHigh,
			"Break long sections into smaller chunks",
			"Split sections so each one develops a single idea in roughly 300 to 800 words.",
			"Split \"Cell Division\" into \"Mitosis\" and \"Meiosis\", each with its own summary.")
	case avgSection > SectionWordCeiling:
		s.warning(0.5, "Sections average %.0f words, above the 800-word ceiling", avgSection)
		s.suggest("split-sections", domain.PriorityMedium,
			"Shorten long sections",
			"Add subheadings or split the longest sections.",
			"Add a subheading before the worked example.")
	}

	sentence := textstat.AverageSentenceLength(text)
	s.awardPoints(inverseContribution(sentence, SentenceCeiling, 25))
	s.metric("avgSentenceLength", sentence, SentenceCeiling, atMost(sentence, SentenceCeiling, sentenceModerate),
		"average words per sentence")
	if sentence > sentenceModerate {
		s.warning(0.5, "Sentences average %.1f words", sentence)
		s.suggest("shorten-sentences", domain.PriorityMedium,
			"Shorten sentences",
			"Long sentences force readers to hold many clauses in working memory. Split them.",
			"Split sentences joined by \"which\" or \"and\" into two.")
	}

	peak := 0
	for _, n := range concepts.NovelPerSection(ch, g) {
		if n > peak {
			peak = n
		}
	}
	if len(ch.Sections) == 0 && !g.IsEmpty() {
		peak = len(g.Concepts)
	}
	s.awardPoints(inverseContribution(float64(peak), NovelCeiling, 20))
	s.count("peakNovelConcepts", peak, NovelCeiling, atMost(float64(peak), NovelCeiling, novelModerate),
		"most new concepts introduced in one section")
	if peak > novelModerate {
		s.critical(0.6, "One section introduces %d new concepts", peak)
		s.suggest("spread-new-concepts", domain.PriorityHigh,
			"Introduce fewer new concepts at once",
			"Spread new terms across sections so each builds on the previous ones.",
			"Move the secondary terms to the following section, after the core idea is established.")
	} else if peak > NovelCeiling {
		s.warning(0.4, "One section introduces %d new concepts", peak)
	}

	technical := textstat.Ratio(float64(textstat.TechnicalTokenCount(text)), float64(words))
	s.awardPoints(inverseContribution(technical, TechnicalCeiling, 20))
	s.metric("technicalDensity", technical, TechnicalCeiling, atMost(technical, TechnicalCeiling, technicalModerate),
		"share of long, hyphenated or numeric tokens")
	if technical > technicalModerate {
		s.warning(0.4, "Technical vocabulary is dense (%s of words)", percent(technical))
		s.suggest("define-jargon", domain.PriorityLow,
			"Ease technical density",
			"Define technical terms on first use and prefer plain words where precision allows.",
			"Replace \"utilise\" with \"use\"; gloss \"mitochondrial\" the first time it appears.")
	}

	signals := CognitiveLoadPatterns.Count("signaling", text)
	s.count("signalingCues", signals, 3, atLeast(float64(signals), 3, 1), "structure signals such as first, finally, note that")

	if len(s.ev.Findings) == 0 {
		s.positive("Sections and sentences are well paced")
	}
	return s.result()
}
