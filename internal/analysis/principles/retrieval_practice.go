package principles

import (
	"strings"

	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

const (
	promptDensityTarget    = 5.0
	promptDensityModerate  = 2.0
	recallStrong           = 0.6
	recallModerate         = 0.3
	difficultyTarget       = 0.6
	distributionStrong     = 0.5
	distributionModerate   = 0.25
	difficultyEasyWeight   = 0.2
	difficultyMediumWeight = 0.5
	difficultyHardWeight   = 1.0
)

type RetrievalPractice struct{}

func (RetrievalPractice) Principle() domain.PrincipleID { return domain.PrincipleRetrievalPractice }

func (RetrievalPractice) Evaluate(ch *domain.Chapter, _ *domain.ConceptGraph) domain.PrincipleEvaluation {
	s := newScorer(domain.PrincipleRetrievalPractice)
	text := contentOf(ch)
	words := wordsOf(ch)
	t := RetrievalPracticePatterns

	prompts := textstat.PromptSpans(text)
	promptText := joinSpans(prompts)
	markers := t.Count("practice", text)
	opportunities := len(prompts) + markers

	density := textstat.PerThousand(opportunities, words)
	s.award(density, promptDensityTarget, 30)
	s.metric("retrievalDensity", density, promptDensityTarget, atLeast(density, promptDensityTarget, promptDensityModerate),
		"questions and practice markers per 1000 words")
	if opportunities == 0 {
		s.critical(0.9, "No retrieval opportunities: the chapter never asks readers to recall anything")
		s.suggest("add-retrieval-questions", domain.PriorityHigh,
			"Add retrieval questions",
			"End each major section with two or three questions answered from memory, without looking back.",
			"Without looking back, explain in two sentences what a hash table is used for.")
	}

	recall, recognition := ClassifyPrompts(text, prompts)
	classified := recall + recognition
	recallRatio := textstat.Ratio(float64(recall), float64(classified))
	s.award(recallRatio, 1, 25)
	q := atLeast(recallRatio, recallStrong, recallModerate)
	if classified == 0 {
		q = domain.QualityWeak
	}
	s.metric("recallRatio", recallRatio, recallStrong, q, "free-recall prompts over recall plus recognition prompts")
	if classified > 0 {
		switch {
		case recallRatio < recallModerate:
			s.warning(0.5, "Most practice is recognition-based (%s recall)", percent(recallRatio))
			s.suggest("prefer-free-recall", domain.PriorityMedium,
				"Favour free recall over recognition",
				"Multiple-choice and true/false items are easier than producing an answer. Convert some to open prompts.",
				"Replace \"Which of the following is a prime number?\" with \"List the first five prime numbers.\"")
		case recallRatio >= recallStrong:
			s.positive("Practice mostly asks for free recall (%s)", percent(recallRatio))
		}
	}

	difficulty := DifficultyWeighting(promptText)
	s.award(difficulty, difficultyTarget, 20)
	s.metric("difficultyWeighting", difficulty, difficultyTarget, atLeast(difficulty, difficultyTarget, 0.4),
		"weighted mix of easy, moderate and challenging prompts")
	if len(prompts) > 0 && difficulty < 0.4 {
		s.suggest("raise-difficulty", domain.PriorityLow,
			"Include some challenging retrieval",
			"Effortful retrieval strengthens memory more than easy recall. Add a few harder questions.",
			"Predict what would happen to the output if the input list were already sorted.")
	}

	distribution := sectionCoverage(ch, func(sec string) bool {
		return len(textstat.PromptSpans(sec)) > 0 || t.Has("practice", sec)
	})
	s.award(distribution, 1, 25)
	s.metric("sectionDistribution", distribution, distributionStrong, atLeast(distribution, distributionStrong, distributionModerate),
		"share of sections containing a question or practice marker")
	if opportunities > 0 && distribution < distributionModerate {
		s.warning(0.4, "Retrieval practice is concentrated in %s of sections", percent(distribution))
		s.suggest("spread-retrieval", domain.PriorityMedium,
			"Spread questions across sections",
			"Place short retrieval checks throughout the chapter rather than only at the end.",
			"Add a \"Quick check\" question after each main heading.")
	}
	return s.result()
}

// ClassifyPrompts sorts prompt spans into recall and recognition items. A
// prompt is recognition-style when it carries a recognition cue, or when it
// is a question followed by lettered answer options; prompts inside such an
// option block belong to it. Otherwise it is recall-style when it asks for a
// produced answer. Prompts matching neither are left unclassified. Lettered
// lines after an instruction ("Explain ... .") are an outline, not options.
func ClassifyPrompts(text string, prompts []textstat.Span) (recall, recognition int) {
	t := RetrievalPracticePatterns
	blockEnd := -1
	for _, pr := range prompts {
		if pr.Start < blockEnd {
			continue
		}
		options, end := 0, pr.End
		if asksForChoice(pr.Text) {
			options, end = optionBlock(text, pr.End)
		}
		switch {
		case options >= minOptions:
			recognition++
			blockEnd = end
		case t.Has("recognition", pr.Text):
			recognition++
		case t.Has("recall", pr.Text):
			recall++
		}
	}
	return recall, recognition
}

// asksForChoice reports whether a prompt can introduce answer options: a
// question, a lead-in ending in a colon, or a recognition cue.
func asksForChoice(prompt string) bool {
	t := strings.TrimRight(strings.TrimSpace(prompt), `"')]’”`)
	return strings.HasSuffix(t, "?") || strings.HasSuffix(t, ":") ||
		RetrievalPracticePatterns.Has("recognition", prompt)
}

// minOptions is the shortest lettered list read as a multiple-choice block.
const minOptions = 2

// optionBlock counts consecutive lettered option lines starting on the line
// after pos, allowing blank lines before the first one. end is the offset
// just past the last option line.
func optionBlock(text string, pos int) (n, end int) {
	if pos < 0 || pos > len(text) {
		return 0, pos
	}
	nl := strings.IndexByte(text[pos:], '\n')
	if nl < 0 {
		return 0, pos
	}
	end = pos
	cur := pos + nl + 1
	for cur < len(text) {
		lineEnd := strings.IndexByte(text[cur:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += cur
		}
		line := text[cur:lineEnd]
		switch {
		case strings.TrimSpace(line) == "" && n == 0:
		case RetrievalPracticePatterns.Has("option", line):
			n++
			end = lineEnd
		default:
			return n, end
		}
		cur = lineEnd + 1
	}
	return n, end
}

// DifficultyWeighting is (easy*0.2 + moderate*0.5 + challenging*1.0) / matches.
func DifficultyWeighting(promptText string) float64 {
	t := RetrievalPracticePatterns
	easy := t.Count("easy", promptText)
	moderate := t.Count("moderate", promptText)
	hard := t.Count("challenging", promptText)
	total := easy + moderate + hard
	if total == 0 {
		return 0
	}
	w := float64(easy)*difficultyEasyWeight + float64(moderate)*difficultyMediumWeight + float64(hard)*difficultyHardWeight
	return w / float64(total)
}
