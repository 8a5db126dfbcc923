package orchestrator

import (
	"math"
	"regexp"
	"sort"

	"github.com/yungbote/learnlens/internal/analysis/concepts"
	"github.com/yungbote/learnlens/internal/analysis/principles"
	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

const (
	FastPacingBelow     = 300.0
	SlowPacingAbove     = 700.0
	TransitionWindow    = 300
	PromotionScoreBelow = 70
	MaxRecommendations  = 12
)

var (
	introHeadingRe      = regexp.MustCompile(`(?i)\b(introduction|intro|overview|getting started|background|preface)\b`)
	objectivesHeadingRe = regexp.MustCompile(`(?i)\b(objectives?|goals?|outcomes|what you('ll| will) learn)\b`)
	summaryHeadingRe    = regexp.MustCompile(`(?i)\b(summary|summari[sz]ing|conclusions?|key takeaways|wrap[- ]up|in brief)\b`)
	reviewHeadingRe     = regexp.MustCompile(`(?i)\b(review|recap|revisit|check your understanding|self[- ]check)\b`)
	practiceHeadingRe   = regexp.MustCompile(`(?i)\b(practice|exercises?|problems|activit(y|ies)|try it|quiz|worked examples?)\b`)

	transitionCueRe = regexp.MustCompile(`(?i)\b(now that|building on|in the previous|as we saw|as we have seen|recall that|next,|having (seen|covered|learned)|let's now|turning to|moving on|earlier|with this in mind|so far)\b`)
)

// OverallScore is the weight-normalised mean of the available evaluations,
// rounded to an integer. Unavailable evaluations do not count; with none
// available the score is 0.
func OverallScore(evals []domain.PrincipleEvaluation) int {
	sum, weights := 0.0, 0.0
	for _, ev := range evals {
		if ev.Status == domain.EvaluationUnavailable || ev.Weight <= 0 {
			continue
		}
		sum += float64(ev.Score) * ev.Weight
		weights += ev.Weight
	}
	if weights == 0 {
		return 0
	}
	score := int(math.Round(sum / weights))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func BuildConceptAnalysis(ch *domain.Chapter, g *domain.ConceptGraph, schedule domain.ReviewSchedule) domain.ConceptAnalysis {
	ca := domain.ConceptAnalysis{
		NovelConceptsPerSection: concepts.NovelPerSection(ch, g),
		ReviewPatterns:          []domain.ReviewPattern{},
		OrphanConcepts:          []string{},
		HierarchyBalance:        textstat.Round(principles.HierarchyBalance(g), 3),
	}
	if ca.NovelConceptsPerSection == nil {
		ca.NovelConceptsPerSection = []int{}
	}
	if g == nil {
		return ca
	}
	ca.TotalConceptsIdentified = len(g.Concepts)
	ca.CoreConceptCount = len(g.ConceptsByTier(domain.ImportanceCore))
	words := 0
	if ch != nil {
		words = ch.WordCount
	}
	ca.ConceptDensity = textstat.Round(textstat.PerThousand(len(g.Concepts), words), 2)

	for _, c := range g.Concepts {
		if g.RelationshipCount(c.ID) == 0 {
			ca.OrphanConcepts = append(ca.OrphanConcepts, c.ID)
		}
	}
	for _, r := range schedule.Concepts {
		ca.ReviewPatterns = append(ca.ReviewPatterns, domain.ReviewPattern{
			ConceptID:    r.ConceptID,
			ConceptName:  r.Name,
			MentionCount: len(r.Positions),
			AverageGap:   r.AverageGap,
			IsOptimal:    r.IsOptimal,
		})
	}
	return ca
}

func BuildStructureAnalysis(ch *domain.Chapter) domain.StructureAnalysis {
	sa := domain.StructureAnalysis{}
	if ch == nil {
		sa.Pacing = PacingFor(0)
		return sa
	}
	lengths := make([]float64, 0, len(ch.Sections))
	for _, s := range ch.Sections {
		lengths = append(lengths, float64(s.WordCount))
		h := s.Heading
		sa.Scaffolding.HasIntroduction = sa.Scaffolding.HasIntroduction || introHeadingRe.MatchString(h)
		sa.Scaffolding.HasObjectives = sa.Scaffolding.HasObjectives || objectivesHeadingRe.MatchString(h)
		sa.Scaffolding.HasSummary = sa.Scaffolding.HasSummary || summaryHeadingRe.MatchString(h)
		sa.Scaffolding.HasReview = sa.Scaffolding.HasReview || reviewHeadingRe.MatchString(h)
		sa.Scaffolding.HasPractice = sa.Scaffolding.HasPractice || practiceHeadingRe.MatchString(h)
	}
	sa.SectionCount = len(ch.Sections)
	avg := textstat.Mean(lengths)
	sa.AvgSectionLength = textstat.Round(avg, 1)
	sa.SectionLengthVariance = textstat.Round(textstat.Variance(lengths), 1)
	sa.Pacing = PacingFor(avg)
	sa.TransitionQuality = textstat.Round(TransitionQuality(ch.Sections), 3)
	return sa
}

func PacingFor(avgSectionWords float64) domain.Pacing {
	switch {
	case avgSectionWords < FastPacingBelow:
		return domain.PacingFast
	case avgSectionWords > SlowPacingAbove:
		return domain.PacingSlow
	default:
		return domain.PacingModerate
	}
}

// TransitionQuality is the share of sections after the first whose opening
// characters carry a transition cue.
func TransitionQuality(sections []domain.Section) float64 {
	if len(sections) < 2 {
		return 0
	}
	n := 0
	for _, s := range sections[1:] {
		head := s.Content
		if len(head) > TransitionWindow {
			head = head[:TransitionWindow]
		}
		if transitionCueRe.MatchString(head) {
			n++
		}
	}
	return float64(n) / float64(len(sections)-1)
}

// Recommendations promotes every high-priority suggestion and every
// suggestion from a principle scoring under 70, deduplicated by id, ordered
// by priority then principle order.
func Recommendations(evals []domain.PrincipleEvaluation) []domain.Recommendation {
	out := []domain.Recommendation{}
	seen := map[string]bool{}
	for _, ev := range evals {
		for _, s := range ev.Suggestions {
			if s.Priority != domain.PriorityHigh && ev.Score >= PromotionScoreBelow {
				continue
			}
			if seen[s.ID] {
				continue
			}
			seen[s.ID] = true
			out = append(out, domain.Recommendation{
				ID:             s.ID,
				Principle:      s.Principle,
				Priority:       s.Priority,
				Title:          s.Title,
				Description:    s.Description,
				Example:        s.Example,
				PrincipleScore: ev.Score,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ri, rj := out[i].Priority.Rank(), out[j].Priority.Rank(); ri != rj {
			return ri < rj
		}
		return out[i].Principle.OrderIndex() < out[j].Principle.OrderIndex()
	})
	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	return out
}
