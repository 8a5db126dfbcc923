package orchestrator

import (
	"sort"

	"github.com/yungbote/learnlens/internal/analysis/concepts"
	"github.com/yungbote/learnlens/internal/analysis/principles"
	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

// Cognitive-load curve calibration.
const (
	SentenceBandLow    = 10.0
	SentenceBandHigh   = 30.0
	TechnicalCeiling   = 0.15
	noveltyWeight      = 0.30
	densityWeight      = 0.25
	complexityWeight   = 0.25
	technicalityWeight = 0.20
)

const (
	AssessmentInsufficient = "insufficient-data"
	AssessmentGood         = "good"
	AssessmentModerate     = "moderate-blocking"
	AssessmentHigh         = "high-blocking"
)

// BuildVisualizations derives every visualization payload from the prepared
// chapter and its graph.
func BuildVisualizations(ch *domain.Chapter, g *domain.ConceptGraph) domain.Visualizations {
	return domain.Visualizations{
		ConceptMap:          BuildConceptMap(g),
		CognitiveLoadCurve:  CognitiveLoadCurve(ch, g),
		InterleavingPattern: BuildInterleavingPattern(g),
		ReviewSchedule:      BuildReviewSchedule(g),
	}
}

func BuildConceptMap(g *domain.ConceptGraph) domain.ConceptMap {
	m := domain.ConceptMap{Nodes: []domain.ConceptMapNode{}, Edges: []domain.ConceptRelationship{}}
	if g == nil {
		return m
	}
	for _, c := range g.Concepts {
		m.Nodes = append(m.Nodes, domain.ConceptMapNode{
			ID:           c.ID,
			Name:         c.Name,
			Importance:   c.Importance,
			MentionCount: len(c.Mentions),
			FirstMention: c.FirstMention,
		})
	}
	m.Edges = append(m.Edges, g.Relationships...)
	return m
}

// CognitiveLoadCurve scores each section as a weighted mix of novelty,
// mention density, sentence complexity and technicality, clamped to [0,1].
// Novelty and density are normalised by the chapter's maximum.
func CognitiveLoadCurve(ch *domain.Chapter, g *domain.ConceptGraph) []domain.CognitiveLoadPoint {
	out := []domain.CognitiveLoadPoint{}
	if ch == nil || len(ch.Sections) == 0 {
		return out
	}
	novel := concepts.NovelPerSection(ch, g)
	density := make([]float64, len(ch.Sections))
	maxNovel, maxDensity := 0, 0.0
	for i, s := range ch.Sections {
		if words := s.WordCount; words > 0 {
			density[i] = float64(concepts.MentionsIn(g, s.StartPosition, s.EndPosition)) * 100 / float64(words)
		}
		if density[i] > maxDensity {
			maxDensity = density[i]
		}
		if novel[i] > maxNovel {
			maxNovel = novel[i]
		}
	}

	for i, s := range ch.Sections {
		f := domain.LoadFactors{
			Novelty:            textstat.Ratio(float64(novel[i]), float64(maxNovel)),
			Density:            textstat.Ratio(density[i], maxDensity),
			SentenceComplexity: textstat.Clamp01((textstat.AverageSentenceLength(s.Content) - SentenceBandLow) / (SentenceBandHigh - SentenceBandLow)),
			Technicality:       textstat.Clamp01(textstat.Ratio(float64(textstat.TechnicalTokenCount(s.Content)), float64(s.WordCount)) / TechnicalCeiling),
		}
		load := noveltyWeight*f.Novelty + densityWeight*f.Density + complexityWeight*f.SentenceComplexity + technicalityWeight*f.Technicality
		out = append(out, domain.CognitiveLoadPoint{
			SectionID: s.ID,
			Heading:   s.Heading,
			Position:  s.StartPosition,
			Load:      textstat.Round(textstat.Clamp01(load), 3),
			Factors: domain.LoadFactors{
				Novelty:            textstat.Round(f.Novelty, 3),
				Density:            textstat.Round(f.Density, 3),
				SentenceComplexity: textstat.Round(f.SentenceComplexity, 3),
				Technicality:       textstat.Round(f.Technicality, 3),
			},
		})
	}
	return out
}

// BuildInterleavingPattern re-walks the merged mention timeline.
func BuildInterleavingPattern(g *domain.ConceptGraph) domain.InterleavingPattern {
	timeline := g.Timeline()
	p := domain.InterleavingPattern{TotalMentions: len(timeline), BlockingSegments: []domain.BlockingSegment{}}

	runs := concepts.Runs(timeline, concepts.SegmentGap)
	sizes := make([]float64, 0, len(runs))
	for _, r := range runs {
		sizes = append(sizes, float64(r.Length))
		if r.Blocking() {
			p.BlockingSegments = append(p.BlockingSegments, domain.BlockingSegment{
				ConceptID:     r.ConceptID,
				StartPosition: r.Start,
				EndPosition:   r.End,
				Length:        r.Length,
			})
		}
	}
	p.BlockingRatio = textstat.Round(principles.BlockingRatio(timeline), 3)
	p.TopicSwitches = concepts.TopicSwitches(timeline)
	p.AverageBlockSize = textstat.Round(textstat.Mean(sizes), 3)

	switch {
	case p.TotalMentions < principles.MinInterleaveSample:
		p.Assessment = AssessmentInsufficient
		p.Recommendation = "Too few concept mentions to judge interleaving. Name and revisit key concepts explicitly."
	case p.BlockingRatio > principles.BlockingHigh:
		p.Assessment = AssessmentHigh
		p.Recommendation = "Most mentions sit in blocked runs. Alternate between related concepts instead of covering each one in a single stretch."
	case p.BlockingRatio > principles.BlockingModerate:
		p.Assessment = AssessmentModerate
		p.Recommendation = "Some concepts are practised in blocks. Mix in comparisons with earlier concepts."
	default:
		p.Assessment = AssessmentGood
		p.Recommendation = "Concepts are well interleaved."
	}
	return p
}

// BuildReviewSchedule lists the mention gaps of every concept seen at least
// twice. A concept counts as optimally spaced when the variance of its gaps
// stays below the square of their mean.
func BuildReviewSchedule(g *domain.ConceptGraph) domain.ReviewSchedule {
	rs := domain.ReviewSchedule{Concepts: []domain.ConceptReview{}}
	if g == nil {
		return rs
	}
	averages := []float64{}
	for _, c := range g.Concepts {
		gaps := concepts.Gaps(c)
		if len(gaps) == 0 {
			continue
		}
		vals := make([]float64, len(gaps))
		for i, gap := range gaps {
			vals[i] = float64(gap)
		}
		mean := textstat.Mean(vals)
		positions := make([]int, len(c.Mentions))
		for i, m := range c.Mentions {
			positions[i] = m.Position
		}
		rs.Concepts = append(rs.Concepts, domain.ConceptReview{
			ConceptID:  c.ID,
			Name:       c.Name,
			Positions:  positions,
			Gaps:       gaps,
			AverageGap: textstat.Round(mean, 1),
			IsOptimal:  textstat.Variance(vals) < mean*mean,
		})
		averages = append(averages, mean)
	}
	sort.SliceStable(rs.Concepts, func(i, j int) bool {
		return rs.Concepts[i].Positions[0] < rs.Concepts[j].Positions[0]
	})
	rs.OptimalSpacing = textstat.Round(textstat.Median(averages), 1)
	rs.CurrentAverageSpacing = textstat.Round(textstat.Mean(averages), 1)
	return rs
}
