package principles

import (
	"fmt"
	"math"
	"strings"

	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

// scorer accumulates one evaluation. Every evaluator builds exactly one and
// returns scorer.result(); nothing is shared between calls.
type scorer struct {
	principle domain.PrincipleID
	total     float64
	ev        domain.PrincipleEvaluation
}

func newScorer(id domain.PrincipleID) *scorer {
	return &scorer{
		principle: id,
		ev: domain.PrincipleEvaluation{
			Principle:   id,
			Name:        id.Name(),
			Weight:      domain.DefaultWeights[id],
			Status:      domain.EvaluationOK,
			Findings:    []domain.Finding{},
			Suggestions: []domain.Suggestion{},
			Evidence:    []domain.Evidence{},
		},
	}
}

// contribution is min(value/target, 1) * points with NaN and zero guards.
func contribution(value, target, points float64) float64 {
	if target <= 0 || points <= 0 {
		return 0
	}
	return textstat.Clamp01(value/target) * points
}

// inverseContribution gives full points while value stays at or under the
// ceiling and decays as ceiling/value beyond it.
func inverseContribution(value, ceiling, points float64) float64 {
	if value <= ceiling {
		return points
	}
	return points * textstat.Clamp01(ceiling/value)
}

func (s *scorer) award(value, target, points float64) {
	s.total += contribution(value, target, points)
}

func (s *scorer) awardPoints(points float64) {
	s.total += points
}

// atLeast grades higher-is-better values.
func atLeast(v, strong, moderate float64) domain.Quality {
	switch {
	case v >= strong:
		return domain.QualityStrong
	case v >= moderate:
		return domain.QualityModerate
	default:
		return domain.QualityWeak
	}
}

// atMost grades lower-is-better values.
func atMost(v, strong, moderate float64) domain.Quality {
	switch {
	case v <= strong:
		return domain.QualityStrong
	case v <= moderate:
		return domain.QualityModerate
	default:
		return domain.QualityWeak
	}
}

func (s *scorer) metric(name string, value, threshold float64, q domain.Quality, desc string) {
	s.evidence(domain.EvidenceMetric, name, value, threshold, q, desc)
}

func (s *scorer) count(name string, n int, threshold float64, q domain.Quality, desc string) {
	s.evidence(domain.EvidenceCount, name, float64(n), threshold, q, desc)
}

func (s *scorer) evidence(kind domain.EvidenceType, name string, value, threshold float64, q domain.Quality, desc string) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
		q = domain.QualityWeak
	}
	t := threshold
	s.ev.Evidence = append(s.ev.Evidence, domain.Evidence{
		Type:        kind,
		Metric:      name,
		Value:       textstat.Round(value, 3),
		Threshold:   &t,
		Quality:     q,
		Description: desc,
	})
}

func (s *scorer) critical(severity float64, msg string, args ...any) {
	s.finding(domain.FindingCritical, severity, msg, args...)
}

func (s *scorer) warning(severity float64, msg string, args ...any) {
	s.finding(domain.FindingWarning, severity, msg, args...)
}

func (s *scorer) positive(msg string, args ...any) {
	s.finding(domain.FindingPositive, 0, msg, args...)
}

// finding records a message. The evidence text is the last evidence entry,
// which is the measurement the finding was derived from.
func (s *scorer) finding(kind domain.FindingType, severity float64, msg string, args ...any) {
	text := msg
	if len(args) > 0 {
		text = fmt.Sprintf(msg, args...)
	}
	f := domain.Finding{Type: kind, Message: text, Severity: textstat.Clamp01(severity)}
	if n := len(s.ev.Evidence); n > 0 {
		e := s.ev.Evidence[n-1]
		f.Evidence = fmt.Sprintf("%s=%s", e.Metric, formatValue(e.Value))
	}
	s.ev.Findings = append(s.ev.Findings, f)
}

// suggest adds a remediation once per slug.
func (s *scorer) suggest(slug string, pr domain.Priority, title, desc, example string) {
	id := string(s.principle) + "." + slug
	for _, existing := range s.ev.Suggestions {
		if existing.ID == id {
			return
		}
	}
	s.ev.Suggestions = append(s.ev.Suggestions, domain.Suggestion{
		ID:          id,
		Principle:   s.principle,
		Priority:    pr,
		Title:       title,
		Description: desc,
		Example:     example,
	})
}

func (s *scorer) result() domain.PrincipleEvaluation {
	ev := s.ev
	ev.Score = clampScore(s.total)
	return ev
}

func clampScore(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}

// percent renders a ratio for messages.
func percent(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v*100)))
}
