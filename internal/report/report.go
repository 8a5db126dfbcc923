// Package report renders a ChapterAnalysis as a styled terminal summary.
package report

import (
	"fmt"
	"strings"

	"github.com/yungbote/learnlens/internal/domain"
)

const barWidth = 20

// MaxRecommendations caps how many recommendations the summary lists.
const MaxRecommendations = 5

func bar(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score * barWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// Summary renders the overall score, per-principle bars, structure notes and
// the top recommendations.
func Summary(res *domain.ChapterAnalysis) string {
	if res == nil {
		return ""
	}
	var b strings.Builder

	header := fmt.Sprintf("%s  %s",
		titleStyle.Render(res.ChapterTitle),
		scoreStyle(res.OverallScore).Render(fmt.Sprintf("%d/100", res.OverallScore)))
	b.WriteString(boxStyle.Render(header))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Principles"))
	b.WriteString("\n")
	for _, ev := range res.Principles {
		name := ev.Name
		if name == "" {
			name = ev.Principle.Name()
		}
		line := labelStyle.Render(name)
		if ev.Status == domain.EvaluationUnavailable {
			line += mutedStyle.Render("unavailable")
		} else {
			line += scoreStyle(ev.Score).Render(bar(ev.Score)) + fmt.Sprintf(" %3d", ev.Score)
		}
		b.WriteString(line + "\n")
	}

	s := res.StructureAnalysis
	ca := res.ConceptAnalysis
	b.WriteString(headingStyle.Render("Structure"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d sections, %.0f words on average, %s pacing, transitions %.0f%%",
		s.SectionCount, s.AvgSectionLength, s.Pacing, s.TransitionQuality*100)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d concepts (%d core), %.1f per 1000 words, %d orphaned",
		ca.TotalConceptsIdentified, ca.CoreConceptCount, ca.ConceptDensity, len(ca.OrphanConcepts))))
	b.WriteString("\n")
	if a := res.Visualizations.InterleavingPattern.Assessment; a != "" {
		b.WriteString(mutedStyle.Render("interleaving: " + a))
		b.WriteString("\n")
	}

	if len(res.Recommendations) > 0 {
		b.WriteString(headingStyle.Render("Recommendations"))
		b.WriteString("\n")
		for i, r := range res.Recommendations {
			if i == MaxRecommendations {
				b.WriteString(mutedStyle.Render(fmt.Sprintf("… %d more", len(res.Recommendations)-i)))
				b.WriteString("\n")
				break
			}
			b.WriteString(fmt.Sprintf("%s %s %s\n",
				priorityMark(r.Priority),
				r.Title,
				mutedStyle.Render("("+r.Principle.Name()+")")))
		}
	}
	return b.String()
}

func priorityMark(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return scoreStyle(0).Render("!")
	case domain.PriorityMedium:
		return scoreStyle(50).Render("•")
	default:
		return mutedStyle.Render("·")
	}
}

// ProgressLine formats one run message for a progress log.
func ProgressLine(m domain.RunMessage) string {
	switch {
	case m.Type != domain.MessageProgress:
		return string(m.Type)
	case m.Total > 0:
		return fmt.Sprintf("%s [%d/%d] %s", m.Step, m.Completed, m.Total, m.Detail)
	case m.Detail != "":
		return fmt.Sprintf("%s: %s", m.Step, m.Detail)
	default:
		return string(m.Step)
	}
}
