package domain

type EvidenceType string

const (
	EvidenceMetric EvidenceType = "metric"
	EvidenceCount  EvidenceType = "count"
)

type Quality string

const (
	QualityStrong   Quality = "strong"
	QualityModerate Quality = "moderate"
	QualityWeak     Quality = "weak"
)

// Evidence is a single measurement taken by an evaluator. It is descriptive
// only and never drives control flow outside scoring.
type Evidence struct {
	Type        EvidenceType `json:"type"`
	Metric      string       `json:"metric"`
	Value       float64      `json:"value"`
	Threshold   *float64     `json:"threshold,omitempty"`
	Quality     Quality      `json:"quality"`
	Description string       `json:"description,omitempty"`
}

type FindingType string

const (
	FindingCritical FindingType = "critical"
	FindingWarning  FindingType = "warning"
	FindingPositive FindingType = "positive"
)

type Finding struct {
	Type     FindingType `json:"type"`
	Message  string      `json:"message"`
	Severity float64     `json:"severity"`
	Evidence string      `json:"evidence,omitempty"`
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type Suggestion struct {
	ID          string      `json:"id"`
	Principle   PrincipleID `json:"principle"`
	Priority    Priority    `json:"priority"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Example     string      `json:"example,omitempty"`
}

type EvaluationStatus string

const (
	EvaluationOK          EvaluationStatus = "ok"
	EvaluationUnavailable EvaluationStatus = "unavailable"
)

// PrincipleEvaluation is created fresh by each evaluator call and not
// modified after it is returned.
type PrincipleEvaluation struct {
	Principle   PrincipleID      `json:"principle"`
	Name        string           `json:"name"`
	Score       int              `json:"score"`
	Weight      float64          `json:"weight"`
	Status      EvaluationStatus `json:"status"`
	Findings    []Finding        `json:"findings"`
	Suggestions []Suggestion     `json:"suggestions"`
	Evidence    []Evidence       `json:"evidence"`
}
