package domain

// CustomConcept is an author-supplied concept that the extractor always
// considers, regardless of frequency.
type CustomConcept struct {
	Name       string         `json:"name" validate:"required,max=120"`
	Aliases    []string       `json:"aliases,omitempty" validate:"dive,max=120"`
	Category   string         `json:"category,omitempty"`
	Importance ImportanceTier `json:"importance,omitempty" validate:"omitempty,oneof=core supporting detail"`
}

// AnalysisRequest is the single message that starts a run.
type AnalysisRequest struct {
	Chapter            Chapter         `json:"chapter"`
	Domain             string          `json:"domain,omitempty" validate:"max=64"`
	IncludeCrossDomain bool            `json:"includeCrossDomain,omitempty"`
	CustomConcepts     []CustomConcept `json:"customConcepts,omitempty" validate:"max=100,dive"`
}

// Stage names the pipeline step a progress message refers to.
type Stage string

const (
	StageReceived              Stage = "received"
	StageExtractingConcepts    Stage = "extracting-concepts"
	StageEvaluatingPrinciples  Stage = "evaluating-principles"
	StageBuildingVisualization Stage = "building-visualizations"
	StageFinalizing            Stage = "finalizing"
	StageComplete              Stage = "complete"
	StageError                 Stage = "error"
)

type MessageType string

const (
	MessageProgress  MessageType = "progress"
	MessageComplete  MessageType = "complete"
	MessageError     MessageType = "error"
	MessageCancelled MessageType = "cancelled"
)

// RunMessage is one element of the run protocol: zero or more progress
// messages followed by exactly one terminal message.
type RunMessage struct {
	Type      MessageType      `json:"type"`
	RunID     string           `json:"runId"`
	Step      Stage            `json:"step,omitempty"`
	Detail    string           `json:"detail,omitempty"`
	Completed int              `json:"completed,omitempty"`
	Total     int              `json:"total,omitempty"`
	Result    *ChapterAnalysis `json:"result,omitempty"`
	Message   string           `json:"message,omitempty"`
}

func (m RunMessage) Terminal() bool {
	return m.Type == MessageComplete || m.Type == MessageError || m.Type == MessageCancelled
}
