package domain

import "time"

// ChapterAnalysis is the terminal result of one run. It is assembled once and
// not updated afterwards. AnalyzedAt is the only wall-clock field.
type ChapterAnalysis struct {
	RunID             string                `json:"runId,omitempty"`
	ChapterID         string                `json:"chapterId"`
	ChapterTitle      string                `json:"chapterTitle"`
	AnalyzedAt        time.Time             `json:"analyzedAt"`
	OverallScore      int                   `json:"overallScore"`
	Principles        []PrincipleEvaluation `json:"principles"`
	ConceptAnalysis   ConceptAnalysis       `json:"conceptAnalysis"`
	StructureAnalysis StructureAnalysis     `json:"structureAnalysis"`
	Recommendations   []Recommendation      `json:"recommendations"`
	Visualizations    Visualizations        `json:"visualizations"`
}

type ConceptAnalysis struct {
	TotalConceptsIdentified int             `json:"totalConceptsIdentified"`
	CoreConceptCount        int             `json:"coreConceptCount"`
	ConceptDensity          float64         `json:"conceptDensity"`
	NovelConceptsPerSection []int           `json:"novelConceptsPerSection"`
	ReviewPatterns          []ReviewPattern `json:"reviewPatterns"`
	HierarchyBalance        float64         `json:"hierarchyBalance"`
	OrphanConcepts          []string        `json:"orphanConcepts"`
}

type ReviewPattern struct {
	ConceptID    string  `json:"conceptId"`
	ConceptName  string  `json:"conceptName"`
	MentionCount int     `json:"mentionCount"`
	AverageGap   float64 `json:"averageGap"`
	IsOptimal    bool    `json:"isOptimal"`
}

type Pacing string

const (
	PacingFast     Pacing = "fast"
	PacingModerate Pacing = "moderate"
	PacingSlow     Pacing = "slow"
)

type Scaffolding struct {
	HasIntroduction bool `json:"hasIntroduction"`
	HasObjectives   bool `json:"hasObjectives"`
	HasSummary      bool `json:"hasSummary"`
	HasReview       bool `json:"hasReview"`
	HasPractice     bool `json:"hasPractice"`
}

type StructureAnalysis struct {
	SectionCount          int         `json:"sectionCount"`
	AvgSectionLength      float64     `json:"avgSectionLength"`
	SectionLengthVariance float64     `json:"sectionLengthVariance"`
	Pacing                Pacing      `json:"pacing"`
	Scaffolding           Scaffolding `json:"scaffolding"`
	TransitionQuality     float64     `json:"transitionQuality"`
}

type Recommendation struct {
	ID          string      `json:"id"`
	Principle   PrincipleID `json:"principle"`
	Priority    Priority    `json:"priority"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Example     string      `json:"example,omitempty"`
	// PrincipleScore is the score of the originating principle at promotion time.
	PrincipleScore int `json:"principleScore"`
}

type Visualizations struct {
	ConceptMap          ConceptMap           `json:"conceptMap"`
	CognitiveLoadCurve  []CognitiveLoadPoint `json:"cognitiveLoadCurve"`
	InterleavingPattern InterleavingPattern  `json:"interleavingPattern"`
	ReviewSchedule      ReviewSchedule       `json:"reviewSchedule"`
}

type ConceptMapNode struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Importance   ImportanceTier `json:"importance"`
	MentionCount int            `json:"mentionCount"`
	FirstMention int            `json:"firstMention"`
}

type ConceptMap struct {
	Nodes []ConceptMapNode      `json:"nodes"`
	Edges []ConceptRelationship `json:"edges"`
}

type LoadFactors struct {
	Novelty            float64 `json:"novelty"`
	Density            float64 `json:"density"`
	SentenceComplexity float64 `json:"sentenceComplexity"`
	Technicality       float64 `json:"technicality"`
}

type CognitiveLoadPoint struct {
	SectionID string      `json:"sectionId"`
	Heading   string      `json:"heading"`
	Position  int         `json:"position"`
	Load      float64     `json:"load"`
	Factors   LoadFactors `json:"factors"`
}

type BlockingSegment struct {
	ConceptID     string `json:"conceptId"`
	StartPosition int    `json:"startPosition"`
	EndPosition   int    `json:"endPosition"`
	Length        int    `json:"length"`
}

type InterleavingPattern struct {
	TotalMentions    int               `json:"totalMentions"`
	BlockingSegments []BlockingSegment `json:"blockingSegments"`
	BlockingRatio    float64           `json:"blockingRatio"`
	TopicSwitches    int               `json:"topicSwitches"`
	AverageBlockSize float64           `json:"averageBlockSize"`
	Assessment       string            `json:"assessment"`
	Recommendation   string            `json:"recommendation"`
}

type ConceptReview struct {
	ConceptID  string  `json:"conceptId"`
	Name       string  `json:"name"`
	Positions  []int   `json:"positions"`
	Gaps       []int   `json:"gaps"`
	AverageGap float64 `json:"averageGap"`
	IsOptimal  bool    `json:"isOptimal"`
}

type ReviewSchedule struct {
	Concepts              []ConceptReview `json:"concepts"`
	OptimalSpacing        float64         `json:"optimalSpacing"`
	CurrentAverageSpacing float64         `json:"currentAverageSpacing"`
}
