package domain

type PrincipleID string

const (
	PrincipleDeepProcessing     PrincipleID = "deepProcessing"
	PrincipleSpacedRepetition   PrincipleID = "spacedRepetition"
	PrincipleRetrievalPractice  PrincipleID = "retrievalPractice"
	PrincipleInterleaving       PrincipleID = "interleaving"
	PrincipleDualCoding         PrincipleID = "dualCoding"
	PrincipleGenerativeLearning PrincipleID = "generativeLearning"
	PrincipleMetacognition      PrincipleID = "metacognition"
	PrincipleSchemaBuilding     PrincipleID = "schemaBuilding"
	PrincipleCognitiveLoad      PrincipleID = "cognitiveLoad"
	PrincipleEmotionalRelevance PrincipleID = "emotionalRelevance"
)

// PrincipleOrder is the stable ordering of evaluations in every analysis.
var PrincipleOrder = []PrincipleID{
	PrincipleDeepProcessing,
	PrincipleSpacedRepetition,
	PrincipleRetrievalPractice,
	PrincipleInterleaving,
	PrincipleDualCoding,
	PrincipleGenerativeLearning,
	PrincipleMetacognition,
	PrincipleSchemaBuilding,
	PrincipleCognitiveLoad,
	PrincipleEmotionalRelevance,
}

var principleNames = map[PrincipleID]string{
	PrincipleDeepProcessing:     "Deep Processing",
	PrincipleSpacedRepetition:   "Spaced Repetition",
	PrincipleRetrievalPractice:  "Retrieval Practice",
	PrincipleInterleaving:       "Interleaving",
	PrincipleDualCoding:         "Dual Coding",
	PrincipleGenerativeLearning: "Generative Learning",
	PrincipleMetacognition:      "Metacognition",
	PrincipleSchemaBuilding:     "Schema Building",
	PrincipleCognitiveLoad:      "Cognitive Load",
	PrincipleEmotionalRelevance: "Emotional Relevance",
}

// DefaultWeights are used when configuration does not override a principle.
var DefaultWeights = map[PrincipleID]float64{
	PrincipleDeepProcessing:     1.2,
	PrincipleSpacedRepetition:   1.0,
	PrincipleRetrievalPractice:  1.2,
	PrincipleInterleaving:       0.8,
	PrincipleDualCoding:         0.8,
	PrincipleGenerativeLearning: 1.0,
	PrincipleMetacognition:      0.8,
	PrincipleSchemaBuilding:     1.0,
	PrincipleCognitiveLoad:      1.0,
	PrincipleEmotionalRelevance: 0.6,
}

func (p PrincipleID) Name() string {
	if n, ok := principleNames[p]; ok {
		return n
	}
	return string(p)
}

func (p PrincipleID) Valid() bool {
	_, ok := principleNames[p]
	return ok
}

// OrderIndex returns the position of p in PrincipleOrder, or len(PrincipleOrder).
func (p PrincipleID) OrderIndex() int {
	for i, id := range PrincipleOrder {
		if id == p {
			return i
		}
	}
	return len(PrincipleOrder)
}
