package ai

import "context"

// ScoreInput contains the artefacts needed to grade a code submission.
type ScoreInput struct {
	Code     string
	Criteria string
}

// ScoreResult is the structured verdict returned by the AI scorer. Optional
// fields default to their zero values when the model omits them.
type ScoreResult struct {
	Score            int      `json:"score"`
	Feedback         string   `json:"feedback"`
	Strengths        []string `json:"strengths"`
	Weakpoints       []string `json:"weakpoints"`
	CheatingDetected bool     `json:"cheating_detected"`
	CheatingReason   string   `json:"cheating_reason,omitempty"`
	Reasoning        string   `json:"reasoning,omitempty"`
}

// Scorer describes an AI model capable of grading code submissions against a
// free-text rubric.
type Scorer interface {
	Score(ctx context.Context, input ScoreInput) (ScoreResult, error)
}
