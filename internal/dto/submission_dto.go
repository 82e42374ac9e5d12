package dto

import (
	"time"

	"github.com/codegrader/codegrader-api/internal/models"
)

// SubmissionResponse combines a stored submission with denormalized student
// identity fields from the owning user record.
type SubmissionResponse struct {
	ID               uint      `json:"id"`
	AssignmentID     uint      `json:"assignment_id"`
	UserID           uint      `json:"user_id"`
	StudentName      string    `json:"student_name,omitempty"`
	MatricNumber     *string   `json:"matric_number,omitempty"`
	Score            int       `json:"score"`
	Feedback         string    `json:"feedback"`
	Strengths        []string  `json:"strengths"`
	Weakpoints       []string  `json:"weakpoints"`
	CheatingDetected bool      `json:"cheating_detected"`
	CheatingReason   string    `json:"cheating_reason,omitempty"`
	Reasoning        string    `json:"reasoning,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewSubmissionResponse converts a model into a DTO, denormalizing the student
// identity from the preloaded user.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	strengths := []string(model.Strengths)
	if strengths == nil {
		strengths = []string{}
	}
	weakpoints := []string(model.Weakpoints)
	if weakpoints == nil {
		weakpoints = []string{}
	}

	return SubmissionResponse{
		ID:               model.ID,
		AssignmentID:     model.AssignmentID,
		UserID:           model.UserID,
		StudentName:      model.User.Name,
		MatricNumber:     model.User.MatricNumber,
		Score:            model.Score,
		Feedback:         model.Feedback,
		Strengths:        strengths,
		Weakpoints:       weakpoints,
		CheatingDetected: model.CheatingDetected,
		CheatingReason:   model.CheatingReason,
		Reasoning:        model.Reasoning,
		CreatedAt:        model.CreatedAt,
	}
}

// NewSubmissionResponseSlice converts a slice of models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
