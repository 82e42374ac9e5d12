package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission records the AI verdict for one (assignment, user) pair. The
// composite unique index makes the one-submission-per-user rule a database
// guarantee rather than a check-then-insert.
type Submission struct {
	ID               uint                         `gorm:"primaryKey" json:"id"`
	AssignmentID     uint                         `gorm:"not null;uniqueIndex:idx_submissions_assignment_user" json:"assignment_id"`
	UserID           uint                         `gorm:"not null;uniqueIndex:idx_submissions_assignment_user" json:"user_id"`
	Score            int                          `gorm:"not null" json:"score"`
	Feedback         string                       `gorm:"type:text" json:"feedback"`
	Strengths        datatypes.JSONSlice[string]  `gorm:"type:json" json:"strengths"`
	Weakpoints       datatypes.JSONSlice[string]  `gorm:"type:json" json:"weakpoints"`
	CheatingDetected bool                         `gorm:"not null;default:false" json:"cheating_detected"`
	CheatingReason   string                       `gorm:"type:text" json:"cheating_reason,omitempty"`
	Reasoning        string                       `gorm:"type:text" json:"reasoning,omitempty"`
	CreatedAt        time.Time                    `json:"created_at"`
	Assignment       Assignment                   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User             User                         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
