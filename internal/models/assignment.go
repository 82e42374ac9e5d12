package models

import "time"

// Assignment represents a gradable coding task. Criteria is the free-text
// rubric forwarded verbatim to the AI scorer.
type Assignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Criteria    string    `gorm:"type:text;not null" json:"criteria"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Submissions []Submission
}
