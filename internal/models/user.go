package models

import "time"

// Role is the closed set of account roles recognised by the API.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// CanManageAssignments reports whether the role may create, update, or delete assignments.
func (r Role) CanManageAssignments() bool {
	return r == RoleAdmin || r == RoleTeacher
}

func (r Role) String() string {
	return string(r)
}

// User represents an account that can authenticate against the API.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:255" json:"name,omitempty"`
	MatricNumber *string   `gorm:"size:64;uniqueIndex" json:"matric_number,omitempty"`
	Role         Role      `gorm:"size:16;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
