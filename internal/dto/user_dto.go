package dto

import (
	"time"

	"github.com/codegrader/codegrader-api/internal/models"
)

// RegisterRequest is the payload for public self-registration. Any role field
// in the request body is ignored; registration always yields a student.
type RegisterRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=6"`
	Name         string  `json:"name" validate:"omitempty,max=255"`
	MatricNumber *string `json:"matric_number" validate:"omitempty,max=64"`
}

// UserCreateRequest is the payload for admin-initiated account creation.
type UserCreateRequest struct {
	Email        string      `json:"email" validate:"required,email"`
	Password     string      `json:"password" validate:"required,min=6"`
	Name         string      `json:"name" validate:"omitempty,max=255"`
	MatricNumber *string     `json:"matric_number" validate:"omitempty,max=64"`
	Role         models.Role `json:"role" validate:"required,oneof=admin teacher student"`
}

// UserResponse is the serialized account representation. The password hash is
// never included.
type UserResponse struct {
	ID           uint        `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name,omitempty"`
	MatricNumber *string     `json:"matric_number,omitempty"`
	Role         models.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:           model.ID,
		Email:        model.Email,
		Name:         model.Name,
		MatricNumber: model.MatricNumber,
		Role:         model.Role,
		CreatedAt:    model.CreatedAt,
	}
}
