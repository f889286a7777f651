package dto

import (
	"time"

	"github.com/google/uuid"

	"okr_backend/internals/features/org/users/model"
)

type RegisterRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateUserRequest struct {
	UserName     string     `json:"user_name" validate:"required,min=3,max=50"`
	Email        string     `json:"email" validate:"required,email"`
	Password     string     `json:"password" validate:"required,min=8"`
	Role         string     `json:"role,omitempty"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	OrganizeID   *uuid.UUID `json:"organize_id,omitempty"`
}

type UpdateUserRequest struct {
	UserName     *string    `json:"user_name,omitempty"`
	FirstName    *string    `json:"first_name,omitempty"`
	LastName     *string    `json:"last_name,omitempty"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	OrganizeID   *uuid.UUID `json:"organize_id,omitempty"`
	Role         *string    `json:"role,omitempty"`
}

func (r UpdateUserRequest) IsEmpty() bool {
	return r.UserName == nil && r.FirstName == nil && r.LastName == nil &&
		r.DepartmentID == nil && r.OrganizeID == nil && r.Role == nil
}

type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	UserName     string     `json:"user_name"`
	FirstName    *string    `json:"first_name,omitempty"`
	LastName     *string    `json:"last_name,omitempty"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	OrganizeID   *uuid.UUID `json:"organize_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type TokenPairResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

func ToUserResponse(u model.UserModel) UserResponse {
	return UserResponse{
		ID:           u.ID,
		UserName:     u.UserName,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
		OrganizeID:   u.OrganizeID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func ToUserResponses(users []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
