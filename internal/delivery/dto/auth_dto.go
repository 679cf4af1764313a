package dto

import (
	"time"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegisterUserRequest struct {
	Username      string `json:"username" validate:"required,min=3,max=150"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Role          string `json:"role" validate:"required,oneof=dispatch_personnel call_triage administrator"`
	Department    string `json:"department"`
	ContactNumber string `json:"contact_number"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID            uuid.UUID           `json:"id"`
	Username      string              `json:"username"`
	Email         string              `json:"email"`
	FirstName     string              `json:"first_name"`
	LastName      string              `json:"last_name"`
	FullName      string              `json:"full_name"`
	Role          string              `json:"role"`
	RoleDisplay   string              `json:"role_display"`
	Department    string              `json:"department,omitempty"`
	ContactNumber string              `json:"contact_number,omitempty"`
	IsSuperuser   bool                `json:"is_superuser"`
	Permissions   entity.Capabilities `json:"permissions"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}
