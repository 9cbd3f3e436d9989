package dto

import (
	"time"
	"trainhub-api/core/dto"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,notblank"`
	Password   string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest optionally carries the refresh token so it is revoked along
// with the access token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type CreateUserRequest struct {
	Email         string `json:"email" validate:"required,email"`
	PhoneNumber   string `json:"phone_number" validate:"omitempty,max=20"`
	Password      string `json:"password" validate:"required,min=8,max=72"`
	FirstName     string `json:"first_name" validate:"required,notblank,max=100"`
	LastName      string `json:"last_name" validate:"max=100"`
	Role          string `json:"role" validate:"required,role"`
	AssociationID string `json:"association_id" validate:"omitempty,uuid"`
	CenterID      string `json:"center_id" validate:"omitempty,uuid"`
	GroupID       string `json:"group_id" validate:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	PhoneNumber   string `json:"phone_number" validate:"omitempty,max=20"`
	Password      string `json:"password" validate:"omitempty,min=8,max=72"`
	FirstName     string `json:"first_name" validate:"required,notblank,max=100"`
	LastName      string `json:"last_name" validate:"max=100"`
	Role          string `json:"role" validate:"required,role"`
	AssociationID string `json:"association_id" validate:"omitempty,uuid"`
	CenterID      string `json:"center_id" validate:"omitempty,uuid"`
	GroupID       string `json:"group_id" validate:"omitempty,uuid"`
	IsActive      *bool  `json:"is_active"`
}

type UserListQuery struct {
	Role          string `query:"role" validate:"omitempty,role"`
	CenterID      string `query:"center_id" validate:"omitempty,uuid"`
	AssociationID string `query:"association_id" validate:"omitempty,uuid"`
	GroupID       string `query:"group_id" validate:"omitempty,uuid"`
}

type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	PhoneNumber   *string    `json:"phone_number"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Role          string     `json:"role"`
	AssociationID *uuid.UUID `json:"association_id"`
	CenterID      *uuid.UUID `json:"center_id"`
	GroupID       *uuid.UUID `json:"group_id"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type PaginatedUserResponse = dto.Pagination[UserResponse]
