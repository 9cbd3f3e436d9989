package dto

import (
	"time"
	"trainhub-api/core/dto"

	"github.com/google/uuid"
)

type CityRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=255"`
	IsActive *bool  `json:"is_active"`
}

type CityResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AssociationRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=255"`
	Address     string `json:"address" validate:"max=255"`
	CityID      string `json:"city_id" validate:"omitempty,uuid"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
	IsActive    *bool  `json:"is_active"`
}

type AssociationResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Address     *string    `json:"address"`
	CityID      *uuid.UUID `json:"city_id"`
	PhoneNumber *string    `json:"phone_number"`
	Email       *string    `json:"email"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CenterRequest struct {
	AssociationID string `json:"association_id" validate:"required,uuid"`
	CityID        string `json:"city_id" validate:"omitempty,uuid"`
	Name          string `json:"name" validate:"required,notblank,max=255"`
	Address       string `json:"address" validate:"max=255"`
	PhoneNumber   string `json:"phone_number" validate:"omitempty,max=20"`
	Email         string `json:"email" validate:"omitempty,email"`
	IsActive      *bool  `json:"is_active"`
}

type CenterResponse struct {
	ID            uuid.UUID  `json:"id"`
	AssociationID uuid.UUID  `json:"association_id"`
	CityID        *uuid.UUID `json:"city_id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Address       *string    `json:"address"`
	PhoneNumber   *string    `json:"phone_number"`
	Email         *string    `json:"email"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type RoomRequest struct {
	CenterID string `json:"center_id" validate:"required,uuid"`
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Capacity int    `json:"capacity" validate:"gte=0"`
	IsActive *bool  `json:"is_active"`
}

type RoomResponse struct {
	ID        uuid.UUID `json:"id"`
	CenterID  uuid.UUID `json:"center_id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MaterialRequest struct {
	CenterID  string `json:"center_id" validate:"required,uuid"`
	RoomID    string `json:"room_id" validate:"omitempty,uuid"`
	Name      string `json:"name" validate:"required,notblank,max=255"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
	Condition string `json:"condition" validate:"omitempty,oneof=new good worn damaged"`
}

type MaterialResponse struct {
	ID        uuid.UUID  `json:"id"`
	CenterID  uuid.UUID  `json:"center_id"`
	RoomID    *uuid.UUID `json:"room_id"`
	Name      string     `json:"name"`
	Quantity  int        `json:"quantity"`
	Condition string     `json:"condition"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type TrainingRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=255"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type TrainingResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type GroupRequest struct {
	CenterID   string `json:"center_id" validate:"required,uuid"`
	TrainingID string `json:"training_id" validate:"required,uuid"`
	Name       string `json:"name" validate:"required,notblank,max=100"`
	Capacity   int    `json:"capacity" validate:"gte=0"`
	IsActive   *bool  `json:"is_active"`
}

type GroupResponse struct {
	ID         uuid.UUID `json:"id"`
	CenterID   uuid.UUID `json:"center_id"`
	TrainingID uuid.UUID `json:"training_id"`
	Name       string    `json:"name"`
	Capacity   int       `json:"capacity"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OrgListQuery is bound from the query string of the org listings.
type OrgListQuery struct {
	CityID        string `query:"city_id" validate:"omitempty,uuid"`
	AssociationID string `query:"association_id" validate:"omitempty,uuid"`
	CenterID      string `query:"center_id" validate:"omitempty,uuid"`
	RoomID        string `query:"room_id" validate:"omitempty,uuid"`
	TrainingID    string `query:"training_id" validate:"omitempty,uuid"`
}

type (
	PaginatedCityResponse        = dto.Pagination[CityResponse]
	PaginatedAssociationResponse = dto.Pagination[AssociationResponse]
	PaginatedCenterResponse      = dto.Pagination[CenterResponse]
	PaginatedRoomResponse        = dto.Pagination[RoomResponse]
	PaginatedMaterialResponse    = dto.Pagination[MaterialResponse]
	PaginatedTrainingResponse    = dto.Pagination[TrainingResponse]
	PaginatedGroupResponse       = dto.Pagination[GroupResponse]
)
