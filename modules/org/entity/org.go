package entity

import (
	"trainhub-api/core/entity"

	"github.com/google/uuid"
)

type City struct {
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
	entity.BaseEntity
}

type Association struct {
	Name        string     `db:"name"`
	Slug        string     `db:"slug"`
	Address     *string    `db:"address"`
	CityID      *uuid.UUID `db:"city_id"`
	PhoneNumber *string    `db:"phone_number"`
	Email       *string    `db:"email"`
	IsActive    bool       `db:"is_active"`
	entity.BaseEntity
}

type Center struct {
	AssociationID uuid.UUID  `db:"association_id"`
	CityID        *uuid.UUID `db:"city_id"`
	Name          string     `db:"name"`
	Slug          string     `db:"slug"`
	Address       *string    `db:"address"`
	PhoneNumber   *string    `db:"phone_number"`
	Email         *string    `db:"email"`
	IsActive      bool       `db:"is_active"`
	entity.BaseEntity
}

type Room struct {
	CenterID uuid.UUID `db:"center_id"`
	Name     string    `db:"name"`
	Capacity int       `db:"capacity"`
	IsActive bool      `db:"is_active"`
	entity.BaseEntity
}

type Material struct {
	CenterID  uuid.UUID  `db:"center_id"`
	RoomID    *uuid.UUID `db:"room_id"`
	Name      string     `db:"name"`
	Quantity  int        `db:"quantity"`
	Condition string     `db:"condition"`
	entity.BaseEntity
}

type Training struct {
	Name        string  `db:"name"`
	Description *string `db:"description"`
	IsActive    bool    `db:"is_active"`
	entity.BaseEntity
}

type TrainingGroup struct {
	CenterID   uuid.UUID `db:"center_id"`
	TrainingID uuid.UUID `db:"training_id"`
	Name       string    `db:"name"`
	Capacity   int       `db:"capacity"`
	IsActive   bool      `db:"is_active"`
	entity.BaseEntity
}

// Filter narrows org listings. Fields that do not apply to a listing are
// ignored by it.
type Filter struct {
	CityID        *uuid.UUID
	AssociationID *uuid.UUID
	CenterID      *uuid.UUID
	RoomID        *uuid.UUID
	TrainingID    *uuid.UUID
	Search        string
}

type (
	PaginatedCities       = entity.Pagination[City]
	PaginatedAssociations = entity.Pagination[Association]
	PaginatedCenters      = entity.Pagination[Center]
	PaginatedRooms        = entity.Pagination[Room]
	PaginatedMaterials    = entity.Pagination[Material]
	PaginatedTrainings    = entity.Pagination[Training]
	PaginatedGroups       = entity.Pagination[TrainingGroup]
)
