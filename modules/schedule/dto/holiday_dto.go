package dto

import (
	"time"

	"github.com/google/uuid"
)

type HolidayRequest struct {
	CenterID    uuid.UUID `json:"center_id" validate:"required"`
	Name        string    `json:"name" validate:"required,notblank,max=255"`
	Description *string   `json:"description"`
	StartDate   string    `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string    `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsRecurring bool      `json:"is_recurring"`
}

type HolidayResponse struct {
	ID          uuid.UUID `json:"id"`
	CenterID    uuid.UUID `json:"center_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	IsRecurring bool      `json:"is_recurring"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
