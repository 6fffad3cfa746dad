package model

import (
	"time"

	"github.com/google/uuid"
)

// Location is one of a practitioner's practice addresses
type Location struct {
	ID             uuid.UUID `json:"id" db:"id"`
	PractitionerID uuid.UUID `json:"practitioner_id" db:"practitioner_id"`
	Name           *string   `json:"name" db:"name"`
	Address        *string   `json:"address" db:"address"`
	Suburb         *string   `json:"suburb" db:"suburb"`
	State          string    `json:"state" db:"state"`
	Postcode       *string   `json:"postcode" db:"postcode"`
	Latitude       *float64  `json:"latitude" db:"latitude"`
	Longitude      *float64  `json:"longitude" db:"longitude"`
	IsPrimary      bool      `json:"is_primary" db:"is_primary"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// AddLocationRequest carries the location form
type AddLocationRequest struct {
	Name      string   `json:"name" form:"name"`
	Address   string   `json:"address" form:"address"`
	Suburb    string   `json:"suburb" form:"suburb"`
	State     string   `json:"state" form:"state" binding:"required,austate"`
	Postcode  string   `json:"postcode" form:"postcode" binding:"omitempty,numeric,len=4"`
	IsPrimary Checkbox `json:"isPrimary" form:"isPrimary"`
}
