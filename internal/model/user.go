package model

import (
	"time"

	"github.com/google/uuid"
)

// User role constants
const (
	RolePractitioner = "practitioner"
	RoleAdmin        = "admin"
	RoleReferrer     = "referrer"
)

// User is an identity record. Roles drive access to the dashboard and admin console.
type User struct {
	Timestamps
	Email           string     `json:"email" db:"email"`
	PasswordHash    string     `json:"-" db:"password_hash"`
	EmailVerified   bool       `json:"email_verified" db:"email_verified"`
	Role            string     `json:"role" db:"role"`
	AHPRANumber     *string    `json:"ahpra_number" db:"ahpra_number"`
	AHPRAVerified   bool       `json:"ahpra_verified" db:"ahpra_verified"`
	AHPRAVerifiedAt *time.Time `json:"ahpra_verified_at" db:"ahpra_verified_at"`
	LastLoginAt     *time.Time `json:"last_login_at" db:"last_login_at"`
}

// UserSummary is the subset of user fields shown next to a practitioner in admin lists
type UserSummary struct {
	ID            uuid.UUID `json:"id,omitempty" db:"id"`
	Email         string    `json:"email" db:"email"`
	Role          string    `json:"role" db:"role"`
	EmailVerified bool      `json:"email_verified" db:"email_verified"`
}
