package model

import (
	"time"

	"github.com/google/uuid"
)

// Token purposes stored in user_tokens
const (
	TokenPurposeEmailVerification = "email_verification"
	TokenPurposePasswordReset     = "password_reset"
)

// DefaultLoginRedirect is where a successful login lands when no redirect was given.
const DefaultLoginRedirect = "/dashboard"

// SignUpRequest creates a practitioner account
type SignUpRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

// LoginRequest signs a user in
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
	Redirect string `json:"redirect" form:"redirect"`
}

// ResetPasswordRequest asks for a password reset email
type ResetPasswordRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}

// ConfirmResetRequest sets a new password using a reset token
type ConfirmResetRequest struct {
	Token    string `json:"token" form:"token" binding:"required"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

// UpdatePasswordRequest changes the signed-in user's password
type UpdatePasswordRequest struct {
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

// Session is the result of a successful sign in
type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
	Redirect    string    `json:"redirect,omitempty"`
}

// UserToken is a single-use token for email verification or password reset
type UserToken struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash string     `json:"-" db:"token_hash"`
	Purpose   string     `json:"purpose" db:"purpose"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	UsedAt    *time.Time `json:"used_at" db:"used_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// Usable reports whether the token can still be consumed at now.
func (t *UserToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
