package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PIProviderMarker identifies records from the Psychedelic Institute by provider name.
const PIProviderMarker = "psychedelic institute"

// TrainingRecord is a training credential claimed by a practitioner
type TrainingRecord struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	PractitionerID uuid.UUID  `json:"practitioner_id" db:"practitioner_id"`
	Provider       string     `json:"provider" db:"provider"`
	Program        string     `json:"program" db:"program"`
	CompletedAt    *time.Time `json:"completed_at" db:"completed_at"`
	CertificateID  *string    `json:"certificate_id" db:"certificate_id"`
	Verified       bool       `json:"verified" db:"verified"`
	VerifiedAt     *time.Time `json:"verified_at" db:"verified_at"`
	VerifiedBy     *uuid.UUID `json:"verified_by" db:"verified_by"`
	IsPIGraduate   bool       `json:"is_pi_graduate" db:"is_pi_graduate"`
	PIStudentID    *string    `json:"pi_student_id" db:"pi_student_id"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// IsPIProvider reports whether a provider name belongs to the Psychedelic Institute.
func IsPIProvider(provider string) bool {
	return strings.Contains(strings.ToLower(provider), PIProviderMarker)
}

// PendingTraining is an unverified training record with its owner's name
type PendingTraining struct {
	TrainingRecord
	Practitioner struct {
		Title     *string `json:"title" db:"title"`
		FirstName string  `json:"first_name" db:"first_name"`
		LastName  string  `json:"last_name" db:"last_name"`
		Email     string  `json:"email" db:"email"`
	} `json:"practitioner" db:"practitioner"`
}

// AddTrainingRequest carries the training form. CompletedAt is a date (YYYY-MM-DD) or blank.
type AddTrainingRequest struct {
	Provider      string `json:"provider" form:"provider" binding:"required"`
	Program       string `json:"program" form:"program" binding:"required"`
	CompletedAt   string `json:"completedAt" form:"completedAt" binding:"omitempty,datetime=2006-01-02"`
	CertificateID string `json:"certificateId" form:"certificateId"`
}
