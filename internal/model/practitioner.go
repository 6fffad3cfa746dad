package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Profile status constants
const (
	ProfileStatusDraft     = "draft"
	ProfileStatusActive    = "active"
	ProfileStatusSuspended = "suspended"
)

// AP status constants
const (
	APStatusPending  = "pending"
	APStatusVerified = "verified"
	APStatusInactive = "inactive"
)

// Practitioner is a practitioner's directory profile. One per user.
type Practitioner struct {
	Timestamps
	UserID         uuid.UUID      `json:"user_id" db:"user_id"`
	Slug           string         `json:"slug" db:"slug"`
	Title          *string        `json:"title" db:"title"`
	FirstName      string         `json:"first_name" db:"first_name"`
	LastName       string         `json:"last_name" db:"last_name"`
	PhotoURL       *string        `json:"photo_url" db:"photo_url"`
	Bio            *string        `json:"bio" db:"bio"`
	AHPRANumber    string         `json:"ahpra_number" db:"ahpra_number"`
	Qualifications pq.StringArray `json:"qualifications" db:"qualifications"`

	APStatus     string         `json:"ap_status" db:"ap_status"`
	APTGANumber  *string        `json:"ap_tga_number" db:"ap_tga_number"`
	APVerifiedAt *time.Time     `json:"ap_verified_at" db:"ap_verified_at"`
	APConditions pq.StringArray `json:"ap_conditions" db:"ap_conditions"`
	APSubstances pq.StringArray `json:"ap_substances" db:"ap_substances"`

	ClinicName   *string `json:"clinic_name" db:"clinic_name"`
	Website      *string `json:"website" db:"website"`
	ContactEmail *string `json:"contact_email" db:"contact_email"`
	ContactPhone *string `json:"contact_phone" db:"contact_phone"`

	AcceptingPatients bool `json:"accepting_patients" db:"accepting_patients"`
	WaitlistWeeks     *int `json:"waitlist_weeks" db:"waitlist_weeks"`
	Telehealth        bool `json:"telehealth" db:"telehealth"`

	FundingMedicare  bool `json:"funding_medicare" db:"funding_medicare"`
	FundingDVA       bool `json:"funding_dva" db:"funding_dva"`
	FundingNDIS      bool `json:"funding_ndis" db:"funding_ndis"`
	FundingPrivate   bool `json:"funding_private" db:"funding_private"`
	FundingWorkcover bool `json:"funding_workcover" db:"funding_workcover"`

	ReferralProcess *string `json:"referral_process" db:"referral_process"`
	ReferralFormURL *string `json:"referral_form_url" db:"referral_form_url"`
	ReferralEmail   *string `json:"referral_email" db:"referral_email"`
	ReferralPhone   *string `json:"referral_phone" db:"referral_phone"`

	ProfileStatus       string `json:"profile_status" db:"profile_status"`
	ProfileCompleteness int    `json:"profile_completeness" db:"profile_completeness"`
}

// PractitionerDetails is a practitioner with its locations and training records
type PractitionerDetails struct {
	Practitioner
	Locations       []*Location       `json:"locations"`
	TrainingRecords []*TrainingRecord `json:"training_records"`
}

// PendingPractitioner is a profile awaiting admin review
type PendingPractitioner struct {
	Practitioner
	User            UserSummary       `json:"user" db:"user"`
	TrainingRecords []*TrainingRecord `json:"training_records"`
	Locations       []*Location       `json:"locations"`
}

// AdminPractitioner is a row of the admin practitioner list
type AdminPractitioner struct {
	Practitioner
	User      UserSummary `json:"user" db:"user"`
	Locations []*Location `json:"locations"`
}

// CreateProfileRequest starts a practitioner profile
type CreateProfileRequest struct {
	FirstName   string `json:"firstName" form:"firstName" binding:"required"`
	LastName    string `json:"lastName" form:"lastName" binding:"required"`
	AHPRANumber string `json:"ahpraNumber" form:"ahpraNumber" binding:"required,ahpra"`
	Title       string `json:"title" form:"title"`
}

// UpdateProfileRequest carries the profile form
type UpdateProfileRequest struct {
	Title            string   `json:"title" form:"title"`
	FirstName        string   `json:"firstName" form:"firstName"`
	LastName         string   `json:"lastName" form:"lastName"`
	Bio              string   `json:"bio" form:"bio"`
	AHPRANumber      string   `json:"ahpraNumber" form:"ahpraNumber" binding:"omitempty,ahpra"`
	Qualifications   string   `json:"qualifications" form:"qualifications"`
	ClinicName       string   `json:"clinicName" form:"clinicName"`
	Website          string   `json:"website" form:"website" binding:"omitempty,url"`
	ContactEmail     string   `json:"contactEmail" form:"contactEmail" binding:"omitempty,email"`
	ContactPhone     string   `json:"contactPhone" form:"contactPhone"`
	Conditions       []string `json:"conditions" form:"conditions"`
	Telehealth       Checkbox `json:"telehealth" form:"telehealth"`
	FundingMedicare  Checkbox `json:"fundingMedicare" form:"fundingMedicare"`
	FundingDVA       Checkbox `json:"fundingDva" form:"fundingDva"`
	FundingNDIS      Checkbox `json:"fundingNdis" form:"fundingNdis"`
	FundingPrivate   Checkbox `json:"fundingPrivate" form:"fundingPrivate"`
	FundingWorkcover Checkbox `json:"fundingWorkcover" form:"fundingWorkcover"`
	ReferralProcess  string   `json:"referralProcess" form:"referralProcess"`
	ReferralEmail    string   `json:"referralEmail" form:"referralEmail" binding:"omitempty,email"`
	ReferralPhone    string   `json:"referralPhone" form:"referralPhone"`
}

// AvailabilityRequest carries the availability form. WaitlistWeeks stays a
// string so that a blank field can be told apart from zero.
type AvailabilityRequest struct {
	AcceptingPatients Checkbox `json:"acceptingPatients" form:"acceptingPatients"`
	WaitlistWeeks     string   `json:"waitlistWeeks" form:"waitlistWeeks"`
}

// StatusChange is a lifecycle transition written by submit, verify and suspend.
// VerifiedAt is written only when set.
type StatusChange struct {
	ProfileStatus string
	APStatus      string
	VerifiedAt    *time.Time
}
