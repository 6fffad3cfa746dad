package model

import "math"

// ReadyForSubmissionPercent is the completion at which a profile may be submitted.
const ReadyForSubmissionPercent = 80

// CompletionStep is one item of the dashboard checklist
type CompletionStep struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Complete bool   `json:"complete"`
	Href     string `json:"href"`
}

// Completion summarises how far a profile is from submission
type Completion struct {
	Steps              []CompletionStep `json:"steps"`
	CompletedCount     int              `json:"completed_count"`
	Percentage         int              `json:"percentage"`
	ReadyForSubmission bool             `json:"ready_for_submission"`
}

// Dashboard is the practitioner's own view of their profile. Practitioner is
// nil until a profile has been created.
type Dashboard struct {
	Practitioner *PractitionerDetails `json:"practitioner"`
	Completion   *Completion          `json:"completion,omitempty"`
	Onboarding   bool                 `json:"onboarding"`
}

// NewCompletion scores a profile against the dashboard checklist.
func NewCompletion(p *PractitionerDetails) *Completion {
	hasReferral := (p.ReferralProcess != nil && *p.ReferralProcess != "") ||
		(p.ReferralEmail != nil && *p.ReferralEmail != "")

	steps := []CompletionStep{
		{Key: "basic", Label: "Basic information", Href: "/dashboard/profile",
			Complete: p.FirstName != "" && p.LastName != "" && p.AHPRANumber != ""},
		{Key: "bio", Label: "Professional bio", Href: "/dashboard/profile",
			Complete: p.Bio != nil && len([]rune(*p.Bio)) > 50},
		{Key: "conditions", Label: "Conditions treated", Href: "/dashboard/profile",
			Complete: len(p.APConditions) > 0},
		{Key: "locations", Label: "Practice location", Href: "/dashboard/locations",
			Complete: len(p.Locations) > 0},
		{Key: "training", Label: "Training credentials", Href: "/dashboard/training",
			Complete: len(p.TrainingRecords) > 0},
		{Key: "referral", Label: "Referral information", Href: "/dashboard/profile",
			Complete: hasReferral},
	}

	done := 0
	for _, s := range steps {
		if s.Complete {
			done++
		}
	}
	pct := int(math.Round(float64(done) / float64(len(steps)) * 100))

	return &Completion{
		Steps:              steps,
		CompletedCount:     done,
		Percentage:         pct,
		ReadyForSubmission: pct >= ReadyForSubmissionPercent,
	}
}

// AdminStats are the counters on the admin overview
type AdminStats struct {
	TotalPractitioners  int `json:"totalPractitioners"`
	ActivePractitioners int `json:"activePractitioners"`
	PendingVerification int `json:"pendingVerification"`
	PendingTraining     int `json:"pendingTraining"`
}

// SuspendRequest carries the optional rejection reason
type SuspendRequest struct {
	Reason string `json:"reason" form:"reason"`
}
