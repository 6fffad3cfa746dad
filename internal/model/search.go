package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SearchFilters narrows the public practitioner search. Empty fields do not filter.
type SearchFilters struct {
	State          string   `json:"state" form:"state"`
	Condition      string   `json:"condition" form:"condition"`
	AcceptingOnly  Checkbox `json:"accepting" form:"accepting"`
	TelehealthOnly Checkbox `json:"telehealth" form:"telehealth"`
	PITrainedOnly  Checkbox `json:"piTrained" form:"piTrained"`
	Query          string   `json:"q" form:"q"`
}

// ActivePractitioner is a row of the active_practitioners view
type ActivePractitioner struct {
	ID                uuid.UUID      `json:"id" db:"id"`
	Slug              string         `json:"slug" db:"slug"`
	Title             *string        `json:"title" db:"title"`
	FirstName         string         `json:"first_name" db:"first_name"`
	LastName          string         `json:"last_name" db:"last_name"`
	PhotoURL          *string        `json:"photo_url" db:"photo_url"`
	ClinicName        *string        `json:"clinic_name" db:"clinic_name"`
	APConditions      pq.StringArray `json:"ap_conditions" db:"ap_conditions"`
	AcceptingPatients bool           `json:"accepting_patients" db:"accepting_patients"`
	WaitlistWeeks     *int           `json:"waitlist_weeks" db:"waitlist_weeks"`
	Telehealth        bool           `json:"telehealth" db:"telehealth"`
	FundingMedicare   bool           `json:"funding_medicare" db:"funding_medicare"`
	FundingDVA        bool           `json:"funding_dva" db:"funding_dva"`
	FundingNDIS       bool           `json:"funding_ndis" db:"funding_ndis"`
	FundingPrivate    bool           `json:"funding_private" db:"funding_private"`
	State             *string        `json:"state" db:"state"`
	Suburb            *string        `json:"suburb" db:"suburb"`
	Postcode          *string        `json:"postcode" db:"postcode"`
	TrainingProviders pq.StringArray `json:"training_providers" db:"training_providers"`
	PITrained         bool           `json:"pi_trained" db:"pi_trained"`
}
