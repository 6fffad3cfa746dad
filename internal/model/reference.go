package model

// Condition is a treatable condition practitioners can list
type Condition struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Description  *string `json:"description" db:"description"`
	DisplayOrder int     `json:"display_order" db:"display_order"`
}

// State is an Australian state or territory
type State struct {
	Code         string `json:"code" db:"code"`
	Name         string `json:"name" db:"name"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
}

// StateCodes lists the valid location state codes.
var StateCodes = []string{"NSW", "VIC", "QLD", "WA", "SA", "TAS", "ACT", "NT"}

// IsStateCode reports whether code is a known state or territory.
func IsStateCode(code string) bool {
	for _, c := range StateCodes {
		if c == code {
			return true
		}
	}
	return false
}
