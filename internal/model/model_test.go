package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckboxParam(t *testing.T) {
	for in, want := range map[string]bool{"on": true, "true": true, "1": true, "ON": true, "": false, "off": false, "0": false} {
		var c Checkbox
		require.NoError(t, c.UnmarshalParam(in))
		assert.Equal(t, want, c.Bool(), in)
	}
}

func TestCheckboxJSON(t *testing.T) {
	var req AvailabilityRequest
	require.NoError(t, json.Unmarshal([]byte(`{"acceptingPatients":"on","waitlistWeeks":"4"}`), &req))
	assert.True(t, req.AcceptingPatients.Bool())

	require.NoError(t, json.Unmarshal([]byte(`{"acceptingPatients":false}`), &req))
	assert.False(t, req.AcceptingPatients.Bool())

	var c Checkbox
	assert.Error(t, json.Unmarshal([]byte(`{}`), &c))
}

func TestIsPIProvider(t *testing.T) {
	assert.True(t, IsPIProvider("Psychedelic Institute Australia"))
	assert.True(t, IsPIProvider("the PSYCHEDELIC INSTITUTE"))
	assert.False(t, IsPIProvider("Mind Medicine Australia"))
}

func TestNullString(t *testing.T) {
	assert.Nil(t, NullString("   "))
	require.NotNil(t, NullString(" Sydney "))
	assert.Equal(t, "Sydney", *NullString(" Sydney "))
}

func strPtr(s string) *string { return &s }

func TestNewCompletion(t *testing.T) {
	p := &PractitionerDetails{}
	p.FirstName = "John"
	p.LastName = "Smith"
	p.AHPRANumber = "MED0001234567"

	c := NewCompletion(p)
	assert.Equal(t, 1, c.CompletedCount)
	assert.Equal(t, 17, c.Percentage)
	assert.False(t, c.ReadyForSubmission)

	p.Bio = strPtr(strings.Repeat("x", 51))
	p.APConditions = []string{"TRD"}
	p.Locations = []*Location{{State: "NSW"}}
	p.TrainingRecords = []*TrainingRecord{{Provider: "PIA"}}

	c = NewCompletion(p)
	assert.Equal(t, 5, c.CompletedCount)
	assert.Equal(t, 83, c.Percentage)
	assert.True(t, c.ReadyForSubmission)

	p.ReferralEmail = strPtr("refer@clinic.example")
	assert.Equal(t, 100, NewCompletion(p).Percentage)
}

func TestCompletionBioBoundary(t *testing.T) {
	p := &PractitionerDetails{}
	p.Bio = strPtr(strings.Repeat("x", 50))
	assert.False(t, NewCompletion(p).Steps[1].Complete)
}
