package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("apconnect", reg)

	m.ObserveSearch(3)
	m.ObserveDB("search", 0.01, nil)
	m.ObserveDB("search", 0.02, errors.New("boom"))
	m.VerificationActions.WithLabelValues("verify_practitioner").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("search", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VerificationActions.WithLabelValues("verify_practitioner")))

	count, err := testutil.GatherAndCount(reg, "apconnect_search_results")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNopDoesNotPanicOnReuse(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop()
		NewNop()
	})
}
