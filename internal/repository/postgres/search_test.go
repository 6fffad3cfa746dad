package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apconnect/directory-api/internal/model"
)

func TestBuildSearchQueryNoFilters(t *testing.T) {
	query, args := buildSearchQuery(model.SearchFilters{State: "all", Condition: "all"})

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "FROM active_practitioners")
	assert.Contains(t, query, "ORDER BY accepting_patients DESC, last_name ASC")
	assert.Empty(t, args)
}

func TestBuildSearchQueryStateAndAccepting(t *testing.T) {
	query, args := buildSearchQuery(model.SearchFilters{State: "NSW", AcceptingOnly: true})

	assert.Contains(t, query, "state = $1")
	assert.Contains(t, query, "accepting_patients = TRUE")
	assert.NotContains(t, query, "telehealth = TRUE")
	assert.Equal(t, []interface{}{"NSW"}, args)
}

func TestBuildSearchQueryConditionUppercased(t *testing.T) {
	query, args := buildSearchQuery(model.SearchFilters{Condition: "ptsd", TelehealthOnly: true, PITrainedOnly: true})

	assert.Contains(t, query, "ap_conditions @> $1::text[]")
	assert.Contains(t, query, "telehealth = TRUE")
	assert.Contains(t, query, "pi_trained = TRUE")
	require.Len(t, args, 1)
	assert.Equal(t, pq.Array([]string{"PTSD"}), args[0])
}

func TestBuildSearchQueryEscapesFreeText(t *testing.T) {
	query, args := buildSearchQuery(model.SearchFilters{Query: " 100%_calm "})

	assert.Contains(t, query, "first_name ILIKE $1 OR last_name ILIKE $1 OR clinic_name ILIKE $1")
	assert.Equal(t, []interface{}{`%100\%\_calm%`}, args)
}

func TestSearchScansRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSearchRepository(NewBaseRepository(db))

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "slug", "first_name", "last_name", "state", "accepting_patients", "ap_conditions", "pi_trained"}).
		AddRow(id.String(), "jane-doe", "Jane", "Doe", "NSW", true, "{TRD,PTSD}", true)

	mock.ExpectQuery(regexp.QuoteMeta("FROM active_practitioners")).
		WithArgs("NSW").
		WillReturnRows(rows)

	got, err := repo.Search(context.Background(), model.SearchFilters{State: "NSW", AcceptingOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "NSW", *got[0].State)
	assert.Equal(t, []string{"TRD", "PTSD"}, []string(got[0].APConditions))
	assert.True(t, got[0].PITrained)
	assert.NoError(t, mock.ExpectationsWereMet())
}
