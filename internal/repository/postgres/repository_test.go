package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "postgres"), mock
}

func TestCountSlugPrefix(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPractitionerRepository(NewBaseRepository(db))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM practitioners WHERE slug LIKE $1")).
		WithArgs("john-smith%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n, err := repo.CountSlugPrefix(context.Background(), "john-smith")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetListedBySlugNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPractitionerRepository(NewBaseRepository(db))

	mock.ExpectQuery(regexp.QuoteMeta("WHERE slug = $1 AND profile_status = $2 AND ap_status = $3")).
		WithArgs("jane-doe", model.ProfileStatusActive, model.APStatusVerified).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetListedBySlug(context.Background(), "jane-doe")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAvailabilityStoresNullWaitlist(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPractitionerRepository(NewBaseRepository(db))
	userID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE practitioners SET accepting_patients = $1, waitlist_weeks = $2 WHERE user_id = $3")).
		WithArgs(false, nil, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateAvailability(context.Background(), userID, false, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusWithVerifiedAt(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPractitionerRepository(NewBaseRepository(db))
	id := uuid.New()
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE practitioners SET profile_status = $1, ap_status = $2, ap_verified_at = $3 WHERE id = $4")).
		WithArgs(model.ProfileStatusActive, model.APStatusVerified, now, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetStatus(context.Background(), id, model.StatusChange{
		ProfileStatus: model.ProfileStatusActive,
		APStatus:      model.APStatusVerified,
		VerifiedAt:    &now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPractitionerRepository(NewBaseRepository(db))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE practitioners SET profile_status = $1, ap_status = $2 WHERE id = $3")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetStatus(context.Background(), uuid.New(), model.StatusChange{
		ProfileStatus: model.ProfileStatusSuspended,
		APStatus:      model.APStatusInactive,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddPrimaryLocationDemotesOthersInTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepository(NewBaseRepository(db))
	practitionerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE practitioner_locations SET is_primary = FALSE WHERE practitioner_id = $1")).
		WithArgs(practitionerID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO practitioner_locations")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	loc := &model.Location{PractitionerID: practitionerID, State: "NSW", IsPrimary: true}
	require.NoError(t, repo.Add(context.Background(), loc))
	assert.NotEqual(t, uuid.Nil, loc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddSecondaryLocationSkipsDemotion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepository(NewBaseRepository(db))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO practitioner_locations")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Add(context.Background(), &model.Location{PractitionerID: uuid.New(), State: "VIC"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLocationRollsBackOnInsertError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepository(NewBaseRepository(db))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE practitioner_locations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO practitioner_locations").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.Add(context.Background(), &model.Location{PractitionerID: uuid.New(), State: "QLD", IsPrimary: true})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLocationScopedToPractitioner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepository(NewBaseRepository(db))
	id, owner := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM practitioner_locations WHERE id = $1 AND practitioner_id = $2")).
		WithArgs(id, owner).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id, owner), repository.ErrNotFound)
}

func TestVerifyTrainingRecord(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTrainingRepository(NewBaseRepository(db))
	id, admin := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE training_records SET verified = TRUE, verified_at = $1, verified_by = $2 WHERE id = $3")).
		WithArgs(sqlmock.AnyArg(), admin, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Verify(context.Background(), id, admin, time.Now()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(NewBaseRepository(db))

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})

	err := repo.Create(context.Background(), &model.User{Email: "a@b.co", PasswordHash: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCountPractitioners(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepository(NewBaseRepository(db))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM practitioners")).
		WithArgs(model.ProfileStatusActive, model.APStatusVerified).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountPractitioners(context.Background(), model.ProfileStatusActive, model.APStatusVerified)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestDeleteExpiredTokens(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(NewBaseRepository(db))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_tokens WHERE expires_at < $1 OR used_at IS NOT NULL")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
}
