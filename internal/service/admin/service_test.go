package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
	"github.com/apconnect/directory-api/internal/repository/mocks"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
	"github.com/apconnect/directory-api/pkg/metrics"
)

type fixture struct {
	admin         *mocks.AdminRepository
	practitioners *mocks.PractitionerRepository
	training      *mocks.TrainingRepository
	metrics       *metrics.Metrics
	svc           *Service
	now           time.Time
}

func newFixture() *fixture {
	f := &fixture{
		admin:         new(mocks.AdminRepository),
		practitioners: new(mocks.PractitionerRepository),
		training:      new(mocks.TrainingRepository),
		metrics:       metrics.NewNop(),
		now:           time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(f.admin, f.practitioners, f.training, f.metrics)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func TestVerifyPractitionerActivates(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.practitioners.On("SetStatus", mock.Anything, id, model.StatusChange{
		ProfileStatus: model.ProfileStatusActive,
		APStatus:      model.APStatusVerified,
		VerifiedAt:    &f.now,
	}).Return(nil)

	require.NoError(t, f.svc.VerifyPractitioner(context.Background(), id, uuid.New()))
	f.practitioners.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.VerificationActions.WithLabelValues("verify_practitioner")))
}

func TestSuspendPractitioner(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.practitioners.On("SetStatus", mock.Anything, id, model.StatusChange{
		ProfileStatus: model.ProfileStatusSuspended,
		APStatus:      model.APStatusInactive,
	}).Return(nil)

	require.NoError(t, f.svc.SuspendPractitioner(context.Background(), id, "AHPRA number mismatch"))
	f.practitioners.AssertExpectations(t)
}

func TestVerifyUnknownPractitioner(t *testing.T) {
	f := newFixture()
	f.practitioners.On("SetStatus", mock.Anything, mock.Anything, mock.Anything).Return(repository.ErrNotFound)

	err := f.svc.VerifyPractitioner(context.Background(), uuid.New(), uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestVerifyTrainingRecordRecordsAdmin(t *testing.T) {
	f := newFixture()
	id, adminID := uuid.New(), uuid.New()
	f.training.On("Verify", mock.Anything, id, adminID, f.now).Return(nil)

	require.NoError(t, f.svc.VerifyTrainingRecord(context.Background(), id, adminID))
	f.training.AssertExpectations(t)
}

func TestStats(t *testing.T) {
	f := newFixture()
	f.admin.On("CountPractitioners", mock.Anything, "", "").Return(10, nil)
	f.admin.On("CountPractitioners", mock.Anything, model.ProfileStatusActive, model.APStatusVerified).Return(6, nil)
	f.admin.On("CountPractitioners", mock.Anything, "", model.APStatusPending).Return(3, nil)
	f.admin.On("CountUnverifiedTraining", mock.Anything).Return(2, nil)

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &model.AdminStats{
		TotalPractitioners:  10,
		ActivePractitioners: 6,
		PendingVerification: 3,
		PendingTraining:     2,
	}, stats)
}

func TestStatsFailure(t *testing.T) {
	f := newFixture()
	f.admin.On("CountPractitioners", mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	f.admin.On("CountUnverifiedTraining", mock.Anything).Return(0, errors.New("timeout"))

	_, err := f.svc.Stats(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.ErrInternal))
}

func TestListPendingNeverNil(t *testing.T) {
	f := newFixture()
	f.admin.On("ListPending", mock.Anything).Return(nil, nil)

	out, err := f.svc.ListPending(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
}
