// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/apconnect/directory-api/internal/model"
)

type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *UserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type TokenRepository struct{ mock.Mock }

func (m *TokenRepository) Create(ctx context.Context, token *model.UserToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *TokenRepository) GetByHash(ctx context.Context, hash, purpose string) (*model.UserToken, error) {
	args := m.Called(ctx, hash, purpose)
	t, _ := args.Get(0).(*model.UserToken)
	return t, args.Error(1)
}

func (m *TokenRepository) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *TokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type PractitionerRepository struct{ mock.Mock }

func (m *PractitionerRepository) Create(ctx context.Context, p *model.Practitioner) error {
	return m.Called(ctx, p).Error(0)
}

func (m *PractitionerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Practitioner, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Practitioner)
	return p, args.Error(1)
}

func (m *PractitionerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Practitioner, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*model.Practitioner)
	return p, args.Error(1)
}

func (m *PractitionerRepository) GetListedBySlug(ctx context.Context, slug string) (*model.Practitioner, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(*model.Practitioner)
	return p, args.Error(1)
}

func (m *PractitionerRepository) CountSlugPrefix(ctx context.Context, base string) (int, error) {
	args := m.Called(ctx, base)
	return args.Int(0), args.Error(1)
}

func (m *PractitionerRepository) UpdateProfile(ctx context.Context, p *model.Practitioner) error {
	return m.Called(ctx, p).Error(0)
}

func (m *PractitionerRepository) UpdateAvailability(ctx context.Context, userID uuid.UUID, accepting bool, waitlistWeeks *int) error {
	return m.Called(ctx, userID, accepting, waitlistWeeks).Error(0)
}

func (m *PractitionerRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, photoURL string) error {
	return m.Called(ctx, id, photoURL).Error(0)
}

func (m *PractitionerRepository) SetStatus(ctx context.Context, id uuid.UUID, change model.StatusChange) error {
	return m.Called(ctx, id, change).Error(0)
}

type LocationRepository struct{ mock.Mock }

func (m *LocationRepository) Add(ctx context.Context, loc *model.Location) error {
	return m.Called(ctx, loc).Error(0)
}

func (m *LocationRepository) Delete(ctx context.Context, id, practitionerID uuid.UUID) error {
	return m.Called(ctx, id, practitionerID).Error(0)
}

func (m *LocationRepository) ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*model.Location, error) {
	args := m.Called(ctx, practitionerID)
	l, _ := args.Get(0).([]*model.Location)
	return l, args.Error(1)
}

func (m *LocationRepository) ListByPractitioners(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]*model.Location, error) {
	args := m.Called(ctx, ids)
	l, _ := args.Get(0).(map[uuid.UUID][]*model.Location)
	return l, args.Error(1)
}

func (m *LocationRepository) CountByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error) {
	args := m.Called(ctx, practitionerID)
	return args.Int(0), args.Error(1)
}

type TrainingRepository struct{ mock.Mock }

func (m *TrainingRepository) Create(ctx context.Context, record *model.TrainingRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *TrainingRepository) ListByPractitioner(ctx context.Context, practitionerID uuid.UUID, verifiedOnly bool) ([]*model.TrainingRecord, error) {
	args := m.Called(ctx, practitionerID, verifiedOnly)
	r, _ := args.Get(0).([]*model.TrainingRecord)
	return r, args.Error(1)
}

func (m *TrainingRepository) ListByPractitioners(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]*model.TrainingRecord, error) {
	args := m.Called(ctx, ids)
	r, _ := args.Get(0).(map[uuid.UUID][]*model.TrainingRecord)
	return r, args.Error(1)
}

func (m *TrainingRepository) ListPending(ctx context.Context) ([]*model.PendingTraining, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]*model.PendingTraining)
	return r, args.Error(1)
}

func (m *TrainingRepository) Verify(ctx context.Context, id, adminID uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, adminID, at).Error(0)
}

type SearchRepository struct{ mock.Mock }

func (m *SearchRepository) Search(ctx context.Context, filters model.SearchFilters) ([]*model.ActivePractitioner, error) {
	args := m.Called(ctx, filters)
	r, _ := args.Get(0).([]*model.ActivePractitioner)
	return r, args.Error(1)
}

type AdminRepository struct{ mock.Mock }

func (m *AdminRepository) ListPending(ctx context.Context) ([]*model.PendingPractitioner, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]*model.PendingPractitioner)
	return r, args.Error(1)
}

func (m *AdminRepository) ListAll(ctx context.Context) ([]*model.AdminPractitioner, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]*model.AdminPractitioner)
	return r, args.Error(1)
}

func (m *AdminRepository) CountPractitioners(ctx context.Context, profileStatus, apStatus string) (int, error) {
	args := m.Called(ctx, profileStatus, apStatus)
	return args.Int(0), args.Error(1)
}

func (m *AdminRepository) CountUnverifiedTraining(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
