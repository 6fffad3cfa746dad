package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/apconnect/directory-api/internal/model"
)

// All repository interfaces in one file
type (
	// UserRepository stores identity records
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
		MarkEmailVerified(ctx context.Context, id uuid.UUID) error
		TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	}

	// TokenRepository stores single-use email tokens
	TokenRepository interface {
		Create(ctx context.Context, token *model.UserToken) error
		GetByHash(ctx context.Context, hash, purpose string) (*model.UserToken, error)
		MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error
		DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	}

	// PractitionerRepository stores practitioner profiles
	PractitionerRepository interface {
		Create(ctx context.Context, p *model.Practitioner) error
		GetByID(ctx context.Context, id uuid.UUID) (*model.Practitioner, error)
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Practitioner, error)
		GetListedBySlug(ctx context.Context, slug string) (*model.Practitioner, error)
		CountSlugPrefix(ctx context.Context, base string) (int, error)
		UpdateProfile(ctx context.Context, p *model.Practitioner) error
		UpdateAvailability(ctx context.Context, userID uuid.UUID, accepting bool, waitlistWeeks *int) error
		UpdatePhoto(ctx context.Context, id uuid.UUID, photoURL string) error
		SetStatus(ctx context.Context, id uuid.UUID, status model.StatusChange) error
	}

	// LocationRepository stores practice addresses
	LocationRepository interface {
		Add(ctx context.Context, loc *model.Location) error
		Delete(ctx context.Context, id, practitionerID uuid.UUID) error
		ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*model.Location, error)
		ListByPractitioners(ctx context.Context, practitionerIDs []uuid.UUID) (map[uuid.UUID][]*model.Location, error)
		CountByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error)
	}

	// TrainingRepository stores training credentials
	TrainingRepository interface {
		Create(ctx context.Context, record *model.TrainingRecord) error
		ListByPractitioner(ctx context.Context, practitionerID uuid.UUID, verifiedOnly bool) ([]*model.TrainingRecord, error)
		ListByPractitioners(ctx context.Context, practitionerIDs []uuid.UUID) (map[uuid.UUID][]*model.TrainingRecord, error)
		ListPending(ctx context.Context) ([]*model.PendingTraining, error)
		Verify(ctx context.Context, id, adminID uuid.UUID, at time.Time) error
	}

	// ReferenceRepository reads static reference lists
	ReferenceRepository interface {
		ListConditions(ctx context.Context) ([]*model.Condition, error)
		ListStates(ctx context.Context) ([]*model.State, error)
	}

	// SearchRepository queries the active practitioners view
	SearchRepository interface {
		Search(ctx context.Context, filters model.SearchFilters) ([]*model.ActivePractitioner, error)
	}

	// AdminRepository serves the admin console lists and counters
	AdminRepository interface {
		ListPending(ctx context.Context) ([]*model.PendingPractitioner, error)
		ListAll(ctx context.Context) ([]*model.AdminPractitioner, error)
		CountPractitioners(ctx context.Context, profileStatus, apStatus string) (int, error)
		CountUnverifiedTraining(ctx context.Context) (int, error)
	}
)
