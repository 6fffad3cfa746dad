package admin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
	"github.com/apconnect/directory-api/pkg/metrics"
)

type AdminServicer interface {
	ListPending(ctx context.Context) ([]*model.PendingPractitioner, error)
	ListAll(ctx context.Context) ([]*model.AdminPractitioner, error)
	VerifyPractitioner(ctx context.Context, id, adminID uuid.UUID) error
	SuspendPractitioner(ctx context.Context, id uuid.UUID, reason string) error
	ListPendingTraining(ctx context.Context) ([]*model.PendingTraining, error)
	VerifyTrainingRecord(ctx context.Context, id, adminID uuid.UUID) error
	Stats(ctx context.Context) (*model.AdminStats, error)
}

type Service struct {
	admin         repository.AdminRepository
	practitioners repository.PractitionerRepository
	training      repository.TrainingRepository
	metrics       *metrics.Metrics
	now           func() time.Time
}

func NewService(
	admin repository.AdminRepository,
	practitioners repository.PractitionerRepository,
	training repository.TrainingRepository,
	m *metrics.Metrics,
) *Service {
	return &Service{
		admin:         admin,
		practitioners: practitioners,
		training:      training,
		metrics:       m,
		now:           time.Now,
	}
}

func (s *Service) ListPending(ctx context.Context) ([]*model.PendingPractitioner, error) {
	out, err := s.admin.ListPending(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error fetching pending practitioners")
		return nil, apperrors.Internal("failed to fetch pending practitioners", err)
	}
	if out == nil {
		out = []*model.PendingPractitioner{}
	}
	return out, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*model.AdminPractitioner, error) {
	out, err := s.admin.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error fetching practitioners")
		return nil, apperrors.Internal("failed to fetch practitioners", err)
	}
	if out == nil {
		out = []*model.AdminPractitioner{}
	}
	return out, nil
}

// VerifyPractitioner approves a profile and lists it publicly.
func (s *Service) VerifyPractitioner(ctx context.Context, id, adminID uuid.UUID) error {
	now := s.now()
	err := s.practitioners.SetStatus(ctx, id, model.StatusChange{
		ProfileStatus: model.ProfileStatusActive,
		APStatus:      model.APStatusVerified,
		VerifiedAt:    &now,
	})
	if err := s.mapWriteError(err, "practitioner", "failed to verify practitioner"); err != nil {
		return err
	}

	s.metrics.VerificationActions.WithLabelValues("verify_practitioner").Inc()
	log.Info().Stringer("practitioner_id", id).Stringer("admin_id", adminID).Msg("practitioner verified")
	return nil
}

// SuspendPractitioner removes a profile from the directory. The reason is only logged.
func (s *Service) SuspendPractitioner(ctx context.Context, id uuid.UUID, reason string) error {
	err := s.practitioners.SetStatus(ctx, id, model.StatusChange{
		ProfileStatus: model.ProfileStatusSuspended,
		APStatus:      model.APStatusInactive,
	})
	if err := s.mapWriteError(err, "practitioner", "failed to suspend practitioner"); err != nil {
		return err
	}

	s.metrics.VerificationActions.WithLabelValues("suspend_practitioner").Inc()
	log.Info().Stringer("practitioner_id", id).Str("reason", reason).Msg("practitioner suspended")
	return nil
}

func (s *Service) ListPendingTraining(ctx context.Context) ([]*model.PendingTraining, error) {
	out, err := s.training.ListPending(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error fetching pending training")
		return nil, apperrors.Internal("failed to fetch pending training", err)
	}
	if out == nil {
		out = []*model.PendingTraining{}
	}
	return out, nil
}

func (s *Service) VerifyTrainingRecord(ctx context.Context, id, adminID uuid.UUID) error {
	err := s.training.Verify(ctx, id, adminID, s.now())
	if err := s.mapWriteError(err, "training record", "failed to verify training record"); err != nil {
		return err
	}

	s.metrics.VerificationActions.WithLabelValues("verify_training").Inc()
	log.Info().Stringer("training_id", id).Stringer("admin_id", adminID).Msg("training record verified")
	return nil
}

// Stats runs the four overview counts concurrently.
func (s *Service) Stats(ctx context.Context) (*model.AdminStats, error) {
	var stats model.AdminStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalPractitioners, err = s.admin.CountPractitioners(gctx, "", "")
		return err
	})
	g.Go(func() (err error) {
		stats.ActivePractitioners, err = s.admin.CountPractitioners(gctx, model.ProfileStatusActive, model.APStatusVerified)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingVerification, err = s.admin.CountPractitioners(gctx, "", model.APStatusPending)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingTraining, err = s.admin.CountUnverifiedTraining(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("error fetching admin stats")
		return nil, apperrors.Internal("failed to fetch stats", err)
	}
	return &stats, nil
}

func (s *Service) mapWriteError(err error, resource, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(resource, err)
	}
	log.Error().Err(err).Msg(message)
	return apperrors.Internal(message, err)
}
