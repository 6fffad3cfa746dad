package search

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
	"github.com/apconnect/directory-api/pkg/metrics"
)

type SearchServicer interface {
	SearchPractitioners(ctx context.Context, filters model.SearchFilters) ([]*model.ActivePractitioner, error)
	GetPractitionerBySlug(ctx context.Context, slug string) (*model.PractitionerDetails, error)
}

type Service struct {
	search        repository.SearchRepository
	practitioners repository.PractitionerRepository
	locations     repository.LocationRepository
	training      repository.TrainingRepository
	metrics       *metrics.Metrics
}

func NewService(
	search repository.SearchRepository,
	practitioners repository.PractitionerRepository,
	locations repository.LocationRepository,
	training repository.TrainingRepository,
	m *metrics.Metrics,
) *Service {
	return &Service{
		search:        search,
		practitioners: practitioners,
		locations:     locations,
		training:      training,
		metrics:       m,
	}
}

// SearchPractitioners lists active, verified practitioners matching every given filter.
func (s *Service) SearchPractitioners(ctx context.Context, filters model.SearchFilters) ([]*model.ActivePractitioner, error) {
	results, err := s.search.Search(ctx, filters)
	if err != nil {
		log.Error().Err(err).
			Str("state", filters.State).
			Str("condition", filters.Condition).
			Msg("error searching practitioners")
		return nil, apperrors.Internal("failed to search practitioners", err)
	}
	if results == nil {
		results = []*model.ActivePractitioner{}
	}
	s.metrics.ObserveSearch(len(results))
	return results, nil
}

// GetPractitionerBySlug returns a public profile with its locations, primary
// first, and verified training records.
func (s *Service) GetPractitionerBySlug(ctx context.Context, slug string) (*model.PractitionerDetails, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, apperrors.NotFound("practitioner", nil)
	}

	p, err := s.practitioners.GetListedBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("practitioner", err)
	}
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("error fetching practitioner")
		return nil, apperrors.Internal("failed to fetch practitioner", err)
	}

	locations, err := s.locations.ListByPractitioner(ctx, p.ID)
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("error fetching locations")
		return nil, apperrors.Internal("failed to fetch practitioner", err)
	}
	training, err := s.training.ListByPractitioner(ctx, p.ID, true)
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("error fetching training records")
		return nil, apperrors.Internal("failed to fetch practitioner", err)
	}

	return &model.PractitionerDetails{
		Practitioner:    *p,
		Locations:       orEmpty(locations),
		TrainingRecords: orEmpty(training),
	}, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
