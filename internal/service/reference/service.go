package reference

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
)

const (
	conditionsKey = "conditions"
	statesKey     = "states"
)

type ReferenceServicer interface {
	ListConditions(ctx context.Context) ([]*model.Condition, error)
	ListStates(ctx context.Context) ([]*model.State, error)
}

// Service serves the static reference lists from an in-process cache.
type Service struct {
	repo  repository.ReferenceRepository
	cache *cache.Cache
}

func NewService(repo repository.ReferenceRepository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Service{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *Service) ListConditions(ctx context.Context) ([]*model.Condition, error) {
	if cached, found := s.cache.Get(conditionsKey); found {
		return cached.([]*model.Condition), nil
	}

	conditions, err := s.repo.ListConditions(ctx)
	if err != nil {
		log.Error().Err(err).Str("operation", "list_conditions").Msg("error fetching conditions")
		return nil, apperrors.Internal("failed to fetch conditions", err)
	}
	s.cache.SetDefault(conditionsKey, conditions)
	return conditions, nil
}

func (s *Service) ListStates(ctx context.Context) ([]*model.State, error) {
	if cached, found := s.cache.Get(statesKey); found {
		return cached.([]*model.State), nil
	}

	states, err := s.repo.ListStates(ctx)
	if err != nil {
		log.Error().Err(err).Str("operation", "list_states").Msg("error fetching states")
		return nil, apperrors.Internal("failed to fetch states", err)
	}
	s.cache.SetDefault(statesKey, states)
	return states, nil
}
