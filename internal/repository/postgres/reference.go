package postgres

import (
	"context"
	"fmt"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
)

type referenceRepository struct {
	BaseRepository
}

func NewReferenceRepository(base BaseRepository) repository.ReferenceRepository {
	return &referenceRepository{base}
}

func (r *referenceRepository) ListConditions(ctx context.Context) ([]*model.Condition, error) {
	var out []*model.Condition
	if err := r.db.SelectContext(ctx, &out,
		`SELECT id, name, description, display_order FROM conditions ORDER BY display_order`); err != nil {
		return nil, fmt.Errorf("failed to list conditions: %w", err)
	}
	return out, nil
}

func (r *referenceRepository) ListStates(ctx context.Context) ([]*model.State, error) {
	var out []*model.State
	if err := r.db.SelectContext(ctx, &out,
		`SELECT code, name, display_order FROM states ORDER BY display_order`); err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	return out, nil
}
