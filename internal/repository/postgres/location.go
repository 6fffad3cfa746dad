package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
)

const locationColumns = `
	id, practitioner_id, name, address, suburb, state, postcode,
	latitude, longitude, is_primary, created_at`

type locationRepository struct {
	BaseRepository
}

func NewLocationRepository(base BaseRepository) repository.LocationRepository {
	return &locationRepository{base}
}

// Add inserts a location. A primary location first demotes the practitioner's
// other locations in the same transaction. Two concurrent primary inserts can
// still both commit as primary.
func (r *locationRepository) Add(ctx context.Context, loc *model.Location) error {
	loc.ID = uuid.New()
	loc.CreatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if loc.IsPrimary {
			if _, err := tx.ExecContext(ctx,
				`UPDATE practitioner_locations SET is_primary = FALSE WHERE practitioner_id = $1`,
				loc.PractitionerID); err != nil {
				return fmt.Errorf("failed to clear primary location: %w", err)
			}
		}

		query := `
			INSERT INTO practitioner_locations (
				id, practitioner_id, name, address, suburb, state, postcode, is_primary, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		if _, err := tx.ExecContext(ctx, query,
			loc.ID,
			loc.PractitionerID,
			loc.Name,
			loc.Address,
			loc.Suburb,
			loc.State,
			loc.Postcode,
			loc.IsPrimary,
			loc.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to add location: %w", err)
		}
		return nil
	})
}

func (r *locationRepository) Delete(ctx context.Context, id, practitionerID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM practitioner_locations WHERE id = $1 AND practitioner_id = $2`,
		id, practitionerID)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	return expectOne(res)
}

func (r *locationRepository) ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*model.Location, error) {
	query := `SELECT ` + locationColumns + `
		FROM practitioner_locations
		WHERE practitioner_id = $1
		ORDER BY is_primary DESC, created_at ASC`

	var locs []*model.Location
	if err := r.db.SelectContext(ctx, &locs, query, practitionerID); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locs, nil
}

// ListByPractitioners loads the locations of several practitioners in one query.
func (r *locationRepository) ListByPractitioners(ctx context.Context, practitionerIDs []uuid.UUID) (map[uuid.UUID][]*model.Location, error) {
	out := make(map[uuid.UUID][]*model.Location, len(practitionerIDs))
	if len(practitionerIDs) == 0 {
		return out, nil
	}

	query := `SELECT ` + locationColumns + `
		FROM practitioner_locations
		WHERE practitioner_id = ANY($1)
		ORDER BY is_primary DESC, created_at ASC`

	var locs []*model.Location
	if err := r.db.SelectContext(ctx, &locs, query, pq.Array(uuidStrings(practitionerIDs))); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	for _, l := range locs {
		out[l.PractitionerID] = append(out[l.PractitionerID], l)
	}
	return out, nil
}

func (r *locationRepository) CountByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM practitioner_locations WHERE practitioner_id = $1`, practitionerID); err != nil {
		return 0, fmt.Errorf("failed to count locations: %w", err)
	}
	return n, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
