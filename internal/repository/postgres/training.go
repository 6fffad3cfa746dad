package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
)

const trainingColumns = `
	t.id, t.practitioner_id, t.provider, t.program, t.completed_at,
	t.certificate_id, t.verified, t.verified_at, t.verified_by,
	t.is_pi_graduate, t.pi_student_id, t.created_at`

type trainingRepository struct {
	BaseRepository
}

func NewTrainingRepository(base BaseRepository) repository.TrainingRepository {
	return &trainingRepository{base}
}

func (r *trainingRepository) Create(ctx context.Context, record *model.TrainingRecord) error {
	query := `
		INSERT INTO training_records (
			id, practitioner_id, provider, program, completed_at,
			certificate_id, verified, is_pi_graduate, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	record.ID = uuid.New()
	record.CreatedAt = time.Now()

	if _, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.PractitionerID,
		record.Provider,
		record.Program,
		record.CompletedAt,
		record.CertificateID,
		record.Verified,
		record.IsPIGraduate,
		record.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to add training record: %w", err)
	}
	return nil
}

// ListByPractitioner returns records most recently completed first.
func (r *trainingRepository) ListByPractitioner(ctx context.Context, practitionerID uuid.UUID, verifiedOnly bool) ([]*model.TrainingRecord, error) {
	query := `SELECT ` + trainingColumns + `
		FROM training_records t
		WHERE t.practitioner_id = $1`
	if verifiedOnly {
		query += ` AND t.verified`
	}
	query += ` ORDER BY t.completed_at DESC NULLS LAST`

	var records []*model.TrainingRecord
	if err := r.db.SelectContext(ctx, &records, query, practitionerID); err != nil {
		return nil, fmt.Errorf("failed to list training records: %w", err)
	}
	return records, nil
}

func (r *trainingRepository) ListByPractitioners(ctx context.Context, practitionerIDs []uuid.UUID) (map[uuid.UUID][]*model.TrainingRecord, error) {
	out := make(map[uuid.UUID][]*model.TrainingRecord, len(practitionerIDs))
	if len(practitionerIDs) == 0 {
		return out, nil
	}

	query := `SELECT ` + trainingColumns + `
		FROM training_records t
		WHERE t.practitioner_id = ANY($1)
		ORDER BY t.completed_at DESC NULLS LAST`

	var records []*model.TrainingRecord
	if err := r.db.SelectContext(ctx, &records, query, pq.Array(uuidStrings(practitionerIDs))); err != nil {
		return nil, fmt.Errorf("failed to list training records: %w", err)
	}
	for _, rec := range records {
		out[rec.PractitionerID] = append(out[rec.PractitionerID], rec)
	}
	return out, nil
}

// ListPending returns unverified records, oldest first, with the owner's name and email.
func (r *trainingRepository) ListPending(ctx context.Context) ([]*model.PendingTraining, error) {
	query := `SELECT ` + trainingColumns + `,
			p.title      AS "practitioner.title",
			p.first_name AS "practitioner.first_name",
			p.last_name  AS "practitioner.last_name",
			u.email      AS "practitioner.email"
		FROM training_records t
		JOIN practitioners p ON p.id = t.practitioner_id
		JOIN users u ON u.id = p.user_id
		WHERE NOT t.verified
		ORDER BY t.created_at ASC`

	var records []*model.PendingTraining
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list pending training: %w", err)
	}
	return records, nil
}

func (r *trainingRepository) Verify(ctx context.Context, id, adminID uuid.UUID, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE training_records SET verified = TRUE, verified_at = $1, verified_by = $2 WHERE id = $3`,
		at, adminID, id)
	if err != nil {
		return fmt.Errorf("failed to verify training record: %w", err)
	}
	return expectOne(res)
}
