package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
)

type adminRepository struct {
	BaseRepository
	locations repository.LocationRepository
	training  repository.TrainingRepository
}

func NewAdminRepository(base BaseRepository) repository.AdminRepository {
	return &adminRepository{
		BaseRepository: base,
		locations:      NewLocationRepository(base),
		training:       NewTrainingRepository(base),
	}
}

const practitionerWithUserColumns = `
	p.id, p.user_id, p.slug, p.title, p.first_name, p.last_name, p.photo_url, p.bio,
	p.ahpra_number, p.qualifications, p.ap_status, p.ap_tga_number, p.ap_verified_at,
	p.ap_conditions, p.ap_substances, p.clinic_name, p.website, p.contact_email,
	p.contact_phone, p.accepting_patients, p.waitlist_weeks, p.telehealth,
	p.funding_medicare, p.funding_dva, p.funding_ndis, p.funding_private,
	p.funding_workcover, p.referral_process, p.referral_form_url, p.referral_email,
	p.referral_phone, p.profile_status, p.profile_completeness, p.created_at, p.updated_at,
	u.id             AS "user.id",
	u.email          AS "user.email",
	u.role           AS "user.role",
	u.email_verified AS "user.email_verified"`

// ListPending returns submitted profiles awaiting review, oldest first.
func (r *adminRepository) ListPending(ctx context.Context) ([]*model.PendingPractitioner, error) {
	query := `SELECT ` + practitionerWithUserColumns + `
		FROM practitioners p
		JOIN users u ON u.id = p.user_id
		WHERE p.ap_status = $1 AND p.profile_status = $2
		ORDER BY p.created_at ASC`

	var out []*model.PendingPractitioner
	if err := r.db.SelectContext(ctx, &out, query, model.APStatusPending, model.ProfileStatusDraft); err != nil {
		return nil, fmt.Errorf("failed to list pending practitioners: %w", err)
	}

	ids := make([]uuid.UUID, len(out))
	for i, p := range out {
		ids[i] = p.ID
	}
	locs, err := r.locations.ListByPractitioners(ctx, ids)
	if err != nil {
		return nil, err
	}
	training, err := r.training.ListByPractitioners(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range out {
		p.Locations = nonNilLocations(locs[p.ID])
		p.TrainingRecords = nonNilTraining(training[p.ID])
	}
	return out, nil
}

// ListAll returns every practitioner, newest first.
func (r *adminRepository) ListAll(ctx context.Context) ([]*model.AdminPractitioner, error) {
	query := `SELECT ` + practitionerWithUserColumns + `
		FROM practitioners p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC`

	var out []*model.AdminPractitioner
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("failed to list practitioners: %w", err)
	}

	ids := make([]uuid.UUID, len(out))
	for i, p := range out {
		ids[i] = p.ID
	}
	locs, err := r.locations.ListByPractitioners(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range out {
		p.Locations = nonNilLocations(locs[p.ID])
	}
	return out, nil
}

// CountPractitioners counts profiles; an empty status matches any value.
func (r *adminRepository) CountPractitioners(ctx context.Context, profileStatus, apStatus string) (int, error) {
	query := `SELECT COUNT(*) FROM practitioners
		WHERE ($1::text = '' OR profile_status = $1) AND ($2::text = '' OR ap_status = $2)`

	var n int
	if err := r.db.GetContext(ctx, &n, query, profileStatus, apStatus); err != nil {
		return 0, fmt.Errorf("failed to count practitioners: %w", err)
	}
	return n, nil
}

func (r *adminRepository) CountUnverifiedTraining(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM training_records WHERE NOT verified`); err != nil {
		return 0, fmt.Errorf("failed to count pending training: %w", err)
	}
	return n, nil
}

func nonNilLocations(l []*model.Location) []*model.Location {
	if l == nil {
		return []*model.Location{}
	}
	return l
}

func nonNilTraining(t []*model.TrainingRecord) []*model.TrainingRecord {
	if t == nil {
		return []*model.TrainingRecord{}
	}
	return t
}
