package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
)

const practitionerColumns = `
	id, user_id, slug, title, first_name, last_name, photo_url, bio,
	ahpra_number, qualifications, ap_status, ap_tga_number, ap_verified_at,
	ap_conditions, ap_substances, clinic_name, website, contact_email,
	contact_phone, accepting_patients, waitlist_weeks, telehealth,
	funding_medicare, funding_dva, funding_ndis, funding_private,
	funding_workcover, referral_process, referral_form_url, referral_email,
	referral_phone, profile_status, profile_completeness, created_at, updated_at`

type practitionerRepository struct {
	BaseRepository
}

func NewPractitionerRepository(base BaseRepository) repository.PractitionerRepository {
	return &practitionerRepository{base}
}

func (r *practitionerRepository) Create(ctx context.Context, p *model.Practitioner) error {
	query := `
		INSERT INTO practitioners (
			id, user_id, slug, title, first_name, last_name, ahpra_number,
			profile_status, ap_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.Slug,
		p.Title,
		p.FirstName,
		p.LastName,
		p.AHPRANumber,
		p.ProfileStatus,
		p.APStatus,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create practitioner: %w", duplicate(err))
	}
	return nil
}

func (r *practitionerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Practitioner, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *practitionerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Practitioner, error) {
	return r.getOne(ctx, `WHERE user_id = $1`, userID)
}

// GetListedBySlug only finds profiles that are active and verified.
func (r *practitionerRepository) GetListedBySlug(ctx context.Context, slug string) (*model.Practitioner, error) {
	return r.getOne(ctx, `WHERE slug = $1 AND profile_status = $2 AND ap_status = $3`,
		slug, model.ProfileStatusActive, model.APStatusVerified)
}

func (r *practitionerRepository) getOne(ctx context.Context, where string, args ...interface{}) (*model.Practitioner, error) {
	query := `SELECT ` + practitionerColumns + ` FROM practitioners ` + where

	var p model.Practitioner
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get practitioner: %w", notFound(err))
	}
	return &p, nil
}

// CountSlugPrefix counts slugs that start with base, the way collisions are numbered.
func (r *practitionerRepository) CountSlugPrefix(ctx context.Context, base string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM practitioners WHERE slug LIKE $1`, escapeLike(base)+"%")
	if err != nil {
		return 0, fmt.Errorf("failed to count slugs: %w", err)
	}
	return n, nil
}

func (r *practitionerRepository) UpdateProfile(ctx context.Context, p *model.Practitioner) error {
	query := `
		UPDATE practitioners SET
			title = :title,
			first_name = :first_name,
			last_name = :last_name,
			bio = :bio,
			ahpra_number = :ahpra_number,
			qualifications = :qualifications,
			clinic_name = :clinic_name,
			website = :website,
			contact_email = :contact_email,
			contact_phone = :contact_phone,
			ap_conditions = :ap_conditions,
			telehealth = :telehealth,
			funding_medicare = :funding_medicare,
			funding_dva = :funding_dva,
			funding_ndis = :funding_ndis,
			funding_private = :funding_private,
			funding_workcover = :funding_workcover,
			referral_process = :referral_process,
			referral_email = :referral_email,
			referral_phone = :referral_phone
		WHERE id = :id
	`
	res, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return fmt.Errorf("failed to update practitioner: %w", err)
	}
	return expectOne(res)
}

func (r *practitionerRepository) UpdateAvailability(ctx context.Context, userID uuid.UUID, accepting bool, waitlistWeeks *int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE practitioners SET accepting_patients = $1, waitlist_weeks = $2 WHERE user_id = $3`,
		accepting, waitlistWeeks, userID)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	return expectOne(res)
}

func (r *practitionerRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, photoURL string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE practitioners SET photo_url = $1 WHERE id = $2`, photoURL, id)
	if err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}
	return expectOne(res)
}

func (r *practitionerRepository) SetStatus(ctx context.Context, id uuid.UUID, change model.StatusChange) error {
	query := `UPDATE practitioners SET profile_status = $1, ap_status = $2`
	args := []interface{}{change.ProfileStatus, change.APStatus}
	if change.VerifiedAt != nil {
		query += `, ap_verified_at = $3 WHERE id = $4`
		args = append(args, *change.VerifiedAt, id)
	} else {
		query += ` WHERE id = $3`
		args = append(args, id)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update practitioner status: %w", err)
	}
	return expectOne(res)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE metacharacters so s matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
