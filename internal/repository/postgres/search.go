package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
)

const activePractitionerColumns = `
	id, slug, title, first_name, last_name, photo_url, clinic_name,
	ap_conditions, accepting_patients, waitlist_weeks, telehealth,
	funding_medicare, funding_dva, funding_ndis, funding_private,
	state, suburb, postcode, training_providers, pi_trained`

type searchRepository struct {
	BaseRepository
}

func NewSearchRepository(base BaseRepository) repository.SearchRepository {
	return &searchRepository{base}
}

func (r *searchRepository) Search(ctx context.Context, filters model.SearchFilters) ([]*model.ActivePractitioner, error) {
	query, args := buildSearchQuery(filters)

	var out []*model.ActivePractitioner
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search practitioners: %w", err)
	}
	return out, nil
}

// isAll reports whether a select filter was left on its "any" option.
func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "all")
}

// buildSearchQuery ANDs every active filter over active_practitioners.
func buildSearchQuery(f model.SearchFilters) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !isAll(f.State) {
		where = append(where, "state = "+arg(strings.TrimSpace(f.State)))
	}
	if !isAll(f.Condition) {
		cond := strings.ToUpper(strings.TrimSpace(f.Condition))
		where = append(where, "ap_conditions @> "+arg(pq.Array([]string{cond}))+"::text[]")
	}
	if f.AcceptingOnly {
		where = append(where, "accepting_patients = TRUE")
	}
	if f.TelehealthOnly {
		where = append(where, "telehealth = TRUE")
	}
	if f.PITrainedOnly {
		where = append(where, "pi_trained = TRUE")
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg("%" + escapeLike(q) + "%")
		where = append(where, fmt.Sprintf(
			"(first_name ILIKE %[1]s OR last_name ILIKE %[1]s OR clinic_name ILIKE %[1]s)", p))
	}

	var sb strings.Builder
	sb.WriteString("SELECT")
	sb.WriteString(activePractitionerColumns)
	sb.WriteString("\n\tFROM active_practitioners")
	if len(where) > 0 {
		sb.WriteString("\n\tWHERE ")
		sb.WriteString(strings.Join(where, "\n\t  AND "))
	}
	sb.WriteString("\n\tORDER BY accepting_patients DESC, last_name ASC")
	return sb.String(), args
}
