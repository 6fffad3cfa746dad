package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
)

type tokenRepository struct {
	BaseRepository
}

func NewTokenRepository(base BaseRepository) repository.TokenRepository {
	return &tokenRepository{base}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.UserToken) error {
	query := `
		INSERT INTO user_tokens (id, user_id, token_hash, purpose, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	token.ID = uuid.New()
	token.CreatedAt = time.Now()

	if _, err := r.db.ExecContext(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.Purpose,
		token.ExpiresAt,
		token.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (r *tokenRepository) GetByHash(ctx context.Context, hash, purpose string) (*model.UserToken, error) {
	query := `
		SELECT id, user_id, token_hash, purpose, expires_at, used_at, created_at
		FROM user_tokens
		WHERE token_hash = $1 AND purpose = $2
	`
	var token model.UserToken
	if err := r.db.GetContext(ctx, &token, query, hash, purpose); err != nil {
		return nil, fmt.Errorf("failed to get token: %w", notFound(err))
	}
	return &token, nil
}

// MarkUsed consumes the token. A token that was already used is not found.
func (r *tokenRepository) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_tokens SET used_at = $1 WHERE id = $2 AND used_at IS NULL`, at, id)
	if err != nil {
		return fmt.Errorf("failed to invalidate token: %w", err)
	}
	return expectOne(res)
}

func (r *tokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_tokens WHERE expires_at < $1 OR used_at IS NOT NULL`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return res.RowsAffected()
}
