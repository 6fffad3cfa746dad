package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/apconnect/directory-api/internal/repository"
)

// TokenCleanupWorker purges expired and consumed email tokens.
type TokenCleanupWorker struct {
	repo     repository.TokenRepository
	interval time.Duration
	now      func() time.Time
}

func NewTokenCleanupWorker(repo repository.TokenRepository, interval time.Duration) *TokenCleanupWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TokenCleanupWorker{
		repo:     repo,
		interval: interval,
		now:      time.Now,
	}
}

// Start blocks until ctx is cancelled.
func (w *TokenCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", w.interval).Msg("token cleanup worker started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("token cleanup worker stopped")
			return
		case <-ticker.C:
			if _, err := w.Cleanup(ctx); err != nil {
				log.Error().Err(err).Msg("error cleaning up tokens")
			}
		}
	}
}

func (w *TokenCleanupWorker) Cleanup(ctx context.Context) (int64, error) {
	rows, err := w.repo.DeleteExpired(ctx, w.now())
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup tokens: %w", err)
	}
	if rows > 0 {
		log.Info().Int64("rows", rows).Msg("cleaned up user tokens")
	}
	return rows, nil
}
