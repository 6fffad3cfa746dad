package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/apconnect/directory-api/internal/repository/mocks"
)

func TestCleanupDeletesBeforeNow(t *testing.T) {
	repo := new(mocks.TokenRepository)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.On("DeleteExpired", mock.Anything, now).Return(int64(3), nil)

	w := NewTokenCleanupWorker(repo, time.Hour)
	w.now = func() time.Time { return now }

	rows, err := w.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), rows)
}

func TestCleanupError(t *testing.T) {
	repo := new(mocks.TokenRepository)
	repo.On("DeleteExpired", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	_, err := NewTokenCleanupWorker(repo, time.Hour).Cleanup(context.Background())
	assert.ErrorContains(t, err, "failed to cleanup tokens")
}

func TestStartRunsOnTickAndStops(t *testing.T) {
	repo := new(mocks.TokenRepository)
	ran := make(chan struct{}, 1)
	repo.On("DeleteExpired", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		select {
		case ran <- struct{}{}:
		default:
		}
	}).Return(int64(0), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewTokenCleanupWorker(repo, 5*time.Millisecond).Start(ctx)
		close(done)
	}()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("cleanup never ran")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
