package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore tracks issued access tokens so they can be revoked before they expire.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string, userID uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) error
	DeleteOthers(ctx context.Context, userID uuid.UUID, keepSessionID string) error
}

type redisSessionStore struct {
	client redis.Cmdable
}

func NewRedisSessionStore(client redis.Cmdable) SessionStore {
	return &redisSessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func userSessionsKey(userID uuid.UUID) string {
	return "user_sessions:" + userID.String()
}

func (s *redisSessionStore) Save(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(sessionID), userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	setKey := userSessionsKey(userID)
	if err := s.client.SAdd(ctx, setKey, sessionID).Err(); err != nil {
		return fmt.Errorf("failed to index session: %w", err)
	}
	if err := s.client.Expire(ctx, setKey, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session index expiry: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	err := s.client.Get(ctx, sessionKey(sessionID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read session: %w", err)
	}
	return true, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string, userID uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if err := s.client.SRem(ctx, userSessionsKey(userID), sessionID).Err(); err != nil {
		return fmt.Errorf("failed to unindex session: %w", err)
	}
	return nil
}

// DeleteAll revokes every session of the user, e.g. after a password change.
func (s *redisSessionStore) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	setKey := userSessionsKey(userID)
	ids, err := s.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, setKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

// DeleteOthers revokes every session of the user except keepSessionID.
func (s *redisSessionStore) DeleteOthers(ctx context.Context, userID uuid.UUID, keepSessionID string) error {
	setKey := userSessionsKey(userID)
	ids, err := s.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	var keys []string
	var members []interface{}
	for _, id := range ids {
		if id == keepSessionID {
			continue
		}
		keys = append(keys, sessionKey(id))
		members = append(members, id)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	if err := s.client.SRem(ctx, setKey, members...).Err(); err != nil {
		return fmt.Errorf("failed to unindex sessions: %w", err)
	}
	return nil
}
