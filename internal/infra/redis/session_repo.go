package redis

import (
	"context"
	"fmt"
	"time"

	"ai-chat-backend/internal/domain"
	"ai-chat-backend/internal/domain/ports/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo binds opaque session IDs to user IDs in Redis. The TTL doubles
// as session expiry; Redis drops the binding and Resolve starts reporting
// ErrUnauthenticated without any sweeper of our own.
type SessionRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewSessionRepo(client RedisClient, ttl time.Duration) *SessionRepo {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionRepo{client: client, ttl: ttl}
}

func (s *SessionRepo) key(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (s *SessionRepo) Save(ctx context.Context, sessionID, userID string) error {
	return s.client.Set(ctx, s.key(sessionID), userID, s.ttl)
}

func (s *SessionRepo) Resolve(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.client.Get(ctx, s.key(sessionID))
	if err != nil {
		if IsNil(err) {
			return "", domain.ErrUnauthenticated
		}
		return "", err
	}
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	return userID, nil
}

func (s *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	// Del on a missing key is already a no-op in Redis, which gives us
	// idempotent logout for free.
	return s.client.Del(ctx, s.key(sessionID))
}
