package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultSessionTTL is 7 days
	DefaultSessionTTL = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping
	UserSessionKeyPrefix = "user_session:"
)

// SessionStore keeps one active session token per user in Redis.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{rdb: rdb, ttl: ttl}
}

// Create issues a new token for userID. Any previous session of the user is
// dropped first so the TTL restarts from this login.
func (s *SessionStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	if err := s.InvalidateUser(ctx, userID); err != nil {
		return "", err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, SessionKeyPrefix+token, userID.String(), s.ttl)
	pipe.Set(ctx, UserSessionKeyPrefix+userID.String(), token, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Validate returns the user behind token. Unknown or expired tokens yield
// ok=false without an error.
func (s *SessionStore) Validate(ctx context.Context, token string) (uuid.UUID, bool, error) {
	if token == "" {
		return uuid.Nil, false, nil
	}

	userIDStr, err := s.rdb.Get(ctx, SessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false, err
	}
	return userID, true, nil
}

// Refresh extends both session keys by the TTL from now.
func (s *SessionStore) Refresh(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("session token is empty")
	}

	userIDStr, err := s.rdb.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Expire(ctx, SessionKeyPrefix+token, s.ttl)
	pipe.Expire(ctx, UserSessionKeyPrefix+userIDStr, s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Invalidate removes a session token and its user mapping.
func (s *SessionStore) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sessionKey := SessionKeyPrefix + token
	userIDStr, err := s.rdb.Get(ctx, sessionKey).Result()
	if err == nil && userIDStr != "" {
		s.rdb.Del(ctx, UserSessionKeyPrefix+userIDStr)
	}
	return s.rdb.Del(ctx, sessionKey).Err()
}

// InvalidateUser drops whatever session the user currently holds.
func (s *SessionStore) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	userSessionKey := UserSessionKeyPrefix + userID.String()

	token, err := s.rdb.Get(ctx, userSessionKey).Result()
	if err == nil && token != "" {
		s.rdb.Del(ctx, SessionKeyPrefix+token)
	}
	return s.rdb.Del(ctx, userSessionKey).Err()
}
