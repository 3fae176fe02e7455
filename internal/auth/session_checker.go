package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type SessionChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewSessionChecker(ttl time.Duration, redisClient *redis.Client) *SessionChecker {
	return &SessionChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// UserID resolves a session token to the id of the logged-in user.
func (c *SessionChecker) UserID(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNoSession
	}

	value, err := c.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}

	session, err := decodeSession(value)
	if err != nil {
		return "", err
	}

	if time.Since(session.CreatedAt) > c.ttl {
		return "", ErrSessionExpired
	}

	return session.UserID, nil
}
