package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/krank/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "krank-session||"
	tokensSetKey     = "krank-sessions"
	tokenLength      = 35
)

var (
	ErrNoSession      = errors.New("no session")
	ErrSessionExpired = errors.New("session expired")
)

// Session is what a token maps to.
type Session struct {
	UserID    string
	CreatedAt time.Time
}

func (s Session) encode() string {
	return fmt.Sprintf("%d|%s", s.CreatedAt.Unix(), s.UserID)
}

func decodeSession(value string) (Session, error) {
	createdAtStr, userID, found := strings.Cut(value, "|")
	if !found || userID == "" {
		return Session{}, fmt.Errorf("malformed session value: %q", value)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return Session{}, fmt.Errorf("malformed session time: %w", err)
	}
	return Session{
		UserID:    userID,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}

type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login opens a session for the user and returns its token.
func (as *Service) Login(ctx context.Context, userID string, createdAt time.Time) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}

	token, err := as.RandStringFunc(tokenLength)
	if err != nil {
		return "", err
	}

	session := Session{UserID: userID, CreatedAt: createdAt}
	if err := as.redisClient.Set(ctx, sessionKeyPrefix+token, session.encode(), as.ttl).Err(); err != nil {
		return "", err
	}

	// add token to list of sessions
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Logout removes the session. It reports false if there was no such session.
func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	deleted, err := as.redisClient.Del(ctx, sessionKey).Result()
	if err != nil {
		return false, err
	}

	// remove token from the list of sessions
	if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, err
	}

	return deleted > 0, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	sessionTokens, err := as.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionTokens) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		value, err := as.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
		if errors.Is(err, redis.Nil) {
			// the key already expired in redis, only the set member is left
			toRemove = append(toRemove, token)
			continue
		}
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		session, err := decodeSession(value)
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			toRemove = append(toRemove, token)
			continue
		}

		if time.Since(session.CreatedAt) > as.ttl {
			log.Debugf("=>\twill clean the session of user: %s", session.UserID)
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}

		// remove token from the list of sessions
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
	}
}
