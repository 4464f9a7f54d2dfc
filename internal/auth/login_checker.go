package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	jwtSecret   []byte
	redisClient *redis.Client
	now         func() time.Time
}

func NewLoginChecker(ttl time.Duration, jwtSecret string, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		jwtSecret:   []byte(jwtSecret),
		redisClient: redisClient,
		now:         time.Now,
	}
}

// Authenticate verifies the token signature and expiry, then checks the
// session is still alive in redis. Returns the user id of the session.
func (c *LoginChecker) Authenticate(ctx context.Context, token string) (int, error) {
	claims, err := parseToken(c.jwtSecret, token, c.now)
	if err != nil {
		return 0, err
	}

	sessionKey := sessionKeyPrefix + claims.ID
	cmd := c.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrInvalidSession
		}
		return 0, err
	}

	createdAtUnix, err := strconv.ParseInt(cmd.Val(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse session created at: %w", err)
	}
	if createdAtUnix == 0 {
		// logged out
		return 0, ErrInvalidSession
	}

	if c.now().Sub(time.Unix(createdAtUnix, 0)) > c.ttl {
		return 0, ErrInvalidSession
	}

	return claims.UserID, nil
}
