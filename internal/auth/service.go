package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/habitflow/backend/internal/telemetry/metrics"
	"github.com/habitflow/backend/internal/telemetry/tracing"
	"github.com/habitflow/backend/pkg"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "habitflow-session||"
	tokensSetKey     = "habitflow-sessions"
	sessionIDLength  = 35
)

type usersRepo interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
}

type Service struct {
	users          usersRepo
	redisClient    *redis.Client
	ttl            time.Duration
	jwtSecret      []byte
	metricsManager *metrics.Manager
	// ability to inject random string generator func for session ids (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
	// password hashing is slow on purpose, tests swap in a cheap one
	HashPasswordFunc func(password string) (string, error)
}

func NewAuthService(
	users usersRepo,
	ttl time.Duration,
	jwtSecret string,
	redisClient *redis.Client,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		users:            users,
		ttl:              ttl,
		jwtSecret:        []byte(jwtSecret),
		redisClient:      redisClient,
		metricsManager:   metricsManager,
		RandStringFunc:   pkg.GenerateRandomString,
		HashPasswordFunc: pkg.HashPassword,
	}
}

func (as *Service) Register(ctx context.Context, req RegisterRequest) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.register")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := as.HashPasswordFunc(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if err := as.users.Create(ctx, u); err != nil {
		return nil, err
	}

	as.metricsManager.CounterUsersRegistered.Inc()
	log.Debugf("auth service, new user registered: %d", u.ID)

	return u, nil
}

// Login checks the credentials, stores a new session in redis and returns the signed token for it.
func (as *Service) Login(ctx context.Context, email, password string, createdAt time.Time) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.login")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	result := "error"
	defer func() { as.metricsManager.CounterLogins.WithLabelValues(result).Inc() }()

	u, err := as.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrUserNotFound) {
		result = "rejected"
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !pkg.CheckPasswordHash(password, u.PasswordHash) {
		result = "rejected"
		return "", ErrInvalidCredentials
	}

	sessionID, err := as.RandStringFunc(sessionIDLength)
	if err != nil {
		return "", err
	}

	token, err := signToken(as.jwtSecret, u.ID, sessionID, createdAt, as.ttl)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	sessionKey := sessionKeyPrefix + sessionID
	cmdSet := as.redisClient.Set(ctx, sessionKey, createdAt.Unix(), 0)
	if err := cmdSet.Err(); err != nil {
		return "", err
	}

	// add session to list of sessions
	cmdSAdd := as.redisClient.SAdd(ctx, tokensSetKey, sessionID)
	if err := cmdSAdd.Err(); err != nil {
		return "", err
	}

	result = "ok"
	return token, nil
}

// Logout revokes the session behind the token. Returns false when it was already gone.
func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	claims, err := parseToken(as.jwtSecret, token, time.Now)
	if err != nil {
		return false, err
	}

	sessionKey := sessionKeyPrefix + claims.ID
	cmd := as.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	createdAtUnix, err := strconv.ParseInt(cmd.Val(), 10, 64)
	if err != nil {
		return false, err
	}

	// the marker outlives every token signed for this session
	cmdSet := as.redisClient.Set(ctx, sessionKey, 0, as.ttl)
	if err := cmdSet.Err(); err != nil {
		return false, err
	}

	// remove session from the list of sessions
	cmdSRem := as.redisClient.SRem(ctx, tokensSetKey, claims.ID)
	if err := cmdSRem.Err(); err != nil {
		return false, err
	}

	return createdAtUnix > 0, nil
}

func (as *Service) Me(ctx context.Context, userID int) (*User, error) {
	return as.users.FindByID(ctx, userID)
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) int {
	cmd := as.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return 0
	}

	sessionIDs := cmd.Val()
	if len(sessionIDs) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return 0
	}

	log.Infof("=> auth service, scan and clean [%d sessions] start ...", len(sessionIDs))
	var toRemove []string
	for _, sessionID := range sessionIDs {
		sessionKey := sessionKeyPrefix + sessionID
		cmd := as.redisClient.Get(ctx, sessionKey)
		if err := cmd.Err(); err != nil {
			if errors.Is(err, redis.Nil) {
				// dangling set member
				toRemove = append(toRemove, sessionID)
				continue
			}
			log.Errorf("=> auth service, scan and clean session %s: %s", sessionID, err)
			continue
		}

		createdAtUnix, err := strconv.ParseInt(cmd.Val(), 10, 64)
		if err != nil {
			log.Errorf("=> auth service, scan and clean session %s: %s", sessionID, err)
			continue
		}

		// 0 marks a logged out session
		if createdAtUnix == 0 || time.Since(time.Unix(createdAtUnix, 0)) > as.ttl {
			log.Debugf("=>\twill clean the session: %s", sessionID)
			toRemove = append(toRemove, sessionID)
		}
	}

	removed := 0
	for _, sessionID := range toRemove {
		sessionKey := sessionKeyPrefix + sessionID
		if err := as.redisClient.Del(ctx, sessionKey).Err(); err != nil {
			log.Errorf("=> auth service, clean session %s: %s", sessionID, err)
			continue
		}

		// remove session from the list of sessions
		if err := as.redisClient.SRem(ctx, tokensSetKey, sessionID).Err(); err != nil {
			log.Errorf("=> auth service, clean session %s: %s", sessionID, err)
			continue
		}
		removed++
	}

	return removed
}
