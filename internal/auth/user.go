package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habitflow/backend/internal/telemetry/tracing"
	"github.com/habitflow/backend/pkg"
)

const minPasswordLength = 8

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)

	at := strings.IndexByte(r.Email, '@')
	if at < 1 || at == len(r.Email)-1 || strings.ContainsAny(r.Email, " \t\n") {
		return fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	if len(r.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

func (r *UserRepo) Create(ctx context.Context, u *User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx, `
		INSERT INTO app_user (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, u.Email, u.Name, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if pkg.IsUniqueViolationError(err) {
		return ErrUserExists
	}
	return err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.find_by_email")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepo) FindByID(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.find_by_id")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepo) findOne(ctx context.Context, where string, arg any) (*User, error) {
	var u User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM app_user
	`+where, arg).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
