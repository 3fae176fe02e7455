package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/krank/internal/telemetry/tracing"
	"github.com/2beens/krank/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrWrongCredentials = errors.New("wrong credentials")
)

type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UsersRepo struct {
	db *pgxpool.Pool
}

func NewUsersRepo(db *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{
		db: db,
	}
}

// Add stores a new user. An empty ID gets a random UUID.
func (r *UsersRepo) Add(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	span.SetAttributes(attribute.String("user.id", user.ID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4);`,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &user, nil
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getbyusername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var user User
	err = r.db.QueryRow(
		ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = $1;`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	span.SetAttributes(attribute.String("user.id", user.ID))
	return &user, nil
}

type userGetter interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Authenticate checks the credentials against the stored bcrypt hash.
// Unknown users and wrong passwords are indistinguishable to the caller.
func Authenticate(ctx context.Context, users userGetter, creds Credentials) (*User, error) {
	user, err := users.GetByUsername(ctx, creds.Username)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrWrongCredentials
	}
	if err != nil {
		return nil, err
	}

	if !pkg.CheckPasswordHash(creds.Password, user.PasswordHash) {
		return nil, ErrWrongCredentials
	}

	return user, nil
}
