package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

const userColumns = `id, email, password_hash, role, first_name, last_name, is_active, otp_code, otp_created_at, created_at, updated_at`

func (r *Repo) FindByEmail(ctx context.Context, email string) (*User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`
	return scanUser(r.pg.QueryRow(ctx, q, email))
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	return scanUser(r.pg.QueryRow(ctx, q, id))
}

// Create inserts a user; email uniqueness is enforced by the DB constraint.
func (r *Repo) Create(ctx context.Context, email, passwordHash string, role Role, firstName, lastName string) (*User, error) {
	const q = `
INSERT INTO users (email, password_hash, role, first_name, last_name)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + userColumns
	u, err := scanUser(r.pg.QueryRow(ctx, q, email, passwordHash, role, firstName, lastName))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// SetOTP records a freshly issued reset code, overwriting any previous one.
// Both columns move together so the pair invariant holds.
func (r *Repo) SetOTP(ctx context.Context, email, code string, issuedAt time.Time) error {
	const q = `
UPDATE users
SET otp_code = $2, otp_created_at = $3, updated_at = now()
WHERE lower(email) = lower($1)`
	tag, err := r.pg.Exec(ctx, q, email, code, issuedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetPassword applies the new hash and consumes the code in one statement,
// so a successful reset can never leave the code behind.
func (r *Repo) ResetPassword(ctx context.Context, email, passwordHash string) error {
	const q = `
UPDATE users
SET password_hash = $2, otp_code = NULL, otp_created_at = NULL, updated_at = now()
WHERE lower(email) = lower($1)`
	tag, err := r.pg.Exec(ctx, q, email, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var (
		u         User
		otpCode   *string
		otpIssued *time.Time
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName,
		&u.IsActive, &otpCode, &otpIssued, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if otpCode != nil && otpIssued != nil {
		u.OTP = &OTPState{Code: *otpCode, IssuedAt: *otpIssued}
	}
	return &u, nil
}
