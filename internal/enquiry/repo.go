package enquiry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("enquiry not found")

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

const enquiryColumns = `id, full_name, phone_number, email, service_type, message, referer_url, submitted_url, created_at`

func (r *Repo) Create(ctx context.Context, e *Enquiry) (*Enquiry, error) {
	const q = `
INSERT INTO enquiries (full_name, phone_number, email, service_type, message, referer_url, submitted_url)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + enquiryColumns
	return scanEnquiry(r.pg.QueryRow(ctx, q,
		e.FullName, e.PhoneNumber, e.Email, e.ServiceType, e.Message, e.RefererURL, e.SubmittedURL,
	))
}

// List returns enquiries newest-first; a date range narrows by creation date (inclusive).
func (r *Repo) List(ctx context.Context, startDate, endDate *time.Time) ([]*Enquiry, error) {
	const base = `SELECT ` + enquiryColumns + ` FROM enquiries`
	var (
		rows pgx.Rows
		err  error
	)
	if startDate != nil && endDate != nil {
		rows, err = r.pg.Query(ctx, base+` WHERE created_at::date BETWEEN $1 AND $2 ORDER BY created_at DESC`, *startDate, *endDate)
	} else {
		rows, err = r.pg.Query(ctx, base+` ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pg.Exec(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll wipes the table and returns how many rows went.
func (r *Repo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pg.Exec(ctx, `DELETE FROM enquiries`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanEnquiry(row pgx.Row) (*Enquiry, error) {
	var e Enquiry
	err := row.Scan(
		&e.ID, &e.FullName, &e.PhoneNumber, &e.Email, &e.ServiceType,
		&e.Message, &e.RefererURL, &e.SubmittedURL, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
