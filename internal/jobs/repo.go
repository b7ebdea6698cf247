package jobs

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
	ErrNotFound     = errors.New("job not found")
	ErrRefCodeTaken = errors.New("cargo reference number already exists")
)

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

const jobColumns = `id, cargo_type, receiver_name, contact_number, email, recipient_address,
recipient_country, commodity, number_of_packages, weight, volume, origin, destination,
cargo_ref_number, tracking_code, collection_date, time_of_departure, time_of_arrival, created_at`

// Create persists a new job, allocating its tracking code via the bounded
// insert-retry loop. A collision on the caller-supplied reference number is a
// caller-visible conflict, not a retry.
func (r *Repo) Create(ctx context.Context, j *Job) (*Job, error) {
	var created *Job
	_, err := allocateTracking(func(code string) error {
		out, err := r.insert(ctx, j, code)
		if err != nil {
			if isUniqueViolation(err, "jobs_tracking_code_key") {
				return errCodeTaken
			}
			if isUniqueViolation(err, "jobs_cargo_ref_number_key") {
				return ErrRefCodeTaken
			}
			return err
		}
		created = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repo) insert(ctx context.Context, j *Job, trackingCode string) (*Job, error) {
	const q = `
INSERT INTO jobs (cargo_type, receiver_name, contact_number, email, recipient_address,
	recipient_country, commodity, number_of_packages, weight, volume, origin, destination,
	cargo_ref_number, tracking_code, collection_date, time_of_departure, time_of_arrival)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING ` + jobColumns
	return scanJob(r.pg.QueryRow(ctx, q,
		j.CargoType, j.ReceiverName, j.ContactNumber, j.Email, j.RecipientAddress,
		j.RecipientCountry, j.Commodity, j.NumberOfPackages, j.Weight, j.Volume,
		j.Origin, j.Destination, j.CargoRefNumber, trackingCode, j.CollectionDate,
		j.TimeOfDeparture, j.TimeOfArrival,
	))
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	const q = `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 LIMIT 1`
	return scanJob(r.pg.QueryRow(ctx, q, id))
}

func (r *Repo) FindByTrackingCode(ctx context.Context, code string) (*Job, error) {
	const q = `SELECT ` + jobColumns + ` FROM jobs WHERE tracking_code = $1 LIMIT 1`
	return scanJob(r.pg.QueryRow(ctx, q, code))
}

func (r *Repo) List(ctx context.Context) ([]*Job, error) {
	const q = `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`
	rows, err := r.pg.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// UpdateFields are the caller-editable job attributes. The tracking code is
// deliberately absent: once assigned it never changes.
type UpdateFields struct {
	CargoType        *CargoType
	ReceiverName     *string
	ContactNumber    *string
	Email            *string
	RecipientAddress *string
	RecipientCountry *string
	Commodity        *string
	NumberOfPackages *int
	Weight           *float64
	Volume           *float64
	Origin           *string
	Destination      *string
	CollectionDate   *time.Time
	TimeOfDeparture  *string
	TimeOfArrival    *string
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, u UpdateFields) (*Job, error) {
	const q = `
UPDATE jobs
SET cargo_type = COALESCE($2, cargo_type),
    receiver_name = COALESCE($3, receiver_name),
    contact_number = COALESCE($4, contact_number),
    email = COALESCE($5, email),
    recipient_address = COALESCE($6, recipient_address),
    recipient_country = COALESCE($7, recipient_country),
    commodity = COALESCE($8, commodity),
    number_of_packages = COALESCE($9, number_of_packages),
    weight = COALESCE($10, weight),
    volume = COALESCE($11, volume),
    origin = COALESCE($12, origin),
    destination = COALESCE($13, destination),
    collection_date = COALESCE($14, collection_date),
    time_of_departure = COALESCE($15, time_of_departure),
    time_of_arrival = COALESCE($16, time_of_arrival)
WHERE id = $1
RETURNING ` + jobColumns
	j, err := scanJob(r.pg.QueryRow(ctx, q, id,
		u.CargoType, u.ReceiverName, u.ContactNumber, u.Email, u.RecipientAddress,
		u.RecipientCountry, u.Commodity, u.NumberOfPackages, u.Weight, u.Volume,
		u.Origin, u.Destination, u.CollectionDate, u.TimeOfDeparture, u.TimeOfArrival,
	))
	if err != nil {
		return nil, err
	}
	return j, nil
}

// Delete removes the job; its status updates go with it (FK ON DELETE CASCADE).
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pg.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateStatus appends a timeline entry; the job must exist (FK).
func (r *Repo) CreateStatus(ctx context.Context, s *StatusUpdate) (*StatusUpdate, error) {
	const q = `
INSERT INTO status_updates (job_id, status_content, status_date, status_time)
VALUES ($1, $2, $3, $4)
RETURNING id, job_id, status_content, status_date, status_time, created_at`
	out, err := scanStatus(r.pg.QueryRow(ctx, q, s.JobID, s.StatusContent, s.StatusDate, s.StatusTime))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// ListStatus returns status updates newest-first; jobID narrows to one job.
func (r *Repo) ListStatus(ctx context.Context, jobID *uuid.UUID) ([]*StatusUpdate, error) {
	const base = `SELECT id, job_id, status_content, status_date, status_time, created_at FROM status_updates`
	var (
		rows pgx.Rows
		err  error
	)
	if jobID != nil {
		rows, err = r.pg.Query(ctx, base+` WHERE job_id = $1 ORDER BY created_at DESC`, *jobID)
	} else {
		rows, err = r.pg.Query(ctx, base+` ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*StatusUpdate
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteStatus(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pg.Exec(ctx, `DELETE FROM status_updates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(
		&j.ID, &j.CargoType, &j.ReceiverName, &j.ContactNumber, &j.Email, &j.RecipientAddress,
		&j.RecipientCountry, &j.Commodity, &j.NumberOfPackages, &j.Weight, &j.Volume,
		&j.Origin, &j.Destination, &j.CargoRefNumber, &j.TrackingCode, &j.CollectionDate,
		&j.TimeOfDeparture, &j.TimeOfArrival, &j.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

func scanStatus(row pgx.Row) (*StatusUpdate, error) {
	var s StatusUpdate
	err := row.Scan(&s.ID, &s.JobID, &s.StatusContent, &s.StatusDate, &s.StatusTime, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// isUniqueViolation reports whether err is a unique-constraint violation,
// optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
