package doctors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDoctorNotFound is returned when an id matches no roster row.
var ErrDoctorNotFound = errors.New("doctors: doctor not found")

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository reads and writes the doctors_config table.
type Repository struct {
	db DB
}

// NewRepository creates a roster repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, name, services_letters, schedule, is_active, paused_until`

// List returns the full roster ordered by id.
func (r *Repository) List(ctx context.Context) ([]Doctor, error) {
	rows, err := r.db.Query(ctx, `SELECT `+selectColumns+` FROM doctors_config ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("doctors: list: %w", err)
	}
	defer rows.Close()

	var list []Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.ServiceLetters, &d.Schedule, &d.IsActive, &d.PausedUntil); err != nil {
			return nil, fmt.Errorf("doctors: scan row: %w", err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("doctors: iterate rows: %w", err)
	}
	return list, nil
}

// Names returns the roster names ordered by id, for dropdown population.
func (r *Repository) Names(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM doctors_config ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("doctors: list names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("doctors: scan name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("doctors: iterate names: %w", err)
	}
	return names, nil
}

// Get returns a single roster row.
func (r *Repository) Get(ctx context.Context, id int64) (Doctor, error) {
	var d Doctor
	err := r.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM doctors_config WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.ServiceLetters, &d.Schedule, &d.IsActive, &d.PausedUntil)
	if errors.Is(err, pgx.ErrNoRows) {
		return Doctor{}, ErrDoctorNotFound
	}
	if err != nil {
		return Doctor{}, fmt.Errorf("doctors: get %d: %w", id, err)
	}
	return d, nil
}

// SetAvailability updates the availability columns of one row. Activate and
// shutdown pass a nil pausedUntil, clearing any pending pause.
func (r *Repository) SetAvailability(ctx context.Context, id int64, isActive bool, pausedUntil *time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE doctors_config SET is_active = $2, paused_until = $3, updated_at = now() WHERE id = $1`,
		id, isActive, pausedUntil)
	if err != nil {
		return fmt.Errorf("doctors: set availability %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDoctorNotFound
	}
	return nil
}
