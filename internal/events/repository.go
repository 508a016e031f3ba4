package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acm-vitap/registration-portal/internal/models"
)

var (
	// ErrNotFound is returned when an event id resolves to nothing.
	ErrNotFound = errors.New("event not found")
	// ErrDuplicateName is returned when a write violates the unique event name
	// constraint.
	ErrDuplicateName = errors.New("event name already exists")
)

const eventColumns = `id, event_name, require_team_name, min_members, max_members, active, created_at, updated_at`

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an event repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new event. Duplicate names map to ErrDuplicateName.
func (r *Repository) Create(ctx context.Context, e *models.Event) error {
	const q = `INSERT INTO events (id, event_name, require_team_name, min_members, max_members, active)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, e.EventName, e.RequireTeamName, e.MinMembers, e.MaxMembers, e.Active).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return mapConstraint(err)
}

// GetByID returns an event by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	var e models.Event
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&e.ID, &e.EventName, &e.RequireTeamName, &e.MinMembers, &e.MaxMembers, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all events, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`)
}

// ListActive returns active events, newest first, for the public chooser.
func (r *Repository) ListActive(ctx context.Context) ([]models.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE active = TRUE ORDER BY created_at DESC`)
}

func (r *Repository) list(ctx context.Context, q string) ([]models.Event, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.EventName, &e.RequireTeamName, &e.MinMembers, &e.MaxMembers, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Update overwrites all rule fields of an event. Duplicate names map to
// ErrDuplicateName.
func (r *Repository) Update(ctx context.Context, e *models.Event) error {
	const q = `UPDATE events
		SET event_name = $1, require_team_name = $2, min_members = $3, max_members = $4, active = $5, updated_at = NOW()
		WHERE id = $6`
	tag, err := r.pool.Exec(ctx, q, e.EventName, e.RequireTeamName, e.MinMembers, e.MaxMembers, e.Active, e.ID)
	if err != nil {
		return mapConstraint(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an event by ID and reports whether a row was deleted.
// Registrations for the event are left in place.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateName
	}
	return err
}
