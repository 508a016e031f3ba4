package registrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acm-vitap/registration-portal/internal/models"
)

// ErrNotFound is returned when a team id resolves to nothing.
var ErrNotFound = errors.New("team not found")

const registrationColumns = `id, event_id, event_name, team_name, team_lead_name, team_lead_email, team_lead_phone, team_lead_reg_no, members, created_at, updated_at`

// TeamUpdate is the admin edit payload. Members nil means "leave unchanged".
type TeamUpdate struct {
	TeamName  *string
	LeadName  string
	LeadEmail string
	LeadPhone string
	LeadRegNo string
	Members   []models.Member
}

// Repository handles registration persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a registrations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a registration; id and timestamps come back server-assigned.
func (r *Repository) Create(ctx context.Context, reg *models.Registration) error {
	membersJSON, err := json.Marshal(reg.Members)
	if err != nil {
		return fmt.Errorf("marshal members: %w", err)
	}
	const q = `INSERT INTO registrations
		(id, event_id, event_name, team_name, team_lead_name, team_lead_email, team_lead_phone, team_lead_reg_no, members)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q,
		reg.EventID, reg.EventName, reg.TeamName,
		reg.TeamLeadName, reg.TeamLeadEmail, reg.TeamLeadPhone, reg.TeamLeadRegNo,
		membersJSON,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
}

// GetByID returns a registration by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	const q = `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	reg, err := scanRegistration(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return reg, err
}

// List returns all registrations, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Registration, error) {
	const q = `SELECT ` + registrationColumns + ` FROM registrations ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

// Search returns one page of registrations matching q (case-insensitive
// partial match across team name, lead fields and any member's name or
// email), newest first, plus the total match count. Empty q matches all.
func (r *Repository) Search(ctx context.Context, q string, skip, limit int) ([]models.Registration, int, error) {
	const where = ` WHERE $1 = ''
		OR team_name ILIKE '%' || $1 || '%'
		OR team_lead_name ILIKE '%' || $1 || '%'
		OR team_lead_email ILIKE '%' || $1 || '%'
		OR team_lead_reg_no ILIKE '%' || $1 || '%'
		OR EXISTS (
			SELECT 1 FROM jsonb_array_elements(members) AS m
			WHERE m->>'name' ILIKE '%' || $1 || '%' OR m->>'email' ILIKE '%' || $1 || '%'
		)`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`+where, q).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+registrationColumns+` FROM registrations`+where+` ORDER BY created_at DESC OFFSET $2 LIMIT $3`,
		q, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list, err := collectRegistrations(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update applies an admin edit and reports whether a row matched. Later edits
// do not re-run the registration rules.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, upd TeamUpdate) (bool, error) {
	var membersJSON []byte
	if upd.Members != nil {
		var err error
		membersJSON, err = json.Marshal(upd.Members)
		if err != nil {
			return false, fmt.Errorf("marshal members: %w", err)
		}
	}
	const q = `UPDATE registrations
		SET team_name = $1, team_lead_name = $2, team_lead_email = $3, team_lead_phone = $4, team_lead_reg_no = $5,
		    members = COALESCE($6, members), updated_at = NOW()
		WHERE id = $7`
	tag, err := r.pool.Exec(ctx, q, upd.TeamName, upd.LeadName, upd.LeadEmail, upd.LeadPhone, upd.LeadRegNo, membersJSON, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a registration by ID and reports whether a row was deleted.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Count returns the number of registrations, all-time.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n)
	return n, err
}

// CountCreatedBetween returns the number of registrations created in
// [from, to).
func (r *Repository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE created_at >= $1 AND created_at < $2`,
		from, to).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*models.Registration, error) {
	var reg models.Registration
	var membersJSON []byte
	err := row.Scan(
		&reg.ID, &reg.EventID, &reg.EventName, &reg.TeamName,
		&reg.TeamLeadName, &reg.TeamLeadEmail, &reg.TeamLeadPhone, &reg.TeamLeadRegNo,
		&membersJSON, &reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(membersJSON) > 0 {
		if err := json.Unmarshal(membersJSON, &reg.Members); err != nil {
			return nil, fmt.Errorf("unmarshal members: %w", err)
		}
	}
	return &reg, nil
}

func collectRegistrations(rows pgx.Rows) ([]models.Registration, error) {
	var list []models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *reg)
	}
	return list, rows.Err()
}
