// Package legacy exposes the historical team documents imported from the old
// system. Read-only: there is no write path.
package legacy

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acm-vitap/registration-portal/internal/models"
)

// Repository reads legacy team documents.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a legacy repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all legacy documents, newest first.
func (r *Repository) List(ctx context.Context) ([]models.LegacyTeam, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, doc, created_at FROM legacy_teams ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.LegacyTeam
	for rows.Next() {
		var t models.LegacyTeam
		if err := rows.Scan(&t.ID, &t.Doc, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
