package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded schema files in name order. Each file is
// written to be safe to re-run (CREATE ... IF NOT EXISTS), so no version
// table is kept.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	names, err := migrationNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		stmts, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", path.Base(name), err)
		}
		if _, err := pool.Exec(ctx, string(stmts)); err != nil {
			return fmt.Errorf("apply %s: %w", path.Base(name), err)
		}
	}
	return nil
}

// migrationNames lists the embedded .sql files, sorted so the numeric
// prefixes (001_, 002_, ...) fix the order.
func migrationNames() ([]string, error) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
