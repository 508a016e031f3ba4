package database

import (
	"strings"
	"testing"
)

func TestMigrationNames(t *testing.T) {
	names, err := migrationNames()
	if err != nil {
		t.Fatalf("migrationNames() error = %v", err)
	}
	if len(names) == 0 {
		t.Fatal("no embedded migrations")
	}
	if names[0] != "migrations/001_schema.sql" {
		t.Errorf("first migration = %q, want migrations/001_schema.sql", names[0])
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("migrations out of order: %q before %q", names[i-1], names[i])
		}
	}
	for _, name := range names {
		if !strings.HasSuffix(name, ".sql") {
			t.Errorf("unexpected migration file %q", name)
		}
	}
}
