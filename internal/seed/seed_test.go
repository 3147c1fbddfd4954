package seed

import (
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Simplici0/bizcal/internal/db"
	"github.com/Simplici0/bizcal/internal/migrations"
)

func openMigrated(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	database := openMigrated(t)
	starters := len(Starters())

	for i := 0; i < 10; i++ {
		stats, err := Run(database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != starters {
				t.Fatalf("expected %d inserts in first run, got %d", starters, stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 || stats.Updates != 0 {
			t.Fatalf("expected no writes in iteration %d, got %+v", i, stats)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM assumption_presets`, nil, starters)
	assertCount(t, database, `SELECT COUNT(*) FROM assumption_presets WHERE slug = ?`, "handmade-goods", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM assumption_presets WHERE slug = ? AND active = TRUE`, "consulting", 1)
}

func TestRunRestoresDriftedPreset(t *testing.T) {
	t.Parallel()

	database := openMigrated(t)
	if _, err := Run(database); err != nil {
		t.Fatalf("initial seed: %v", err)
	}

	if _, err := database.Exec(`UPDATE assumption_presets SET assumptions_json = '{}' WHERE slug = ?`, "consulting"); err != nil {
		t.Fatalf("corrupt preset: %v", err)
	}

	stats, err := Run(database)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if stats.Inserts != 0 || stats.Updates != 1 {
		t.Fatalf("expected a single update, got %+v", stats)
	}
}

func TestStartersAreValid(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, p := range Starters() {
		if seen[p.Slug] {
			t.Fatalf("duplicate starter slug %q", p.Slug)
		}
		seen[p.Slug] = true
		if _, err := p.Assumptions.Assumptions(); err != nil {
			t.Fatalf("starter %s: %v", p.Slug, err)
		}
	}
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}

func TestRunRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	defer database.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT assumptions_json FROM assumption_presets WHERE slug = ?")).
		WithArgs(Starters()[0].Slug).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	stats, err := Run(database)
	if err == nil || !strings.Contains(err.Error(), "disk I/O error") {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
	if stats != (Stats{}) {
		t.Fatalf("expected zero stats on failure, got %+v", stats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}
