// Package presets reads starter assumption snapshots from the catalog database.
package presets

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Simplici0/bizcal/internal/planner"
)

// ErrNotFound is returned when no active preset has the requested slug.
var ErrNotFound = errors.New("preset not found")

// Preset is a named starting point for a plan.
type Preset struct {
	Slug        string                 `json:"slug"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Assumptions planner.AssumptionsDoc `json:"assumptions"`
}

// Store reads presets from SQLite.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database whose schema is already migrated.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// List returns every active preset ordered by name.
func (s *Store) List(ctx context.Context) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, name, description, assumptions_json
		FROM assumption_presets
		WHERE active = TRUE
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	defer rows.Close()

	presets := make([]Preset, 0)
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate presets: %w", err)
	}

	return presets, nil
}

// Get returns the active preset with the given slug.
func (s *Store) Get(ctx context.Context, slug string) (Preset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT slug, name, description, assumptions_json
		FROM assumption_presets
		WHERE slug = ? AND active = TRUE
	`, slug)

	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return p, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(sc scanner) (Preset, error) {
	var p Preset
	var assumptionsJSON string
	if err := sc.Scan(&p.Slug, &p.Name, &p.Description, &assumptionsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Preset{}, err
		}
		return Preset{}, fmt.Errorf("scan preset: %w", err)
	}
	if err := json.Unmarshal([]byte(assumptionsJSON), &p.Assumptions); err != nil {
		return Preset{}, fmt.Errorf("decode preset %s assumptions: %w", p.Slug, err)
	}
	return p, nil
}
