package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"numerus/internal/numerology/models"
	"numerus/pkg/platform/sentinel"
)

//go:embed schema.sql
var schema string

// PostgresSource reads rule-set definitions stored as JSONB rows of the
// numerology_systems table.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource constructs a PostgreSQL-backed definition source.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Migrate creates the numerology_systems table if it does not exist.
func (s *PostgresSource) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate numerology_systems: %w", err)
	}
	return nil
}

func (s *PostgresSource) Load(ctx context.Context, id string) (*models.Definition, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT definition FROM numerology_systems WHERE id = $1`, id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("rule-set %q: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("load rule-set %q: %w", id, err)
	}
	var def models.Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, &models.MalformedRuleSetError{SystemID: id, Reason: "invalid json", Err: err}
	}
	return &def, nil
}

func (s *PostgresSource) List(ctx context.Context) ([]models.SystemInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(definition->>'name', '') FROM numerology_systems ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list rule-sets: %w", err)
	}
	defer rows.Close()

	var systems []models.SystemInfo
	for rows.Next() {
		var info models.SystemInfo
		if err := rows.Scan(&info.ID, &info.Name); err != nil {
			return nil, fmt.Errorf("scan rule-set: %w", err)
		}
		systems = append(systems, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rule-sets: %w", err)
	}
	return systems, nil
}

// Save inserts or replaces the definition stored under id.
func (s *PostgresSource) Save(ctx context.Context, id string, def *models.Definition) error {
	if def == nil {
		return fmt.Errorf("definition is required")
	}
	raw, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("encode rule-set %q: %w", id, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO numerology_systems (id, definition, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE
		SET definition = EXCLUDED.definition, updated_at = EXCLUDED.updated_at`,
		id, string(raw),
	)
	if err != nil {
		return fmt.Errorf("save rule-set %q: %w", id, err)
	}
	return nil
}

// Delete removes id. Deleting an unknown id returns sentinel.ErrNotFound.
func (s *PostgresSource) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM numerology_systems WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rule-set %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete rule-set %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("rule-set %q: %w", id, sentinel.ErrNotFound)
	}
	return nil
}
