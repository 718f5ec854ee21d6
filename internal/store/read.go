package store

import (
	"context"
	"fmt"

	"github.com/roach88/phpunitxml/internal/ir"
)

// Entry is one persisted setting.
type Entry struct {
	Name          string   `json:"name" yaml:"name"`
	Value         ir.Value `json:"value" yaml:"value"`
	ApplicationID string   `json:"application_id" yaml:"application_id"`
}

// Applications returns every recorded application.
// Results are ordered by seq ASC for deterministic replay.
func (s *Store) Applications(ctx context.Context) ([]Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, config_path, config_digest, seq
		FROM applications
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.ConfigPath, &app.ConfigDigest, &app.Seq); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return apps, nil
}

// IniSettings returns every persisted ini option as String values.
func (s *Store) IniSettings(ctx context.Context) ([]Entry, error) {
	return s.readEntries(ctx, "ini_settings", func(data string) (ir.Value, error) {
		return ir.String(data), nil
	})
}

// Constants returns every defined constant.
func (s *Store) Constants(ctx context.Context) ([]Entry, error) {
	return s.readEntries(ctx, "constants", unmarshalValue)
}

// Globals returns every global variable.
func (s *Store) Globals(ctx context.Context) ([]Entry, error) {
	return s.readEntries(ctx, "globals", unmarshalValue)
}

// readEntries reads one settings table ordered by name.
// table is always one of the package's own table names.
func (s *Store) readEntries(ctx context.Context, table string, decode func(string) (ir.Value, error)) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT name, value, application_id
		FROM %s
		ORDER BY name COLLATE BINARY ASC
	`, table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e    Entry
			data string
		)
		if err := rows.Scan(&e.Name, &data, &e.ApplicationID); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		if e.Value, err = decode(data); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", table, e.Name, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return entries, nil
}
