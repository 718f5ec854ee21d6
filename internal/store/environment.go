package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/phpunitxml/internal/ir"
	"github.com/roach88/phpunitxml/internal/runtime"
)

var _ runtime.Environment = (*Environment)(nil)

// Application records one application of a configuration's php section.
type Application struct {
	ID           string `json:"id" yaml:"id"`
	ConfigPath   string `json:"config_path" yaml:"config_path"`
	ConfigDigest string `json:"config_digest" yaml:"config_digest"`
	Seq          int64  `json:"seq" yaml:"seq"`
}

// Environment is a runtime.Environment persisted in the store. Writes are
// attributed to the application that created it.
type Environment struct {
	store *Store
	app   Application
}

// Begin records a new application of the configuration at path and returns
// the Environment to apply it through. The application ID is a UUIDv7 and
// seq is one past the highest recorded seq.
func (s *Store) Begin(ctx context.Context, path, digest string) (*Environment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin application: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) + 1 FROM applications").Scan(&seq); err != nil {
		return nil, fmt.Errorf("begin application: next seq: %w", err)
	}

	app := Application{
		ID:           uuid.Must(uuid.NewV7()).String(),
		ConfigPath:   path,
		ConfigDigest: digest,
		Seq:          seq,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO applications (id, config_path, config_digest, seq)
		VALUES (?, ?, ?, ?)
	`, app.ID, app.ConfigPath, app.ConfigDigest, app.Seq)
	if err != nil {
		return nil, fmt.Errorf("begin application: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("begin application: commit: %w", err)
	}

	return &Environment{store: s, app: app}, nil
}

// Application returns the application this environment writes as.
func (e *Environment) Application() Application {
	return e.app
}

// SetIni implements runtime.Environment using an upsert.
func (e *Environment) SetIni(ctx context.Context, name, value string) error {
	_, err := e.store.db.ExecContext(ctx, `
		INSERT INTO ini_settings (name, value, application_id)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			application_id = excluded.application_id
	`, name, value, e.app.ID)
	if err != nil {
		return fmt.Errorf("set ini %s: %w", name, err)
	}
	return nil
}

// Constant implements runtime.Environment.
func (e *Environment) Constant(ctx context.Context, name string) (ir.Value, bool, error) {
	var data string
	err := e.store.db.QueryRowContext(ctx, "SELECT value FROM constants WHERE name = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get constant %s: %w", name, err)
	}

	v, err := unmarshalValue(data)
	if err != nil {
		return nil, false, fmt.Errorf("get constant %s: %w", name, err)
	}
	return v, true, nil
}

// DefineConstant implements runtime.Environment.
// Uses ON CONFLICT(name) DO NOTHING - an existing constant is never replaced.
func (e *Environment) DefineConstant(ctx context.Context, name string, v ir.Value) (bool, error) {
	data, err := marshalValue(v)
	if err != nil {
		return false, fmt.Errorf("define constant %s: %w", name, err)
	}

	res, err := e.store.db.ExecContext(ctx, `
		INSERT INTO constants (name, value, application_id)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`, name, data, e.app.ID)
	if err != nil {
		return false, fmt.Errorf("define constant %s: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("define constant %s: %w", name, err)
	}
	return n == 1, nil
}

// SetGlobal implements runtime.Environment using an upsert.
func (e *Environment) SetGlobal(ctx context.Context, name string, v ir.Value) error {
	data, err := marshalValue(v)
	if err != nil {
		return fmt.Errorf("set global %s: %w", name, err)
	}

	_, err = e.store.db.ExecContext(ctx, `
		INSERT INTO globals (name, value, application_id)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			application_id = excluded.application_id
	`, name, data, e.app.ID)
	if err != nil {
		return fmt.Errorf("set global %s: %w", name, err)
	}
	return nil
}
