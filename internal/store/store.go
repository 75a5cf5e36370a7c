// Package store is the SQLite-backed item store.
//
// A Store owns a single local database file with one items table. Every
// mutation runs in its own transaction and the pool is limited to one
// connection, so two writes never interleave at the engine level.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/jottings/internal/model"
)

// DefaultFileName is the database file used when none is configured.
const DefaultFileName = "shoppingList.db"

// Store provides durable CRUD over items.
type Store struct {
	db      *sql.DB
	variant model.Variant
	log     *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithVariant selects the table layout (default: notes).
func WithVariant(v model.Variant) Option {
	return func(s *Store) { s.variant = v }
}

// WithLogger sets the logger used for storage failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open creates or opens the database at path and initializes the schema.
//
// If the file can be opened but the table cannot be created, Open returns
// the store together with a *SchemaError so callers can still show an
// empty list. Any other error leaves no store behind.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	s := &Store{variant: model.VariantNotes, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if _, err := model.ParseVariant(string(s.variant)); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open store: connect: %w", err)
	}

	// SQLite has a single writer; one connection keeps the pragmas below
	// in effect and serializes transactions.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	s.db = db
	if err := s.Initialize(ctx); err != nil {
		return s, err
	}
	s.log.Debug("store opened", zap.String("path", path), zap.String("variant", string(s.variant)))
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Variant reports which table layout the store uses.
func (s *Store) Variant() model.Variant { return s.variant }

// Initialize ensures the items table exists. Safe to call on every open;
// existing rows are never touched.
func (s *Store) Initialize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaFor(s.variant)); err != nil {
		s.log.Error("create items table", zap.String("variant", string(s.variant)), zap.Error(err))
		return &SchemaError{Err: err}
	}
	return nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("execute %q: %w", p, err)
		}
	}
	return nil
}

// IsSchemaError reports whether err came from table creation.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
