package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/idilsaglam/jottings/internal/model"
)

// Add inserts one item and returns it with the id assigned on commit.
// The item is not visible to other callers until the commit succeeds.
func (s *Store) Add(ctx context.Context, name string, meta model.Metadata) (model.Item, error) {
	if err := model.ValidateName(name); err != nil {
		return model.Item{}, err
	}
	if !s.variant.Accepts(meta) {
		return model.Item{}, fmt.Errorf("%w: %T in %s store", ErrMetadataMismatch, meta, s.variant)
	}
	if c, ok := meta.(model.Coordinate); ok {
		if err := c.Validate(); err != nil {
			return model.Item{}, err
		}
	}

	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, insertStmt(s.variant), insertArgs(s.variant, name, meta)...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		s.log.Error("add item", zap.String("name", name), zap.Error(err))
		return model.Item{}, &WriteError{Op: "add", Err: err}
	}
	return model.Item{ID: id, Name: name, Meta: meta}, nil
}

// List returns every item in storage order. Callers that need a specific
// order must sort the result themselves.
func (s *Store) List(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx, selectStmt(s.variant))
	if err != nil {
		s.log.Error("list items", zap.Error(err))
		return nil, &ReadError{Err: err}
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		it, err := s.scan(rows)
		if err != nil {
			return nil, &ReadError{Err: err}
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		s.log.Error("list items", zap.Error(err))
		return nil, &ReadError{Err: err}
	}
	return items, nil
}

// Get returns a single item, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (model.Item, error) {
	row := s.db.QueryRowContext(ctx, selectStmt(s.variant)+" WHERE id = ?", id)
	it, err := s.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, ErrNotFound
	}
	if err != nil {
		return model.Item{}, &ReadError{Err: err}
	}
	return it, nil
}

// Update renames the item and reports how many rows changed. Zero means
// the id does not exist; no row is created. Metadata is never touched.
func (s *Store) Update(ctx context.Context, id int64, name string) (int64, error) {
	if err := model.ValidateName(name); err != nil {
		return 0, err
	}
	var affected int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE items SET name = ? WHERE id = ?;`, name, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		s.log.Error("update item", zap.Int64("id", id), zap.Error(err))
		return 0, &WriteError{Op: "update", ID: id, Err: err}
	}
	return affected, nil
}

// Delete removes the item if present. Deleting a missing id affects zero
// rows and is not an error.
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?;`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		s.log.Error("delete item", zap.Int64("id", id), zap.Error(err))
		return 0, &WriteError{Op: "delete", ID: id, Err: err}
	}
	return affected, nil
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scan(r scanner) (model.Item, error) {
	var (
		it   model.Item
		name sql.NullString
	)
	if s.variant == model.VariantList {
		var amount sql.NullString
		if err := r.Scan(&it.ID, &name, &amount); err != nil {
			return model.Item{}, err
		}
		if amount.Valid {
			it.Meta = model.Amount(amount.String)
		}
	} else {
		var lat, lon sql.NullFloat64
		if err := r.Scan(&it.ID, &name, &lat, &lon); err != nil {
			return model.Item{}, err
		}
		// Both or neither: a half-present pair is treated as no location.
		if lat.Valid && lon.Valid {
			it.Meta = model.Coordinate{Latitude: lat.Float64, Longitude: lon.Float64}
		}
	}
	it.Name = name.String
	return it, nil
}

func selectStmt(v model.Variant) string {
	if v == model.VariantList {
		return `SELECT id, name, amount FROM items`
	}
	return `SELECT id, name, latitude, longitude FROM items`
}

func insertStmt(v model.Variant) string {
	if v == model.VariantList {
		return `INSERT INTO items (name, amount) VALUES (?, ?);`
	}
	return `INSERT INTO items (name, latitude, longitude) VALUES (?, ?, ?);`
}

func insertArgs(v model.Variant, name string, meta model.Metadata) []any {
	if v == model.VariantList {
		var amount any
		if a, ok := meta.(model.Amount); ok {
			amount = string(a)
		}
		return []any{name, amount}
	}
	var lat, lon any
	if c, ok := meta.(model.Coordinate); ok {
		lat, lon = c.Latitude, c.Longitude
	}
	return []any{name, lat, lon}
}
