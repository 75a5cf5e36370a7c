package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get for unknown ids, and by NotFound for a
	// zero affected-row count.
	ErrNotFound = errors.New("item not found")
	// ErrMetadataMismatch means the metadata kind does not fit the store variant.
	ErrMetadataMismatch = errors.New("metadata does not match store variant")
)

// SchemaError is returned when the items table cannot be created.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string { return fmt.Sprintf("initialize schema: %v", e.Err) }
func (e *SchemaError) Unwrap() error { return e.Err }

// WriteError is returned when an insert, update or delete fails in the engine.
type WriteError struct {
	Op  string
	ID  int64
	Err error
}

func (e *WriteError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s item %d: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s item: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError is returned when a query fails in the engine.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return fmt.Sprintf("read items: %v", e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }

// NotFound maps an affected-row count of zero to ErrNotFound.
func NotFound(affected int64) error {
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
