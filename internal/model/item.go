package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Item is the domain model for a jotting (or a shopping-list entry).
// ID is assigned by the store and never changes.
type Item struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Meta Metadata `json:"-"`
}

// Coord returns the item's coordinate, if it has one.
func (it Item) Coord() (Coordinate, bool) {
	c, ok := it.Meta.(Coordinate)
	return c, ok
}

// AmountText returns the item's amount, if it has one.
func (it Item) AmountText() (string, bool) {
	a, ok := it.Meta.(Amount)
	return string(a), ok
}

var (
	ErrEmptyName         = errors.New("name is empty")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// ValidateName rejects names that are empty once trimmed.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Metadata is the optional value captured with an item at creation time.
// It is one of Amount, Coordinate, or nil.
type Metadata interface {
	metadata()
}

// Amount is the free-form quantity of a shopping-list entry ("2", "500 g").
type Amount string

func (Amount) metadata() {}

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

func (Coordinate) metadata() {}

// Validate checks the pair is a real point on the globe.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return fmt.Errorf("%w: NaN component", ErrInvalidCoordinate)
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidCoordinate, c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidCoordinate, c.Longitude)
	}
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.5f, %.5f", c.Latitude, c.Longitude)
}

// Variant selects which metadata column set a deployment persists.
type Variant string

const (
	// VariantList stores an amount per entry.
	VariantList Variant = "list"
	// VariantNotes stores the coordinate where the note was taken.
	VariantNotes Variant = "notes"
)

// ParseVariant accepts "list" or "notes" (case-insensitive).
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantList, VariantNotes:
		return v, nil
	}
	return "", fmt.Errorf("unknown variant %q (want list|notes)", s)
}

// Accepts reports whether meta can be stored under this variant.
// A nil Metadata fits every variant.
func (v Variant) Accepts(meta Metadata) bool {
	switch meta.(type) {
	case nil:
		return true
	case Amount:
		return v == VariantList
	case Coordinate:
		return v == VariantNotes
	}
	return false
}
