// Package location is the boundary to whatever can tell us where the user is.
package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/idilsaglam/jottings/internal/model"
)

var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrLocationUnavailable = errors.New("location unavailable")
)

// Permission is the answer to a permission request.
type Permission int

const (
	Denied Permission = iota
	Granted
)

func (p Permission) String() string {
	if p == Granted {
		return "granted"
	}
	return "denied"
}

// Provider hands out a single current coordinate on demand.
type Provider interface {
	RequestPermission(ctx context.Context) (Permission, error)
	CurrentCoordinate(ctx context.Context) (model.Coordinate, error)
}

// Acquire asks for permission and then for one fix, strictly in that order.
// A timeout <= 0 leaves the fix bounded only by ctx.
//
// A denied (or failed) permission request yields ErrPermissionDenied; any
// failure to produce a valid fix yields ErrLocationUnavailable wrapping
// the cause.
func Acquire(ctx context.Context, p Provider, timeout time.Duration) (model.Coordinate, error) {
	perm, err := p.RequestPermission(ctx)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	if perm != Granted {
		return model.Coordinate{}, ErrPermissionDenied
	}

	fixCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		fixCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	c, err := p.CurrentCoordinate(fixCtx)
	if err != nil {
		return model.Coordinate{}, errors.Join(ErrLocationUnavailable, err)
	}
	if err := c.Validate(); err != nil {
		return model.Coordinate{}, errors.Join(ErrLocationUnavailable, err)
	}
	return c, nil
}
