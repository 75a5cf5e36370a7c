package location

import (
	"context"
	"fmt"
	"strings"

	"github.com/idilsaglam/jottings/internal/model"
)

// Static always grants permission and reports the same coordinate.
type Static struct {
	Coord model.Coordinate
}

func (s Static) RequestPermission(context.Context) (Permission, error) { return Granted, nil }

func (s Static) CurrentCoordinate(ctx context.Context) (model.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return model.Coordinate{}, err
	}
	return s.Coord, nil
}

// DeniedProvider refuses every permission request.
type DeniedProvider struct{}

func (DeniedProvider) RequestPermission(context.Context) (Permission, error) { return Denied, nil }

func (DeniedProvider) CurrentCoordinate(context.Context) (model.Coordinate, error) {
	return model.Coordinate{}, ErrPermissionDenied
}

// Funcs adapts plain functions to a Provider. A nil Permission func grants.
type Funcs struct {
	Permission func(ctx context.Context) (Permission, error)
	Coordinate func(ctx context.Context) (model.Coordinate, error)
}

func (f Funcs) RequestPermission(ctx context.Context) (Permission, error) {
	if f.Permission == nil {
		return Granted, nil
	}
	return f.Permission(ctx)
}

func (f Funcs) CurrentCoordinate(ctx context.Context) (model.Coordinate, error) {
	if f.Coordinate == nil {
		return model.Coordinate{}, ErrLocationUnavailable
	}
	return f.Coordinate(ctx)
}

// New builds a provider by name: "static" or "none".
func New(kind string, coord model.Coordinate) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "static", "":
		if err := coord.Validate(); err != nil {
			return nil, err
		}
		return Static{Coord: coord}, nil
	case "none", "denied":
		return DeniedProvider{}, nil
	}
	return nil, fmt.Errorf("unknown location provider %q (want static|none)", kind)
}
