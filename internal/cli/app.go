package cli

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/jottings/internal/config"
	"github.com/idilsaglam/jottings/internal/listctl"
	"github.com/idilsaglam/jottings/internal/location"
	"github.com/idilsaglam/jottings/internal/logging"
	"github.com/idilsaglam/jottings/internal/store"
	"github.com/idilsaglam/jottings/internal/tui"
	"github.com/idilsaglam/jottings/internal/ui"
)

// app is everything a command needs, built from config plus root flags.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
	list  *listctl.Controller
	loc   location.Provider

	// schemaErr is set when the table could not be created. The TUI still
	// runs with an empty list; other commands fail.
	schemaErr error
}

func (o *RootOptions) config() (*config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "load config", err)
	}
	if err := o.override(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// override applies root flags on top of cfg and validates the result.
func (o *RootOptions) override(cfg *config.Config) error {
	if o.DBPath != "" {
		cfg.Store.Path = o.DBPath
	}
	if o.Variant != "" {
		cfg.Store.Variant = strings.ToLower(o.Variant)
	}
	if o.Theme != "" {
		cfg.UI.Theme = o.Theme
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitUsage, "invalid configuration", err)
	}
	return nil
}

func (o *RootOptions) applyColor() error {
	if o.Color && o.NoColor {
		return NewExitError(ExitUsage, "--color and --no-color are mutually exclusive")
	}
	ui.SetColorForcing(o.Color, o.NoColor)
	return nil
}

func openApp(ctx context.Context, o *RootOptions) (*app, error) {
	if err := o.applyColor(); err != nil {
		return nil, err
	}
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	ui.SetTheme(cfg.UI.Theme)

	log, err := logging.New(cfg.Logging, o.Verbose)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "init logging", err)
	}

	a := &app{cfg: cfg, log: log}
	a.loc, err = cfg.LocationProvider()
	if err != nil {
		_ = log.Sync()
		return nil, WrapExitError(ExitUsage, "location provider", err)
	}
	timeout, err := cfg.FixTimeout()
	if err != nil {
		_ = log.Sync()
		return nil, WrapExitError(ExitUsage, "location timeout", err)
	}

	log.Debug("opening store",
		zap.String("path", cfg.Store.Path),
		zap.String("variant", cfg.Store.Variant))
	a.store, err = store.Open(ctx, cfg.Store.Path,
		store.WithVariant(cfg.Variant()),
		store.WithLogger(log))
	switch {
	case err == nil:
	case store.IsSchemaError(err) && a.store != nil:
		a.schemaErr = err
	default:
		_ = log.Sync()
		return nil, WrapExitError(ExitFailure, "open store", err)
	}

	a.list = listctl.New(a.store,
		listctl.WithLogger(log),
		listctl.WithFixTimeout(timeout))
	return a, nil
}

// tuiDeps hands the interactive screens their collaborators. A schema
// failure becomes a notice instead of an error.
func (a *app) tuiDeps() tui.Deps {
	deps := tui.Deps{
		List:     a.list,
		Editor:   a.store,
		Location: a.loc,
		Variant:  a.cfg.Variant(),
		Log:      a.log,
	}
	if a.schemaErr != nil {
		deps.Notice = "Could not prepare storage, changes will not be saved"
	}
	return deps
}

// requireSchema fails non-interactive commands that cannot work without
// the items table.
func (a *app) requireSchema() error {
	if a.schemaErr != nil {
		return WrapExitError(ExitFailure, "open store", a.schemaErr)
	}
	return nil
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("close store", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}
