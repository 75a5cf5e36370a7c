package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/jottings/internal/config"
	"github.com/idilsaglam/jottings/internal/ui"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Args:  usageArgs(cobra.NoArgs),
	}
	cmd.AddCommand(newConfigInitCommand(rootOpts))
	return cmd
}

func newConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults (and any root flags) filled in",
		Example: `  jottings config init
  jottings --config ~/.jottings.yaml --variant list config init`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.applyColor(); err != nil {
				return err
			}
			path := rootOpts.ConfigPath

			_, err := os.Stat(path)
			switch {
			case err == nil && !force:
				return NewExitError(ExitFailure, fmt.Sprintf("%s already exists (use --force to overwrite)", path))
			case err != nil && !errors.Is(err, os.ErrNotExist):
				return WrapExitError(ExitFailure, "config init", err)
			}

			cfg := config.DefaultConfig()
			if err := rootOpts.override(cfg); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return WrapExitError(ExitFailure, "config init", err)
			}
			ui.OK(cmd.OutOrStdout(), "wrote "+path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
