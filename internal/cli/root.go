// Package cli wires config, logging, the store and the list controller
// into the jottings command tree.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/jottings/internal/config"
	"github.com/idilsaglam/jottings/internal/tui"
	"github.com/idilsaglam/jottings/internal/ui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DBPath     string
	Variant    string // notes | list
	Theme      string // classic | neon | mono
	Verbose    bool
	Color      bool
	NoColor    bool
}

// NewRootCommand creates the jottings command. Without a subcommand it
// opens the interactive list.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "jottings",
		Short: "Jottings - quick notes with a place attached",
		Long: `Jottings keeps short notes in a local SQLite file.

Run without arguments for the interactive list. In the notes variant every
new note is tagged with your current location and can be shown on a map.
In the list variant entries carry an amount instead.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}
	cmd.SetFlagErrorFunc(flagError)

	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", config.DefaultPath, "config file")
	pf.StringVar(&opts.DBPath, "db", "", "database file (overrides store.path)")
	pf.StringVar(&opts.Variant, "variant", "", "store variant: notes|list (overrides store.variant)")
	pf.StringVar(&opts.Theme, "theme", "", "output theme: classic|neon|mono")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&opts.Color, "color", false, "force colored output")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewMapCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// Execute runs the command tree with args and returns the exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}
	ui.Fail(stderr, err.Error())
	return ExitCode(err)
}

func runInteractive(cmd *cobra.Command, opts *RootOptions) error {
	a, err := openApp(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := tui.Run(a.tuiDeps()); err != nil {
		return WrapExitError(ExitFailure, "run interface", err)
	}
	return nil
}
