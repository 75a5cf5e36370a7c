package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/jottings/internal/location"
	"github.com/idilsaglam/jottings/internal/model"
	"github.com/idilsaglam/jottings/internal/store"
	"github.com/idilsaglam/jottings/internal/ui"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	var amount string
	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add an item (notes are tagged with the current location)",
		Example: `  jottings add Buy milk
  jottings --variant list add Milk --amount 2`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, rootOpts, strings.Join(args, " "), amount)
		},
	}
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount (list variant only)")
	return cmd
}

func runAdd(cmd *cobra.Command, opts *RootOptions, name, amount string) error {
	a, err := openApp(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireSchema(); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if err := model.ValidateName(name); err != nil {
		return WrapExitError(ExitUsage, "add", err)
	}

	var it model.Item
	switch a.cfg.Variant() {
	case model.VariantList:
		var meta model.Metadata
		if amount = strings.TrimSpace(amount); amount != "" {
			meta = model.Amount(amount)
		}
		it, err = a.list.Add(cmd.Context(), name, meta)
	default:
		if amount != "" {
			return NewExitError(ExitUsage, "add: --amount is only valid with --variant list")
		}
		it, err = a.list.AddAt(cmd.Context(), name, a.loc)
	}
	switch {
	case errors.Is(err, location.ErrPermissionDenied):
		return WrapExitError(ExitFailure, "add: note not saved", err)
	case errors.Is(err, location.ErrLocationUnavailable):
		return WrapExitError(ExitFailure, "add: could not get location", err)
	case err != nil:
		return WrapExitError(ExitFailure, "add", err)
	}

	ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%d", it.ID))
	return nil
}

// NewListCommand creates the ls command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireSchema(); err != nil {
				return err
			}

			items, err := a.list.Activate(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "list", err)
			}
			ui.Panel(cmd.OutOrStdout(), listLines(cmd, a.cfg.Variant(), items))
			return nil
		},
	}
}

func listLines(cmd *cobra.Command, v model.Variant, items []model.Item) []string {
	w, t := cmd.OutOrStdout(), ui.Current()

	title := "Jottings"
	if v == model.VariantList {
		title = "Shopping list"
	}
	lines := []string{
		fmt.Sprintf("%s  %s %d", ui.Cw(w, t.Title, title), ui.Cw(w, t.Accent, "Total"), len(items)),
		"",
	}
	if len(items) == 0 {
		lines = append(lines, ui.Cw(w, t.Muted, "no items"))
	}
	for _, it := range items {
		idx := ui.Cw(w, t.Muted, fmt.Sprintf("%3d.", it.ID))
		name := ui.Truncate(strings.ReplaceAll(it.Name, "\n", " "), 60)
		switch v {
		case model.VariantList:
			line := fmt.Sprintf("%s %s", idx, name)
			if amt, ok := it.AmountText(); ok && amt != "" {
				line += "  " + ui.Cw(w, ui.Amber, amt)
			}
			lines = append(lines, line)
		default:
			pin := ui.Cw(w, t.Muted, t.SymNoPin)
			if _, ok := it.Coord(); ok {
				pin = ui.Cw(w, t.Success, t.SymPin)
			}
			lines = append(lines, fmt.Sprintf("%s %s %s", idx, pin, name))
		}
	}
	if v == model.VariantNotes {
		lines = append(lines, "", ui.Cw(w, t.Muted, "Tip: `jottings map <id>` shows where a note was taken"))
	}
	return lines
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <name...>",
		Short: "Rename an item (its amount or location is kept)",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			name := strings.TrimSpace(strings.Join(args[1:], " "))
			if err := model.ValidateName(name); err != nil {
				return WrapExitError(ExitUsage, "edit", err)
			}

			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireSchema(); err != nil {
				return err
			}

			n, err := a.store.Update(cmd.Context(), id, name)
			if err != nil {
				return WrapExitError(ExitFailure, "edit", err)
			}
			if err := store.NotFound(n); err != nil {
				return WrapExitError(ExitFailure, fmt.Sprintf("edit #%d", id), err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("updated #%d", id))
			return nil
		},
	}
}

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an item (deleting a missing id is not an error)",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireSchema(); err != nil {
				return err
			}

			n, err := a.list.Delete(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitFailure, "rm", err)
			}
			if n == 0 {
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("#%d already gone", id))
				return nil
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed #%d", id))
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id < 1 {
		return 0, NewExitError(ExitUsage, "not a valid id: "+s)
	}
	return id, nil
}
