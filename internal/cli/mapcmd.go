package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/jottings/internal/geo"
	"github.com/idilsaglam/jottings/internal/store"
	"github.com/idilsaglam/jottings/internal/ui"
)

// NewMapCommand creates the map command.
func NewMapCommand(rootOpts *RootOptions) *cobra.Command {
	var zoomIn, zoomOut int
	cmd := &cobra.Command{
		Use:   "map <id>",
		Short: "Show where a note was taken",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if zoomIn < 0 || zoomOut < 0 {
				return NewExitError(ExitUsage, "map: zoom steps must not be negative")
			}

			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireSchema(); err != nil {
				return err
			}

			it, err := a.store.Get(cmd.Context(), id)
			switch {
			case errors.Is(err, store.ErrNotFound):
				return WrapExitError(ExitFailure, fmt.Sprintf("map #%d", id), err)
			case err != nil:
				return WrapExitError(ExitFailure, "map", err)
			}
			c, ok := it.Coord()
			if !ok {
				return NewExitError(ExitFailure, fmt.Sprintf("map #%d: item has no location", id))
			}

			r := geo.NewRegion(c)
			for i := 0; i < zoomIn; i++ {
				r = r.ZoomIn()
			}
			for i := 0; i < zoomOut; i++ {
				r = r.ZoomOut()
			}

			w, t := cmd.OutOrStdout(), ui.Current()
			sw, ne := r.Bounds()
			ui.Panel(w, []string{
				ui.Cw(w, t.Title, ui.Truncate(it.Name, 60)),
				"",
				fmt.Sprintf("%s %s", ui.Cw(w, t.Success, t.SymPin), c),
				fmt.Sprintf("span    %.5f x %.5f (zoom %d)", r.LatitudeDelta, r.LongitudeDelta, r.Zoom()),
				fmt.Sprintf("bounds  %s .. %s", sw, ne),
				"",
				ui.Cw(w, t.Accent, r.OSMURL()),
			})
			return nil
		},
	}
	cmd.Flags().IntVar(&zoomIn, "zoom-in", 0, "halve the span n times")
	cmd.Flags().IntVar(&zoomOut, "zoom-out", 0, "double the span n times")
	return cmd
}
