package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/PraveshMalvi/buyora/internal/catalog"
	"github.com/PraveshMalvi/buyora/internal/schedule"
	"github.com/PraveshMalvi/buyora/internal/session"
)

// ViewOptions holds flags for the view command.
type ViewOptions struct {
	*RootOptions
	Category      string
	MinRating     int
	Desc          bool
	FavoritesOnly bool
	Pages         int
}

// NewViewCommand creates the view command.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ViewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "view <catalog.json>",
		Short: "Print the filtered, sorted product list",
		Long: `Print one view of the catalog with the given filter applied.

The first page is shown; --pages N reveals N more pages as if the user
had scrolled to the end of the list N times. Favorites are read from the
configured storage.

Examples:
  buyora view products.json
  buyora view products.json --category Kitchen --min-rating 4 --desc
  buyora view products.json --favorites-only --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(commandContext(cmd), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", catalog.AllCategories, "show only this category")
	cmd.Flags().IntVar(&opts.MinRating, "min-rating", 0, "minimum rating (0-5)")
	cmd.Flags().BoolVar(&opts.Desc, "desc", false, "sort by price, highest first")
	cmd.Flags().BoolVar(&opts.FavoritesOnly, "favorites-only", false, "show only favorites")
	cmd.Flags().IntVar(&opts.Pages, "pages", 0, "additional pages to reveal")

	return cmd
}

func runView(ctx context.Context, opts *ViewOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := formatter.Logger()

	if opts.Pages < 0 {
		_ = formatter.Error("INVALID_FLAG", "--pages must not be negative", nil)
		return NewExitError(ExitCommandError, "--pages must not be negative")
	}

	cat, err := loadCatalog(formatter, path)
	if err != nil {
		return err
	}

	favs, closeStore, err := openFavorites(opts.Config.Storage, logger)
	if err != nil {
		_ = formatter.Error("STORAGE_UNAVAILABLE", err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open storage", err)
	}
	defer closeStore()

	clock := schedule.NewVirtual()
	s := session.New(ctx, cat, favs, clock,
		session.WithLogger(logger),
		session.WithPageSize(opts.Config.Reveal.PageSize),
		session.WithLoadDelay(opts.Config.Reveal.LoadDelay),
	)

	s.SetCategory(opts.Category)
	if err := s.SetMinRating(opts.MinRating); err != nil {
		return reportCommandError(formatter, err)
	}
	s.SetSortAscending(!opts.Desc)
	if opts.FavoritesOnly {
		s.ToggleFavoritesOnly()
	}

	for i := 0; i < opts.Pages; i++ {
		if !s.LoadMore() {
			break
		}
		clock.Advance(opts.Config.Reveal.LoadDelay)
	}

	prices, err := opts.Config.PriceFormatter()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid display settings", err)
	}

	snap := s.View()
	return formatter.RenderSession(s.ID(), snap, func(w io.Writer) {
		writeSnapshot(w, snap, prices)
	})
}

// writeSnapshot prints a snapshot as an aligned table.
func writeSnapshot(w io.Writer, snap session.Snapshot, prices *catalog.PriceFormatter) {
	f := snap.Filter
	fmt.Fprintf(w, "Category: %s | Min rating: %d | Sort: %s | Favorites only: %t\n",
		f.Category, f.MinRating, f.SortLabel(), f.FavoritesOnly)

	if len(snap.Visible) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING\tFAV")
		for _, r := range snap.Visible {
			fav := ""
			if r.IsFavorite {
				fav = "♥"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.Name, r.Category, prices.Format(r.Price), catalog.Stars(r.Rating), fav)
		}
		tw.Flush()
	} else {
		fmt.Fprintln(w, "No products match.")
	}

	fmt.Fprintf(w, "Showing %d of %d. %s\n", len(snap.Visible), snap.Total, snap.Status)
}

// reportCommandError prints a rejected session command and maps it to a
// command exit code.
func reportCommandError(f *OutputFormatter, err error) error {
	var ce *session.CommandError
	if errors.As(err, &ce) {
		_ = f.Error(string(ce.Code), ce.Message, map[string]string{ce.Field: ce.Value})
	} else {
		_ = f.Error("COMMAND_FAILED", err.Error(), nil)
	}
	return WrapExitError(ExitCommandError, "command rejected", err)
}

// newFormatter builds the formatter for a command. Diagnostics go to
// stderr so JSON output stays parseable.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
