package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/PraveshMalvi/buyora/internal/schedule"
	"github.com/PraveshMalvi/buyora/internal/session"
)

// FavoritesResult is the output of the favorites subcommands.
type FavoritesResult struct {
	IDs []int64 `json:"ids"`

	// Toggled and Favorite are set by toggle.
	Toggled  *int64 `json:"toggled,omitempty"`
	Favorite bool   `json:"favorite,omitempty"`
}

// NewFavoritesCommand creates the favorites command group.
func NewFavoritesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Inspect and change saved favorites",
	}
	cmd.AddCommand(newFavoritesListCommand(rootOpts))
	cmd.AddCommand(newFavoritesToggleCommand(rootOpts))
	cmd.AddCommand(newFavoritesClearCommand(rootOpts))
	return cmd
}

func newFavoritesListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List saved favorite product ids in the order they were added",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			favs, closeStore, err := openFavorites(rootOpts.Config.Storage, formatter.Logger())
			if err != nil {
				_ = formatter.Error("STORAGE_UNAVAILABLE", err.Error(), nil)
				return WrapExitError(ExitCommandError, "failed to open storage", err)
			}
			defer closeStore()

			result := FavoritesResult{IDs: favs.Load(commandContext(cmd)).IDs()}
			return formatter.Render(result, func(w io.Writer) {
				if len(result.IDs) == 0 {
					fmt.Fprintln(w, "No favorites saved.")
					return
				}
				for _, id := range result.IDs {
					fmt.Fprintln(w, id)
				}
			})
		},
	}
}

func newFavoritesToggleCommand(rootOpts *RootOptions) *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add a product to favorites, or remove it if already there",
		Long: `Toggle a product id in the saved favorites.

With --catalog, the id must name a product in that catalog.

Examples:
  buyora favorites toggle 4
  buyora favorites toggle 4 --catalog products.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			logger := formatter.Logger()
			ctx := commandContext(cmd)

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				_ = formatter.Error("INVALID_ID", fmt.Sprintf("product id must be an integer: %q", args[0]), nil)
				return WrapExitError(ExitCommandError, "invalid product id", err)
			}

			favs, closeStore, err := openFavorites(rootOpts.Config.Storage, logger)
			if err != nil {
				_ = formatter.Error("STORAGE_UNAVAILABLE", err.Error(), nil)
				return WrapExitError(ExitCommandError, "failed to open storage", err)
			}
			defer closeStore()

			var (
				added     bool
				ids       []int64
				sessionID string
			)
			if catalogPath != "" {
				cat, err := loadCatalog(formatter, catalogPath)
				if err != nil {
					return err
				}
				s := session.New(ctx, cat, favs, schedule.NewVirtual(), session.WithLogger(logger))
				if _, err := s.Product(id); err != nil {
					return reportCommandError(formatter, err)
				}
				added = s.ToggleFavorite(ctx, id)
				ids = s.Favorites().IDs()
				sessionID = s.ID()
			} else {
				set := favs.Load(ctx)
				added = set.Toggle(id)
				favs.Save(ctx, set)
				ids = set.IDs()
			}

			result := FavoritesResult{IDs: ids, Toggled: &id, Favorite: added}
			return formatter.RenderSession(sessionID, result, func(w io.Writer) {
				if added {
					fmt.Fprintf(w, "Added %d to favorites.\n", id)
				} else {
					fmt.Fprintf(w, "Removed %d from favorites.\n", id)
				}
			})
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file the id must belong to")
	return cmd
}

func newFavoritesClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Remove all saved favorites",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			ctx := commandContext(cmd)

			favs, closeStore, err := openFavorites(rootOpts.Config.Storage, formatter.Logger())
			if err != nil {
				_ = formatter.Error("STORAGE_UNAVAILABLE", err.Error(), nil)
				return WrapExitError(ExitCommandError, "failed to open storage", err)
			}
			defer closeStore()

			removed := favs.Load(ctx).Len()
			if err := favs.Clear(ctx); err != nil {
				_ = formatter.Error("STORAGE_UNAVAILABLE", err.Error(), nil)
				return WrapExitError(ExitCommandError, "failed to clear favorites", err)
			}

			result := FavoritesResult{IDs: []int64{}}
			return formatter.Render(result, func(w io.Writer) {
				fmt.Fprintf(w, "Cleared %d favorite(s).\n", removed)
			})
		},
	}
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
