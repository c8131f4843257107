package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories <catalog.json>",
		Short: "List catalog categories in first-seen order",
		Long: `List the distinct categories of a catalog, in the order they first
appear. "All" is not a category; it is the filter value that shows
every category.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			cat, err := loadCatalog(formatter, args[0])
			if err != nil {
				return err
			}

			categories := cat.Categories()
			return formatter.Render(categories, func(w io.Writer) {
				for _, c := range categories {
					fmt.Fprintln(w, c)
				}
			})
		},
	}
}
