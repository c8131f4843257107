package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool     `json:"valid"`
	Products   int      `json:"products"`
	Categories []string `json:"categories"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog.json>",
		Short: "Check a catalog file without browsing it",
		Long: `Check a catalog file against the catalog schema and the product rules.

The document must be a JSON array of products with an integer id, a
non-empty product_name and category, a non-negative price and a rating
between 0 and 5. Product ids must be unique.

Exit codes:
  0 - Catalog is valid
  1 - Catalog content is invalid
  2 - Catalog file could not be read`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cat, err := loadCatalog(formatter, path)
	if err != nil {
		return err
	}

	result := ValidationResult{
		Valid:      true,
		Products:   cat.Len(),
		Categories: cat.Categories(),
	}
	return formatter.Render(result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %s is valid: %d product(s) in %d categories\n",
			path, result.Products, len(result.Categories))
	})
}
