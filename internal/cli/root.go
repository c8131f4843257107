package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/PraveshMalvi/buyora/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Storage  string // overrides BUYORA_STORAGE_BACKEND when set
	Database string // overrides BUYORA_STORAGE_PATH when set

	// Config is loaded before any subcommand runs.
	Config config.Config

	// Environ replaces the process environment when loading Config.
	// Used by tests; nil reads os.Environ.
	Environ map[string]string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the buyora CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buyora",
		Short: "Buyora - product catalog browser",
		Long: `Browse a product catalog: filter by category and rating, sort by price,
keep favorites across sessions, and page through results.

Configuration is read from BUYORA_* environment variables; the global
--storage and --db flags override the storage settings.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return loadConfig(opts)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Storage, "storage", "", "favorites backend (sqlite|badger|memory)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "SQLite file or Badger directory for favorites")

	// Add subcommands
	cmd.AddCommand(NewViewCommand(opts))
	cmd.AddCommand(NewBrowseCommand(opts))
	cmd.AddCommand(NewCategoriesCommand(opts))
	cmd.AddCommand(NewFavoritesCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(opts *RootOptions) error {
	var (
		cfg config.Config
		err error
	)
	if opts.Environ != nil {
		cfg, err = config.LoadFrom(opts.Environ)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	if opts.Storage != "" {
		cfg.Storage.Backend = opts.Storage
	}
	if opts.Database != "" {
		cfg.Storage.Path = opts.Database
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}

	opts.Config = cfg
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
