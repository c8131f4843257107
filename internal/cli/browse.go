package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/PraveshMalvi/buyora/internal/schedule"
	"github.com/PraveshMalvi/buyora/internal/session"
	"github.com/PraveshMalvi/buyora/internal/tui"
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <catalog.json>",
		Short: "Browse the catalog interactively",
		Long: `Open an interactive browser over the catalog.

Moving the cursor to the last row reveals the next page after the
configured load delay. Favorites are saved to the configured storage as
they are toggled. Press ? for key bindings.

Examples:
  buyora browse products.json
  BUYORA_REVEAL_PAGE_SIZE=6 buyora browse products.json --storage badger --db ./favs`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(commandContext(cmd), rootOpts, args[0], cmd)
		},
	}
}

func runBrowse(ctx context.Context, opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	if opts.Format == "json" {
		_ = formatter.Error("UNSUPPORTED_FORMAT", "browse is interactive; use view for JSON output", nil)
		return NewExitError(ExitCommandError, "browse does not support --format json")
	}
	logger := formatter.Logger()

	cat, err := loadCatalog(formatter, path)
	if err != nil {
		return err
	}

	prices, err := opts.Config.PriceFormatter()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid display settings", err)
	}

	favs, closeStore, err := openFavorites(opts.Config.Storage, logger)
	if err != nil {
		_ = formatter.Error("STORAGE_UNAVAILABLE", err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open storage", err)
	}
	defer closeStore()

	// program is assigned before the loop starts, so hooks running on the
	// loop always see it.
	var program *tea.Program
	notify := func(msg tea.Msg) {
		go program.Send(msg)
	}

	loop := schedule.NewLoop(
		schedule.WithLoopLogger(logger),
		schedule.WithAfterEvent(func(e schedule.Event) {
			// Commands already return a snapshot; only timers change
			// state behind the model's back.
			if e.Type == schedule.EventTypeTimer {
				notify(tui.RefreshMsg{})
			}
		}),
	)
	s := session.New(ctx, cat, favs, loop,
		session.WithLogger(logger),
		session.WithPageSize(opts.Config.Reveal.PageSize),
		session.WithLoadDelay(opts.Config.Reveal.LoadDelay),
		session.WithScrollToTop(func() { notify(tui.ScrollTopMsg{}) }),
	)

	program = tea.NewProgram(
		tui.New(ctx, tui.NewLoopBackend(loop, s), prices),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(loopCtx) }()

	_, runErr := program.Run()
	loop.Stop()
	if err := <-loopDone; err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("event loop stopped with error", "error", err)
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return WrapExitError(ExitFailure, fmt.Sprintf("browser failed for session %s", s.ID()), runErr)
	}
	return nil
}
