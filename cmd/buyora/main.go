// Command buyora browses a product catalog from the terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/PraveshMalvi/buyora/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(cli.GetExitCode(err))
}
