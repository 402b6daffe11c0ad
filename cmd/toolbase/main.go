package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aryankumar/toolbase/internal/cli"
	"github.com/aryankumar/toolbase/internal/util"
)

func main() {
	// Setup signal handling for graceful shutdown
	ctx, stop := util.SetupSignalHandler(slog.Default())

	// Execute the CLI
	err := cli.Execute(ctx)
	stop()

	if err != nil {
		slog.Debug("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", util.FriendlyError(err))
		os.Exit(1)
	}
}
