package util

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// exitInterrupted is the conventional shell status for a process ended by SIGINT.
const exitInterrupted = 130

// SetupSignalHandler returns a context that is cancelled on the first SIGINT or SIGTERM.
// Prompts block on stdin and never observe the context, so a second signal
// exits the process. The returned stop function releases the signal channel.
func SetupSignalHandler(logger *slog.Logger) (context.Context, func()) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigCh:
			logger.Debug("received interrupt", "signal", sig.String())
			cancel()
		case <-done:
			return
		}

		select {
		case sig := <-sigCh:
			logger.Warn("interrupted again, exiting", "signal", sig.String())
			os.Exit(exitInterrupted)
		case <-done:
		}
	}()

	stop := func() {
		signal.Stop(sigCh)
		close(done)
		cancel()
	}

	return ctx, stop
}
