package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"dirview/cmd/dirview/cli"
	"dirview/internal/errors"
)

// Entry point for the application
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(exitCode(err))
	}
}

// exitCode maps failures to process exit codes. A failing tool passes its
// own code through.
func exitCode(err error) int {
	var toolErr *errors.ToolError
	switch {
	case errors.As(err, &toolErr) && toolErr.Code() > 0:
		return toolErr.Code()
	case errors.IsInvalidConfig(err):
		return 3
	case errors.IsCanceled(err):
		return 130
	default:
		return 1
	}
}
