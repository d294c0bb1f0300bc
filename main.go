package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stratusctl/stratus/cmd"
	"github.com/stratusctl/stratus/internal/menu"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	code := exitCode(err)

	// Interruption is already reported by the menu loop
	if err != nil && code != 130 {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	return code
}

// exitCode maps the command result to the process exit status. Interruption
// by signal reports 130 following the shell convention; any other failure
// is 1.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, menu.ErrInterrupted),
		errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
