// File: cmd/reachctl/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/xkilldash9x/reachctl/cmd"
)

// Allows mocking os.Exit in tests.
var osExit = os.Exit

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx)
	stop()
	osExit(code)
}

// run executes the CLI and maps the outcome to an exit code. An interrupt
// is a clean exit.
func run(ctx context.Context) int {
	if err := cmd.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		return 1
	}
	return 0
}
