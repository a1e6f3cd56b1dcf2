package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-fractile/fractile/cmd/fractile/cmd"
	"github.com/go-fractile/fractile/fractal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.NewRoot().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if fe, ok := fractal.AsError(err); ok {
			os.Exit(fe.Kind.ExitCode())
		}
		os.Exit(1)
	}
}
