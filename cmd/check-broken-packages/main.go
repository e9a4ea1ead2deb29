// Package main is the entry point for check-broken-packages.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/brokenpkg/cmd/check-broken-packages/commands"
	"go.trai.ch/brokenpkg/internal/app"
	"go.trai.ch/brokenpkg/internal/core/domain"
	_ "go.trai.ch/brokenpkg/internal/wiring"
)

// Exit statuses.
const (
	exitClean    = 0
	exitFindings = 1
	exitFatal    = 2
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitFatal
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	// Diagnostics and errors share stderr with the progress bar.
	logs, _ := components.Logger.(commands.LogConfigurer)
	if w, ok := components.Logger.(interface{ SetOutput(io.Writer) }); ok {
		w.SetOutput(stderr)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App, logs)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrFindingsDetected) {
			return exitFindings
		}
		components.Logger.Error(err)
		return exitFatal
	}
	return exitClean
}
