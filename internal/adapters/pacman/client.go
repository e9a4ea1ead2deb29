// Package pacman queries the pacman package database for foreign packages,
// the files they own and the installed interpreter version.
package pacman

import (
	"context"
	"errors"
	"strings"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultBinary is the package manager executable looked up on PATH.
const DefaultBinary = "pacman"

// Client implements the package catalog, ownership and interpreter version ports.
type Client struct {
	runner ports.CommandRunner
	binary string
}

var (
	_ ports.PackageCatalog           = (*Client)(nil)
	_ ports.OwnershipResolver        = (*Client)(nil)
	_ ports.InterpreterVersionSource = (*Client)(nil)
)

// New creates a Client invoking binary through runner.
// An empty binary means DefaultBinary.
func New(runner ports.CommandRunner, binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{runner: runner, binary: binary}
}

// query runs the package manager and fails on a non-zero exit status.
func (c *Client) query(ctx context.Context, args ...string) (string, error) {
	res, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		err := zerr.With(domain.ErrCommandFailed, "exit_code", res.ExitCode)
		err = zerr.With(err, "args", strings.Join(args, " "))
		if msg := strings.TrimSpace(res.Stderr); msg != "" {
			err = zerr.With(err, "stderr", msg)
		}
		return "", err
	}
	return res.Stdout, nil
}

// lines splits output into trimmed, non-empty lines.
func lines(out string) []string {
	raw := strings.Split(out, "\n")
	result := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		result = append(result, l)
	}
	return result
}

// isContextErr reports whether err stems from cancellation.
func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
