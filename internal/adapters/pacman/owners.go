package pacman

import (
	"context"
	"errors"
	"strings"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
	"go.trai.ch/zerr"
)

// noOwnerMessage is how pacman reports a path that belongs to no package.
const noOwnerMessage = "No package owns"

var _ ports.PathOwnerResolver = (*Client)(nil)

// OwnersOf lists the packages owning path (pacman -Qoq). A path owned by no
// package yields no names and no error.
func (c *Client) OwnersOf(ctx context.Context, path string) ([]string, error) {
	res, err := c.runner.Run(ctx, c.binary, "-Qoq", path)
	if err != nil {
		if isContextErr(err) {
			return nil, err
		}
		return nil, zerr.With(errors.Join(domain.ErrPathOwnerQueryFailed, err), "path", path)
	}
	if res.ExitCode != 0 {
		if strings.Contains(res.Stderr, noOwnerMessage) {
			return nil, nil
		}
		err := zerr.With(domain.ErrPathOwnerQueryFailed, "path", path)
		err = zerr.With(err, "exit_code", res.ExitCode)
		if msg := strings.TrimSpace(res.Stderr); msg != "" {
			err = zerr.With(err, "stderr", msg)
		}
		return nil, err
	}
	return lines(res.Stdout), nil
}
