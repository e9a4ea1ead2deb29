// Package systemd checks enabled-unit symlinks for dangling targets.
package systemd

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
	"go.trai.ch/zerr"
)

// MaxHops bounds the length of a followed link chain, matching the kernel's limit.
const MaxHops = 40

var _ ports.ServiceLinkChecker = (*Checker)(nil)

// Checker implements ports.ServiceLinkChecker.
type Checker struct{}

// NewChecker creates a Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// CheckServiceLink follows the link chain starting at file. A missing hop is a
// BrokenServiceLink finding carrying that hop's target; a regular file ends the chain.
func (c *Checker) CheckServiceLink(file domain.OwnedFile) ([]domain.Finding, error) {
	current := file.Path

	for range MaxHops {
		target, err := os.Readlink(current)
		if err != nil {
			return nil, zerr.With(errors.Join(domain.ErrLinkReadFailed, err), "path", current)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}

		info, err := os.Lstat(target)
		switch {
		case errors.Is(err, iofs.ErrNotExist):
			return []domain.Finding{domain.NewBrokenServiceLink(file, target)}, nil
		case err != nil:
			return nil, zerr.With(errors.Join(domain.ErrPathStatFailed, err), "path", target)
		case info.Mode()&iofs.ModeSymlink != 0:
			current = target
		case info.Mode().IsRegular():
			return nil, nil
		default:
			err := zerr.With(domain.ErrUnexpectedLinkTarget, "target", target)
			return nil, zerr.With(err, "mode", info.Mode().Type().String())
		}
	}

	return nil, zerr.With(domain.ErrLinkLoop, "path", file.Path)
}
