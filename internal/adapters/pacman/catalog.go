package pacman

import (
	"context"
	"errors"
	"regexp"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/zerr"
)

// packageNamePattern matches the characters pacman allows in package names.
var packageNamePattern = regexp.MustCompile(`^[a-zA-Z0-9@._+-]+$`)

// ForeignPackages lists packages not found in any sync database (pacman -Qqm).
// Output order is preserved.
func (c *Client) ForeignPackages(ctx context.Context) ([]domain.Package, error) {
	out, err := c.query(ctx, "-Qqm")
	if err != nil {
		if isContextErr(err) {
			return nil, err
		}
		return nil, errors.Join(domain.ErrCatalogUnavailable, err)
	}

	names := lines(out)
	pkgs := make([]domain.Package, 0, len(names))
	for _, name := range names {
		if !packageNamePattern.MatchString(name) {
			return nil, errors.Join(
				domain.ErrCatalogUnavailable,
				zerr.With(zerr.New("unexpected package catalog output"), "line", name),
			)
		}
		pkgs = append(pkgs, domain.NewForeignPackage(name))
	}
	return pkgs, nil
}
