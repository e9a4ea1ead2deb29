package pacman

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/zerr"
)

// OwnedFiles lists the non-directory paths registered to pkg (pacman -Qlq).
func (c *Client) OwnedFiles(ctx context.Context, pkg domain.Package) ([]domain.OwnedFile, error) {
	name := pkg.Name.String()

	out, err := c.query(ctx, "-Qlq", name)
	if err != nil {
		if isContextErr(err) {
			return nil, err
		}
		return nil, zerr.With(errors.Join(domain.ErrOwnershipQueryFailed, err), "package", name)
	}

	paths := lines(out)
	files := make([]domain.OwnedFile, 0, len(paths))
	for _, p := range paths {
		if strings.HasSuffix(p, "/") {
			continue
		}
		if !filepath.IsAbs(p) {
			return nil, zerr.With(zerr.With(domain.ErrRelativeOwnedPath, "path", p), "package", name)
		}
		files = append(files, domain.OwnedFile{Path: p, Package: pkg})
	}
	return files, nil
}
