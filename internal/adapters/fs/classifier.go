// Package fs classifies owned files by inspecting filesystem metadata and header bytes.
package fs

import (
	"bytes"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
	"go.trai.ch/zerr"
)

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// extensionPattern matches compiled extension modules carrying an interpreter version tag.
var extensionPattern = regexp.MustCompile(`\.(cpython-[0-9]+[^.]*|pypy[0-9]+-[^.]*)\.so$`)

// sitePackagesDirs name the directories that hold installed Python modules.
var sitePackagesDirs = []string{"site-packages", "dist-packages"}

var _ ports.FileClassifier = (*Classifier)(nil)

// Classifier implements ports.FileClassifier.
type Classifier struct {
	unitRoots []string
}

// NewClassifier creates a Classifier treating unitRoots as the service-manager configuration roots.
func NewClassifier(unitRoots []string) *Classifier {
	roots := make([]string, 0, len(unitRoots))
	for _, r := range unitRoots {
		roots = append(roots, filepath.Clean(r))
	}
	return &Classifier{unitRoots: roots}
}

// Classify returns the kind of path. A non-nil error accompanies FileKindIrrelevant
// when the file could not be inspected.
func (c *Classifier) Classify(path string) (domain.FileKind, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.FileKindIrrelevant, nil
		}
		return domain.FileKindIrrelevant, zerr.With(errors.Join(domain.ErrPathStatFailed, err), "path", path)
	}

	mode := info.Mode()
	if mode&iofs.ModeSymlink != 0 {
		if c.isEnabledUnitLink(path) {
			return domain.FileKindServiceLink, nil
		}
		return domain.FileKindIrrelevant, nil
	}

	if !mode.IsRegular() {
		return domain.FileKindIrrelevant, nil
	}

	// Only executable regular files are inspected further.
	if mode.Perm()&0o111 == 0 {
		return domain.FileKindIrrelevant, nil
	}

	if isExtensionModule(path) {
		return domain.FileKindPythonExtension, nil
	}

	isElf, err := hasElfMagic(path)
	if err != nil {
		return domain.FileKindIrrelevant, err
	}
	if isElf {
		return domain.FileKindElfObject, nil
	}
	return domain.FileKindIrrelevant, nil
}

// isEnabledUnitLink reports whether path sits directly in a "*.target.*" directory of a unit root.
func (c *Classifier) isEnabledUnitLink(path string) bool {
	dir := filepath.Dir(filepath.Clean(path))
	if !strings.Contains(filepath.Base(dir), ".target.") {
		return false
	}
	return slices.Contains(c.unitRoots, filepath.Dir(dir))
}

// isExtensionModule reports whether path is a version-tagged extension inside a site-packages tree.
func isExtensionModule(path string) bool {
	if !extensionPattern.MatchString(filepath.Base(path)) {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		if slices.Contains(sitePackagesDirs, part) {
			return true
		}
	}
	return false
}

func hasElfMagic(path string) (bool, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the package database
	if err != nil {
		return false, zerr.With(errors.Join(domain.ErrFileOpenFailed, err), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only

	header := make([]byte, len(elfMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, zerr.With(errors.Join(domain.ErrFileOpenFailed, err), "path", path)
	}
	return bytes.Equal(header, elfMagic), nil
}
