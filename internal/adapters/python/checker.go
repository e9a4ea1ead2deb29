// Package python checks compiled extension modules against the current interpreter version.
package python

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	// cpythonTag matches "cpython-312" style suffixes: one major digit, then the minor.
	cpythonTag = regexp.MustCompile(`\.cpython-([0-9])([0-9]+)`)
	// pypyTag matches "pypy39-pp73" style suffixes.
	pypyTag = regexp.MustCompile(`\.pypy([0-9])([0-9]+)-`)
	// libDirTag matches the versioned library directory, e.g. "python3.12".
	libDirTag = regexp.MustCompile(`^(?:python|pypy)([0-9]+)\.([0-9]+)$`)
)

var _ ports.InterpreterChecker = (*Checker)(nil)

// Checker implements ports.InterpreterChecker.
type Checker struct{}

// NewChecker creates a Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// CheckInterpreter reports file when its version tag names a major below current.
func (c *Checker) CheckInterpreter(
	file domain.OwnedFile,
	current domain.InterpreterVersion,
) ([]domain.Finding, error) {
	if current.IsZero() {
		return nil, zerr.With(domain.ErrInterpreterVersionUnavailable, "path", file.Path)
	}

	found, err := VersionTag(file.Path)
	if err != nil {
		return nil, err
	}

	if !found.OlderMajorThan(current) {
		return nil, nil
	}
	return []domain.Finding{domain.NewStaleInterpreterVersion(file, found, current)}, nil
}

// VersionTag extracts the interpreter version an extension module was built for.
// The filename tag wins; the versioned library directory is the fallback.
func VersionTag(path string) (domain.InterpreterVersion, error) {
	base := filepath.Base(path)
	for _, re := range []*regexp.Regexp{cpythonTag, pypyTag} {
		if m := re.FindStringSubmatch(base); m != nil {
			return versionOf(m[1], m[2])
		}
	}

	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		if m := libDirTag.FindStringSubmatch(part); m != nil {
			return versionOf(m[1], m[2])
		}
	}

	return domain.InterpreterVersion{}, zerr.With(domain.ErrVersionTagUnparsable, "path", path)
}

func versionOf(major, minor string) (domain.InterpreterVersion, error) {
	maj, err := strconv.Atoi(major)
	if err != nil {
		return domain.InterpreterVersion{}, zerr.With(domain.ErrVersionTagUnparsable, "tag", major+minor)
	}
	mnr, err := strconv.Atoi(minor)
	if err != nil {
		return domain.InterpreterVersion{}, zerr.With(domain.ErrVersionTagUnparsable, "tag", major+minor)
	}
	return domain.InterpreterVersion{Major: maj, Minor: mnr}, nil
}
