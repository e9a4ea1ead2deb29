package domain

import (
	"fmt"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// InterpreterVersion is a major.minor interpreter version.
type InterpreterVersion struct {
	Major int
	Minor int
}

// ParseInterpreterVersion parses strings such as "3.12", "3.12.7", "3.12.7-1" or "1:3.12.7-1".
func ParseInterpreterVersion(s string) (InterpreterVersion, error) {
	s = strings.TrimSpace(s)
	if _, release, found := strings.Cut(s, ":"); found {
		s = release
	}
	if release, _, found := strings.Cut(s, "-"); found {
		s = release
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return InterpreterVersion{}, zerr.With(ErrInvalidInterpreterVersion, "version", s)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return InterpreterVersion{}, zerr.With(ErrInvalidInterpreterVersion, "version", s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil || minor < 0 {
		return InterpreterVersion{}, zerr.With(ErrInvalidInterpreterVersion, "version", s)
	}

	return InterpreterVersion{Major: major, Minor: minor}, nil
}

// String returns the dotted representation of the version.
func (v InterpreterVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// IsZero reports whether the version is unset.
func (v InterpreterVersion) IsZero() bool {
	return v == InterpreterVersion{}
}

// OlderMajorThan reports whether v was built for a major version strictly below current.
func (v InterpreterVersion) OlderMajorThan(current InterpreterVersion) bool {
	return v.Major < current.Major
}

// InterpreterDir is a per-version interpreter library directory such as /usr/lib/python3.11.
// Version is zero when the directory name carries no minor version.
type InterpreterDir struct {
	Path    string
	Version InterpreterVersion
}
