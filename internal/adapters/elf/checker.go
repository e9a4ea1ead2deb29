// Package elf checks the dynamic library needs of ELF objects without executing them.
package elf

import (
	"debug/elf"
	"errors"
	"slices"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LinkageChecker = (*Checker)(nil)

// Checker implements ports.LinkageChecker on debug/elf.
type Checker struct {
	resolver ports.LibraryResolver
}

// NewChecker creates a Checker resolving needs through resolver.
func NewChecker(resolver ports.LibraryResolver) *Checker {
	return &Checker{resolver: resolver}
}

// CheckLinkage returns one finding per DT_NEEDED entry that resolves to no candidate,
// in declaration order. Objects without a dynamic section have no needs.
func (c *Checker) CheckLinkage(file domain.OwnedFile) ([]domain.Finding, error) {
	obj, needed, err := inspect(file.Path)
	if err != nil {
		return nil, err
	}

	var findings []domain.Finding
	var missing []string
	for _, need := range needed {
		if slices.Contains(missing, need) {
			continue
		}
		if _, ok := c.resolver.Resolve(need, obj); ok {
			continue
		}
		missing = append(missing, need)
		findings = append(findings, domain.NewUnresolvedLibrary(file, need))
	}
	return findings, nil
}

// inspect reads the identity and dynamic entries of the object at path.
func inspect(path string) (ports.LinkedObject, []string, error) {
	f, err := elf.Open(path)
	if err != nil {
		return ports.LinkedObject{}, nil, parseError(path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	needed, err := f.DynString(elf.DT_NEEDED)
	if err != nil {
		return ports.LinkedObject{}, nil, parseError(path, err)
	}
	rpath, err := f.DynString(elf.DT_RPATH)
	if err != nil {
		return ports.LinkedObject{}, nil, parseError(path, err)
	}
	runpath, err := f.DynString(elf.DT_RUNPATH)
	if err != nil {
		return ports.LinkedObject{}, nil, parseError(path, err)
	}

	obj := ports.LinkedObject{
		Path:    path,
		Class:   f.Class,
		Machine: f.Machine,
		RPath:   rpath,
		RunPath: runpath,
	}
	return obj, needed, nil
}

func parseError(path string, err error) error {
	return zerr.With(errors.Join(domain.ErrElfParseFailed, err), "path", path)
}
