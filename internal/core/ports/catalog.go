// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/brokenpkg/internal/core/domain"
)

// PackageCatalog lists installed packages from the package database.
//
//go:generate go run go.uber.org/mock/mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type PackageCatalog interface {
	// ForeignPackages returns the installed packages not provided by the distribution repositories.
	// Any failure is reported as domain.ErrCatalogUnavailable and is fatal to the scan.
	ForeignPackages(ctx context.Context) ([]domain.Package, error)
}

// OwnershipResolver lists the files a package owns on disk.
type OwnershipResolver interface {
	// OwnedFiles returns the absolute non-directory paths owned by pkg.
	// A package owning nothing yields an empty slice and no error.
	OwnedFiles(ctx context.Context, pkg domain.Package) ([]domain.OwnedFile, error)
}

// InterpreterVersionSource reports the interpreter version considered canonical on the system.
type InterpreterVersionSource interface {
	// CurrentVersion returns the installed interpreter's major.minor version.
	CurrentVersion(ctx context.Context) (domain.InterpreterVersion, error)
}

// PathOwnerResolver looks up which installed packages own an arbitrary path.
type PathOwnerResolver interface {
	// OwnersOf returns the names of the packages owning path, or none when no package does.
	OwnersOf(ctx context.Context, path string) ([]string, error)
}
