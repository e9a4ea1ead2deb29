package ports

import "go.trai.ch/brokenpkg/internal/core/domain"

// SystemLayout discovers paths that are checked regardless of which package lists them.
//
//go:generate go run go.uber.org/mock/mockgen -source=layout.go -destination=mocks/mock_layout.go -package=mocks
type SystemLayout interface {
	// EnabledUnitLinks returns the symlinks directly inside the "*.target.*"
	// directories of the service-manager configuration roots.
	EnabledUnitLinks() ([]string, error)

	// StaleInterpreterDirs returns the library directories of current's major
	// version other than current's own.
	StaleInterpreterDirs(current domain.InterpreterVersion) ([]domain.InterpreterDir, error)
}
