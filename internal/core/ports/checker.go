package ports

import "go.trai.ch/brokenpkg/internal/core/domain"

// LinkageChecker validates dynamic library needs of ELF objects.
//
//go:generate go run go.uber.org/mock/mockgen -source=checker.go -destination=mocks/mock_checker.go -package=mocks
type LinkageChecker interface {
	// CheckLinkage returns one finding per declared library need that cannot be resolved.
	CheckLinkage(file domain.OwnedFile) ([]domain.Finding, error)
}

// InterpreterChecker validates the interpreter version of compiled extension modules.
type InterpreterChecker interface {
	// CheckInterpreter returns a finding when file was built for a major version below current.
	CheckInterpreter(file domain.OwnedFile, current domain.InterpreterVersion) ([]domain.Finding, error)
}

// ServiceLinkChecker validates enabled-unit symlinks.
type ServiceLinkChecker interface {
	// CheckServiceLink returns a finding when the link chain ends on a missing path.
	CheckServiceLink(file domain.OwnedFile) ([]domain.Finding, error)
}
