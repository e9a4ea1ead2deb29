package ports

import "go.trai.ch/brokenpkg/internal/core/domain"

// Progress is an advisory observer of scan progress.
// Implementations must not block and must swallow their own failures.
//
//go:generate go run go.uber.org/mock/mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks
type Progress interface {
	// Start announces the number of packages that will be processed.
	Start(totalPackages int)
	// FileDone records that one owned file has been classified and checked.
	FileDone()
	// PackageDone records that every file of pkg has been processed.
	// err is non-nil when the package was skipped.
	PackageDone(pkg domain.Package, err error)
	// Finish tears down any live display.
	Finish()
}
