package domain

import "go.trai.ch/zerr"

var (
	// ErrCatalogUnavailable is returned when the package catalog cannot be queried or parsed.
	ErrCatalogUnavailable = zerr.New("package catalog unavailable")

	// ErrFindingsDetected is returned when a scan completes with at least one finding.
	ErrFindingsDetected = zerr.New("broken packages detected")

	// ErrOwnershipQueryFailed is returned when the owned files of a package cannot be listed.
	ErrOwnershipQueryFailed = zerr.New("failed to list files owned by package")

	// ErrPathOwnerQueryFailed is returned when the owners of a path cannot be looked up.
	ErrPathOwnerQueryFailed = zerr.New("failed to look up packages owning path")

	// ErrRelativeOwnedPath is returned when the package manager reports a non-absolute path.
	ErrRelativeOwnedPath = zerr.New("owned path is not absolute")

	// ErrCommandFailed is returned when an external command exits with a non-zero status.
	ErrCommandFailed = zerr.New("external command failed")

	// ErrCommandNotFound is returned when an external command cannot be located.
	ErrCommandNotFound = zerr.New("external command not found")

	// ErrInterpreterVersionUnavailable is returned when the current interpreter version is unknown.
	ErrInterpreterVersionUnavailable = zerr.New("current interpreter version unavailable")

	// ErrInvalidInterpreterVersion is returned when a version string cannot be parsed.
	ErrInvalidInterpreterVersion = zerr.New("invalid interpreter version")

	// ErrVersionTagUnparsable is returned when an extension module carries no usable version tag.
	ErrVersionTagUnparsable = zerr.New("cannot parse interpreter version tag")

	// ErrFileOpenFailed is returned when a file cannot be opened for inspection.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrElfParseFailed is returned when a file with ELF magic cannot be parsed.
	ErrElfParseFailed = zerr.New("failed to parse ELF object")

	// ErrLinkReadFailed is returned when a symbolic link cannot be read.
	ErrLinkReadFailed = zerr.New("failed to read symbolic link")

	// ErrLinkLoop is returned when a symbolic link chain does not terminate.
	ErrLinkLoop = zerr.New("too many levels of symbolic links")

	// ErrUnexpectedLinkTarget is returned when a link chain ends on something other than a regular file.
	ErrUnexpectedLinkTarget = zerr.New("unexpected file type at link target")

	// ErrLinkerCacheInvalid is returned when the dynamic linker cache has an unknown layout.
	ErrLinkerCacheInvalid = zerr.New("invalid dynamic linker cache")

	// ErrUnknownCheck is returned when a file kind has no associated checker.
	ErrUnknownCheck = zerr.New("no checker for file kind")

	// ErrInvalidOption is returned when a command line option has an unsupported value.
	ErrInvalidOption = zerr.New("invalid option")
)
