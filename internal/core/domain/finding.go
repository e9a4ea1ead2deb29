package domain

import "fmt"

// FindingKind is the closed set of brokenness categories.
type FindingKind int

const (
	// FindingUnresolvedLibrary is a declared library need that resolves to no candidate.
	FindingUnresolvedLibrary FindingKind = iota + 1
	// FindingStaleInterpreterVersion is an extension built for an older interpreter major.
	FindingStaleInterpreterVersion
	// FindingBrokenServiceLink is an enabled-unit symlink whose target does not exist.
	FindingBrokenServiceLink
	// FindingStaleInterpreterDirectory is a package owning files in the library
	// directory of an interpreter version other than the current one.
	FindingStaleInterpreterDirectory
)

// String returns the string representation of the FindingKind.
func (k FindingKind) String() string {
	switch k {
	case FindingUnresolvedLibrary:
		return "unresolved-library"
	case FindingStaleInterpreterVersion:
		return "stale-interpreter-version"
	case FindingBrokenServiceLink:
		return "broken-service-link"
	case FindingStaleInterpreterDirectory:
		return "stale-interpreter-directory"
	default:
		return "unknown"
	}
}

// SourceKind returns the FileKind a finding of this kind must originate from.
// Findings produced by the system sweep have no source file and report FileKindIrrelevant.
func (k FindingKind) SourceKind() FileKind {
	switch k {
	case FindingUnresolvedLibrary:
		return FileKindElfObject
	case FindingStaleInterpreterVersion:
		return FileKindPythonExtension
	case FindingBrokenServiceLink:
		return FileKindServiceLink
	default:
		return FileKindIrrelevant
	}
}

// Finding is a confirmed instance of brokenness for a specific owned file.
// Findings are never mutated after creation.
type Finding struct {
	Package InternedString
	Path    string
	Kind    FindingKind

	// Library is set for FindingUnresolvedLibrary.
	Library string
	// Found and Current are set for FindingStaleInterpreterVersion and
	// FindingStaleInterpreterDirectory.
	Found   InterpreterVersion
	Current InterpreterVersion
	// Target is set for FindingBrokenServiceLink.
	Target string
}

// NewUnresolvedLibrary creates a finding for a library need that cannot be resolved.
func NewUnresolvedLibrary(file OwnedFile, library string) Finding {
	return Finding{
		Package: file.Package.Name,
		Path:    file.Path,
		Kind:    FindingUnresolvedLibrary,
		Library: library,
	}
}

// NewStaleInterpreterVersion creates a finding for an extension built for an older interpreter.
func NewStaleInterpreterVersion(file OwnedFile, found, current InterpreterVersion) Finding {
	return Finding{
		Package: file.Package.Name,
		Path:    file.Path,
		Kind:    FindingStaleInterpreterVersion,
		Found:   found,
		Current: current,
	}
}

// NewBrokenServiceLink creates a finding for a dangling enabled-unit symlink.
func NewBrokenServiceLink(file OwnedFile, target string) Finding {
	return Finding{
		Package: file.Package.Name,
		Path:    file.Path,
		Kind:    FindingBrokenServiceLink,
		Target:  target,
	}
}

// NewStaleInterpreterDirectory creates a finding for pkg owning content of dir,
// the library directory of interpreter version found.
func NewStaleInterpreterDirectory(pkg Package, dir string, found, current InterpreterVersion) Finding {
	return Finding{
		Package: pkg.Name,
		Path:    dir,
		Kind:    FindingStaleInterpreterDirectory,
		Found:   found,
		Current: current,
	}
}

// IsStaleInterpreter reports whether the finding carries Found and Current versions.
func (k FindingKind) IsStaleInterpreter() bool {
	return k == FindingStaleInterpreterVersion || k == FindingStaleInterpreterDirectory
}

// Subject returns the kind-specific value the finding is about.
func (f Finding) Subject() string {
	switch f.Kind {
	case FindingUnresolvedLibrary:
		return f.Library
	case FindingStaleInterpreterVersion, FindingStaleInterpreterDirectory:
		return f.Found.String() + "<" + f.Current.String()
	case FindingBrokenServiceLink:
		return f.Target
	default:
		return ""
	}
}

// Detail returns a human-readable description of what is broken.
func (f Finding) Detail() string {
	switch f.Kind {
	case FindingUnresolvedLibrary:
		return fmt.Sprintf("missing library %s", f.Library)
	case FindingStaleInterpreterVersion:
		return fmt.Sprintf("built for python %s, current interpreter is %s", f.Found, f.Current)
	case FindingBrokenServiceLink:
		return fmt.Sprintf("link target %s does not exist", f.Target)
	case FindingStaleInterpreterDirectory:
		if f.Found.IsZero() {
			return fmt.Sprintf("files are ignored by the current interpreter %s", f.Current)
		}
		return fmt.Sprintf("files for python %s are ignored by the current interpreter %s", f.Found, f.Current)
	default:
		return "unknown finding"
	}
}
