package domain

// FileKind is the closed set of categories a classified file can fall into.
type FileKind int

const (
	// FileKindIrrelevant short-circuits all further work for the file.
	FileKindIrrelevant FileKind = iota
	// FileKindElfObject is an ELF executable or shared library.
	FileKindElfObject
	// FileKindPythonExtension is a compiled extension module carrying an interpreter tag.
	FileKindPythonExtension
	// FileKindServiceLink is a symbolic link inside an enabled-units directory.
	FileKindServiceLink
)

// String returns the string representation of the FileKind.
func (k FileKind) String() string {
	switch k {
	case FileKindElfObject:
		return "elf"
	case FileKindPythonExtension:
		return "python-extension"
	case FileKindServiceLink:
		return "service-link"
	default:
		return "irrelevant"
	}
}

// NeedsCheck reports whether files of this kind go through a checker.
func (k FileKind) NeedsCheck() bool {
	return k != FileKindIrrelevant
}
