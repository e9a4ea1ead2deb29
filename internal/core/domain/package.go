package domain

// Provenance records where an installed package came from.
type Provenance int

const (
	// ProvenanceNative marks a package shipped by the distribution's own repositories.
	ProvenanceNative Provenance = iota
	// ProvenanceForeign marks a package installed from any other source.
	ProvenanceForeign
	// ProvenanceUnowned marks the placeholder for paths no package owns.
	ProvenanceUnowned
)

// UnownedName is the package name findings about unowned paths are filed under.
const UnownedName = "(unowned)"

// String returns the string representation of the Provenance.
func (p Provenance) String() string {
	switch p {
	case ProvenanceForeign:
		return "foreign"
	case ProvenanceUnowned:
		return "unowned"
	default:
		return "native"
	}
}

// Package is an installed package as reported by the package catalog.
// It is immutable for the duration of a scan.
type Package struct {
	Name       InternedString
	Provenance Provenance
}

// NewForeignPackage creates a Package with foreign provenance.
func NewForeignPackage(name string) Package {
	return Package{
		Name:       NewInternedString(name),
		Provenance: ProvenanceForeign,
	}
}

// NewNativePackage creates a Package with native provenance.
func NewNativePackage(name string) Package {
	return Package{
		Name:       NewInternedString(name),
		Provenance: ProvenanceNative,
	}
}

// UnownedPackage returns the placeholder package for paths no package owns.
func UnownedPackage() Package {
	return Package{
		Name:       NewInternedString(UnownedName),
		Provenance: ProvenanceUnowned,
	}
}

// IsForeign reports whether the package is a candidate for dependency skew.
func (p Package) IsForeign() bool {
	return p.Provenance == ProvenanceForeign
}

// OwnedFile is an absolute path registered by the package manager as belonging to Package.
type OwnedFile struct {
	Path    string
	Package Package
}
