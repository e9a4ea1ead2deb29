package domain

// ScanReport is the full result of one scan. It is built once and rendered once.
type ScanReport struct {
	Findings    []Finding
	Diagnostics []Diagnostic
	Packages    int
	Files       int
}

// HasFindings reports whether at least one Finding was recorded.
func (r *ScanReport) HasFindings() bool {
	return r != nil && len(r.Findings) > 0
}

// FindingsByPackage groups findings by owning package, preserving report order.
func (r *ScanReport) FindingsByPackage() ([]InternedString, map[InternedString][]Finding) {
	var order []InternedString
	grouped := make(map[InternedString][]Finding)
	if r == nil {
		return order, grouped
	}

	for _, f := range r.Findings {
		if _, seen := grouped[f.Package]; !seen {
			order = append(order, f.Package)
		}
		grouped[f.Package] = append(grouped[f.Package], f)
	}
	return order, grouped
}
