// Package report renders scan reports for operators and machines.
package report

import (
	"slices"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
	"go.trai.ch/zerr"
)

// New returns the renderer for format.
func New(format domain.OutputFormat) (ports.ReportRenderer, error) {
	switch format {
	case domain.OutputText, "":
		return NewTextRenderer(), nil
	case domain.OutputYAML:
		return NewYAMLRenderer(), nil
	default:
		return nil, zerr.With(zerr.With(domain.ErrInvalidOption, "option", "output"), "value", string(format))
	}
}

// packageSection holds everything reported for one package.
type packageSection struct {
	name        domain.InternedString
	findings    []domain.Finding
	diagnostics []domain.Diagnostic
}

// sections groups findings and diagnostics by package, ordered by package name.
func sections(report *domain.ScanReport) []*packageSection {
	byName := make(map[domain.InternedString]*packageSection)
	section := func(name domain.InternedString) *packageSection {
		s, ok := byName[name]
		if !ok {
			s = &packageSection{name: name}
			byName[name] = s
		}
		return s
	}

	for _, f := range report.Findings {
		s := section(f.Package)
		s.findings = append(s.findings, f)
	}
	for _, d := range report.Diagnostics {
		s := section(d.Package)
		s.diagnostics = append(s.diagnostics, d)
	}

	out := make([]*packageSection, 0, len(byName))
	for _, s := range byName {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *packageSection) int {
		return a.name.Compare(b.name)
	})
	return out
}
