// Package aggregator collects findings and diagnostics produced by concurrent scan workers.
package aggregator

import (
	"cmp"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/brokenpkg/internal/core/domain"
)

// Aggregator is safe for concurrent use. Duplicate findings are recorded once.
type Aggregator struct {
	mu          sync.Mutex
	seen        map[uint64][]domain.Finding
	findings    []domain.Finding
	diagnostics []domain.Diagnostic
	packages    int
	files       int
}

// New creates an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		seen: make(map[uint64][]domain.Finding),
	}
}

// Add records findings, ignoring any already recorded.
func (a *Aggregator) Add(findings ...domain.Finding) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, f := range findings {
		key := findingKey(f)
		if slices.Contains(a.seen[key], f) {
			continue
		}
		a.seen[key] = append(a.seen[key], f)
		a.findings = append(a.findings, f)
	}
}

// Diagnose records a recoverable failure.
func (a *Aggregator) Diagnose(d domain.Diagnostic) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.diagnostics = append(a.diagnostics, d)
}

// CountPackage records that one package was processed.
func (a *Aggregator) CountPackage() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.packages++
}

// CountFile records that one owned file was processed.
func (a *Aggregator) CountFile() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.files++
}

// Report returns a deterministic snapshot of everything recorded so far.
// Findings are ordered by package, path, kind and subject.
func (a *Aggregator) Report() *domain.ScanReport {
	a.mu.Lock()
	defer a.mu.Unlock()

	findings := slices.Clone(a.findings)
	slices.SortFunc(findings, compareFindings)

	diagnostics := slices.Clone(a.diagnostics)
	slices.SortStableFunc(diagnostics, compareDiagnostics)

	return &domain.ScanReport{
		Findings:    findings,
		Diagnostics: diagnostics,
		Packages:    a.packages,
		Files:       a.files,
	}
}

func findingKey(f domain.Finding) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(f.Package.String())
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(f.Path)
	_, _ = d.Write([]byte{0, byte(f.Kind), 0})
	_, _ = d.WriteString(f.Subject())
	return d.Sum64()
}

func compareFindings(a, b domain.Finding) int {
	return cmp.Or(
		a.Package.Compare(b.Package),
		cmp.Compare(a.Path, b.Path),
		cmp.Compare(a.Kind, b.Kind),
		cmp.Compare(a.Subject(), b.Subject()),
	)
}

func compareDiagnostics(a, b domain.Diagnostic) int {
	return cmp.Or(
		a.Package.Compare(b.Package),
		cmp.Compare(a.Path, b.Path),
		cmp.Compare(a.Stage, b.Stage),
	)
}
