package report

import (
	"io"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// YAMLRenderer writes the report as a YAML document.
type YAMLRenderer struct{}

// NewYAMLRenderer creates a YAMLRenderer.
func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{}
}

// Document is the YAML shape of a scan report.
type Document struct {
	Packages    int                  `yaml:"packages"`
	Files       int                  `yaml:"files"`
	Findings    []DocumentFinding    `yaml:"findings"`
	Diagnostics []DocumentDiagnostic `yaml:"diagnostics"`
}

// DocumentFinding is one finding in a Document.
type DocumentFinding struct {
	Package string `yaml:"package"`
	Path    string `yaml:"path"`
	Kind    string `yaml:"kind"`
	Library string `yaml:"library,omitempty"`
	Found   string `yaml:"found,omitempty"`
	Current string `yaml:"current,omitempty"`
	Target  string `yaml:"target,omitempty"`
	Detail  string `yaml:"detail"`
}

// DocumentDiagnostic is one diagnostic in a Document.
type DocumentDiagnostic struct {
	Package string `yaml:"package"`
	Path    string `yaml:"path,omitempty"`
	Stage   string `yaml:"stage"`
	Error   string `yaml:"error,omitempty"`
}

// Render writes report to w.
func (r *YAMLRenderer) Render(w io.Writer, report *domain.ScanReport) error {
	doc := Document{
		Packages:    report.Packages,
		Files:       report.Files,
		Findings:    make([]DocumentFinding, 0, len(report.Findings)),
		Diagnostics: make([]DocumentDiagnostic, 0, len(report.Diagnostics)),
	}

	for _, f := range report.Findings {
		df := DocumentFinding{
			Package: f.Package.String(),
			Path:    f.Path,
			Kind:    f.Kind.String(),
			Library: f.Library,
			Target:  f.Target,
			Detail:  f.Detail(),
		}
		if f.Kind == domain.FindingStaleInterpreterVersion {
			df.Found = f.Found.String()
			df.Current = f.Current.String()
		}
		doc.Findings = append(doc.Findings, df)
	}

	for _, d := range report.Diagnostics {
		doc.Diagnostics = append(doc.Diagnostics, DocumentDiagnostic{
			Package: d.Package.String(),
			Path:    d.Path,
			Stage:   string(d.Stage),
			Error:   d.Reason(),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return zerr.Wrap(err, "failed to encode report")
	}
	if err := enc.Close(); err != nil {
		return zerr.Wrap(err, "failed to encode report")
	}
	return nil
}
