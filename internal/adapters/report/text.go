package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/ui/output"
	"go.trai.ch/brokenpkg/internal/ui/style"
)

// TextRenderer writes a human-readable report grouped by package.
// Findings are marked with "!" and diagnostics with "~".
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render writes report to w.
func (r *TextRenderer) Render(w io.Writer, report *domain.ScanReport) error {
	var buf bytes.Buffer
	out := output.NewWithProfile(&buf, output.ColorProfile(w))

	yellow := termenv.RGBColor(string(style.Yellow))
	slate := termenv.RGBColor(string(style.Slate))

	for _, s := range sections(report) {
		_, _ = out.WriteString(out.String(s.name.String()).Bold().String() + "\n")
		for _, f := range s.findings {
			line := fmt.Sprintf("  %s %s: %s", style.Warning, f.Path, f.Detail())
			_, _ = out.WriteString(out.String(line).Foreground(yellow).String() + "\n")
		}
		for _, d := range s.diagnostics {
			line := fmt.Sprintf("  %s %s", style.Tilde, d.Message())
			_, _ = out.WriteString(out.String(line).Foreground(slate).String() + "\n")
		}
	}

	_, _ = out.WriteString(tally(out, report) + "\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func tally(out *termenv.Output, report *domain.ScanReport) string {
	scanned := fmt.Sprintf("%s, %s scanned",
		plural(report.Packages, "package"), plural(report.Files, "file"))

	diag := ""
	if n := len(report.Diagnostics); n > 0 {
		diag = ", " + plural(n, "diagnostic")
	}

	if !report.HasFindings() {
		line := fmt.Sprintf("%s no broken packages%s (%s)", style.Check, diag, scanned)
		return out.String(line).Foreground(termenv.RGBColor(string(style.Green))).String()
	}

	order, _ := report.FindingsByPackage()
	line := fmt.Sprintf("%s %s in %s%s (%s)",
		style.Cross, plural(len(report.Findings), "finding"), plural(len(order), "package"), diag, scanned)
	return out.String(line).Foreground(termenv.RGBColor(string(style.Red))).String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
