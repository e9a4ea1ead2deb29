package domain

import (
	"fmt"
	"strings"
)

// Stage identifies where in the scan a recoverable failure happened.
type Stage string

const (
	// StageOwnership is the per-package owned-file query.
	StageOwnership Stage = "ownership"
	// StageClassify is the per-file classification.
	StageClassify Stage = "classify"
	// StageCheck is the per-file validation check.
	StageCheck Stage = "check"
	// StageInterpreter is the current interpreter version lookup.
	StageInterpreter Stage = "interpreter"
	// StageSweep is the system-wide discovery of enabled-unit links and interpreter directories.
	StageSweep Stage = "sweep"
)

// Diagnostic records an inability to check something. It is not a Finding.
type Diagnostic struct {
	Package InternedString
	Path    string
	Stage   Stage
	Err     error
}

// Message returns a single-line description of the diagnostic.
func (d Diagnostic) Message() string {
	subject := d.Package.String()
	if d.Path != "" {
		subject = d.Path
	}
	if d.Err == nil {
		return fmt.Sprintf("%s: %s skipped", subject, d.Stage)
	}
	return fmt.Sprintf("%s: %s skipped: %s", subject, d.Stage, d.Reason())
}

// Reason returns the error text on a single line.
func (d Diagnostic) Reason() string {
	if d.Err == nil {
		return ""
	}
	return strings.ReplaceAll(d.Err.Error(), "\n", ": ")
}
