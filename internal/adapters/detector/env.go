// Package detector decides how live progress is displayed for the current environment.
package detector

import (
	"io"
	"os"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/ui/output"
)

// DetectEnvironment returns the progress mode suited to w.
// A bar is drawn only on an interactive terminal outside CI.
func DetectEnvironment(w io.Writer) domain.ProgressMode {
	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !output.IsTerminal(w) || isCI {
		return domain.ProgressNone
	}
	return domain.ProgressBar
}

// ResolveMode applies the user's flag to the auto-detected mode.
func ResolveMode(autoDetected, userFlag domain.ProgressMode) domain.ProgressMode {
	switch userFlag {
	case domain.ProgressBar, domain.ProgressNone:
		return userFlag
	default:
		return autoDetected
	}
}
