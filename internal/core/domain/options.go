package domain

import "runtime"

// ProgressMode selects how live progress is displayed.
type ProgressMode string

const (
	// ProgressAuto shows a bar only when stderr is a terminal.
	ProgressAuto ProgressMode = "auto"
	// ProgressBar always draws the bar.
	ProgressBar ProgressMode = "bar"
	// ProgressNone disables progress output.
	ProgressNone ProgressMode = "none"
)

// OutputFormat selects the report renderer.
type OutputFormat string

const (
	// OutputText renders a human-readable report.
	OutputText OutputFormat = "text"
	// OutputYAML renders a machine-readable YAML document.
	OutputYAML OutputFormat = "yaml"
)

// ScanOptions carries everything a scan derives from the command line.
type ScanOptions struct {
	// Pacman is the package manager binary queried for the catalog and ownership.
	Pacman string
	// Jobs is the worker pool size. Values below one mean runtime.NumCPU().
	Jobs int
	// PythonVersion overrides the detected interpreter version when non-zero.
	PythonVersion InterpreterVersion
	// UnitRoots are the service-manager configuration roots holding enabled-unit directories.
	UnitRoots []string
	// InterpreterLibRoot holds the per-version interpreter library directories.
	InterpreterLibRoot string
	// SkipSweep disables the system-wide pass over enabled-unit links and
	// interpreter directories that no foreign package lists.
	SkipSweep bool
	// LdSoConf is the dynamic linker configuration file.
	LdSoConf string
	// LdSoCache is the dynamic linker cache file.
	LdSoCache string
	// TrustedLibDirs are the loader's built-in default directories.
	TrustedLibDirs []string
	// LibraryPath mirrors LD_LIBRARY_PATH.
	LibraryPath []string
	Progress    ProgressMode
	Output      OutputFormat
}

// DefaultScanOptions returns the options matching a stock system.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		Pacman:             "pacman",
		Jobs:               runtime.NumCPU(),
		UnitRoots:          []string{"/etc/systemd/system", "/etc/systemd/user"},
		InterpreterLibRoot: "/usr/lib",
		LdSoConf:           "/etc/ld.so.conf",
		LdSoCache:          "/etc/ld.so.cache",
		TrustedLibDirs:     []string{"/lib", "/usr/lib", "/lib64", "/usr/lib64"},
		Progress:           ProgressAuto,
		Output:             OutputText,
	}
}

// Parallelism returns the effective worker pool size.
func (o ScanOptions) Parallelism() int {
	if o.Jobs < 1 {
		return runtime.NumCPU()
	}
	return o.Jobs
}
