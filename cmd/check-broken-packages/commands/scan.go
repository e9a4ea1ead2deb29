package commands

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan foreign packages for broken files",
		Args:  cobra.NoArgs,
		RunE:  c.runScan,
	}
	addScanFlags(cmd)
	return cmd
}

func addScanFlags(cmd *cobra.Command) {
	defaults := domain.DefaultScanOptions()

	cmd.Flags().String("pacman", defaults.Pacman, "Package manager binary to query")
	cmd.Flags().IntP("jobs", "j", defaults.Jobs, "Number of parallel workers")
	cmd.Flags().String("python-version", "", "Python version to compare extensions against (default: installed python)")
	cmd.Flags().StringSlice("unit-root", defaults.UnitRoots, "Service manager configuration roots")
	cmd.Flags().String("python-lib-root", defaults.InterpreterLibRoot, "Directory holding the python<version> library directories")
	cmd.Flags().Bool("no-sweep", false, "Skip enabled-unit links and python directories not listed by foreign packages")
	cmd.Flags().String("ld-so-conf", defaults.LdSoConf, "Dynamic linker configuration file")
	cmd.Flags().String("ld-so-cache", defaults.LdSoCache, "Dynamic linker cache file")
	cmd.Flags().StringSlice("lib-dir", defaults.TrustedLibDirs, "Default library directories of the dynamic linker")
	cmd.Flags().String("progress", string(defaults.Progress), "Progress display: auto, bar, or none")
	cmd.Flags().StringP("output", "o", string(defaults.Output), "Report format: text or yaml")
}

func (c *CLI) runScan(cmd *cobra.Command, _ []string) error {
	opts, err := scanOptions(cmd)
	if err != nil {
		return err
	}

	_, err = c.app.Scan(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return err
}

func scanOptions(cmd *cobra.Command) (domain.ScanOptions, error) {
	opts := domain.DefaultScanOptions()
	flags := cmd.Flags()

	opts.Pacman, _ = flags.GetString("pacman")
	opts.Jobs, _ = flags.GetInt("jobs")
	opts.UnitRoots, _ = flags.GetStringSlice("unit-root")
	opts.InterpreterLibRoot, _ = flags.GetString("python-lib-root")
	opts.SkipSweep, _ = flags.GetBool("no-sweep")
	opts.LdSoConf, _ = flags.GetString("ld-so-conf")
	opts.LdSoCache, _ = flags.GetString("ld-so-cache")
	opts.TrustedLibDirs, _ = flags.GetStringSlice("lib-dir")
	opts.LibraryPath = filepath.SplitList(os.Getenv("LD_LIBRARY_PATH"))

	if opts.Jobs < 1 {
		return opts, invalidOption("jobs", strconv.Itoa(opts.Jobs))
	}

	if v, _ := flags.GetString("python-version"); v != "" {
		version, err := domain.ParseInterpreterVersion(v)
		if err != nil {
			return opts, zerr.With(zerr.Wrap(err, domain.ErrInvalidOption.Error()), "option", "python-version")
		}
		opts.PythonVersion = version
	}

	progress, _ := flags.GetString("progress")
	switch mode := domain.ProgressMode(progress); mode {
	case domain.ProgressAuto, domain.ProgressBar, domain.ProgressNone:
		opts.Progress = mode
	default:
		return opts, invalidOption("progress", progress)
	}

	output, _ := flags.GetString("output")
	switch format := domain.OutputFormat(output); format {
	case domain.OutputText, domain.OutputYAML:
		opts.Output = format
	default:
		return opts, invalidOption("output", output)
	}

	return opts, nil
}

func invalidOption(name, value string) error {
	return zerr.With(zerr.With(domain.ErrInvalidOption, "option", name), "value", value)
}
