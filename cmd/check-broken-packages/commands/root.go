// Package commands implements the CLI commands for check-broken-packages.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/brokenpkg/internal/build"
	"go.trai.ch/brokenpkg/internal/core/domain"
)

// CLI represents the command line interface for check-broken-packages.
type CLI struct {
	app     Application
	logs    LogConfigurer
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Scan(ctx context.Context, opts domain.ScanOptions, stdout, stderr io.Writer) (*domain.ScanReport, error)
}

// LogConfigurer adjusts the process logger from command line flags.
type LogConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// New creates a new CLI instance with the given app. logs may be nil.
func New(a Application, logs LogConfigurer) *CLI {
	rootCmd := &cobra.Command{
		Use:   "check-broken-packages",
		Short: "Find foreign packages broken by system upgrades",
		Long: "Scans every foreign package for unresolved shared libraries, Python extensions " +
			"built for an older interpreter and dangling enabled-unit symlinks.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("log-format", "pretty", "Log format: pretty or json")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	c := &CLI{
		app:     a,
		logs:    logs,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.configureLogging

	// Scanning is the default action.
	addScanFlags(rootCmd)
	rootCmd.RunE = c.runScan

	rootCmd.AddCommand(c.newScanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) configureLogging(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("log-format")
	verbose, _ := cmd.Flags().GetBool("verbose")

	var json bool
	switch format {
	case "pretty":
	case "json":
		json = true
	default:
		return invalidOption("log-format", format)
	}

	if c.logs != nil {
		c.logs.SetJSON(json)
		c.logs.SetVerbose(verbose)
	}
	return nil
}
