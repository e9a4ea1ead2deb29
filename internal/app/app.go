// Package app implements the application layer for check-broken-packages.
package app

import (
	"context"
	"fmt"
	"io"

	"go.trai.ch/brokenpkg/internal/adapters/detector"
	"go.trai.ch/brokenpkg/internal/adapters/elf"
	"go.trai.ch/brokenpkg/internal/adapters/fs"
	"go.trai.ch/brokenpkg/internal/adapters/ldso"
	"go.trai.ch/brokenpkg/internal/adapters/pacman"
	"go.trai.ch/brokenpkg/internal/adapters/progress"
	"go.trai.ch/brokenpkg/internal/adapters/report"
	"go.trai.ch/brokenpkg/internal/adapters/tui"
	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
	"go.trai.ch/brokenpkg/internal/engine/aggregator"
	"go.trai.ch/brokenpkg/internal/engine/scheduler"
	"go.trai.ch/brokenpkg/internal/engine/sweep"
	"go.trai.ch/zerr"
)

// Pipeline holds the adapters a single scan runs through.
// Most of them depend on ScanOptions and are therefore built per scan.
// A Pipeline without Layout skips the system sweep.
type Pipeline struct {
	Catalog     ports.PackageCatalog
	Ownership   ports.OwnershipResolver
	Owners      ports.PathOwnerResolver
	Layout      ports.SystemLayout
	Versions    ports.InterpreterVersionSource
	Classifier  ports.FileClassifier
	Linkage     ports.LinkageChecker
	Interpreter ports.InterpreterChecker
	Services    ports.ServiceLinkChecker
	Progress    ports.Progress
	Renderer    ports.ReportRenderer
}

// PipelineFactory builds the Pipeline for one scan. progressOut is where live progress is drawn.
type PipelineFactory func(opts domain.ScanOptions, progressOut io.Writer) (*Pipeline, error)

// outputSetter is implemented by loggers whose destination can be redirected.
type outputSetter interface {
	SetOutput(w io.Writer)
}

// App represents the main application logic.
type App struct {
	runner      ports.CommandRunner
	logger      ports.Logger
	interpreter ports.InterpreterChecker
	services    ports.ServiceLinkChecker
	pipeline    PipelineFactory
}

// New creates a new App instance.
func New(
	runner ports.CommandRunner,
	log ports.Logger,
	interpreter ports.InterpreterChecker,
	services ports.ServiceLinkChecker,
) *App {
	a := &App{
		runner:      runner,
		logger:      log,
		interpreter: interpreter,
		services:    services,
	}
	a.pipeline = a.defaultPipeline
	return a
}

// WithPipeline replaces the pipeline factory.
// This is primarily used for testing to inject mock adapters.
func (a *App) WithPipeline(factory PipelineFactory) *App {
	a.pipeline = factory
	return a
}

// Scan runs one full consistency scan and writes the rendered report to stdout.
// It returns domain.ErrFindingsDetected when the report contains findings; any other
// error means the scan could not be completed.
func (a *App) Scan(ctx context.Context, opts domain.ScanOptions, stdout, stderr io.Writer) (*domain.ScanReport, error) {
	p, err := a.pipeline(opts, stderr)
	if err != nil {
		return nil, err
	}

	pkgs, err := p.Catalog.ForeignPackages(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Debug(fmt.Sprintf("scanning %d foreign packages with %d workers", len(pkgs), opts.Parallelism()))

	current := a.interpreterVersion(ctx, p, opts)

	agg := aggregator.New()
	sched := scheduler.NewScheduler(p.Ownership, p.Classifier, scheduler.Checkers{
		Linkage:     p.Linkage,
		Interpreter: p.Interpreter,
		Services:    p.Services,
	}, a.logger)

	runOpts := scheduler.RunOptions{Parallelism: opts.Parallelism(), Current: current}
	if err := sched.Run(ctx, pkgs, runOpts, agg, p.Progress); err != nil {
		return nil, zerr.Wrap(err, "scan interrupted")
	}

	if !opts.SkipSweep && p.Layout != nil {
		sw := sweep.New(p.Layout, p.Owners, p.Services, a.logger)
		sweepOpts := sweep.Options{Parallelism: opts.Parallelism(), Current: current, Foreign: pkgs}
		if err := sw.Run(ctx, sweepOpts, agg); err != nil {
			return nil, zerr.Wrap(err, "scan interrupted")
		}
	}

	result := agg.Report()
	if err := p.Renderer.Render(stdout, result); err != nil {
		return result, zerr.Wrap(err, "failed to render report")
	}

	if result.HasFindings() {
		return result, domain.ErrFindingsDetected
	}
	return result, nil
}

// interpreterVersion returns the version extensions are compared against.
// A lookup failure is logged once and yields the zero version.
func (a *App) interpreterVersion(
	ctx context.Context,
	p *Pipeline,
	opts domain.ScanOptions,
) domain.InterpreterVersion {
	if !opts.PythonVersion.IsZero() {
		return opts.PythonVersion
	}

	current, err := p.Versions.CurrentVersion(ctx)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("python extension checks disabled: %s", err))
		return domain.InterpreterVersion{}
	}
	a.logger.Debug("current python version " + current.String())
	return current
}

func (a *App) defaultPipeline(opts domain.ScanOptions, progressOut io.Writer) (*Pipeline, error) {
	renderer, err := report.New(opts.Output)
	if err != nil {
		return nil, err
	}

	client := pacman.New(a.runner, opts.Pacman)
	resolver := ldso.NewResolver(ldso.Config{
		LdSoConf:    opts.LdSoConf,
		LdSoCache:   opts.LdSoCache,
		TrustedDirs: opts.TrustedLibDirs,
		LibraryPath: opts.LibraryPath,
	}, a.logger)

	var observer ports.Progress = progress.Noop{}
	mode := detector.ResolveMode(detector.DetectEnvironment(progressOut), opts.Progress)
	if mode == domain.ProgressBar {
		display := tui.NewDisplay(progressOut)
		observer = progress.NewReporter(display, display)
		// Log lines share the terminal with the bar, so they are printed above it.
		if o, ok := a.logger.(outputSetter); ok {
			o.SetOutput(display)
		}
	}

	return &Pipeline{
		Catalog:     client,
		Ownership:   client,
		Owners:      client,
		Layout:      fs.NewLayout(opts.UnitRoots, opts.InterpreterLibRoot),
		Versions:    client,
		Classifier:  fs.NewClassifier(opts.UnitRoots),
		Linkage:     elf.NewChecker(resolver),
		Interpreter: a.interpreter,
		Services:    a.services,
		Progress:    observer,
		Renderer:    renderer,
	}, nil
}
