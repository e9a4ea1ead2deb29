// Package scheduler fans package and file work out over a bounded worker pool.
package scheduler

import (
	"context"
	"sync/atomic"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Sink receives everything a scan produces. Implementations must be safe for concurrent use.
type Sink interface {
	Add(findings ...domain.Finding)
	Diagnose(d domain.Diagnostic)
	CountPackage()
	CountFile()
}

// Checkers groups the per-kind validation capabilities.
type Checkers struct {
	Linkage     ports.LinkageChecker
	Interpreter ports.InterpreterChecker
	Services    ports.ServiceLinkChecker
}

// Scheduler classifies and checks every owned file of a set of packages.
type Scheduler struct {
	ownership  ports.OwnershipResolver
	classifier ports.FileClassifier
	checkers   Checkers
	logger     ports.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	ownership ports.OwnershipResolver,
	classifier ports.FileClassifier,
	checkers Checkers,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		ownership:  ownership,
		classifier: classifier,
		checkers:   checkers,
		logger:     logger,
	}
}

// RunOptions configures a single Run.
type RunOptions struct {
	// Parallelism bounds how many ownership queries and file scans run at once,
	// counted together. Values below one mean one.
	Parallelism int
	// Current is the interpreter version extensions are compared against.
	// A zero value turns every extension check into a diagnostic.
	Current domain.InterpreterVersion
}

// Run processes pkgs and reports into sink. Per-package and per-file failures become
// diagnostics; the only error returned is the context's when the scan is cancelled.
func (s *Scheduler) Run(
	ctx context.Context,
	pkgs []domain.Package,
	opts RunOptions,
	sink Sink,
	progress ports.Progress,
) error {
	state := s.newRunState(opts, sink, progress)

	progress.Start(len(pkgs))
	defer progress.Finish()

	for _, pkg := range pkgs {
		if ctx.Err() != nil {
			break
		}
		state.packages.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			state.scanPackage(ctx, pkg)
			return nil
		})
	}

	// Package tasks enqueue file tasks, so they must drain first.
	_ = state.packages.Wait()
	_ = state.files.Wait()

	return ctx.Err()
}

type runState struct {
	s        *Scheduler
	current  domain.InterpreterVersion
	sink     Sink
	progress ports.Progress
	packages *errgroup.Group
	files    *errgroup.Group
	// work is shared by package and file tasks; the groups only bound goroutines.
	work *semaphore.Weighted
}

func (s *Scheduler) newRunState(opts RunOptions, sink Sink, progress ports.Progress) *runState {
	limit := max(opts.Parallelism, 1)

	packages := new(errgroup.Group)
	packages.SetLimit(limit)
	files := new(errgroup.Group)
	files.SetLimit(limit)

	return &runState{
		s:        s,
		current:  opts.Current,
		sink:     sink,
		progress: progress,
		packages: packages,
		files:    files,
		work:     semaphore.NewWeighted(int64(limit)),
	}
}

func (state *runState) scanPackage(ctx context.Context, pkg domain.Package) {
	if err := state.work.Acquire(ctx, 1); err != nil {
		return
	}
	files, err := state.s.ownership.OwnedFiles(ctx, pkg)
	// Released before enqueueing files, which wait for the same tokens.
	state.work.Release(1)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		state.diagnose(domain.Diagnostic{Package: pkg.Name, Stage: domain.StageOwnership, Err: err})
		state.sink.CountPackage()
		state.progress.PackageDone(pkg, err)
		return
	}

	if len(files) == 0 {
		state.s.logger.Debug(pkg.Name.String() + ": no owned files")
		state.sink.CountPackage()
		state.progress.PackageDone(pkg, nil)
		return
	}

	var remaining atomic.Int64
	remaining.Store(int64(len(files)))

	for i, file := range files {
		if ctx.Err() != nil {
			// Files never scheduled still count toward package completion.
			if remaining.Add(-int64(len(files)-i)) == 0 {
				state.sink.CountPackage()
				state.progress.PackageDone(pkg, ctx.Err())
			}
			return
		}
		state.files.Go(func() error {
			if state.work.Acquire(ctx, 1) == nil {
				state.scanFile(file)
				state.sink.CountFile()
				state.work.Release(1)
			}
			state.progress.FileDone()
			if remaining.Add(-1) == 0 {
				state.sink.CountPackage()
				state.progress.PackageDone(pkg, nil)
			}
			return nil
		})
	}
}

func (state *runState) scanFile(file domain.OwnedFile) {
	kind, err := state.s.classifier.Classify(file.Path)
	if err != nil {
		state.diagnose(domain.Diagnostic{
			Package: file.Package.Name,
			Path:    file.Path,
			Stage:   domain.StageClassify,
			Err:     err,
		})
		return
	}
	if !kind.NeedsCheck() {
		return
	}

	if kind == domain.FileKindPythonExtension && state.current.IsZero() {
		state.diagnose(domain.Diagnostic{
			Package: file.Package.Name,
			Path:    file.Path,
			Stage:   domain.StageInterpreter,
			Err:     domain.ErrInterpreterVersionUnavailable,
		})
		return
	}

	findings, err := state.check(kind, file)
	if err != nil {
		state.diagnose(domain.Diagnostic{
			Package: file.Package.Name,
			Path:    file.Path,
			Stage:   domain.StageCheck,
			Err:     err,
		})
		return
	}

	for _, f := range findings {
		if f.Kind.SourceKind() != kind {
			state.diagnose(domain.Diagnostic{
				Package: file.Package.Name,
				Path:    file.Path,
				Stage:   domain.StageCheck,
				Err:     zerr.With(zerr.With(domain.ErrUnknownCheck, "kind", kind.String()), "finding", f.Kind.String()),
			})
			return
		}
	}
	state.sink.Add(findings...)
}

func (state *runState) check(kind domain.FileKind, file domain.OwnedFile) ([]domain.Finding, error) {
	switch kind {
	case domain.FileKindElfObject:
		return state.s.checkers.Linkage.CheckLinkage(file)
	case domain.FileKindPythonExtension:
		return state.s.checkers.Interpreter.CheckInterpreter(file, state.current)
	case domain.FileKindServiceLink:
		return state.s.checkers.Services.CheckServiceLink(file)
	case domain.FileKindIrrelevant:
		return nil, nil
	default:
		return nil, zerr.With(domain.ErrUnknownCheck, "kind", kind.String())
	}
}

func (state *runState) diagnose(d domain.Diagnostic) {
	state.s.logger.Warn(d.Message())
	state.sink.Diagnose(d)
}
