// Package sweep checks system paths that package file lists do not lead to:
// enabled-unit links in the service-manager configuration roots and interpreter
// library directories left behind by an interpreter upgrade.
package sweep

import (
	"context"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Sink receives the sweep's findings and diagnostics. It must be safe for concurrent use.
type Sink interface {
	Add(findings ...domain.Finding)
	Diagnose(d domain.Diagnostic)
}

// Options configures a single Run.
type Options struct {
	// Parallelism bounds concurrent link checks and ownership lookups. Values below one mean one.
	Parallelism int
	// Current is the interpreter version in use. A zero value skips the directory pass.
	Current domain.InterpreterVersion
	// Foreign lists the foreign packages; other owners are recorded as native.
	Foreign []domain.Package
}

// Sweeper runs the system-wide pass.
type Sweeper struct {
	layout   ports.SystemLayout
	owners   ports.PathOwnerResolver
	services ports.ServiceLinkChecker
	logger   ports.Logger
}

// New creates a Sweeper.
func New(
	layout ports.SystemLayout,
	owners ports.PathOwnerResolver,
	services ports.ServiceLinkChecker,
	logger ports.Logger,
) *Sweeper {
	return &Sweeper{
		layout:   layout,
		owners:   owners,
		services: services,
		logger:   logger,
	}
}

// Run reports broken enabled-unit links under their owning packages, or under
// domain.UnownedName, and every package owning content of a stale interpreter
// directory. Failures become diagnostics; the only error returned is the
// context's when the sweep is cancelled.
func (s *Sweeper) Run(ctx context.Context, opts Options, sink Sink) error {
	foreign := make(map[domain.InternedString]bool, len(opts.Foreign))
	for _, p := range opts.Foreign {
		foreign[p.Name] = true
	}
	run := &sweepRun{s: s, sink: sink, foreign: foreign}

	g := new(errgroup.Group)
	g.SetLimit(max(opts.Parallelism, 1))

	links, err := s.layout.EnabledUnitLinks()
	if err != nil {
		run.diagnose(domain.Diagnostic{Package: domain.UnownedPackage().Name, Stage: domain.StageSweep, Err: err})
	}
	for _, link := range links {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() == nil {
				run.checkLink(ctx, link)
			}
			return nil
		})
	}

	if !opts.Current.IsZero() && ctx.Err() == nil {
		dirs, err := s.layout.StaleInterpreterDirs(opts.Current)
		if err != nil {
			run.diagnose(domain.Diagnostic{Package: domain.UnownedPackage().Name, Stage: domain.StageSweep, Err: err})
		}
		for _, dir := range dirs {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if ctx.Err() == nil {
					run.checkInterpreterDir(ctx, dir, opts.Current)
				}
				return nil
			})
		}
	}

	_ = g.Wait()
	return ctx.Err()
}

type sweepRun struct {
	s       *Sweeper
	sink    Sink
	foreign map[domain.InternedString]bool
}

func (run *sweepRun) checkLink(ctx context.Context, link string) {
	unowned := domain.UnownedPackage()
	findings, err := run.s.services.CheckServiceLink(domain.OwnedFile{Path: link, Package: unowned})
	if err != nil {
		run.diagnose(domain.Diagnostic{Package: unowned.Name, Path: link, Stage: domain.StageCheck, Err: err})
		return
	}
	if len(findings) == 0 {
		return
	}

	// Ownership is only looked up for broken links. The link stays reported
	// under the placeholder when the lookup fails.
	owners, ok := run.ownersOf(ctx, link)
	if !ok && ctx.Err() != nil {
		return
	}
	if len(owners) == 0 {
		owners = []domain.Package{unowned}
	}
	for _, owner := range owners {
		for _, f := range findings {
			f.Package = owner.Name
			run.sink.Add(f)
		}
	}
}

func (run *sweepRun) checkInterpreterDir(ctx context.Context, dir domain.InterpreterDir, current domain.InterpreterVersion) {
	owners, ok := run.ownersOf(ctx, dir.Path)
	if !ok {
		return
	}
	for _, owner := range owners {
		run.sink.Add(domain.NewStaleInterpreterDirectory(owner, dir.Path, dir.Version, current))
	}
}

// ownersOf resolves the packages owning path. A failed lookup is diagnosed and
// reports false; a cancelled one reports false silently.
func (run *sweepRun) ownersOf(ctx context.Context, path string) ([]domain.Package, bool) {
	names, err := run.s.owners.OwnersOf(ctx, path)
	if err != nil {
		if ctx.Err() == nil {
			run.diagnose(domain.Diagnostic{
				Package: domain.UnownedPackage().Name,
				Path:    path,
				Stage:   domain.StageOwnership,
				Err:     err,
			})
		}
		return nil, false
	}

	owners := make([]domain.Package, 0, len(names))
	for _, name := range names {
		pkg := domain.NewNativePackage(name)
		if run.foreign[pkg.Name] {
			pkg.Provenance = domain.ProvenanceForeign
		}
		owners = append(owners, pkg)
	}
	return owners, true
}

func (run *sweepRun) diagnose(d domain.Diagnostic) {
	run.s.logger.Warn(d.Message())
	run.sink.Diagnose(d)
}
