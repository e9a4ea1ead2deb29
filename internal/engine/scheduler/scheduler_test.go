package scheduler_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports/mocks"
	"go.trai.ch/brokenpkg/internal/engine/aggregator"
	"go.trai.ch/brokenpkg/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type schedulerTestMocks struct {
	ownership   *mocks.MockOwnershipResolver
	classifier  *mocks.MockFileClassifier
	linkage     *mocks.MockLinkageChecker
	interpreter *mocks.MockInterpreterChecker
	services    *mocks.MockServiceLinkChecker
	logger      *mocks.MockLogger
	progress    *mocks.MockProgress
}

// setupSchedulerTest creates a scheduler and common mocks.
func setupSchedulerTest(t *testing.T) (*scheduler.Scheduler, schedulerTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := schedulerTestMocks{
		ownership:   mocks.NewMockOwnershipResolver(ctrl),
		classifier:  mocks.NewMockFileClassifier(ctrl),
		linkage:     mocks.NewMockLinkageChecker(ctrl),
		interpreter: mocks.NewMockInterpreterChecker(ctrl),
		services:    mocks.NewMockServiceLinkChecker(ctrl),
		logger:      mocks.NewMockLogger(ctrl),
		progress:    mocks.NewMockProgress(ctrl),
	}

	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	s := scheduler.NewScheduler(m.ownership, m.classifier, scheduler.Checkers{
		Linkage:     m.linkage,
		Interpreter: m.interpreter,
		Services:    m.services,
	}, m.logger)
	return s, m
}

// expectProgress registers the progress calls of a scan that runs to completion.
func (m schedulerTestMocks) expectProgress(packages, files int) {
	m.progress.EXPECT().Start(packages).Times(1)
	m.progress.EXPECT().FileDone().Times(files)
	m.progress.EXPECT().Finish().Times(1)
}

// ownedFiles builds the owned files of pkg from paths.
func ownedFiles(pkg domain.Package, paths ...string) []domain.OwnedFile {
	files := make([]domain.OwnedFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, domain.OwnedFile{Path: p, Package: pkg})
	}
	return files
}

// kindByPath classifies fixture paths by their directory.
func kindByPath(path string) (domain.FileKind, error) {
	switch {
	case strings.HasPrefix(path, "/usr/bin/"):
		return domain.FileKindElfObject, nil
	case strings.Contains(path, "site-packages"):
		return domain.FileKindPythonExtension, nil
	case strings.Contains(path, ".target."):
		return domain.FileKindServiceLink, nil
	default:
		return domain.FileKindIrrelevant, nil
	}
}

func TestRun_DispatchesByKind(t *testing.T) {
	t.Parallel()

	s, m := setupSchedulerTest(t)
	pkg := domain.NewForeignPackage("mixed-git")
	files := ownedFiles(pkg,
		"/usr/bin/mixed",
		"/usr/lib/python2.7/site-packages/_mixed.cpython-27-x86_64-linux-gnu.so",
		"/etc/systemd/system/multi-user.target.wants/mixed.service",
		"/usr/share/doc/mixed/README",
	)
	current := domain.InterpreterVersion{Major: 3, Minor: 12}

	m.expectProgress(1, 4)
	m.progress.EXPECT().PackageDone(pkg, nil).Times(1)
	m.ownership.EXPECT().OwnedFiles(gomock.Any(), pkg).Return(files, nil)
	m.classifier.EXPECT().Classify(gomock.Any()).DoAndReturn(kindByPath).Times(4)
	m.linkage.EXPECT().CheckLinkage(files[0]).
		Return([]domain.Finding{domain.NewUnresolvedLibrary(files[0], "libfoo.so.1")}, nil)
	m.interpreter.EXPECT().CheckInterpreter(files[1], current).
		Return([]domain.Finding{domain.NewStaleInterpreterVersion(files[1], domain.InterpreterVersion{Major: 2, Minor: 7}, current)}, nil)
	m.services.EXPECT().CheckServiceLink(files[2]).
		Return([]domain.Finding{domain.NewBrokenServiceLink(files[2], "/usr/lib/systemd/system/mixed.service")}, nil)

	agg := aggregator.New()
	err := s.Run(t.Context(), []domain.Package{pkg}, scheduler.RunOptions{Parallelism: 4, Current: current}, agg, m.progress)
	require.NoError(t, err)

	report := agg.Report()
	require.Len(t, report.Findings, 3)
	kinds := make([]domain.FindingKind, 0, 3)
	for _, f := range report.Findings {
		kinds = append(kinds, f.Kind)
		assert.Equal(t, pkg.Name, f.Package)
	}
	assert.ElementsMatch(t, []domain.FindingKind{
		domain.FindingUnresolvedLibrary,
		domain.FindingStaleInterpreterVersion,
		domain.FindingBrokenServiceLink,
	}, kinds)
	assert.Empty(t, report.Diagnostics)
	assert.Equal(t, 1, report.Packages)
	assert.Equal(t, 4, report.Files)
}

func TestRun_OwnershipFailureIsDiagnostic(t *testing.T) {
	t.Parallel()

	s, m := setupSchedulerTest(t)
	broken := domain.NewForeignPackage("broken")
	healthy := domain.NewForeignPackage("healthy")
	files := ownedFiles(healthy, "/usr/share/healthy/data")
	queryErr := errors.New("pacman exited 1")

	m.expectProgress(2, 1)
	m.progress.EXPECT().PackageDone(broken, queryErr).Times(1)
	m.progress.EXPECT().PackageDone(healthy, nil).Times(1)
	m.ownership.EXPECT().OwnedFiles(gomock.Any(), broken).Return(nil, queryErr)
	m.ownership.EXPECT().OwnedFiles(gomock.Any(), healthy).Return(files, nil)
	m.classifier.EXPECT().Classify("/usr/share/healthy/data").Return(domain.FileKindIrrelevant, nil)

	agg := aggregator.New()
	err := s.Run(t.Context(), []domain.Package{broken, healthy}, scheduler.RunOptions{Parallelism: 2}, agg, m.progress)
	require.NoError(t, err)

	report := agg.Report()
	assert.Empty(t, report.Findings)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, domain.StageOwnership, report.Diagnostics[0].Stage)
	assert.Equal(t, "broken", report.Diagnostics[0].Package.String())
	assert.ErrorIs(t, report.Diagnostics[0].Err, queryErr)
	assert.Equal(t, 2, report.Packages)
	assert.Equal(t, 1, report.Files)
}

func TestRun_EmptyPackage(t *testing.T) {
	t.Parallel()

	s, m := setupSchedulerTest(t)
	pkg := domain.NewForeignPackage("meta-only")

	m.expectProgress(1, 0)
	m.progress.EXPECT().PackageDone(pkg, nil).Times(1)
	m.ownership.EXPECT().OwnedFiles(gomock.Any(), pkg).Return(nil, nil)

	agg := aggregator.New()
	err := s.Run(t.Context(), []domain.Package{pkg}, scheduler.RunOptions{Parallelism: 1}, agg, m.progress)
	require.NoError(t, err)

	report := agg.Report()
	assert.False(t, report.HasFindings())
	assert.Equal(t, 1, report.Packages)
	assert.Zero(t, report.Files)
}

func TestRun_NoPackages(t *testing.T) {
	t.Parallel()

	s, m := setupSchedulerTest(t)
	m.expectProgress(0, 0)

	agg := aggregator.New()
	err := s.Run(t.Context(), nil, scheduler.RunOptions{Parallelism: 4}, agg, m.progress)
	require.NoError(t, err)
	assert.Zero(t, agg.Report().Packages)
}

func TestRun_ClassifyAndCheckFailuresAreDiagnostics(t *testing.T) {
	t.Parallel()

	s, m := setupSchedulerTest(t)
	pkg := domain.NewForeignPackage("flaky")
	files := ownedFiles(pkg, "/usr/bin/unreadable", "/usr/bin/corrupt", "/usr/bin/fine")

	m.expectProgress(1, 3)
	m.progress.EXPECT().PackageDone(pkg, nil).Times(1)
	m.ownership.EXPECT().OwnedFiles(gomock.Any(), pkg).Return(files, nil)
	m.classifier.EXPECT().Classify("/usr/bin/unreadable").
		Return(domain.FileKindIrrelevant, domain.ErrFileOpenFailed)
	m.classifier.EXPECT().Classify("/usr/bin/corrupt").Return(domain.FileKindElfObject, nil)
	m.classifier.EXPECT().Classify("/usr/bin/fine").Return(domain.FileKindElfObject, nil)
	m.linkage.EXPECT().CheckLinkage(files[1]).Return(nil, domain.ErrElfParseFailed)
	m.linkage.EXPECT().CheckLinkage(files[2]).Return(nil, nil)

	agg := aggregator.New()
	err := s.Run(t.Context(), []domain.Package{pkg}, scheduler.RunOptions{Parallelism: 3}, agg, m.progress)
	require.NoError(t, err)

	report := agg.Report()
	assert.Empty(t, report.Findings)
	require.Len(t, report.Diagnostics, 2)
	assert.Equal(t, "/usr/bin/corrupt", report.Diagnostics[0].Path)
	assert.Equal(t, domain.StageCheck, report.Diagnostics[0].Stage)
	assert.Equal(t, "/usr/bin/unreadable", report.Diagnostics[1].Path)
	assert.Equal(t, domain.StageClassify, report.Diagnostics[1].Stage)
	assert.Equal(t, 3, report.Files)
}

func TestRun_UnknownInterpreterVersionSkipsExtensions(t *testing.T) {
	t.Parallel()

	s, m := setupSchedulerTest(t)
	pkg := domain.NewForeignPackage("python2-legacy")
	files := ownedFiles(pkg, "/usr/lib/python2.7/site-packages/_legacy.so")

	m.expectProgress(1, 1)
	m.progress.EXPECT().PackageDone(pkg, nil).Times(1)
	m.ownership.EXPECT().OwnedFiles(gomock.Any(), pkg).Return(files, nil)
	m.classifier.EXPECT().Classify(gomock.Any()).Return(domain.FileKindPythonExtension, nil)
	m.interpreter.EXPECT().CheckInterpreter(gomock.Any(), gomock.Any()).Times(0)

	agg := aggregator.New()
	err := s.Run(t.Context(), []domain.Package{pkg}, scheduler.RunOptions{Parallelism: 1}, agg, m.progress)
	require.NoError(t, err)

	report := agg.Report()
	assert.Empty(t, report.Findings)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, domain.StageInterpreter, report.Diagnostics[0].Stage)
	assert.ErrorIs(t, report.Diagnostics[0].Err, domain.ErrInterpreterVersionUnavailable)
}

func TestRun_RejectsFindingOfWrongKind(t *testing.T) {
	t.Parallel()

	s, m := setupSchedulerTest(t)
	pkg := domain.NewForeignPackage("odd")
	files := ownedFiles(pkg, "/usr/bin/odd")

	m.expectProgress(1, 1)
	m.progress.EXPECT().PackageDone(pkg, nil).Times(1)
	m.ownership.EXPECT().OwnedFiles(gomock.Any(), pkg).Return(files, nil)
	m.classifier.EXPECT().Classify(gomock.Any()).Return(domain.FileKindElfObject, nil)
	m.linkage.EXPECT().CheckLinkage(files[0]).
		Return([]domain.Finding{domain.NewBrokenServiceLink(files[0], "/nowhere")}, nil)

	agg := aggregator.New()
	err := s.Run(t.Context(), []domain.Package{pkg}, scheduler.RunOptions{Parallelism: 1}, agg, m.progress)
	require.NoError(t, err)

	report := agg.Report()
	assert.Empty(t, report.Findings)
	require.Len(t, report.Diagnostics, 1)
	assert.Contains(t, report.Diagnostics[0].Err.Error(), domain.ErrUnknownCheck.Error())
}

// fixturePackages builds n packages owning three binaries each, every third binary broken.
func fixturePackages(n int) ([]domain.Package, map[string][]domain.OwnedFile) {
	pkgs := make([]domain.Package, 0, n)
	owned := make(map[string][]domain.OwnedFile, n)
	for i := range n {
		pkg := domain.NewForeignPackage(fmt.Sprintf("pkg-%02d", i))
		pkgs = append(pkgs, pkg)
		owned[pkg.Name.String()] = ownedFiles(pkg,
			fmt.Sprintf("/usr/bin/a-%02d", i),
			fmt.Sprintf("/usr/bin/b-%02d", i),
			fmt.Sprintf("/usr/bin/c-%02d", i),
		)
	}
	return pkgs, owned
}

func runFixture(t *testing.T, parallelism int) *domain.ScanReport {
	t.Helper()

	s, m := setupSchedulerTest(t)
	pkgs, owned := fixturePackages(12)

	m.expectProgress(len(pkgs), len(pkgs)*3)
	m.progress.EXPECT().PackageDone(gomock.Any(), nil).Times(len(pkgs))
	m.ownership.EXPECT().OwnedFiles(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, pkg domain.Package) ([]domain.OwnedFile, error) {
			return owned[pkg.Name.String()], nil
		},
	).Times(len(pkgs))
	m.classifier.EXPECT().Classify(gomock.Any()).Return(domain.FileKindElfObject, nil).AnyTimes()
	m.linkage.EXPECT().CheckLinkage(gomock.Any()).DoAndReturn(
		func(file domain.OwnedFile) ([]domain.Finding, error) {
			if strings.Contains(file.Path, "/c-") {
				return []domain.Finding{domain.NewUnresolvedLibrary(file, "libgone.so.2")}, nil
			}
			return nil, nil
		},
	).AnyTimes()

	agg := aggregator.New()
	err := s.Run(t.Context(), pkgs, scheduler.RunOptions{Parallelism: parallelism}, agg, m.progress)
	require.NoError(t, err)
	return agg.Report()
}

func TestRun_ResultIndependentOfParallelism(t *testing.T) {
	t.Parallel()

	sequential := runFixture(t, 1)
	parallel := runFixture(t, 8)

	assert.Len(t, sequential.Findings, 12)
	assert.Equal(t, sequential.Findings, parallel.Findings)
	assert.Equal(t, sequential.Files, parallel.Files)
	assert.Equal(t, sequential.Packages, parallel.Packages)
}

func TestRun_BoundsConcurrentWork(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		const limit = 3

		s, m := setupSchedulerTest(t)
		pkgs, owned := fixturePackages(6)

		// Ownership queries and checks draw from the same budget.
		var active, peak atomic.Int32
		busy := func() {
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			active.Add(-1)
		}

		m.expectProgress(len(pkgs), len(pkgs)*3)
		m.progress.EXPECT().PackageDone(gomock.Any(), nil).Times(len(pkgs))
		m.ownership.EXPECT().OwnedFiles(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, pkg domain.Package) ([]domain.OwnedFile, error) {
				busy()
				return owned[pkg.Name.String()], nil
			},
		).Times(len(pkgs))
		m.classifier.EXPECT().Classify(gomock.Any()).Return(domain.FileKindElfObject, nil).AnyTimes()
		m.linkage.EXPECT().CheckLinkage(gomock.Any()).DoAndReturn(
			func(domain.OwnedFile) ([]domain.Finding, error) {
				busy()
				return nil, nil
			},
		).AnyTimes()

		agg := aggregator.New()
		err := s.Run(t.Context(), pkgs, scheduler.RunOptions{Parallelism: limit}, agg, m.progress)
		require.NoError(t, err)

		assert.Equal(t, int32(limit), peak.Load())
		assert.Equal(t, len(pkgs)*3, agg.Report().Files)
	})
}

func TestRun_CancelledStopsScheduling(t *testing.T) {
	t.Parallel()

	s, m := setupSchedulerTest(t)
	pkgs, owned := fixturePackages(5)
	ctx, cancel := context.WithCancel(t.Context())

	m.progress.EXPECT().Start(len(pkgs)).Times(1)
	m.progress.EXPECT().Finish().Times(1)
	m.progress.EXPECT().FileDone().AnyTimes()
	m.progress.EXPECT().PackageDone(gomock.Any(), gomock.Any()).AnyTimes()
	m.ownership.EXPECT().OwnedFiles(gomock.Any(), pkgs[0]).DoAndReturn(
		func(ctx context.Context, pkg domain.Package) ([]domain.OwnedFile, error) {
			cancel()
			return owned[pkg.Name.String()], ctx.Err()
		},
	).Times(1)

	agg := aggregator.New()
	err := s.Run(ctx, pkgs, scheduler.RunOptions{Parallelism: 1}, agg, m.progress)
	require.ErrorIs(t, err, context.Canceled)

	report := agg.Report()
	assert.Empty(t, report.Findings)
	assert.Empty(t, report.Diagnostics)
	assert.Zero(t, report.Files)
}
