package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brokenpkg/internal/adapters/elf"
	"go.trai.ch/brokenpkg/internal/adapters/elf/elftest"
	"go.trai.ch/brokenpkg/internal/adapters/fs"
	"go.trai.ch/brokenpkg/internal/adapters/ldso"
	"go.trai.ch/brokenpkg/internal/adapters/logger"
	"go.trai.ch/brokenpkg/internal/adapters/progress"
	"go.trai.ch/brokenpkg/internal/adapters/python"
	"go.trai.ch/brokenpkg/internal/adapters/report"
	"go.trai.ch/brokenpkg/internal/adapters/systemd"
	"go.trai.ch/brokenpkg/internal/app"
	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
	"go.trai.ch/brokenpkg/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type appTestMocks struct {
	runner      *mocks.MockCommandRunner
	logger      *mocks.MockLogger
	catalog     *mocks.MockPackageCatalog
	ownership   *mocks.MockOwnershipResolver
	versions    *mocks.MockInterpreterVersionSource
	classifier  *mocks.MockFileClassifier
	linkage     *mocks.MockLinkageChecker
	interpreter *mocks.MockInterpreterChecker
	services    *mocks.MockServiceLinkChecker
	renderer    *mocks.MockReportRenderer
}

// setupAppTest creates an App whose pipeline is made entirely of mocks.
func setupAppTest(t *testing.T) (*app.App, appTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := appTestMocks{
		runner:      mocks.NewMockCommandRunner(ctrl),
		logger:      mocks.NewMockLogger(ctrl),
		catalog:     mocks.NewMockPackageCatalog(ctrl),
		ownership:   mocks.NewMockOwnershipResolver(ctrl),
		versions:    mocks.NewMockInterpreterVersionSource(ctrl),
		classifier:  mocks.NewMockFileClassifier(ctrl),
		linkage:     mocks.NewMockLinkageChecker(ctrl),
		interpreter: mocks.NewMockInterpreterChecker(ctrl),
		services:    mocks.NewMockServiceLinkChecker(ctrl),
		renderer:    mocks.NewMockReportRenderer(ctrl),
	}
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	a := app.New(m.runner, m.logger, m.interpreter, m.services).
		WithPipeline(func(domain.ScanOptions, io.Writer) (*app.Pipeline, error) {
			return &app.Pipeline{
				Catalog:     m.catalog,
				Ownership:   m.ownership,
				Versions:    m.versions,
				Classifier:  m.classifier,
				Linkage:     m.linkage,
				Interpreter: m.interpreter,
				Services:    m.services,
				Progress:    progress.Noop{},
				Renderer:    m.renderer,
			}, nil
		})
	return a, m
}

func scanOptions() domain.ScanOptions {
	opts := domain.DefaultScanOptions()
	opts.Jobs = 2
	opts.Progress = domain.ProgressNone
	return opts
}

func TestApp_Scan_CatalogUnavailable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := setupAppTest(t)

		m.catalog.EXPECT().ForeignPackages(gomock.Any()).
			Return(nil, errors.Join(domain.ErrCatalogUnavailable, errors.New("database is locked")))
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Times(0)

		var stdout bytes.Buffer
		result, err := a.Scan(t.Context(), scanOptions(), &stdout, io.Discard)

		require.ErrorIs(t, err, domain.ErrCatalogUnavailable)
		assert.Nil(t, result)
		assert.Empty(t, stdout.String())
	})
}

func TestApp_Scan_NoForeignPackages(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := setupAppTest(t)

		m.catalog.EXPECT().ForeignPackages(gomock.Any()).Return(nil, nil)
		m.versions.EXPECT().CurrentVersion(gomock.Any()).Return(domain.InterpreterVersion{Major: 3, Minor: 12}, nil)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ io.Writer, r *domain.ScanReport) error {
				assert.Zero(t, r.Packages)
				assert.False(t, r.HasFindings())
				return nil
			},
		)

		result, err := a.Scan(t.Context(), scanOptions(), io.Discard, io.Discard)
		require.NoError(t, err)
		require.NotNil(t, result)
	})
}

func TestApp_Scan_FindingsDetected(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := setupAppTest(t)
		pkg := domain.NewForeignPackage("yay-bin")
		file := domain.OwnedFile{Path: "/usr/bin/yay", Package: pkg}

		m.catalog.EXPECT().ForeignPackages(gomock.Any()).Return([]domain.Package{pkg}, nil)
		m.versions.EXPECT().CurrentVersion(gomock.Any()).Return(domain.InterpreterVersion{Major: 3, Minor: 12}, nil)
		m.ownership.EXPECT().OwnedFiles(gomock.Any(), pkg).Return([]domain.OwnedFile{file}, nil)
		m.classifier.EXPECT().Classify("/usr/bin/yay").Return(domain.FileKindElfObject, nil)
		m.linkage.EXPECT().CheckLinkage(file).
			Return([]domain.Finding{domain.NewUnresolvedLibrary(file, "libalpm.so.13")}, nil)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil)

		result, err := a.Scan(t.Context(), scanOptions(), io.Discard, io.Discard)

		require.ErrorIs(t, err, domain.ErrFindingsDetected)
		require.NotNil(t, result)
		require.Len(t, result.Findings, 1)
		assert.Equal(t, "libalpm.so.13", result.Findings[0].Library)
	})
}

func TestApp_Scan_VersionOverrideSkipsLookup(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := setupAppTest(t)
		pkg := domain.NewForeignPackage("python-legacy")
		file := domain.OwnedFile{Path: "/usr/lib/python3.9/site-packages/_c.cpython-39-x86_64-linux-gnu.so", Package: pkg}
		override := domain.InterpreterVersion{Major: 4, Minor: 0}

		opts := scanOptions()
		opts.PythonVersion = override

		m.catalog.EXPECT().ForeignPackages(gomock.Any()).Return([]domain.Package{pkg}, nil)
		m.versions.EXPECT().CurrentVersion(gomock.Any()).Times(0)
		m.ownership.EXPECT().OwnedFiles(gomock.Any(), pkg).Return([]domain.OwnedFile{file}, nil)
		m.classifier.EXPECT().Classify(file.Path).Return(domain.FileKindPythonExtension, nil)
		m.interpreter.EXPECT().CheckInterpreter(file, override).Return(nil, nil)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil)

		_, err := a.Scan(t.Context(), opts, io.Discard, io.Discard)
		require.NoError(t, err)
	})
}

func TestApp_Scan_VersionLookupFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := setupAppTest(t)
		pkg := domain.NewForeignPackage("python-legacy")
		files := []domain.OwnedFile{
			{Path: "/usr/lib/python3.9/site-packages/_a.cpython-39-x86_64-linux-gnu.so", Package: pkg},
			{Path: "/usr/lib/python3.9/site-packages/_b.cpython-39-x86_64-linux-gnu.so", Package: pkg},
		}

		m.catalog.EXPECT().ForeignPackages(gomock.Any()).Return([]domain.Package{pkg}, nil)
		m.versions.EXPECT().CurrentVersion(gomock.Any()).
			Return(domain.InterpreterVersion{}, domain.ErrInterpreterVersionUnavailable)
		m.logger.EXPECT().Warn(gomock.Any()).Times(3)
		m.ownership.EXPECT().OwnedFiles(gomock.Any(), pkg).Return(files, nil)
		m.classifier.EXPECT().Classify(gomock.Any()).Return(domain.FileKindPythonExtension, nil).Times(2)
		m.interpreter.EXPECT().CheckInterpreter(gomock.Any(), gomock.Any()).Times(0)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil)

		result, err := a.Scan(t.Context(), scanOptions(), io.Discard, io.Discard)
		require.NoError(t, err)
		require.Len(t, result.Diagnostics, 2)
		for _, d := range result.Diagnostics {
			assert.Equal(t, domain.StageInterpreter, d.Stage)
		}
	})
}

func TestApp_Scan_RenderFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := setupAppTest(t)

		m.catalog.EXPECT().ForeignPackages(gomock.Any()).Return(nil, nil)
		m.versions.EXPECT().CurrentVersion(gomock.Any()).Return(domain.InterpreterVersion{Major: 3, Minor: 12}, nil)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(errors.New("broken pipe"))

		_, err := a.Scan(t.Context(), scanOptions(), io.Discard, io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to render report")
		assert.NotErrorIs(t, err, domain.ErrFindingsDetected)
	})
}

func TestApp_Scan_Cancelled(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := setupAppTest(t)
		ctx, cancel := context.WithCancel(t.Context())
		pkg := domain.NewForeignPackage("slow")

		m.catalog.EXPECT().ForeignPackages(gomock.Any()).Return([]domain.Package{pkg}, nil)
		m.versions.EXPECT().CurrentVersion(gomock.Any()).DoAndReturn(
			func(context.Context) (domain.InterpreterVersion, error) {
				cancel()
				return domain.InterpreterVersion{Major: 3, Minor: 12}, nil
			},
		)
		m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Times(0)

		_, err := a.Scan(ctx, scanOptions(), io.Discard, io.Discard)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestApp_Scan_InvalidOutputFormat(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	a := app.New(mocks.NewMockCommandRunner(ctrl), mocks.NewMockLogger(ctrl), python.NewChecker(), systemd.NewChecker())

	opts := scanOptions()
	opts.Output = "xml"

	_, err := a.Scan(t.Context(), opts, io.Discard, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidOption.Error())
}

// scanFixture lays out a foreign package with one instance of every kind of breakage,
// plus healthy files that must not be reported.
type scanFixture struct {
	root      string
	libDir    string
	unitRoot  string
	binary    string
	extension string
	link      string
	files     []string
}

func newScanFixture(t *testing.T) scanFixture {
	t.Helper()
	root := t.TempDir()
	f := scanFixture{
		root:      root,
		libDir:    filepath.Join(root, "usr", "lib"),
		unitRoot:  filepath.Join(root, "etc", "systemd", "system"),
		binary:    filepath.Join(root, "usr", "bin", "zerotier-one"),
		extension: filepath.Join(root, "usr", "lib", "python2.7", "site-packages", "_zt.cpython-27-x86_64-linux-gnu.so"),
		link:      filepath.Join(root, "etc", "systemd", "system", "multi-user.target.wants", "zerotier-one.service"),
	}

	for _, dir := range []string{filepath.Dir(f.binary), filepath.Dir(f.extension), filepath.Dir(f.link)} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}

	elftest.Write(t, filepath.Join(f.libDir, "libbar.so.1"), elftest.Object{})
	elftest.Write(t, f.binary, elftest.Object{Needed: []string{"libbar.so.1", "libfoo.so.1"}})
	require.NoError(t, os.WriteFile(f.extension, elftest.Bytes(elftest.Object{}), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(root, "usr", "lib", "systemd", "system", "zerotier-one.service"), f.link))

	readme := filepath.Join(root, "usr", "share", "doc", "zerotier-one", "README")
	require.NoError(t, os.MkdirAll(filepath.Dir(readme), 0o755))
	require.NoError(t, os.WriteFile(readme, []byte("docs\n"), 0o644))

	f.files = []string{f.binary, f.extension, f.link, readme}
	return f
}

// realPipeline wires the real classifier and checkers against fixture, mocking only the package database.
func realPipeline(t *testing.T, f scanFixture, m appTestMocks) app.PipelineFactory {
	t.Helper()
	return func(opts domain.ScanOptions, _ io.Writer) (*app.Pipeline, error) {
		resolver := ldso.NewResolver(ldso.Config{TrustedDirs: []string{f.libDir}}, m.logger)
		r, err := report.New(opts.Output)
		if err != nil {
			return nil, err
		}
		return &app.Pipeline{
			Catalog:     m.catalog,
			Ownership:   m.ownership,
			Versions:    m.versions,
			Classifier:  fs.NewClassifier([]string{f.unitRoot}),
			Linkage:     elf.NewChecker(resolver),
			Interpreter: python.NewChecker(),
			Services:    systemd.NewChecker(),
			Progress:    progress.Noop{},
			Renderer:    r,
		}, nil
	}
}

func TestApp_Scan_DetectsEveryKindOfBreakage(t *testing.T) {
	t.Parallel()

	f := newScanFixture(t)
	a, m := setupAppTest(t)
	a.WithPipeline(realPipeline(t, f, m))

	pkg := domain.NewForeignPackage("zerotier-one")
	owned := make([]domain.OwnedFile, 0, len(f.files))
	for _, p := range f.files {
		owned = append(owned, domain.OwnedFile{Path: p, Package: pkg})
	}

	m.catalog.EXPECT().ForeignPackages(gomock.Any()).Return([]domain.Package{pkg}, nil)
	m.versions.EXPECT().CurrentVersion(gomock.Any()).Return(domain.InterpreterVersion{Major: 3, Minor: 12}, nil)
	m.ownership.EXPECT().OwnedFiles(gomock.Any(), pkg).Return(owned, nil)

	var stdout bytes.Buffer
	result, err := a.Scan(t.Context(), scanOptions(), &stdout, io.Discard)
	require.ErrorIs(t, err, domain.ErrFindingsDetected)
	require.NotNil(t, result)

	require.Len(t, result.Findings, 3)
	byKind := make(map[domain.FindingKind]domain.Finding)
	for _, finding := range result.Findings {
		byKind[finding.Kind] = finding
	}
	assert.Equal(t, f.binary, byKind[domain.FindingUnresolvedLibrary].Path)
	assert.Equal(t, "libfoo.so.1", byKind[domain.FindingUnresolvedLibrary].Library)
	assert.Equal(t, f.extension, byKind[domain.FindingStaleInterpreterVersion].Path)
	assert.Equal(t, domain.InterpreterVersion{Major: 2, Minor: 7}, byKind[domain.FindingStaleInterpreterVersion].Found)
	assert.Equal(t, f.link, byKind[domain.FindingBrokenServiceLink].Path)
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, 4, result.Files)
	assert.Equal(t, 1, result.Packages)

	out := stdout.String()
	assert.Contains(t, out, "zerotier-one\n")
	assert.Contains(t, out, "missing library libfoo.so.1")
	assert.NotContains(t, out, "libbar.so.1")
	assert.Contains(t, out, "✗ 3 findings in 1 package")
}

func TestApp_Scan_CleanSystem(t *testing.T) {
	t.Parallel()

	f := newScanFixture(t)
	a, m := setupAppTest(t)
	a.WithPipeline(realPipeline(t, f, m))

	// Only the healthy library is owned.
	pkg := domain.NewForeignPackage("libbar")
	owned := []domain.OwnedFile{{Path: filepath.Join(f.libDir, "libbar.so.1"), Package: pkg}}

	m.catalog.EXPECT().ForeignPackages(gomock.Any()).Return([]domain.Package{pkg}, nil)
	m.versions.EXPECT().CurrentVersion(gomock.Any()).Return(domain.InterpreterVersion{Major: 3, Minor: 12}, nil)
	m.ownership.EXPECT().OwnedFiles(gomock.Any(), pkg).Return(owned, nil)

	opts := scanOptions()
	opts.Output = domain.OutputYAML

	var stdout bytes.Buffer
	result, err := a.Scan(t.Context(), opts, &stdout, io.Discard)
	require.NoError(t, err)
	assert.False(t, result.HasFindings())
	assert.Contains(t, stdout.String(), "packages: 1")
	assert.Contains(t, stdout.String(), "files: 1")
}

func TestApp_Scan_SweepsLinksAndInterpreterDirs(t *testing.T) {
	t.Parallel()

	f := newScanFixture(t)
	a, m := setupAppTest(t)
	owners := mocks.NewMockPathOwnerResolver(gomock.NewController(t))

	leftover := filepath.Join(filepath.Dir(f.link), "leftover.service")
	require.NoError(t, os.Symlink(filepath.Join(f.root, "gone.service"), leftover))
	staleDir := filepath.Join(f.libDir, "python3.11")
	require.NoError(t, os.MkdirAll(filepath.Join(staleDir, "site-packages"), 0o755))

	base := realPipeline(t, f, m)
	a.WithPipeline(func(opts domain.ScanOptions, w io.Writer) (*app.Pipeline, error) {
		p, err := base(opts, w)
		if err != nil {
			return nil, err
		}
		p.Owners = owners
		p.Layout = fs.NewLayout([]string{f.unitRoot}, f.libDir)
		return p, nil
	})

	pkg := domain.NewForeignPackage("zerotier-one")
	owned := make([]domain.OwnedFile, 0, len(f.files))
	for _, p := range f.files {
		owned = append(owned, domain.OwnedFile{Path: p, Package: pkg})
	}

	m.catalog.EXPECT().ForeignPackages(gomock.Any()).Return([]domain.Package{pkg}, nil)
	m.versions.EXPECT().CurrentVersion(gomock.Any()).Return(domain.InterpreterVersion{Major: 3, Minor: 12}, nil)
	m.ownership.EXPECT().OwnedFiles(gomock.Any(), pkg).Return(owned, nil)
	owners.EXPECT().OwnersOf(gomock.Any(), f.link).Return([]string{"zerotier-one"}, nil)
	owners.EXPECT().OwnersOf(gomock.Any(), leftover).Return(nil, nil)
	owners.EXPECT().OwnersOf(gomock.Any(), staleDir).Return([]string{"python-legacy"}, nil)

	var stdout bytes.Buffer
	result, err := a.Scan(t.Context(), scanOptions(), &stdout, io.Discard)
	require.ErrorIs(t, err, domain.ErrFindingsDetected)

	// The package scan and the sweep both see the owned link; it is reported once.
	require.Len(t, result.Findings, 5)
	var links, dirs []domain.Finding
	for _, finding := range result.Findings {
		switch finding.Kind {
		case domain.FindingBrokenServiceLink:
			links = append(links, finding)
		case domain.FindingStaleInterpreterDirectory:
			dirs = append(dirs, finding)
		}
	}
	require.Len(t, links, 2)
	assert.Equal(t, domain.UnownedName, links[0].Package.String())
	assert.Equal(t, leftover, links[0].Path)
	assert.Equal(t, "zerotier-one", links[1].Package.String())
	require.Len(t, dirs, 1)
	assert.Equal(t, "python-legacy", dirs[0].Package.String())
	assert.Equal(t, staleDir, dirs[0].Path)
	assert.Equal(t, domain.InterpreterVersion{Major: 3, Minor: 11}, dirs[0].Found)

	out := stdout.String()
	assert.Contains(t, out, "(unowned)\n")
	assert.Contains(t, out, "files for python 3.11 are ignored by the current interpreter 3.12")
}

func TestApp_Scan_SkipSweep(t *testing.T) {
	t.Parallel()

	f := newScanFixture(t)
	a, m := setupAppTest(t)
	layout := mocks.NewMockSystemLayout(gomock.NewController(t))
	layout.EXPECT().EnabledUnitLinks().Times(0)

	base := realPipeline(t, f, m)
	a.WithPipeline(func(opts domain.ScanOptions, w io.Writer) (*app.Pipeline, error) {
		p, err := base(opts, w)
		if err != nil {
			return nil, err
		}
		p.Layout = layout
		return p, nil
	})

	m.catalog.EXPECT().ForeignPackages(gomock.Any()).Return(nil, nil)
	m.versions.EXPECT().CurrentVersion(gomock.Any()).Return(domain.InterpreterVersion{Major: 3, Minor: 12}, nil)

	opts := scanOptions()
	opts.SkipSweep = true
	_, err := a.Scan(t.Context(), opts, io.Discard, io.Discard)
	require.NoError(t, err)
}

// lockedBuffer is shared by the progress renderer goroutine and the test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestApp_Scan_WarningsPrintAboveProgressBar(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	root := t.TempDir()
	notDir := filepath.Join(root, "usr", "bin", "tool")
	require.NoError(t, os.MkdirAll(filepath.Dir(notDir), 0o755))
	require.NoError(t, os.WriteFile(notDir, []byte("x"), 0o644))
	// Stat of a path below a regular file fails with ENOTDIR.
	unreadable := filepath.Join(notDir, "child")

	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), "pacman", "-Qqm").Return(ports.CommandResult{Stdout: "tool-git\n"}, nil)
	runner.EXPECT().Run(gomock.Any(), "pacman", "-Qlq", "tool-git").
		Return(ports.CommandResult{Stdout: unreadable + "\n"}, nil)

	log := logger.New()
	a := app.New(runner, log, python.NewChecker(), systemd.NewChecker())

	opts := domain.DefaultScanOptions()
	opts.Jobs = 1
	opts.Progress = domain.ProgressBar
	opts.PythonVersion = domain.InterpreterVersion{Major: 3, Minor: 12}
	opts.UnitRoots = []string{filepath.Join(root, "etc", "systemd", "system")}
	opts.InterpreterLibRoot = filepath.Join(root, "usr", "lib")
	opts.LdSoConf = filepath.Join(root, "none")
	opts.LdSoCache = filepath.Join(root, "none")

	var stderr lockedBuffer
	result, err := a.Scan(t.Context(), opts, io.Discard, &stderr)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)

	got := stderr.String()
	var warning string
	for _, seg := range strings.Split(got, "\r\n") {
		if i := strings.Index(seg, "classify skipped"); i >= 0 {
			warning = seg[i:]
		}
	}
	require.NotEmpty(t, warning, "warning not printed through the progress display: %q", got)
	assert.NotContains(t, warning, "\n")
	assert.NotContains(t, warning, "packages")
}
