package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
	"go.trai.ch/zerr"
)

// interpreterDirPrefix starts the name of every per-version interpreter library directory.
const interpreterDirPrefix = "python"

var _ ports.SystemLayout = (*Layout)(nil)

// Layout implements ports.SystemLayout by listing directories on disk.
type Layout struct {
	unitRoots []string
	libRoot   string
}

// NewLayout creates a Layout over the service-manager configuration roots and
// the directory holding the interpreter library directories.
func NewLayout(unitRoots []string, libRoot string) *Layout {
	roots := make([]string, 0, len(unitRoots))
	for _, r := range unitRoots {
		roots = append(roots, filepath.Clean(r))
	}
	return &Layout{unitRoots: roots, libRoot: filepath.Clean(libRoot)}
}

// EnabledUnitLinks returns the symlinks found directly in each "*.target.*"
// directory of every unit root, sorted. Missing roots are skipped.
func (l *Layout) EnabledUnitLinks() ([]string, error) {
	var links []string
	for _, root := range l.unitRoots {
		targets, err := readDir(root)
		if err != nil {
			return nil, err
		}
		for _, t := range targets {
			if !strings.Contains(t.Name(), ".target.") {
				continue
			}
			dir := filepath.Join(root, t.Name())
			if !isDir(dir) {
				continue
			}
			entries, err := readDir(dir)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if e.Type()&iofs.ModeSymlink != 0 {
					links = append(links, filepath.Join(dir, e.Name()))
				}
			}
		}
	}
	slices.Sort(links)
	return links, nil
}

// StaleInterpreterDirs returns the directories under the library root named
// "python<major>*" other than "python<major>.<minor>" of current, sorted by path.
func (l *Layout) StaleInterpreterDirs(current domain.InterpreterVersion) ([]domain.InterpreterDir, error) {
	entries, err := readDir(l.libRoot)
	if err != nil {
		return nil, err
	}

	prefix := interpreterDirPrefix + strconv.Itoa(current.Major)
	own := interpreterDirPrefix + current.String()

	var dirs []domain.InterpreterDir
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || name == own {
			continue
		}
		dir := filepath.Join(l.libRoot, name)
		if !isDir(dir) {
			continue
		}
		// "python3" and similar carry no minor version and keep the zero version.
		version, _ := domain.ParseInterpreterVersion(strings.TrimPrefix(name, interpreterDirPrefix))
		dirs = append(dirs, domain.InterpreterDir{Path: dir, Version: version})
	}
	slices.SortFunc(dirs, func(a, b domain.InterpreterDir) int {
		return strings.Compare(a.Path, b.Path)
	})
	return dirs, nil
}

// readDir lists dir, treating a missing directory as empty.
func readDir(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(errors.Join(domain.ErrPathStatFailed, err), "path", dir)
	}
	return entries, nil
}

// isDir follows symlinks, so linked target directories are listed too.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
