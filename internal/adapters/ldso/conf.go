package ldso

import (
	"bufio"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// maxIncludeDepth bounds nested include directives.
const maxIncludeDepth = 8

// ParseConf returns the library directories listed in the ld.so.conf file at path,
// following include directives. A missing top-level file yields no directories.
func ParseConf(path string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)
	if err := parseConf(path, 0, seen, &dirs); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return dirs, nil
}

func parseConf(path string, depth int, seen map[string]bool, dirs *[]string) error {
	if depth > maxIncludeDepth {
		return zerr.With(zerr.New("ld.so.conf includes nested too deeply"), "path", path)
	}
	if seen[path] {
		return nil
	}
	seen[path] = true

	f, err := os.Open(path) //nolint:gosec // loader configuration path
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // read-only

	base := filepath.Dir(path)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "include":
			for _, pattern := range fields[1:] {
				if !filepath.IsAbs(pattern) {
					pattern = filepath.Join(base, pattern)
				}
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return zerr.With(zerr.Wrap(err, "invalid include pattern"), "pattern", pattern)
				}
				slices.Sort(matches)
				for _, m := range matches {
					if err := parseConf(m, depth+1, seen, dirs); err != nil && !errors.Is(err, iofs.ErrNotExist) {
						return err
					}
				}
			}
		case "hwcap":
			// Obsolete directive, ignored by the loader.
		default:
			for _, dir := range strings.FieldsFunc(line, isConfSeparator) {
				dir = filepath.Clean(dir)
				if !slices.Contains(*dirs, dir) {
					*dirs = append(*dirs, dir)
				}
			}
		}
	}
	return scanner.Err()
}

func isConfSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == ',' || r == ':'
}
