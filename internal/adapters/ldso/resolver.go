// Package ldso resolves shared library needs the way the GNU dynamic loader does.
package ldso

import (
	"debug/elf"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/brokenpkg/internal/core/ports"
)

// Config locates the loader's configuration on the scanned system.
type Config struct {
	LdSoConf    string
	LdSoCache   string
	TrustedDirs []string
	// LibraryPath mirrors LD_LIBRARY_PATH.
	LibraryPath []string
}

var _ ports.LibraryResolver = (*Resolver)(nil)

// Resolver implements ports.LibraryResolver.
// Search order: DT_RPATH (only without DT_RUNPATH), LD_LIBRARY_PATH, DT_RUNPATH,
// ld.so.cache, ld.so.conf directories, trusted directories.
type Resolver struct {
	libraryPath []string
	cache       Cache
	confDirs    []string
	trusted     []string

	compat sync.Map // path -> objectIdentity
}

type objectIdentity struct {
	class   elf.Class
	machine elf.Machine
	ok      bool
}

// NewResolver loads the loader configuration described by cfg.
// An unreadable or corrupt cache or configuration is logged and treated as empty.
func NewResolver(cfg Config, logger ports.Logger) *Resolver {
	r := &Resolver{
		libraryPath: cleanDirs(cfg.LibraryPath),
		trusted:     cleanDirs(cfg.TrustedDirs),
		cache:       Cache{},
	}

	if cfg.LdSoCache != "" {
		cache, err := LoadCache(cfg.LdSoCache)
		if err != nil {
			logger.Error(err)
		} else {
			r.cache = cache
		}
	}

	if cfg.LdSoConf != "" {
		dirs, err := ParseConf(cfg.LdSoConf)
		if err != nil {
			logger.Error(err)
		}
		r.confDirs = dirs
	}

	return r
}

// Resolve returns the path the loader would map for need when loading obj.
func (r *Resolver) Resolve(need string, obj ports.LinkedObject) (string, bool) {
	if strings.Contains(need, "/") {
		for _, p := range expand(need, obj) {
			if r.compatible(p, obj) {
				return p, true
			}
		}
		return "", false
	}

	var dirs []string
	if len(obj.RunPath) == 0 {
		dirs = append(dirs, r.expandDirs(obj.RPath, obj)...)
	}
	dirs = append(dirs, r.libraryPath...)
	dirs = append(dirs, r.expandDirs(obj.RunPath, obj)...)

	if p, ok := r.searchDirs(need, dirs, obj); ok {
		return p, true
	}

	for _, p := range r.cache.Lookup(need) {
		if r.compatible(p, obj) {
			return p, true
		}
	}

	if p, ok := r.searchDirs(need, r.confDirs, obj); ok {
		return p, true
	}
	return r.searchDirs(need, r.trusted, obj)
}

func (r *Resolver) searchDirs(need string, dirs []string, obj ports.LinkedObject) (string, bool) {
	for _, dir := range dirs {
		p := filepath.Join(dir, need)
		if r.compatible(p, obj) {
			return p, true
		}
	}
	return "", false
}

func (r *Resolver) expandDirs(entries []string, obj ports.LinkedObject) []string {
	var dirs []string
	for _, entry := range entries {
		for _, dir := range filepath.SplitList(entry) {
			if dir == "" {
				continue
			}
			dirs = append(dirs, expand(dir, obj)...)
		}
	}
	return dirs
}

// compatible reports whether path is an ELF object the loader could map into obj.
func (r *Resolver) compatible(path string, obj ports.LinkedObject) bool {
	var id objectIdentity
	if v, ok := r.compat.Load(path); ok {
		id = v.(objectIdentity) //nolint:forcetypeassert // only objectIdentity is stored
	} else {
		id = identify(path)
		r.compat.Store(path, id)
	}

	if !id.ok {
		return false
	}
	if obj.Class != elf.ELFCLASSNONE && id.class != obj.Class {
		return false
	}
	if obj.Machine != elf.EM_NONE && id.machine != obj.Machine {
		return false
	}
	return true
}

func identify(path string) objectIdentity {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return objectIdentity{}
	}
	f, err := elf.Open(path)
	if err != nil {
		return objectIdentity{}
	}
	defer f.Close() //nolint:errcheck // read-only
	return objectIdentity{class: f.Class, machine: f.Machine, ok: true}
}

// expand substitutes the loader's dynamic string tokens in s.
func expand(s string, obj ports.LinkedObject) []string {
	if !strings.Contains(s, "$") {
		return []string{s}
	}

	origin := filepath.Dir(obj.Path)
	s = replaceToken(s, "ORIGIN", origin)
	s = replaceToken(s, "PLATFORM", platform(obj.Machine))

	if !strings.Contains(s, "$LIB") && !strings.Contains(s, "${LIB}") {
		return []string{s}
	}
	libDirs := []string{"lib64", "lib"}
	if obj.Class == elf.ELFCLASS32 {
		libDirs = []string{"lib32", "lib"}
	}
	out := make([]string, 0, len(libDirs))
	for _, lib := range libDirs {
		out = append(out, replaceToken(s, "LIB", lib))
	}
	return out
}

func replaceToken(s, name, value string) string {
	s = strings.ReplaceAll(s, "${"+name+"}", value)
	return strings.ReplaceAll(s, "$"+name, value)
}

// platform returns the AT_PLATFORM string the loader reports for machine.
func platform(machine elf.Machine) string {
	switch machine {
	case elf.EM_X86_64:
		return "x86_64"
	case elf.EM_386:
		return "i686"
	case elf.EM_AARCH64:
		return "aarch64"
	case elf.EM_RISCV:
		return "riscv64"
	case elf.EM_PPC64:
		return "ppc64le"
	default:
		return strings.ToLower(strings.TrimPrefix(machine.String(), "EM_"))
	}
}

func cleanDirs(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d == "" {
			continue
		}
		out = append(out, filepath.Clean(d))
	}
	return out
}
