// Package shell provides the external command runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
	"go.trai.ch/zerr"
)

// localeOverrides pin the output language of queried tools so their output can be parsed.
var localeOverrides = map[string]string{
	"LANG":   "C",
	"LC_ALL": "C",
}

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
	env    []string
}

// NewRunner creates a new Runner inheriting the process environment.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
		env:    resolveEnvironment(os.Environ(), localeOverrides),
	}
}

// Run executes name with args and captures stdout and stderr.
// The command never reads stdin. A non-zero exit status is reported in the result.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (ports.CommandResult, error) {
	executable := name
	if !filepath.IsAbs(name) && !strings.Contains(name, string(filepath.Separator)) {
		lp, err := lookPath(name, r.env)
		if err != nil {
			return ports.CommandResult{}, zerr.With(domain.ErrCommandNotFound, "command", name)
		}
		executable = lp
	}

	r.logger.Debug("running " + strings.Join(append([]string{name}, args...), " "))

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // query commands built by adapters
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Env = r.env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ports.CommandResult{
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				ExitCode: exitErr.ExitCode(),
			}, nil
		}
		return ports.CommandResult{}, zerr.With(zerr.Wrap(err, "failed to start command"), "command", name)
	}

	return ports.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}, nil
}

// resolveEnvironment applies overrides on top of the system environment.
// The result is sorted by key order of first appearance so runs are reproducible.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	keys := make([]string, 0, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			keys = append(keys, k)
		}
		envMap[k] = v
	}

	for k, v := range overrides {
		if _, seen := envMap[k]; !seen {
			keys = append(keys, k)
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
