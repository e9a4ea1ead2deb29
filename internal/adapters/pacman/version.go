package pacman

import (
	"context"
	"errors"
	"strings"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/zerr"
)

// InterpreterPackage is the package whose version defines the current interpreter.
const InterpreterPackage = "python"

// CurrentVersion reads the installed interpreter version from pacman -Qi python.
func (c *Client) CurrentVersion(ctx context.Context) (domain.InterpreterVersion, error) {
	out, err := c.query(ctx, "-Qi", InterpreterPackage)
	if err != nil {
		if isContextErr(err) {
			return domain.InterpreterVersion{}, err
		}
		return domain.InterpreterVersion{}, errors.Join(domain.ErrInterpreterVersionUnavailable, err)
	}

	raw, ok := versionField(out)
	if !ok {
		return domain.InterpreterVersion{}, zerr.With(
			domain.ErrInterpreterVersionUnavailable, "reason", "no Version field in package info",
		)
	}

	v, err := domain.ParseInterpreterVersion(raw)
	if err != nil {
		return domain.InterpreterVersion{}, errors.Join(domain.ErrInterpreterVersionUnavailable, err)
	}
	return v, nil
}

// versionField extracts the value of the "Version : X.Y.Z-N" line.
func versionField(info string) (string, bool) {
	for _, line := range lines(info) {
		key, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(key) != "Version" {
			continue
		}
		return strings.TrimSpace(value), true
	}
	return "", false
}
