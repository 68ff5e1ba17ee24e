// Package security validates file paths supplied on the command line before
// anything is written to them.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideAllowedDirs is returned for a path that resolves outside every
// allowed directory.
var ErrOutsideAllowedDirs = errors.New("path outside allowed directories")

// ErrBadExtension is returned when a path does not carry an allowed extension.
var ErrBadExtension = errors.New("unsupported file extension")

// ValidateOutputPath checks that path has one of exts (case-insensitive,
// with the leading dot) and resolves inside the working directory or the
// system temp directory. With no exts any extension is accepted.
func ValidateOutputPath(path string, exts ...string) error {
	clean := filepath.Clean(path)
	if len(exts) > 0 {
		ext := strings.ToLower(filepath.Ext(clean))
		ok := false
		for _, e := range exts {
			if ext == strings.ToLower(e) {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: %q (want %s)", ErrBadExtension, ext, strings.Join(exts, ", "))
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	return WithinDirs(clean, []string{cwd, os.TempDir()})
}

// WithinDirs reports whether path resolves inside one of dirs. Symlinks in
// the existing part of path are resolved first, so a link pointing out of
// a directory does not count as inside it.
func WithinDirs(path string, dirs []string) error {
	if len(dirs) == 0 {
		return fmt.Errorf("%w: none given", ErrOutsideAllowedDirs)
	}
	target, err := canonical(path)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		base, err := canonical(dir)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(base, target)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrOutsideAllowedDirs, path)
}

// canonical returns the absolute form of path with symlinks resolved in its
// longest existing prefix.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	existing, rest := abs, ""
	for {
		if resolved, err := filepath.EvalSymlinks(existing); err == nil {
			return filepath.Join(resolved, rest), nil
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return abs, nil
		}
		rest = filepath.Join(filepath.Base(existing), rest)
		existing = parent
	}
}
