package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// ErrOutsideRoot is returned by Resolve for paths that do not name a file
// below Root.
var ErrOutsideRoot = errors.New("path escapes asset root")

// Checker maps stored paths under Prefix onto files below Root.
type Checker struct {
	Root        string
	Prefix      string
	Placeholder string
}

// NewChecker returns a Checker with a cleaned root.
func NewChecker(root, prefix, placeholder string) *Checker {
	return &Checker{Root: filepath.Clean(root), Prefix: prefix, Placeholder: placeholder}
}

// Present reports whether path names a regular file below Root. Paths
// outside Prefix, the placeholder, the bare prefix and paths escaping Root
// are never present. Any stat failure other than a missing file is returned
// so callers never mistake an unreadable volume for a deleted asset.
func (c *Checker) Present(path string) (bool, error) {
	if path == "" || path == c.Placeholder || c.Prefix == "" || !strings.HasPrefix(path, c.Prefix) {
		return false, nil
	}
	full, err := c.Resolve(path)
	if errors.Is(err, ErrOutsideRoot) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", full, err)
	}
	return info.Mode().IsRegular(), nil
}

// Resolve converts a prefixed path to its location on disk.
func (c *Checker) Resolve(path string) (string, error) {
	rel := strings.TrimPrefix(path, c.Prefix)
	if i := strings.IndexAny(rel, "?#"); i >= 0 {
		rel = rel[:i]
	}
	rel = filepath.FromSlash(strings.TrimLeft(rel, "/"))
	if rel == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, path)
	}
	return filepath.Join(c.Root, rel), nil
}
