// Package filesystem provides the directory listing and manifest writing
// operations used by the generator.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/modelindex/internal/types"
)

// Filesystem access errors. Every error returned by Service wraps ErrFilesystem.
var (
	ErrFilesystem     = errors.New("filesystem access error")
	ErrDirNotFound    = fmt.Errorf("%w: directory not found", ErrFilesystem)
	ErrNotDirectory   = fmt.Errorf("%w: not a directory", ErrFilesystem)
	ErrPermission     = fmt.Errorf("%w: permission denied", ErrFilesystem)
	ErrPathTraversal  = fmt.Errorf("%w: path traversal not allowed", ErrFilesystem)
	ErrOutputNotFound = fmt.Errorf("%w: output directory not found", ErrFilesystem)
)

// Service lists directories and writes manifest files.
// When root is set, every path is resolved inside it.
type Service struct {
	root string
}

// New creates a new Service. An empty root leaves paths unconfined.
func New(root string) *Service {
	if root == "" {
		return &Service{}
	}
	absPath, _ := filepath.Abs(root)
	return &Service{root: absPath}
}

// Root returns the directory paths are confined to, or "" when unconfined.
func (s *Service) Root() string {
	return s.root
}

// ResolvePath resolves a path against the root and validates it.
func (s *Service) ResolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if s.root == "" {
		return path, nil
	}

	fullPath := path
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(s.root, fullPath)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s - %w", ErrFilesystem, path, err)
	}

	// Security check: ensure path is within root
	relPath, err := filepath.Rel(s.root, absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, path)
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, path)
	}

	return absPath, nil
}

// ListEntries returns the names of all entries directly inside dir.
// Entries of every type are returned; the order is the one os.ReadDir yields.
func (s *Service) ListEntries(dir string) (types.DirectoryListing, error) {
	fullPath, err := s.ResolvePath(dir)
	if err != nil {
		return types.DirectoryListing{}, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return types.DirectoryListing{}, classify(err, dir, "failed to stat directory")
	}
	if !info.IsDir() {
		return types.DirectoryListing{}, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return types.DirectoryListing{}, classify(err, dir, "failed to list directory")
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return types.DirectoryListing{
		Dir:     fullPath,
		Entries: names,
	}, nil
}

// WriteFile replaces the content of path with data.
// The parent directory must already exist. When path is a symlink, the
// link's target is replaced and the link is left in place.
func (s *Service) WriteFile(path string, data []byte) (string, error) {
	fullPath, err := s.ResolvePath(path)
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(fullPath); err == nil && info.IsDir() {
		return "", fmt.Errorf("%w: cannot write manifest over directory: %s", ErrFilesystem, path)
	}

	target, err := s.writeTarget(fullPath)
	if err != nil {
		return "", err
	}

	if err := writeFileAtomic(target, data, 0o644); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrOutputNotFound, filepath.Dir(path))
		}
		return "", classify(err, path, "failed to write file")
	}

	return fullPath, nil
}

// writeTarget follows a symlink at path, since the atomic rename would
// otherwise replace the link itself. A dangling link resolves to the path
// it names.
func (s *Service) writeTarget(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return path, nil
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		link, readErr := os.Readlink(path)
		if readErr != nil {
			return "", classify(readErr, path, "failed to read symlink")
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(path), link)
		}
		target = link
	}

	if !s.contains(target) {
		return "", fmt.Errorf("%w: %s links outside root", ErrPathTraversal, path)
	}
	return target, nil
}

// contains reports whether path lies inside the root. Both the root as given
// and its symlink-free form are accepted.
func (s *Service) contains(path string) bool {
	if s.root == "" {
		return true
	}
	roots := []string{s.root}
	if resolved, err := filepath.EvalSymlinks(s.root); err == nil && resolved != s.root {
		roots = append(roots, resolved)
	}
	for _, root := range roots {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func classify(err error, path, action string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrDirNotFound, path)
	}
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s", ErrPermission, path)
	}
	return fmt.Errorf("%w: %s: %s - %w", ErrFilesystem, action, path, err)
}
