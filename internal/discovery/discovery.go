package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FileSet is an unordered set of file paths.
type FileSet map[string]struct{}

// Add inserts path into the set.
func (s FileSet) Add(path string) {
	s[path] = struct{}{}
}

// Contains reports whether path is in the set.
func (s FileSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Sorted returns the paths in lexical order.
func (s FileSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for path := range s {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// AllFiles returns every non-directory entry below root. Directory symlinks,
// including a symlinked root, are followed; each resolved directory is walked
// once so link cycles terminate. Paths stay spelled under root.
func AllFiles(root string) (FileSet, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	files := FileSet{}
	if !info.IsDir() {
		files.Add(root)
		return files, nil
	}
	visited := map[string]struct{}{}
	if err := walkDir(root, files, visited); err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

func walkDir(dir string, files FileSet, visited map[string]struct{}) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if _, seen := visited[resolved]; seen {
		return nil
	}
	visited[resolved] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		isDir, err := followsToDir(path, entry)
		if err != nil {
			return err
		}
		if isDir {
			if err := walkDir(path, files, visited); err != nil {
				return err
			}
			continue
		}
		files.Add(path)
	}
	return nil
}

// followsToDir reports whether entry is a directory or a symlink resolving to
// one. Dangling links count as files.
func followsToDir(path string, entry fs.DirEntry) (bool, error) {
	if entry.IsDir() {
		return true, nil
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
