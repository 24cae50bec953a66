// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// FindFilesByExtension recursively searches root for files ending with
// extension and returns their paths in lexical order. Hidden files and
// directories below root, such as editor backups or VCS metadata, are
// skipped.
func FindFilesByExtension(root string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := walkVisible(root, func(path string, d fs.DirEntry) {
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// Dirs returns root and every visible directory below it.
func Dirs(root string) ([]string, error) {
	var dirs []string
	err := walkVisible(root, func(path string, d fs.DirEntry) {
		if d.IsDir() {
			dirs = append(dirs, path)
		}
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}

func walkVisible(root string, visit func(path string, d fs.DirEntry)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		visit(path, d)
		return nil
	})
}
