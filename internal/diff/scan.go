// Package diff implements the content scan, similarity scoring, line
// alignment and tree-diff engine (C1-C4 in SPEC_FULL.md).
package diff

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrPathEscape is returned when a resolved path would leave the scan
// root; enumeration treats it like a missing key rather than a fatal
// error.
var ErrPathEscape = errors.New("diff: path escapes root")

// Content is either a File or a Symlink.
type Content interface {
	isContent()
}

// File is a regular file: a path to its bytes plus its executable bit.
type File struct {
	Handle string
	IsExec bool
}

// Symlink is a symbolic link and its target.
type Symlink struct {
	Target string
}

func (File) isContent()    {}
func (Symlink) isContent() {}

// Tree is a finite mapping from root-relative slash path to Content.
type Tree struct {
	Root    string
	entries map[string]Content
}

// Scan enumerates root into a Tree of path -> Content. Symlinks are
// recognized before file-type detection so a symlink to a file is
// never mis-read as that file's content.
func Scan(root string) (*Tree, error) {
	t := &Tree{Root: root, entries: map[string]Content{}}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == ".." || strings.HasPrefix(rel, "../") {
			// ErrPathEscape: treated as a missing key, so the entry is skipped.
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		if info.Mode()&os.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			t.entries[rel] = Symlink{Target: target}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		t.entries[rel] = File{Handle: path, IsExec: info.Mode()&0o111 != 0}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Get resolves a root-relative path to its Content, or reports ok=false
// if it is not present.
func (t *Tree) Get(path string) (Content, bool) {
	c, ok := t.entries[path]
	return c, ok
}

// Paths returns every path in the tree, sorted.
func (t *Tree) Paths() []string {
	paths := make([]string, 0, len(t.entries))
	for p := range t.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Has reports whether path is present in the tree.
func (t *Tree) Has(path string) bool {
	_, ok := t.entries[path]
	return ok
}
