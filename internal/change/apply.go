package change

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Apply mutates the working tree at root according to changes, in
// order. It is sequential and not atomic: a failure partway through
// leaves a partially-applied tree. The editor itself never calls
// Apply; the caller invokes it only after a confirmed selection.
//
// A single walk-level renames table is built once, up front, the same
// way Split builds its rewrite table (see DESIGN.md, open question 1):
// a non-Rename change recorded at a path some Rename in the stream
// moves is rewritten to that Rename's new path before being applied,
// since the Rename itself runs first and the old path no longer exists
// on disk by the time Apply reaches the later change.
func Apply(root string, changes []Change) error {
	renames := map[string]string{}
	for _, c := range changes {
		if r, ok := c.(Rename); ok {
			renames[r.OldPath] = r.NewPath
		}
	}
	rewrite := func(path string) string {
		if p, ok := renames[path]; ok {
			return p
		}
		return path
	}

	for _, c := range changes {
		if err := applyOne(root, rewriteChangePath(c, rewrite)); err != nil {
			return err
		}
	}
	return nil
}

// rewriteChangePath returns c with its path replaced by rewrite(path).
// Rename is left untouched: its OldPath is the path on disk at the
// moment Apply reaches it, not a path to resolve through the table.
func rewriteChangePath(c Change, rewrite func(string) string) Change {
	switch t := c.(type) {
	case Rename:
		return t
	case ChangeMode:
		t.Path = rewrite(t.Path)
		return t
	case AddFile:
		t.Path = rewrite(t.Path)
		return t
	case ModifyFile:
		t.Path = rewrite(t.Path)
		return t
	case DeleteFile:
		t.Path = rewrite(t.Path)
		return t
	case AddBinary:
		t.Path = rewrite(t.Path)
		return t
	case ModifyBinary:
		t.Path = rewrite(t.Path)
		return t
	case DeleteBinary:
		t.Path = rewrite(t.Path)
		return t
	case AddSymlink:
		t.Path = rewrite(t.Path)
		return t
	case ModifySymlink:
		t.Path = rewrite(t.Path)
		return t
	case DeleteSymlink:
		t.Path = rewrite(t.Path)
		return t
	default:
		return c
	}
}

func applyOne(root string, c Change) error {
	switch t := c.(type) {
	case Rename:
		oldPath := filepath.Join(root, filepath.FromSlash(t.OldPath))
		newPath := filepath.Join(root, filepath.FromSlash(t.NewPath))
		if err := os.MkdirAll(filepath.Dir(newPath), 0o777); err != nil {
			return err
		}
		return os.Rename(oldPath, newPath)

	case ChangeMode:
		return setIsExec(filepath.Join(root, filepath.FromSlash(t.Path)), t.NewIsExec)

	case AddFile:
		return writeFile(root, t.Path, t.Lines, t.IsExec)

	case ModifyFile:
		return writeFile(root, t.Path, t.Lines, false)

	case DeleteFile:
		return deleteAndPrune(root, t.Path)

	case AddBinary:
		if err := copyContent(root, t.Path, t.Content); err != nil {
			return err
		}
		if t.IsExec {
			return setIsExec(filepath.Join(root, filepath.FromSlash(t.Path)), true)
		}
		return nil

	case ModifyBinary:
		return copyContent(root, t.Path, t.NewContent)

	case DeleteBinary:
		return deleteAndPrune(root, t.Path)

	case AddSymlink:
		return writeSymlink(root, t.Path, t.To, false)

	case ModifySymlink:
		full := filepath.Join(root, filepath.FromSlash(t.Path))
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return err
		}
		return writeSymlink(root, t.Path, t.NewTo, false)

	case DeleteSymlink:
		return deleteAndPrune(root, t.Path)
	}
	return nil
}

// writeFile writes lines LF-joined, with a final newline iff the last
// line's New side is non-empty, matching write_lines in the original.
func writeFile(root, path string, lines []Line, isExec bool) error {
	full := filepath.Join(root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o777); err != nil {
		return err
	}

	f, err := os.Create(full)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeLines(f, lines); err != nil {
		return err
	}
	if isExec {
		return setIsExec(full, true)
	}
	return nil
}

func writeLines(w io.Writer, lines []Line) error {
	var contents []string
	for _, l := range lines {
		if l.New != nil {
			contents = append(contents, *l.New)
		}
	}
	if len(contents) == 0 {
		return nil
	}
	text := strings.Join(contents, "\n")
	if contents[len(contents)-1] != "" {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

func setIsExec(path string, isExec bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mode := info.Mode()
	if isExec {
		mode |= 0o100
	} else {
		mode &^= 0o100
	}
	return os.Chmod(path, mode)
}

func copyContent(root, path string, handle ContentHandle) error {
	full := filepath.Join(root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o777); err != nil {
		return err
	}
	src, err := os.Open(string(handle))
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(full)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func writeSymlink(root, path, to string, isExec bool) error {
	full := filepath.Join(root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o777); err != nil {
		return err
	}
	_ = isExec // symlinks carry no exec bit of their own
	return os.Symlink(to, full)
}

func deleteAndPrune(root, path string) error {
	full := filepath.Join(root, filepath.FromSlash(path))
	if err := os.Remove(full); err != nil {
		return err
	}

	dir := filepath.Dir(full)
	for dir != root {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return nil
		}
		if err := os.Remove(dir); err != nil {
			return nil
		}
		dir = filepath.Dir(dir)
	}
	return nil
}
