// Package change implements the change algebra: the Change tagged union,
// canonical ordering, reverse/split/apply over a working tree, and the
// dependency edges consumed by the selection model.
package change

import "path/filepath"

// LineStatus is the derived status of a Line.
type LineStatus int

const (
	StatusUnchanged LineStatus = iota
	StatusAdded
	StatusDeleted
	StatusChanged
)

func (s LineStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	case StatusChanged:
		return "changed"
	default:
		return "unchanged"
	}
}

// Line is a pair (Old, New) where either side may be absent (nil).
type Line struct {
	Old *string
	New *string
}

// Status returns the derived status of the line.
func (l Line) Status() LineStatus {
	switch {
	case l.Old == nil:
		return StatusAdded
	case l.New == nil:
		return StatusDeleted
	case *l.Old != *l.New:
		return StatusChanged
	default:
		return StatusUnchanged
	}
}

// Reverse swaps Old and New.
func (l Line) Reverse() Line {
	return Line{Old: l.New, New: l.Old}
}

func reverseLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = l.Reverse()
	}
	return out
}

func str(s string) *string { return &s }

// Change is a closed tagged union over the eleven change kinds. Every
// concrete type below implements Change; a type switch over these eleven
// is expected to be exhaustive at every call site (no default case
// that silently drops a kind).
type Change interface {
	isChange()
	// changePath returns the path the change is keyed on for ordering
	// and dependency purposes. For Rename this is the new path.
	changePath() string
}

type Rename struct {
	OldPath string
	NewPath string
}

type ChangeMode struct {
	Path       string
	OldIsExec  bool
	NewIsExec  bool
}

type AddFile struct {
	Path   string
	Lines  []Line
	IsExec bool
}

type ModifyFile struct {
	Path  string
	Lines []Line
}

type DeleteFile struct {
	Path   string
	Lines  []Line
	IsExec bool
}

// ContentHandle is an opaque reference to the bytes of a binary file
// inside a snapshot, resolvable at apply time. In this implementation
// it is simply the absolute path to the snapshot copy.
type ContentHandle string

type AddBinary struct {
	Path    string
	Content ContentHandle
	IsExec  bool
}

type ModifyBinary struct {
	Path        string
	OldContent  ContentHandle
	NewContent  ContentHandle
}

type DeleteBinary struct {
	Path    string
	Content ContentHandle
	IsExec  bool
}

type AddSymlink struct {
	Path string
	To   string
}

type ModifySymlink struct {
	Path   string
	OldTo  string
	NewTo  string
}

type DeleteSymlink struct {
	Path string
	To   string
}

func (Rename) isChange()        {}
func (ChangeMode) isChange()    {}
func (AddFile) isChange()       {}
func (ModifyFile) isChange()    {}
func (DeleteFile) isChange()    {}
func (AddBinary) isChange()     {}
func (ModifyBinary) isChange()  {}
func (DeleteBinary) isChange()  {}
func (AddSymlink) isChange()    {}
func (ModifySymlink) isChange() {}
func (DeleteSymlink) isChange() {}

func (c Rename) changePath() string        { return c.NewPath }
func (c ChangeMode) changePath() string    { return c.Path }
func (c AddFile) changePath() string       { return c.Path }
func (c ModifyFile) changePath() string    { return c.Path }
func (c DeleteFile) changePath() string    { return c.Path }
func (c AddBinary) changePath() string     { return c.Path }
func (c ModifyBinary) changePath() string  { return c.Path }
func (c DeleteBinary) changePath() string  { return c.Path }
func (c AddSymlink) changePath() string    { return c.Path }
func (c ModifySymlink) changePath() string { return c.Path }
func (c DeleteSymlink) changePath() string { return c.Path }

// IsFileChange reports whether c is one of AddFile/ModifyFile/DeleteFile,
// the only kinds that carry selectable Lines.
func IsFileChange(c Change) bool {
	switch c.(type) {
	case AddFile, ModifyFile, DeleteFile:
		return true
	default:
		return false
	}
}

// Lines returns the line slice of a file change, or nil for non-file
// changes.
func Lines(c Change) []Line {
	switch t := c.(type) {
	case AddFile:
		return t.Lines
	case ModifyFile:
		return t.Lines
	case DeleteFile:
		return t.Lines
	default:
		return nil
	}
}

// withPath returns a copy of c with its path (or, for Rename, its
// OldPath) replaced -- used by Split to rewrite paths past a rename.
func withPath(c Change, path string) Change {
	switch t := c.(type) {
	case Rename:
		t.OldPath = path
		return t
	case ChangeMode:
		t.Path = path
		return t
	case AddFile:
		t.Path = path
		return t
	case ModifyFile:
		t.Path = path
		return t
	case DeleteFile:
		t.Path = path
		return t
	case AddBinary:
		t.Path = path
		return t
	case ModifyBinary:
		t.Path = path
		return t
	case DeleteBinary:
		t.Path = path
		return t
	case AddSymlink:
		t.Path = path
		return t
	case ModifySymlink:
		t.Path = path
		return t
	case DeleteSymlink:
		t.Path = path
		return t
	default:
		return c
	}
}

// cleanPath normalizes a path for comparison/storage (forward slashes,
// no leading "./").
func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
