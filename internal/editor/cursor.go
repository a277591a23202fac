// Package editor implements the selection/editor core (C7): the cursor
// state machine, undo/redo, and dependency-closure toggling over a
// change set's included-refs set.
package editor

import "github.com/dshills/jjdiff/internal/change"

// Cursor is a closed tagged union over the three cursor granularities.
type Cursor interface {
	isCursor()
	changeIndex() int
}

// ChangeCursor is positioned on a whole change's title row.
type ChangeCursor struct {
	Index int
}

// HunkCursor is positioned on a hunk: a maximal run of non-unchanged
// lines [Start, End) within an opened file change.
type HunkCursor struct {
	Index      int
	Start, End int
}

// LineCursor is positioned on a single line within an opened file
// change.
type LineCursor struct {
	Index int
	Line  int
}

func (ChangeCursor) isCursor() {}
func (HunkCursor) isCursor()   {}
func (LineCursor) isCursor()   {}

func (c ChangeCursor) changeIndex() int { return c.Index }
func (c HunkCursor) changeIndex() int   { return c.Index }
func (c LineCursor) changeIndex() int   { return c.Index }

// CursorChangeIndex returns the change index c is positioned within,
// regardless of granularity. Render uses it to highlight the current
// change's title row.
func CursorChangeIndex(c Cursor) int { return c.changeIndex() }

// hunk is a maximal run [Start, End) of non-unchanged lines.
type hunk struct {
	Start, End int
}

// hunksOf returns the maximal runs of non-unchanged lines in lines.
func hunksOf(lines []change.Line) []hunk {
	var hunks []hunk
	start := -1
	for i, l := range lines {
		if l.Status() != change.StatusUnchanged {
			if start == -1 {
				start = i
			}
		} else if start != -1 {
			hunks = append(hunks, hunk{Start: start, End: i})
			start = -1
		}
	}
	if start != -1 {
		hunks = append(hunks, hunk{Start: start, End: len(lines)})
	}
	return hunks
}

func hunkContaining(lines []change.Line, line int) hunk {
	for _, h := range hunksOf(lines) {
		if line >= h.Start && line < h.End {
			return h
		}
	}
	return hunk{Start: line, End: line + 1}
}
