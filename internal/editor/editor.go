package editor

import (
	"errors"

	"github.com/dshills/jjdiff/internal/change"
)

// ErrCancelled is returned by Result when the user requested exit
// without confirming a selection.
var ErrCancelled = errors.New("editor: selection cancelled")

// Editor holds the full C7 state machine over a change set.
type Editor struct {
	changes  []change.Change
	graph    *change.DependencyGraph
	included change.RefSet
	opened   map[int]bool
	cursor   Cursor

	undoStack []undoEntry
	redoStack []undoEntry

	done      bool
	cancelled bool
}

// New builds an Editor over changes, positioned at the first change.
// If changes is empty, the editor auto-confirms an empty selection
// (there is nothing to show or decide).
func New(changes []change.Change) *Editor {
	e := &Editor{
		changes:  changes,
		graph:    change.BuildDependencyGraph(changes),
		included: change.NewRefSet(),
		opened:   map[int]bool{},
		cursor:   ChangeCursor{Index: 0},
	}
	if len(changes) == 0 {
		e.done = true
	}
	return e
}

// Changes returns the underlying change set.
func (e *Editor) Changes() []change.Change { return e.changes }

// Cursor returns the current cursor position.
func (e *Editor) Cursor() Cursor { return e.cursor }

// IsOpened reports whether the file change at index i is expanded.
func (e *Editor) IsOpened(i int) bool { return e.opened[i] }

// Included reports whether ref is currently selected.
func (e *Editor) Included(ref change.Ref) bool { return e.included.Has(ref) }

// IncludedSet returns the live included-refs set, for callers (the
// render pipeline) that need to query membership across many refs per
// frame without one accessor call each.
func (e *Editor) IncludedSet() change.RefSet { return e.included }

// Done reports whether the editor has exited (confirmed or cancelled).
func (e *Editor) Done() bool { return e.done }

// Result returns the confirmed selection, or ErrCancelled if the user
// cancelled.
func (e *Editor) Result() (change.RefSet, error) {
	if !e.done {
		return nil, errors.New("editor: not done")
	}
	if e.cancelled {
		return nil, ErrCancelled
	}
	return e.included.Clone(), nil
}

func (e *Editor) isFileChange(i int) bool {
	return i >= 0 && i < len(e.changes) && change.IsFileChange(e.changes[i])
}

func (e *Editor) lines(i int) []change.Line {
	if !e.isFileChange(i) {
		return nil
	}
	return change.Lines(e.changes[i])
}

// Exit cancels the session: no refs are included.
func (e *Editor) Exit() {
	e.done = true
	e.cancelled = true
}

// Confirm ends the session, keeping the current included set.
func (e *Editor) Confirm() {
	e.done = true
	e.cancelled = false
}

// FirstCursor jumps to the first reachable position without opening or
// closing any change.
func (e *Editor) FirstCursor() {
	if len(e.changes) == 0 {
		return
	}
	e.cursor = ChangeCursor{Index: 0}
}

// LastCursor jumps to the last reachable position without opening or
// closing any change.
func (e *Editor) LastCursor() {
	if len(e.changes) == 0 {
		return
	}
	e.cursor = ChangeCursor{Index: len(e.changes) - 1}
}

// GrowCursor decreases cursor granularity: ChangeCursor closes the
// change; HunkCursor becomes ChangeCursor; LineCursor becomes the
// HunkCursor spanning its maximal run of non-unchanged lines.
func (e *Editor) GrowCursor() {
	switch c := e.cursor.(type) {
	case ChangeCursor:
		delete(e.opened, c.Index)
	case HunkCursor:
		e.cursor = ChangeCursor{Index: c.Index}
	case LineCursor:
		h := hunkContaining(e.lines(c.Index), c.Line)
		e.cursor = HunkCursor{Index: c.Index, Start: h.Start, End: h.End}
	}
}

// ShrinkCursor increases cursor granularity: ChangeCursor on a file
// change opens it and becomes a HunkCursor on its first hunk; HunkCursor
// becomes a LineCursor at its start; LineCursor is fixed.
func (e *Editor) ShrinkCursor() {
	switch c := e.cursor.(type) {
	case ChangeCursor:
		if !e.isFileChange(c.Index) {
			return
		}
		e.opened[c.Index] = true
		hunks := hunksOf(e.lines(c.Index))
		if len(hunks) == 0 {
			return
		}
		e.cursor = HunkCursor{Index: c.Index, Start: hunks[0].Start, End: hunks[0].End}
	case HunkCursor:
		e.cursor = LineCursor{Index: c.Index, Line: c.Start}
	case LineCursor:
		// fixed
	}
}

// NextCursor and PrevCursor move within the currently opened file
// change; when exhausted, they wrap to the next/previous change index
// (modulo) that is a file change and opened. ChangeCursor simply moves
// +-1 modulo the number of changes.
func (e *Editor) NextCursor() { e.moveCursor(1) }
func (e *Editor) PrevCursor() { e.moveCursor(-1) }

func (e *Editor) moveCursor(dir int) {
	n := len(e.changes)
	if n == 0 {
		return
	}

	switch c := e.cursor.(type) {
	case ChangeCursor:
		e.cursor = ChangeCursor{Index: mod(c.Index+dir, n)}

	case HunkCursor:
		hunks := hunksOf(e.lines(c.Index))
		idx := hunkIndex(hunks, c.Start)
		if next, ok := stepWithin(idx, len(hunks), dir); ok {
			h := hunks[next]
			e.cursor = HunkCursor{Index: c.Index, Start: h.Start, End: h.End}
			return
		}
		if target, ok := e.nextOpenedFileChange(c.Index, dir); ok {
			hunks = hunksOf(e.lines(target))
			pos := 0
			if dir < 0 {
				pos = len(hunks) - 1
			}
			h := hunks[pos]
			e.cursor = HunkCursor{Index: target, Start: h.Start, End: h.End}
		}

	case LineCursor:
		lines := e.lines(c.Index)
		if next, ok := stepWithin(c.Line, len(lines), dir); ok {
			e.cursor = LineCursor{Index: c.Index, Line: next}
			return
		}
		if target, ok := e.nextOpenedFileChange(c.Index, dir); ok {
			lines = e.lines(target)
			pos := 0
			if dir < 0 {
				pos = len(lines) - 1
			}
			e.cursor = LineCursor{Index: target, Line: pos}
		}
	}
}

func stepWithin(idx, length, dir int) (int, bool) {
	next := idx + dir
	if next < 0 || next >= length {
		return 0, false
	}
	return next, true
}

func hunkIndex(hunks []hunk, start int) int {
	for i, h := range hunks {
		if h.Start == start {
			return i
		}
	}
	return 0
}

// nextOpenedFileChange scans change indices in dir order (wrapping
// modulo n), excluding i itself on the first lap, for the next opened
// file change.
func (e *Editor) nextOpenedFileChange(i, dir int) (int, bool) {
	n := len(e.changes)
	for step := 1; step <= n; step++ {
		idx := mod(i+dir*step, n)
		if e.isFileChange(idx) && e.opened[idx] {
			return idx, true
		}
	}
	return 0, false
}

func mod(a, n int) int {
	if n == 0 {
		return 0
	}
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// cursorRefs computes the refs a cursor position denotes, per the
// selectCursor contract in SPEC_FULL.md.
func (e *Editor) cursorRefs(c Cursor) []change.Ref {
	switch t := c.(type) {
	case ChangeCursor:
		return change.ChangeRefs(t.Index, e.changes[t.Index])

	case HunkCursor:
		var refs []change.Ref
		for j := t.Start; j < t.End; j++ {
			refs = append(refs, change.LineRef{Change: t.Index, Line: j})
		}
		return refs

	case LineCursor:
		return []change.Ref{change.LineRef{Change: t.Index, Line: t.Line}}
	}
	return nil
}

// SelectCursor toggles inclusion of the refs at the current cursor
// position under the dependency DAG, then advances the cursor.
func (e *Editor) SelectCursor() {
	e.toggle(e.cursorRefs(e.cursor))
	e.NextCursor()
}

// SelectAll toggles inclusion of every ref in the change set (the
// select_all command, supplemented from the original's keybinding
// table -- see SPEC_FULL.md).
func (e *Editor) SelectAll() {
	e.toggle(change.AllRefs(e.changes))
}

func (e *Editor) toggle(refs []change.Ref) {
	if len(refs) == 0 {
		return
	}

	allIncluded := true
	for _, r := range refs {
		if !e.included.Has(r) {
			allIncluded = false
			break
		}
	}

	var action Action
	if !allIncluded {
		closure := change.Closure(refs, e.graph.Deps)
		var toAdd []change.Ref
		for r := range closure {
			if !e.included.Has(r) {
				toAdd = append(toAdd, r)
			}
		}
		action = AddIncludes{Refs: toAdd}
	} else {
		closure := change.Closure(refs, e.graph.Dependants)
		var toRemove []change.Ref
		for r := range closure {
			if e.included.Has(r) {
				toRemove = append(toRemove, r)
			}
		}
		action = RemoveIncludes{Refs: toRemove}
	}

	e.applyAction(action)
}

func (e *Editor) applyAction(action Action) {
	e.redoStack = nil
	e.undoStack = append(e.undoStack, undoEntry{
		action: action,
		opened: cloneOpened(e.opened),
		cursor: e.cursor,
	})
	action.Apply(e.included)
}

// Undo reverts the last action, restoring the opened set and cursor to
// what they were immediately before it was applied.
func (e *Editor) Undo() {
	if len(e.undoStack) == 0 {
		return
	}
	n := len(e.undoStack) - 1
	entry := e.undoStack[n]
	e.undoStack = e.undoStack[:n]

	redoSnapshot := undoEntry{action: entry.action, opened: cloneOpened(e.opened), cursor: e.cursor}
	entry.action.Revert(e.included)
	e.opened = entry.opened
	e.cursor = entry.cursor

	e.redoStack = append(e.redoStack, redoSnapshot)
}

// Redo reapplies the most recently undone action.
func (e *Editor) Redo() {
	if len(e.redoStack) == 0 {
		return
	}
	n := len(e.redoStack) - 1
	entry := e.redoStack[n]
	e.redoStack = e.redoStack[:n]

	undoSnapshot := undoEntry{action: entry.action, opened: cloneOpened(e.opened), cursor: e.cursor}
	entry.action.Apply(e.included)
	e.opened = entry.opened
	e.cursor = entry.cursor

	e.undoStack = append(e.undoStack, undoSnapshot)
}
