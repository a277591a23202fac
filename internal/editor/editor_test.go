package editor

import (
	"testing"

	"github.com/dshills/jjdiff/internal/change"
)

func addedLine(s string) change.Line {
	return change.Line{New: strPtr(s)}
}

func strPtr(s string) *string { return &s }

func newAddFileChanges() []change.Change {
	return []change.Change{
		change.AddFile{Path: "foo.txt", Lines: []change.Line{addedLine("a"), addedLine("b")}},
	}
}

// S6 from spec.md section 8.
func TestSelectCursorUndoRedoScenarioS6(t *testing.T) {
	e := New(newAddFileChanges())

	e.SelectCursor()

	wantRefs := []change.Ref{
		change.ChangeRef{Change: 0},
		change.LineRef{Change: 0, Line: 0},
		change.LineRef{Change: 0, Line: 1},
	}
	for _, r := range wantRefs {
		if !e.Included(r) {
			t.Errorf("expected %#v to be included after select", r)
		}
	}

	e.Undo()
	for _, r := range wantRefs {
		if e.Included(r) {
			t.Errorf("expected %#v to be excluded after undo", r)
		}
	}

	e.Redo()
	for _, r := range wantRefs {
		if !e.Included(r) {
			t.Errorf("expected %#v to be included after redo", r)
		}
	}
}

func TestToggleTwiceIsIdempotent(t *testing.T) {
	e := New(newAddFileChanges())
	e.SelectCursor()
	e.FirstCursor()
	e.SelectCursor()

	for r := range e.included {
		t.Errorf("expected empty included set after toggling twice, still has %#v", r)
	}
}

func TestEmptyChangeSetAutoConfirms(t *testing.T) {
	e := New(nil)
	if !e.Done() {
		t.Fatal("expected editor with no changes to auto-confirm")
	}
	result, err := e.Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected empty result, got %#v", result)
	}
}

func TestShrinkGrowCursor(t *testing.T) {
	e := New(newAddFileChanges())
	e.ShrinkCursor()
	if _, ok := e.Cursor().(HunkCursor); !ok {
		t.Fatalf("expected HunkCursor after shrink, got %#v", e.Cursor())
	}
	if !e.IsOpened(0) {
		t.Error("expected change 0 to be opened after shrink")
	}

	e.ShrinkCursor()
	if _, ok := e.Cursor().(LineCursor); !ok {
		t.Fatalf("expected LineCursor after second shrink, got %#v", e.Cursor())
	}

	e.GrowCursor()
	if _, ok := e.Cursor().(HunkCursor); !ok {
		t.Fatalf("expected HunkCursor after grow from line, got %#v", e.Cursor())
	}

	e.GrowCursor()
	if _, ok := e.Cursor().(ChangeCursor); !ok {
		t.Fatalf("expected ChangeCursor after grow from hunk, got %#v", e.Cursor())
	}

	e.GrowCursor()
	if e.IsOpened(0) {
		t.Error("expected change 0 to be closed after growing a ChangeCursor")
	}
}

func TestCancelProducesErrCancelled(t *testing.T) {
	e := New(newAddFileChanges())
	e.Exit()
	_, err := e.Result()
	if err != ErrCancelled {
		t.Errorf("expected ErrCancelled, got %v", err)
	}
}
