package render

import (
	"testing"

	"github.com/dshills/jjdiff/internal/change"
)

func unchangedLine(s string) change.Line {
	return change.Line{Old: &s, New: &s}
}

func addedLine(s string) change.Line {
	return change.Line{Old: nil, New: &s}
}

func repeatLines(f func(int) change.Line, n int) []change.Line {
	out := make([]change.Line, n)
	for i := range out {
		out[i] = f(i)
	}
	return out
}

func TestHunkRunsFindsMaximalRuns(t *testing.T) {
	lines := []change.Line{
		unchangedLine("a"),
		unchangedLine("b"),
		addedLine("c"),
		unchangedLine("d"),
	}
	runs := hunkRuns(lines)
	if len(runs) != 1 || runs[0] != [2]int{2, 3} {
		t.Errorf("expected single run [2,3), got %v", runs)
	}
}

func TestHunkRunsEmptyWhenAllUnchanged(t *testing.T) {
	lines := repeatLines(func(i int) change.Line { return unchangedLine("x") }, 5)
	if runs := hunkRuns(lines); runs != nil {
		t.Errorf("expected no runs, got %v", runs)
	}
}

func TestVisibleRangesKeepsContextWithoutOmissionWhenHunkNearEdges(t *testing.T) {
	lines := make([]change.Line, 7)
	for i := range lines {
		lines[i] = unchangedLine("x")
	}
	lines[3] = addedLine("changed")

	ranges := visibleRanges(lines)
	for _, r := range ranges {
		if r.omitted {
			t.Errorf("expected no omitted ranges when context covers whole file, got %v", r)
		}
	}
}

func TestVisibleRangesMergesHunksSeparatedByFewerThanMinOmitted(t *testing.T) {
	lines := make([]change.Line, 10)
	for i := range lines {
		lines[i] = unchangedLine("x")
	}
	lines[5] = addedLine("a")
	lines[7] = addedLine("b") // only 1 unchanged line (index 6) between hunks

	ranges := visibleRanges(lines)

	var merged *lineRange
	for i := range ranges {
		if ranges[i].start == 5 && ranges[i].end == 8 && !ranges[i].omitted {
			merged = &ranges[i]
		}
	}
	if merged == nil {
		t.Fatalf("expected hunks at 5 and 7 to merge into a single [5,8) range, got %v", ranges)
	}
	for _, r := range ranges {
		if r.omitted && r.start >= 5 && r.end <= 8 {
			t.Errorf("did not expect an omitted range inside the merged hunk, got %v", r)
		}
	}
}

func TestVisibleRangesOmitsDistantUnchangedRuns(t *testing.T) {
	lines := make([]change.Line, 20)
	for i := range lines {
		lines[i] = unchangedLine("x")
	}
	lines[5] = addedLine("a")
	lines[15] = addedLine("b") // gap of 9 unchanged lines, well past MinOmitted

	ranges := visibleRanges(lines)

	var omittedCount int
	for _, r := range ranges {
		if r.omitted {
			omittedCount++
		}
	}
	if omittedCount == 0 {
		t.Fatalf("expected at least one omitted range, got %v", ranges)
	}

	// The gap between the two hunks' context windows (lines 9..12) must be
	// collapsed rather than rendered line by line.
	foundGapOmission := false
	for _, r := range ranges {
		if r.omitted && r.start >= 9 && r.end <= 12 {
			foundGapOmission = true
		}
	}
	if !foundGapOmission {
		t.Errorf("expected the gap between hunks to be omitted, got %v", ranges)
	}
}

func TestVisibleRangesEmptyForNoChanges(t *testing.T) {
	lines := repeatLines(func(i int) change.Line { return unchangedLine("x") }, 5)
	if ranges := visibleRanges(lines); ranges != nil {
		t.Errorf("expected no ranges for an all-unchanged file, got %v", ranges)
	}
}

func TestChangeInclusionAllSelected(t *testing.T) {
	c := change.AddFile{Path: "f", Lines: []change.Line{addedLine("a"), addedLine("b")}}
	refs := change.ChangeRefs(0, c)
	included := change.NewRefSet(refs...)
	if got := changeInclusion(0, c, included); got != stateIncluded {
		t.Errorf("expected stateIncluded, got %v", got)
	}
}

func TestChangeInclusionPartiallySelected(t *testing.T) {
	c := change.AddFile{Path: "f", Lines: []change.Line{addedLine("a"), addedLine("b")}}
	included := change.NewRefSet(change.LineRef{Change: 0, Line: 0})
	if got := changeInclusion(0, c, included); got != statePartial {
		t.Errorf("expected statePartial, got %v", got)
	}
}

func TestChangeInclusionNoneSelected(t *testing.T) {
	c := change.AddFile{Path: "f", Lines: []change.Line{addedLine("a")}}
	included := change.NewRefSet()
	if got := changeInclusion(0, c, included); got != stateExcluded {
		t.Errorf("expected stateExcluded, got %v", got)
	}
}

func TestCheckboxGlyphPerState(t *testing.T) {
	cases := map[inclusionState]rune{
		stateIncluded:  '●',
		statePartial:   '◐',
		stateExcluded:  '○',
	}
	for state, want := range cases {
		if got := checkboxGlyph(state); got != want {
			t.Errorf("state %v: expected %q, got %q", state, want, got)
		}
	}
}

func TestTitleTextPerChangeKind(t *testing.T) {
	cases := []struct {
		c    change.Change
		want string
	}{
		{change.AddFile{Path: "a.txt"}, "a.txt (added)"},
		{change.DeleteFile{Path: "b.txt"}, "b.txt (deleted)"},
		{change.ModifyFile{Path: "c.txt"}, "c.txt"},
		{change.Rename{OldPath: "old", NewPath: "new"}, "old -> new"},
	}
	for _, tc := range cases {
		if got := titleText(tc.c, nil); got != tc.want {
			t.Errorf("titleText(%#v) = %q, want %q", tc.c, got, tc.want)
		}
	}
}

func TestTitleTextUsesFinalPathAfterRename(t *testing.T) {
	changes := []change.Change{
		change.Rename{OldPath: "old.txt", NewPath: "new.txt"},
		change.ModifyFile{Path: "old.txt"},
	}
	renames := renameTable(changes)
	if got := titleText(changes[1], renames); got != "new.txt" {
		t.Errorf("expected modify title to follow the rename to new.txt, got %q", got)
	}
}
