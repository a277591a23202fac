package render

import (
	"fmt"

	"github.com/dshills/jjdiff/internal/change"
	"github.com/dshills/jjdiff/internal/editor"
	"github.com/pmezard/go-difflib/difflib"
)

// Thresholds from the render pipeline contract: hunks separated by fewer
// than MinOmitted unchanged lines are merged together; otherwise
// MinContext lines of surrounding context are kept and the rest is
// collapsed into a single "omitted" row.
const (
	MinOmitted = 2
	MinContext = 3
)

// SelectionMarker is emitted at every rendered line the current cursor
// covers, so the frame driver can scroll it into view.
type SelectionMarker struct{}

// inclusionState summarizes how much of a change's refs are selected.
type inclusionState int

const (
	stateExcluded inclusionState = iota
	statePartial
	stateIncluded
)

func changeInclusion(i int, c change.Change, included change.RefSet) inclusionState {
	refs := change.ChangeRefs(i, c)
	if len(refs) == 0 {
		return stateExcluded
	}
	any, all := false, true
	for _, r := range refs {
		if included.Has(r) {
			any = true
		} else {
			all = false
		}
	}
	switch {
	case all:
		return stateIncluded
	case any:
		return statePartial
	default:
		return stateExcluded
	}
}

func checkboxGlyph(s inclusionState) rune {
	switch s {
	case stateIncluded:
		return '●'
	case statePartial:
		return '◐'
	default:
		return '○'
	}
}

// Frame builds the single Drawable for an entire editor frame: one block
// per change, each carrying its own SelectionMarker rows where the
// current cursor sits.
func Frame(ed *editor.Editor, included change.RefSet) Drawable {
	changes := ed.Changes()
	cursor := ed.Cursor()
	renames := renameTable(changes)
	rows := make([]Drawable, 0, len(changes)*2)
	for i, c := range changes {
		if cc, ok := cursor.(editor.ChangeCursor); ok && cc.Index == i {
			rows = append(rows, MarkerDrawable{Value: SelectionMarker{}})
		}
		rows = append(rows, changeTitle(i, c, included, cursor, renames))
		if !ed.IsOpened(i) {
			continue
		}
		if body := changeBody(i, c, cursor); body != nil {
			rows = append(rows, body)
		}
	}
	return Rows{Children: rows}
}

// renameTable maps a path to the final name it ends up under, so a
// change entry that still carries a pre-rename path renders under the
// name the tree will actually have once every change lands. The diff
// engine already records a post-rename content change at the new path,
// so titles of its output are left as they are.
func renameTable(changes []change.Change) map[string]string {
	renames := make(map[string]string)
	for _, c := range changes {
		if r, ok := c.(change.Rename); ok {
			renames[r.OldPath] = r.NewPath
		}
	}
	return renames
}

func finalPath(renames map[string]string, path string) string {
	if p, ok := renames[path]; ok {
		return p
	}
	return path
}

func changeTitle(i int, c change.Change, included change.RefSet, cursor editor.Cursor, renames map[string]string) Drawable {
	state := changeInclusion(i, c, included)
	style := DefaultStyle()
	if editor.CursorChangeIndex(cursor) == i {
		style = style.WithBold()
	}
	text := fmt.Sprintf("%c %s", checkboxGlyph(state), titleText(c, renames))
	return Text{Content: text, Style: style}
}

func titleText(c change.Change, renames map[string]string) string {
	switch t := c.(type) {
	case change.Rename:
		return fmt.Sprintf("%s -> %s", t.OldPath, t.NewPath)
	case change.ChangeMode:
		return fmt.Sprintf("%s (mode change)", t.Path)
	case change.AddFile:
		return fmt.Sprintf("%s (added)", finalPath(renames, t.Path))
	case change.ModifyFile:
		return finalPath(renames, t.Path)
	case change.DeleteFile:
		return fmt.Sprintf("%s (deleted)", finalPath(renames, t.Path))
	case change.AddBinary:
		return fmt.Sprintf("%s (added, binary)", finalPath(renames, t.Path))
	case change.ModifyBinary:
		return fmt.Sprintf("%s (binary)", finalPath(renames, t.Path))
	case change.DeleteBinary:
		return fmt.Sprintf("%s (deleted, binary)", finalPath(renames, t.Path))
	case change.AddSymlink:
		return fmt.Sprintf("%s (added symlink)", finalPath(renames, t.Path))
	case change.ModifySymlink:
		return fmt.Sprintf("%s (symlink)", finalPath(renames, t.Path))
	case change.DeleteSymlink:
		return fmt.Sprintf("%s (deleted symlink)", finalPath(renames, t.Path))
	default:
		return ""
	}
}

func changeBody(i int, c change.Change, cursor editor.Cursor) Drawable {
	switch t := c.(type) {
	case change.AddFile:
		return lineGrid(i, t.Lines, cursor)
	case change.ModifyFile:
		return lineGrid(i, t.Lines, cursor)
	case change.DeleteFile:
		return lineGrid(i, t.Lines, cursor)
	case change.AddBinary:
		return binaryBox()
	case change.ModifyBinary:
		return binaryBox()
	case change.DeleteBinary:
		return binaryBox()
	case change.AddSymlink:
		return Text{Content: "  -> " + t.To}
	case change.ModifySymlink:
		return Text{Content: fmt.Sprintf("  %s -> %s", t.OldTo, t.NewTo)}
	case change.DeleteSymlink:
		return Text{Content: "  -> " + t.To}
	default:
		return nil
	}
}

func binaryBox() Drawable {
	return Rows{Children: []Drawable{
		Text{Content: "╭" + repeatRune('─', 30) + "╮"},
		Text{Content: "│ cannot display binary file  │"},
		Text{Content: "╰" + repeatRune('─', 30) + "╯"},
	}}
}

func repeatRune(r rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}

// lineGrid lays out a file change's lines with hunk merge/omit and a
// per-line LCS underline pass, tagging every line covered by the cursor
// with a SelectionMarker.
func lineGrid(changeIndex int, lines []change.Line, cursor editor.Cursor) Drawable {
	ranges := visibleRanges(lines)
	var rows []Drawable
	for _, rg := range ranges {
		if rg.omitted {
			rows = append(rows, Text{Content: fmt.Sprintf("  ... omitted %d unchanged lines ...", rg.end-rg.start)})
			continue
		}
		for j := rg.start; j < rg.end; j++ {
			if cursorCoversLine(cursor, changeIndex, j) {
				rows = append(rows, MarkerDrawable{Value: SelectionMarker{}})
			}
			rows = append(rows, lineRow(lines[j], j))
		}
	}
	return Rows{Children: rows}
}

func cursorCoversLine(cursor editor.Cursor, changeIndex, line int) bool {
	switch c := cursor.(type) {
	case editor.HunkCursor:
		return c.Index == changeIndex && line >= c.Start && line < c.End
	case editor.LineCursor:
		return c.Index == changeIndex && line == c.Line
	case editor.ChangeCursor:
		return false
	default:
		return false
	}
}

func lineRow(l change.Line, _ int) Drawable {
	switch l.Status() {
	case change.StatusAdded:
		return Text{Content: "+ " + *l.New, Style: DefaultStyle().WithForeground(ColorGreen)}
	case change.StatusDeleted:
		return Text{Content: "- " + *l.Old, Style: DefaultStyle().WithForeground(ColorRed)}
	case change.StatusChanged:
		return changedLineRow(*l.Old, *l.New)
	default:
		return Text{Content: "  " + *l.Old}
	}
}

// changedLineRow underlines the differing substrings of a changed line
// using an LCS opcode pass, rendering old above new.
func changedLineRow(oldText, newText string) Drawable {
	matcher := difflib.NewMatcher(splitRunes(oldText), splitRunes(newText))
	oldLine := Line{{Rune: '-', Style: DefaultStyle().WithForeground(ColorRed)}, {Rune: ' '}}
	newLine := Line{{Rune: '+', Style: DefaultStyle().WithForeground(ColorGreen)}, {Rune: ' '}}
	for _, op := range matcher.GetOpCodes() {
		base := DefaultStyle().WithForeground(ColorRed)
		baseNew := DefaultStyle().WithForeground(ColorGreen)
		switch op.Tag {
		case 'e':
			base, baseNew = DefaultStyle(), DefaultStyle()
		case 'r', 'd', 'i':
			base = base.WithUnderline()
			baseNew = baseNew.WithUnderline()
		}
		for _, r := range []rune(oldText)[op.I1:op.I2] {
			oldLine = append(oldLine, Cell{Rune: r, Style: base})
		}
		for _, r := range []rune(newText)[op.J1:op.J2] {
			newLine = append(newLine, Cell{Rune: r, Style: baseNew})
		}
	}
	return rowsOfLines(oldLine, newLine)
}

func rowsOfLines(lines ...Line) Drawable {
	return rawLines{lines: lines}
}

// rawLines is a Drawable wrapping already-built Line values, used where a
// diff pass has already produced styled cells rather than plain text.
type rawLines struct {
	lines []Line
}

func (r rawLines) BaseWidth() int { return 0 }
func (r rawLines) Height(width int) int { return len(r.lines) }
func (r rawLines) Render(width int, out *Output) {
	for _, l := range r.lines {
		out.Lines = append(out.Lines, padOrTrim(l, width))
	}
}

func splitRunes(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

type lineRange struct {
	start, end int
	omitted    bool
}

// visibleRanges groups a changed-lines slice into displayed runs and
// omitted runs, following MinOmitted/MinContext.
func visibleRanges(lines []change.Line) []lineRange {
	hunks := hunkRuns(lines)
	if len(hunks) == 0 {
		return nil
	}

	// Merge hunks separated by fewer than MinOmitted unchanged lines.
	merged := [][2]int{hunks[0]}
	for _, h := range hunks[1:] {
		last := merged[len(merged)-1]
		if h[0]-last[1] < MinOmitted {
			merged[len(merged)-1][1] = h[1]
		} else {
			merged = append(merged, h)
		}
	}

	var ranges []lineRange
	cursor := 0
	for _, h := range merged {
		contextStart := h[0] - MinContext
		if contextStart < cursor {
			contextStart = cursor
		}
		if contextStart > cursor {
			gap := contextStart - cursor
			if gap > 0 {
				ranges = append(ranges, lineRange{start: cursor, end: contextStart, omitted: true})
			}
		}
		contextEnd := h[1] + MinContext
		if contextEnd > len(lines) {
			contextEnd = len(lines)
		}
		if contextStart < h[0] {
			ranges = append(ranges, lineRange{start: contextStart, end: h[0]})
		}
		ranges = append(ranges, lineRange{start: h[0], end: h[1]})
		if contextEnd > h[1] {
			ranges = append(ranges, lineRange{start: h[1], end: contextEnd})
		}
		cursor = contextEnd
	}
	if cursor < len(lines) {
		ranges = append(ranges, lineRange{start: cursor, end: len(lines), omitted: true})
	}
	return ranges
}

// hunkRuns returns the maximal runs of non-unchanged lines as
// [start, end) pairs.
func hunkRuns(lines []change.Line) [][2]int {
	var runs [][2]int
	start := -1
	for i, l := range lines {
		if l.Status() != change.StatusUnchanged {
			if start == -1 {
				start = i
			}
		} else if start != -1 {
			runs = append(runs, [2]int{start, i})
			start = -1
		}
	}
	if start != -1 {
		runs = append(runs, [2]int{start, len(lines)})
	}
	return runs
}
