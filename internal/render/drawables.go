package render

// Text is a single styled string. Its base width is the visible width
// of its content; it never wraps, only truncates/pads to the render
// width.
type Text struct {
	Content string
	Style   Style
}

func (t Text) BaseWidth() int        { return stringWidth(t.Content) }
func (t Text) Height(width int) int  { return 1 }
func (t Text) Render(width int, out *Output) {
	out.addLine(padOrTrim(lineFromString(t.Content, t.Style), width))
}

// Fill repeats Char to the full render width. Used for rules and blank
// background rows.
type Fill struct {
	Char  rune
	Style Style
}

func (f Fill) BaseWidth() int       { return 0 }
func (f Fill) Height(width int) int { return 1 }
func (f Fill) Render(width int, out *Output) {
	line := make(Line, width)
	for i := range line {
		line[i] = Cell{Rune: f.Char, Style: f.Style}
	}
	out.addLine(line)
}

// Rows stacks children vertically. Its base width is the widest child's
// base width.
type Rows struct {
	Children []Drawable
}

func (r Rows) BaseWidth() int {
	w := 0
	for _, c := range r.Children {
		if bw := c.BaseWidth(); bw > w {
			w = bw
		}
	}
	return w
}

func (r Rows) Height(width int) int {
	h := 0
	for _, c := range r.Children {
		h += c.Height(width)
	}
	return h
}

func (r Rows) Render(width int, out *Output) {
	for _, c := range r.Children {
		c.Render(width, out)
	}
}

// Column describes one column of a Grid: either a fixed width, or a
// flexible share of the width remaining after fixed columns are
// subtracted.
type Column struct {
	Fixed    int // > 0 for a fixed-width column
	Flexible int // share weight, used when Fixed == 0
}

// Grid lays out rows of children sharing a column spec: every row's
// children occupy the same terminal line, one per column.
type Grid struct {
	Columns []Column
	Rows    [][]Drawable
}

func (g Grid) BaseWidth() int {
	w := 0
	for _, c := range g.Columns {
		if c.Fixed > 0 {
			w += c.Fixed
		}
	}
	return w
}

func (g Grid) Height(width int) int { return len(g.Rows) }

func (g Grid) Render(width int, out *Output) {
	widths := g.columnWidths(width)
	for _, row := range g.Rows {
		line := Line{}
		for i, child := range row {
			if i >= len(widths) {
				break
			}
			cellOut := &Output{}
			child.Render(widths[i], cellOut)
			var cellLine Line
			if len(cellOut.Lines) > 0 {
				cellLine = cellOut.Lines[0]
			}
			line = append(line, padOrTrim(cellLine, widths[i])...)
		}
		out.addLine(padOrTrim(line, width))
	}
}

func (g Grid) columnWidths(total int) []int {
	widths := make([]int, len(g.Columns))
	fixed := 0
	flexTotal := 0
	for i, c := range g.Columns {
		if c.Fixed > 0 {
			widths[i] = c.Fixed
			fixed += c.Fixed
		} else {
			flexTotal += c.Flexible
		}
	}
	remaining := total - fixed
	if remaining < 0 {
		remaining = 0
	}
	if flexTotal == 0 {
		return widths
	}
	used := 0
	for i, c := range g.Columns {
		if c.Fixed > 0 {
			continue
		}
		share := remaining * c.Flexible / flexTotal
		widths[i] = share
		used += share
	}
	// give leftover columns from integer rounding to the last flexible one
	for i := len(g.Columns) - 1; i >= 0; i-- {
		if g.Columns[i].Fixed == 0 {
			widths[i] += remaining - used
			break
		}
	}
	return widths
}

// MarkerDrawable emits a zero-height row carrying Value at the line
// position it appears in the surrounding Rows stack.
type MarkerDrawable struct {
	Value any
}

func (m MarkerDrawable) BaseWidth() int       { return 0 }
func (m MarkerDrawable) Height(width int) int { return 0 }
func (m MarkerDrawable) Render(width int, out *Output) {
	out.addMarker(m.Value, len(out.Lines))
}
