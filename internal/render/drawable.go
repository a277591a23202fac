package render

import "github.com/mattn/go-runewidth"

// Cell is a single display rune with its style. A Line holds one Cell
// per rune; lineWidth counts a wide rune's Cell as two columns.
type Cell struct {
	Rune  rune
	Style Style
}

// Line is one finished row of cells, left to right.
type Line []Cell

// Marker is emitted by render at the line index it annotates. It carries
// zero width and zero height: it never appears in a Line, only in the
// marker channel alongside the rendered lines.
type Marker struct {
	Line  int
	Value any
}

// Output collects what render produces: the finished lines, and the
// markers, each tagged with the index of the line it annotates. A marker
// takes the index of the next line rendered after it.
type Output struct {
	Lines   []Line
	Markers []Marker
}

func (o *Output) addLine(l Line)         { o.Lines = append(o.Lines, l) }
func (o *Output) addMarker(v any, i int) { o.Markers = append(o.Markers, Marker{Line: i, Value: v}) }

// Drawable is the composable rendering primitive: every concrete node
// knows its minimum usable width, its height at a given width, and how to
// render itself into an Output at a given width.
type Drawable interface {
	BaseWidth() int
	Height(width int) int
	Render(width int, out *Output)
}

func stringWidth(s string) int {
	return runewidth.StringWidth(s)
}

func padOrTrim(line Line, width int) Line {
	w := lineWidth(line)
	if w == width {
		return line
	}
	if w < width {
		out := make(Line, 0, width)
		out = append(out, line...)
		for i := w; i < width; i++ {
			out = append(out, Cell{Rune: ' '})
		}
		return out
	}
	// Trim to width, accounting for wide runes that would otherwise be
	// split in half.
	out := make(Line, 0, width)
	col := 0
	for _, c := range line {
		cw := runewidth.RuneWidth(c.Rune)
		if col+cw > width {
			break
		}
		out = append(out, c)
		col += cw
	}
	for col < width {
		out = append(out, Cell{Rune: ' '})
		col++
	}
	return out
}

func lineWidth(line Line) int {
	w := 0
	for _, c := range line {
		w += runewidth.RuneWidth(c.Rune)
	}
	return w
}

func lineFromString(s string, style Style) Line {
	line := make(Line, 0, len(s))
	for _, r := range s {
		line = append(line, Cell{Rune: r, Style: style})
	}
	return line
}
