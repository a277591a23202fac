// Package render implements the Drawable rendering tree (C8): composable
// cell-grid primitives, styled output, and the per-frame render pipeline
// that lays out a change set and scrolls to keep the selection visible.
package render

import "github.com/lucasb-eyer/go-colorful"

// TextColor is one of the 16 standard terminal color names, or default.
type TextColor int

const (
	ColorDefault TextColor = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)

// RGB returns the approximate true-color value of a named color, used by
// backends that render to an RGB-capable surface. go-colorful parses the
// palette's hex values.
func (c TextColor) RGB() (r, g, b uint8) {
	hex, ok := colorHex[c]
	if !ok {
		return 0, 0, 0
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0
	}
	r8, g8, b8 := col.RGB255()
	return r8, g8, b8
}

var colorHex = map[TextColor]string{
	ColorBlack:         "#000000",
	ColorRed:           "#cc0000",
	ColorGreen:         "#4e9a06",
	ColorYellow:        "#c4a000",
	ColorBlue:          "#3465a4",
	ColorMagenta:       "#75507b",
	ColorCyan:          "#06989a",
	ColorWhite:         "#d3d7cf",
	ColorBrightBlack:   "#555753",
	ColorBrightRed:     "#ef2929",
	ColorBrightGreen:   "#8ae234",
	ColorBrightYellow:  "#fce94f",
	ColorBrightBlue:    "#729fcf",
	ColorBrightMagenta: "#ad7fa8",
	ColorBrightCyan:    "#34e2e2",
	ColorBrightWhite:   "#eeeeec",
}

// Style carries the visual attributes of a run of cells. Zero value is
// the terminal's default, unstyled appearance.
type Style struct {
	Foreground TextColor
	Background TextColor
	Bold       bool
	Italic     bool
	Underline  bool
}

// DefaultStyle is the terminal's default, unstyled appearance.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// Update composes this style with overrides, returning a new style. Any
// field left at its zero value in over is not considered an override for
// Foreground/Background (ColorDefault means "no opinion"); Bold/Italic/
// Underline in over are OR'd in since there is no "unset" boolean.
func (s Style) Update(over Style) Style {
	out := s
	if over.Foreground != ColorDefault {
		out.Foreground = over.Foreground
	}
	if over.Background != ColorDefault {
		out.Background = over.Background
	}
	out.Bold = out.Bold || over.Bold
	out.Italic = out.Italic || over.Italic
	out.Underline = out.Underline || over.Underline
	return out
}

func (s Style) WithForeground(c TextColor) Style { s.Foreground = c; return s }
func (s Style) WithBackground(c TextColor) Style { s.Background = c; return s }
func (s Style) WithBold() Style                  { s.Bold = true; return s }
func (s Style) WithItalic() Style                { s.Italic = true; return s }
func (s Style) WithUnderline() Style             { s.Underline = true; return s }
