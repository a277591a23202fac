package render

import (
	"fmt"

	"github.com/gdamore/encoding"
	"github.com/gdamore/tcell/v2"
)

func init() {
	// Registers charmaps tcell needs to talk to non-UTF-8 terminals; a
	// no-op on modern UTF-8 locales.
	encoding.Register()
}

// Backend owns the terminal screen: raw mode, the alternate screen
// buffer, and translating a rendered Output into cells on a tcell
// screen. The event loop is single-threaded and cooperative (no
// parallel draws): see the concurrency model.
type Backend struct {
	screen tcell.Screen
	scroll ScrollState
}

// NewBackend initializes and enters the alternate screen.
func NewBackend() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("render: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("render: init screen: %w", err)
	}
	screen.EnableMouse()
	screen.Clear()
	return &Backend{screen: screen}, nil
}

// Close restores the terminal to its original state.
func (b *Backend) Close() {
	b.screen.Fini()
}

// Size returns the current terminal dimensions.
func (b *Backend) Size() (width, height int) {
	return b.screen.Size()
}

// Draw renders d into the full terminal, scrolling the viewport so the
// current selection stays visible.
func (b *Backend) Draw(d Drawable) {
	width, height := b.screen.Size()
	out := &Output{}
	d.Render(width, out)

	b.scroll.Height = height
	b.scroll = ScrollToSelection(b.scroll, out, len(out.Lines))

	b.screen.Clear()
	bar := ScrollBar(b.scroll.Top, height, len(out.Lines))
	for row := 0; row < height; row++ {
		lineIdx := b.scroll.Top + row
		if lineIdx < len(out.Lines) {
			drawLine(b.screen, row, out.Lines[lineIdx], width)
		}
		if width > 0 && row < len(bar) {
			b.screen.SetContent(width-1, row, bar[row], nil, tcell.StyleDefault)
		}
	}
	b.screen.Show()
}

func drawLine(screen tcell.Screen, row int, line Line, width int) {
	col := 0
	for _, cell := range line {
		if col >= width {
			break
		}
		screen.SetContent(col, row, cell.Rune, nil, toTcellStyle(cell.Style))
		col++
	}
}

func toTcellStyle(s Style) tcell.Style {
	style := tcell.StyleDefault
	if s.Foreground != ColorDefault {
		r, g, b := s.Foreground.RGB()
		style = style.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	if s.Background != ColorDefault {
		r, g, b := s.Background.RGB()
		style = style.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	style = style.Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
	return style
}

// PollEvent blocks for the next terminal event (key press or resize).
func (b *Backend) PollEvent() tcell.Event {
	return b.screen.PollEvent()
}

// PostInterrupt cancels a blocked PollEvent, used when a resize arrives
// while the event loop is waiting on input so it can redraw first.
func (b *Backend) PostInterrupt() {
	b.screen.PostEvent(tcell.NewEventInterrupt(nil))
}
