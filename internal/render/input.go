package render

import (
	"github.com/dshills/jjdiff/internal/input/key"
	"github.com/gdamore/tcell/v2"
)

// KeyEventFrom translates a tcell key event into the internal key
// package's representation, the form config.Keymap.Lookup expects.
func KeyEventFrom(e *tcell.EventKey) key.Event {
	mods := key.ModNone
	if e.Modifiers()&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if e.Modifiers()&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if e.Modifiers()&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if e.Modifiers()&tcell.ModMeta != 0 {
		mods |= key.ModMeta
	}

	if e.Key() == tcell.KeyRune {
		// key.Parse("space") yields KeySpace, so the space bar is
		// reported the same way.
		if e.Rune() == ' ' {
			return key.NewSpecialEvent(key.KeySpace, mods)
		}
		return key.NewRuneEvent(e.Rune(), mods)
	}

	if k, ok := specialKeys[e.Key()]; ok {
		return key.NewEvent(k, 0, mods)
	}

	// Ctrl+<letter> arrives as a control-code key (e.g. tcell.KeyCtrlC);
	// recover the letter and flag the Ctrl modifier explicitly.
	if e.Key() >= tcell.KeyCtrlA && e.Key() <= tcell.KeyCtrlZ {
		r := rune('a' + (e.Key() - tcell.KeyCtrlA))
		return key.NewRuneEvent(r, mods|key.ModCtrl)
	}

	return key.NewEvent(key.KeyNone, 0, mods)
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:    key.KeyEscape,
	tcell.KeyEnter:     key.KeyEnter,
	tcell.KeyTab:       key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:    key.KeyDelete,
	tcell.KeyInsert:    key.KeyInsert,
	tcell.KeyHome:      key.KeyHome,
	tcell.KeyEnd:       key.KeyEnd,
	tcell.KeyPgUp:      key.KeyPageUp,
	tcell.KeyPgDn:      key.KeyPageDown,
	tcell.KeyUp:        key.KeyUp,
	tcell.KeyDown:      key.KeyDown,
	tcell.KeyLeft:      key.KeyLeft,
	tcell.KeyRight:     key.KeyRight,
	tcell.KeyF1:  key.KeyF1,
	tcell.KeyF2:  key.KeyF2,
	tcell.KeyF3:  key.KeyF3,
	tcell.KeyF4:  key.KeyF4,
	tcell.KeyF5:  key.KeyF5,
	tcell.KeyF6:  key.KeyF6,
	tcell.KeyF7:  key.KeyF7,
	tcell.KeyF8:  key.KeyF8,
	tcell.KeyF9:  key.KeyF9,
	tcell.KeyF10: key.KeyF10,
	tcell.KeyF11: key.KeyF11,
	tcell.KeyF12: key.KeyF12,
}
