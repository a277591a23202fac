package config

import (
	"fmt"

	"github.com/dshills/jjdiff/internal/input/key"
)

// Command identifies an editor command a key binding can trigger.
type Command int

const (
	CommandExit Command = iota
	CommandNextCursor
	CommandPrevCursor
	CommandFirstCursor
	CommandLastCursor
	CommandShrinkCursor
	CommandGrowCursor
	CommandSelectCursor
	CommandSelectAll
	CommandConfirm
	CommandUndo
	CommandRedo
)

// keySpec is the comparable subset of a key.Event used as a map key; the
// Timestamp field on key.Event is per-press and never part of identity.
type keySpec struct {
	key  key.Key
	rune rune
	mods key.Modifier
}

func specOf(e key.Event) keySpec {
	return keySpec{key: e.Key, rune: e.Rune, mods: e.Modifiers}
}

// Keymap resolves a parsed key event to the command it triggers.
type Keymap map[keySpec]Command

// Lookup returns the command bound to e, if any.
func (m Keymap) Lookup(e key.Event) (Command, bool) {
	c, ok := m[specOf(e)]
	return c, ok
}

// BuildKeymap parses every key specification in kb and returns the
// resulting Keymap. It fails with ErrConflictingBinding (wrapped with the
// offending specs) if two different commands claim the same parsed key.
func BuildKeymap(kb KeybindingsConfig) (Keymap, error) {
	m := Keymap{}
	groups := []struct {
		cmd   Command
		specs []string
	}{
		{CommandExit, kb.Exit},
		{CommandNextCursor, kb.NextCursor},
		{CommandPrevCursor, kb.PrevCursor},
		{CommandFirstCursor, kb.FirstCursor},
		{CommandLastCursor, kb.LastCursor},
		{CommandShrinkCursor, kb.ShrinkCursor},
		{CommandGrowCursor, kb.GrowCursor},
		{CommandSelectCursor, kb.SelectCursor},
		{CommandSelectAll, kb.SelectAll},
		{CommandConfirm, kb.Confirm},
		{CommandUndo, kb.Undo},
		{CommandRedo, kb.Redo},
	}

	for _, g := range groups {
		for _, spec := range g.specs {
			ev, err := key.Parse(spec)
			if err != nil {
				return nil, fmt.Errorf("config: key spec %q: %w", spec, err)
			}
			ks := specOf(ev)
			if existing, ok := m[ks]; ok && existing != g.cmd {
				return nil, fmt.Errorf("%w: %q claimed by both command %d and command %d",
					ErrConflictingBinding, spec, existing, g.cmd)
			}
			m[ks] = g.cmd
		}
	}

	return m, nil
}
