package editor

import "github.com/dshills/jjdiff/internal/change"

// Action is an undoable mutation of the included-refs set.
type Action interface {
	Apply(included change.RefSet)
	Revert(included change.RefSet)
}

// AddIncludes adds Refs to included (the dependency-closure expansion
// of a toggle-on).
type AddIncludes struct {
	Refs []change.Ref
}

func (a AddIncludes) Apply(included change.RefSet) {
	for _, r := range a.Refs {
		included.Add(r)
	}
}

func (a AddIncludes) Revert(included change.RefSet) {
	for _, r := range a.Refs {
		included.Remove(r)
	}
}

// RemoveIncludes removes Refs from included (the dependant-closure
// expansion of a toggle-off).
type RemoveIncludes struct {
	Refs []change.Ref
}

func (a RemoveIncludes) Apply(included change.RefSet) {
	for _, r := range a.Refs {
		included.Remove(r)
	}
}

func (a RemoveIncludes) Revert(included change.RefSet) {
	for _, r := range a.Refs {
		included.Add(r)
	}
}

type undoEntry struct {
	action  Action
	opened  map[int]bool
	cursor  Cursor
}

func cloneOpened(opened map[int]bool) map[int]bool {
	out := make(map[int]bool, len(opened))
	for k, v := range opened {
		out[k] = v
	}
	return out
}
