package change

import (
	"reflect"
	"testing"
)

func ln(old, new string, oldPresent, newPresent bool) Line {
	var o, n *string
	if oldPresent {
		o = str(old)
	}
	if newPresent {
		n = str(new)
	}
	return Line{Old: o, New: n}
}

func unchanged(s string) Line { return ln(s, s, true, true) }
func changed(o, n string) Line { return ln(o, n, true, true) }
func added(s string) Line      { return ln("", s, false, true) }
func deleted(s string) Line    { return ln(s, "", true, false) }

func TestLineStatus(t *testing.T) {
	if unchanged("a").Status() != StatusUnchanged {
		t.Error("expected unchanged")
	}
	if changed("a", "b").Status() != StatusChanged {
		t.Error("expected changed")
	}
	if added("a").Status() != StatusAdded {
		t.Error("expected added")
	}
	if deleted("a").Status() != StatusDeleted {
		t.Error("expected deleted")
	}
}

func TestReverseAddFile(t *testing.T) {
	changes := []Change{
		AddFile{Path: "foo.txt", Lines: []Line{added("foo")}, IsExec: false},
	}
	rev := Reverse(changes, nil)
	want := []Change{
		DeleteFile{Path: "foo.txt", Lines: []Line{deleted("foo")}, IsExec: false},
	}
	if !reflect.DeepEqual(rev, want) {
		t.Errorf("Reverse() = %#v, want %#v", rev, want)
	}
}

func TestReverseRewritesRenamedPaths(t *testing.T) {
	changes := []Change{
		Rename{OldPath: "a.txt", NewPath: "b.txt"},
		ModifyFile{Path: "b.txt", Lines: []Line{changed("x", "y")}},
	}
	rev := Reverse(changes, nil)

	var sawRename, sawModify bool
	for _, c := range rev {
		switch ch := c.(type) {
		case Rename:
			if ch.OldPath != "b.txt" || ch.NewPath != "a.txt" {
				t.Errorf("rename reversed wrong: %#v", ch)
			}
			sawRename = true
		case ModifyFile:
			if ch.Path != "a.txt" {
				t.Errorf("modify path not rewritten past rename: got %q", ch.Path)
			}
			sawModify = true
		}
	}
	if !sawRename || !sawModify {
		t.Fatalf("missing expected change kinds in %#v", rev)
	}
}

func TestReverseReverseIsIdentity(t *testing.T) {
	changes := []Change{
		AddFile{Path: "bar.txt", Lines: []Line{added("barrr")}},
		ModifyFile{Path: "foo.txt", Lines: []Line{changed("foo", "fooo"), changed("bar", "baz")}},
	}
	Sort(changes, nil)
	twice := Reverse(Reverse(changes, nil), nil)
	if !reflect.DeepEqual(changes, twice) {
		t.Errorf("reverse(reverse(c)) != c: got %#v, want %#v", twice, changes)
	}
}

// S3 from spec.md section 8.
func TestSplitScenarioS3(t *testing.T) {
	changes := []Change{
		AddFile{Path: "bar.txt", Lines: []Line{added("barrr")}},
		ModifyFile{Path: "foo.txt", Lines: []Line{changed("foo", "fooo"), changed("bar", "baz")}},
	}

	refs := NewRefSet(ChangeRef{Change: 1}, LineRef{Change: 1, Line: 1})
	oldToSel, selToNew := Split(changes, refs)

	wantOldToSel := []Change{
		ModifyFile{Path: "foo.txt", Lines: []Line{unchanged("foo"), changed("bar", "baz")}},
	}
	if !reflect.DeepEqual(oldToSel, wantOldToSel) {
		t.Errorf("oldToSel = %#v, want %#v", oldToSel, wantOldToSel)
	}

	var sawAdd, sawModify bool
	for _, c := range selToNew {
		switch ch := c.(type) {
		case AddFile:
			sawAdd = true
			if ch.Path != "bar.txt" {
				t.Errorf("unexpected add path %q", ch.Path)
			}
		case ModifyFile:
			sawModify = true
			if ch.Path != "foo.txt" {
				t.Errorf("unexpected modify path %q", ch.Path)
			}
			if len(ch.Lines) != 2 || *ch.Lines[0].Old != "foo" || *ch.Lines[1].Old != "baz" {
				t.Errorf("unexpected selToNew lines %#v", ch.Lines)
			}
		}
	}
	if !sawAdd || !sawModify {
		t.Fatalf("missing expected change kinds in selToNew %#v", selToNew)
	}
}

func TestSplitAllRefsIsIdentity(t *testing.T) {
	changes := []Change{
		AddFile{Path: "bar.txt", Lines: []Line{added("barrr")}},
		ModifyFile{Path: "foo.txt", Lines: []Line{changed("foo", "fooo")}},
	}
	all := NewRefSet(AllRefs(changes)...)
	oldToSel, selToNew := Split(changes, all)

	if !reflect.DeepEqual(oldToSel, changes) {
		t.Errorf("split(c, all) old side = %#v, want %#v", oldToSel, changes)
	}
	if len(selToNew) != 0 {
		t.Errorf("split(c, all) new side = %#v, want empty", selToNew)
	}
}

func TestSplitEmptyRefsDropsEmptyModify(t *testing.T) {
	// With nothing selected, a ModifyFile's OLD->SEL side has no changed
	// line and the change is dropped from that side entirely; the whole
	// change goes to SEL->NEW.
	changes := []Change{
		ModifyFile{Path: "foo.txt", Lines: []Line{changed("foo", "fooo")}},
	}
	oldToSel, selToNew := Split(changes, NewRefSet())
	if len(oldToSel) != 0 {
		t.Errorf("oldToSel should be empty when nothing selected, got %#v", oldToSel)
	}
	if len(selToNew) != 1 {
		t.Fatalf("selToNew should carry the whole change, got %#v", selToNew)
	}
}

func TestDependenciesPathAndLine(t *testing.T) {
	changes := []Change{
		DeleteFile{Path: "a.txt", Lines: []Line{deleted("x")}},
		AddFile{Path: "a.txt", Lines: []Line{added("y")}},
	}
	deps := Dependencies(changes)

	foundPathDep := false
	for _, d := range deps {
		if d.Dependant == (ChangeRef{Change: 1}) && d.Dependency == (ChangeRef{Change: 0}) {
			foundPathDep = true
		}
	}
	if !foundPathDep {
		t.Errorf("expected add-depends-on-delete edge, got %#v", deps)
	}

	g := BuildDependencyGraph(changes)
	closure := Closure([]Ref{ChangeRef{Change: 1}}, g.Deps)
	if !closure.Has(ChangeRef{Change: 0}) {
		t.Errorf("closure of add should reach its delete dependency")
	}
}

func TestChangeRefsModifyFileHasNoChangeRef(t *testing.T) {
	refs := ChangeRefs(0, ModifyFile{Path: "f", Lines: []Line{changed("a", "b")}})
	for _, r := range refs {
		if _, ok := r.(ChangeRef); ok {
			t.Errorf("ModifyFile must not contribute a ChangeRef, got %#v", refs)
		}
	}
	if len(refs) != 1 {
		t.Errorf("expected exactly one LineRef, got %#v", refs)
	}
}
