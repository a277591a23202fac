package main

import (
	"testing"

	"github.com/dshills/jjdiff/internal/change"
)

func TestChangeSummaryPerKind(t *testing.T) {
	cases := []struct {
		c    change.Change
		want string
	}{
		{change.Rename{OldPath: "old.txt", NewPath: "new.txt"}, "old.txt -> new.txt"},
		{change.ChangeMode{Path: "run.sh"}, "run.sh (mode change)"},
		{change.AddFile{Path: "a.txt"}, "a.txt (added)"},
		{change.ModifyFile{Path: "b.txt"}, "b.txt"},
		{change.DeleteFile{Path: "c.txt"}, "c.txt (deleted)"},
		{change.AddBinary{Path: "img.png"}, "img.png (added, binary)"},
		{change.ModifyBinary{Path: "img.png"}, "img.png (binary)"},
		{change.DeleteBinary{Path: "img.png"}, "img.png (deleted, binary)"},
		{change.AddSymlink{Path: "link", To: "target"}, "link (added symlink -> target)"},
		{change.ModifySymlink{Path: "link", OldTo: "a", NewTo: "b"}, "link (symlink a -> b)"},
		{change.DeleteSymlink{Path: "link"}, "link (deleted symlink)"},
	}
	for _, tc := range cases {
		if got := changeSummary(tc.c); got != tc.want {
			t.Errorf("changeSummary(%#v) = %q, want %q", tc.c, got, tc.want)
		}
	}
}
