package change

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o777); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o666); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestApplyRenameWithModifyEndsUpAtNewPathOnly(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "x"})

	changes := []Change{
		Rename{OldPath: "a.txt", NewPath: "b.txt"},
		ModifyFile{Path: "b.txt", Lines: []Line{changed("x", "y")}},
	}
	if err := Apply(root, changes); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(root, "a.txt")); !os.IsNotExist(err) {
		t.Errorf("expected a.txt to no longer exist, got err=%v", err)
	}
	got, err := os.ReadFile(filepath.Join(root, "b.txt"))
	if err != nil {
		t.Fatalf("expected b.txt to exist: %v", err)
	}
	if string(got) != "y\n" {
		t.Errorf("expected b.txt content %q, got %q", "y\n", got)
	}
}

func TestApplyReverseOfRenameWithModifyRoundTrips(t *testing.T) {
	root := writeTree(t, map[string]string{"b.txt": "y"})

	forward := []Change{
		Rename{OldPath: "a.txt", NewPath: "b.txt"},
		ModifyFile{Path: "b.txt", Lines: []Line{changed("x", "y")}},
	}
	reverted := Reverse(forward, nil)
	if err := Apply(root, reverted); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(root, "b.txt")); !os.IsNotExist(err) {
		t.Errorf("expected b.txt to no longer exist after reverting, got err=%v", err)
	}
	got, err := os.ReadFile(filepath.Join(root, "a.txt"))
	if err != nil {
		t.Fatalf("expected a.txt to exist after reverting: %v", err)
	}
	if string(got) != "x\n" {
		t.Errorf("expected a.txt content %q after reverting, got %q", "x\n", got)
	}
}
