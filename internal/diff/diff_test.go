package diff

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/jjdiff/internal/change"
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

// S1 from spec.md section 8.
func TestDiffScenarioS1(t *testing.T) {
	oldRoot := writeTree(t, nil)
	newRoot := writeTree(t, map[string]string{"foo.txt": "foo"})

	changes, err := Diff(oldRoot, newRoot, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %#v", changes)
	}
	add, ok := changes[0].(change.AddFile)
	if !ok {
		t.Fatalf("expected AddFile, got %#v", changes[0])
	}
	if add.Path != "foo.txt" || add.IsExec {
		t.Errorf("unexpected AddFile %#v", add)
	}
	if len(add.Lines) != 1 || add.Lines[0].Status() != change.StatusAdded || *add.Lines[0].New != "foo" {
		t.Errorf("unexpected lines %#v", add.Lines)
	}
}

// S5 from spec.md section 8: identical content at a different path is a
// pure rename with similarity 1 and no accompanying content change.
func TestDiffScenarioS5Rename(t *testing.T) {
	content := strings.Repeat("α", 1000)
	oldRoot := writeTree(t, map[string]string{"a.txt": content})
	newRoot := writeTree(t, map[string]string{"b.txt": content})

	changes, err := Diff(oldRoot, newRoot, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 {
		t.Fatalf("expected a single Rename, got %#v", changes)
	}
	ren, ok := changes[0].(change.Rename)
	if !ok {
		t.Fatalf("expected Rename, got %#v", changes[0])
	}
	if ren.OldPath != "a.txt" || ren.NewPath != "b.txt" {
		t.Errorf("unexpected rename %#v", ren)
	}
}

// S4 from spec.md section 8.
func TestDiffLinesScenarioS4(t *testing.T) {
	lines := DiffLines(nil, []string{"foo", "bar"})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %#v", lines)
	}
	for _, l := range lines {
		if l.Status() != change.StatusAdded {
			t.Errorf("expected added, got %s", l.Status())
		}
	}

	lines = DiffLines([]string{"foo", "bar"}, nil)
	for _, l := range lines {
		if l.Status() != change.StatusDeleted {
			t.Errorf("expected deleted, got %s", l.Status())
		}
	}

	lines = DiffLines([]string{"foo", "bar"}, []string{"foo", "baz"})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %#v", lines)
	}
	if lines[0].Status() != change.StatusUnchanged {
		t.Errorf("expected first line unchanged, got %s", lines[0].Status())
	}
	if lines[1].Status() != change.StatusChanged || *lines[1].Old != "bar" || *lines[1].New != "baz" {
		t.Errorf("expected bar->baz changed, got %#v", lines[1])
	}
}

func TestTextSimilarity(t *testing.T) {
	if got := textSimilarity([]string{"a", "b"}, []string{"a", "b"}); got != 1 {
		t.Errorf("identical multisets should score 1, got %f", got)
	}
	if got := textSimilarity([]string{"a"}, []string{"b"}); got != 0 {
		t.Errorf("disjoint multisets should score 0, got %f", got)
	}
}

func TestChunkerSingleChunkForShortInput(t *testing.T) {
	data := []byte("short")
	c := chunks(data)
	if len(c) != 1 {
		t.Fatalf("expected single chunk for short input, got %d", len(c))
	}
}

func TestChunkerEmptyInput(t *testing.T) {
	if c := chunks(nil); len(c) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(c))
	}
}
