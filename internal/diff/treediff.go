package diff

import (
	"container/heap"

	"github.com/dshills/jjdiff/internal/change"
)

// Diff computes the change set that transforms oldRoot into newRoot:
// C1 scans both trees, C2/C3 diff shared paths, and rename detection
// (C4 step 3) pairs up deleted/added paths above the similarity
// threshold before the remainder falls back to plain Add/Delete.
func Diff(oldRoot, newRoot string, isDeprioritized change.Deprioritizer) ([]change.Change, error) {
	oldTree, err := Scan(oldRoot)
	if err != nil {
		return nil, err
	}
	newTree, err := Scan(newRoot)
	if err != nil {
		return nil, err
	}

	oldPaths := map[string]bool{}
	for _, p := range oldTree.Paths() {
		oldPaths[p] = true
	}
	newPaths := map[string]bool{}
	for _, p := range newTree.Paths() {
		newPaths[p] = true
	}

	var changes []change.Change
	deleted := map[string]Content{}
	added := map[string]Content{}

	for p := range oldPaths {
		if newPaths[p] {
			continue
		}
		c, _ := oldTree.Get(p)
		deleted[p] = c
	}
	for p := range newPaths {
		if oldPaths[p] {
			continue
		}
		c, _ := newTree.Get(p)
		added[p] = c
	}

	for p := range oldPaths {
		if !newPaths[p] {
			continue
		}
		oldContent, _ := oldTree.Get(p)
		newContent, _ := newTree.Get(p)
		cs, err := diffContent(p, oldContent, newContent)
		if err != nil {
			return nil, err
		}
		changes = append(changes, cs...)
	}

	renameChanges, err := detectRenames(deleted, added)
	if err != nil {
		return nil, err
	}
	changes = append(changes, renameChanges...)

	for p, c := range deleted {
		changes = append(changes, deleteContent(p, c))
	}
	for p, c := range added {
		changes = append(changes, addContent(p, c))
	}

	change.Sort(changes, isDeprioritized)
	return changes, nil
}

func diffContent(path string, oldC, newC Content) ([]change.Change, error) {
	switch o := oldC.(type) {
	case File:
		switch n := newC.(type) {
		case File:
			return diffFileFile(path, o, n)
		case Symlink:
			return append(deleteFileChange(path, o), addSymlinkChange(path, n)...), nil
		}
	case Symlink:
		switch n := newC.(type) {
		case Symlink:
			if o.Target != n.Target {
				return []change.Change{change.ModifySymlink{Path: path, OldTo: o.Target, NewTo: n.Target}}, nil
			}
			return nil, nil
		case File:
			return append(deleteSymlinkChange(path, o), addFileChange(path, n)...), nil
		}
	}
	return nil, nil
}

func diffFileFile(path string, o, n File) ([]change.Change, error) {
	equal, err := contentIsEqual(o.Handle, n.Handle)
	if err != nil {
		return nil, err
	}
	if equal {
		if o.IsExec != n.IsExec {
			return []change.Change{change.ChangeMode{Path: path, OldIsExec: o.IsExec, NewIsExec: n.IsExec}}, nil
		}
		return nil, nil
	}

	oldLines, oldIsText, err := decodeText(o.Handle)
	if err != nil {
		return nil, err
	}
	newLines, newIsText, err := decodeText(n.Handle)
	if err != nil {
		return nil, err
	}

	var result []change.Change
	if o.IsExec != n.IsExec {
		result = append(result, change.ChangeMode{Path: path, OldIsExec: o.IsExec, NewIsExec: n.IsExec})
	}

	if oldIsText && newIsText {
		lines := DiffLines(oldLines, newLines)
		if anyChanged(lines) {
			result = append(result, change.ModifyFile{Path: path, Lines: lines})
		}
		return result, nil
	}
	if !oldIsText && !newIsText {
		result = append(result, change.ModifyBinary{Path: path, OldContent: change.ContentHandle(o.Handle), NewContent: change.ContentHandle(n.Handle)})
		return result, nil
	}

	// Text vs binary (either direction): delete+add pair across variants.
	result = append(result, deleteFileOrBinary(path, o, oldIsText)...)
	result = append(result, addFileOrBinary(path, n, newIsText)...)
	return result, nil
}

func anyChanged(lines []change.Line) bool {
	for _, l := range lines {
		if l.Status() != change.StatusUnchanged {
			return true
		}
	}
	return false
}

func deleteFileOrBinary(path string, f File, isText bool) []change.Change {
	if isText {
		lines, _, _ := decodeText(f.Handle)
		return deleteFileChangeLines(path, lines, f.IsExec)
	}
	return []change.Change{change.DeleteBinary{Path: path, Content: change.ContentHandle(f.Handle), IsExec: f.IsExec}}
}

func addFileOrBinary(path string, f File, isText bool) []change.Change {
	if isText {
		lines, _, _ := decodeText(f.Handle)
		return addFileChangeLines(path, lines, f.IsExec)
	}
	return []change.Change{change.AddBinary{Path: path, Content: change.ContentHandle(f.Handle), IsExec: f.IsExec}}
}

func deleteFileChange(path string, f File) []change.Change {
	lines, isText, _ := decodeText(f.Handle)
	if isText {
		return deleteFileChangeLines(path, lines, f.IsExec)
	}
	return []change.Change{change.DeleteBinary{Path: path, Content: change.ContentHandle(f.Handle), IsExec: f.IsExec}}
}

func addFileChange(path string, f File) []change.Change {
	lines, isText, _ := decodeText(f.Handle)
	if isText {
		return addFileChangeLines(path, lines, f.IsExec)
	}
	return []change.Change{change.AddBinary{Path: path, Content: change.ContentHandle(f.Handle), IsExec: f.IsExec}}
}

func deleteFileChangeLines(path string, lines []string, isExec bool) []change.Change {
	cl := make([]change.Line, len(lines))
	for i, l := range lines {
		s := l
		cl[i] = change.Line{Old: &s, New: nil}
	}
	return []change.Change{change.DeleteFile{Path: path, Lines: cl, IsExec: isExec}}
}

func addFileChangeLines(path string, lines []string, isExec bool) []change.Change {
	cl := make([]change.Line, len(lines))
	for i, l := range lines {
		s := l
		cl[i] = change.Line{Old: nil, New: &s}
	}
	return []change.Change{change.AddFile{Path: path, Lines: cl, IsExec: isExec}}
}

func deleteSymlinkChange(path string, s Symlink) []change.Change {
	return []change.Change{change.DeleteSymlink{Path: path, To: s.Target}}
}

func addSymlinkChange(path string, s Symlink) []change.Change {
	return []change.Change{change.AddSymlink{Path: path, To: s.Target}}
}

func deleteContent(path string, c Content) change.Change {
	switch t := c.(type) {
	case File:
		lines, isText, _ := decodeText(t.Handle)
		if isText {
			cs := deleteFileChangeLines(path, lines, t.IsExec)
			return cs[0]
		}
		return change.DeleteBinary{Path: path, Content: change.ContentHandle(t.Handle), IsExec: t.IsExec}
	case Symlink:
		return change.DeleteSymlink{Path: path, To: t.Target}
	}
	return nil
}

func addContent(path string, c Content) change.Change {
	switch t := c.(type) {
	case File:
		lines, isText, _ := decodeText(t.Handle)
		if isText {
			cs := addFileChangeLines(path, lines, t.IsExec)
			return cs[0]
		}
		return change.AddBinary{Path: path, Content: change.ContentHandle(t.Handle), IsExec: t.IsExec}
	case Symlink:
		return change.AddSymlink{Path: path, To: t.Target}
	}
	return nil
}

// renameCandidate is a potential rename pairing, ordered by similarity
// (highest first) for the greedy max-heap pop in C4 step 3.
type renameCandidate struct {
	similarity float64
	oldPath    string
	newPath    string
}

type candidateHeap []renameCandidate

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(i, j int) bool {
	if h[i].similarity != h[j].similarity {
		return h[i].similarity > h[j].similarity
	}
	if h[i].oldPath != h[j].oldPath {
		return h[i].oldPath < h[j].oldPath
	}
	return h[i].newPath < h[j].newPath
}
func (h candidateHeap) Swap(i, j int)  { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)    { *h = append(*h, x.(renameCandidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func detectRenames(deleted, added map[string]Content) ([]change.Change, error) {
	h := &candidateHeap{}
	heap.Init(h)

	for dp, dc := range deleted {
		for ap, ac := range added {
			sim, err := Similarity(dc, ac)
			if err != nil {
				return nil, err
			}
			if sim >= SimilarityThreshold {
				heap.Push(h, renameCandidate{similarity: sim, oldPath: dp, newPath: ap})
			}
		}
	}

	consumedOld := map[string]bool{}
	consumedNew := map[string]bool{}
	var changes []change.Change

	for h.Len() > 0 {
		cand := heap.Pop(h).(renameCandidate)
		if consumedOld[cand.oldPath] || consumedNew[cand.newPath] {
			continue
		}
		consumedOld[cand.oldPath] = true
		consumedNew[cand.newPath] = true

		changes = append(changes, change.Rename{OldPath: cand.oldPath, NewPath: cand.newPath})

		oldC := deleted[cand.oldPath]
		newC := added[cand.newPath]
		cs, err := diffContent(cand.oldPath, oldC, newC)
		if err != nil {
			return nil, err
		}
		// A post-rename content change is recorded at the new path.
		for _, c := range cs {
			changes = append(changes, rewriteChangePath(c, cand.newPath))
		}

		delete(deleted, cand.oldPath)
		delete(added, cand.newPath)
	}

	return changes, nil
}

func rewriteChangePath(c change.Change, path string) change.Change {
	switch t := c.(type) {
	case change.ChangeMode:
		t.Path = path
		return t
	case change.ModifyFile:
		t.Path = path
		return t
	case change.ModifyBinary:
		t.Path = path
		return t
	case change.ModifySymlink:
		t.Path = path
		return t
	default:
		return c
	}
}
