package change

// Reverse returns a change set that undoes changes. It walks forward
// remembering each Rename so later changes recorded at the post-rename
// path are rewritten back to the pre-rename path in the reversed
// output, since the reversed Rename runs first.
func Reverse(changes []Change, isDeprioritized Deprioritizer) []Change {
	renames := map[string]string{}
	out := make([]Change, 0, len(changes))

	rewrite := func(path string) string {
		if p, ok := renames[path]; ok {
			return p
		}
		return path
	}

	for _, c := range changes {
		switch t := c.(type) {
		case Rename:
			out = append(out, Rename{OldPath: t.NewPath, NewPath: t.OldPath})
			renames[t.NewPath] = t.OldPath

		case ChangeMode:
			p := rewrite(t.Path)
			out = append(out, ChangeMode{Path: p, OldIsExec: t.NewIsExec, NewIsExec: t.OldIsExec})

		case AddFile:
			p := rewrite(t.Path)
			out = append(out, DeleteFile{Path: p, Lines: reverseLines(t.Lines), IsExec: t.IsExec})

		case ModifyFile:
			p := rewrite(t.Path)
			out = append(out, ModifyFile{Path: p, Lines: reverseLines(t.Lines)})

		case DeleteFile:
			p := rewrite(t.Path)
			out = append(out, AddFile{Path: p, Lines: reverseLines(t.Lines), IsExec: t.IsExec})

		case AddBinary:
			p := rewrite(t.Path)
			out = append(out, DeleteBinary{Path: p, Content: t.Content, IsExec: t.IsExec})

		case ModifyBinary:
			p := rewrite(t.Path)
			out = append(out, ModifyBinary{Path: p, OldContent: t.NewContent, NewContent: t.OldContent})

		case DeleteBinary:
			p := rewrite(t.Path)
			out = append(out, AddBinary{Path: p, Content: t.Content, IsExec: t.IsExec})

		case AddSymlink:
			p := rewrite(t.Path)
			out = append(out, DeleteSymlink{Path: p, To: t.To})

		case ModifySymlink:
			p := rewrite(t.Path)
			out = append(out, ModifySymlink{Path: p, OldTo: t.NewTo, NewTo: t.OldTo})

		case DeleteSymlink:
			p := rewrite(t.Path)
			out = append(out, AddSymlink{Path: p, To: t.To})
		}
	}

	Sort(out, isDeprioritized)
	return out
}

// IsDeprioritized reports whether a change's path (or, for Rename, its
// new path) is deprioritized, per isDeprioritized.
func IsDeprioritized(c Change, isDeprioritized Deprioritizer) bool {
	if isDeprioritized == nil {
		return false
	}
	return isDeprioritized(c.changePath())
}
