package change

// Split returns two change sets (oldToSel, selToNew) whose composition
// reproduces changes: applying oldToSel to OLD yields an intermediate
// tree SEL containing exactly the selected refs, and applying selToNew
// to SEL yields NEW.
//
// The rename-rewrite table is built once, up front, by scanning the
// whole input -- a single walk-level concern, not re-derived per
// change (see DESIGN.md, open question 1).
func Split(changes []Change, refs RefSet) (oldToSel []Change, selToNew []Change) {
	renames := map[string]string{}
	for _, c := range changes {
		if r, ok := c.(Rename); ok {
			renames[r.OldPath] = r.NewPath
		}
	}
	rewrite := func(path string) string {
		if p, ok := renames[path]; ok {
			return p
		}
		return path
	}

	for changeIndex, c := range changes {
		changeRef := ChangeRef{Change: changeIndex}

		if !IsFileChange(c) {
			if refs.Has(changeRef) {
				oldToSel = append(oldToSel, c)
			} else if _, isRename := c.(Rename); isRename {
				selToNew = append(selToNew, c)
			} else {
				selToNew = append(selToNew, withPath(c, rewrite(c.changePath())))
			}
			continue
		}

		lines := Lines(c)
		var oldToSelLines, selToNewLines []Line
		oldChanged, newChanged := false, false

		for lineIndex, line := range lines {
			switch {
			case line.Status() == StatusUnchanged:
				oldToSelLines = append(oldToSelLines, line)
				selToNewLines = append(selToNewLines, line)

			case refs.Has(LineRef{Change: changeIndex, Line: lineIndex}):
				oldToSelLines = append(oldToSelLines, line)
				if line.New != nil {
					selToNewLines = append(selToNewLines, Line{Old: line.New, New: line.New})
				}
				oldChanged = true

			default:
				if line.Old != nil {
					oldToSelLines = append(oldToSelLines, Line{Old: line.Old, New: line.Old})
				}
				selToNewLines = append(selToNewLines, line)
				newChanged = true
			}
		}

		switch t := c.(type) {
		case AddFile:
			if refs.Has(changeRef) {
				oldToSel = append(oldToSel, AddFile{Path: t.Path, Lines: oldToSelLines, IsExec: t.IsExec})
				if newChanged {
					selToNew = append(selToNew, ModifyFile{Path: rewrite(t.Path), Lines: selToNewLines})
				}
			} else {
				selToNew = append(selToNew, AddFile{Path: rewrite(t.Path), Lines: selToNewLines, IsExec: t.IsExec})
			}

		case ModifyFile:
			if oldChanged {
				oldToSel = append(oldToSel, ModifyFile{Path: t.Path, Lines: oldToSelLines})
			}
			if newChanged {
				selToNew = append(selToNew, ModifyFile{Path: rewrite(t.Path), Lines: selToNewLines})
			}

		case DeleteFile:
			if refs.Has(changeRef) {
				oldToSel = append(oldToSel, DeleteFile{Path: t.Path, Lines: oldToSelLines, IsExec: t.IsExec})
			} else {
				if oldChanged {
					oldToSel = append(oldToSel, ModifyFile{Path: t.Path, Lines: oldToSelLines})
				}
				selToNew = append(selToNew, DeleteFile{Path: rewrite(t.Path), Lines: selToNewLines, IsExec: t.IsExec})
			}
		}
	}

	return oldToSel, selToNew
}
