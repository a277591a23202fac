package change

import "sort"

// priority order: Rename=0, ChangeMode=1, Delete*=2, Modify*=3, Add*=4
func priority(c Change) int {
	switch c.(type) {
	case Rename:
		return 0
	case ChangeMode:
		return 1
	case DeleteFile, DeleteBinary, DeleteSymlink:
		return 2
	case ModifyFile, ModifyBinary, ModifySymlink:
		return 3
	case AddFile, AddBinary, AddSymlink:
		return 4
	default:
		return 5
	}
}

// Deprioritizer decides whether a path should sort last. Implementations
// typically wrap a user-supplied glob list (see internal/config).
type Deprioritizer func(path string) bool

// key is the canonical ordering tuple (deprioritized, path, priority).
type key struct {
	deprioritized bool
	path          string
	priority      int
}

func changeKey(c Change, isDeprioritized Deprioritizer) key {
	var dep bool
	if isDeprioritized != nil {
		dep = isDeprioritized(c.changePath())
	}
	return key{deprioritized: dep, path: c.changePath(), priority: priority(c)}
}

func less(a, b key) bool {
	if a.deprioritized != b.deprioritized {
		return !a.deprioritized
	}
	if a.path != b.path {
		return a.path < b.path
	}
	return a.priority < b.priority
}

// Sort orders changes by the canonical key (deprioritized, path,
// priority), deprioritized entries sorting last. isDeprioritized may
// be nil, in which case no path is deprioritized.
func Sort(changes []Change, isDeprioritized Deprioritizer) {
	sort.SliceStable(changes, func(i, j int) bool {
		return less(changeKey(changes[i], isDeprioritized), changeKey(changes[j], isDeprioritized))
	})
}
