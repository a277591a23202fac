package diff

import (
	"container/heap"

	"github.com/dshills/jjdiff/internal/change"
)

// moveKind tie-breaks equal-cost states: substitute < add < delete.
type moveKind int

const (
	moveSubstitute moveKind = iota
	moveAdd
	moveDelete
)

type state struct {
	cost     int
	move     moveKind
	oldIndex int
	newIndex int
	line     change.Line
	prevKey  posKey
	hasPrev  bool
}

type posKey struct{ old, new int }

type stateHeap []state

func (h stateHeap) Len() int { return len(h) }
func (h stateHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].move < h[j].move
}
func (h stateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *stateHeap) Push(x any)        { *h = append(*h, x.(state)) }
func (h *stateHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// DiffLines aligns OLD and NEW into a sequence of Line whose projection
// onto present-old fields equals OLD and present-new fields equals NEW,
// in original order. It strips a common prefix/suffix, then runs an
// A*-like shortest-path search over (oldIndex, newIndex) states for the
// inner remainder.
func DiffLines(oldLines, newLines []string) []change.Line {
	prefixLen := 0
	for prefixLen < len(oldLines) && prefixLen < len(newLines) && oldLines[prefixLen] == newLines[prefixLen] {
		prefixLen++
	}

	suffixLen := 0
	for suffixLen < len(oldLines)-prefixLen && suffixLen < len(newLines)-prefixLen &&
		oldLines[len(oldLines)-1-suffixLen] == newLines[len(newLines)-1-suffixLen] {
		suffixLen++
	}

	var result []change.Line
	for i := 0; i < prefixLen; i++ {
		s := oldLines[i]
		result = append(result, change.Line{Old: ptr(s), New: ptr(s)})
	}

	mid := diffLinesBase(oldLines[prefixLen:len(oldLines)-suffixLen], newLines[prefixLen:len(newLines)-suffixLen])
	result = append(result, mid...)

	for i := len(oldLines) - suffixLen; i < len(oldLines); i++ {
		s := oldLines[i]
		result = append(result, change.Line{Old: ptr(s), New: ptr(s)})
	}

	return result
}

func ptr(s string) *string { return &s }

func diffLinesBase(oldLines, newLines []string) []change.Line {
	if len(oldLines) == 0 && len(newLines) == 0 {
		return nil
	}

	h := &stateHeap{}
	heap.Init(h)
	heap.Push(h, state{cost: heuristic(0, 0, len(oldLines), len(newLines)), oldIndex: 0, newIndex: 0})

	visited := map[posKey]state{}
	target := posKey{len(oldLines), len(newLines)}

	for h.Len() > 0 {
		cur := heap.Pop(h).(state)
		key := posKey{cur.oldIndex, cur.newIndex}
		if _, ok := visited[key]; ok {
			continue
		}
		visited[key] = cur

		if key == target {
			return reconstruct(visited, target)
		}

		if cur.oldIndex < len(oldLines) {
			next := posKey{cur.oldIndex + 1, cur.newIndex}
			if _, seen := visited[next]; !seen {
				line := oldLines[cur.oldIndex]
				heap.Push(h, state{
					cost:     cur.cost - heuristic(cur.oldIndex, cur.newIndex, len(oldLines), len(newLines)) + 200 + heuristic(cur.oldIndex+1, cur.newIndex, len(oldLines), len(newLines)),
					move:     moveDelete,
					oldIndex: cur.oldIndex + 1,
					newIndex: cur.newIndex,
					line:     change.Line{Old: ptr(line), New: nil},
					prevKey:  key,
					hasPrev:  true,
				})
			}
		}

		if cur.newIndex < len(newLines) {
			next := posKey{cur.oldIndex, cur.newIndex + 1}
			if _, seen := visited[next]; !seen {
				line := newLines[cur.newIndex]
				heap.Push(h, state{
					cost:     cur.cost - heuristic(cur.oldIndex, cur.newIndex, len(oldLines), len(newLines)) + 200 + heuristic(cur.oldIndex, cur.newIndex+1, len(oldLines), len(newLines)),
					move:     moveAdd,
					oldIndex: cur.oldIndex,
					newIndex: cur.newIndex + 1,
					line:     change.Line{Old: nil, New: ptr(line)},
					prevKey:  key,
					hasPrev:  true,
				})
			}
		}

		if cur.oldIndex < len(oldLines) && cur.newIndex < len(newLines) {
			oldLine := oldLines[cur.oldIndex]
			newLine := newLines[cur.newIndex]
			sim := lineSimilarity(oldLine, newLine)
			if sim >= SimilarityThreshold {
				next := posKey{cur.oldIndex + 1, cur.newIndex + 1}
				if _, seen := visited[next]; !seen {
					subCost := 200 - round(sim*200)
					heap.Push(h, state{
						cost:     cur.cost - heuristic(cur.oldIndex, cur.newIndex, len(oldLines), len(newLines)) + subCost + heuristic(cur.oldIndex+1, cur.newIndex+1, len(oldLines), len(newLines)),
						move:     moveSubstitute,
						oldIndex: cur.oldIndex + 1,
						newIndex: cur.newIndex + 1,
						line:     change.Line{Old: ptr(oldLine), New: ptr(newLine)},
						prevKey:  key,
						hasPrev:  true,
					})
				}
			}
		}
	}

	return nil
}

func round(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}

// heuristic is admissible: 100*|remaining old - remaining new|.
func heuristic(oldIndex, newIndex, oldLen, newLen int) int {
	oldRemaining := oldLen - oldIndex
	newRemaining := newLen - newIndex
	diff := oldRemaining - newRemaining
	if diff < 0 {
		diff = -diff
	}
	return 100 * diff
}

func reconstruct(visited map[posKey]state, target posKey) []change.Line {
	var lines []change.Line
	key := target
	for {
		st, ok := visited[key]
		if !ok || !st.hasPrev {
			break
		}
		lines = append(lines, st.line)
		key = st.prevKey
	}
	// reverse
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines
}
