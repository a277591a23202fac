package render

// EdgePadding is how much context the scroll driver tries to keep above
// and below the selection when it scrolls to reveal it.
const EdgePadding = 5

// ScrollState is the viewport's current vertical scroll position.
type ScrollState struct {
	Top    int
	Height int
}

// ScrollToSelection adjusts top so that every line carrying a
// SelectionMarker is visible, padding EdgePadding lines above and below
// when the total content allows it. totalLines is the full rendered
// height of out.Lines.
func ScrollToSelection(s ScrollState, out *Output, totalLines int) ScrollState {
	first, last, ok := selectionRange(out)
	if !ok {
		return s
	}

	wantTop := first - EdgePadding
	wantBottom := last + EdgePadding

	top := s.Top
	if wantTop < top {
		top = wantTop
	}
	if wantBottom-s.Height+1 > top {
		top = wantBottom - s.Height + 1
	}
	if top < 0 {
		top = 0
	}
	if maxTop := totalLines - s.Height; maxTop >= 0 && top > maxTop {
		top = maxTop
	}
	s.Top = top
	return s
}

func selectionRange(out *Output) (first, last int, ok bool) {
	first, last = -1, -1
	for _, m := range out.Markers {
		if _, isSel := m.Value.(SelectionMarker); !isSel {
			continue
		}
		if first == -1 || m.Line < first {
			first = m.Line
		}
		if m.Line > last {
			last = m.Line
		}
	}
	return first, last, first != -1
}

// scrollBarGlyphs are the quarter-block characters used to render a
// proportional scroll bar, from emptiest to fullest.
var scrollBarGlyphs = []rune{' ', '▖', '▄', '▙', '█'}

// ScrollBar renders the right-column scroll bar for a viewport of height
// rows showing [top, top+height) of totalLines, proportional to the
// viewport/total-height ratio.
func ScrollBar(top, height, totalLines int) []rune {
	bar := make([]rune, height)
	if totalLines <= height || totalLines == 0 {
		for i := range bar {
			bar[i] = '█'
		}
		return bar
	}

	thumbSize := float64(height*height) / float64(totalLines)
	if thumbSize < 1 {
		thumbSize = 1
	}
	thumbStart := float64(top*height) / float64(totalLines)

	for i := range bar {
		coverage := overlap(float64(i), float64(i+1), thumbStart, thumbStart+thumbSize)
		idx := int(coverage * float64(len(scrollBarGlyphs)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(scrollBarGlyphs) {
			idx = len(scrollBarGlyphs) - 1
		}
		bar[i] = scrollBarGlyphs[idx]
	}
	return bar
}

func overlap(aStart, aEnd, bStart, bEnd float64) float64 {
	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	if end <= start {
		return 0
	}
	return end - start
}
