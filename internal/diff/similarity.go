package diff

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// SimilarityThreshold is the minimum score (C2) at which C3 allows a
// substitute move, and the minimum score (C4) at which two paths are
// considered a rename candidate.
const SimilarityThreshold = 0.6

// contentIsEqual reports whether two files are byte-identical, sized
// first to short-circuit the common case.
func contentIsEqual(aPath, bPath string) (bool, error) {
	ai, err := os.Stat(aPath)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(bPath)
	if err != nil {
		return false, err
	}
	if ai.Size() != bi.Size() {
		return false, nil
	}

	a, err := os.ReadFile(aPath)
	if err != nil {
		return false, err
	}
	b, err := os.ReadFile(bPath)
	if err != nil {
		return false, err
	}
	return string(a) == string(b), nil
}

// decodeText reads a file and splits it into lines with SplitLines,
// returning ok=false if the bytes are not valid UTF-8 text (demoting
// the content to binary).
func decodeText(path string) ([]string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	if !utf8.Valid(data) {
		return nil, false, nil
	}
	return SplitLines(string(data)), true, nil
}

// SplitLines splits text on "\n", keeping content identical to the
// original (no line terminators retained), and drops a single trailing
// empty element produced by a final trailing newline.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// textSimilarity scores two line-sequences via 2*|intersection| / |total|
// over multisets of non-empty trimmed lines.
func textSimilarity(a, b []string) float64 {
	ca := lineCounts(a)
	cb := lineCounts(b)

	var common, total int
	for line, na := range ca {
		nb := cb[line]
		if nb < na {
			common += nb
		} else {
			common += na
		}
	}
	for _, n := range ca {
		total += n
	}
	for _, n := range cb {
		total += n
	}
	if total == 0 {
		return 1
	}
	return 2 * float64(common) / float64(total)
}

func lineCounts(lines []string) map[string]int {
	counts := map[string]int{}
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		counts[l]++
	}
	return counts
}

// binarySimilarity scores two byte slices via content-defined chunking
// and 2*|intersection| / |total| over the sets of chunk digests.
func binarySimilarity(a, b []byte) float64 {
	setA := map[chunkDigest]struct{}{}
	for _, d := range chunks(a) {
		setA[d] = struct{}{}
	}
	setB := map[chunkDigest]struct{}{}
	for _, d := range chunks(b) {
		setB[d] = struct{}{}
	}

	common := 0
	for d := range setA {
		if _, ok := setB[d]; ok {
			common++
		}
	}
	total := len(setA) + len(setB)
	if total == 0 {
		return 1
	}
	return 2 * float64(common) / float64(total)
}

// lineSimilarity is the SequenceMatcher ratio used both for near-match
// substitution in C3 and for symlink-target similarity in C2.
func lineSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	m := difflib.NewMatcher(splitChars(a), splitChars(b))
	return m.Ratio()
}

func splitChars(s string) []string {
	r := []rune(s)
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = string(c)
	}
	return out
}

// Similarity scores two Content values in [0,1].
func Similarity(a, b Content) (float64, error) {
	switch at := a.(type) {
	case File:
		bt, ok := b.(File)
		if !ok {
			return 0, nil
		}
		return fileSimilarity(at, bt)
	case Symlink:
		bt, ok := b.(Symlink)
		if !ok {
			return 0, nil
		}
		return lineSimilarity(at.Target, bt.Target), nil
	default:
		return 0, nil
	}
}

func fileSimilarity(a, b File) (float64, error) {
	equal, err := contentIsEqual(a.Handle, b.Handle)
	if err != nil {
		return 0, err
	}
	if equal {
		return 1, nil
	}

	aLines, aIsText, err := decodeText(a.Handle)
	if err != nil {
		return 0, err
	}
	bLines, bIsText, err := decodeText(b.Handle)
	if err != nil {
		return 0, err
	}

	if aIsText && bIsText {
		return textSimilarity(aLines, bLines), nil
	}
	if !aIsText && !bIsText {
		aBytes, err := os.ReadFile(a.Handle)
		if err != nil {
			return 0, err
		}
		bBytes, err := os.ReadFile(b.Handle)
		if err != nil {
			return 0, err
		}
		return binarySimilarity(aBytes, bBytes), nil
	}
	return 0, nil
}
