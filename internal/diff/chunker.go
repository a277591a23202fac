package diff

import "golang.org/x/crypto/blake2b"

// Rolling-hash chunker constants, kept identical to the original so
// chunk boundaries (and therefore similarity scores) are reproducible.
const (
	windowSize     = 48
	windowMask     = (1 << 12) - 1
	hashBase       = 263
	hashModulus    = (1 << 31) - 1
)

var hashBasePower = func() uint64 {
	p := uint64(1)
	for i := 0; i < windowSize; i++ {
		p = (p * hashBase) % hashModulus
	}
	return p
}()

// chunkDigest is a stable 64-bit digest of a chunk's bytes.
type chunkDigest [8]byte

func stableHash(data []byte) chunkDigest {
	h, _ := blake2b.New(8, nil)
	h.Write(data)
	var d chunkDigest
	copy(d[:], h.Sum(nil))
	return d
}

// chunks splits data into content-defined chunks using a polynomial
// rolling hash kept over one continuously-sliding windowSize-byte
// window across the whole input: it is never reset at a boundary. At
// each position i >= windowSize, the hash over [i-windowSize, i) is
// checked; a boundary emits data[start:i], and the window then slides
// forward by one byte regardless. Data shorter than the window is
// returned as a single chunk.
func chunks(data []byte) []chunkDigest {
	if len(data) <= windowSize {
		if len(data) == 0 {
			return nil
		}
		return []chunkDigest{stableHash(data)}
	}

	var hash uint64
	for i := 0; i < windowSize; i++ {
		hash = (hash*hashBase + uint64(data[i])) % hashModulus
	}

	var result []chunkDigest
	start := 0

	for i := windowSize; i < len(data); i++ {
		if hash&windowMask == 0 {
			result = append(result, stableHash(data[start:i]))
			start = i
		}

		outgoing := uint64(data[i-windowSize])
		incoming := uint64(data[i])
		hash = (hash - (outgoing*hashBasePower)%hashModulus + hashModulus) % hashModulus
		hash = (hash*hashBase + incoming) % hashModulus
	}

	if start < len(data) {
		result = append(result, stableHash(data[start:]))
	}

	return result
}
