package tokenizer

import (
	"encoding/binary"
	"math/bits"
)

// SWAR (SIMD Within A Register) constants for the null byte detection trick.
// The expression ((x - lo) & ^x & hi) has the high bit set in the lowest
// byte position where x had a zero byte. Higher positions may carry false
// positives from borrows, so only the lowest set bit is used.
const (
	loMask = 0x0101010101010101
	hiMask = 0x8080808080808080
)

// byteSet is a set of up to four special bytes searched by the bulk scanner.
type byteSet struct {
	table [256]bool
	bcast [4]uint64
	n     int
}

func newByteSet(bs ...byte) *byteSet {
	s := &byteSet{}
	for _, b := range bs {
		if s.table[b] {
			continue
		}
		s.table[b] = true
		s.bcast[s.n] = uint64(b) * loMask
		s.n++
	}
	return s
}

// index returns the index of the first byte of w[i:stop] that is in the set,
// or stop if there is none.
func (s *byteSet) index(w []byte, i, stop int) int {
	// Fast path: 8 bytes at a time while a whole word fits.
	for i+8 <= stop {
		chunk := binary.LittleEndian.Uint64(w[i : i+8])
		var found uint64
		for k := 0; k < s.n; k++ {
			x := chunk ^ s.bcast[k]
			found |= (x - loMask) & ^x & hiMask
		}
		if found != 0 {
			return i + bits.TrailingZeros64(found)/8
		}
		i += 8
	}
	for i < stop {
		if s.table[w[i]] {
			return i
		}
		i++
	}
	return stop
}
