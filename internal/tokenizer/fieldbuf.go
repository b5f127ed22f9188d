package tokenizer

import "math"

// growDoubleAt is the capacity from which owned buffers double instead of
// growing by initialFieldCap.
const growDoubleAt = 1024

// maxOwnedCap bounds owned buffer growth. Growth past it reports ErrOutOfMemory.
const maxOwnedCap = math.MaxInt / 2

type bufMode uint8

const (
	// modeBorrowed: the field is the span src[start:end] of a window the
	// tokenizer is currently running over.
	modeBorrowed bufMode = iota
	// modeOwned: the field is the owned slice. A field never leaves this mode
	// until it is cleared.
	modeOwned
)

// fieldBuffer holds the bytes of the field being assembled, either as a
// zero-copy span of the current window or as an owned copy.
//
// A borrowed span is tied to the window generation it was taken from. Any
// append from a different generation promotes the field first, so a view
// never mixes windows and never refers to a window that has been released.
type fieldBuffer struct {
	mode       bufMode
	src        []byte
	gen        uint64
	start, end int
	owned      []byte

	quoted        bool
	needsUnescape bool
}

// beginBorrowed starts a new field as an empty view of src at start.
func (b *fieldBuffer) beginBorrowed(src []byte, gen uint64, start int, quoted bool) {
	b.clear()
	b.src = src
	b.gen = gen
	b.start, b.end = start, start
	b.quoted = quoted
}

// appendBorrowedRun extends the field with src[from:to]. While the field is
// borrowed and the run is contiguous with the view, only the view grows.
// Otherwise the field is promoted and the run is copied.
func (b *fieldBuffer) appendBorrowedRun(src []byte, gen uint64, from, to int) error {
	if from == to {
		return nil
	}
	if b.mode == modeBorrowed {
		if b.src != nil && b.gen == gen && b.end == from {
			b.end = to
			return nil
		}
		if b.start == b.end {
			// empty view: rebase onto the new window
			b.src, b.gen = src, gen
			b.start, b.end = from, to
			return nil
		}
		if err := b.promote(); err != nil {
			return err
		}
	}
	return b.appendOwned(src[from:to]...)
}

// promote copies the borrowed span into an owned buffer. It is a no-op for a
// field that is already owned.
func (b *fieldBuffer) promote() error {
	if b.mode == modeOwned {
		return nil
	}
	span := b.src[b.start:b.end]
	b.owned = b.owned[:0]
	if err := b.reserve(len(span)); err != nil {
		return err
	}
	b.owned = append(b.owned, span...)
	b.mode = modeOwned
	b.src = nil
	b.start, b.end = 0, 0
	return nil
}

// appendOwned promotes the field if needed and appends p.
func (b *fieldBuffer) appendOwned(p ...byte) error {
	if b.mode == modeBorrowed {
		if err := b.promote(); err != nil {
			return err
		}
	}
	if err := b.reserve(len(p)); err != nil {
		return err
	}
	b.owned = append(b.owned, p...)
	return nil
}

// reserve makes room for n more owned bytes using the hybrid growth policy:
// fixed initialFieldCap increments below growDoubleAt, doubling above.
func (b *fieldBuffer) reserve(n int) error {
	need := len(b.owned) + n
	if need < len(b.owned) || need > maxOwnedCap {
		return ErrOutOfMemory
	}
	if need <= cap(b.owned) {
		return nil
	}
	c := cap(b.owned)
	if b.owned == nil {
		b.owned = getBuffer()
		c = cap(b.owned)
		if need <= c {
			return nil
		}
	}
	for c < need {
		if c < growDoubleAt {
			c += initialFieldCap
		} else {
			c *= 2
		}
	}
	if c > maxOwnedCap {
		c = maxOwnedCap
	}
	grown := make([]byte, len(b.owned), c)
	copy(grown, b.owned)
	b.owned = grown
	return nil
}

// view returns the active representation.
func (b *fieldBuffer) view() []byte {
	if b.mode == modeOwned {
		return b.owned
	}
	if b.src == nil {
		return nil
	}
	return b.src[b.start:b.end]
}

// len returns the used length of the field.
func (b *fieldBuffer) len() int {
	if b.mode == modeOwned {
		return len(b.owned)
	}
	return b.end - b.start
}

// borrowed reports whether the field is a view of caller memory.
func (b *fieldBuffer) borrowed() bool {
	return b.mode == modeBorrowed
}

// clear resets the buffer for the next field. Owned capacity is kept.
func (b *fieldBuffer) clear() {
	b.mode = modeBorrowed
	b.src = nil
	b.gen = 0
	b.start, b.end = 0, 0
	b.owned = b.owned[:0]
	b.quoted = false
	b.needsUnescape = false
}

// release hands the owned allocation back to the pool.
func (b *fieldBuffer) release() {
	b.clear()
	putBuffer(b.owned)
	b.owned = nil
}
