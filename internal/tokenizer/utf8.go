package tokenizer

// UTF8Status is the outcome of UTF-8 validation over a window.
type UTF8Status uint8

const (
	// UTF8Valid means every byte of the window is part of a complete sequence.
	UTF8Valid UTF8Status = iota
	// UTF8Invalid means the window contains an ill-formed sequence.
	UTF8Invalid
	// UTF8Incomplete means the window ends inside a sequence that may still
	// be completed by the following bytes.
	UTF8Incomplete
)

func (s UTF8Status) String() string {
	switch s {
	case UTF8Valid:
		return "valid"
	case UTF8Invalid:
		return "invalid"
	case UTF8Incomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// ValidateUTF8 checks b for well-formed UTF-8. It rejects overlong encodings,
// unexpected continuation bytes, surrogate code points and code points above
// U+10FFFF.
//
// For UTF8Invalid the returned index is the offending byte. For UTF8Incomplete
// it is the start of the truncated sequence. For UTF8Valid it is len(b).
func ValidateUTF8(b []byte) (int, UTF8Status) {
	var v utf8Validator
	if i := v.scan(b); i >= 0 {
		return i, UTF8Invalid
	}
	if v.rem > 0 {
		return len(b) - v.have, UTF8Incomplete
	}
	return len(b), UTF8Valid
}

// utf8Validator validates a byte stream incrementally. A sequence may span
// any number of scan calls.
type utf8Validator struct {
	rem    int  // continuation bytes still expected
	have   int  // bytes of the current sequence already seen
	lo, hi byte // accepted range of the next continuation byte
	lead   Position
}

func (v *utf8Validator) reset() {
	*v = utf8Validator{}
}

// pending reports whether a sequence is open.
func (v *utf8Validator) pending() bool {
	return v.rem > 0
}

// scan validates b and returns the index of the first invalid byte, or -1.
func (v *utf8Validator) scan(b []byte) int {
	i := 0
	for i < len(b) {
		c := b[i]
		if v.rem > 0 {
			if c < v.lo || c > v.hi {
				return i
			}
			v.rem--
			v.have++
			v.lo, v.hi = 0x80, 0xBF
			i++
			continue
		}
		if c < 0x80 {
			i++
			for i < len(b) && b[i] < 0x80 {
				i++
			}
			continue
		}
		switch {
		case c >= 0xC2 && c <= 0xDF:
			v.rem, v.lo, v.hi = 1, 0x80, 0xBF
		case c == 0xE0:
			v.rem, v.lo, v.hi = 2, 0xA0, 0xBF
		case c == 0xED:
			v.rem, v.lo, v.hi = 2, 0x80, 0x9F
		case c >= 0xE1 && c <= 0xEF:
			v.rem, v.lo, v.hi = 2, 0x80, 0xBF
		case c == 0xF0:
			v.rem, v.lo, v.hi = 3, 0x90, 0xBF
		case c >= 0xF1 && c <= 0xF3:
			v.rem, v.lo, v.hi = 3, 0x80, 0xBF
		case c == 0xF4:
			v.rem, v.lo, v.hi = 3, 0x80, 0x8F
		default:
			return i
		}
		v.have = 1
		i++
	}
	return -1
}

// scanAt is scan for a run of non-newline bytes starting at pos. It records
// the position of an open sequence's lead byte for end-of-input reporting.
func (v *utf8Validator) scanAt(b []byte, pos Position) int {
	i := v.scan(b)
	if i < 0 && v.rem > 0 {
		// a lead byte before this run keeps its earlier position
		if start := len(b) - v.have; start >= 0 {
			v.lead = pos
			v.lead.advance(start)
		}
	}
	return i
}
