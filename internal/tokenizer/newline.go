package tokenizer

// NewlineStatus is the outcome of newline detection at a window position.
type NewlineStatus uint8

const (
	// NoNewline means the byte at the position is not a recognized newline.
	NoNewline NewlineStatus = iota
	// NewlineFound means a complete recognized newline starts at the position.
	NewlineFound
	// NewlineNeedMore means the window ends inside a possible newline and the
	// decision needs the next byte.
	NewlineNeedMore
)

// DetectNewline classifies the bytes at w[i] under the accepted newline set.
//
// CRLF is checked first and needs both bytes in the window. A '\r' that ends
// the window is reported as NewlineNeedMore when CRLF is accepted, even if a
// bare CR is accepted too, unless eof reports that no byte will follow.
func DetectNewline(w []byte, i int, accept Newline, eof bool) (int, NewlineStatus) {
	if i >= len(w) {
		return 0, NoNewline
	}
	switch w[i] {
	case '\n':
		if accept.Has(NewlineLF) {
			return 1, NewlineFound
		}
	case '\r':
		if accept.Has(NewlineCRLF) {
			if i+1 < len(w) {
				if w[i+1] == '\n' {
					return 2, NewlineFound
				}
			} else if !eof {
				return 0, NewlineNeedMore
			}
		}
		if accept.Has(NewlineCR) {
			return 1, NewlineFound
		}
	}
	return 0, NoNewline
}

// AdvanceNewline applies DetectNewline and, on a match, moves pos over the
// newline. It returns the newline length.
func AdvanceNewline(w []byte, i int, accept Newline, eof bool, pos *Position) (int, NewlineStatus) {
	n, st := DetectNewline(w, i, accept, eof)
	if st == NewlineFound {
		pos.newline(n)
	}
	return n, st
}

var utf8BOM = [3]byte{0xEF, 0xBB, 0xBF}

// BOMStatus is the outcome of byte order mark detection.
type BOMStatus uint8

const (
	// NoBOM means the window does not start with a UTF-8 BOM.
	NoBOM BOMStatus = iota
	// BOMFound means the window starts with the 3-byte UTF-8 BOM.
	BOMFound
	// BOMNeedMore means the window is a proper prefix of the BOM.
	BOMNeedMore
)

// DetectBOM reports whether w starts with a UTF-8 byte order mark. It is only
// meaningful at absolute offset 0 of a stream.
func DetectBOM(w []byte, eof bool) BOMStatus {
	n := len(w)
	if n > len(utf8BOM) {
		n = len(utf8BOM)
	}
	for i := 0; i < n; i++ {
		if w[i] != utf8BOM[i] {
			return NoBOM
		}
	}
	if n == len(utf8BOM) {
		return BOMFound
	}
	if n == 0 || eof {
		return NoBOM
	}
	return BOMNeedMore
}

// StripBOM removes a leading UTF-8 BOM from a complete buffer unless keep is set.
func StripBOM(b []byte, keep bool) []byte {
	if !keep && DetectBOM(b, true) == BOMFound {
		return b[len(utf8BOM):]
	}
	return b
}
