package tokenizer

import "strconv"

// Position is a location in the logical input stream.
type Position struct {
	// Offset is the byte offset from the start of the stream. It is monotonic
	// across feed calls.
	Offset int64
	// Line is the 1-based line number.
	Line int
	// Column is the 1-based byte column. It resets on every recognized newline.
	Column int
}

// StartPosition returns the position of the first byte of a stream.
func StartPosition() Position {
	return Position{Line: 1, Column: 1}
}

// String returns "line L, column C".
func (p Position) String() string {
	return "line " + strconv.Itoa(p.Line) + ", column " + strconv.Itoa(p.Column)
}

// advance moves the cursor over n bytes that are not newlines.
func (p *Position) advance(n int) {
	p.Offset += int64(n)
	p.Column += n
}

// newline moves the cursor over a recognized newline of n bytes.
func (p *Position) newline(n int) {
	p.Offset += int64(n)
	p.Line++
	p.Column = 1
}
