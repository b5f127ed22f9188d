package tokenizer

import "strings"

// Snippet is a bounded excerpt of the input around an error offset.
type Snippet struct {
	// Text is a copy of the excerpt bytes.
	Text []byte
	// Caret is the index in Text of the byte at the error offset. It equals
	// len(Text) when the error is at the end of the available input.
	Caret int
	// Offset is the absolute stream offset of Text[0].
	Offset int64
}

// GenerateSnippet returns up to radius bytes on each side of errOffset taken
// from buf, whose first byte is at absolute offset base. It never fails: an
// offset outside buf is clamped to its bounds and an empty buf yields an
// empty snippet. The excerpt stops at the nearest newline on either side so
// the caret line stays aligned.
func GenerateSnippet(buf []byte, base, errOffset int64, radius int) Snippet {
	if radius < 0 {
		radius = 0
	}
	at := errOffset - base
	if at < 0 {
		at = 0
	}
	if at > int64(len(buf)) {
		at = int64(len(buf))
	}
	i := int(at)

	start := i - radius
	if start < 0 {
		start = 0
	}
	for k := i - 1; k >= start; k-- {
		if buf[k] == '\n' || buf[k] == '\r' {
			start = k + 1
			break
		}
	}
	end := i + radius
	if end > len(buf) {
		end = len(buf)
	}
	for k := i; k < end; k++ {
		if buf[k] == '\n' || buf[k] == '\r' {
			end = k
			break
		}
	}

	text := make([]byte, end-start)
	copy(text, buf[start:end])
	return Snippet{Text: text, Caret: i - start, Offset: base + int64(start)}
}

// String renders the excerpt and a caret line under the error byte.
func (s Snippet) String() string {
	var b strings.Builder
	b.Grow(len(s.Text)*2 + 2)
	for _, c := range s.Text {
		if c == '\t' || (c >= 0x20 && c != 0x7F) {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	b.WriteByte('\n')
	for i := 0; i < s.Caret; i++ {
		if s.Text[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	return b.String()
}
