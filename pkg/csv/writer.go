package csv

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var (
	// ErrUnwritableField is returned by Writer when a field cannot be
	// represented: it contains the quote byte under EscapeNone, or CR or LF
	// under NoNewlineInQuotes without EscapeBackslash.
	ErrUnwritableField = errors.New("csv: field cannot be represented with the writer options")

	// ErrEmptyRecord is returned by Write for a record with no fields.
	// A bare terminator would read back as a single empty field.
	ErrEmptyRecord = errors.New("csv: record has no fields")
)

// Writer writes records in CSV format that the tokenizer reads back
// unchanged under the matching dialect (see WriterOptionsFor).
//
// Fields are quoted only when needed; see FieldNeedsQuotes. Output is buffered,
// so call Flush (or WriteAll) before the underlying io.Writer is used.
//
// Example:
//
//	w := csv.NewWriter(os.Stdout, csv.DefaultWriterOptions())
//	w.Write([]string{"name", "comment"})
//	w.Write([]string{"Alice", `said "hi", left`})
//	w.Flush()
//	if err := w.Error(); err != nil {
//	    // handle error
//	}
type Writer struct {
	w    *bufio.Writer
	opts WriterOptions
	eol  string
	err  error
}

// NewWriter returns a new Writer that writes to w.
// Invalid options are reported by the first call to Write.
func NewWriter(w io.Writer, opts WriterOptions) *Writer {
	cw := &Writer{w: bufio.NewWriter(w), opts: opts.normalized()}
	switch cw.opts.Terminator {
	case NewlineCRLF:
		cw.eol = "\r\n"
	case NewlineCR:
		cw.eol = "\r"
	default:
		cw.eol = "\n"
	}
	if err := opts.Validate(); err != nil {
		cw.err = err
	}
	return cw
}

// Write writes a single record followed by the line terminator.
// A record with a single empty field is written as "" so it reads back as
// one field. An empty record is rejected with ErrEmptyRecord.
func (w *Writer) Write(record []string) error {
	if w.err != nil {
		return w.err
	}
	if len(record) == 0 {
		return ErrEmptyRecord
	}
	for i, field := range record {
		if i > 0 {
			if err := w.w.WriteByte(w.opts.Comma); err != nil {
				return err
			}
		}
		if err := w.writeField(field, i == 0, len(record) == 1); err != nil {
			return err
		}
	}
	_, err := w.w.WriteString(w.eol)
	return err
}

func (w *Writer) writeField(field string, first, only bool) error {
	quote := FieldNeedsQuotes(field, w.opts.Comma, w.opts.Quote) ||
		(only && field == "") ||
		(first && w.opts.CommentPrefix != "" && strings.HasPrefix(field, w.opts.CommentPrefix))
	if !quote {
		_, err := w.w.WriteString(field)
		return err
	}

	q := w.opts.Quote
	if w.opts.Escape == EscapeNone && strings.IndexByte(field, q) >= 0 ||
		w.opts.NoNewlineInQuotes && w.opts.Escape != EscapeBackslash && strings.ContainsAny(field, "\r\n") {
		w.err = ErrUnwritableField
		return w.err
	}
	if err := w.w.WriteByte(q); err != nil {
		return err
	}
	for len(field) > 0 {
		i := w.nextSpecial(field)
		if i < 0 {
			i = len(field)
		}
		if _, err := w.w.WriteString(field[:i]); err != nil {
			return err
		}
		if i == len(field) {
			break
		}
		esc, c := q, field[i]
		if w.opts.Escape == EscapeBackslash {
			esc = '\\'
			switch c {
			case '\n':
				c = 'n'
			case '\r':
				c = 'r'
			}
		}
		if err := w.w.WriteByte(esc); err != nil {
			return err
		}
		if err := w.w.WriteByte(c); err != nil {
			return err
		}
		field = field[i+1:]
	}
	return w.w.WriteByte(q)
}

// nextSpecial returns the index of the next byte that must be escaped
// inside a quoted field, or -1.
func (w *Writer) nextSpecial(s string) int {
	if w.opts.Escape == EscapeBackslash {
		if w.opts.NoNewlineInQuotes {
			return strings.IndexAny(s, string([]byte{w.opts.Quote, '\\', '\r', '\n'}))
		}
		return strings.IndexAny(s, string([]byte{w.opts.Quote, '\\'}))
	}
	return strings.IndexByte(s, w.opts.Quote)
}

// WriteAll writes multiple records using Write and then calls Flush,
// returning any error from the Flush.
func (w *Writer) WriteAll(records [][]string) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

// Flush writes any buffered data to the underlying io.Writer.
// To check if an error occurred during Flush, call Error.
func (w *Writer) Flush() {
	w.w.Flush()
}

// Error reports any error that has occurred during a previous Write or Flush.
func (w *Writer) Error() error {
	if w.err != nil {
		return w.err
	}
	_, err := w.w.Write(nil)
	return err
}

// FieldNeedsQuotes reports whether field must be quoted to read back
// unchanged: it contains the delimiter, the quote, CR or LF, it starts with
// a space or tab, or it starts with a UTF-8 byte order mark.
func FieldNeedsQuotes(field string, comma, quote byte) bool {
	if field == "" {
		return false
	}
	if field[0] == ' ' || field[0] == '\t' || strings.HasPrefix(field, "\ufeff") {
		return true
	}
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case comma, quote, '\r', '\n':
			return true
		}
	}
	return false
}
