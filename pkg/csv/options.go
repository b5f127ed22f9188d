// Package csv provides configurable options for CSV parsing and writing.
package csv

import (
	"log/slog"

	"golang.org/x/text/encoding"
)

// DefaultBufferSize is the chunk size used when reading from an io.Reader.
const DefaultBufferSize = 64 << 10

// ReaderOptions configures CSV parsing behavior.
//
// The embedded Options carry the dialect, the limits and UTF-8 validation.
// The remaining fields configure the reader pipeline around the tokenizer.
type ReaderOptions struct {
	Options

	// Encoding, if set, transcodes the input to UTF-8 before tokenizing.
	// See EncodingByName.
	// Default: nil (input is used as is)
	Encoding encoding.Encoding

	// BufferSize is the number of bytes read from an io.Reader per Feed.
	// Default: DefaultBufferSize
	BufferSize int

	// Logger receives debug records per chunk and a warning for the terminal
	// error. Default: nil (silent)
	Logger *slog.Logger
}

// DefaultReaderOptions returns the default reader configuration.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		Options:    DefaultOptions(),
		BufferSize: DefaultBufferSize,
	}
}

// Validate checks if the options are valid.
// Returns an error if the options are invalid.
func (o ReaderOptions) Validate() error {
	if err := o.Options.Validate(); err != nil {
		return err
	}
	if o.BufferSize < 0 {
		return &OptionsError{Field: "BufferSize", Message: "negative buffer size"}
	}
	return nil
}

func (o ReaderOptions) bufferSize() int {
	if o.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return o.BufferSize
}

// WriterOptions configures CSV writing behavior.
type WriterOptions struct {
	// Comma is the field delimiter.
	// Default: ','
	Comma byte

	// Quote encloses fields that need quoting.
	// Default: '"'
	Quote byte

	// Escape selects how a quote inside a quoted field is written.
	// EscapeBackslash also escapes the backslash itself. With EscapeNone a
	// field containing the quote byte cannot be written.
	// Default: EscapeDoubledQuote
	Escape EscapeMode

	// CommentPrefix, if set, forces quoting of a first field that starts with
	// it so the record is not read back as a comment.
	CommentPrefix string

	// Terminator ends each record: NewlineLF, NewlineCRLF or NewlineCR.
	// Default: NewlineLF
	Terminator Newline

	// NoNewlineInQuotes is set when the reading dialect rejects newlines in
	// quoted fields. CR and LF are then written as \r and \n under
	// EscapeBackslash; with other escape modes a field holding CR or LF
	// fails with ErrUnwritableField.
	NoNewlineInQuotes bool
}

// DefaultWriterOptions returns the default writer configuration.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		Comma:      ',',
		Quote:      '"',
		Terminator: NewlineLF,
	}
}

// WriterOptionsFor returns writer options that produce output the given
// dialect reads back unchanged. The terminator is LF when the dialect
// accepts it, then CRLF, then CR.
func WriterOptionsFor(d Dialect) WriterOptions {
	if d == (Dialect{}) {
		d = DefaultDialect()
	}
	o := WriterOptions{
		Comma:             d.Delimiter,
		Quote:             d.Quote,
		Escape:            d.Escape,
		Terminator:        terminatorFor(d.Newlines),
		NoNewlineInQuotes: !d.NewlineInQuotes,
	}
	if d.AllowComments {
		o.CommentPrefix = d.CommentPrefix
	}
	return o
}

func terminatorFor(accepted Newline) Newline {
	switch {
	case accepted.Has(NewlineLF):
		return NewlineLF
	case accepted.Has(NewlineCRLF):
		return NewlineCRLF
	case accepted.Has(NewlineCR):
		return NewlineCR
	}
	return NewlineLF
}

// Validate checks if the writer options are valid. Zero values use the defaults.
func (o WriterOptions) Validate() error {
	o = o.normalized()
	switch o.Comma {
	case '\r', '\n':
		return &OptionsError{Field: "Comma", Message: "invalid delimiter"}
	}
	switch o.Quote {
	case '\r', '\n':
		return &OptionsError{Field: "Quote", Message: "invalid quote character"}
	}
	if o.Quote == o.Comma {
		return &OptionsError{Field: "Quote", Message: "quote character same as delimiter"}
	}
	if o.Escape > EscapeNone {
		return &OptionsError{Field: "Escape", Message: "unknown escape mode"}
	}
	if o.Escape == EscapeBackslash && (o.Comma == '\\' || o.Quote == '\\') {
		return &OptionsError{Field: "Escape", Message: "backslash escaping conflicts with delimiter or quote"}
	}
	switch o.Terminator {
	case NewlineLF, NewlineCRLF, NewlineCR:
	default:
		return &OptionsError{Field: "Terminator", Message: "terminator must be exactly one of LF, CRLF or CR"}
	}
	return nil
}

func (o WriterOptions) normalized() WriterOptions {
	if o.Comma == 0 {
		o.Comma = ','
	}
	if o.Quote == 0 {
		o.Quote = '"'
	}
	if o.Terminator == 0 {
		o.Terminator = NewlineLF
	}
	return o
}
