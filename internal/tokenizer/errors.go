package tokenizer

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates malformed call parameters or options.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeUnterminatedQuote indicates input ended inside a quoted field.
	ErrCodeUnterminatedQuote ErrorCode = "UNTERMINATED_QUOTE"
	// ErrCodeUnexpectedQuote indicates a quote inside an unquoted field.
	ErrCodeUnexpectedQuote ErrorCode = "UNEXPECTED_QUOTE"
	// ErrCodeInvalidQuoteUsage indicates a closing quote followed by something
	// other than a quote, the delimiter or a newline.
	ErrCodeInvalidQuoteUsage ErrorCode = "INVALID_QUOTE_USAGE"
	// ErrCodeInvalidEscape indicates an unknown backslash escape.
	ErrCodeInvalidEscape ErrorCode = "INVALID_ESCAPE_SEQUENCE"
	// ErrCodeUnexpectedNewline indicates a newline inside a quoted field when
	// the dialect forbids it.
	ErrCodeUnexpectedNewline ErrorCode = "UNEXPECTED_NEWLINE"
	// ErrCodeInvalidUTF8 indicates ill-formed UTF-8 input.
	ErrCodeInvalidUTF8 ErrorCode = "INVALID_UTF8"
	// ErrCodeLimitExceeded indicates one of the configured limits was exceeded.
	ErrCodeLimitExceeded ErrorCode = "LIMIT_EXCEEDED"
	// ErrCodeOutOfMemory indicates a field buffer could not grow.
	ErrCodeOutOfMemory ErrorCode = "OUT_OF_MEMORY"
	// ErrCodeIO indicates a failure reported by the event handler or a reader.
	ErrCodeIO ErrorCode = "IO_ERROR"
)

var (
	// ErrInvalidArgument indicates malformed call parameters.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFinished is returned by Feed after a successful Finish.
	ErrFinished = errors.New("tokenizer already finished")
	// ErrUnterminatedQuote indicates input ended inside a quoted field.
	ErrUnterminatedQuote = errors.New("extraneous or missing \" in quoted-field")
	// ErrUnexpectedQuote indicates a quote inside an unquoted field.
	ErrUnexpectedQuote = errors.New("bare \" in non-quoted-field")
	// ErrInvalidQuoteUsage indicates a quote in a quoted field followed by an
	// unexpected byte.
	ErrInvalidQuoteUsage = errors.New("quote in quoted-field not followed by quote, delimiter or newline")
	// ErrInvalidEscape indicates an unknown backslash escape.
	ErrInvalidEscape = errors.New("invalid escape sequence")
	// ErrUnexpectedNewline indicates a newline inside a quoted field.
	ErrUnexpectedNewline = errors.New("newline in quoted-field")
	// ErrInvalidUTF8 indicates ill-formed UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
	// ErrOutOfMemory indicates a field buffer could not grow.
	ErrOutOfMemory = errors.New("field buffer allocation failed")

	// ErrLimitExceeded is wrapped by every limit error.
	ErrLimitExceeded = errors.New("limit exceeded")
	// ErrTooManyRows indicates MaxRows was exceeded.
	ErrTooManyRows = fmt.Errorf("%w: too many rows", ErrLimitExceeded)
	// ErrTooManyColumns indicates MaxCols was exceeded.
	ErrTooManyColumns = fmt.Errorf("%w: too many fields in record", ErrLimitExceeded)
	// ErrFieldTooLarge indicates MaxFieldBytes was exceeded.
	ErrFieldTooLarge = fmt.Errorf("%w: field exceeds maximum size", ErrLimitExceeded)
	// ErrRecordTooLarge indicates MaxRecordBytes was exceeded.
	ErrRecordTooLarge = fmt.Errorf("%w: record exceeds maximum size", ErrLimitExceeded)
	// ErrInputTooLarge indicates MaxTotalBytes was exceeded.
	ErrInputTooLarge = fmt.Errorf("%w: input exceeds maximum size", ErrLimitExceeded)
)

func limitErr(l Limit) error {
	switch l {
	case LimitRows:
		return ErrTooManyRows
	case LimitCols:
		return ErrTooManyColumns
	case LimitFieldBytes:
		return ErrFieldTooLarge
	case LimitRecordBytes:
		return ErrRecordTooLarge
	case LimitTotalBytes:
		return ErrInputTooLarge
	default:
		return ErrLimitExceeded
	}
}

// Error is the terminal error of a stream. Once a Tokenizer stores an Error
// every later call returns it.
type Error struct {
	Code ErrorCode
	// Limit names the exceeded limit when Code is ErrCodeLimitExceeded.
	Limit Limit
	// Pos is the position of the offending byte.
	Pos Position
	// StartLine is the line where the current record started.
	StartLine int
	// Row is the 0-based index of the record being parsed.
	Row int64
	// Field is the 0-based index of the field within the record.
	Field int
	// Snippet is a bounded excerpt around Pos, if any input was still available.
	Snippet *Snippet
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *Error) Error() string {
	var msg strings.Builder
	if e.StartLine == 0 || e.StartLine == e.Pos.Line {
		fmt.Fprintf(&msg, "parse error on line %d, column %d: %v", e.Pos.Line, e.Pos.Column, e.Err)
	} else {
		fmt.Fprintf(&msg, "parse error on line %d (started line %d), column %d: %v",
			e.Pos.Line, e.StartLine, e.Pos.Column, e.Err)
	}
	if e.Snippet != nil && len(e.Snippet.Text) > 0 {
		msg.WriteString("\n  ")
		msg.WriteString(strings.ReplaceAll(e.Snippet.String(), "\n", "\n  "))
	}
	return msg.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the error code for an error, or ErrCodeIO for unknown errors.
// Returns empty string for nil errors or io.EOF.
func Code(err error) ErrorCode {
	if err == nil || err == io.EOF {
		return ""
	}

	var tokErr *Error
	if errors.As(err, &tokErr) {
		return tokErr.Code
	}

	var optErr *OptionsError
	switch {
	case errors.As(err, &optErr), errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrFinished):
		return ErrCodeInvalidArgument
	case errors.Is(err, ErrLimitExceeded):
		return ErrCodeLimitExceeded
	case errors.Is(err, ErrUnterminatedQuote):
		return ErrCodeUnterminatedQuote
	case errors.Is(err, ErrUnexpectedQuote):
		return ErrCodeUnexpectedQuote
	case errors.Is(err, ErrInvalidQuoteUsage):
		return ErrCodeInvalidQuoteUsage
	case errors.Is(err, ErrInvalidEscape):
		return ErrCodeInvalidEscape
	case errors.Is(err, ErrUnexpectedNewline):
		return ErrCodeUnexpectedNewline
	case errors.Is(err, ErrInvalidUTF8):
		return ErrCodeInvalidUTF8
	case errors.Is(err, ErrOutOfMemory):
		return ErrCodeOutOfMemory
	}
	return ErrCodeIO
}
