package csv

import "github.com/shapestone/shape-csvstream/internal/tokenizer"

// ParseError is the terminal error of a stream. It carries the error code,
// the position of the offending byte and a context snippet.
//
// Use errors.As to inspect it:
//
//	var perr *csv.ParseError
//	if errors.As(err, &perr) {
//	    fmt.Println(perr.Code, perr.Pos.Line, perr.Pos.Column)
//	}
type ParseError = tokenizer.Error

// OptionsError represents an invalid option configuration.
type OptionsError = tokenizer.OptionsError

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode = tokenizer.ErrorCode

// Error codes.
const (
	ErrCodeInvalidArgument   = tokenizer.ErrCodeInvalidArgument
	ErrCodeUnterminatedQuote = tokenizer.ErrCodeUnterminatedQuote
	ErrCodeUnexpectedQuote   = tokenizer.ErrCodeUnexpectedQuote
	ErrCodeInvalidQuoteUsage = tokenizer.ErrCodeInvalidQuoteUsage
	ErrCodeInvalidEscape     = tokenizer.ErrCodeInvalidEscape
	ErrCodeUnexpectedNewline = tokenizer.ErrCodeUnexpectedNewline
	ErrCodeInvalidUTF8       = tokenizer.ErrCodeInvalidUTF8
	ErrCodeLimitExceeded     = tokenizer.ErrCodeLimitExceeded
	ErrCodeOutOfMemory       = tokenizer.ErrCodeOutOfMemory
	ErrCodeIO                = tokenizer.ErrCodeIO
)

// Common parsing errors, usable with errors.Is.
var (
	ErrInvalidArgument   = tokenizer.ErrInvalidArgument
	ErrFinished          = tokenizer.ErrFinished
	ErrUnterminatedQuote = tokenizer.ErrUnterminatedQuote
	ErrInvalidQuoteUsage = tokenizer.ErrInvalidQuoteUsage
	ErrInvalidEscape     = tokenizer.ErrInvalidEscape
	ErrUnexpectedNewline = tokenizer.ErrUnexpectedNewline
	ErrInvalidUTF8       = tokenizer.ErrInvalidUTF8
	ErrOutOfMemory       = tokenizer.ErrOutOfMemory

	// ErrQuote indicates a quote inside an unquoted field.
	ErrQuote = tokenizer.ErrUnexpectedQuote

	ErrLimitExceeded  = tokenizer.ErrLimitExceeded
	ErrTooManyRows    = tokenizer.ErrTooManyRows
	ErrTooManyColumns = tokenizer.ErrTooManyColumns
	ErrFieldTooLarge  = tokenizer.ErrFieldTooLarge
	ErrRecordTooLarge = tokenizer.ErrRecordTooLarge
	ErrInputTooLarge  = tokenizer.ErrInputTooLarge
)

// Code returns the error code for an error, or ErrCodeIO for unknown errors.
// Returns empty string for nil errors or io.EOF.
//
// Example:
//
//	switch csv.Code(err) {
//	case csv.ErrCodeUnterminatedQuote:
//	    // input ended inside a quoted field
//	case csv.ErrCodeLimitExceeded:
//	    // input too large
//	}
func Code(err error) ErrorCode {
	return tokenizer.Code(err)
}

// ioError wraps a failure of the byte source with the position reached.
func ioError(pos Position, err error) error {
	return &ParseError{Code: ErrCodeIO, Pos: pos, StartLine: pos.Line, Err: err}
}
