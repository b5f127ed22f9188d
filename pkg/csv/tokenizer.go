package csv

import "github.com/shapestone/shape-csvstream/internal/tokenizer"

// Engine types, re-exported so callers never import internal packages.
type (
	// Tokenizer is the incremental, resumable CSV state machine.
	// See NewTokenizer.
	Tokenizer = tokenizer.Tokenizer
	// Dialect is the set of syntactic rules of a CSV flavor.
	Dialect = tokenizer.Dialect
	// Limits bounds the resources a stream may consume.
	Limits = tokenizer.Limits
	// Limit names one of the resource limits.
	Limit = tokenizer.Limit
	// Options configures a Tokenizer.
	Options = tokenizer.Options
	// EscapeMode selects the escape convention inside quoted fields.
	EscapeMode = tokenizer.EscapeMode
	// Newline is a set of accepted record terminators.
	Newline = tokenizer.Newline
	// Position is a location in the logical input stream.
	Position = tokenizer.Position
	// Event is delivered to a Handler.
	Event = tokenizer.Event
	// EventKind identifies the type of an Event.
	EventKind = tokenizer.EventKind
	// Handler receives the event stream of a Tokenizer.
	Handler = tokenizer.Handler
	// HandlerFunc adapts a function to the Handler interface.
	HandlerFunc = tokenizer.HandlerFunc
	// Snippet is a bounded excerpt of the input around an error.
	Snippet = tokenizer.Snippet
)

const (
	EscapeDoubledQuote = tokenizer.EscapeDoubledQuote
	EscapeBackslash    = tokenizer.EscapeBackslash
	EscapeNone         = tokenizer.EscapeNone

	NewlineLF   = tokenizer.NewlineLF
	NewlineCRLF = tokenizer.NewlineCRLF
	NewlineCR   = tokenizer.NewlineCR

	EventRecordBegin = tokenizer.EventRecordBegin
	EventField       = tokenizer.EventField
	EventRecordEnd   = tokenizer.EventRecordEnd
	EventEnd         = tokenizer.EventEnd

	LimitNone        = tokenizer.LimitNone
	LimitRows        = tokenizer.LimitRows
	LimitCols        = tokenizer.LimitCols
	LimitFieldBytes  = tokenizer.LimitFieldBytes
	LimitRecordBytes = tokenizer.LimitRecordBytes
	LimitTotalBytes  = tokenizer.LimitTotalBytes

	DefaultMaxRows        = tokenizer.DefaultMaxRows
	DefaultMaxCols        = tokenizer.DefaultMaxCols
	DefaultMaxFieldBytes  = tokenizer.DefaultMaxFieldBytes
	DefaultMaxRecordBytes = tokenizer.DefaultMaxRecordBytes
	DefaultMaxTotalBytes  = tokenizer.DefaultMaxTotalBytes
	DefaultSnippetRadius  = tokenizer.DefaultSnippetRadius
)

// NewTokenizer creates a Tokenizer that delivers events to h.
//
// Example:
//
//	tok, err := csv.NewTokenizer(csv.DefaultOptions(), csv.HandlerFunc(func(ev *csv.Event) error {
//	    if ev.Kind == csv.EventField {
//	        fmt.Println(ev.Row, ev.Field, string(ev.Value))
//	    }
//	    return nil
//	}))
//	if err != nil {
//	    // handle error
//	}
//	for _, chunk := range chunks {
//	    if err := tok.Feed(chunk); err != nil {
//	        // handle error
//	    }
//	}
//	err = tok.Finish()
func NewTokenizer(opts Options, h Handler) (*Tokenizer, error) {
	return tokenizer.New(opts, h)
}

// DefaultDialect returns the RFC 4180 dialect.
func DefaultDialect() Dialect {
	return tokenizer.DefaultDialect()
}

// DefaultOptions returns the default dialect with default limits.
func DefaultOptions() Options {
	return tokenizer.DefaultOptions()
}

// GenerateSnippet returns a bounded excerpt of buf around errOffset.
// base is the absolute stream offset of buf[0].
func GenerateSnippet(buf []byte, base, errOffset int64, radius int) Snippet {
	return tokenizer.GenerateSnippet(buf, base, errOffset, radius)
}
