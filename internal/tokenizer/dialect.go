package tokenizer

import "strconv"

// EscapeMode selects how a literal quote (or other special byte) is written
// inside a quoted field.
type EscapeMode uint8

const (
	// EscapeDoubledQuote is the RFC 4180 convention: "" inside a quoted
	// field is one literal quote.
	EscapeDoubledQuote EscapeMode = iota
	// EscapeBackslash recognizes \n, \r, \t, \\ and \" inside quoted fields.
	EscapeBackslash
	// EscapeNone disables escaping; a quote inside a quoted field must close it.
	EscapeNone
)

// String returns the string representation of EscapeMode.
func (m EscapeMode) String() string {
	switch m {
	case EscapeDoubledQuote:
		return "doubled-quote"
	case EscapeBackslash:
		return "backslash"
	case EscapeNone:
		return "none"
	default:
		return "EscapeMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Newline is a set of accepted record terminators.
type Newline uint8

const (
	// NewlineLF accepts "\n".
	NewlineLF Newline = 1 << iota
	// NewlineCRLF accepts "\r\n". It is matched before LF and CR.
	NewlineCRLF
	// NewlineCR accepts a bare "\r".
	NewlineCR
)

// Has reports whether all bits of n2 are set in n.
func (n Newline) Has(n2 Newline) bool {
	return n&n2 == n2
}

// String returns the accepted sequences joined by "|".
func (n Newline) String() string {
	if n == 0 {
		return "none"
	}
	s := ""
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if n.Has(NewlineCRLF) {
		add("CRLF")
	}
	if n.Has(NewlineLF) {
		add("LF")
	}
	if n.Has(NewlineCR) {
		add("CR")
	}
	return s
}

// Dialect is the set of syntactic rules that map bytes to fields and records.
// A Dialect must not be changed once a parse has begun; the tokenizer keeps
// its own copy.
type Dialect struct {
	// Delimiter separates fields. Default: ','
	Delimiter byte

	// Quote opens and closes quoted fields. Default: '"'
	Quote byte

	// Escape selects the escape convention inside quoted fields.
	// Default: EscapeDoubledQuote
	Escape EscapeMode

	// Newlines is the set of accepted record terminators.
	// Default: NewlineCRLF | NewlineLF
	Newlines Newline

	// AllowComments enables comment lines. A comment is recognized only at the
	// start of a record, before any field has been consumed.
	AllowComments bool

	// CommentPrefix starts a comment line when AllowComments is set. Default: "#"
	CommentPrefix string

	// AllowUnquotedQuotes permits a quote byte inside an unquoted field,
	// where it is kept as content.
	AllowUnquotedQuotes bool

	// NewlineInQuotes permits recognized newlines inside quoted fields.
	// Default: true
	NewlineInQuotes bool

	// KeepBOM keeps a leading UTF-8 byte order mark as field content.
	KeepBOM bool

	// SkipEmptyLines consumes a newline at the start of a record without
	// producing a record.
	SkipEmptyLines bool

	// HeaderRow marks the first record as a header. The tokenizer ignores it;
	// it is consumed by the table layers built on the event stream.
	HeaderRow bool
}

// DefaultDialect returns the RFC 4180 dialect: comma, double quote,
// doubled-quote escaping, CRLF and LF terminators.
func DefaultDialect() Dialect {
	return Dialect{
		Delimiter:       ',',
		Quote:           '"',
		Escape:          EscapeDoubledQuote,
		Newlines:        NewlineCRLF | NewlineLF,
		CommentPrefix:   "#",
		NewlineInQuotes: true,
	}
}

// Validate checks the dialect for contradictions.
func (d Dialect) Validate() error {
	switch d.Delimiter {
	case 0, '\r', '\n':
		return &OptionsError{Field: "Delimiter", Message: "invalid delimiter"}
	}
	if d.Quote == 0 || d.Quote == '\r' || d.Quote == '\n' {
		return &OptionsError{Field: "Quote", Message: "invalid quote character"}
	}
	if d.Quote == d.Delimiter {
		return &OptionsError{Field: "Quote", Message: "quote character same as delimiter"}
	}
	if d.Escape > EscapeNone {
		return &OptionsError{Field: "Escape", Message: "unknown escape mode"}
	}
	if d.Escape == EscapeBackslash && (d.Delimiter == '\\' || d.Quote == '\\') {
		return &OptionsError{Field: "Escape", Message: "backslash escaping conflicts with delimiter or quote"}
	}
	if d.Newlines == 0 || d.Newlines&^(NewlineLF|NewlineCRLF|NewlineCR) != 0 {
		return &OptionsError{Field: "Newlines", Message: "no valid newline accepted"}
	}
	if d.AllowComments {
		if d.CommentPrefix == "" {
			return &OptionsError{Field: "CommentPrefix", Message: "empty comment prefix"}
		}
		c := d.CommentPrefix[0]
		if c == d.Delimiter || c == d.Quote || c == '\r' || c == '\n' {
			return &OptionsError{Field: "CommentPrefix", Message: "comment prefix starts with a structural byte"}
		}
	}
	return nil
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}
