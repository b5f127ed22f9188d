package tokenizer

// Library limits applied when the corresponding Limits field is zero.
const (
	DefaultMaxRows        = 1 << 31
	DefaultMaxCols        = 1 << 16
	DefaultMaxFieldBytes  = 64 << 20
	DefaultMaxRecordBytes = 256 << 20
	DefaultMaxTotalBytes  = 1 << 40
)

// DefaultSnippetRadius is the number of bytes shown on each side of an error
// offset in a context snippet.
const DefaultSnippetRadius = 40

// Limit names one of the resource limits.
type Limit uint8

const (
	LimitNone Limit = iota
	LimitRows
	LimitCols
	LimitFieldBytes
	LimitRecordBytes
	LimitTotalBytes
)

// String returns the option name of the limit.
func (l Limit) String() string {
	switch l {
	case LimitRows:
		return "max_rows"
	case LimitCols:
		return "max_cols"
	case LimitFieldBytes:
		return "max_field_bytes"
	case LimitRecordBytes:
		return "max_record_bytes"
	case LimitTotalBytes:
		return "max_total_bytes"
	default:
		return "none"
	}
}

// Limits bounds the resources a single stream may consume.
// Zero values use the library defaults. Use negative values to disable a limit.
//
// Each limit is checked before the byte that would exceed it is consumed, so a
// violation is reported at the offending byte.
type Limits struct {
	// MaxRows bounds the number of records, comment lines included.
	MaxRows int64
	// MaxCols bounds the number of fields in one record.
	MaxCols int64
	// MaxFieldBytes bounds the length of one field value.
	MaxFieldBytes int64
	// MaxRecordBytes bounds the raw bytes of one record, excluding its terminator.
	MaxRecordBytes int64
	// MaxTotalBytes bounds the bytes of the whole logical stream.
	MaxTotalBytes int64
}

func normalizeLimits(l Limits) Limits {
	if l.MaxRows == 0 {
		l.MaxRows = DefaultMaxRows
	}
	if l.MaxCols == 0 {
		l.MaxCols = DefaultMaxCols
	}
	if l.MaxFieldBytes == 0 {
		l.MaxFieldBytes = DefaultMaxFieldBytes
	}
	if l.MaxRecordBytes == 0 {
		l.MaxRecordBytes = DefaultMaxRecordBytes
	}
	if l.MaxTotalBytes == 0 {
		l.MaxTotalBytes = DefaultMaxTotalBytes
	}
	return l
}

// Options configures a Tokenizer.
type Options struct {
	Dialect Dialect
	Limits  Limits

	// ValidateUTF8 rejects input that is not well-formed UTF-8.
	ValidateUTF8 bool

	// SnippetRadius is the excerpt radius of error snippets.
	// Zero uses DefaultSnippetRadius; negative disables snippets.
	SnippetRadius int
}

// DefaultOptions returns the default dialect with default limits.
func DefaultOptions() Options {
	return Options{
		Dialect: DefaultDialect(),
	}
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	return normalizeOptions(o).Dialect.Validate()
}

// normalizeOptions applies defaults. A zero Dialect is the default dialect.
func normalizeOptions(o Options) Options {
	if o.Dialect == (Dialect{}) {
		o.Dialect = DefaultDialect()
	}
	o.Limits = normalizeLimits(o.Limits)
	if o.SnippetRadius == 0 {
		o.SnippetRadius = DefaultSnippetRadius
	}
	return o
}
