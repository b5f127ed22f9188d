package tokenizer

// EventKind identifies the type of a tokenizer event.
type EventKind uint8

const (
	// EventRecordBegin starts a record.
	EventRecordBegin EventKind = iota + 1
	// EventField carries one field of the current record.
	EventField
	// EventRecordEnd ends the current record.
	EventRecordEnd
	// EventEnd is delivered exactly once, after the last record.
	EventEnd
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventRecordBegin:
		return "RECORD_BEGIN"
	case EventField:
		return "FIELD"
	case EventRecordEnd:
		return "RECORD_END"
	case EventEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// Event is delivered to a Handler. The Event and its Value are only valid for
// the duration of the HandleEvent call, except that the Value of an InSitu
// field aliases the buffer given to Parse and lives as long as that buffer.
type Event struct {
	Kind EventKind

	// Value holds the field bytes with escapes already resolved.
	Value []byte
	// Quoted reports whether the field was enclosed in quotes.
	Quoted bool
	// Unescaped reports whether escapes were resolved in Value.
	Unescaped bool
	// InSitu reports whether Value aliases the caller's Parse buffer.
	InSitu bool

	// Row is the 0-based record index.
	Row int64
	// Field is the 0-based field index within the record. For RecordEnd it
	// is the number of fields in the record.
	Field int
	// Pos is the position of the first byte of the record or field. For
	// RecordEnd it is the position just past the last field, and for End the
	// end of the stream.
	Pos Position
}

// Text returns Value as a string. In-situ values are converted without a copy.
func (e *Event) Text() string {
	if e.InSitu {
		return unsafeString(e.Value)
	}
	return string(e.Value)
}

// Handler receives the event stream of a Tokenizer: zero or more
// RecordBegin, Field*, RecordEnd groups followed by exactly one End.
// A non-nil error aborts the stream with that error.
type Handler interface {
	HandleEvent(ev *Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ev *Event) error

// HandleEvent calls f(ev).
func (f HandlerFunc) HandleEvent(ev *Event) error {
	return f(ev)
}
