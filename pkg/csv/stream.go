package csv

import (
	"io"
)

// Scanner provides a streaming interface for reading CSV records one at a time.
// Input is read in chunks of ReaderOptions.BufferSize bytes and tokenized as it
// arrives, so memory use is bounded by the chunk size and the records of one
// chunk, not by the size of the input.
//
// Example usage:
//
//	file, _ := os.Open("data.csv")
//	defer file.Close()
//
//	scanner := csv.NewScanner(file).SetHasHeaders(true)
//	for scanner.Scan() {
//	    record := scanner.Record()
//	    name, _ := record.GetByName("name")
//	    fmt.Println(name)
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type Scanner struct {
	reader          io.Reader
	opts            ReaderOptions
	feeder          *feeder
	sink            scanSink
	head            int
	cur             scannedRecord
	hasCur          bool
	headers         []string
	hasHeaders      bool
	headersDone     bool
	reuseRecord     bool
	headerConverter HeaderConverter
	lastRecord      Record // reused when reuseRecord is true
	err             error
	started         bool
	done            bool
}

// scannedRecord is one record taken from the event stream.
type scannedRecord struct {
	fields []string
	pos    []Position
	end    int64
}

// scanSink queues the records completed by one Feed.
type scanSink struct {
	queue  []scannedRecord
	fields []string
	pos    []Position
	width  int
}

func (k *scanSink) HandleEvent(ev *Event) error {
	switch ev.Kind {
	case EventRecordBegin:
		k.fields = make([]string, 0, k.width)
		k.pos = make([]Position, 0, k.width)
	case EventField:
		k.fields = append(k.fields, ev.Text())
		k.pos = append(k.pos, ev.Pos)
	case EventRecordEnd:
		k.queue = append(k.queue, scannedRecord{fields: k.fields, pos: k.pos, end: ev.Pos.Offset})
		k.width = len(k.fields)
		k.fields, k.pos = nil, nil
	}
	return nil
}

// NewScanner creates a new Scanner that reads CSV from the given io.Reader.
// By default, the scanner assumes no headers. Use SetHasHeaders(true) to treat
// the first row as headers.
//
// Example:
//
//	scanner := csv.NewScanner(reader)
func NewScanner(reader io.Reader) *Scanner {
	return NewScannerWithOptions(reader, DefaultReaderOptions())
}

// NewScannerWithOptions creates a Scanner with custom options.
// Dialect.HeaderRow sets the initial value of SetHasHeaders.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.Dialect.Delimiter = '\t'
//	opts.Dialect.HeaderRow = true
//	scanner := csv.NewScannerWithOptions(file, opts)
func NewScannerWithOptions(reader io.Reader, opts ReaderOptions) *Scanner {
	return &Scanner{
		reader:     reader,
		opts:       opts,
		hasHeaders: opts.Dialect.HeaderRow,
	}
}

// SetHasHeaders sets whether the first row should be treated as headers.
// If true, the first row will be used as column names for GetByName() access.
// It has no effect once scanning has started.
// Returns the Scanner for method chaining.
//
// Example:
//
//	scanner := csv.NewScanner(reader).SetHasHeaders(true)
func (s *Scanner) SetHasHeaders(hasHeaders bool) *Scanner {
	if !s.started {
		s.hasHeaders = hasHeaders
	}
	return s
}

// SetReuseRecord sets whether the scanner should reuse the Record struct.
// When true, successive calls to Record() may return the same Record struct
// with updated field values. This can reduce memory allocations but means
// that previous Record values may be overwritten.
// Returns the Scanner for method chaining.
//
// Example:
//
//	scanner := csv.NewScanner(reader).SetReuseRecord(true)
func (s *Scanner) SetReuseRecord(reuse bool) *Scanner {
	s.reuseRecord = reuse
	return s
}

// SetHeaderConverter sets a function applied to every header name, such as
// SnakeCaseHeader. Returns the Scanner for method chaining.
//
// Example:
//
//	scanner := csv.NewScanner(reader).
//	    SetHasHeaders(true).
//	    SetHeaderConverter(csv.LowercaseHeader)
func (s *Scanner) SetHeaderConverter(conv HeaderConverter) *Scanner {
	if !s.started {
		s.headerConverter = conv
	}
	return s
}

// Scan advances the scanner to the next record.
// It returns false when there are no more records or an error occurs.
// After Scan returns false, the Err method will return any error that occurred.
// Records completed before an error are returned before Scan reports it.
//
// Example:
//
//	for scanner.Scan() {
//	    record := scanner.Record()
//	    // process record
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
func (s *Scanner) Scan() bool {
	if !s.started {
		s.started = true
		f, err := newFeeder(s.reader, s.opts, &s.sink)
		if err != nil {
			s.err = err
			s.done = true
		}
		s.feeder = f
	}
	for {
		if s.head < len(s.sink.queue) {
			rec := s.sink.queue[s.head]
			s.sink.queue[s.head] = scannedRecord{}
			s.head++
			if s.hasHeaders && !s.headersDone {
				s.setHeaders(rec.fields)
				continue
			}
			s.cur, s.hasCur = rec, true
			return true
		}
		s.hasCur = false
		if s.done {
			return false
		}
		s.sink.queue = s.sink.queue[:0]
		s.head = 0
		if err := s.feeder.step(); err != nil {
			s.done = true
			if err != io.EOF {
				s.err = err
			}
		}
	}
}

func (s *Scanner) setHeaders(fields []string) {
	s.headersDone = true
	if s.headerConverter != nil {
		for i, h := range fields {
			fields[i] = s.headerConverter(h)
		}
	}
	s.headers = fields
}

// Record returns the current record.
// This should only be called after Scan() returns true.
//
// The returned Record provides type-safe access to field values
// by index or by header name (if headers are set).
//
// When ReuseRecord is enabled, the returned Record may share memory with
// previous calls. Copy the Record if you need to retain its values.
func (s *Scanner) Record() Record {
	if !s.hasCur {
		return Record{fields: []string{}, headers: s.Headers()}
	}

	if s.reuseRecord {
		s.lastRecord.fields = s.cur.fields
		s.lastRecord.headers = s.headers
		return s.lastRecord
	}

	return Record{
		fields:  s.cur.fields,
		headers: s.headers,
	}
}

// Err returns the error, if any, that was encountered during scanning.
// It returns nil if no error occurred or at EOF.
func (s *Scanner) Err() error {
	return s.err
}

// Headers returns the column headers if SetHasHeaders(true) was called.
// Returns an empty slice if no headers were set.
// This is available after the first call to Scan().
func (s *Scanner) Headers() []string {
	if s.headers == nil {
		return []string{}
	}
	return s.headers
}

// FieldPos returns the line and column of the first byte of field i of the
// current record. Quoted fields report the position of the opening quote.
// If i is out of range, or no record is current, FieldPos returns 0, 0.
func (s *Scanner) FieldPos(i int) (line, column int) {
	if !s.hasCur || i < 0 || i >= len(s.cur.pos) {
		return 0, 0
	}
	p := s.cur.pos[i]
	return p.Line, p.Column
}

// InputOffset returns the byte offset just past the last field of the
// current record, excluding its terminator. Before the first record it is 0.
func (s *Scanner) InputOffset() int64 {
	if !s.hasCur {
		if s.feeder != nil && s.done && s.err == nil {
			return s.feeder.tok.Position().Offset
		}
		return 0
	}
	return s.cur.end
}
