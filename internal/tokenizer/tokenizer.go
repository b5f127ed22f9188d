// Package tokenizer implements an incremental, resumable CSV tokenizer.
//
// A Tokenizer consumes input in arbitrarily sized chunks through Feed and
// reports fields and records to a Handler as they complete. Parsing can stop
// and resume at any byte boundary: a decision that needs a byte that has not
// arrived yet is carried in the tokenizer's state until the next Feed (or
// resolved by Finish).
//
//	tok, err := tokenizer.New(tokenizer.DefaultOptions(), handler)
//	for chunk := range chunks {
//	    if err := tok.Feed(chunk); err != nil {
//	        return err
//	    }
//	}
//	return tok.Finish()
//
// # Memory
//
// A field that starts and ends inside one chunk is handed to the handler as
// a view of that chunk. A field that is still open when Feed returns is
// copied into a buffer owned by the tokenizer, so the caller may reuse the
// chunk memory as soon as Feed returns.
//
// # Errors
//
// Every error is fatal. The first one is stored as an *Error and returned by
// every later call.
//
// # Thread Safety
//
// A Tokenizer must not be used by more than one goroutine at a time.
package tokenizer

import (
	"bytes"
	"errors"
)

type state uint8

const (
	stateStartOfRecord state = iota
	stateStartOfField
	stateUnquoted
	stateQuoted
	stateQuoteInQuoted
	stateEscapeInQuoted
	stateComment
	stateEnd
)

func (s state) String() string {
	switch s {
	case stateStartOfRecord:
		return "StartOfRecord"
	case stateStartOfField:
		return "StartOfField"
	case stateUnquoted:
		return "UnquotedField"
	case stateQuoted:
		return "QuotedField"
	case stateQuoteInQuoted:
		return "QuoteInQuoted"
	case stateEscapeInQuoted:
		return "EscapeInQuoted"
	case stateComment:
		return "Comment"
	case stateEnd:
		return "End"
	default:
		return "unknown"
	}
}

// consumeKind says which counters a consumed run adds to.
type consumeKind uint8

const (
	// kindContent bytes belong to the field value, the record and the stream.
	kindContent consumeKind = iota
	// kindStructural bytes (delimiters, quotes) belong to the record and the stream.
	kindStructural
	// kindOutside bytes (terminators, comments, BOM) belong to the stream only.
	kindOutside
)

// errNeedMore stops a run when the next decision needs bytes past the window.
var errNeedMore = errors.New("need more input")

// minLookahead is the smallest number of chunk bytes joined to carried bytes.
const minLookahead = 8

// Tokenizer is the incremental CSV state machine.
type Tokenizer struct {
	opts    Options
	dialect Dialect
	limits  Limits
	handler Handler

	unquotedSet *byteSet
	quotedSet   *byteSet
	newlineSet  *byteSet
	comment     []byte

	state      state
	inRecord   bool
	fields     int
	rows       int64
	recBytes   int64
	pos        Position
	recStart   Position
	fieldStart Position

	field fieldBuffer
	utf8  utf8Validator

	bomDone  bool
	eof      bool
	finished bool
	fed      bool
	inSitu   bool
	err      *Error

	// carry holds unconsumed bytes whose meaning depends on the next chunk.
	carry []byte
	// gen identifies the window being run. Borrowed fields record it.
	gen     uint64
	win     []byte
	winBase int64
	// hist is a copy of the last consumed bytes, used for error snippets
	// once the chunk they came from is gone.
	hist []byte

	ev Event
}

// New creates a Tokenizer that reports to h.
func New(opts Options, h Handler) (*Tokenizer, error) {
	if h == nil {
		return nil, &Error{Code: ErrCodeInvalidArgument, Pos: StartPosition(), Err: ErrInvalidArgument}
	}
	opts = normalizeOptions(opts)
	if err := opts.Dialect.Validate(); err != nil {
		return nil, &Error{Code: ErrCodeInvalidArgument, Pos: StartPosition(), Err: err}
	}
	d := opts.Dialect

	t := &Tokenizer{
		opts:        opts,
		dialect:     d,
		limits:      opts.Limits,
		handler:     h,
		unquotedSet: newByteSet(d.Delimiter, d.Quote, '\r', '\n'),
		newlineSet:  newByteSet('\r', '\n'),
	}
	if d.Escape == EscapeBackslash {
		t.quotedSet = newByteSet(d.Quote, '\\', '\r', '\n')
	} else {
		t.quotedSet = newByteSet(d.Quote, '\r', '\n')
	}
	if d.AllowComments {
		t.comment = []byte(d.CommentPrefix)
	}
	t.Reset()
	return t, nil
}

// Reset prepares the Tokenizer for a new stream with the same options and
// handler. Owned buffer capacity is kept.
func (t *Tokenizer) Reset() {
	t.state = stateStartOfRecord
	t.inRecord = false
	t.fields = 0
	t.rows = 0
	t.recBytes = 0
	t.pos = StartPosition()
	t.recStart = t.pos
	t.fieldStart = t.pos
	t.field.clear()
	t.utf8.reset()
	t.bomDone = false
	t.eof = false
	t.finished = false
	t.fed = false
	t.inSitu = false
	t.err = nil
	t.carry = t.carry[:0]
	t.win = nil
	t.winBase = 0
	t.hist = t.hist[:0]
}

// Options returns the normalized options of the Tokenizer.
func (t *Tokenizer) Options() Options {
	return t.opts
}

// Position returns the position of the next byte to be consumed.
func (t *Tokenizer) Position() Position {
	return t.pos
}

// Rows returns the number of rows started so far, comment lines included.
func (t *Tokenizer) Rows() int64 {
	return t.rows
}

// Err returns the terminal error, or nil.
func (t *Tokenizer) Err() error {
	if t.err == nil {
		return nil
	}
	return t.err
}

// Feed consumes chunk. It returns once every byte has been consumed or
// buffered; it never waits for more input. The caller may reuse chunk after
// Feed returns.
func (t *Tokenizer) Feed(chunk []byte) error {
	if t == nil {
		return &Error{Code: ErrCodeInvalidArgument, Err: ErrInvalidArgument}
	}
	if t.err != nil {
		return t.err
	}
	if t.finished {
		return &Error{Code: ErrCodeInvalidArgument, Pos: t.pos, Err: ErrFinished}
	}
	t.fed = true
	if err := t.feed(chunk); err != nil {
		return err
	}
	return t.suspend()
}

// Parse tokenizes data as the entire stream and finishes it. data must not
// be modified while its fields are in use: fields that need no
// transformation are delivered InSitu, aliasing data.
func (t *Tokenizer) Parse(data []byte) error {
	if t == nil {
		return &Error{Code: ErrCodeInvalidArgument, Err: ErrInvalidArgument}
	}
	if t.fed || t.finished {
		return &Error{Code: ErrCodeInvalidArgument, Pos: t.pos, Err: ErrInvalidArgument}
	}
	t.inSitu = true
	// the whole stream is present, so no decision waits for more input
	t.eof = true
	if err := t.Feed(data); err != nil {
		return err
	}
	return t.Finish()
}

// Finish signals the end of input. It resolves pending decisions, flushes a
// final field and record, and delivers the End event.
func (t *Tokenizer) Finish() error {
	if t == nil {
		return &Error{Code: ErrCodeInvalidArgument, Err: ErrInvalidArgument}
	}
	if t.err != nil {
		return t.err
	}
	if t.finished {
		return nil
	}
	t.eof = true

	if len(t.carry) > 0 {
		w := append([]byte(nil), t.carry...)
		t.carry = t.carry[:0]
		if _, err := t.run(w, len(w)); err != nil {
			return err
		}
	}

	if t.opts.ValidateUTF8 && t.utf8.pending() {
		return t.failAt(t.utf8.lead, ErrCodeInvalidUTF8, ErrInvalidUTF8)
	}

	switch t.state {
	case stateStartOfField:
		if err := t.checkCols(); err != nil {
			return err
		}
		t.fieldStart = t.pos
		t.field.clear()
		if err := t.emitField(); err != nil {
			return err
		}
		if err := t.endRecord(); err != nil {
			return err
		}
	case stateUnquoted, stateQuoteInQuoted:
		if err := t.emitField(); err != nil {
			return err
		}
		if err := t.endRecord(); err != nil {
			return err
		}
	case stateQuoted, stateEscapeInQuoted:
		return t.fail(ErrCodeUnterminatedQuote, ErrUnterminatedQuote)
	}

	t.ev = Event{Kind: EventEnd, Row: t.rows, Pos: t.pos}
	if err := t.emit(); err != nil {
		return err
	}
	t.state = stateEnd
	t.finished = true
	t.win = nil
	t.field.release()
	return nil
}

// feed runs the machine over carried bytes joined with the head of chunk,
// then over the rest of chunk.
func (t *Tokenizer) feed(chunk []byte) error {
	lookahead := len(t.comment) + 4
	if lookahead < minLookahead {
		lookahead = minLookahead
	}
	for len(t.carry) > 0 && len(chunk) > 0 {
		n := len(chunk)
		if n > lookahead {
			n = lookahead
		}
		stop := len(t.carry)
		w := make([]byte, 0, stop+n)
		w = append(w, t.carry...)
		w = append(w, chunk[:n]...)
		t.carry = t.carry[:0]

		i, err := t.run(w, stop)
		if err != nil {
			return err
		}
		if i < stop {
			if n == len(chunk) {
				t.carry = append(t.carry, w[i:]...)
				return nil
			}
			t.carry = append(t.carry, w[i:stop]...)
			lookahead *= 2
			continue
		}
		chunk = chunk[i-stop:]
	}
	if len(chunk) == 0 {
		return nil
	}
	i, err := t.run(chunk, len(chunk))
	if err != nil {
		return err
	}
	if i < len(chunk) {
		t.carry = append(t.carry, chunk[i:]...)
	}
	return nil
}

// suspend makes the state independent of the caller's chunk memory before
// Feed returns.
func (t *Tokenizer) suspend() error {
	if t.inSitu {
		return nil
	}
	switch t.state {
	case stateUnquoted, stateQuoted, stateQuoteInQuoted, stateEscapeInQuoted:
		if err := t.field.promote(); err != nil {
			return t.fail(ErrCodeOutOfMemory, err)
		}
	}
	t.win = nil
	return nil
}

// run drives the state machine over w[:stop]. Decisions may look at bytes up
// to len(w). It returns the index of the first unconsumed byte, which is less
// than stop only when more input is needed.
func (t *Tokenizer) run(w []byte, stop int) (int, error) {
	t.gen++
	t.win = w
	t.winBase = t.pos.Offset

	i := 0
	var err error
	for i < stop {
		switch t.state {
		case stateStartOfRecord:
			i, err = t.startOfRecord(w, i)
		case stateStartOfField:
			i, err = t.startOfField(w, i)
		case stateUnquoted:
			i, err = t.unquoted(w, i, stop)
		case stateQuoted:
			i, err = t.quoted(w, i, stop)
		case stateQuoteInQuoted:
			i, err = t.quoteInQuoted(w, i)
		case stateEscapeInQuoted:
			i, err = t.escapeInQuoted(w, i)
		case stateComment:
			i, err = t.inComment(w, i, stop)
		default:
			return i, t.Err()
		}
		if err != nil {
			break
		}
	}
	if err == errNeedMore {
		err = nil
	}
	if err != nil {
		return i, err
	}
	t.remember(w[:i])
	return i, nil
}

func (t *Tokenizer) startOfRecord(w []byte, i int) (int, error) {
	if !t.bomDone {
		if t.pos.Offset == 0 && !t.dialect.KeepBOM {
			switch DetectBOM(w[i:], t.eof) {
			case BOMNeedMore:
				return i, errNeedMore
			case BOMFound:
				if err := t.consume(w, i, len(utf8BOM), kindOutside, false); err != nil {
					return i, err
				}
				// the mark is not a column
				t.pos.Column = 1
				i += len(utf8BOM)
			}
		}
		t.bomDone = true
		return i, nil
	}

	if t.comment != nil {
		avail := w[i:]
		if len(avail) >= len(t.comment) {
			if bytes.Equal(avail[:len(t.comment)], t.comment) {
				return t.beginComment(w, i)
			}
		} else if !t.eof && bytes.HasPrefix(t.comment, avail) {
			return i, errNeedMore
		}
	}

	if t.dialect.SkipEmptyLines {
		n, st := DetectNewline(w, i, t.dialect.Newlines, t.eof)
		switch st {
		case NewlineNeedMore:
			return i, errNeedMore
		case NewlineFound:
			if err := t.consume(w, i, n, kindOutside, true); err != nil {
				return i, err
			}
			return i + n, nil
		}
	}

	return i, t.beginRecord()
}

func (t *Tokenizer) beginComment(w []byte, i int) (int, error) {
	if err := t.checkRows(); err != nil {
		return i, err
	}
	t.rows++
	t.state = stateComment
	if err := t.consume(w, i, len(t.comment), kindOutside, false); err != nil {
		return i, err
	}
	return i + len(t.comment), nil
}

func (t *Tokenizer) beginRecord() error {
	if err := t.checkRows(); err != nil {
		return err
	}
	t.rows++
	t.inRecord = true
	t.fields = 0
	t.recBytes = 0
	t.recStart = t.pos
	t.state = stateStartOfField
	t.ev = Event{Kind: EventRecordBegin, Row: t.rows - 1, Pos: t.pos}
	return t.emit()
}

func (t *Tokenizer) endRecord() error {
	t.ev = Event{Kind: EventRecordEnd, Row: t.rows - 1, Field: t.fields, Pos: t.pos}
	t.inRecord = false
	t.fields = 0
	t.recBytes = 0
	t.state = stateStartOfRecord
	return t.emit()
}

func (t *Tokenizer) startOfField(w []byte, i int) (int, error) {
	if err := t.checkCols(); err != nil {
		return i, err
	}
	t.fieldStart = t.pos
	c := w[i]

	switch c {
	case t.dialect.Quote:
		if err := t.consume(w, i, 1, kindStructural, false); err != nil {
			return i, err
		}
		t.field.beginBorrowed(w, t.gen, i+1, true)
		t.state = stateQuoted
		return i + 1, nil
	case t.dialect.Delimiter:
		t.field.beginBorrowed(w, t.gen, i, false)
		if err := t.emitField(); err != nil {
			return i, err
		}
		if err := t.consume(w, i, 1, kindStructural, false); err != nil {
			return i, err
		}
		return i + 1, nil
	}

	n, st := DetectNewline(w, i, t.dialect.Newlines, t.eof)
	switch st {
	case NewlineNeedMore:
		return i, errNeedMore
	case NewlineFound:
		t.field.beginBorrowed(w, t.gen, i, false)
		return t.endFieldAndRecord(w, i, n)
	}

	t.field.beginBorrowed(w, t.gen, i, false)
	t.state = stateUnquoted
	return i, nil
}

func (t *Tokenizer) unquoted(w []byte, i, stop int) (int, error) {
	j := t.unquotedSet.index(w, i, stop)
	if j > i {
		if err := t.appendContent(w, i, j, false); err != nil {
			return i, err
		}
		i = j
	}
	if i == stop {
		return i, nil
	}

	switch c := w[i]; c {
	case t.dialect.Delimiter:
		return t.endField(w, i)
	case t.dialect.Quote:
		if !t.dialect.AllowUnquotedQuotes {
			return i, t.fail(ErrCodeUnexpectedQuote, ErrUnexpectedQuote)
		}
		return i + 1, t.appendContent(w, i, i+1, false)
	}

	n, st := DetectNewline(w, i, t.dialect.Newlines, t.eof)
	switch st {
	case NewlineNeedMore:
		return i, errNeedMore
	case NewlineFound:
		return t.endFieldAndRecord(w, i, n)
	}
	// a CR or LF the dialect does not accept is content
	return i + 1, t.appendContent(w, i, i+1, false)
}

func (t *Tokenizer) quoted(w []byte, i, stop int) (int, error) {
	j := t.quotedSet.index(w, i, stop)
	if j > i {
		if err := t.appendContent(w, i, j, false); err != nil {
			return i, err
		}
		i = j
	}
	if i == stop {
		return i, nil
	}

	c := w[i]
	if c == t.dialect.Quote {
		if err := t.consume(w, i, 1, kindStructural, false); err != nil {
			return i, err
		}
		t.state = stateQuoteInQuoted
		return i + 1, nil
	}
	if c == '\\' && t.dialect.Escape == EscapeBackslash {
		if err := t.consume(w, i, 1, kindStructural, false); err != nil {
			return i, err
		}
		t.field.needsUnescape = true
		if err := t.field.promote(); err != nil {
			return i, t.fail(ErrCodeOutOfMemory, err)
		}
		t.state = stateEscapeInQuoted
		return i + 1, nil
	}

	n, st := DetectNewline(w, i, t.dialect.Newlines, t.eof)
	switch st {
	case NewlineNeedMore:
		return i, errNeedMore
	case NewlineFound:
		if !t.dialect.NewlineInQuotes {
			return i, t.fail(ErrCodeUnexpectedNewline, ErrUnexpectedNewline)
		}
		return i + n, t.appendContent(w, i, i+n, true)
	}
	return i + 1, t.appendContent(w, i, i+1, false)
}

// quoteInQuoted resolves the byte after a quote inside a quoted field.
func (t *Tokenizer) quoteInQuoted(w []byte, i int) (int, error) {
	c := w[i]
	if c == t.dialect.Quote && t.dialect.Escape == EscapeDoubledQuote {
		if err := t.consume(w, i, 1, kindContent, false); err != nil {
			return i, err
		}
		t.field.needsUnescape = true
		if err := t.field.appendOwned(c); err != nil {
			return i, t.fail(ErrCodeOutOfMemory, err)
		}
		t.state = stateQuoted
		return i + 1, nil
	}
	if c == t.dialect.Delimiter {
		return t.endField(w, i)
	}

	n, st := DetectNewline(w, i, t.dialect.Newlines, t.eof)
	switch st {
	case NewlineNeedMore:
		return i, errNeedMore
	case NewlineFound:
		return t.endFieldAndRecord(w, i, n)
	}
	return i, t.fail(ErrCodeInvalidQuoteUsage, ErrInvalidQuoteUsage)
}

// escapeInQuoted resolves the byte after a backslash inside a quoted field.
func (t *Tokenizer) escapeInQuoted(w []byte, i int) (int, error) {
	var out byte
	switch c := w[i]; c {
	case 'n':
		out = '\n'
	case 'r':
		out = '\r'
	case 't':
		out = '\t'
	case '\\', '"', t.dialect.Quote:
		out = c
	default:
		return i, t.fail(ErrCodeInvalidEscape, ErrInvalidEscape)
	}
	if err := t.consume(w, i, 1, kindContent, false); err != nil {
		return i, err
	}
	if err := t.field.appendOwned(out); err != nil {
		return i, t.fail(ErrCodeOutOfMemory, err)
	}
	t.state = stateQuoted
	return i + 1, nil
}

func (t *Tokenizer) inComment(w []byte, i, stop int) (int, error) {
	j := t.newlineSet.index(w, i, stop)
	if j > i {
		if err := t.consume(w, i, j-i, kindOutside, false); err != nil {
			return i, err
		}
		i = j
	}
	if i == stop {
		return i, nil
	}
	n, st := DetectNewline(w, i, t.dialect.Newlines, t.eof)
	switch st {
	case NewlineNeedMore:
		return i, errNeedMore
	case NewlineFound:
		if err := t.consume(w, i, n, kindOutside, true); err != nil {
			return i, err
		}
		t.state = stateStartOfRecord
		return i + n, nil
	}
	return i + 1, t.consume(w, i, 1, kindOutside, false)
}

// appendContent consumes w[from:to] as field content and adds it to the field.
func (t *Tokenizer) appendContent(w []byte, from, to int, nl bool) error {
	if err := t.consume(w, from, to-from, kindContent, nl); err != nil {
		return err
	}
	if err := t.field.appendBorrowedRun(w, t.gen, from, to); err != nil {
		return t.fail(ErrCodeOutOfMemory, err)
	}
	return nil
}

// endField emits the current field and consumes the delimiter at w[i].
func (t *Tokenizer) endField(w []byte, i int) (int, error) {
	if err := t.emitField(); err != nil {
		return i, err
	}
	if err := t.consume(w, i, 1, kindStructural, false); err != nil {
		return i, err
	}
	t.state = stateStartOfField
	return i + 1, nil
}

// endFieldAndRecord emits the current field, ends the record and consumes
// the n-byte terminator at w[i].
func (t *Tokenizer) endFieldAndRecord(w []byte, i, n int) (int, error) {
	if err := t.emitField(); err != nil {
		return i, err
	}
	if err := t.endRecord(); err != nil {
		return i, err
	}
	if err := t.consume(w, i, n, kindOutside, true); err != nil {
		return i, err
	}
	return i + n, nil
}

func (t *Tokenizer) emitField() error {
	t.ev = Event{
		Kind:      EventField,
		Value:     t.field.view(),
		Quoted:    t.field.quoted,
		Unescaped: t.field.needsUnescape,
		InSitu:    t.inSitu && t.field.borrowed(),
		Row:       t.rows - 1,
		Field:     t.fields,
		Pos:       t.fieldStart,
	}
	err := t.emit()
	t.fields++
	t.field.clear()
	return err
}

func (t *Tokenizer) emit() error {
	if err := t.handler.HandleEvent(&t.ev); err != nil {
		return t.fail(ErrCodeIO, err)
	}
	return nil
}

// consume accounts for the n bytes at w[i:] and moves the cursor over them.
// All limits are checked before any byte is consumed; on a violation the
// cursor stops at the offending byte and the error is stored.
func (t *Tokenizer) consume(w []byte, i, n int, kind consumeKind, nl bool) error {
	k := int64(n)
	lim := LimitNone
	if kind == kindContent && t.limits.MaxFieldBytes > 0 {
		if rem := t.limits.MaxFieldBytes - int64(t.field.len()); rem < k {
			k, lim = clampRem(rem), LimitFieldBytes
		}
	}
	if kind != kindOutside && t.limits.MaxRecordBytes > 0 {
		if rem := t.limits.MaxRecordBytes - t.recBytes; rem < k {
			k, lim = clampRem(rem), LimitRecordBytes
		}
	}
	if t.limits.MaxTotalBytes > 0 {
		if rem := t.limits.MaxTotalBytes - t.pos.Offset; rem < k {
			k, lim = clampRem(rem), LimitTotalBytes
		}
	}

	if t.opts.ValidateUTF8 {
		if j := t.utf8.scanAt(w[i:i+int(k)], t.pos); j >= 0 {
			t.pos.advance(j)
			return t.fail(ErrCodeInvalidUTF8, ErrInvalidUTF8)
		}
	}

	if lim != LimitNone {
		t.pos.advance(int(k))
		return t.failLimit(lim)
	}
	if nl {
		t.pos.newline(n)
	} else {
		t.pos.advance(n)
	}
	if kind != kindOutside {
		t.recBytes += int64(n)
	}
	return nil
}

func clampRem(rem int64) int64 {
	if rem < 0 {
		return 0
	}
	return rem
}

func (t *Tokenizer) checkRows() error {
	if t.limits.MaxRows > 0 && t.rows >= t.limits.MaxRows {
		return t.failLimit(LimitRows)
	}
	return nil
}

func (t *Tokenizer) checkCols() error {
	if t.limits.MaxCols > 0 && int64(t.fields) >= t.limits.MaxCols {
		return t.failLimit(LimitCols)
	}
	return nil
}

func (t *Tokenizer) failLimit(l Limit) error {
	err := t.fail(ErrCodeLimitExceeded, limitErr(l))
	t.err.Limit = l
	return err
}

func (t *Tokenizer) fail(code ErrorCode, cause error) error {
	return t.failAt(t.pos, code, cause)
}

// failAt stores the terminal error. The first stored error wins.
func (t *Tokenizer) failAt(pos Position, code ErrorCode, cause error) error {
	if t.err != nil {
		return t.err
	}
	e := &Error{
		Code:      code,
		Pos:       pos,
		StartLine: pos.Line,
		Row:       t.rows,
		Field:     t.fields,
		Err:       cause,
	}
	if t.inRecord {
		e.StartLine = t.recStart.Line
	}
	if t.inRecord || t.state == stateComment {
		e.Row = t.rows - 1
	}
	e.Snippet = t.snippet(pos)
	t.err = e
	t.state = stateEnd
	t.carry = t.carry[:0]
	return e
}

// snippet builds the best available excerpt: the remembered tail of earlier
// chunks joined with the window being run.
func (t *Tokenizer) snippet(pos Position) *Snippet {
	if t.opts.SnippetRadius < 0 {
		return nil
	}
	src, base := t.win, t.winBase
	if t.win == nil {
		base = t.pos.Offset
	}
	if len(t.hist) > 0 {
		joined := make([]byte, 0, len(t.hist)+len(src))
		joined = append(joined, t.hist...)
		joined = append(joined, src...)
		src = joined
		base -= int64(len(t.hist))
	}
	s := GenerateSnippet(src, base, pos.Offset, t.opts.SnippetRadius)
	return &s
}

// remember keeps the last SnippetRadius consumed bytes.
func (t *Tokenizer) remember(b []byte) {
	r := t.opts.SnippetRadius
	if r <= 0 || t.inSitu || len(b) == 0 {
		return
	}
	if len(b) >= r {
		t.hist = append(t.hist[:0], b[len(b)-r:]...)
		return
	}
	if keep := r - len(b); len(t.hist) > keep {
		t.hist = append(t.hist[:0], t.hist[len(t.hist)-keep:]...)
	}
	t.hist = append(t.hist, b...)
}
