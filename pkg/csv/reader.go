package csv

import (
	"errors"
	"io"
	"log/slog"
)

// feeder moves bytes from an io.Reader into a Tokenizer one chunk at a time.
type feeder struct {
	tok  *Tokenizer
	src  io.Reader
	buf  []byte
	log  *slog.Logger
	done bool
}

func newFeeder(r io.Reader, opts ReaderOptions, h Handler) (*feeder, error) {
	if r == nil {
		return nil, &ParseError{Code: ErrCodeInvalidArgument, Err: ErrInvalidArgument}
	}
	if err := opts.Validate(); err != nil {
		return nil, invalidOptions(err)
	}
	tok, err := NewTokenizer(opts.Options, h)
	if err != nil {
		return nil, err
	}
	return &feeder{
		tok: tok,
		src: decodeReader(r, opts.Encoding),
		buf: make([]byte, opts.bufferSize()),
		log: opts.Logger,
	}, nil
}

// step reads one chunk and feeds it. At the end of input it finishes the
// stream and returns io.EOF.
func (f *feeder) step() error {
	if f.done {
		return io.EOF
	}
	n, rerr := f.src.Read(f.buf)
	if n > 0 {
		if err := f.tok.Feed(f.buf[:n]); err != nil {
			return f.fail(err)
		}
		if f.log != nil {
			pos := f.tok.Position()
			f.log.Debug("csv: chunk fed",
				slog.Int("bytes", n),
				slog.Int64("offset", pos.Offset),
				slog.Int("line", pos.Line),
				slog.Int64("rows", f.tok.Rows()))
		}
	}
	if rerr == nil {
		return nil
	}
	if rerr != io.EOF {
		return f.fail(ioError(f.tok.Position(), rerr))
	}
	if err := f.tok.Finish(); err != nil {
		return f.fail(err)
	}
	f.done = true
	if f.log != nil {
		f.log.Debug("csv: stream finished",
			slog.Int64("bytes", f.tok.Position().Offset),
			slog.Int64("rows", f.tok.Rows()))
	}
	return io.EOF
}

// run feeds the whole input.
func (f *feeder) run() error {
	for {
		if err := f.step(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func (f *feeder) fail(err error) error {
	f.done = true
	logFailure(f.log, err)
	return err
}

// logFailure reports a terminal error at Warn level.
func logFailure(log *slog.Logger, err error) {
	if log == nil || err == nil {
		return
	}
	attrs := []any{slog.String("code", string(Code(err))), slog.Any("error", err)}
	var perr *ParseError
	if errors.As(err, &perr) {
		attrs = append(attrs,
			slog.Int("line", perr.Pos.Line),
			slog.Int("column", perr.Pos.Column),
			slog.Int64("offset", perr.Pos.Offset),
			slog.Int64("row", perr.Row))
	}
	log.Warn("csv: parse failed", attrs...)
}

func invalidOptions(err error) error {
	return &ParseError{Code: ErrCodeInvalidArgument, Pos: Position{Line: 1, Column: 1}, Err: err}
}
