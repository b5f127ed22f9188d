package csv_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shapestone/shape-csvstream/pkg/csv"
)

// TestWriter tests record output with the default options
func TestWriter(t *testing.T) {
	tests := []struct {
		name    string
		records [][]string
		opts    func(*csv.WriterOptions)
		want    string
	}{
		{
			name:    "plain",
			records: [][]string{{"a", "b"}, {"1", "2"}},
			want:    "a,b\n1,2\n",
		},
		{
			name:    "quoting",
			records: [][]string{{"x,y", `say "hi"`, "two\nlines", "cr\r"}},
			want:    "\"x,y\",\"say \"\"hi\"\"\",\"two\nlines\",\"cr\r\"\n",
		},
		{
			name:    "leading whitespace and bom",
			records: [][]string{{" a", "\tb", "\ufeffc", "d "}},
			want:    "\" a\",\"\tb\",\"\ufeffc\",d \n",
		},
		{
			name:    "lone empty field",
			records: [][]string{{""}, {"", ""}},
			want:    "\"\"\n,\n",
		},
		{
			name:    "comment prefix",
			records: [][]string{{"#tag", "#x"}},
			opts:    func(o *csv.WriterOptions) { o.CommentPrefix = "#" },
			want:    "\"#tag\",#x\n",
		},
		{
			name:    "crlf",
			records: [][]string{{"a"}, {"b"}},
			opts:    func(o *csv.WriterOptions) { o.Terminator = csv.NewlineCRLF },
			want:    "a\r\nb\r\n",
		},
		{
			name:    "cr",
			records: [][]string{{"a", "b\nc"}, {"d"}},
			opts:    func(o *csv.WriterOptions) { o.Terminator = csv.NewlineCR },
			want:    "a,\"b\nc\"\rd\r",
		},
		{
			name:    "backslash newline escapes",
			records: [][]string{{"x\ny", "c\r", `b\s`}},
			opts: func(o *csv.WriterOptions) {
				o.Escape = csv.EscapeBackslash
				o.NoNewlineInQuotes = true
			},
			want: `"x\ny","c\r","b\\s"` + "\n",
		},
		{
			name:    "invalid utf8 is kept",
			records: [][]string{{"\xff,", "\xfe"}},
			want:    "\"\xff,\",\xfe\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := csv.DefaultWriterOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			var buf bytes.Buffer
			w := csv.NewWriter(&buf, opts)
			for _, r := range tt.records {
				if err := w.Write(r); err != nil {
					t.Fatalf("Write() error = %v", err)
				}
			}
			w.Flush()
			if err := w.Error(); err != nil {
				t.Fatalf("Error() = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestWriterErrors tests invalid options and unwritable fields
func TestWriterErrors(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf, csv.WriterOptions{Comma: '\n'})
	if err := w.Write([]string{"a"}); err == nil {
		t.Error("Write() with newline delimiter should fail")
	}
	var oerr *csv.OptionsError
	if !errors.As(w.Error(), &oerr) || oerr.Field != "Comma" {
		t.Errorf("Error() = %v, want OptionsError for Comma", w.Error())
	}

	w = csv.NewWriter(&buf, csv.WriterOptions{Escape: csv.EscapeNone})
	if err := w.WriteAll([][]string{{`a"b`}}); !errors.Is(err, csv.ErrUnwritableField) {
		t.Errorf("WriteAll() error = %v, want ErrUnwritableField", err)
	}
	if err := w.Write([]string{"ok"}); !errors.Is(err, csv.ErrUnwritableField) {
		t.Errorf("Write() after failure = %v, want sticky ErrUnwritableField", err)
	}

	w = csv.NewWriter(&buf, csv.WriterOptions{NoNewlineInQuotes: true})
	if err := w.Write([]string{"a\nb"}); !errors.Is(err, csv.ErrUnwritableField) {
		t.Errorf("Write() newline without escapes = %v, want ErrUnwritableField", err)
	}

	buf.Reset()
	w = csv.NewWriter(&buf, csv.DefaultWriterOptions())
	if err := w.Write([]string{}); !errors.Is(err, csv.ErrEmptyRecord) {
		t.Errorf("Write(empty) = %v, want ErrEmptyRecord", err)
	}
	if err := w.WriteAll([][]string{{"a"}}); err != nil {
		t.Errorf("WriteAll() after empty record = %v, want nil", err)
	}
	if got := buf.String(); got != "a\n" {
		t.Errorf("output = %q, want %q", got, "a\n")
	}
}

// TestFieldNeedsQuotes tests the quoting decision
func TestFieldNeedsQuotes(t *testing.T) {
	tests := []struct {
		field string
		want  bool
	}{
		{"", false},
		{"abc", false},
		{"a b", false},
		{"trailing ", false},
		{"a,b", true},
		{`a"b`, true},
		{"a\nb", true},
		{"a\rb", true},
		{" lead", true},
		{"\tlead", true},
		{"\ufeffbom", true},
		{"a;b", false},
	}
	for _, tt := range tests {
		if got := csv.FieldNeedsQuotes(tt.field, ',', '"'); got != tt.want {
			t.Errorf("FieldNeedsQuotes(%q) = %v, want %v", tt.field, got, tt.want)
		}
	}
	if !csv.FieldNeedsQuotes("a;b", ';', '\'') || !csv.FieldNeedsQuotes("it's", ';', '\'') {
		t.Error("FieldNeedsQuotes should honor a custom delimiter and quote")
	}
}

// TestWriterOptionsFor tests writer options derived from a dialect
func TestWriterOptionsFor(t *testing.T) {
	d := csv.DefaultDialect()
	d.Delimiter = '|'
	d.Escape = csv.EscapeBackslash
	d.Newlines = csv.NewlineCRLF
	d.AllowComments = true
	d.CommentPrefix = "//"

	o := csv.WriterOptionsFor(d)
	want := csv.WriterOptions{Comma: '|', Quote: '"', Escape: csv.EscapeBackslash, CommentPrefix: "//", Terminator: csv.NewlineCRLF}
	if o != want {
		t.Errorf("WriterOptionsFor() = %+v, want %+v", o, want)
	}
	if got := csv.WriterOptionsFor(csv.Dialect{}); got != csv.DefaultWriterOptions() {
		t.Errorf("WriterOptionsFor(zero) = %+v, want defaults", got)
	}

	terminators := []struct {
		accepted csv.Newline
		want     csv.Newline
	}{
		{csv.NewlineCRLF | csv.NewlineLF, csv.NewlineLF},
		{csv.NewlineLF | csv.NewlineCR, csv.NewlineLF},
		{csv.NewlineCRLF, csv.NewlineCRLF},
		{csv.NewlineCRLF | csv.NewlineCR, csv.NewlineCRLF},
		{csv.NewlineCR, csv.NewlineCR},
	}
	for _, tt := range terminators {
		d := csv.DefaultDialect()
		d.Newlines = tt.accepted
		if got := csv.WriterOptionsFor(d).Terminator; got != tt.want {
			t.Errorf("WriterOptionsFor(%v).Terminator = %v, want %v", tt.accepted, got, tt.want)
		}
	}

	d = csv.DefaultDialect()
	d.NewlineInQuotes = false
	if !csv.WriterOptionsFor(d).NoNewlineInQuotes {
		t.Error("WriterOptionsFor() should carry NewlineInQuotes = false")
	}
}

// TestWriterRoundTrip tests that written records read back unchanged
func TestWriterRoundTrip(t *testing.T) {
	records := [][]string{
		{"id", "text", "empty"},
		{"1", "a,b", ""},
		{"2", "\"quoted\"", " lead"},
		{"3", "multi\r\nline\rcr\nlf", "\ufeff"},
		{"4", `back\slash`, "it's"},
		{""},
		{"#not a comment", "x"},
	}

	tests := []struct {
		name string
		mod  func(*csv.Dialect)
		// unwritable is set when fields holding CR or LF cannot be written.
		unwritable bool
	}{
		{name: "default", mod: func(*csv.Dialect) {}},
		{name: "semicolon backslash", mod: func(d *csv.Dialect) {
			d.Delimiter = ';'
			d.Escape = csv.EscapeBackslash
		}},
		{name: "comments crlf", mod: func(d *csv.Dialect) {
			d.AllowComments = true
			d.Newlines = csv.NewlineCRLF
		}},
		{name: "skip empty lines", mod: func(d *csv.Dialect) { d.SkipEmptyLines = true }},
		{name: "cr only", mod: func(d *csv.Dialect) { d.Newlines = csv.NewlineCR }},
		{name: "lf and cr", mod: func(d *csv.Dialect) { d.Newlines = csv.NewlineLF | csv.NewlineCR }},
		{name: "crlf and cr", mod: func(d *csv.Dialect) { d.Newlines = csv.NewlineCRLF | csv.NewlineCR }},
		{name: "tab single quote", mod: func(d *csv.Dialect) {
			d.Delimiter = '\t'
			d.Quote = '\''
		}},
		{name: "backslash no newline in quotes", mod: func(d *csv.Dialect) {
			d.Escape = csv.EscapeBackslash
			d.NewlineInQuotes = false
		}},
		{name: "backslash cr only no newline in quotes", mod: func(d *csv.Dialect) {
			d.Escape = csv.EscapeBackslash
			d.Newlines = csv.NewlineCR
			d.NewlineInQuotes = false
		}},
		{name: "doubled no newline in quotes", mod: func(d *csv.Dialect) {
			d.NewlineInQuotes = false
		}, unwritable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := csv.DefaultDialect()
			tt.mod(&d)
			want := records

			var buf bytes.Buffer
			err := csv.NewWriter(&buf, csv.WriterOptionsFor(d)).WriteAll(records)
			if tt.unwritable {
				if !errors.Is(err, csv.ErrUnwritableField) {
					t.Fatalf("WriteAll() error = %v, want ErrUnwritableField", err)
				}
				want = withoutNewlines(records)
				buf.Reset()
				err = csv.NewWriter(&buf, csv.WriterOptionsFor(d)).WriteAll(want)
			}
			if err != nil {
				t.Fatalf("WriteAll() error = %v", err)
			}
			written := buf.String()

			opts := csv.DefaultReaderOptions()
			opts.Dialect = d
			opts.BufferSize = 5
			node, err := csv.ParseReaderWithOptions(&buf, opts)
			if err != nil {
				t.Fatalf("ParseReaderWithOptions(%q) error = %v", written, err)
			}
			got, err := csv.NodeToRecords(node)
			if err != nil {
				t.Fatalf("NodeToRecords() error = %v", err)
			}
			if !equalRecords(got, want) {
				t.Errorf("read back %q from %q, want %q", got, written, want)
			}
		})
	}
}

// withoutNewlines drops the records that hold a CR or LF.
func withoutNewlines(records [][]string) [][]string {
	var out [][]string
	for _, r := range records {
		if !strings.ContainsAny(strings.Join(r, ""), "\r\n") {
			out = append(out, r)
		}
	}
	return out
}

// BenchmarkWriter benchmarks writing records that need quoting
func BenchmarkWriter(b *testing.B) {
	record := []string{"plain", "with,comma", `with "quotes"`, "multi\nline", "12345"}
	var buf bytes.Buffer
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		w := csv.NewWriter(&buf, csv.DefaultWriterOptions())
		for j := 0; j < 100; j++ {
			_ = w.Write(record)
		}
		w.Flush()
	}
	b.SetBytes(int64(buf.Len()))
}
