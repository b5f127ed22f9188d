// Package csv provides incremental CSV tokenizing, parsing and AST generation.
//
// At its core is a resumable byte-level state machine (see NewTokenizer) that
// accepts input in arbitrarily sized chunks and reports fields and records
// as events. Every other API in this package is built on that event stream:
//
//   - Parse(string) and ParseReader(io.Reader) build Shape's unified AST
//   - Scanner yields records one at a time from an io.Reader
//   - ParseDocument builds a Document with header-aware record access
//   - Validate and ValidateReader check input without building anything
//
// Writer, Render and Document.CSV produce CSV that reads back unchanged.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each function call creates its own tokenizer instance with no shared mutable state.
// A Tokenizer, Scanner or Writer must not be shared between goroutines.
//
//	// Safe: Concurrent parsing
//	go func() { csv.Parse(input1) }()
//	go func() { csv.Parse(input2) }()
//
// # Example usage with Parse:
//
//	csvStr := "name,age\nAlice,30\nBob,25"
//	node, err := csv.Parse(csvStr)
//	if err != nil {
//	    // handle error
//	}
//	// node is now a *ast.ArrayDataNode representing the CSV data
//
// # Example usage with ParseReader:
//
//	file, err := os.Open("data.csv")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//
//	node, err := csv.ParseReader(file)
//	if err != nil {
//	    // handle error
//	}
//
// # Errors
//
// Every parse error is a *ParseError carrying an ErrorCode, the position of
// the offending byte and a context snippet. Use Code(err) to branch on the
// code and errors.Is with the Err* sentinels.
package csv

import (
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Parse parses CSV format into an AST from a string.
//
// Returns an ast.ArrayDataNode representing the parsed CSV:
//   - *ast.ArrayDataNode for the file (array of records)
//   - Each record is an *ast.ArrayDataNode of fields
//   - Each field is an *ast.LiteralNode containing a string value
//
// Field strings that need no unescaping share memory with input.
//
// Example:
//
//	node, err := csv.Parse("name,age\nAlice,30\nBob,25")
//	arrayNode := node.(*ast.ArrayDataNode)
//	records := arrayNode.Elements()
//	// records[0] is the header row
//	// records[1] is the first data row
func Parse(input string) (ast.SchemaNode, error) {
	return ParseWithOptions(input, DefaultReaderOptions())
}

// ParseWithOptions parses CSV format into an AST from a string with custom options.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.Dialect.Delimiter = '\t'
//	node, err := csv.ParseWithOptions("name\tage\nAlice\t30", opts)
func ParseWithOptions(input string, opts ReaderOptions) (ast.SchemaNode, error) {
	b := &astBuilder{}
	if err := parseString(input, opts, b); err != nil {
		return nil, err
	}
	return b.node(), nil
}

// ParseReader parses CSV format into an AST from an io.Reader.
//
// The input is read in chunks of ReaderOptions.BufferSize bytes and fed to
// the tokenizer as it arrives; only the AST itself grows with the input.
//
// Example:
//
//	reader := strings.NewReader("name,age\nAlice,30")
//	node, err := csv.ParseReader(reader)
func ParseReader(reader io.Reader) (ast.SchemaNode, error) {
	return ParseReaderWithOptions(reader, DefaultReaderOptions())
}

// ParseReaderWithOptions parses CSV format into an AST from an io.Reader with custom options.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.Dialect.AllowComments = true // Skip comment lines
//	node, err := csv.ParseReaderWithOptions(file, opts)
func ParseReaderWithOptions(reader io.Reader, opts ReaderOptions) (ast.SchemaNode, error) {
	b := &astBuilder{}
	f, err := newFeeder(reader, opts, b)
	if err != nil {
		return nil, err
	}
	if err := f.run(); err != nil {
		return nil, err
	}
	return b.node(), nil
}

// Format returns the format identifier for this parser.
// Returns "CSV" to identify this as the CSV data format parser.
func Format() string {
	return "CSV"
}

// Validate checks if the input string is valid CSV.
//
// Returns nil if the input is valid CSV.
// Returns a *ParseError with details about why the CSV is invalid.
//
//	if err := csv.Validate(input); err != nil {
//	    // Invalid CSV
//	    fmt.Println("Invalid CSV:", err)
//	}
func Validate(input string) error {
	return ValidateWithOptions(input, DefaultReaderOptions())
}

// ValidateWithOptions checks if the input string is valid CSV with custom options.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.Dialect.Delimiter = ';'  // Semicolon-separated
//	opts.ValidateUTF8 = true
//	err := csv.ValidateWithOptions("a;b;c", opts)
func ValidateWithOptions(input string, opts ReaderOptions) error {
	return parseString(input, opts, discard)
}

// ValidateReader checks if the input from an io.Reader is valid CSV.
//
// The reader is consumed in chunks; memory use does not depend on the input size.
//
//	file, _ := os.Open("data.csv")
//	defer file.Close()
//	if err := csv.ValidateReader(file); err != nil {
//	    fmt.Println("Invalid CSV:", err)
//	}
func ValidateReader(reader io.Reader) error {
	return ValidateReaderWithOptions(reader, DefaultReaderOptions())
}

// ValidateReaderWithOptions checks the input from an io.Reader with custom options.
func ValidateReaderWithOptions(reader io.Reader, opts ReaderOptions) error {
	f, err := newFeeder(reader, opts, discard)
	if err != nil {
		return err
	}
	return f.run()
}

// parseString tokenizes a complete in-memory document into h.
func parseString(input string, opts ReaderOptions, h Handler) error {
	if err := opts.Validate(); err != nil {
		return invalidOptions(err)
	}
	data := unsafeBytes(input)
	if opts.Encoding != nil {
		decoded, err := decodeBytes(data, opts.Encoding)
		if err != nil {
			err = ioError(Position{Line: 1, Column: 1}, err)
			logFailure(opts.Logger, err)
			return err
		}
		data = decoded
	}
	tok, err := NewTokenizer(opts.Options, h)
	if err != nil {
		return err
	}
	if err := tok.Parse(data); err != nil {
		logFailure(opts.Logger, err)
		return err
	}
	return nil
}
