// Package csv provides a user-friendly DOM API for CSV manipulation.
//
// The DOM API provides type-safe, fluent interfaces for building and manipulating
// CSV documents without requiring type assertions or working with raw AST nodes.
//
// # Document Type
//
// Document represents a CSV file with optional headers and data records:
//
//	doc := csv.NewDocument().
//		SetHeaders([]string{"name", "age"}).
//		AddRecord([]string{"Alice", "30"}).
//		AddRecord([]string{"Bob", "25"})
//
// # Record Type
//
// Record represents a single row in a CSV file with typed access:
//
//	record, _ := doc.GetRecord(0)
//	name, _ := record.Get(0)           // Get by index
//	age, _ := record.GetByName("age")  // Get by header name
//
// # Type-Safe Access
//
// Access values without type assertions:
//
//	record, ok := doc.GetRecord(0)     // Get first record
//	field, ok := record.Get(0)         // Get first field
//	field, ok := record.GetByName("name")  // Get field by header name
//
// # Round-trip Support
//
// Parse CSV and render back to CSV in the same dialect:
//
//	doc, _ := csv.ParseDocument("name,age\nAlice,30")
//	csvStr, _ := doc.CSV()  // Render back to CSV string
package csv

import (
	"fmt"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Document represents a CSV file with a fluent API for manipulation.
// All setter methods return *Document to enable method chaining.
//
// A Document consists of:
//   - Optional headers (first row that names the columns)
//   - Data records (remaining rows)
type Document struct {
	headers []string
	records [][]string
	dialect Dialect
}

// Record represents a single row in a CSV file.
// It provides type-safe access to field values by index or by header name.
type Record struct {
	fields  []string
	headers []string // Reference to document headers for name-based access
}

// NewDocument creates a new empty Document.
func NewDocument() *Document {
	return &Document{
		headers: []string{},
		records: make([][]string, 0),
		dialect: DefaultDialect(),
	}
}

// ParseDocument parses CSV string into a Document with a fluent API.
// Returns an error if the input is not valid CSV.
//
// All rows are treated as data records. Use ParseDocumentWithOptions with
// Dialect.HeaderRow set to take the first row as headers.
//
// Example:
//
//	doc, err := csv.ParseDocument("name,age\nAlice,30\nBob,25")
//	if err != nil {
//	    // handle error
//	}
//	// Optionally designate first row as headers
//	if doc.RecordCount() > 0 {
//	    headers := doc.Records()[0].Fields()
//	    doc.SetHeaders(headers)
//	    // Remove first record since it's now headers
//	}
func ParseDocument(input string) (*Document, error) {
	return ParseDocumentWithOptions(input, DefaultReaderOptions())
}

// ParseDocumentWithOptions parses CSV string into a Document with custom options.
// If opts.Dialect.HeaderRow is set, the first record becomes the headers.
// The document keeps the dialect, and CSV() writes it back in that dialect.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.Dialect.Delimiter = ';'
//	opts.Dialect.HeaderRow = true
//	doc, err := csv.ParseDocumentWithOptions("name;age\nAlice;30", opts)
//	record, _ := doc.GetRecord(0)
//	age, _ := record.GetByName("age") // "30"
func ParseDocumentWithOptions(input string, opts ReaderOptions) (*Document, error) {
	c := &recordCollector{}
	if err := parseString(input, opts, c); err != nil {
		return nil, err
	}

	doc := NewDocument()
	if opts.Dialect != (Dialect{}) {
		doc.dialect = opts.Dialect
	}
	records := c.records
	if opts.Dialect.HeaderRow && len(records) > 0 {
		doc.SetHeaders(records[0])
		records = records[1:]
	}
	for _, record := range records {
		doc.AddRecord(record)
	}

	return doc, nil
}

// SetHeaders sets the column headers for this CSV document.
// Headers are used by Record.GetByName() to access fields by name.
// Returns the Document for method chaining.
func (d *Document) SetHeaders(headers []string) *Document {
	d.headers = headers
	return d
}

// AddRecord adds a data record (row) to the document.
// Returns the Document for method chaining.
func (d *Document) AddRecord(fields []string) *Document {
	d.records = append(d.records, fields)
	return d
}

// Headers returns the column headers.
// Returns an empty slice if no headers have been set.
func (d *Document) Headers() []string {
	return d.headers
}

// Records returns all data records as Record objects.
// Each Record provides type-safe access to field values.
func (d *Document) Records() []Record {
	records := make([]Record, len(d.records))
	for i, fields := range d.records {
		records[i] = Record{
			fields:  fields,
			headers: d.headers,
		}
	}
	return records
}

// Dialect returns the dialect the document was parsed with. CSV() writes
// in this dialect.
func (d *Document) Dialect() Dialect {
	return d.dialect
}

// RecordCount returns the number of data records in the document.
// This does not include the header row.
func (d *Document) RecordCount() int {
	return len(d.records)
}

// GetRecord returns the record at the specified index.
// Returns (Record, false) if the index is out of bounds.
// Index is 0-based (0 = first data record, not the header).
func (d *Document) GetRecord(index int) (Record, bool) {
	if index < 0 || index >= len(d.records) {
		return Record{}, false
	}

	return Record{
		fields:  d.records[index],
		headers: d.headers,
	}, true
}

// CSV renders the Document back to a CSV string.
// This includes headers (if set) followed by all data records, written in
// the document's dialect.
//
// Example:
//
//	doc := csv.NewDocument().
//	    SetHeaders([]string{"name", "age"}).
//	    AddRecord([]string{"Alice", "30"})
//	csvStr, _ := doc.CSV()
//	// Output: name,age\nAlice,30\n
func (d *Document) CSV() (string, error) {
	return d.CSVWithOptions(WriterOptionsFor(d.dialect))
}

// CSVWithOptions renders the Document with custom writer options.
func (d *Document) CSVWithOptions(opts WriterOptions) (string, error) {
	var sb strings.Builder
	w := NewWriter(&sb, opts)

	if len(d.headers) > 0 {
		if err := w.Write(d.headers); err != nil {
			return "", err
		}
	}
	if err := w.WriteAll(d.records); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// ============================================================================
// Record Methods (type-safe field access)
// ============================================================================

// Get gets the field value at the specified index.
// Returns (value, false) if the index is out of bounds.
// Index is 0-based.
func (r Record) Get(index int) (string, bool) {
	if index < 0 || index >= len(r.fields) {
		return "", false
	}
	return r.fields[index], true
}

// GetByName gets the field value by header name.
// Returns (value, false) if the header name is not found or if no headers are set.
//
// Example:
//
//	record, _ := doc.GetRecord(0)
//	name, ok := record.GetByName("name")
//	if !ok {
//	    // Header "name" not found or no headers set
//	}
func (r Record) GetByName(name string) (string, bool) {
	if len(r.headers) == 0 {
		return "", false
	}

	// Find the index of the header
	for i, header := range r.headers {
		if header == name {
			return r.Get(i)
		}
	}

	return "", false
}

// Fields returns all field values in the record.
// This returns a copy of the fields slice.
func (r Record) Fields() []string {
	// Return a copy to prevent external modification
	fields := make([]string, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.fields)
}

// ============================================================================
// AST Conversion (for integration with AST-based APIs)
// ============================================================================

// ToAST converts the Document to an AST ArrayDataNode.
// This is useful for integration with other Shape parsers.
func (d *Document) ToAST() (*ast.ArrayDataNode, error) {
	records := d.records
	if len(d.headers) > 0 {
		records = append([][]string{d.headers}, d.records...)
	}
	node, err := RecordsToNode(records)
	if err != nil {
		return nil, err
	}
	return node.(*ast.ArrayDataNode), nil
}

// FromAST creates a Document from an AST ArrayDataNode.
// This is useful for integration with other Shape parsers.
func FromAST(node ast.SchemaNode) (*Document, error) {
	if _, ok := node.(*ast.ArrayDataNode); !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}
	records, err := NodeToRecords(node)
	if err != nil {
		return nil, err
	}

	doc := NewDocument()
	for _, record := range records {
		doc.AddRecord(record)
	}

	return doc, nil
}
