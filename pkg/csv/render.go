package csv

import (
	"bytes"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST node to CSV bytes.
//
// The node should be the result of Parse() or ParseReader().
// Returns CSV bytes following RFC 4180 format.
//
// Rendering handles:
//   - Quoting of fields that need it (see FieldNeedsQuotes)
//   - Proper escaping of quotes (doubled)
//   - Preservation of empty fields
//   - Consistent line endings (LF)
//
// Example:
//
//	node, _ := csv.Parse("name,age\nAlice,30\nBob,25\n")
//	bytes, _ := csv.Render(node)
//	// bytes: name,age\nAlice,30\nBob,25\n
func Render(node ast.SchemaNode) ([]byte, error) {
	return RenderWithOptions(node, DefaultWriterOptions())
}

// RenderWithOptions converts an AST node to CSV bytes with custom options.
//
// Example:
//
//	opts := csv.DefaultWriterOptions()
//	opts.Comma = ';'
//	opts.Terminator = csv.NewlineCRLF
//	bytes, _ := csv.RenderWithOptions(node, opts)
func RenderWithOptions(node ast.SchemaNode, opts WriterOptions) ([]byte, error) {
	if node == nil {
		return []byte{}, nil
	}
	records, err := NodeToRecords(node)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, opts)
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
