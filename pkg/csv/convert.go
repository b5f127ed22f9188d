package csv

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// NodeToRecords converts an AST node to a slice of string records.
//
// It accepts the shape produced by Parse (an *ast.ArrayDataNode of records,
// each an *ast.ArrayDataNode of *ast.LiteralNode fields) and also a single
// record node, which yields one record. Literal values that are not strings
// are formatted with fmt.Sprint; a nil value is the empty field.
//
// Example:
//
//	node, _ := csv.Parse("name,age\nAlice,30\n")
//	records, _ := csv.NodeToRecords(node)
//	// records is [][]string{{"name","age"}, {"Alice","30"}}
func NodeToRecords(node ast.SchemaNode) ([][]string, error) {
	if node == nil {
		return [][]string{}, nil
	}
	file, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}
	elements := file.Elements()
	if len(elements) == 0 {
		return [][]string{}, nil
	}
	if _, isField := elements[0].(*ast.LiteralNode); isField {
		fields, err := recordFields(file)
		if err != nil {
			return nil, err
		}
		return [][]string{fields}, nil
	}

	records := make([][]string, len(elements))
	for i, elem := range elements {
		rec, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("record %d: expected *ast.ArrayDataNode, got %T", i, elem)
		}
		fields, err := recordFields(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records[i] = fields
	}
	return records, nil
}

func recordFields(rec *ast.ArrayDataNode) ([]string, error) {
	fields := make([]string, rec.Len())
	for i, elem := range rec.Elements() {
		lit, ok := elem.(*ast.LiteralNode)
		if !ok {
			return nil, fmt.Errorf("field %d: expected *ast.LiteralNode, got %T", i, elem)
		}
		switch v := lit.Value().(type) {
		case string:
			fields[i] = v
		case nil:
		default:
			fields[i] = fmt.Sprint(v)
		}
	}
	return fields, nil
}

// RecordsToNode converts a slice of string records to an AST node of the
// shape Parse produces. Nodes carry zero positions.
//
// Example:
//
//	records := [][]string{
//	    {"name", "age"},
//	    {"Alice", "30"},
//	}
//	node, _ := csv.RecordsToNode(records)
func RecordsToNode(records [][]string) (ast.SchemaNode, error) {
	pos := ast.ZeroPosition()
	nodes := make([]ast.SchemaNode, len(records))
	for i, record := range records {
		fields := make([]ast.SchemaNode, len(record))
		for j, f := range record {
			fields[j] = ast.NewLiteralNode(f, pos)
		}
		nodes[i] = ast.NewArrayDataNode(fields, pos)
	}
	return ast.NewArrayDataNode(nodes, pos), nil
}
