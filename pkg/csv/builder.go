package csv

import (
	"unsafe"

	"github.com/shapestone/shape-core/pkg/ast"
)

// astBuilder assembles the event stream into an *ast.ArrayDataNode of
// records, each an *ast.ArrayDataNode of *ast.LiteralNode fields.
type astBuilder struct {
	records []ast.SchemaNode
	fields  []ast.SchemaNode
	recPos  ast.Position
	width   int
}

func (b *astBuilder) HandleEvent(ev *Event) error {
	switch ev.Kind {
	case EventRecordBegin:
		b.fields = make([]ast.SchemaNode, 0, b.width)
		b.recPos = astPosition(ev.Pos)
	case EventField:
		b.fields = append(b.fields, ast.NewLiteralNode(ev.Text(), astPosition(ev.Pos)))
	case EventRecordEnd:
		b.records = append(b.records, ast.NewArrayDataNode(b.fields, b.recPos))
		b.width = len(b.fields)
		b.fields = nil
	}
	return nil
}

func (b *astBuilder) node() *ast.ArrayDataNode {
	if b.records == nil {
		b.records = []ast.SchemaNode{}
	}
	return ast.NewArrayDataNode(b.records, ast.NewPosition(0, 1, 1))
}

func astPosition(p Position) ast.Position {
	return ast.NewPosition(int(p.Offset), p.Line, p.Column)
}

// recordCollector assembles the event stream into string records.
type recordCollector struct {
	records [][]string
	fields  []string
	width   int
}

func (c *recordCollector) HandleEvent(ev *Event) error {
	switch ev.Kind {
	case EventRecordBegin:
		c.fields = make([]string, 0, c.width)
	case EventField:
		c.fields = append(c.fields, ev.Text())
	case EventRecordEnd:
		c.records = append(c.records, c.fields)
		c.width = len(c.fields)
		c.fields = nil
	}
	return nil
}

// discard drops every event.
var discard = HandlerFunc(func(*Event) error { return nil })

// unsafeBytes views s as a byte slice without copying.
// The slice MUST NOT be modified; the tokenizer only reads its input.
func unsafeBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
