package csv_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/shapestone/shape-csvstream/pkg/csv"
)

type level int

func (l *level) UnmarshalCSV(b []byte) error {
	switch string(b) {
	case "low":
		*l = 1
	case "high":
		*l = 2
	default:
		return errors.New("unknown level")
	}
	return nil
}

func TestUnmarshal(t *testing.T) {
	type Person struct {
		Name  string `csv:"name"`
		Age   int    `csv:"age"`
		Email string
	}

	input := "NAME,age,email,extra\nAlice,30,a@example.com,x\n\"Smith, Bob\",,\"b@example.com\",y\nCy\n"

	var got []Person
	if err := csv.Unmarshal([]byte(input), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := []Person{
		{Name: "Alice", Age: 30, Email: "a@example.com"},
		{Name: "Smith, Bob", Email: "b@example.com"},
		{Name: "Cy"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestUnmarshalTypes(t *testing.T) {
	type TypeTest struct {
		String  string  `csv:"str"`
		Int8    int8    `csv:"int8"`
		Int64   int64   `csv:"int64"`
		Float32 float32 `csv:"float32"`
		Float64 float64 `csv:"float64"`
		Bool    bool    `csv:"bool"`
		Uint    uint    `csv:"uint"`
		Ptr     *int    `csv:"ptr"`
		Level   level   `csv:"level"`
	}

	input := "str,int8,int64,float32,float64,bool,uint,ptr,level\n" +
		"test,-128,9223372036854775807,3.5,2.718281828,T,100,7,high\n" +
		"another,0,-9223372036854775808,-1.5,0.0,false,0,,low\n"

	var got []*TypeTest
	if err := csv.Unmarshal([]byte(input), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Unmarshal() got %d records, want 2", len(got))
	}

	a := got[0]
	if a.String != "test" || a.Int8 != -128 || a.Int64 != 9223372036854775807 || a.Float32 != 3.5 ||
		a.Float64 != 2.718281828 || !a.Bool || a.Uint != 100 || a.Level != 2 {
		t.Errorf("got[0] = %+v", *a)
	}
	if a.Ptr == nil || *a.Ptr != 7 {
		t.Errorf("got[0].Ptr = %v, want 7", a.Ptr)
	}
	b := got[1]
	if b.Ptr != nil {
		t.Errorf("got[1].Ptr = %v, want nil", *b.Ptr)
	}
	if b.Bool || b.Level != 1 || b.Int64 != -9223372036854775808 {
		t.Errorf("got[1] = %+v", *b)
	}
}

func TestUnmarshalRecords(t *testing.T) {
	var got [][]string
	if err := csv.Unmarshal([]byte("a,b\n1,2\n"), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if want := [][]string{{"a", "b"}, {"1", "2"}}; !equalRecords(got, want) {
		t.Errorf("records = %q, want %q", got, want)
	}

	got = nil
	if err := csv.Unmarshal(nil, &got); err != nil {
		t.Fatalf("Unmarshal(nil) error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Unmarshal(nil) = %#v, want empty non-nil", got)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	type Person struct {
		Name string
		Age  int
	}

	tests := []struct {
		name   string
		input  string
		target interface{}
	}{
		{"nil target", "Name,Age\nAlice,30\n", nil},
		{"non-pointer target", "Name,Age\nAlice,30\n", []Person{}},
		{"nil pointer", "Name,Age\nAlice,30\n", (*[]Person)(nil)},
		{"pointer to non-slice", "Name,Age\nAlice,30\n", new(Person)},
		{"slice of ints", "1\n", new([]int)},
		{"parse error", "Name,Age\n\"Alice,30\n", new([]Person)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := csv.Unmarshal([]byte(tt.input), tt.target); err == nil {
				t.Error("Unmarshal() expected error")
			}
		})
	}
}

func TestUnmarshalDecodeError(t *testing.T) {
	type Person struct {
		Name string `csv:"name"`
		Age  uint8  `csv:"age"`
	}

	tests := []struct {
		name  string
		input string
		line  int
		col   int
	}{
		{"not a number", "name,age\nAlice,30\nBob,old\n", 3, 5},
		{"overflow", "name,age\nAlice,300\n", 2, 7},
		{"negative unsigned", "name,age\n\"Al\"\"i\",-1\n", 2, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			people := []Person{{Name: "keep"}}
			err := csv.Unmarshal([]byte(tt.input), &people)
			var derr *csv.DecodeError
			if !errors.As(err, &derr) {
				t.Fatalf("expected *DecodeError, got %T (%v)", err, err)
			}
			if derr.Pos.Line != tt.line || derr.Pos.Column != tt.col {
				t.Errorf("error at %v, want line %d, column %d", derr.Pos, tt.line, tt.col)
			}
			if derr.Column != "age" || derr.Field != "Age" {
				t.Errorf("Column, Field = %q, %q", derr.Column, derr.Field)
			}
			if csv.Code(err) != csv.ErrCodeIO {
				t.Errorf("Code() = %q, want IO_ERROR", csv.Code(err))
			}
			if len(people) != 1 || people[0].Name != "keep" {
				t.Errorf("target modified on error: %+v", people)
			}
		})
	}
}

func TestUnmarshalReader(t *testing.T) {
	type Row struct {
		ID   int    `csv:"id"`
		Text string `csv:"text"`
	}

	var sb strings.Builder
	sb.WriteString("id;text\n")
	for i := 0; i < 50; i++ {
		sb.WriteString("1;\"a;b\"\n")
	}

	opts := csv.DefaultReaderOptions()
	opts.Dialect.Delimiter = ';'
	opts.BufferSize = 3

	var rows []Row
	if err := csv.UnmarshalReader(iotest.HalfReader(strings.NewReader(sb.String())), &rows, opts); err != nil {
		t.Fatalf("UnmarshalReader() error = %v", err)
	}
	if len(rows) != 50 {
		t.Fatalf("got %d rows, want 50", len(rows))
	}
	for i, r := range rows {
		if r.ID != 1 || r.Text != "a;b" {
			t.Fatalf("row %d = %+v", i, r)
		}
	}
}
