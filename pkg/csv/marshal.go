package csv

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
)

// Marshaler is the interface implemented by field types that can encode
// themselves as a single CSV field.
type Marshaler interface {
	MarshalCSV() ([]byte, error)
}

var marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()

// Marshal returns the CSV encoding of v.
//
// Marshal traverses the value v, which must be a slice of structs or of
// pointers to structs. Each struct becomes a row in the CSV, with struct
// fields becoming columns. Nil pointers are skipped.
//
// The encoding of each struct field can be customized by the format string
// stored under the "csv" key in the struct field's tag. The format string
// gives the name of the field, possibly followed by a comma-separated list
// of options. The name may be empty in order to specify options without
// overriding the default field name.
//
// The "omitempty" option writes an empty field when the value is empty,
// defined as false, 0, a nil pointer, a nil interface value, and any empty
// array, slice, map, or string. The column itself is always present.
//
// As a special case, if the field tag is "-", the field is always omitted.
//
//	// Field appears in CSV as "myName"
//	Field int `csv:"myName"`
//
//	// Field appears in CSV as "myName", zero values appear as ""
//	Field int `csv:"myName,omitempty"`
//
//	// Field is ignored by this package
//	Field int `csv:"-"`
//
// Anonymous struct fields are not supported.
//
// The header row is generated from the field names or tags, sorted
// alphabetically for deterministic output. An empty slice encodes as no output.
func Marshal(v interface{}) ([]byte, error) {
	return MarshalWithOptions(v, DefaultWriterOptions())
}

// MarshalWithOptions is Marshal with custom writer options.
func MarshalWithOptions(v interface{}, opts WriterOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := MarshalTo(&buf, v, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalTo writes the CSV encoding of v to w through a Writer.
func MarshalTo(w io.Writer, v interface{}, opts WriterOptions) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || v == nil {
		return fmt.Errorf("csv: Marshal(nil)")
	}
	if rv.Kind() != reflect.Slice {
		return fmt.Errorf("csv: Marshal expects slice, got %s", rv.Type())
	}

	elemType := rv.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("csv: Marshal expects slice of structs, got slice of %s", elemType)
	}
	if rv.Len() == 0 {
		return nil
	}

	fields := structFields(elemType)
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].name < fields[j].name
	})

	cw := NewWriter(w, opts)
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.name
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(fields))
	for rowIdx := 0; rowIdx < rv.Len(); rowIdx++ {
		row := rv.Index(rowIdx)
		if row.Kind() == reflect.Ptr {
			if row.IsNil() {
				continue
			}
			row = row.Elem()
		}
		for i, f := range fields {
			fv := row.Field(f.index)
			if f.omitEmpty && isEmptyValue(fv) {
				record[i] = ""
				continue
			}
			s, err := formatValue(fv)
			if err != nil {
				return fmt.Errorf("csv: error marshaling field %s: %w", f.name, err)
			}
			record[i] = s
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatValue renders a single field value.
func formatValue(rv reflect.Value) (string, error) {
	if !rv.IsValid() {
		return "", nil
	}
	if rv.Kind() != reflect.Ptr && rv.CanAddr() && reflect.PointerTo(rv.Type()).Implements(marshalerType) {
		rv = rv.Addr()
	}
	if rv.Type().Implements(marshalerType) {
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return "", nil
		}
		b, err := rv.Interface().(Marshaler).MarshalCSV()
		return string(b), err
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "", nil
		}
		return formatValue(rv.Elem())
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	default:
		return "", fmt.Errorf("unsupported type %s", rv.Type())
	}
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
