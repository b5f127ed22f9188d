package csv

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Unmarshaler is the interface implemented by field types that can decode
// themselves from a single CSV field.
//
// The slice is the tokenizer's field buffer and is reused after
// UnmarshalCSV returns. Implementations must copy the data to retain it.
type Unmarshaler interface {
	UnmarshalCSV([]byte) error
}

var unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()

// DecodeError reports a field value that could not be stored in its struct field.
type DecodeError struct {
	// Row is the 0-based record index, header row included.
	Row int64
	// Column is the header name of the field.
	Column string
	// Field is the name of the struct field.
	Field string
	// Value is the field text.
	Value string
	// Pos is the position of the field in the input.
	Pos Position
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("csv: line %d, column %d: cannot decode %q (%s) into field %s: %v",
		e.Pos.Line, e.Pos.Column, e.Value, e.Column, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Unmarshal parses the CSV-encoded data and stores the result in the value pointed to by v.
//
// Records are decoded straight from the event stream; no intermediate
// [][]string is built for struct targets.
//
// Unmarshal supports two target types:
//
// 1. [][]string - Returns raw CSV records:
//
//	var records [][]string
//	err := csv.Unmarshal(data, &records)
//	// records[0] is the header row, records[1:] are data rows
//
// 2. []struct or []*struct - Maps CSV to struct fields using the first record as headers:
//
//	type Person struct {
//	    Name string `csv:"name"`
//	    Age  int    `csv:"age"`
//	}
//	var people []Person
//	err := csv.Unmarshal(data, &people)
//
// Headers are matched to the csv tag name, or to the field name when there is
// no tag, ignoring case. Columns without a field are ignored; fields without a
// column keep their zero value.
//
// Supported field types:
//   - string
//   - int, int8, int16, int32, int64
//   - uint, uint8, uint16, uint32, uint64
//   - float32, float64
//   - bool (accepts: true/false, 1/0, t/f, T/F, TRUE/FALSE)
//   - types implementing Unmarshaler
//   - pointers to any of the above (nil for empty values)
//
// A value that cannot be decoded stops the parse with a *DecodeError, which
// errors.As finds inside the returned *ParseError.
func Unmarshal(data []byte, v interface{}) error {
	return UnmarshalWithOptions(data, v, DefaultReaderOptions())
}

// UnmarshalWithOptions is Unmarshal with custom reader options.
func UnmarshalWithOptions(data []byte, v interface{}, opts ReaderOptions) error {
	h, commit, err := newUnmarshalHandler(v)
	if err != nil {
		return err
	}
	// the copy keeps in-situ strings valid after the caller reuses data
	if err := parseString(string(data), opts, h); err != nil {
		return err
	}
	commit()
	return nil
}

// UnmarshalReader decodes records from r into v as Unmarshal does, reading
// the input in chunks.
//
// Example:
//
//	file, _ := os.Open("people.csv")
//	defer file.Close()
//	var people []Person
//	err := csv.UnmarshalReader(file, &people, csv.DefaultReaderOptions())
func UnmarshalReader(r io.Reader, v interface{}, opts ReaderOptions) error {
	h, commit, err := newUnmarshalHandler(v)
	if err != nil {
		return err
	}
	f, err := newFeeder(r, opts, h)
	if err != nil {
		return err
	}
	if err := f.run(); err != nil {
		return err
	}
	commit()
	return nil
}

// newUnmarshalHandler checks the target and returns the handler that decodes
// into it, plus a commit func that stores the result once the parse succeeded.
func newUnmarshalHandler(v interface{}) (Handler, func(), error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || v == nil {
		return nil, nil, errors.New("csv: Unmarshal(nil)")
	}
	if rv.Kind() != reflect.Ptr {
		return nil, nil, errors.New("csv: Unmarshal(non-pointer " + rv.Type().String() + ")")
	}
	if rv.IsNil() {
		return nil, nil, errors.New("csv: Unmarshal(nil " + rv.Type().String() + ")")
	}
	target := rv.Elem()
	if target.Kind() != reflect.Slice {
		return nil, nil, errors.New("csv: Unmarshal expects pointer to slice, got " + target.Type().String())
	}

	elemType := target.Type().Elem()
	if elemType.Kind() == reflect.Slice && elemType.Elem().Kind() == reflect.String {
		c := &recordCollector{}
		return c, func() {
			if c.records == nil {
				c.records = [][]string{}
			}
			target.Set(reflect.ValueOf(c.records).Convert(target.Type()))
		}, nil
	}

	d := &structDecoder{elemType: elemType}
	if elemType.Kind() == reflect.Ptr {
		d.ptr = true
		d.elemType = elemType.Elem()
	}
	if d.elemType.Kind() != reflect.Struct {
		return nil, nil, errors.New("csv: Unmarshal expects [][]string or slice of structs, got slice of " + elemType.String())
	}
	d.out = reflect.MakeSlice(target.Type(), 0, 0)
	return d, func() { target.Set(d.out) }, nil
}

// structDecoder is a Handler that binds the first record as headers and
// decodes every later record into a new struct value.
type structDecoder struct {
	elemType reflect.Type
	ptr      bool
	out      reflect.Value

	headers []string
	binding *structBinding
	cur     reflect.Value
}

func (d *structDecoder) HandleEvent(ev *Event) error {
	switch ev.Kind {
	case EventRecordBegin:
		if d.binding != nil {
			d.cur = reflect.New(d.elemType)
		}
	case EventField:
		if d.binding == nil {
			d.headers = append(d.headers, ev.Text())
			return nil
		}
		col := d.binding.column(ev.Field)
		if col == nil {
			return nil
		}
		if err := col.set(d.cur.Elem().Field(col.index), ev); err != nil {
			return &DecodeError{
				Row:    ev.Row,
				Column: d.headers[ev.Field],
				Field:  d.elemType.Field(col.index).Name,
				Value:  string(ev.Value),
				Pos:    ev.Pos,
				Err:    err,
			}
		}
	case EventRecordEnd:
		if d.binding == nil {
			d.binding = bindingFor(d.elemType, d.headers)
			return nil
		}
		if d.ptr {
			d.out = reflect.Append(d.out, d.cur)
		} else {
			d.out = reflect.Append(d.out, d.cur.Elem())
		}
		d.cur = reflect.Value{}
	}
	return nil
}

// fieldSetter stores the field of ev in dst.
type fieldSetter func(dst reflect.Value, ev *Event) error

type boundColumn struct {
	index int
	set   fieldSetter
}

// structBinding maps column indexes to struct fields for one header layout.
type structBinding struct {
	columns []*boundColumn
}

func (b *structBinding) column(i int) *boundColumn {
	if i < 0 || i >= len(b.columns) {
		return nil
	}
	return b.columns[i]
}

type bindingKey struct {
	typ     reflect.Type
	headers string
}

var bindingCache sync.Map // map[bindingKey]*structBinding

// bindingFor returns the cached binding of typ to headers.
func bindingFor(typ reflect.Type, headers []string) *structBinding {
	key := bindingKey{typ: typ, headers: strings.Join(headers, "\x00")}
	if b, ok := bindingCache.Load(key); ok {
		return b.(*structBinding)
	}
	b := computeBinding(typ, headers)
	bindingCache.Store(key, b)
	return b
}

func computeBinding(typ reflect.Type, headers []string) *structBinding {
	byName := make(map[string]int)
	for _, f := range structFields(typ) {
		byName[strings.ToLower(f.name)] = f.index
	}
	b := &structBinding{columns: make([]*boundColumn, len(headers))}
	for i, h := range headers {
		idx, ok := byName[strings.ToLower(h)]
		if !ok {
			continue
		}
		b.columns[i] = &boundColumn{index: idx, set: setterFor(typ.Field(idx).Type)}
	}
	return b
}

// fieldInfo is the csv tag view of one exported struct field.
type fieldInfo struct {
	name      string
	index     int
	omitEmpty bool
}

// structFields lists the exported fields of typ that are not tagged "-".
func structFields(typ reflect.Type) []fieldInfo {
	var fields []fieldInfo
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" || field.Anonymous {
			continue
		}
		info := fieldInfo{name: field.Name, index: i}
		tag := field.Tag.Get("csv")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name != "" {
			info.name = name
		}
		info.omitEmpty = opts == "omitempty"
		fields = append(fields, info)
	}
	return fields
}

// setterFor returns the setter for a field of type t.
func setterFor(t reflect.Type) fieldSetter {
	if reflect.PointerTo(t).Implements(unmarshalerType) {
		return func(dst reflect.Value, ev *Event) error {
			return dst.Addr().Interface().(Unmarshaler).UnmarshalCSV(ev.Value)
		}
	}

	switch t.Kind() {
	case reflect.Ptr:
		elem := setterFor(t.Elem())
		return func(dst reflect.Value, ev *Event) error {
			if len(ev.Value) == 0 {
				dst.Set(reflect.Zero(t))
				return nil
			}
			p := reflect.New(t.Elem())
			if err := elem(p.Elem(), ev); err != nil {
				return err
			}
			dst.Set(p)
			return nil
		}

	case reflect.String:
		return func(dst reflect.Value, ev *Event) error {
			dst.SetString(ev.Text())
			return nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(dst reflect.Value, ev *Event) error {
			if len(ev.Value) == 0 {
				dst.SetInt(0)
				return nil
			}
			i, err := strconv.ParseInt(string(ev.Value), 10, 64)
			if err != nil {
				return err
			}
			if dst.OverflowInt(i) {
				return fmt.Errorf("value %d overflows %s", i, dst.Type())
			}
			dst.SetInt(i)
			return nil
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(dst reflect.Value, ev *Event) error {
			if len(ev.Value) == 0 {
				dst.SetUint(0)
				return nil
			}
			u, err := strconv.ParseUint(string(ev.Value), 10, 64)
			if err != nil {
				return err
			}
			if dst.OverflowUint(u) {
				return fmt.Errorf("value %d overflows %s", u, dst.Type())
			}
			dst.SetUint(u)
			return nil
		}

	case reflect.Float32, reflect.Float64:
		return func(dst reflect.Value, ev *Event) error {
			if len(ev.Value) == 0 {
				dst.SetFloat(0)
				return nil
			}
			f, err := strconv.ParseFloat(string(ev.Value), dst.Type().Bits())
			if err != nil {
				return err
			}
			dst.SetFloat(f)
			return nil
		}

	case reflect.Bool:
		return func(dst reflect.Value, ev *Event) error {
			if len(ev.Value) == 0 {
				dst.SetBool(false)
				return nil
			}
			b, err := parseBool(string(ev.Value))
			if err != nil {
				return err
			}
			dst.SetBool(b)
			return nil
		}

	default:
		return func(dst reflect.Value, ev *Event) error {
			return fmt.Errorf("unsupported field type %s", dst.Type())
		}
	}
}

// parseBool parses a boolean value from a string.
// Accepts: true/false, 1/0, t/f, T/F, TRUE/FALSE (case-insensitive).
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "t":
		return true, nil
	case "false", "0", "f":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %q", s)
	}
}
