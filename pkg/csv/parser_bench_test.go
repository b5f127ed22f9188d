package csv_test

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"testing"

	shapecsv "github.com/shapestone/shape-csvstream/pkg/csv"
)

// Benchmark inputs are generated once and reused across all benchmarks.
var (
	mediumCSV = generateCSV(1000, false)
	largeCSV  = generateCSV(50000, false)
	quotedCSV = generateCSV(1000, true)
)

func generateCSV(rows int, quoted bool) string {
	var sb strings.Builder
	sb.WriteString("id,name,email,city,score\n")
	for i := 0; i < rows; i++ {
		if quoted {
			fmt.Fprintf(&sb, "%d,\"User, %d\",\"user%d@example.com\",\"Line one\nline \"\"two\"\"\",%d.5\n", i, i, i, i%100)
		} else {
			fmt.Fprintf(&sb, "%d,User %d,user%d@example.com,City %d,%d.5\n", i, i, i, i%50, i%100)
		}
	}
	return sb.String()
}

// ================================
// AST parsing
// ================================

func BenchmarkParse_Medium(b *testing.B) {
	b.SetBytes(int64(len(mediumCSV)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := shapecsv.Parse(mediumCSV); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_Large(b *testing.B) {
	b.SetBytes(int64(len(largeCSV)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := shapecsv.Parse(largeCSV); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseReader_Large(b *testing.B) {
	b.SetBytes(int64(len(largeCSV)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := shapecsv.ParseReader(strings.NewReader(largeCSV)); err != nil {
			b.Fatal(err)
		}
	}
}

// ================================
// Validation (no allocation of records)
// ================================

// BenchmarkValidate_InSitu parses the whole input as one buffer.
func BenchmarkValidate_InSitu(b *testing.B) {
	b.SetBytes(int64(len(largeCSV)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := shapecsv.Validate(largeCSV); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkValidate_Reader feeds the same input in chunks.
func BenchmarkValidate_Reader(b *testing.B) {
	for _, size := range []int{512, 4 << 10, shapecsv.DefaultBufferSize} {
		b.Run(fmt.Sprintf("buf=%d", size), func(b *testing.B) {
			opts := shapecsv.DefaultReaderOptions()
			opts.BufferSize = size
			b.SetBytes(int64(len(largeCSV)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := shapecsv.ValidateReaderWithOptions(strings.NewReader(largeCSV), opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkValidate_QuotedFields(b *testing.B) {
	b.SetBytes(int64(len(quotedCSV)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := shapecsv.Validate(quotedCSV); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidate_UTF8(b *testing.B) {
	opts := shapecsv.DefaultReaderOptions()
	opts.ValidateUTF8 = true
	b.SetBytes(int64(len(largeCSV)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := shapecsv.ValidateWithOptions(largeCSV, opts); err != nil {
			b.Fatal(err)
		}
	}
}

// ================================
// Streaming, compared with encoding/csv
// ================================

func BenchmarkScanner_Large(b *testing.B) {
	b.SetBytes(int64(len(largeCSV)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		scanner := shapecsv.NewScanner(strings.NewReader(largeCSV)).SetReuseRecord(true)
		for scanner.Scan() {
			_ = scanner.Record()
		}
		if err := scanner.Err(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEncodingCSV_Reader_Large benchmarks encoding/csv streaming.
func BenchmarkEncodingCSV_Reader_Large(b *testing.B) {
	b.SetBytes(int64(len(largeCSV)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r := csv.NewReader(strings.NewReader(largeCSV))
		r.ReuseRecord = true
		for {
			_, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkScanner_QuotedFields(b *testing.B) {
	b.SetBytes(int64(len(quotedCSV)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		scanner := shapecsv.NewScanner(strings.NewReader(quotedCSV))
		for scanner.Scan() {
		}
		if err := scanner.Err(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEncodingCSV_QuotedFields benchmarks encoding/csv with quoted fields.
func BenchmarkEncodingCSV_QuotedFields(b *testing.B) {
	b.SetBytes(int64(len(quotedCSV)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := csv.NewReader(strings.NewReader(quotedCSV)).ReadAll(); err != nil {
			b.Fatal(err)
		}
	}
}

// ================================
// Writing
// ================================

func BenchmarkDocumentCSV_Medium(b *testing.B) {
	doc, err := shapecsv.ParseDocument(mediumCSV)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := doc.CSV(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEncodingCSV_Write_Medium benchmarks encoding/csv writing.
func BenchmarkEncodingCSV_Write_Medium(b *testing.B) {
	records, err := csv.NewReader(strings.NewReader(mediumCSV)).ReadAll()
	if err != nil {
		b.Fatal(err)
	}
	var buf bytes.Buffer
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		if err := csv.NewWriter(&buf).WriteAll(records); err != nil {
			b.Fatal(err)
		}
	}
}
