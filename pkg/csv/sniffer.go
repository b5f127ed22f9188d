package csv

import (
	"regexp"
	"strings"
	"unicode"
)

// sniffDelimiters are the candidate delimiters, in order of preference on a tie.
var sniffDelimiters = []byte{',', '\t', ';', '|'}

var (
	headerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`),       // snake_case or identifier
		regexp.MustCompile(`^[a-zA-Z]+[A-Z][a-zA-Z]*$`),      // camelCase
		regexp.MustCompile(`^[A-Z][a-z]+([ ][A-Z][a-z]+)*$`), // Title Case
	}
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	}
)

// Sniffer detects the CSV dialect of a sample: delimiter, line terminator
// and whether the first row is a header.
//
// Candidate delimiters are tokenized with the real tokenizer, so quoted
// fields containing delimiters or newlines are handled correctly.
//
// Example:
//
//	s := csv.NewSniffer(sample)
//	opts := csv.DefaultReaderOptions()
//	opts.Dialect = s.Dialect()
//	node, err := csv.ParseReaderWithOptions(file, opts)
type Sniffer struct {
	sample    string
	delimiter byte
	newline   Newline
	records   [][]string
	hasHeader bool
	analyzed  bool
}

// NewSniffer creates a new Sniffer with a sample of CSV data.
// For best results, provide at least 2-3 lines of data. A sample cut in the
// middle of a record is fine; the short last record does not count against
// width consistency.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{sample: sample}
}

// analyze performs dialect detection on the sample.
func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	s.newline = detectNewline(s.sample)
	s.delimiter, s.records = s.detectDelimiter()
	s.hasHeader = detectHeader(s.records)
	s.analyzed = true
}

// DetectDelimiter returns the detected field delimiter.
// Common delimiters checked: comma, tab, semicolon, pipe.
func (s *Sniffer) DetectDelimiter() byte {
	s.analyze()
	return s.delimiter
}

// DetectNewline returns the line terminator used by the sample.
// Defaults to NewlineLF when the sample has no line break outside quotes.
func (s *Sniffer) DetectNewline() Newline {
	s.analyze()
	return s.newline
}

// HasHeader returns true if the first row appears to be a header.
func (s *Sniffer) HasHeader() bool {
	s.analyze()
	return s.hasHeader
}

// Dialect returns the default dialect with the detected delimiter, line
// terminator and header flag.
func (s *Sniffer) Dialect() Dialect {
	s.analyze()
	d := DefaultDialect()
	d.Delimiter = s.delimiter
	d.Newlines = s.sniffNewlines()
	d.HeaderRow = s.hasHeader
	return d
}

func (s *Sniffer) sniffNewlines() Newline {
	if s.newline == NewlineCR {
		return NewlineCR
	}
	return NewlineCRLF | NewlineLF
}

// detectDelimiter scores each candidate by the field count of the first
// record, with a bonus when every record has the same width.
func (s *Sniffer) detectDelimiter() (byte, [][]string) {
	best := byte(',')
	var bestRecords [][]string
	bestScore := 0
	for _, delim := range sniffDelimiters {
		records := s.tokenize(delim)
		if bestRecords == nil {
			bestRecords = records
		}
		if len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		// a sample cut mid-record leaves a short last record
		complete := records
		if len(complete) > 1 && !strings.HasSuffix(s.sample, "\n") && !strings.HasSuffix(s.sample, "\r") {
			complete = complete[:len(complete)-1]
		}
		score := len(records[0]) - 1
		consistent := true
		for _, rec := range complete[1:] {
			if len(rec) != len(records[0]) {
				consistent = false
				break
			}
		}
		if consistent {
			score *= 10
		}
		if score > bestScore {
			best, bestRecords, bestScore = delim, records, score
		}
	}
	return best, bestRecords
}

// tokenize parses the sample with delim. A truncated sample may fail; the
// records completed before the failure are returned.
func (s *Sniffer) tokenize(delim byte) [][]string {
	d := DefaultDialect()
	d.Delimiter = delim
	d.Newlines = s.sniffNewlines()
	d.AllowUnquotedQuotes = true
	d.SkipEmptyLines = true

	opts := DefaultReaderOptions()
	opts.Dialect = d
	opts.SnippetRadius = -1

	c := &recordCollector{}
	_ = parseString(s.sample, opts, c)
	return c.records
}

// detectNewline returns the first line terminator found outside quotes.
func detectNewline(sample string) Newline {
	inQuotes := false
	for i := 0; i < len(sample); i++ {
		switch sample[i] {
		case '"':
			inQuotes = !inQuotes
		case '\n':
			if !inQuotes {
				return NewlineLF
			}
		case '\r':
			if inQuotes {
				continue
			}
			if i+1 < len(sample) && sample[i+1] == '\n' {
				return NewlineCRLF
			}
			if i+1 < len(sample) {
				return NewlineCR
			}
		}
	}
	return NewlineLF
}

// detectHeader uses heuristics to determine if first row is a header.
func detectHeader(records [][]string) bool {
	if len(records) < 2 {
		return false // Need at least 2 rows to compare
	}

	// Heuristics:
	// 1. Headers are typically non-numeric
	// 2. Headers often contain underscores or are camelCase
	// 3. Headers don't usually contain special characters like @ or #
	headerScore := 0
	dataScore := 0
	for _, field := range records[0] {
		field = strings.TrimSpace(field)
		if isLikelyHeader(field) {
			headerScore++
		}
		if isLikelyData(field) {
			dataScore++
		}
	}

	return headerScore > dataScore
}

// isLikelyHeader checks if a field looks like a header name.
func isLikelyHeader(s string) bool {
	if s == "" || isNumeric(s) {
		return false
	}
	for _, pattern := range headerPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// isLikelyData checks if a field looks like data rather than a header.
func isLikelyData(s string) bool {
	if s == "" {
		return false
	}
	if isNumeric(s) || strings.Contains(s, "@") {
		return true
	}
	for _, pattern := range datePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// isNumeric checks if a string represents a number.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	// Allow leading minus for negative numbers
	if s[0] == '-' {
		s = s[1:]
	}

	hasDot := false
	for _, ch := range s {
		if ch == '.' {
			if hasDot {
				return false
			}
			hasDot = true
		} else if !unicode.IsDigit(ch) {
			return false
		}
	}

	return len(s) > 0
}

// HeaderConverter is a function that transforms header names.
// See Scanner.SetHeaderConverter.
type HeaderConverter func(string) string

// LowercaseHeader converts headers to lowercase.
func LowercaseHeader(s string) string {
	return strings.ToLower(s)
}

// UppercaseHeader converts headers to uppercase.
func UppercaseHeader(s string) string {
	return strings.ToUpper(s)
}

// SnakeCaseHeader converts headers to snake_case.
func SnakeCaseHeader(s string) string {
	var result strings.Builder
	prevWasSpace := false
	for i, ch := range s {
		if ch == ' ' {
			if result.Len() > 0 && !prevWasSpace {
				result.WriteRune('_')
			}
			prevWasSpace = true
			continue
		}
		if unicode.IsUpper(ch) && i > 0 && !prevWasSpace {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(ch))
		prevWasSpace = false
	}
	return result.String()
}
