package csv

import (
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EncodingByName returns the text encoding for a name such as "utf-8",
// "utf-16le", "latin1" or "windows-1252". Names are case-insensitive; any
// WHATWG encoding label is accepted as well.
//
// The UTF-16 decoders honor a byte order mark and strip it.
//
// Example:
//
//	enc, err := csv.EncodingByName("windows-1252")
//	if err != nil {
//	    // handle error
//	}
//	opts := csv.DefaultReaderOptions()
//	opts.Encoding = enc
//	node, err := csv.ParseReaderWithOptions(file, opts)
func EncodingByName(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return unicode.UTF8, nil
	case "utf-8-sig", "utf8-sig":
		return unicode.UTF8BOM, nil
	case "utf-16le", "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "utf-16be", "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, &OptionsError{Field: "Encoding", Message: "unknown encoding " + name}
	}
	return enc, nil
}

// DetectEncoding guesses the encoding of sample, the first bytes of an input.
// A byte order mark wins, then a charset parameter in contentType, which may
// be empty. Otherwise a sample with valid multi-byte UTF-8 reports "utf-8" and
// anything else falls back to "windows-1252". certain reports whether the answer
// came from a byte order mark or the content type.
//
// Example:
//
//	head, _ := bufio.NewReader(file).Peek(1024)
//	enc, name, _ := csv.DetectEncoding(head, "text/csv")
//	opts := csv.DefaultReaderOptions()
//	opts.Encoding = enc
//	log.Printf("reading %s input", name)
func DetectEncoding(sample []byte, contentType string) (enc encoding.Encoding, name string, certain bool) {
	return charset.DetermineEncoding(sample, contentType)
}

// decodeReader wraps r so it yields UTF-8. A nil enc returns r unchanged.
func decodeReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// decodeBytes transcodes a complete buffer to UTF-8.
func decodeBytes(b []byte, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return b, nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), b)
	return out, err
}
