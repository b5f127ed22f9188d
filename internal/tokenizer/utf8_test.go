package tokenizer

import "testing"

func TestValidateUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input string
		index int
		want  UTF8Status
	}{
		{"empty", "", 0, UTF8Valid},
		{"ascii", "abc", 3, UTF8Valid},
		{"two byte", "caf\xc3\xa9", 5, UTF8Valid},
		{"four byte", "\xf0\x9f\x98\x80", 4, UTF8Valid},
		{"max code point", "\xf4\x8f\xbf\xbf", 4, UTF8Valid},
		{"truncated two byte", "\xc3", 0, UTF8Incomplete},
		{"truncated three byte", "a\xe2\x82", 1, UTF8Incomplete},
		{"stray continuation", "a\x80", 1, UTF8Invalid},
		{"overlong two byte", "\xc0\xaf", 0, UTF8Invalid},
		{"overlong three byte", "\xe0\x80\xaf", 1, UTF8Invalid},
		{"surrogate", "\xed\xa0\x80", 1, UTF8Invalid},
		{"above max", "\xf4\x90\x80\x80", 1, UTF8Invalid},
		{"invalid lead", "\xff", 0, UTF8Invalid},
		{"broken sequence", "\xe2\x82x", 2, UTF8Invalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, st := ValidateUTF8([]byte(tt.input))
			if i != tt.index || st != tt.want {
				t.Errorf("ValidateUTF8(%q) = %d, %s; want %d, %s", tt.input, i, st, tt.index, tt.want)
			}
		})
	}
}

func TestUTF8Validator_AcrossScans(t *testing.T) {
	input := []byte("\xf0\x9f\x98\x80x")
	for split := 0; split <= len(input); split++ {
		var v utf8Validator
		if i := v.scan(input[:split]); i >= 0 {
			t.Fatalf("split %d: first half invalid at %d", split, i)
		}
		if i := v.scan(input[split:]); i >= 0 {
			t.Fatalf("split %d: second half invalid at %d", split, i)
		}
		if v.pending() {
			t.Fatalf("split %d: sequence left open", split)
		}
	}
}

func TestUTF8Validator_LeadPosition(t *testing.T) {
	var v utf8Validator
	pos := Position{Offset: 10, Line: 2, Column: 4}
	if i := v.scanAt([]byte("ab\xe2"), pos); i >= 0 {
		t.Fatal(i)
	}
	next := pos
	next.advance(3)
	if i := v.scanAt([]byte("\x82"), next); i >= 0 {
		t.Fatal(i)
	}
	if !v.pending() {
		t.Fatal("expected an open sequence")
	}
	if v.lead.Offset != 12 || v.lead.Column != 6 {
		t.Errorf("lead = %+v, want offset 12 column 6", v.lead)
	}
}
