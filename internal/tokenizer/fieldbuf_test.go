package tokenizer

import (
	"bytes"
	"testing"
)

func TestFieldBuffer_BorrowedRun(t *testing.T) {
	src := []byte("hello,world")
	var b fieldBuffer
	b.beginBorrowed(src, 1, 0, false)
	if err := b.appendBorrowedRun(src, 1, 0, 3); err != nil {
		t.Fatal(err)
	}
	if err := b.appendBorrowedRun(src, 1, 3, 5); err != nil {
		t.Fatal(err)
	}
	if !b.borrowed() {
		t.Fatal("contiguous runs of one window should stay borrowed")
	}
	if v := b.view(); string(v) != "hello" || &v[0] != &src[0] {
		t.Errorf("view = %q, should alias the window", v)
	}
}

func TestFieldBuffer_PromoteOnNewWindow(t *testing.T) {
	first := []byte("abc")
	second := []byte("de")
	var b fieldBuffer
	b.beginBorrowed(first, 1, 0, false)
	if err := b.appendBorrowedRun(first, 1, 0, 3); err != nil {
		t.Fatal(err)
	}
	if err := b.appendBorrowedRun(second, 2, 0, 2); err != nil {
		t.Fatal(err)
	}
	if b.borrowed() {
		t.Fatal("a run from another window must promote the field")
	}
	copy(first, "xxx")
	if got := string(b.view()); got != "abcde" {
		t.Errorf("view = %q, want %q", got, "abcde")
	}
	if b.len() != 5 {
		t.Errorf("len = %d, want 5", b.len())
	}
}

func TestFieldBuffer_EmptyViewRebases(t *testing.T) {
	first := []byte("ab,")
	second := []byte("cd")
	var b fieldBuffer
	b.beginBorrowed(first, 1, 3, false)
	if err := b.appendBorrowedRun(second, 2, 0, 2); err != nil {
		t.Fatal(err)
	}
	if !b.borrowed() {
		t.Fatal("an empty view should rebase instead of promoting")
	}
	if v := b.view(); &v[0] != &second[0] {
		t.Error("view should alias the new window")
	}
}

func TestFieldBuffer_NonContiguousPromotes(t *testing.T) {
	src := []byte(`a""b`)
	var b fieldBuffer
	b.beginBorrowed(src, 1, 0, true)
	if err := b.appendBorrowedRun(src, 1, 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.appendOwned('"'); err != nil {
		t.Fatal(err)
	}
	if err := b.appendBorrowedRun(src, 1, 3, 4); err != nil {
		t.Fatal(err)
	}
	if got := string(b.view()); got != `a"b` {
		t.Errorf("view = %q", got)
	}
	if !b.quoted {
		t.Error("quoted flag lost")
	}
}

func TestFieldBuffer_Growth(t *testing.T) {
	b := fieldBuffer{mode: modeOwned, owned: make([]byte, 0, initialFieldCap)}

	tests := []struct {
		name    string
		total   int
		wantCap int
	}{
		{"fits initial", 64, 64},
		{"linear step", 65, 128},
		{"linear steps", 1000, 1024},
		{"doubling", 1025, 2048},
		{"doubling again", 4097, 8192},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.total - b.len()
			if err := b.appendOwned(bytes.Repeat([]byte{'x'}, n)...); err != nil {
				t.Fatal(err)
			}
			if b.len() != tt.total {
				t.Fatalf("len = %d, want %d", b.len(), tt.total)
			}
			if cap(b.owned) != tt.wantCap {
				t.Errorf("cap = %d, want %d", cap(b.owned), tt.wantCap)
			}
		})
	}
}

func TestFieldBuffer_ReserveOverflow(t *testing.T) {
	var b fieldBuffer
	if err := b.appendOwned('x'); err != nil {
		t.Fatal(err)
	}
	if err := b.reserve(maxOwnedCap); err != ErrOutOfMemory {
		t.Errorf("expected ErrOutOfMemory, got %v", err)
	}
}

func TestFieldBuffer_ClearKeepsCapacity(t *testing.T) {
	var b fieldBuffer
	if err := b.appendOwned(bytes.Repeat([]byte{'x'}, 300)...); err != nil {
		t.Fatal(err)
	}
	c := cap(b.owned)
	b.clear()
	if b.len() != 0 || !b.borrowed() {
		t.Fatal("clear should reset to an empty borrowed field")
	}
	if cap(b.owned) != c {
		t.Errorf("cap after clear = %d, want %d", cap(b.owned), c)
	}
	b.release()
	if b.owned != nil {
		t.Error("release should drop the owned buffer")
	}
}
