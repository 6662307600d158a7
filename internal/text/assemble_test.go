package text

import (
	"math/rand"
	"strings"
	"testing"
)

func newTestAssembler() *Assembler {
	return NewAssembler(rand.New(rand.NewSource(42)))
}

func TestAssembleExactCount(t *testing.T) {
	a := newTestAssembler()
	out, err := a.Assemble([]string{"a", "b"}, 5, false)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	words := strings.Split(out, " ")
	if len(words) != 5 {
		t.Fatalf("expected 5 words, got %d (%q)", len(words), out)
	}
	for _, w := range words {
		if w != "a" && w != "b" {
			t.Fatalf("unexpected word %q", w)
		}
	}
}

func TestAssembleTrailingSpace(t *testing.T) {
	a := newTestAssembler()
	out, err := a.Assemble([]string{"go"}, 3, true)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !strings.HasSuffix(out, " ") {
		t.Fatalf("expected trailing space, got %q", out)
	}
	if strings.HasSuffix(out, "  ") {
		t.Fatalf("expected a single trailing space, got %q", out)
	}
	if got := len(strings.Fields(out)); got != 3 {
		t.Fatalf("expected 3 words, got %d", got)
	}
}

func TestAssembleEmptyPool(t *testing.T) {
	a := newTestAssembler()
	if _, err := a.Assemble(nil, 5, false); err != ErrEmptyPool {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
}

func TestAssembleCountLargerThanPool(t *testing.T) {
	a := newTestAssembler()
	out, err := a.Assemble([]string{"x", "y", "z"}, 10, false)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if got := len(strings.Split(out, " ")); got != 10 {
		t.Fatalf("expected 10 words, got %d", got)
	}
}

func TestAssembleUsesWholePool(t *testing.T) {
	// With a count well past the pool size every word must appear.
	a := newTestAssembler()
	pool := []string{"one", "two", "three"}
	out, err := a.Assemble(pool, 30, false)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	for _, w := range pool {
		if !strings.Contains(out, w) {
			t.Fatalf("word %q missing from assembled text", w)
		}
	}
}
