package ptr_test

import (
	"testing"

	"github.com/claude/wodboard/internal/ptr"
)

// TestTo verifies that To returns an independent copy of its argument.
func TestTo(t *testing.T) {
	n := 42
	p := ptr.To(n)
	if p == nil || *p != 42 {
		t.Fatalf("To(42) = %v, want pointer to 42", p)
	}
	n = 7
	if *p != 42 {
		t.Errorf("pointer changed with original: got %d", *p)
	}
}

// TestValue verifies the nil-safe dereference.
func TestValue(t *testing.T) {
	if got := ptr.Value[int](nil); got != 0 {
		t.Errorf("Value(nil) = %d, want 0", got)
	}
	if got := ptr.Value(ptr.To(2.5)); got != 2.5 {
		t.Errorf("Value(&2.5) = %v, want 2.5", got)
	}
}
