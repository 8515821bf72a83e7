package importstate

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLedgerRoundTrip verifies that a marked file is reported as imported
// only for the same content hash.
func TestLedgerRoundTrip(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer l.Close()

	ok, err := l.IsImported("scores.csv", "abc")
	if err != nil || ok {
		t.Fatalf("IsImported before mark = %v, %v; want false", ok, err)
	}

	if err := l.MarkImported("scores.csv", "abc", 12); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}
	if ok, _ := l.IsImported("scores.csv", "abc"); !ok {
		t.Error("IsImported after mark = false, want true")
	}
	if ok, _ := l.IsImported("scores.csv", "def"); ok {
		t.Error("changed content reported as imported")
	}

	entries, err := l.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Rows != 12 {
		t.Errorf("entries = %+v, want one with 12 rows", entries)
	}
}

// TestHashFile verifies that identical content hashes identically.
func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte("date,title\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	ha, err := HashFile(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, _ := HashFile(b)
	if ha != hb || len(ha) != 64 {
		t.Errorf("hashes %q and %q, want equal 64-char digests", ha, hb)
	}
}
