package orionkmer

import (
	"bytes"
	"testing"
)

func buildTestDatabase() *Database {
	db := NewDatabase(5)
	a := NewKmerSet(4)
	a.Add(10)
	a.Add(20)
	a.Add(30)
	db.AddReference("genomeA.fa", a)

	b := NewKmerSet(2)
	b.Add(20)
	b.Add(40)
	db.AddReference("genomeB.fa", b)

	db.AddReference("empty.fa", NewKmerSet(0))
	return db
}

func TestDatabaseRoundTrip(t *testing.T) {
	db := buildTestDatabase()

	var buf bytes.Buffer
	if err := SaveDatabase(&buf, db); err != nil {
		t.Fatalf("SaveDatabase failed: %v", err)
	}

	got, err := LoadDatabase(&buf, "test.db")
	if err != nil {
		t.Fatalf("LoadDatabase failed: %v", err)
	}

	if got.K != db.K {
		t.Errorf("K = %d, want %d", got.K, db.K)
	}
	if got.NumReferences() != db.NumReferences() {
		t.Fatalf("NumReferences() = %d, want %d", got.NumReferences(), db.NumReferences())
	}
	for _, label := range db.ReferenceLabels() {
		want := db.Reference(label)
		gotRef := got.Reference(label)
		if gotRef == nil {
			t.Fatalf("reference %s missing after round-trip", label)
		}
		if gotRef.Len() != want.Len() {
			t.Errorf("reference %s: Len() = %d, want %d", label, gotRef.Len(), want.Len())
		}
		want.Each(func(code uint64) {
			if !gotRef.Contains(code) {
				t.Errorf("reference %s: missing member %d after round-trip", label, code)
			}
		})
	}
}

func TestLoadDatabaseRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBufferString("not a database at all, just garbage bytes.....")
	if _, err := LoadDatabase(buf, "bad.db"); err == nil {
		t.Error("LoadDatabase on garbage input should fail")
	}
}

func TestLoadDatabaseRejectsInvalidK(t *testing.T) {
	db := NewDatabase(0)
	var buf bytes.Buffer
	// Let SaveDatabase write a header claiming k=0 (NewDatabase doesn't
	// itself validate k; the validation is LoadDatabase's job per §4.5).
	if err := SaveDatabase(&buf, db); err != nil {
		t.Fatalf("SaveDatabase failed: %v", err)
	}
	if _, err := LoadDatabase(&buf, "zerok.db"); err == nil {
		t.Error("LoadDatabase should reject k=0 as invalid")
	}
}
