package orionkmer

import "testing"

func TestDatabaseUnionConsistency(t *testing.T) {
	db := NewDatabase(4)

	r1 := NewKmerSet(4)
	r1.Add(1)
	r1.Add(2)
	db.AddReference("a.fa", r1)

	r2 := NewKmerSet(4)
	r2.Add(2)
	r2.Add(3)
	db.AddReference("b.fa", r2)

	sumOfSizes := r1.Len() + r2.Len()
	union := db.TotalUniqueKmers()
	if union != 3 {
		t.Fatalf("TotalUniqueKmers() = %d, want 3", union)
	}
	if union >= sumOfSizes {
		t.Errorf("union (%d) should be < sum of reference sizes (%d) when they overlap", union, sumOfSizes)
	}
}

// S4 in spec.md §8: build labeling and empty reference sets.
func TestDatabaseEmptyReferencePreserved(t *testing.T) {
	db := NewDatabase(4)
	db.AddReference("empty.fa", NewKmerSet(0))

	if db.NumReferences() != 1 {
		t.Fatalf("NumReferences() = %d, want 1", db.NumReferences())
	}
	ref := db.Reference("empty.fa")
	if ref == nil || ref.Len() != 0 {
		t.Fatalf("empty.fa reference should exist with zero members")
	}
}

func TestDatabaseAddReferenceReplacesOnDuplicateLabel(t *testing.T) {
	db := NewDatabase(4)
	first := NewKmerSet(1)
	first.Add(1)
	db.AddReference("x.fa", first)

	second := NewKmerSet(1)
	second.Add(99)
	db.AddReference("x.fa", second)

	if db.NumReferences() != 1 {
		t.Fatalf("NumReferences() = %d, want 1 (replace, not append)", db.NumReferences())
	}
	if db.Reference("x.fa").Contains(1) {
		t.Error("replaced reference should not retain the old set's members")
	}
	if !db.Reference("x.fa").Contains(99) {
		t.Error("replaced reference should contain the new set's members")
	}
}

func TestDatabaseReferenceLabelsPreservesInsertionOrder(t *testing.T) {
	db := NewDatabase(4)
	db.AddReference("b.fa", NewKmerSet(0))
	db.AddReference("a.fa", NewKmerSet(0))
	db.AddReference("c.fa", NewKmerSet(0))

	got := db.ReferenceLabels()
	want := []string{"b.fa", "a.fa", "c.fa"}
	if len(got) != len(want) {
		t.Fatalf("ReferenceLabels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ReferenceLabels()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
