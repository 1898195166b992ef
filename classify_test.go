package orionkmer

import "testing"

// S6 in spec.md §8.
func TestClassifyDepthScenario(t *testing.T) {
	dir := t.TempDir()
	input := writeTempFasta(t, dir, "input.fa", map[string]string{
		"S1": "ACGTACGT",
		"S2": "ACGTGGGG",
	})

	acgt := Canonical(mustEncode(t, "ACGT"), 4)
	cgta := Canonical(mustEncode(t, "CGTA"), 4)
	gtac := Canonical(mustEncode(t, "GTAC"), 4)

	db := NewDatabase(4)
	refSet := NewKmerSet(3)
	refSet.Add(acgt)
	refSet.Add(cgta)
	refSet.Add(gtac)
	db.AddReference("ref1", refSet)

	dbPath := dir + "/db.orikdb"
	if err := WriteDatabase(db, dbPath); err != nil {
		t.Fatalf("WriteDatabase failed: %v", err)
	}

	result, err := RunClassify(ClassifyOptions{
		InputFile:        input,
		DatabasePaths:    []string{dbPath},
		MinKmerFrequency: 2,
		MinCoverage:      0,
		Threads:          1,
	})
	if err != nil {
		t.Fatalf("RunClassify failed: %v", err)
	}

	if result.TotalUniqueKmersInInput != 2 {
		t.Fatalf("TotalUniqueKmersInInput = %d, want 2 (ACGT and canonical-CGTA)", result.TotalUniqueKmersInInput)
	}

	if len(result.DatabasesAnalyzed) != 1 {
		t.Fatalf("expected 1 database analyzed, got %d", len(result.DatabasesAnalyzed))
	}
	da := result.DatabasesAnalyzed[0]
	if len(da.References) != 1 {
		t.Fatalf("expected 1 reference row, got %d", len(da.References))
	}
	ref := da.References[0]

	if ref.InputKmersHittingReference != 2 {
		t.Errorf("InputKmersHittingReference = %d, want 2", ref.InputKmersHittingReference)
	}
	if ref.SumDepthOfMatchedKmersInInput != 5 {
		t.Errorf("SumDepthOfMatchedKmersInInput = %d, want 5", ref.SumDepthOfMatchedKmersInInput)
	}
	if got := formatFloat4(ref.AvgDepthOfMatchedKmersInInput); got != "2.5000" {
		t.Errorf("AvgDepthOfMatchedKmersInInput formatted = %s, want 2.5000", got)
	}
	if got := formatFloat4(ref.ReferenceBreadthOfCoverage); got != "0.6667" {
		t.Errorf("ReferenceBreadthOfCoverage formatted = %s, want 0.6667", got)
	}
}

// §8 property 7: classify monotonicity in min_kmer_frequency.
func TestClassifyMinFrequencyMonotone(t *testing.T) {
	dir := t.TempDir()
	input := writeTempFasta(t, dir, "input.fa", map[string]string{
		"S1": "ACGTACGTACGTGGGGTTTT",
	})
	db := NewDatabase(4)
	db.AddReference("ref1", NewKmerSet(0))
	dbPath := dir + "/db.orikdb"
	if err := WriteDatabase(db, dbPath); err != nil {
		t.Fatal(err)
	}

	prev := -1
	for _, minFreq := range []int{1, 2, 3, 10} {
		result, err := RunClassify(ClassifyOptions{
			InputFile:        input,
			DatabasePaths:    []string{dbPath},
			MinKmerFrequency: minFreq,
			Threads:          1,
		})
		if err != nil {
			t.Fatal(err)
		}
		if prev >= 0 && result.TotalUniqueKmersInInput > prev {
			t.Errorf("min_kmer_frequency=%d: total %d should be <= previous tier's %d", minFreq, result.TotalUniqueKmersInInput, prev)
		}
		prev = result.TotalUniqueKmersInInput
	}
}

// §8 property 7: classify monotonicity in min_coverage.
func TestClassifyMinCoverageMonotone(t *testing.T) {
	dir := t.TempDir()
	input := writeTempFasta(t, dir, "input.fa", map[string]string{"S1": "ACGTACGTACGT"})

	db := NewDatabase(3)
	full := NewKmerSet(2)
	full.Add(Canonical(mustEncode(t, "ACG"), 3))
	full.Add(Canonical(mustEncode(t, "GTA"), 3))
	db.AddReference("highCoverage", full)

	sparse := NewKmerSet(10)
	sparse.Add(Canonical(mustEncode(t, "ACG"), 3))
	for i := uint64(100); i < 108; i++ {
		sparse.Add(i)
	}
	db.AddReference("lowCoverage", sparse)

	dbPath := dir + "/db.orikdb"
	if err := WriteDatabase(db, dbPath); err != nil {
		t.Fatal(err)
	}

	prev := -1
	for _, cov := range []float64{0.0, 0.3, 0.6, 0.9} {
		result, err := RunClassify(ClassifyOptions{
			InputFile:        input,
			DatabasePaths:    []string{dbPath},
			MinKmerFrequency: 1,
			MinCoverage:      cov,
			Threads:          1,
		})
		if err != nil {
			t.Fatal(err)
		}
		n := len(result.DatabasesAnalyzed[0].References)
		if prev >= 0 && n > prev {
			t.Errorf("min_coverage=%v: %d references retained, should be <= previous tier's %d", cov, n, prev)
		}
		prev = n
	}
}

func TestClassifyUserKValidation(t *testing.T) {
	dir := t.TempDir()
	input := writeTempFasta(t, dir, "input.fa", map[string]string{"S1": "ACGTACGT"})
	db := NewDatabase(4)
	db.AddReference("r", NewKmerSet(0))
	dbPath := dir + "/db.orikdb"
	if err := WriteDatabase(db, dbPath); err != nil {
		t.Fatal(err)
	}

	userK := 5
	_, err := RunClassify(ClassifyOptions{
		InputFile:        input,
		DatabasePaths:    []string{dbPath},
		UserK:            &userK,
		MinKmerFrequency: 1,
	})
	if err == nil {
		t.Fatal("expected UserKValidationError when user k disagrees with database k")
	}
	if _, ok := err.(*UserKValidationError); !ok {
		t.Errorf("error type = %T, want *UserKValidationError", err)
	}
}

func TestClassifyInterDatabaseKValidation(t *testing.T) {
	dir := t.TempDir()
	input := writeTempFasta(t, dir, "input.fa", map[string]string{"S1": "ACGTACGT"})

	db4 := NewDatabase(4)
	db4.AddReference("r", NewKmerSet(0))
	db4Path := dir + "/db4.orikdb"
	if err := WriteDatabase(db4, db4Path); err != nil {
		t.Fatal(err)
	}

	db5 := NewDatabase(5)
	db5.AddReference("r", NewKmerSet(0))
	db5Path := dir + "/db5.orikdb"
	if err := WriteDatabase(db5, db5Path); err != nil {
		t.Fatal(err)
	}

	_, err := RunClassify(ClassifyOptions{
		InputFile:        input,
		DatabasePaths:    []string{db4Path, db5Path},
		MinKmerFrequency: 1,
	})
	if err == nil {
		t.Fatal("expected InterDatabaseKError when databases disagree on k")
	}
	if _, ok := err.(*InterDatabaseKError); !ok {
		t.Errorf("error type = %T, want *InterDatabaseKError", err)
	}
}

// §8 property 9: overall match is a union of per-reference matches, not a sum.
func TestClassifyOverallMatchIsUnionNotSum(t *testing.T) {
	dir := t.TempDir()
	input := writeTempFasta(t, dir, "input.fa", map[string]string{"S1": "ACGTACGT"})

	shared := Canonical(mustEncode(t, "ACGT"), 4)
	db := NewDatabase(4)
	r1 := NewKmerSet(1)
	r1.Add(shared)
	db.AddReference("r1", r1)
	r2 := NewKmerSet(1)
	r2.Add(shared)
	db.AddReference("r2", r2)

	dbPath := dir + "/db.orikdb"
	if err := WriteDatabase(db, dbPath); err != nil {
		t.Fatal(err)
	}

	result, err := RunClassify(ClassifyOptions{
		InputFile:        input,
		DatabasePaths:    []string{dbPath},
		MinKmerFrequency: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	da := result.DatabasesAnalyzed[0]
	sumOfPerRef := 0
	for _, r := range da.References {
		sumOfPerRef += r.InputKmersHittingReference
	}
	if sumOfPerRef != 2 {
		t.Fatalf("sanity check failed: expected sum of per-reference matches = 2, got %d", sumOfPerRef)
	}
	if da.OverallInputKmersMatchedInDB != 1 {
		t.Errorf("OverallInputKmersMatchedInDB = %d, want 1 (union, not sum of %d)", da.OverallInputKmersMatchedInDB, sumOfPerRef)
	}
}
