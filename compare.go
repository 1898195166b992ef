package orionkmer

// CompareResult is the structured outcome of comparing two databases (C8).
type CompareResult struct {
	DB1Path                        string  `json:"db1_path"`
	DB2Path                        string  `json:"db2_path"`
	KmerSize                       int     `json:"kmer_size"`
	DB1TotalUniqueKmersAcrossRefs  int     `json:"db1_total_unique_kmers_across_references"`
	DB2TotalUniqueKmersAcrossRefs  int     `json:"db2_total_unique_kmers_across_references"`
	IntersectionSize               int     `json:"intersection_size"`
	UnionSize                       int     `json:"union_size"`
	JaccardIndex                    float64 `json:"jaccard_index"`
}

// RunCompare loads db1Path and db2Path and computes the Jaccard index of
// their unified k-mer sets (§4.8). It fails with IncompatibleKError if the
// two databases were built with different k.
func RunCompare(db1Path, db2Path string) (*CompareResult, error) {
	db1, err := loadDatabaseFile(db1Path)
	if err != nil {
		return nil, err
	}
	db2, err := loadDatabaseFile(db2Path)
	if err != nil {
		return nil, err
	}
	if db1.K != db2.K {
		return nil, &IncompatibleKError{K1: db1.K, K2: db2.K}
	}

	a := db1.UnifiedKmers()
	b := db2.UnifiedKmers()

	small, large := a, b
	if small.Len() > large.Len() {
		small, large = large, small
	}
	intersection := 0
	small.Each(func(code uint64) {
		if large.Contains(code) {
			intersection++
		}
	})

	union := a.Len() + b.Len() - intersection
	var jaccard float64
	if union > 0 {
		jaccard = float64(intersection) / float64(union)
	}

	return &CompareResult{
		DB1Path:                       db1Path,
		DB2Path:                       db2Path,
		KmerSize:                      db1.K,
		DB1TotalUniqueKmersAcrossRefs: a.Len(),
		DB2TotalUniqueKmersAcrossRefs: b.Len(),
		IntersectionSize:              intersection,
		UnionSize:                     union,
		JaccardIndex:                  jaccard,
	}, nil
}

// loadDatabaseFile opens path (transparently decompressing per §6) and
// deserializes a Database from it.
func loadDatabaseFile(path string) (*Database, error) {
	rc, err := openRawInput(path)
	if err != nil {
		return nil, &DatabaseDeserializationError{Path: path, Cause: err}
	}
	defer rc.Close()
	return LoadDatabase(rc, path)
}
