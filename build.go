package orionkmer

import "io"

// BuildOptions configures the Build Engine (C7).
type BuildOptions struct {
	GenomeFiles []string
	K           int
	Threads     int
}

// RunBuild aggregates one k-mer set per genome file and assembles a
// Database from them, keyed by each file's basename. Files are processed
// sequentially at the outer loop; each file's own k-mers are extracted
// concurrently by the same worker pool the other engines use (§4.7, §5).
// Empty reference sets (e.g. a header-only FASTA) are preserved.
func RunBuild(opt BuildOptions) (*Database, error) {
	if opt.K < 1 || opt.K > 32 {
		return nil, &InvalidKmerSizeError{K: opt.K}
	}
	threads := ResolveThreads(opt.Threads)

	db := NewDatabase(opt.K)
	for _, file := range opt.GenomeFiles {
		set := NewKmerSet(1 << 14)
		if err := extractFileConcurrent(file, opt.K, threads, set.Add); err != nil {
			return nil, err
		}
		db.AddReference(ReferenceLabel(file), set)
	}
	return db, nil
}

// WriteDatabase persists db to path, atomically (§5, §7): a partially
// written database is never visible at path.
func WriteDatabase(db *Database, path string) error {
	return writeAtomic(path, func(w io.Writer) error {
		return SaveDatabase(w, db)
	})
}
