package orionkmer

// Extract emits the canonical form of every valid k-mer window in seq,
// calling emit(code) for each. A window is valid when it contains only
// A/C/G/T (case-insensitive); any other byte skips just that window, it
// does not reset or invalidate neighboring windows. If len(seq) < k,
// nothing is emitted.
//
// This re-encodes each window independently rather than rolling a hash,
// per the correctness contract: any implementation that is observationally
// equivalent (same emissions) is acceptable, but a naive per-window
// encoding is the simplest one to get right and k<=32 keeps it cheap.
func Extract(seq []byte, k int, emit func(code uint64)) {
	l := len(seq)
	if l < k {
		return
	}
	for i := 0; i+k <= l; i++ {
		code, err := Encode(seq[i : i+k])
		if err != nil {
			continue
		}
		emit(Canonical(code, k))
	}
}

// ExtractKmerCodes is like Extract but returns a materialized slice. Used
// where batching is more convenient than a callback (e.g. the query
// engine's per-read worker).
func ExtractKmerCodes(seq []byte, k int) []uint64 {
	if len(seq) < k {
		return nil
	}
	codes := make([]uint64, 0, len(seq)-k+1)
	Extract(seq, k, func(code uint64) {
		codes = append(codes, code)
	})
	return codes
}
