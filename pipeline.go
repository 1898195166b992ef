package orionkmer

import (
	"io"
	"runtime"
	"sync"
)

// ResolveThreads turns the CLI's --threads convention (0 means "all
// logical cores") into a concrete worker count, matching the Rust
// original's one-time, per-invocation thread pool sizing (§5, §11).
func ResolveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// extractFileConcurrent streams path's records and extracts canonical
// k-mers, fanning the per-record extraction out across threads worker
// goroutines and calling onKmer for every emitted code. onKmer must be
// safe for concurrent use (KmerSet.Add and KmerMultiset.Incr both are).
//
// This is the bounded worker-pool shape described in §9 Design Notes for
// "shared mutable aggregators": a producer (the record stream) feeds one
// record's sequence per job to a pool of extract workers; there is no
// unbounded buffering since the channel is small and record parsing is
// itself the rate limiter.
func extractFileConcurrent(path string, k int, threads int, onKmer func(code uint64)) error {
	rs, err := OpenRecordStream(path)
	if err != nil {
		return err
	}
	defer rs.Close()

	if threads < 1 {
		threads = 1
	}

	jobs := make(chan []byte, threads*4)
	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seq := range jobs {
				Extract(seq, k, onKmer)
			}
		}()
	}

	var readErr error
	for {
		rec, err := rs.Next()
		if err != nil {
			if err != io.EOF {
				readErr = err
			}
			break
		}
		jobs <- rec.Seq
	}
	close(jobs)
	wg.Wait()

	return readErr
}
