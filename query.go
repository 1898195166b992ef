package orionkmer

import (
	"bufio"
	"io"
	"sync"
)

// QueryOptions configures the Query Engine (C9).
type QueryOptions struct {
	DatabasePath string
	ReadsPath    string
	MinHits      int
	Threads      int
}

// RunQuery loads the database at opt.DatabasePath, then streams reads from
// opt.ReadsPath and returns the ids of those whose canonical k-mer content
// overlaps the database's unified k-mer set at least opt.MinHits times.
// Emission order is unspecified (§4.9, §5); ids are returned in the order
// workers happen to finish their batch, which is not input order.
func RunQuery(opt QueryOptions) ([]string, error) {
	db, err := loadDatabaseFile(opt.DatabasePath)
	if err != nil {
		return nil, err
	}
	union := db.UnifiedKmers()

	minHits := opt.MinHits
	if minHits < 1 {
		minHits = 1
	}
	threads := ResolveThreads(opt.Threads)

	rs, err := OpenRecordStream(opt.ReadsPath)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	const batchSize = 256
	type batch struct {
		ids  [][]byte
		seqs [][]byte
	}

	batches := make(chan batch, threads*2)
	results := make(chan []string, threads*2)

	var workers sync.WaitGroup
	for i := 0; i < threads; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for b := range batches {
				var hits []string
				for i, seq := range b.seqs {
					n := 0
					Extract(seq, db.K, func(code uint64) {
						if union.Contains(code) {
							n++
						}
					})
					if n >= minHits {
						hits = append(hits, string(b.ids[i]))
					}
				}
				if hits != nil {
					results <- hits
				}
			}
		}()
	}

	var collectErr error
	collected := make(chan []string, 1)
	go func() {
		var out []string
		for hits := range results {
			out = append(out, hits...)
		}
		collected <- out
	}()

	cur := batch{}
	for {
		rec, err := rs.Next()
		if err != nil {
			if err != io.EOF {
				collectErr = err
			}
			break
		}
		cur.ids = append(cur.ids, rec.ID)
		cur.seqs = append(cur.seqs, rec.Seq)
		if len(cur.ids) == batchSize {
			batches <- cur
			cur = batch{}
		}
	}
	if len(cur.ids) > 0 {
		batches <- cur
	}
	close(batches)
	workers.Wait()
	close(results)

	out := <-collected
	if collectErr != nil {
		return nil, collectErr
	}
	return out, nil
}

// WriteQueryOutput writes one read id per line, per §6 "Query output".
func WriteQueryOutput(w io.Writer, ids []string) error {
	bw := bufio.NewWriter(w)
	for _, id := range ids {
		if _, err := bw.WriteString(id); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
