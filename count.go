package orionkmer

import (
	"bufio"
	"io"
	"sort"
	"strconv"
)

// CountOptions configures the Count Engine (C6).
type CountOptions struct {
	Files    []string
	K        int
	MinCount int
	Threads  int
}

// CountEntry is one line of count output: a canonical k-mer code and its
// total occurrence across all input files.
type CountEntry struct {
	Code  uint64
	Count int
}

// RunCount aggregates canonical k-mers across all of opt.Files into one
// multiset, then returns the entries with count >= opt.MinCount, ordered
// by their encoded uint64 key ascending (§4.6, §8 property 5).
func RunCount(opt CountOptions) ([]CountEntry, error) {
	if opt.K < 1 || opt.K > 32 {
		return nil, &InvalidKmerSizeError{K: opt.K}
	}
	minCount := opt.MinCount
	if minCount < 1 {
		minCount = 1
	}

	ms := NewKmerMultiset(1 << 16)
	threads := ResolveThreads(opt.Threads)

	for _, file := range opt.Files {
		if err := extractFileConcurrent(file, opt.K, threads, ms.Incr); err != nil {
			return nil, err
		}
	}

	filtered := ms.FilterMin(minCount)
	entries := make([]CountEntry, 0, len(filtered))
	for code, count := range filtered {
		entries = append(entries, CountEntry{Code: code, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries, nil
}

// WriteCountOutput writes entries to w in the §6 "Count text format":
// decoded canonical k-mer, a tab, decimal count, newline. Entries must
// already be in the desired emission order (RunCount returns them sorted
// ascending by encoded key).
func WriteCountOutput(w io.Writer, k int, entries []CountEntry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.Write(Decode(e.Code, k)); err != nil {
			return err
		}
		if err := bw.WriteByte('\t'); err != nil {
			return err
		}
		if _, err := bw.WriteString(strconv.Itoa(e.Count)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
