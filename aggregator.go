package orionkmer

import "sync"

// numShards is the number of independently-locked buckets backing both
// aggregator kinds. A fixed power-of-two count keeps the shard-selection
// mask cheap and gives enough stripes that worker goroutines rarely
// contend on the same bucket, per the "sharded map" strategy in §9.
const numShards = 64

func shardIndex(code uint64) int {
	// A k-mer code occupies only its low 2k bits, so for k < 32 the high
	// bits are always zero; a cheap multiplicative mix folds the low bits
	// into the top six bits used here, which spreads keys across shards.
	h := code * 0x9E3779B97F4A7C15
	return int(h>>58) & (numShards - 1)
}

// KmerSet is a concurrent set of canonical k-mer codes. Insertion from
// multiple goroutines is safe; the observable post-condition after all
// inserters finish is identical to a serial insertion of the same codes.
type KmerSet struct {
	shards [numShards]struct {
		mu sync.Mutex
		m  map[uint64]struct{}
	}
}

// NewKmerSet returns an empty KmerSet sized for roughly sizeHint elements.
func NewKmerSet(sizeHint int) *KmerSet {
	s := &KmerSet{}
	perShard := sizeHint/numShards + 1
	for i := range s.shards {
		s.shards[i].m = make(map[uint64]struct{}, perShard)
	}
	return s
}

// Add inserts code; duplicates are idempotent.
func (s *KmerSet) Add(code uint64) {
	sh := &s.shards[shardIndex(code)]
	sh.mu.Lock()
	sh.m[code] = struct{}{}
	sh.mu.Unlock()
}

// Contains reports whether code is a member.
func (s *KmerSet) Contains(code uint64) bool {
	sh := &s.shards[shardIndex(code)]
	sh.mu.Lock()
	_, ok := sh.m[code]
	sh.mu.Unlock()
	return ok
}

// Len returns the number of distinct members.
func (s *KmerSet) Len() int {
	n := 0
	for i := range s.shards {
		n += len(s.shards[i].m)
	}
	return n
}

// Each calls fn once per member. fn must not mutate the set.
func (s *KmerSet) Each(fn func(code uint64)) {
	for i := range s.shards {
		for code := range s.shards[i].m {
			fn(code)
		}
	}
}

// ToSlice materializes the set's members in unspecified order.
func (s *KmerSet) ToSlice() []uint64 {
	out := make([]uint64, 0, s.Len())
	s.Each(func(code uint64) { out = append(out, code) })
	return out
}

// Union adds every member of other into s.
func (s *KmerSet) Union(other *KmerSet) {
	other.Each(s.Add)
}

// KmerMultiset is a concurrent counting multiset: canonical k-mer code to
// occurrence count. Increment from multiple goroutines is safe; counter
// increments commute, so the result does not depend on scheduling order.
type KmerMultiset struct {
	shards [numShards]struct {
		mu sync.Mutex
		m  map[uint64]int
	}
}

// NewKmerMultiset returns an empty KmerMultiset sized for roughly sizeHint
// distinct keys.
func NewKmerMultiset(sizeHint int) *KmerMultiset {
	s := &KmerMultiset{}
	perShard := sizeHint/numShards + 1
	for i := range s.shards {
		s.shards[i].m = make(map[uint64]int, perShard)
	}
	return s
}

// Incr increments code's count by one.
func (s *KmerMultiset) Incr(code uint64) {
	sh := &s.shards[shardIndex(code)]
	sh.mu.Lock()
	sh.m[code]++
	sh.mu.Unlock()
}

// Count returns code's current count (zero if unseen).
func (s *KmerMultiset) Count(code uint64) int {
	sh := &s.shards[shardIndex(code)]
	sh.mu.Lock()
	n := sh.m[code]
	sh.mu.Unlock()
	return n
}

// Len returns the number of distinct keys observed.
func (s *KmerMultiset) Len() int {
	n := 0
	for i := range s.shards {
		n += len(s.shards[i].m)
	}
	return n
}

// Each calls fn once per (code, count) pair. fn must not mutate the
// multiset.
func (s *KmerMultiset) Each(fn func(code uint64, count int)) {
	for i := range s.shards {
		for code, count := range s.shards[i].m {
			fn(code, count)
		}
	}
}

// FilterMin returns the subset of keys with count >= min, as a map from
// code to count, used to build the filtered input multiset Q in count and
// classify.
func (s *KmerMultiset) FilterMin(min int) map[uint64]int {
	out := make(map[uint64]int)
	s.Each(func(code uint64, count int) {
		if count >= min {
			out[code] = count
		}
	})
	return out
}
