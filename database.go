package orionkmer

// Database is an in-memory (k, reference -> k-mer set) tuple. All k-mers
// across all references are canonical and share the same k; reference
// labels are unique within one Database.
type Database struct {
	K          int
	references map[string]*KmerSet
	order      []string // insertion order, for deterministic serialization
}

// NewDatabase returns an empty Database for the given k-mer size.
func NewDatabase(k int) *Database {
	return &Database{K: k, references: make(map[string]*KmerSet)}
}

// AddReference adds or replaces the reference named label with set. An
// empty set is preserved (e.g. a header-only FASTA still gets an entry).
func (db *Database) AddReference(label string, set *KmerSet) {
	if _, exists := db.references[label]; !exists {
		db.order = append(db.order, label)
	}
	db.references[label] = set
}

// Reference returns the named reference's set, or nil if absent.
func (db *Database) Reference(label string) *KmerSet {
	return db.references[label]
}

// NumReferences returns the number of references in the database.
func (db *Database) NumReferences() int {
	return len(db.references)
}

// ReferenceLabels returns reference labels in the order they were added.
func (db *Database) ReferenceLabels() []string {
	out := make([]string, len(db.order))
	copy(out, db.order)
	return out
}

// UnifiedKmers returns the union of every reference's k-mer set.
func (db *Database) UnifiedKmers() *KmerSet {
	total := 0
	for _, label := range db.order {
		total += db.references[label].Len()
	}
	union := NewKmerSet(total)
	for _, label := range db.order {
		union.Union(db.references[label])
	}
	return union
}

// TotalUniqueKmers returns |union of all reference sets|.
func (db *Database) TotalUniqueKmers() int {
	return db.UnifiedKmers().Len()
}
