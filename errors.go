package orionkmer

import "fmt"

// InvalidKmerSizeError reports a k outside the supported 1..32 range.
type InvalidKmerSizeError struct {
	K int
}

func (e *InvalidKmerSizeError) Error() string {
	return fmt.Sprintf("orionkmer: invalid k-mer size %d (must be 1..32)", e.K)
}

// FileOpenOrParseError reports a sequence file that could not be opened,
// was empty, or did not parse as FASTA/FASTQ.
type FileOpenOrParseError struct {
	Path  string
	Cause error
}

func (e *FileOpenOrParseError) Error() string {
	return fmt.Sprintf("orionkmer: cannot read sequence file %s: %v", e.Path, e.Cause)
}

func (e *FileOpenOrParseError) Unwrap() error { return e.Cause }

// DatabaseDeserializationError reports a binary database that violates the
// format (bad magic, truncated, or unsupported version).
type DatabaseDeserializationError struct {
	Path  string
	Cause error
}

func (e *DatabaseDeserializationError) Error() string {
	return fmt.Sprintf("orionkmer: cannot load database %s: %v", e.Path, e.Cause)
}

func (e *DatabaseDeserializationError) Unwrap() error { return e.Cause }

// IncompatibleKError reports a compare between two databases with
// different k.
type IncompatibleKError struct {
	K1, K2 int
}

func (e *IncompatibleKError) Error() string {
	return fmt.Sprintf("orionkmer: incompatible k-mer sizes: %d vs %d", e.K1, e.K2)
}

// UserKValidationError reports a classify run where the user-supplied k
// disagrees with a loaded database's k.
type UserKValidationError struct {
	UserK, DBK int
	Path       string
}

func (e *UserKValidationError) Error() string {
	return fmt.Sprintf("orionkmer: database %s has k=%d, does not match requested k=%d", e.Path, e.DBK, e.UserK)
}

// InterDatabaseKError reports a classify run where databases disagree on k
// and no user k was supplied to arbitrate.
type InterDatabaseKError struct {
	FirstK, OtherK int
	Path           string
}

func (e *InterDatabaseKError) Error() string {
	return fmt.Sprintf("orionkmer: database %s has k=%d, does not match first database's k=%d", e.Path, e.OtherK, e.FirstK)
}
