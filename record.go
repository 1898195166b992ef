package orionkmer

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Record is one (id, sequence) pair read from a FASTA or FASTQ file.
// Sequence is uppercase-normalized; quality lines, if any, are discarded.
type Record struct {
	ID  []byte
	Seq []byte
}

// RecordStream lazily iterates the records of one sequence file. It wraps
// fastx.Reader, which already understands both FASTA and FASTQ and the
// container formats xopen recognizes; orion-kmer additionally normalizes
// case and surfaces a parse error that names the source path.
type RecordStream struct {
	path    string
	reader  *fastx.Reader
	n       int
	cleanup func()
}

func init() {
	// Sequence-alphabet validation is the fastx/seq layer's job upstream of
	// this engine; disabling it here avoids double-validating every byte
	// before the k-mer extractor does its own ACGT check.
	seq.ValidateSeq = false
}

// OpenRecordStream opens path for streaming. Container-compressed inputs
// (gz/xz/zst/7z) are transparently decompressed by fastx/xopen except for
// .7z, which this engine decompresses itself first (see container.go).
func OpenRecordStream(path string) (*RecordStream, error) {
	localPath, cleanup, err := transparentInputPath(path)
	if err != nil {
		return nil, &FileOpenOrParseError{Path: path, Cause: err}
	}
	reader, err := fastx.NewDefaultReader(localPath)
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		return nil, &FileOpenOrParseError{Path: path, Cause: err}
	}
	return &RecordStream{path: path, reader: reader, cleanup: cleanup}, nil
}

// Next returns the next record, (nil, io.EOF) at end of stream, or a
// FileOpenOrParseError naming path on malformed content.
func (rs *RecordStream) Next() (*Record, error) {
	rec, err := rs.reader.Read()
	if err != nil {
		if err == io.EOF {
			if rs.n == 0 {
				return nil, &FileOpenOrParseError{Path: rs.path, Cause: fmt.Errorf("empty or unparseable sequence file")}
			}
			return nil, io.EOF
		}
		return nil, &FileOpenOrParseError{Path: rs.path, Cause: err}
	}
	rs.n++
	return &Record{ID: rec.ID, Seq: bytes.ToUpper(rec.Seq.Seq)}, nil
}

// Close releases the underlying file handle and any temporary file created
// to decompress a .7z input.
func (rs *RecordStream) Close() error {
	err := rs.reader.Close()
	if rs.cleanup != nil {
		rs.cleanup()
	}
	return err
}

// ReferenceLabel derives the stable reference label for a genome file: its
// basename (final path component).
func ReferenceLabel(path string) string {
	return filepath.Base(path)
}
