// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package orionkmer

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/twotwotwo/sorts/sortutil"
)

// DBMainVersion is the database format's main version number.
const DBMainVersion uint8 = 1

// dbMagic identifies an orion-kmer database file.
var dbMagic = [8]byte{'.', 'o', 'r', 'i', 'o', 'n', 'k', 'm'}

var be = binary.BigEndian

// Binary layout:
//
//	offset  bytes  name               type
//	0       8      magic              [8]byte
//	8       1      version            uint8
//	9       1      k                  uint8
//	10      4      num references     uint32
//	(per reference)
//	        4      label length       uint32
//	        n      label              []byte (utf8)
//	        8      kmer count         uint64
//	        8×m    kmers, sorted asc  []uint64
//
// Sorting each reference's k-mers on write makes the on-disk bytes a
// deterministic function of the reference's content (§9 Design Notes).

// SaveDatabase serializes db to w.
func SaveDatabase(w io.Writer, db *Database) error {
	bw := bufio.NewWriterSize(w, os.Getpagesize())

	if _, err := bw.Write(dbMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, be, [2]uint8{DBMainVersion, uint8(db.K)}); err != nil {
		return err
	}
	labels := db.ReferenceLabels()
	if err := binary.Write(bw, be, uint32(len(labels))); err != nil {
		return err
	}

	for _, label := range labels {
		lb := []byte(label)
		if err := binary.Write(bw, be, uint32(len(lb))); err != nil {
			return err
		}
		if _, err := bw.Write(lb); err != nil {
			return err
		}

		codes := db.references[label].ToSlice()
		sortutil.Uint64s(codes)

		if err := binary.Write(bw, be, uint64(len(codes))); err != nil {
			return err
		}
		for _, code := range codes {
			if err := binary.Write(bw, be, code); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// LoadDatabase deserializes a Database from r. path is used only to build
// diagnostics on failure.
func LoadDatabase(r io.Reader, path string) (*Database, error) {
	br := bufio.NewReaderSize(r, os.Getpagesize())

	var magic [8]byte
	if err := binary.Read(br, be, &magic); err != nil {
		return nil, &DatabaseDeserializationError{Path: path, Cause: err}
	}
	if magic != dbMagic {
		return nil, &DatabaseDeserializationError{Path: path, Cause: fmt.Errorf("bad magic number")}
	}

	var meta [2]uint8
	if err := binary.Read(br, be, &meta); err != nil {
		return nil, &DatabaseDeserializationError{Path: path, Cause: err}
	}
	if meta[0] != DBMainVersion {
		return nil, &DatabaseDeserializationError{Path: path, Cause: fmt.Errorf("unsupported database version %d", meta[0])}
	}
	k := int(meta[1])
	if k < 1 || k > 32 {
		return nil, &DatabaseDeserializationError{Path: path, Cause: &InvalidKmerSizeError{K: k}}
	}

	var numRefs uint32
	if err := binary.Read(br, be, &numRefs); err != nil {
		return nil, &DatabaseDeserializationError{Path: path, Cause: err}
	}

	db := NewDatabase(k)
	for i := uint32(0); i < numRefs; i++ {
		var labelLen uint32
		if err := binary.Read(br, be, &labelLen); err != nil {
			return nil, &DatabaseDeserializationError{Path: path, Cause: err}
		}
		labelBytes := make([]byte, labelLen)
		if _, err := io.ReadFull(br, labelBytes); err != nil {
			return nil, &DatabaseDeserializationError{Path: path, Cause: err}
		}

		var numKmers uint64
		if err := binary.Read(br, be, &numKmers); err != nil {
			return nil, &DatabaseDeserializationError{Path: path, Cause: err}
		}

		set := NewKmerSet(int(numKmers))
		for j := uint64(0); j < numKmers; j++ {
			var code uint64
			if err := binary.Read(br, be, &code); err != nil {
				return nil, &DatabaseDeserializationError{Path: path, Cause: err}
			}
			set.Add(code)
		}

		db.AddReference(string(labelBytes), set)
	}

	return db, nil
}

// codeSlice implements sort.Interface for []uint64, in the teacher's
// KmerCodeSlice idiom. Nothing in the package sorts with it at present:
// SaveDatabase uses sortutil, and query and compare output is not sorted.
type codeSlice []uint64

func (c codeSlice) Len() int           { return len(c) }
func (c codeSlice) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }
func (c codeSlice) Less(i, j int) bool { return c[i] < c[j] }

var _ sort.Interface = codeSlice(nil)
