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

import "errors"

// ErrIllegalBase means a non-ACGT byte was found where a k-mer was expected.
// Unlike degenerate-base toolkits, orion-kmer does not fold IUPAC codes to a
// representative base: any ambiguity invalidates the whole window.
var ErrIllegalBase = errors.New("orionkmer: illegal base (only A/C/G/T allowed)")

// ErrKOverflow means k is outside the supported range of 1..32.
var ErrKOverflow = errors.New("orionkmer: k (1-32) overflow")

// Encode packs a k-length ACGT byte slice into the low 2k bits of a uint64,
// MSB-first: base i occupies bits 2*(k-1-i)..2*(k-i)-1. Matching is
// case-insensitive; any byte outside {A,C,G,T,a,c,g,t} fails the whole
// window, including IUPAC ambiguity codes and N.
func Encode(kmer []byte) (code uint64, err error) {
	k := len(kmer)
	if k == 0 || k > 32 {
		return 0, ErrKOverflow
	}

	for i := range kmer {
		code <<= 2
		switch kmer[i] {
		case 'A', 'a':
			// code |= 0
		case 'C', 'c':
			code |= 1
		case 'G', 'g':
			code |= 2
		case 'T', 't':
			code |= 3
		default:
			return 0, ErrIllegalBase
		}
	}
	return code, nil
}

// bit2base maps a 2-bit code back to its base.
var bit2base = [4]byte{'A', 'C', 'G', 'T'}

// Decode is the inverse of Encode over ACGT. It panics if k is outside
// 1..32, a fatal precondition violation rather than a recoverable error.
func Decode(code uint64, k int) []byte {
	if k <= 0 || k > 32 {
		panic(ErrKOverflow)
	}
	kmer := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		kmer[i] = bit2base[code&3]
		code >>= 2
	}
	return kmer
}

// ReverseComplement complements each 2-bit base (XOR 0b11) and reverses
// base order. ReverseComplement(ReverseComplement(v, k), k) == v.
func ReverseComplement(code uint64, k int) uint64 {
	if k <= 0 || k > 32 {
		panic(ErrKOverflow)
	}
	var c uint64
	for i := 0; i < k; i++ {
		c <<= 2
		c |= code&3 ^ 3
		code >>= 2
	}
	return c
}

// Canonical returns the lexicographic (numeric) minimum of code and its
// reverse complement, folding strand orientation.
func Canonical(code uint64, k int) uint64 {
	rc := ReverseComplement(code, k)
	if rc < code {
		return rc
	}
	return code
}

// KmerCode pairs an encoded k-mer with its length, mirroring the teacher's
// KmerCode but restricted to the canonical-DNA-only semantics this engine
// requires (no IUPAC folding, no hashing mode).
type KmerCode struct {
	Code uint64
	K    int
}

// NewKmerCode encodes kmer and wraps it with its length.
func NewKmerCode(kmer []byte) (KmerCode, error) {
	code, err := Encode(kmer)
	if err != nil {
		return KmerCode{}, err
	}
	return KmerCode{Code: code, K: len(kmer)}, nil
}

// Canonical returns the canonical form of kcode.
func (kcode KmerCode) Canonical() KmerCode {
	return KmerCode{Code: Canonical(kcode.Code, kcode.K), K: kcode.K}
}

// ReverseComplement returns the reverse-complement form of kcode.
func (kcode KmerCode) ReverseComplement() KmerCode {
	return KmerCode{Code: ReverseComplement(kcode.Code, kcode.K), K: kcode.K}
}

// Bytes decodes kcode back into an uppercase ACGT byte slice.
func (kcode KmerCode) Bytes() []byte {
	return Decode(kcode.Code, kcode.K)
}

// String is the string form of Bytes.
func (kcode KmerCode) String() string {
	return string(kcode.Bytes())
}

// Equal reports whether two KmerCodes denote the same k-mer.
func (kcode KmerCode) Equal(other KmerCode) bool {
	return kcode.K == other.K && kcode.Code == other.Code
}
