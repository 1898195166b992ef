package orionkmer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// containerKind identifies the compression wrapper carried by a path's
// extension, independent of the file-format content it wraps (FASTA/FASTQ/
// database/JSON/TSV), per the "container transparency" contract.
type containerKind int

const (
	containerNone containerKind = iota
	containerGzip
	containerXz
	containerZstd
	container7z
)

func detectContainer(path string) containerKind {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return containerGzip
	case strings.HasSuffix(path, ".xz"):
		return containerXz
	case strings.HasSuffix(path, ".zst"), strings.HasSuffix(path, ".zstd"):
		return containerZstd
	case strings.HasSuffix(path, ".7z"):
		return container7z
	default:
		return containerNone
	}
}

// transparentInputPath returns a path fastx/xopen can open directly. xopen
// (used internally by shenwei356/bio/seqio/fastx) already decompresses
// .gz/.xz/.zst on its own; only .7z needs to be unpacked by us first,
// because fastx has no 7z awareness and 7z requires random access that a
// streaming decoder cannot provide. The returned cleanup removes any
// temporary file created for this purpose; it is nil when none was needed.
func transparentInputPath(path string) (string, func(), error) {
	if detectContainer(path) != container7z {
		return path, nil, nil
	}

	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return "", nil, errors.Wrapf(err, "open 7z archive %s", path)
	}
	defer r.Close()

	if len(r.File) == 0 {
		return "", nil, errors.Errorf("7z archive %s contains no files", path)
	}
	member := r.File[0]

	tmp, err := os.CreateTemp("", "orion-kmer-7z-*")
	if err != nil {
		return "", nil, errors.Wrapf(err, "create temp file for %s", path)
	}

	rc, err := member.Open()
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, errors.Wrapf(err, "read 7z member of %s", path)
	}
	_, err = io.Copy(tmp, rc)
	rc.Close()
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, errors.Wrapf(err, "extract 7z member of %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, errors.Wrapf(err, "finalize temp file for %s", path)
	}

	name := tmp.Name()
	cleanup := func() { os.Remove(name) }
	return name, cleanup, nil
}

// openRawInput opens path for a raw byte stream (the database binary
// format; count/compare/classify never read container-wrapped FASTA via
// this path) with transparent decompression based on its extension.
func openRawInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReaderSize(f, os.Getpagesize())

	switch detectContainer(path) {
	case containerGzip:
		gr, err := pgzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloserPair{Reader: gr, closer: f}, nil
	case containerXz:
		xr, err := xz.NewReader(br)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloserPair{Reader: xr, closer: f}, nil
	case containerZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloserPair{Reader: zr.IOReadCloser(), closer: f}, nil
	case container7z:
		localPath, cleanup, err := transparentInputPath(path)
		if err != nil {
			f.Close()
			return nil, err
		}
		f.Close()
		raw, err := os.Open(localPath)
		if err != nil {
			if cleanup != nil {
				cleanup()
			}
			return nil, err
		}
		return &readCloserPair{Reader: raw, closer: raw, extra: cleanup}, nil
	default:
		return &readCloserPair{Reader: br, closer: f}, nil
	}
}

// readCloserPair adapts a plain io.Reader plus the *os.File backing it (or,
// for the 7z case, a temp-file cleanup) into a single io.ReadCloser.
type readCloserPair struct {
	io.Reader
	closer io.Closer
	extra  func()
}

func (p *readCloserPair) Close() error {
	err := p.closer.Close()
	if p.extra != nil {
		p.extra()
	}
	return err
}

// openRawOutput creates path for a raw byte stream (database binary, count
// text, compare/classify JSON/TSV) with transparent compression based on
// its extension. 7z write support is not offered: no actively maintained
// pure-Go 7z encoder exists in the ecosystem (see DESIGN.md); writing to a
// .7z path is a fatal usage error instead of silently producing a plain
// file under a misleading extension.
func openRawOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		switch detectContainer(path) {
		case containerNone:
			return nopWriteCloser{os.Stdout}, nil
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	if detectContainer(path) == container7z {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("writing .7z outputs is not supported")
	}

	return newCompressingWriter(f, detectContainer(path))
}

// newCompressingWriter layers the compressor implied by kind on top of an
// already-open *os.File, closing the compressor (to flush its trailer)
// before closing the file underneath it.
func newCompressingWriter(f *os.File, kind containerKind) (io.WriteCloser, error) {
	switch kind {
	case containerGzip:
		gw := pgzip.NewWriter(f)
		return &writeCloserPair{Writer: gw, inner: gw, file: f}, nil
	case containerXz:
		xw, err := xz.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &writeCloserPair{Writer: xw, inner: xw, file: f}, nil
	case containerZstd:
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &writeCloserPair{Writer: zw, inner: zw, file: f}, nil
	default:
		return f, nil
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// writeCloserPair closes the compressor before the underlying file so the
// container trailer is flushed to disk.
type writeCloserPair struct {
	io.Writer
	inner io.Closer
	file  *os.File
}

func (p *writeCloserPair) Close() error {
	if err := p.inner.Close(); err != nil {
		p.file.Close()
		return err
	}
	return p.file.Close()
}
