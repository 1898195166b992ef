package orionkmer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// formatFloat4 renders f to exactly four decimal places, per §6 "Classify
// TSV" and §8's formatting requirement for the literal test scenarios.
func formatFloat4(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// tsvWriter is a minimal tab-delimited writer, in the teacher's ioutil
// style (thin bufio wrapper, no external TSV dependency needed for a
// fixed, small column set).
type tsvWriter struct {
	bw  *bufio.Writer
	err error
}

func newTSVWriter(w io.Writer) *tsvWriter {
	return &tsvWriter{bw: bufio.NewWriter(w)}
}

func (t *tsvWriter) writeHeader(cols ...string) error {
	return t.writeRawRow(cols)
}

func (t *tsvWriter) writeRow(fields ...interface{}) error {
	cols := make([]string, len(fields))
	for i, f := range fields {
		switch v := f.(type) {
		case string:
			cols[i] = v
		case int:
			cols[i] = strconv.Itoa(v)
		default:
			cols[i] = fmt.Sprint(v)
		}
	}
	return t.writeRawRow(cols)
}

func (t *tsvWriter) writeRawRow(cols []string) error {
	if t.err != nil {
		return t.err
	}
	_, err := t.bw.WriteString(strings.Join(cols, "\t"))
	if err == nil {
		_, err = t.bw.WriteString("\n")
	}
	if err != nil {
		t.err = err
	}
	return err
}

func (t *tsvWriter) flush() error {
	if t.err != nil {
		return t.err
	}
	return t.bw.Flush()
}
