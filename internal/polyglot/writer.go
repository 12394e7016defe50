package polyglot

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Writer serializes a sorted stream of Entry values as 16-byte big-endian
// Polyglot records. By default it drops consecutive (key, move) duplicates,
// so a sorted aggregator output is written with one record per distinct
// move of each position; Full disables that and writes every entry it is
// given verbatim.
type Writer struct {
	w    *bufio.Writer
	Full bool

	havePrev bool
	prevKey  uint64
	prevMove uint16
}

// NewWriter wraps w for buffered record output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write serializes a single entry, skipping it if it duplicates the
// immediately preceding (key, move) pair and Full is not set. Weight must be
// at least 1; a weight of zero indicates a bug upstream of the writer, not a
// malformed input, so it panics rather than silently producing an invalid
// book.
func (w *Writer) Write(e Entry) error {
	if e.Weight == 0 {
		panic("polyglot: entry with zero weight")
	}

	if !w.Full && w.havePrev && e.Key == w.prevKey && e.Move == w.prevMove {
		return nil
	}
	w.havePrev = true
	w.prevKey = e.Key
	w.prevMove = e.Move

	var buf [EntrySize]byte
	binary.BigEndian.PutUint64(buf[0:8], e.Key)
	binary.BigEndian.PutUint16(buf[8:10], e.Move)
	binary.BigEndian.PutUint16(buf[10:12], e.Weight)
	binary.BigEndian.PutUint32(buf[12:16], e.Learn)

	_, err := w.w.Write(buf[:])
	return err
}

// Flush pushes any buffered bytes to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
