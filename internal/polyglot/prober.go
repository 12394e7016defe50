package polyglot

import (
	"encoding/binary"
	"sort"

	"github.com/lgbarn/pgnbook/internal/errors"
)

// Prober performs binary-search lookups over an already-sorted in-memory
// book, the same find_first-by-key probe a Polyglot reader uses to gather
// every candidate move for a position.
type Prober struct {
	data []byte // the raw book contents, a multiple of EntrySize
}

// NewProber wraps raw book bytes for probing. The bytes must already be
// sorted by key ascending; NewProber does not sort them.
func NewProber(data []byte) (*Prober, error) {
	if len(data)%EntrySize != 0 {
		return nil, errors.Wrap(errors.ErrInvalidBook, "polyglot book length is not a multiple of 16")
	}
	return &Prober{data: data}, nil
}

// Len reports the number of records in the book.
func (p *Prober) Len() int {
	return len(p.data) / EntrySize
}

func (p *Prober) at(i int) Entry {
	off := i * EntrySize
	rec := p.data[off : off+EntrySize]
	return Entry{
		Key:    binary.BigEndian.Uint64(rec[0:8]),
		Move:   binary.BigEndian.Uint16(rec[8:10]),
		Weight: binary.BigEndian.Uint16(rec[10:12]),
		Learn:  binary.BigEndian.Uint32(rec[12:16]),
	}
}

// findFirst returns the index of the first record whose key is >= key.
func (p *Prober) findFirst(key uint64) int {
	return sort.Search(p.Len(), func(i int) bool {
		return p.at(i).Key >= key
	})
}

// Probe returns every entry sharing the given position key, in their
// on-disk order (already weight-descending for a book the aggregator
// produced).
func (p *Prober) Probe(key uint64) []Entry {
	start := p.findFirst(key)
	var out []Entry
	for i := start; i < p.Len(); i++ {
		e := p.at(i)
		if e.Key != key {
			break
		}
		out = append(out, e)
	}
	return out
}
