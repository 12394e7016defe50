// Package source maps a PGN file into memory and hands the scanner a flat
// byte slice, releasing the mapping when the caller is done with it.
package source

import (
	"fmt"

	"golang.org/x/exp/mmap"

	"github.com/lgbarn/pgnbook/internal/errors"
)

// Source is a memory-mapped view of a file's bytes.
type Source struct {
	reader *mmap.ReaderAt
	data   []byte
}

// Open memory-maps path and reads it fully into an indexed byte view. An
// empty file is a valid source with zero bytes, not an error.
func Open(path string) (*Source, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrSourceUnavailable, "open %s: %v", path, err)
	}

	n := reader.Len()
	data := make([]byte, n)
	if n > 0 {
		if _, err := reader.ReadAt(data, 0); err != nil {
			_ = reader.Close()
			return nil, errors.Wrapf(errors.ErrSourceUnavailable, "read %s: %v", path, err)
		}
	}

	return &Source{reader: reader, data: data}, nil
}

// Bytes returns the full mapped content. The slice is only valid until
// Close is called.
func (s *Source) Bytes() []byte {
	return s.data
}

// Len reports the mapped file's size in bytes.
func (s *Source) Len() int {
	return s.reader.Len()
}

// Close releases the underlying mapping.
func (s *Source) Close() error {
	if err := s.reader.Close(); err != nil {
		return fmt.Errorf("closing mapped source: %w", err)
	}
	return nil
}
