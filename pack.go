package bitmask

import (
	"fmt"

	"github.com/rawbytedev/bitmask/internal/bitio"
)

// Pack sets each flag's bit in a fresh byte slice of TotalBytes length.
// Flags absent from values encode as 0, as do bits no flag claims.
func (s *Schema) Pack(values map[string]bool) []byte {
	out := make([]byte, s.totalBytes)
	for _, f := range s.fields {
		if values[f.Name] {
			bitio.Set(out, f.Index, true)
		}
	}
	return out
}

// Unpack reads every flag's bit out of data. The buffer must be exactly
// TotalBytes long; anything else is ErrSizeMismatch.
func (s *Schema) Unpack(data []byte) (map[string]bool, error) {
	if len(data) != s.totalBytes {
		return nil, fmt.Errorf("got %d bytes, schema packs to %d: %w",
			len(data), s.totalBytes, ErrSizeMismatch)
	}
	out := make(map[string]bool, len(s.fields))
	for _, f := range s.fields {
		out[f.Name] = bitio.Get(data, f.Index)
	}
	return out, nil
}

// PackBits writes each flag into its slot of a fresh TotalBits-long bool
// slice. Unclaimed slots stay false.
func (s *Schema) PackBits(values map[string]bool) []bool {
	out := make([]bool, s.totalBits)
	for _, f := range s.fields {
		if values[f.Name] {
			out[f.Index] = true
		}
	}
	return out
}

// UnpackBits reads every flag's slot out of bits, which must be exactly
// TotalBits long.
func (s *Schema) UnpackBits(bits []bool) (map[string]bool, error) {
	if len(bits) != s.totalBits {
		return nil, fmt.Errorf("got %d slots, schema packs to %d: %w",
			len(bits), s.totalBits, ErrSizeMismatch)
	}
	out := make(map[string]bool, len(s.fields))
	for _, f := range s.fields {
		out[f.Name] = bits[f.Index]
	}
	return out, nil
}
