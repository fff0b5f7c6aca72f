package bitmask

import (
	"fmt"
	"slices"

	"github.com/rawbytedev/bitmask/internal/bitio"
)

// Field is a single flag declaration. HasIndex distinguishes an explicit
// index from the zero value; implicit-mode declarations leave it false.
type Field struct {
	Name     string
	Index    int
	HasIndex bool
}

// Schema maps flag names to bit positions and carries the two derived
// widths: the byte-packed width and the bit-array width. Immutable once
// resolved; safe for concurrent use.
type Schema struct {
	fields     []Field // indices resolved
	byName     map[string]int
	totalBits  int // bit-array width, override applied
	totalBytes int // byte-packed width, always from the natural width
}

type resolveConfig struct {
	totalBits    int
	hasTotalBits bool
}

// ResolveOption adjusts explicit-mode resolution.
type ResolveOption func(*resolveConfig)

// WithTotalBits fixes the bit-array width instead of deriving it from the
// highest declared index. Only the array form honors it; the byte-packed
// width always comes from the declared indices.
func WithTotalBits(n int) ResolveOption {
	return func(c *resolveConfig) {
		c.totalBits = n
		c.hasTotalBits = true
	}
}

// ResolveImplicit assigns bit indices by declaration order, 0..N-1.
func ResolveImplicit(names []string) *Schema {
	s := &Schema{
		fields: make([]Field, len(names)),
		byName: make(map[string]int, len(names)),
	}
	for i, name := range names {
		s.fields[i] = Field{Name: name, Index: i, HasIndex: true}
		s.byName[name] = i
	}
	s.totalBits = len(names)
	s.totalBytes = bitio.ByteLen(len(names))
	return s
}

// ResolveExplicit builds a schema from declarations that each carry their
// own bit index. Indices may be sparse and out of declaration order. A
// declaration without an index, an index at or past a WithTotalBits limit,
// or two declarations sharing an index all fail resolution.
func ResolveExplicit(fields []Field, opts ...ResolveOption) (*Schema, error) {
	var cfg resolveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	claimed := make(map[int]string, len(fields))
	maxIdx := 0
	for _, f := range fields {
		if !f.HasIndex {
			return nil, fmt.Errorf("flag %q: %w", f.Name, ErrMissingIndex)
		}
		if f.Index < 0 {
			return nil, fmt.Errorf("flag %q index %d: %w", f.Name, f.Index, ErrIndexOutOfRange)
		}
		if cfg.hasTotalBits && f.Index >= cfg.totalBits {
			return nil, fmt.Errorf("flag %q index %d does not fit in %d bits: %w",
				f.Name, f.Index, cfg.totalBits, ErrIndexOutOfRange)
		}
		if other, ok := claimed[f.Index]; ok {
			return nil, fmt.Errorf("flags %q and %q both claim index %d: %w",
				other, f.Name, f.Index, ErrDuplicateIndex)
		}
		claimed[f.Index] = f.Name
		if f.Index > maxIdx {
			maxIdx = f.Index
		}
		s.fields = append(s.fields, f)
		s.byName[f.Name] = f.Index
	}

	natural := 0
	if len(fields) > 0 {
		natural = maxIdx + 1
	}
	s.totalBits = natural
	if cfg.hasTotalBits {
		s.totalBits = cfg.totalBits
	}
	// (max+8)/8 keeps the degenerate empty schema at one byte.
	s.totalBytes = (maxIdx + 8) / 8
	return s, nil
}

// TotalBits is the width of the bit-array encoding.
func (s *Schema) TotalBits() int { return s.totalBits }

// TotalBytes is the width of the byte-packed encoding.
func (s *Schema) TotalBytes() int { return s.totalBytes }

// Index returns the bit position of a named flag.
func (s *Schema) Index(name string) (int, bool) {
	idx, ok := s.byName[name]
	return idx, ok
}

// Fields returns a copy of the resolved declarations in declaration order.
func (s *Schema) Fields() []Field {
	return slices.Clone(s.fields)
}
