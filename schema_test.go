package bitmask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func explicit(name string, idx int) Field {
	return Field{Name: name, Index: idx, HasIndex: true}
}

func TestImplicitWidths(t *testing.T) {
	s := ResolveImplicit([]string{"a", "b", "c"})
	assert.Equal(t, 3, s.TotalBits())
	assert.Equal(t, 1, s.TotalBytes())

	names := make([]string, 12)
	for i := range names {
		names[i] = string(rune('a' + i))
	}
	s = ResolveImplicit(names)
	assert.Equal(t, 12, s.TotalBits())
	assert.Equal(t, 2, s.TotalBytes())
}

func TestImplicitIndexOrder(t *testing.T) {
	s := ResolveImplicit([]string{"x", "y", "z"})
	for i, name := range []string{"x", "y", "z"} {
		idx, ok := s.Index(name)
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}
}

func TestExplicitWidths(t *testing.T) {
	s, err := ResolveExplicit([]Field{
		explicit("a", 0),
		explicit("b", 10),
		explicit("c", 30),
	})
	require.NoError(t, err)
	assert.Equal(t, 31, s.TotalBits())
	assert.Equal(t, 4, s.TotalBytes())
}

func TestExplicitArrayWidth(t *testing.T) {
	fields := []Field{explicit("first", 0), explicit("middle", 3), explicit("last", 7)}

	s, err := ResolveExplicit(fields)
	require.NoError(t, err)
	assert.Equal(t, 8, s.TotalBits())

	s, err = ResolveExplicit(fields, WithTotalBits(8))
	require.NoError(t, err)
	assert.Equal(t, 8, s.TotalBits())

	s, err = ResolveExplicit([]Field{explicit("first", 0), explicit("last", 2)})
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalBits())
}

func TestExplicitEmptySchema(t *testing.T) {
	s, err := ResolveExplicit(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.TotalBits())
	// byte form floors at one byte
	assert.Equal(t, 1, s.TotalBytes())
}

func TestMissingIndex(t *testing.T) {
	_, err := ResolveExplicit([]Field{
		explicit("a", 0),
		{Name: "b"},
	})
	require.ErrorIs(t, err, ErrMissingIndex)
	assert.Contains(t, err.Error(), "b")
}

func TestIndexOutOfRange(t *testing.T) {
	_, err := ResolveExplicit([]Field{
		explicit("a", 0),
		explicit("b", 8),
	}, WithTotalBits(8))
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Contains(t, err.Error(), "b")

	_, err = ResolveExplicit([]Field{explicit("neg", -1)})
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDuplicateIndex(t *testing.T) {
	_, err := ResolveExplicit([]Field{
		explicit("a", 3),
		explicit("b", 3),
	})
	require.ErrorIs(t, err, ErrDuplicateIndex)
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "b")
}

func TestFieldsReturnsCopy(t *testing.T) {
	s := ResolveImplicit([]string{"a", "b"})
	fields := s.Fields()
	fields[0].Name = "mutated"

	idx, ok := s.Index("a")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "a", s.Fields()[0].Name)
}

func TestSparseOutOfOrderIndices(t *testing.T) {
	s, err := ResolveExplicit([]Field{
		explicit("hi", 30),
		explicit("lo", 2),
	})
	require.NoError(t, err)
	idx, ok := s.Index("lo")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	idx, ok = s.Index("hi")
	require.True(t, ok)
	assert.Equal(t, 30, idx)
	_, ok = s.Index("missing")
	assert.False(t, ok)
}
