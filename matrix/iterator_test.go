// Package matrix_test contains unit tests for the structural iterators.
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/cowmatrix/matrix"
	"github.com/stretchr/testify/require"
)

// TestRowIteratorRefs walks rows via Refs and writes through them.
func TestRowIteratorRefs(t *testing.T) {
	m := Seq3x3(t)
	it := m.BeginRow()

	refs, err := it.Refs()
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, deref(refs))
	for k, p := range refs {
		*p = 11 + k
	}
	refs, err = it.Refs()
	require.NoError(t, err)
	require.Equal(t, []int{11, 12, 13}, deref(refs))

	want := [][]int{{4, 5, 6}, {7, 8, 9}}
	for _, w := range want {
		it.Advance()
		refs, err = it.Refs()
		require.NoError(t, err)
		require.Equal(t, w, deref(refs))
	}
	it.Advance()
	require.True(t, it.Equal(m.EndRow()))
	require.True(t, it.IsEnd())
}

// TestRowIteratorPtrs mirrors the pointer-view dereference.
func TestRowIteratorPtrs(t *testing.T) {
	m := Seq3x3(t)
	it := m.BeginRow()

	ptrs, err := it.Ptrs()
	require.NoError(t, err)
	require.Len(t, ptrs, 3)
	*ptrs[0] = 11
	v, _ := m.Get(0, 0)
	require.Equal(t, 11, v)

	// Pointer identity matches At on an exclusive buffer.
	p, _ := m.At(0, 2)
	require.Same(t, p, ptrs[2])
}

// TestColumnIteratorRefs walks columns top to bottom.
func TestColumnIteratorRefs(t *testing.T) {
	m := Seq3x3(t)
	it := m.BeginColumn()

	refs, err := it.Refs()
	require.NoError(t, err)
	require.Equal(t, []int{1, 4, 7}, deref(refs))
	for k, p := range refs {
		*p = 11 + k
	}
	vals, err := it.Values()
	require.NoError(t, err)
	require.Equal(t, []int{11, 12, 13}, vals)

	for _, w := range [][]int{{2, 5, 8}, {3, 6, 9}} {
		it.Advance()
		ptrs, err := it.Ptrs()
		require.NoError(t, err)
		require.Equal(t, w, deref(ptrs))
	}
	it.Advance()
	require.True(t, it.Equal(m.EndColumn()))
}

// TestConstIterators walk both axes without cloning a shared buffer.
func TestConstIterators(t *testing.T) {
	m := Seq3x3(t)
	c := m.Share()

	var rows [][]int
	for it := c.BeginConstRow(); !it.Equal(c.EndConstRow()); it.Advance() {
		v, err := it.Values()
		require.NoError(t, err)
		rows = append(rows, v)
	}
	require.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, rows)

	var cols [][]int
	for it := c.BeginConstColumn(); !it.IsEnd(); it.Advance() {
		v, err := it.Values()
		require.NoError(t, err)
		cols = append(cols, v)
	}
	require.Equal(t, [][]int{{1, 4, 7}, {2, 5, 8}, {3, 6, 9}}, cols)

	require.Equal(t, 2, m.RefCount())
	require.True(t, c.SharesStorage(m))
}

// TestIteratorDereferenceClonesOnce ensures a shared buffer is cloned exactly
// once per dereference, not once per element.
func TestIteratorDereferenceClonesOnce(t *testing.T) {
	var log eventLog
	m := Seq3x3(t, matrix.WithObserver(&log))
	c := m.Share()

	refs, err := c.BeginRow().Refs()
	require.NoError(t, err)
	require.Equal(t, 1, log.count(matrix.OpClone))
	require.Equal(t, 1, c.RefCount())
	require.Equal(t, 1, m.RefCount())

	*refs[0] = 100
	v, _ := m.Get(0, 0)
	require.Equal(t, 1, v)

	log.reset()
	_, err = c.BeginColumn().Refs()
	require.NoError(t, err)
	require.Zero(t, log.count(matrix.OpClone), "already exclusive")
}

// TestPostAdvance returns the prior position.
func TestPostAdvance(t *testing.T) {
	m := Seq3x3(t)

	it := m.BeginRow()
	prev := it.PostAdvance()
	require.Equal(t, 0, prev.Index())
	require.Equal(t, 1, it.Index())

	col := m.BeginConstColumn()
	cprev := col.PostAdvance()
	require.Equal(t, 0, cprev.Index())
	require.Equal(t, 1, col.Index())
}

// TestIteratorEndIsTerminal checks Advance saturates and the sentinel
// cannot be dereferenced.
func TestIteratorEndIsTerminal(t *testing.T) {
	m := Seq3x3(t)
	it := m.EndRow()
	it.Advance()
	require.Equal(t, 3, it.Index())

	_, err := it.Refs()
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = it.Values()
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.EndConstColumn().Values()
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	// Empty matrices start at the end.
	e := MustMatrix[int](t, 0, 0)
	require.True(t, e.BeginRow().Equal(e.EndRow()))
	require.True(t, e.BeginColumn().IsEnd())
}

// TestIteratorSnapshotsAreValues ensures copying an iterator freezes its position.
func TestIteratorSnapshotsAreValues(t *testing.T) {
	m := Seq3x3(t)
	a := m.BeginRow()
	b := a
	b.Advance()
	require.Equal(t, 0, a.Index())
	require.Equal(t, 1, b.Index())
	require.False(t, a.Equal(b))
}
