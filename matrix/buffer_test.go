// Package matrix contains white-box tests for the shared buffer.
package matrix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seqBuffer(t *testing.T, r, c int) *buffer[int] {
	t.Helper()
	b, err := newBuffer[int](r, c)
	require.NoError(t, err)
	for i := range b.data {
		b.data[i] = i + 1
	}

	return b
}

func TestNewBuffer(t *testing.T) {
	b, err := newBuffer[string](2, 3)
	require.NoError(t, err)
	require.Len(t, b.data, 6)
	require.Equal(t, int32(1), b.refCount())
	require.True(t, b.exclusive())

	_, err = newBuffer[int](-1, 0)
	require.ErrorIs(t, err, ErrInvalidDimension)
}

func TestBufferElementAt(t *testing.T) {
	b := seqBuffer(t, 2, 3)
	p, err := b.elementAt(1, 2)
	require.NoError(t, err)
	require.Equal(t, 6, *p)

	_, err = b.elementAt(2, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = b.elementAt(0, 3)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = b.valueAt(-1, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestBufferCloneIsIndependent(t *testing.T) {
	b := seqBuffer(t, 2, 2)
	b.addRef()

	c := b.clone(nil)
	require.Equal(t, int32(1), c.refCount())
	require.Equal(t, int32(2), b.refCount(), "clone leaves the source count alone")
	require.Equal(t, b.data, c.data)

	c.data[0] = 42
	require.Equal(t, 1, b.data[0])

	doubled := b.clone(func(v int) int { return v * 2 })
	require.Equal(t, []int{2, 4, 6, 8}, doubled.data)
}

func TestBufferClonePanicLeavesSourceIntact(t *testing.T) {
	b := seqBuffer(t, 2, 2)
	require.Panics(t, func() {
		b.clone(func(v int) int {
			if v == 3 {
				panic("boom")
			}
			return v
		})
	})
	require.Equal(t, []int{1, 2, 3, 4}, b.data)
	require.Equal(t, int32(1), b.refCount())
}

func TestBufferReplaceRowStrong(t *testing.T) {
	b := seqBuffer(t, 3, 2)
	before := b.data

	require.NoError(t, b.replaceRow(1, []int{30, 40}, nil))
	require.Equal(t, []int{1, 2, 30, 40, 5, 6}, b.data)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, before, "old array is never written")

	require.ErrorIs(t, b.replaceRow(0, []int{1}, nil), ErrSizeMismatch)
	require.ErrorIs(t, b.replaceRow(3, []int{1, 2}, nil), ErrOutOfRange)
}

func TestBufferReplaceRowPanicRollsBack(t *testing.T) {
	b := seqBuffer(t, 2, 2)
	require.Panics(t, func() {
		_ = b.replaceRow(0, []int{7, 8}, func(v int) int {
			if v == 8 {
				panic("boom")
			}
			return v
		})
	})
	require.Equal(t, []int{1, 2, 3, 4}, b.data)
}

func TestBufferReplaceColumnStrong(t *testing.T) {
	b := seqBuffer(t, 2, 3)
	require.NoError(t, b.replaceColumn(2, []int{0, 0}, nil))
	require.Equal(t, []int{1, 2, 0, 4, 5, 0}, b.data)

	require.ErrorIs(t, b.replaceColumn(0, []int{1, 2, 3}, nil), ErrSizeMismatch)
	require.ErrorIs(t, b.replaceColumn(-1, []int{1, 2}, nil), ErrOutOfRange)
}

func TestBufferDirectWrites(t *testing.T) {
	b := seqBuffer(t, 2, 2)
	before := b.data

	require.NoError(t, b.setRowDirect(0, []int{9, 9}, nil))
	require.NoError(t, b.setColumnDirect(1, []int{7, 7}, nil))
	require.Equal(t, []int{9, 7, 3, 7}, b.data)
	require.Same(t, &before[0], &b.data[0], "direct writes stay in the same array")

	require.ErrorIs(t, b.setRowDirect(2, []int{1, 1}, nil), ErrOutOfRange)
	require.ErrorIs(t, b.setColumnDirect(0, []int{1}, nil), ErrSizeMismatch)
}

func TestBufferRefCounting(t *testing.T) {
	b := seqBuffer(t, 1, 2)
	b.addRef()
	b.addRef()
	require.Equal(t, int32(3), b.refCount())
	require.False(t, b.exclusive())

	require.Equal(t, int32(2), b.removeRef())
	require.Equal(t, int32(1), b.removeRef())
	require.True(t, b.exclusive())
	require.NotNil(t, b.data)

	require.Equal(t, int32(0), b.removeRef())
	require.Nil(t, b.data, "last release drops storage")
}
