// SPDX-License-Identifier: MIT

// Package matrix - shared buffer (row-major storage + reference count).
//
// Purpose:
//   - Own the flat row-major element array with the explicit index formula i*cols + j.
//   - Count the handles that currently point at it (refs).
//   - Provide bounds-checked element access and row/column replacement.
//
// The buffer knows nothing about sharing policy beyond counting: deciding
// when to clone is the handle's job (matrix.go). A buffer never leaves the
// package.
//
// Complexity quicksheet:
//   - newBuffer: O(r*c); elementAt: O(1); clone: O(r*c);
//     replaceRow/replaceColumn: O(r*c) (strong) or O(c)/O(r) (direct).

package matrix

import "sync/atomic"

// buffer is the shared storage behind one or more Matrix handles.
//   - rows,cols hold dimensions (>=0).
//   - data is a flat slice of length rows*cols in row-major order.
//   - refs counts owning handles; it is atomic so that handles sharing one
//     buffer may live in different goroutines.
type buffer[T any] struct {
	rows, cols int          // dimensions (>=0)
	data       []T          // contiguous row-major storage (len == rows*cols)
	refs       atomic.Int32 // owning handles (>=1 while owned)
}

// newBuffer allocates a rows×cols buffer of zero-valued elements with refs=1.
// MAIN DESCRIPTION:
//   - Single allocation point for fresh storage (constructors, clone, reshape).
//
// Implementation:
//   - Stage 1: reject negative dimensions.
//   - Stage 2: allocate the flat slice; make() zero-fills it.
//
// Errors:
//   - ErrInvalidDimension when rows<0 or cols<0.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func newBuffer[T any](rows, cols int) (*buffer[T], error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimension
	}
	b := &buffer[T]{
		rows: rows,
		cols: cols,
		data: make([]T, rows*cols),
	}
	b.refs.Store(1)

	return b, nil
}

// copyCell copies one element into storage, deep when a cloner is configured.
func copyCell[T any](fn func(T) T, v T) T {
	if fn == nil {
		return v
	}

	return fn(v)
}

// clone returns an independent buffer with identical dimensions and contents.
// MAIN DESCRIPTION:
//   - The copy half of copy-on-write.
//
// Implementation:
//   - Stage 1: allocate a fresh slice of the same length.
//   - Stage 2: copy every element by value (or through fn).
//   - Stage 3: wrap it into a new buffer with refs=1.
//
// Behavior highlights:
//   - The source refcount is not touched; the caller releases it.
//   - The new buffer is only reachable after Stage 3, so a panic inside fn
//     leaves nothing half-built behind.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func (b *buffer[T]) clone(fn func(T) T) *buffer[T] {
	data := make([]T, len(b.data))
	if fn == nil {
		copy(data, b.data)
	} else {
		for i := range b.data {
			data[i] = fn(b.data[i])
		}
	}
	nb := &buffer[T]{rows: b.rows, cols: b.cols, data: data}
	nb.refs.Store(1)

	return nb
}

// offset computes the row-major offset of (row, col) or returns ErrOutOfRange.
func (b *buffer[T]) offset(row, col int) (int, error) {
	if row < 0 || row >= b.rows {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= b.cols {
		return 0, ErrOutOfRange
	}

	return row*b.cols + col, nil
}

// elementAt returns a pointer to the stored element at (row, col).
// Complexity: O(1).
func (b *buffer[T]) elementAt(row, col int) (*T, error) {
	off, err := b.offset(row, col)
	if err != nil {
		return nil, err
	}

	return &b.data[off], nil
}

// valueAt returns a copy of the element at (row, col).
// Complexity: O(1).
func (b *buffer[T]) valueAt(row, col int) (T, error) {
	var zero T
	off, err := b.offset(row, col)
	if err != nil {
		return zero, err
	}

	return b.data[off], nil
}

// row returns the live sub-slice backing row i. Callers must have checked i.
func (b *buffer[T]) row(i int) []T {
	return b.data[i*b.cols : (i+1)*b.cols]
}

// validateRow checks a row replacement request: size first, then index.
func (b *buffer[T]) validateRow(index int, values []T) error {
	if len(values) != b.cols {
		return ErrSizeMismatch
	}
	if index < 0 || index >= b.rows {
		return ErrOutOfRange
	}

	return nil
}

// validateColumn checks a column replacement request: size first, then index.
func (b *buffer[T]) validateColumn(index int, values []T) error {
	if len(values) != b.rows {
		return ErrSizeMismatch
	}
	if index < 0 || index >= b.cols {
		return ErrOutOfRange
	}

	return nil
}

// replaceRow overwrites row index with values, all-or-nothing.
// MAIN DESCRIPTION:
//   - Strong variant: the buffer is either fully updated or left as it was.
//
// Implementation:
//   - Stage 1: validate size and index.
//   - Stage 2: build a complete new backing array (unaffected cells copied,
//     target row written from values).
//   - Stage 3: swap the new array in.
//
// Errors:
//   - ErrSizeMismatch when len(values) != cols; ErrOutOfRange for a bad index.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
//
// Notes:
//   - Unaffected cells are moved, not cloned: the old array is dropped by
//     Stage 3 and never observed again.
func (b *buffer[T]) replaceRow(index int, values []T, fn func(T) T) error {
	if err := b.validateRow(index, values); err != nil {
		return err
	}
	data := make([]T, len(b.data))
	copy(data, b.data)
	base := index * b.cols
	for j := 0; j < b.cols; j++ {
		data[base+j] = copyCell(fn, values[j])
	}
	b.data = data // commit point

	return nil
}

// replaceColumn is the column-wise twin of replaceRow (strong variant).
// Complexity: Time O(rows*cols), Space O(rows*cols).
func (b *buffer[T]) replaceColumn(index int, values []T, fn func(T) T) error {
	if err := b.validateColumn(index, values); err != nil {
		return err
	}
	data := make([]T, len(b.data))
	copy(data, b.data)
	for i := 0; i < b.rows; i++ {
		data[i*b.cols+index] = copyCell(fn, values[i])
	}
	b.data = data // commit point

	return nil
}

// setRowDirect writes values into row index in place.
// Direct variant: a panic in fn may leave the row partially written, so it
// is only used on buffers that no other handle can see yet.
// Complexity: Time O(cols), Space O(1).
func (b *buffer[T]) setRowDirect(index int, values []T, fn func(T) T) error {
	if err := b.validateRow(index, values); err != nil {
		return err
	}
	dst := b.row(index)
	for j := range dst {
		dst[j] = copyCell(fn, values[j])
	}

	return nil
}

// setColumnDirect writes values into column index in place (direct variant).
// Complexity: Time O(rows), Space O(1).
func (b *buffer[T]) setColumnDirect(index int, values []T, fn func(T) T) error {
	if err := b.validateColumn(index, values); err != nil {
		return err
	}
	for i := 0; i < b.rows; i++ {
		b.data[i*b.cols+index] = copyCell(fn, values[i])
	}

	return nil
}

// addRef registers one more owning handle.
func (b *buffer[T]) addRef() { b.refs.Add(1) }

// removeRef drops one owning handle and returns the remaining count.
// When it reaches zero the storage is cleared so the GC can reclaim
// anything the elements point at.
func (b *buffer[T]) removeRef() int32 {
	n := b.refs.Add(-1)
	if n == 0 {
		clear(b.data)
		b.data = nil
	}

	return n
}

// refCount reports the current number of owning handles.
func (b *buffer[T]) refCount() int32 { return b.refs.Load() }

// exclusive reports whether exactly one handle owns the buffer.
func (b *buffer[T]) exclusive() bool { return b.refs.Load() == 1 }
