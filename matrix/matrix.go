// SPDX-License-Identifier: MIT

// Package matrix - Matrix handle: ownership and the copy-on-write policy.
//
// Purpose:
//   - Give value semantics to a row-major buffer: Share is O(1) and aliases
//     storage until either handle writes.
//   - Every mutating entry point first makes the buffer exclusive (clones it
//     when refs>1), then writes.
//   - Public surface never panics on user errors; it returns sentinels from errors.go.
//
// Lifecycle mapping:
//   - New/FromRows construct; Share copies; Move steals; Release destroys.
//   - Assign is copy-assignment; MoveFrom is move-assignment; Swap exchanges.
//
// Concurrency:
//   - A handle is confined to one goroutine. Handles sharing a buffer may
//     live in different goroutines: the refcount is atomic and a handle
//     writes in place only after observing refs==1.
//
// Complexity quicksheet:
//   - Share/Move/Swap/Rows/Cols/RefCount/Get: O(1).
//   - At/PtrAt/Set: O(1) when exclusive, O(r*c) on the first write after a Share.

package matrix

import (
	"fmt"
	"strings"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// Matrix is a generic two-dimensional container with copy-on-write sharing.
// The zero value is not usable; construct with New or FromRows.
type Matrix[T any] struct {
	buf    *buffer[T] // owning reference; never nil for a constructed handle
	opts   Options    // resolved configuration (logger, observer)
	cloner func(T) T  // typed element cloner from opts, nil for assignment
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Matrix[int])(nil)

// New creates a rows×cols matrix of zero-valued elements in an exclusive buffer.
// MAIN DESCRIPTION:
//   - Public constructor; zero-sized shapes (0×N, N×0) are legal.
//
// Implementation:
//   - Stage 1: resolve options and narrow the element cloner to T.
//   - Stage 2: allocate the buffer (refs=1).
//
// Errors:
//   - ErrInvalidDimension when rows<0 or cols<0.
//   - ErrBadOption when WithElementCloner was built for another element type.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func New[T any](rows, cols int, opts ...Option) (*Matrix[T], error) {
	o := gatherOptions(opts...)
	fn, err := resolveCloner[T](o)
	if err != nil {
		return nil, opErrorf(ctxNew, err)
	}
	b, err := newBuffer[T](rows, cols)
	if err != nil {
		return nil, matrixErrorf(ctxNew, rows, cols, err)
	}

	return &Matrix[T]{buf: b, opts: o, cloner: fn}, nil
}

// FromRows builds a matrix from a slice of equally long rows.
// The input is copied; later changes to rows do not affect the matrix.
// An empty input yields a 0×0 matrix.
//
// Errors:
//   - ErrSizeMismatch when rows are ragged (wrapped with the offending row index).
//   - ErrBadOption as in New.
func FromRows[T any](rows [][]T, opts ...Option) (*Matrix[T], error) {
	r, c := len(rows), 0
	if r > 0 {
		c = len(rows[0])
	}
	m, err := New[T](r, c, opts...)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		// The buffer is not visible to anyone yet: direct writes are fine.
		if err = m.buf.setRowDirect(i, row, m.cloner); err != nil {
			return nil, axisErrorf(ctxFromRows, i, err)
		}
	}

	return m, nil
}

// Share returns a new handle aliasing m's buffer (copy construction).
// Both handles report RefCount()+1 until one of them writes.
// Returns nil for a nil receiver.
// Complexity: O(1).
func (m *Matrix[T]) Share() *Matrix[T] {
	if m == nil {
		return nil
	}
	m.buf.addRef()

	return &Matrix[T]{buf: m.buf, opts: m.opts, cloner: m.cloner}
}

// Move transfers m's buffer to a new handle (move construction).
// m is rebound to a fresh zero-valued buffer of the same dimensions, so it
// stays usable. No refcount changes for the transferred buffer.
// Returns nil for a nil receiver.
// Complexity: O(rows*cols) for the replacement buffer.
func (m *Matrix[T]) Move() *Matrix[T] {
	if m == nil {
		return nil
	}
	out := &Matrix[T]{buf: m.buf, opts: m.opts, cloner: m.cloner}
	m.buf = m.freshLike(out.buf)

	return out
}

// Release gives up m's ownership of its buffer (destruction).
// If m was the sole owner the storage is dropped; otherwise the remaining
// owners keep it intact. m is left as an exclusive 0×0 matrix. Calling
// Release more than once is harmless.
func (m *Matrix[T]) Release() {
	if m == nil {
		return
	}
	old := m.buf
	m.buf = m.freshDims(0, 0)
	releaseBuffer(m.opts, old)
}

// Assign makes m share src's buffer (copy assignment).
// The source buffer gains a reference before m's previous buffer is
// released, so m.Assign(m) is a no-op. m adopts src's options.
//
// Errors:
//   - ErrNilMatrix when m or src is nil.
func (m *Matrix[T]) Assign(src *Matrix[T]) error {
	if m == nil || src == nil {
		return opErrorf(ctxAssign, ErrNilMatrix)
	}
	src.buf.addRef()
	old, oldOpts := m.buf, m.opts
	m.buf, m.opts, m.cloner = src.buf, src.opts, src.cloner
	releaseBuffer(oldOpts, old)

	return nil
}

// MoveFrom releases m's buffer and takes ownership of src's (move assignment).
// src is rebound to a fresh zero-valued buffer of its former dimensions.
// m.MoveFrom(m) is a no-op. m adopts src's options.
//
// Errors:
//   - ErrNilMatrix when m or src is nil.
func (m *Matrix[T]) MoveFrom(src *Matrix[T]) error {
	if m == nil || src == nil {
		return opErrorf(ctxMoveFrom, ErrNilMatrix)
	}
	if m == src {
		return nil
	}
	old, oldOpts := m.buf, m.opts
	m.buf, m.opts, m.cloner = src.buf, src.opts, src.cloner
	src.buf = src.freshLike(m.buf)
	releaseBuffer(oldOpts, old)

	return nil
}

// Swap exchanges the contents of m and other in O(1).
// Buffers (and options) trade places; no refcount changes.
//
// Errors:
//   - ErrNilMatrix when m or other is nil.
func (m *Matrix[T]) Swap(other *Matrix[T]) error {
	if m == nil || other == nil {
		return opErrorf(ctxSwap, ErrNilMatrix)
	}
	m.buf, other.buf = other.buf, m.buf
	m.opts, other.opts = other.opts, m.opts
	m.cloner, other.cloner = other.cloner, m.cloner

	return nil
}

// Rows returns the row count (0 for a nil receiver). No side effects.
// Complexity: O(1).
func (m *Matrix[T]) Rows() int {
	if m == nil {
		return 0
	}

	return m.buf.rows
}

// Cols returns the column count (0 for a nil receiver). No side effects.
// Complexity: O(1).
func (m *Matrix[T]) Cols() int {
	if m == nil {
		return 0
	}

	return m.buf.cols
}

// Shape packs Rows() and Cols() into a single call.
func (m *Matrix[T]) Shape() (rows, cols int) { return m.Rows(), m.Cols() }

// RefCount reports how many handles currently own m's buffer (0 for nil).
func (m *Matrix[T]) RefCount() int {
	if m == nil {
		return 0
	}

	return int(m.buf.refCount())
}

// SharesStorage reports whether m and other currently alias one buffer.
func (m *Matrix[T]) SharesStorage(other *Matrix[T]) bool {
	if m == nil || other == nil {
		return false
	}

	return m.buf == other.buf
}

// At returns a pointer to the element at (row, col) for reading or writing.
// MAIN DESCRIPTION:
//   - The copy-on-write trigger.
//
// Implementation:
//   - Stage 1: bounds-check (an out-of-range call never clones).
//   - Stage 2: make the buffer exclusive (clone if shared).
//   - Stage 3: return the address inside the exclusive buffer.
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange.
//
// Complexity:
//   - Time O(1), or O(rows*cols) when Stage 2 clones.
//
// Notes:
//   - The pointer stays valid until the next reshape or Release of m. Sharing
//     m afterwards and writing through an old pointer bypasses copy-on-write;
//     re-fetch pointers after Share.
func (m *Matrix[T]) At(row, col int) (*T, error) {
	return m.elementFor(ctxAt, row, col)
}

// PtrAt has the same contract as At, including the copy-on-write trigger:
// the returned pointer is assumed writable even when the caller only reads.
// Use Get for reads that must not clone.
func (m *Matrix[T]) PtrAt(row, col int) (*T, error) {
	return m.elementFor(ctxPtrAt, row, col)
}

// elementFor implements At/PtrAt under the given error tag.
func (m *Matrix[T]) elementFor(method string, row, col int) (*T, error) {
	if m == nil {
		return nil, matrixErrorf(method, row, col, ErrNilMatrix)
	}
	if _, err := m.buf.offset(row, col); err != nil {
		return nil, matrixErrorf(method, row, col, err)
	}
	m.ensureExclusive()
	p, err := m.buf.elementAt(row, col)
	if err != nil {
		return nil, matrixErrorf(method, row, col, err)
	}

	return p, nil
}

// Get returns a copy of the element at (row, col). It never clones.
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange.
func (m *Matrix[T]) Get(row, col int) (T, error) {
	var zero T
	if m == nil {
		return zero, matrixErrorf(ctxGet, row, col, ErrNilMatrix)
	}
	v, err := m.buf.valueAt(row, col)
	if err != nil {
		return zero, matrixErrorf(ctxGet, row, col, err)
	}

	return v, nil
}

// Set stores v at (row, col), cloning a shared buffer first.
// v goes through the element cloner when one is configured.
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange.
func (m *Matrix[T]) Set(row, col int, v T) error {
	p, err := m.elementFor(ctxSet, row, col)
	if err != nil {
		return err
	}
	*p = copyCell(m.cloner, v)

	return nil
}

// ReplaceRow overwrites row index with values, all-or-nothing.
// MAIN DESCRIPTION:
//   - Row replacement through the copy-on-write policy.
//
// Implementation:
//   - Stage 1: validate size, then index.
//   - Stage 2a (exclusive): strong in-buffer replace (new array, then swap).
//   - Stage 2b (shared): clone, write the row directly into the clone (not
//     visible to anyone yet), then rebind and release the old buffer.
//
// Errors:
//   - ErrNilMatrix; ErrSizeMismatch when len(values) != Cols(); ErrOutOfRange.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func (m *Matrix[T]) ReplaceRow(index int, values []T) error {
	if m == nil {
		return axisErrorf(ctxReplaceRow, index, ErrNilMatrix)
	}
	if err := m.buf.validateRow(index, values); err != nil {
		return axisErrorf(ctxReplaceRow, index, err)
	}
	if m.buf.exclusive() {
		if err := m.buf.replaceRow(index, values, m.cloner); err != nil {
			return axisErrorf(ctxReplaceRow, index, err)
		}
	} else {
		nb := m.buf.clone(m.cloner)
		if err := nb.setRowDirect(index, values, m.cloner); err != nil {
			return axisErrorf(ctxReplaceRow, index, err)
		}
		m.rebind(nb)
		m.emit(Event{Op: OpClone, Rows: nb.rows, Cols: nb.cols, Index: -1, Cells: len(nb.data)})
	}
	m.emit(Event{Op: OpReplaceRow, Rows: m.buf.rows, Cols: m.buf.cols, Index: index, Cells: len(m.buf.data)})

	return nil
}

// ReplaceColumn is the column-wise twin of ReplaceRow.
//
// Errors:
//   - ErrNilMatrix; ErrSizeMismatch when len(values) != Rows(); ErrOutOfRange.
func (m *Matrix[T]) ReplaceColumn(index int, values []T) error {
	if m == nil {
		return axisErrorf(ctxReplaceColumn, index, ErrNilMatrix)
	}
	if err := m.buf.validateColumn(index, values); err != nil {
		return axisErrorf(ctxReplaceColumn, index, err)
	}
	if m.buf.exclusive() {
		if err := m.buf.replaceColumn(index, values, m.cloner); err != nil {
			return axisErrorf(ctxReplaceColumn, index, err)
		}
	} else {
		nb := m.buf.clone(m.cloner)
		if err := nb.setColumnDirect(index, values, m.cloner); err != nil {
			return axisErrorf(ctxReplaceColumn, index, err)
		}
		m.rebind(nb)
		m.emit(Event{Op: OpClone, Rows: nb.rows, Cols: nb.cols, Index: -1, Cells: len(nb.data)})
	}
	m.emit(Event{Op: OpReplaceColumn, Rows: m.buf.rows, Cols: m.buf.cols, Index: index, Cells: len(m.buf.data)})

	return nil
}

// ToRows returns a deep snapshot of the contents as a slice of rows.
// It reads the current buffer without cloning it.
func (m *Matrix[T]) ToRows() [][]T {
	if m == nil {
		return nil
	}
	out := make([][]T, m.buf.rows)
	for i := range out {
		out[i] = make([]T, m.buf.cols)
		copy(out[i], m.buf.row(i))
	}

	return out
}

// String renders rows as lines with comma-separated values ("[1, 2]\n").
// Intended for diagnostics; not for hot paths.
func (m *Matrix[T]) String() string {
	if m == nil {
		return "<nil>"
	}
	var b strings.Builder
	for i := 0; i < m.buf.rows; i++ {
		b.WriteString(_fmtRowOpen)
		for j, v := range m.buf.row(i) {
			if j > 0 {
				b.WriteString(_fmtSep)
			}
			fmt.Fprint(&b, v)
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Equal reports whether a and b have the same shape and elements.
// Two nil matrices are equal; a nil and a non-nil one are not.
func Equal[T comparable](a, b *Matrix[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.buf.rows != b.buf.rows || a.buf.cols != b.buf.cols {
		return false
	}
	if a.buf == b.buf {
		return true
	}
	for i := range a.buf.data {
		if a.buf.data[i] != b.buf.data[i] {
			return false
		}
	}

	return true
}

// ---------- ownership internals ----------

// ensureExclusive clones a shared buffer and rebinds m to the clone.
// Two handles racing here may both clone; neither under-counts.
func (m *Matrix[T]) ensureExclusive() {
	if m.buf.exclusive() {
		return
	}
	nb := m.buf.clone(m.cloner)
	m.rebind(nb)
	m.emit(Event{Op: OpClone, Rows: nb.rows, Cols: nb.cols, Index: -1, Cells: len(nb.data)})
}

// rebind points m at nb and releases the previous buffer.
func (m *Matrix[T]) rebind(nb *buffer[T]) {
	old := m.buf
	m.buf = nb
	releaseBuffer(m.opts, old)
}

// releaseBuffer drops one reference to b and reports the last release
// through the configuration of the handle that owned it.
func releaseBuffer[T any](o Options, b *buffer[T]) {
	rows, cols := b.rows, b.cols
	if b.removeRef() == 0 {
		emitTo(o, Event{Op: OpRelease, Rows: rows, Cols: cols, Index: -1})
	}
}

// freshLike allocates an exclusive zero-valued buffer shaped like b.
func (m *Matrix[T]) freshLike(b *buffer[T]) *buffer[T] {
	return m.freshDims(b.rows, b.cols)
}

// freshDims allocates an exclusive zero-valued buffer; dims come from an
// existing buffer and are never negative.
func (m *Matrix[T]) freshDims(rows, cols int) *buffer[T] {
	nb, err := newBuffer[T](rows, cols)
	if err != nil {
		panic("matrix: internal: " + err.Error()) // unreachable: dims >= 0
	}

	return nb
}
