// SPDX-License-Identifier: MIT

// Package matrix - structural reshaping (row/column insertion and erasure).
//
// Every reshape allocates a fresh buffer of the new dimensions, fills it
// completely with direct writes (it is not visible to anyone yet), and only
// then rebinds the handle. An error at any point leaves the handle exactly
// as it was. The old buffer is released with the same refcount rule as
// Release: other owners keep seeing the old shape and contents.
//
// Complexity quicksheet:
//   - InsertRow/InsertColumn/EraseRow/EraseColumn: Time O(r*c), Space O(r*c).

package matrix

// InsertRow inserts values as a new row at index; rows at or past index
// move down by one.
// MAIN DESCRIPTION:
//   - Grows the matrix by exactly one row: (r+1)×c.
//
// Implementation:
//   - Stage 1: validate len(values)==Cols(), then 0<=index<=Rows().
//   - Stage 2: allocate (r+1)×c; copy source row dst (dst<index) or dst-1
//     (dst>index); write values at index.
//   - Stage 3: rebind and release the old buffer.
//
// Errors:
//   - ErrNilMatrix; ErrSizeMismatch; ErrOutOfRange when index<0 or index>Rows().
//
// Notes:
//   - index==Rows() appends.
func (m *Matrix[T]) InsertRow(values []T, index int) error {
	if m == nil {
		return axisErrorf(ctxInsertRow, index, ErrNilMatrix)
	}
	src := m.buf
	if len(values) != src.cols {
		return axisErrorf(ctxInsertRow, index, ErrSizeMismatch)
	}
	if index < 0 || index > src.rows {
		return axisErrorf(ctxInsertRow, index, ErrOutOfRange)
	}

	nb, err := newBuffer[T](src.rows+1, src.cols)
	if err != nil {
		return axisErrorf(ctxInsertRow, index, err)
	}
	offset := 0 // source rows past the insertion point are sampled one lower
	for dst := 0; dst < nb.rows; dst++ {
		if dst == index {
			err = nb.setRowDirect(dst, values, m.cloner)
			offset = -1
		} else {
			err = nb.setRowDirect(dst, src.row(dst+offset), m.cloner)
		}
		if err != nil {
			return axisErrorf(ctxInsertRow, index, err)
		}
	}

	m.rebind(nb)
	m.emit(Event{Op: OpInsertRow, Rows: nb.rows, Cols: nb.cols, Index: index, Cells: len(nb.data)})

	return nil
}

// InsertColumn inserts values as a new column at index; columns at or past
// index move right by one. The result is r×(c+1).
//
// Errors:
//   - ErrNilMatrix; ErrSizeMismatch when len(values)!=Rows();
//     ErrOutOfRange when index<0 or index>Cols().
func (m *Matrix[T]) InsertColumn(values []T, index int) error {
	if m == nil {
		return axisErrorf(ctxInsertColumn, index, ErrNilMatrix)
	}
	src := m.buf
	if len(values) != src.rows {
		return axisErrorf(ctxInsertColumn, index, ErrSizeMismatch)
	}
	if index < 0 || index > src.cols {
		return axisErrorf(ctxInsertColumn, index, ErrOutOfRange)
	}

	nb, err := newBuffer[T](src.rows, src.cols+1)
	if err != nil {
		return axisErrorf(ctxInsertColumn, index, err)
	}
	var i, dst, from int
	for i = 0; i < src.rows; i++ {
		row := src.row(i)
		out := nb.row(i)
		from = 0
		for dst = 0; dst < nb.cols; dst++ {
			if dst == index {
				out[dst] = copyCell(m.cloner, values[i])
				continue
			}
			out[dst] = copyCell(m.cloner, row[from])
			from++
		}
	}

	m.rebind(nb)
	m.emit(Event{Op: OpInsertColumn, Rows: nb.rows, Cols: nb.cols, Index: index, Cells: len(nb.data)})

	return nil
}

// EraseRow removes the row it addresses and returns an iterator to the row
// that now occupies that position (EndRow() when the last row was erased).
// MAIN DESCRIPTION:
//   - Shrinks the matrix by exactly one row: (r-1)×c.
//
// Implementation:
//   - Stage 1: check the iterator belongs to m and 0<=index<Rows().
//   - Stage 2: allocate (r-1)×c; walk source rows in order, skip index,
//     write the rest with a -1 offset past it.
//   - Stage 3: rebind and release the old buffer.
//
// Errors:
//   - ErrNilMatrix; ErrIteratorMismatch; ErrOutOfRange.
func (m *Matrix[T]) EraseRow(it RowIterator[T]) (RowIterator[T], error) {
	if m == nil {
		return it, axisErrorf(ctxEraseRow, it.index, ErrNilMatrix)
	}
	if it.m != m {
		return it, axisErrorf(ctxEraseRow, it.index, ErrIteratorMismatch)
	}
	src := m.buf
	index := it.index
	if index < 0 || index >= src.rows {
		return it, axisErrorf(ctxEraseRow, index, ErrOutOfRange)
	}

	nb, err := newBuffer[T](src.rows-1, src.cols)
	if err != nil {
		return it, axisErrorf(ctxEraseRow, index, err)
	}
	dst := 0
	for i := 0; i < src.rows; i++ {
		if i == index {
			continue
		}
		if err = nb.setRowDirect(dst, src.row(i), m.cloner); err != nil {
			return it, axisErrorf(ctxEraseRow, index, err)
		}
		dst++
	}

	m.rebind(nb)
	m.emit(Event{Op: OpEraseRow, Rows: nb.rows, Cols: nb.cols, Index: index, Cells: len(nb.data)})

	return m.rowIterator(index), nil
}

// EraseColumn removes the column it addresses and returns an iterator to the
// column that now occupies that position (EndColumn() when the last column
// was erased). The result is r×(c-1).
//
// Errors:
//   - ErrNilMatrix; ErrIteratorMismatch; ErrOutOfRange.
func (m *Matrix[T]) EraseColumn(it ColumnIterator[T]) (ColumnIterator[T], error) {
	if m == nil {
		return it, axisErrorf(ctxEraseColumn, it.index, ErrNilMatrix)
	}
	if it.m != m {
		return it, axisErrorf(ctxEraseColumn, it.index, ErrIteratorMismatch)
	}
	src := m.buf
	index := it.index
	if index < 0 || index >= src.cols {
		return it, axisErrorf(ctxEraseColumn, index, ErrOutOfRange)
	}

	nb, err := newBuffer[T](src.rows, src.cols-1)
	if err != nil {
		return it, axisErrorf(ctxEraseColumn, index, err)
	}
	var i, j, dst int
	for i = 0; i < src.rows; i++ {
		row := src.row(i)
		out := nb.row(i)
		dst = 0
		for j = 0; j < src.cols; j++ {
			if j == index {
				continue
			}
			out[dst] = copyCell(m.cloner, row[j])
			dst++
		}
	}

	m.rebind(nb)
	m.emit(Event{Op: OpEraseColumn, Rows: nb.rows, Cols: nb.cols, Index: index, Cells: len(nb.data)})

	return m.columnIterator(index), nil
}
