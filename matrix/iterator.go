// SPDX-License-Identifier: MIT

// Package matrix - structural iterators (row/column cursors).
//
// A structural iterator is a forward-only cursor over one axis of a Matrix.
// Positions run 0..axisLen inclusive; axisLen is the end sentinel. Iterators
// are small values: copying one snapshots its position. They hold a
// non-owning pointer to their handle and never keep a buffer alive.
//
// Dereferencing yields the whole addressed line:
//   - RowIterator/ColumnIterator: Refs and Ptrs go through At/PtrAt and may
//     trigger copy-on-write (once per buffer version); Values copies.
//   - ConstRowIterator/ConstColumnIterator: Values only; never clones.
//
// Reshaping the handle does not update existing iterators; an index that
// no longer addresses a line dereferences to ErrOutOfRange.

package matrix

// axis selects the dimension a cursor walks.
type axis uint8

const (
	rowAxis axis = iota
	columnAxis
)

// cursor is the state shared by all four iterator kinds.
type cursor[T any] struct {
	m     *Matrix[T] // non-owning back-reference
	ax    axis       // rowAxis or columnAxis
	index int        // 0..axisLen
}

// axisLen is the end sentinel position for the cursor's axis.
func (c cursor[T]) axisLen() int {
	if c.ax == rowAxis {
		return c.m.Rows()
	}

	return c.m.Cols()
}

// lineLen is the number of elements in one addressed line.
func (c cursor[T]) lineLen() int {
	if c.ax == rowAxis {
		return c.m.Cols()
	}

	return c.m.Rows()
}

// coords maps the k-th element of the current line to (row, col).
func (c cursor[T]) coords(k int) (int, int) {
	if c.ax == rowAxis {
		return c.index, k
	}

	return k, c.index
}

// Advance moves the cursor forward by one (pre-increment). At the end
// sentinel it stays put.
func (c *cursor[T]) Advance() {
	if c.index < c.axisLen() {
		c.index++
	}
}

// Index returns the current position.
func (c cursor[T]) Index() int { return c.index }

// IsEnd reports whether the cursor is at (or past) the end sentinel.
func (c cursor[T]) IsEnd() bool { return c.index >= c.axisLen() }

// checkLine validates that the cursor addresses an existing line.
func (c cursor[T]) checkLine(method string) error {
	if c.m == nil {
		return axisErrorf(method, c.index, ErrNilMatrix)
	}
	if c.index < 0 || c.index >= c.axisLen() {
		return axisErrorf(method, c.index, ErrOutOfRange)
	}

	return nil
}

// pointers collects element pointers of the current line through access
// (At or PtrAt). The first call on a shared buffer clones it; the rest of
// the line is then read from the exclusive copy.
func (c cursor[T]) pointers(method string, access func(row, col int) (*T, error)) ([]*T, error) {
	if err := c.checkLine(method); err != nil {
		return nil, err
	}
	n := c.lineLen()
	out := make([]*T, n)
	for k := 0; k < n; k++ {
		p, err := access(c.coords(k))
		if err != nil {
			return nil, err
		}
		out[k] = p
	}

	return out, nil
}

// Values returns a copy of the current line. It never clones.
//
// Errors:
//   - ErrNilMatrix; ErrOutOfRange at the end sentinel or a stale index.
func (c cursor[T]) Values() ([]T, error) {
	if err := c.checkLine("Values"); err != nil {
		return nil, err
	}
	n := c.lineLen()
	out := make([]T, n)
	for k := 0; k < n; k++ {
		v, err := c.m.Get(c.coords(k))
		if err != nil {
			return nil, err
		}
		out[k] = v
	}

	return out, nil
}

// ---------- mutable iterators ----------

// RowIterator walks rows of a Matrix and dereferences to writable elements.
type RowIterator[T any] struct{ cursor[T] }

// ColumnIterator walks columns of a Matrix and dereferences to writable elements.
type ColumnIterator[T any] struct{ cursor[T] }

func (m *Matrix[T]) rowIterator(index int) RowIterator[T] {
	return RowIterator[T]{cursor[T]{m: m, ax: rowAxis, index: index}}
}

func (m *Matrix[T]) columnIterator(index int) ColumnIterator[T] {
	return ColumnIterator[T]{cursor[T]{m: m, ax: columnAxis, index: index}}
}

// BeginRow returns an iterator at row 0.
func (m *Matrix[T]) BeginRow() RowIterator[T] { return m.rowIterator(0) }

// EndRow returns the past-the-end row iterator (index == Rows()).
func (m *Matrix[T]) EndRow() RowIterator[T] { return m.rowIterator(m.Rows()) }

// BeginColumn returns an iterator at column 0.
func (m *Matrix[T]) BeginColumn() ColumnIterator[T] { return m.columnIterator(0) }

// EndColumn returns the past-the-end column iterator (index == Cols()).
func (m *Matrix[T]) EndColumn() ColumnIterator[T] { return m.columnIterator(m.Cols()) }

// PostAdvance moves it forward and returns its previous position (post-increment).
func (it *RowIterator[T]) PostAdvance() RowIterator[T] {
	prev := *it
	it.Advance()

	return prev
}

// Equal compares positions only; both iterators are assumed to come from
// the same Matrix.
func (it RowIterator[T]) Equal(o RowIterator[T]) bool { return it.index == o.index }

// Refs returns pointers to every element of the current row, obtained
// through At. Writing through them updates the matrix.
//
// Errors:
//   - ErrNilMatrix; ErrOutOfRange at the end sentinel or a stale index.
func (it RowIterator[T]) Refs() ([]*T, error) { return it.pointers("RowIterator.Refs", it.m.At) }

// Ptrs is Refs through PtrAt, for callers that need pointer identity.
func (it RowIterator[T]) Ptrs() ([]*T, error) { return it.pointers("RowIterator.Ptrs", it.m.PtrAt) }

// PostAdvance moves it forward and returns its previous position (post-increment).
func (it *ColumnIterator[T]) PostAdvance() ColumnIterator[T] {
	prev := *it
	it.Advance()

	return prev
}

// Equal compares positions only.
func (it ColumnIterator[T]) Equal(o ColumnIterator[T]) bool { return it.index == o.index }

// Refs returns pointers to every element of the current column (top to
// bottom), obtained through At.
func (it ColumnIterator[T]) Refs() ([]*T, error) {
	return it.pointers("ColumnIterator.Refs", it.m.At)
}

// Ptrs is Refs through PtrAt.
func (it ColumnIterator[T]) Ptrs() ([]*T, error) {
	return it.pointers("ColumnIterator.Ptrs", it.m.PtrAt)
}

// ---------- read-only iterators ----------

// ConstRowIterator walks rows and only hands out copies.
type ConstRowIterator[T any] struct{ cursor[T] }

// ConstColumnIterator walks columns and only hands out copies.
type ConstColumnIterator[T any] struct{ cursor[T] }

// BeginConstRow returns a read-only iterator at row 0.
func (m *Matrix[T]) BeginConstRow() ConstRowIterator[T] {
	return ConstRowIterator[T]{cursor[T]{m: m, ax: rowAxis}}
}

// EndConstRow returns the past-the-end read-only row iterator.
func (m *Matrix[T]) EndConstRow() ConstRowIterator[T] {
	return ConstRowIterator[T]{cursor[T]{m: m, ax: rowAxis, index: m.Rows()}}
}

// BeginConstColumn returns a read-only iterator at column 0.
func (m *Matrix[T]) BeginConstColumn() ConstColumnIterator[T] {
	return ConstColumnIterator[T]{cursor[T]{m: m, ax: columnAxis}}
}

// EndConstColumn returns the past-the-end read-only column iterator.
func (m *Matrix[T]) EndConstColumn() ConstColumnIterator[T] {
	return ConstColumnIterator[T]{cursor[T]{m: m, ax: columnAxis, index: m.Cols()}}
}

// PostAdvance moves it forward and returns its previous position.
func (it *ConstRowIterator[T]) PostAdvance() ConstRowIterator[T] {
	prev := *it
	it.Advance()

	return prev
}

// Equal compares positions only.
func (it ConstRowIterator[T]) Equal(o ConstRowIterator[T]) bool { return it.index == o.index }

// PostAdvance moves it forward and returns its previous position.
func (it *ConstColumnIterator[T]) PostAdvance() ConstColumnIterator[T] {
	prev := *it
	it.Advance()

	return prev
}

// Equal compares positions only.
func (it ConstColumnIterator[T]) Equal(o ConstColumnIterator[T]) bool { return it.index == o.index }
