// Package matrix offers a generic two-dimensional container with value
// semantics and copy-on-write sharing.
//
// The matrix package provides:
//
//   - Matrix[T]: a handle over a row-major shared buffer. Share is O(1) and
//     aliases storage; the first write through either handle (At, PtrAt, Set,
//     ReplaceRow, ReplaceColumn, or dereferencing a mutable iterator) clones
//     the buffer transparently.
//   - Structural reshaping: InsertRow, InsertColumn, EraseRow, EraseColumn.
//     Each builds a fresh buffer and only then swaps it in, so a failed call
//     leaves the matrix unchanged and other owners never see the new shape.
//   - Structural iterators: RowIterator, ColumnIterator and their read-only
//     Const variants, forward-only cursors that dereference to a whole row or
//     column.
//   - Observability: WithLogger (zap) and WithObserver (Event stream, see
//     the cowmetrics subpackage for a Prometheus collector).
//
// Lifecycle:
//
//	m, _ := matrix.New[int](3, 3) // exclusive buffer, RefCount()==1
//	c := m.Share()                // copy: RefCount()==2 on both
//	_ = c.Set(0, 0, 100)          // c clones; both back to RefCount()==1
//	d := m.Move()                 // d owns m's buffer; m gets a fresh 3×3
//	d.Release()                   // d drops its reference
//
// Go has no destructors: call Release when a handle's lifetime ends to keep
// RefCount accurate for the remaining owners. A forgotten handle only costs
// one extra clone on the next write elsewhere.
//
// Concurrency: a single handle is not safe for concurrent use. Handles that
// share a buffer may be used from different goroutines.
package matrix
