// Package cowmatrix is a generic, copy-on-write two-dimensional matrix for Go.
//
// Handles are cheap to share: copies alias one buffer and the first write
// through a shared handle clones it, so every handle keeps value semantics.
//
// Layout:
//
//	matrix/            Matrix[T], row/column iterators, options, events
//	matrix/cowmetrics/ Prometheus collector for matrix storage events
//	cmd/cowmatrix/     command-line demo of sharing, cloning and reshaping
//
// Quick ASCII example:
//
//	a ──┐
//	    ├──► [1 2 3 | 4 5 6 | 7 8 9]   refs=2
//	b ──┘
//
//	b.Set(0, 0, 100)
//
//	a ────► [1 2 3 | 4 5 6 | 7 8 9]   refs=1
//	b ────► [100 2 3 | 4 5 6 | 7 8 9] refs=1
//
//	go get github.com/katalvlaran/cowmatrix/matrix
package cowmatrix
