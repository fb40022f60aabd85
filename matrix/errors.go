// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Every public operation returns one of these (possibly wrapped with
// call-site context) and tests MUST check them via errors.Is. No operation
// panics on user-triggered error conditions; option constructors panic on
// programmer errors only.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Public methods wrap the sentinel with their name
// and coordinates ("Matrix.At(3,0): matrix: index out of range"); callers
// still match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil receiver -> iterator ownership -> size mismatch -> index range.

var (
	// ErrOutOfRange indicates that a row/column index or an iterator position
	// is outside the valid bounds of the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrSizeMismatch indicates that a supplied row or column sequence does
	// not match the length of the matrix's other dimension.
	ErrSizeMismatch = errors.New("matrix: size mismatch")

	// ErrInvalidDimension is returned when a requested row or column count is negative.
	ErrInvalidDimension = errors.New("matrix: dimensions must be >= 0")

	// ErrNilMatrix indicates that a nil *Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrIteratorMismatch indicates that an iterator created by one handle was
	// passed to another handle's EraseRow/EraseColumn.
	ErrIteratorMismatch = errors.New("matrix: iterator belongs to another matrix")

	// ErrBadOption signals an option that cannot apply to the element type,
	// e.g. an element cloner built for a different T.
	ErrBadOption = errors.New("matrix: option does not match element type")
)

// ---------- error context tags ----------

const (
	ctxNew           = "New"
	ctxFromRows      = "FromRows"
	ctxAt            = "At"
	ctxPtrAt         = "PtrAt"
	ctxGet           = "Get"
	ctxSet           = "Set"
	ctxReplaceRow    = "ReplaceRow"
	ctxReplaceColumn = "ReplaceColumn"
	ctxInsertRow     = "InsertRow"
	ctxInsertColumn  = "InsertColumn"
	ctxEraseRow      = "EraseRow"
	ctxEraseColumn   = "EraseColumn"
	ctxAssign        = "Assign"
	ctxMoveFrom      = "MoveFrom"
	ctxSwap          = "Swap"
)

// matrixErrorf wraps a sentinel with the method tag and the coordinates seen
// at the detection site.
func matrixErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, row, col, err)
}

// axisErrorf wraps a sentinel for operations addressed by a single axis index.
func axisErrorf(method string, index int, err error) error {
	return fmt.Errorf("Matrix.%s(%d): %w", method, index, err)
}

// opErrorf wraps a sentinel for operations without coordinates.
func opErrorf(method string, err error) error {
	return fmt.Errorf("Matrix.%s: %w", method, err)
}
