// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures (the 1..9 3×3 matrix) and
//     assertion shorthands shared by the handle, reshape and iterator tests.

package matrix_test

import (
	"sync"
	"testing"

	"github.com/katalvlaran/cowmatrix/matrix"
	"github.com/stretchr/testify/require"
)

// MustMatrix ALLOCATES an r×c matrix or fails the test.
func MustMatrix[T any](t testing.TB, r, c int, opts ...matrix.Option) *matrix.Matrix[T] {
	t.Helper()
	m, err := matrix.New[T](r, c, opts...)
	require.NoError(t, err, "New(%d,%d)", r, c)

	return m
}

// Seq3x3 RETURNS the canonical 3×3 fixture filled row-major with 1..9.
//
//	[1, 2, 3]
//	[4, 5, 6]
//	[7, 8, 9]
func Seq3x3(t testing.TB, opts ...matrix.Option) *matrix.Matrix[int] {
	t.Helper()

	return SeqMatrix(t, 3, 3, opts...)
}

// SeqMatrix RETURNS an r×c matrix filled row-major with 1..r*c via Set.
func SeqMatrix(t testing.TB, r, c int, opts ...matrix.Option) *matrix.Matrix[int] {
	t.Helper()
	m := MustMatrix[int](t, r, c, opts...)
	v := 1
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.NoError(t, m.Set(i, j, v))
			v++
		}
	}

	return m
}

// RequireRows ASSERTS the full contents of m without triggering a clone.
func RequireRows[T any](t testing.TB, want [][]T, m *matrix.Matrix[T]) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "row count")
	if len(want) > 0 {
		require.Equal(t, len(want[0]), m.Cols(), "column count")
	}
	require.Equal(t, want, m.ToRows())
}

// deref flattens a pointer line into values.
func deref[T any](ptrs []*T) []T {
	out := make([]T, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}

	return out
}

// eventLog RECORDS observer events; safe for concurrent use.
type eventLog struct {
	mu     sync.Mutex
	events []matrix.Event
}

func (l *eventLog) Observe(e matrix.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

// ops returns the recorded event kinds in order.
func (l *eventLog) ops() []matrix.Op {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]matrix.Op, len(l.events))
	for i, e := range l.events {
		out[i] = e.Op
	}

	return out
}

// count returns how many events of kind op were recorded.
func (l *eventLog) count(op matrix.Op) int {
	n := 0
	for _, o := range l.ops() {
		if o == op {
			n++
		}
	}

	return n
}

// reset forgets everything recorded so far.
func (l *eventLog) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}
