// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for Matrix handles.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults,
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - No global state: every handle carries its own resolved Options.
//   - No dead switches: each option impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Options travel with the handle: Share/Move copy them, Assign/MoveFrom
//     adopt the source's, Swap exchanges them together with the buffers.
package matrix

import (
	"reflect"

	"go.uber.org/zap"
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicLoggerNil   = "matrix: WithLogger: logger must be non-nil"
	panicObserverNil = "matrix: WithObserver: observer must be non-nil"
	panicClonerNil   = "matrix: WithElementCloner: cloner must be non-nil"
)

// Option mutates internal options. Safe to apply repeatedly (last-writer-wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	logger   *zap.Logger // debug records for clone/reshape/release; zap.NewNop() by default
	observer Observer    // event sink; nil disables events
	cloner   any         // func(T) T for the handle's T, or nil for plain assignment
}

// WithLogger routes the handle's debug records (clones, reshapes, releases)
// to logger.
// Panics when logger is nil.
func WithLogger(logger *zap.Logger) Option {
	if logger == nil {
		panic(panicLoggerNil)
	}

	return func(o *Options) { o.logger = logger }
}

// WithObserver installs an event sink notified after every clone, reshape,
// replace and last-owner release (see Event).
// Panics when obs is nil.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic(panicObserverNil)
	}

	return func(o *Options) { o.observer = obs }
}

// WithElementCloner installs a deep-copy function used whenever an element is
// copied into storage: copy-on-write clones, reshapes and replaced or inserted
// values. Without it elements are copied by assignment, which is shallow for
// slices, maps and pointers.
//
// The cloner's element type must match the T passed to New/FromRows,
// otherwise construction fails with ErrBadOption.
// Panics when fn is nil.
func WithElementCloner[T any](fn func(T) T) Option {
	if fn == nil {
		panic(panicClonerNil)
	}

	return func(o *Options) { o.cloner = fn }
}

// gatherOptions applies user-provided setters on top of defaults.
// Complexity: O(k) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{logger: zap.NewNop()}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}

// resolveCloner narrows the untyped cloner to func(T) T.
// Returns (nil, nil) when no cloner was configured.
func resolveCloner[T any](o Options) (func(T) T, error) {
	if o.cloner == nil {
		return nil, nil
	}
	fn, ok := o.cloner.(func(T) T)
	if !ok {
		var zero T
		return nil, &clonerTypeError{want: reflect.TypeOf(&zero).Elem(), got: reflect.TypeOf(o.cloner)}
	}

	return fn, nil
}

// clonerTypeError reports which cloner signature was expected.
type clonerTypeError struct {
	want reflect.Type
	got  reflect.Type
}

func (e *clonerTypeError) Error() string {
	return ErrBadOption.Error() + ": want func(" + e.want.String() + ") " + e.want.String() + ", got " + e.got.String()
}

func (e *clonerTypeError) Unwrap() error { return ErrBadOption }
