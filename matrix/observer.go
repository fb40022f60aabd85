// SPDX-License-Identifier: MIT

package matrix

import "go.uber.org/zap"

// Op names the storage-level event a handle reports to its Observer.
type Op string

const (
	OpClone         Op = "clone"          // copy-on-write duplicated a shared buffer
	OpInsertRow     Op = "insert-row"     // InsertRow rebuilt storage
	OpInsertColumn  Op = "insert-column"  // InsertColumn rebuilt storage
	OpEraseRow      Op = "erase-row"      // EraseRow rebuilt storage
	OpEraseColumn   Op = "erase-column"   // EraseColumn rebuilt storage
	OpReplaceRow    Op = "replace-row"    // ReplaceRow committed
	OpReplaceColumn Op = "replace-column" // ReplaceColumn committed
	OpRelease       Op = "release"        // the last owner dropped a buffer
)

// Event describes one storage-level event.
// Rows and Cols are the dimensions of the buffer the event produced (or, for
// OpRelease, of the buffer dropped). Index is the addressed row/column for
// reshape and replace events and -1 otherwise. Cells is the number of
// elements copied into fresh storage.
type Event struct {
	Op    Op
	Rows  int
	Cols  int
	Index int
	Cells int
}

// Observer receives events from every handle configured with WithObserver.
// Observe is called synchronously on the mutating goroutine after the event
// has taken effect; implementations shared across goroutines must be safe
// for concurrent use.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// emit reports e with m's current configuration.
func (m *Matrix[T]) emit(e Event) { emitTo(m.opts, e) }

// emitTo logs e at debug level and forwards it to the observer, if any.
func emitTo(o Options, e Event) {
	o.logger.Debug("matrix: storage event",
		zap.String("op", string(e.Op)),
		zap.Int("rows", e.Rows),
		zap.Int("cols", e.Cols),
		zap.Int("index", e.Index),
		zap.Int("cells", e.Cells),
	)
	if o.observer != nil {
		o.observer.Observe(e)
	}
}
