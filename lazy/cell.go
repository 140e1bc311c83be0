// Package lazy implements a write-once memoization cell and the lazy
// list/mapping wrappers built on it, which transparently reify cells on
// read while preserving them through structural edits.
package lazy

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/petermattis/goid"

	"github.com/funvibe/persist/errs"
)

type state int32

const (
	pending state = iota
	evaluating
	ready
)

// Cell is a thread-safe, write-once memoization cell wrapping a nullary
// thunk. A cell starts pending, runs its thunk on Get, and memoizes the
// value on success. A failed evaluation leaves the cell pending, so the
// next Get retries the thunk; every failure is reported under the same
// construction-site diagnostic, with the live thunk error chained in as
// the cause rather than discarded.
type Cell struct {
	id    uuid.UUID
	site  string
	mu    sync.Mutex
	state atomic.Int32

	thunk func() (any, error)
	value any

	evalGoroutine atomic.Int64
}

// New wraps thunk in a pending cell. The construction call site is
// captured so a later evaluation failure can be attributed back to
// construction rather than to whichever call eventually forced it.
func New(thunk func() (any, error)) *Cell {
	c := &Cell{id: uuid.New(), thunk: thunk, site: callSite()}
	c.state.Store(int32(pending))
	return c
}

func callSite() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// ID returns the cell's stable identity, usable in diagnostics.
func (c *Cell) ID() uuid.UUID { return c.id }

// IsReady reports whether the cell has already been evaluated
// successfully, without blocking.
func (c *Cell) IsReady() bool {
	return state(c.state.Load()) == ready
}

// Get forces the cell, running the thunk on the first call and memoizing
// the value on success; concurrent and subsequent calls then observe the
// same value. An error is not memoized: the cell stays pending and the
// next call runs the thunk again. A call observed from the same goroutine that is already
// evaluating this cell returns ErrCycleDetected instead of deadlocking.
func (c *Cell) Get() (any, error) {
	if state(c.state.Load()) == ready {
		return c.value, nil
	}

	// Checked before attempting the lock: Go's mutex is not re-entrant, so
	// a thunk that evaluates its own cell on the same goroutine would
	// otherwise deadlock on Lock below rather than observe "evaluating".
	gid := goid.Get()
	if state(c.state.Load()) == evaluating && c.evalGoroutine.Load() == gid {
		return nil, errs.CycleDetected("lazy cell %s (constructed at %s) is already evaluating on this goroutine", c.id, c.site)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if state(c.state.Load()) == ready {
		return c.value, nil
	}

	c.state.Store(int32(evaluating))
	c.evalGoroutine.Store(gid)
	v, err := c.thunk()
	if err != nil {
		c.state.Store(int32(pending))
		return nil, fmt.Errorf("%w (cause: %w)", errs.EvaluationFailed("lazy cell constructed at %s failed", c.site), err)
	}
	c.value = v
	c.thunk = nil // release the closure so captured objects become collectable
	c.state.Store(int32(ready))
	return v, nil
}

// Reify forces v if it is a *Cell, otherwise returns v unchanged. It is
// the primitive the lazy list and lazy mapping use on every reading
// path.
func Reify(v any) (any, error) {
	if c, ok := v.(*Cell); ok {
		return c.Get()
	}
	return v, nil
}

// IsCell reports whether v is an unreified lazy cell.
func IsCell(v any) bool {
	_, ok := v.(*Cell)
	return ok
}
