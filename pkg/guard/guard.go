// Package guard provides a reentrancy latch for change-propagation handlers.
//
// When an edit to one field triggers recomputation and writes into sibling
// fields, those writes would re-trigger each sibling's own change handler.
// Wrapping the handler body in Guard.Do ensures only the outermost,
// user-initiated edit performs the convert-and-propagate cycle; nested
// invocations are silently skipped rather than queued or blocked.
package guard

import "errors"

// ErrAlreadyEngaged is returned by TryEnter when the guard is already held.
// Hitting it means the caller bypassed Do and re-entered manually; that is a
// programming error, not a runtime condition to recover from.
var ErrAlreadyEngaged = errors.New("guard is already engaged")

// Guard is a binary reentrancy latch. Compose it into the struct that owns
// the guarded handler; the zero value is ready to use. Guard is not a mutex:
// it assumes a single goroutine and skips instead of waiting.
type Guard struct {
	engaged bool
}

// Engaged reports whether the guard is currently held.
func (g *Guard) Engaged() bool { return g.engaged }

// TryEnter engages the guard. Returns ErrAlreadyEngaged if it is already
// held. Callers using TryEnter directly must pair it with Exit on every
// path; prefer Do.
func (g *Guard) TryEnter() error {
	if g.engaged {
		return ErrAlreadyEngaged
	}
	g.engaged = true
	return nil
}

// Exit releases the guard. Releasing a free guard is a no-op.
func (g *Guard) Exit() {
	g.engaged = false
}

// Do runs fn with the guard engaged and releases it afterwards, whether fn
// succeeds or fails. If the guard is already engaged the call is a no-op:
// fn does not execute and Do returns nil. This is the designed reentrancy
// skip, distinct from the TryEnter misuse error.
func (g *Guard) Do(fn func() error) error {
	if err := g.TryEnter(); err != nil {
		return nil
	}
	defer g.Exit()
	return fn()
}
