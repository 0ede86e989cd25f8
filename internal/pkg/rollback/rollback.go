// Package rollback provides a small undo scope for multi-step in-memory
// mutations. Steps register an undo action as they succeed; closing an
// uncommitted scope runs those actions in reverse order.
//
//	scope := rollback.Begin("equip")
//	defer scope.Close()
//
//	if err := step1(); err != nil {
//	    return err
//	}
//	scope.OnRollback("undo step1", undoStep1)
//	...
//	scope.Commit()
package rollback

import "log/slog"

type action struct {
	description string
	fn          func() error
}

// Scope records undo actions for one logical operation
type Scope struct {
	name      string
	actions   []action
	committed bool
	closed    bool
}

// Begin opens a new scope
func Begin(name string) *Scope {
	return &Scope{name: name}
}

// OnRollback records an undo action to run if the scope is closed uncommitted
func (s *Scope) OnRollback(description string, fn func() error) {
	if s.committed || s.closed || fn == nil {
		return
	}
	s.actions = append(s.actions, action{description: description, fn: fn})
}

// Commit marks the operation as successful; recorded actions are discarded
func (s *Scope) Commit() {
	s.committed = true
	s.actions = nil
}

// Committed reports whether Commit was called
func (s *Scope) Committed() bool {
	return s.committed
}

// Pending returns how many undo actions are recorded
func (s *Scope) Pending() int {
	return len(s.actions)
}

// Close rolls back every recorded action in reverse order unless the scope
// was committed. Failures are logged and do not stop later actions.
// It returns the number of actions that failed.
func (s *Scope) Close() int {
	if s.closed {
		return 0
	}
	s.closed = true
	if s.committed {
		return 0
	}

	failed := 0
	for i := len(s.actions) - 1; i >= 0; i-- {
		a := s.actions[i]
		if err := a.fn(); err != nil {
			failed++
			slog.Error("rollback action failed",
				"scope", s.name,
				"action", a.description,
				"error", err)
		}
	}
	if len(s.actions) > 0 {
		slog.Debug("scope rolled back",
			"scope", s.name,
			"actions", len(s.actions),
			"failed", failed)
	}
	s.actions = nil
	return failed
}
