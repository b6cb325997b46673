// Package reorder implements drag-and-drop reordering of a sequenced list.
//
// A Session walks through idle -> dragging -> dropped -> persisting -> settled.
// Dropping splices the picked item into its new position and renumbers the
// whole list 1..N, so the sequence numbers always match the visual order.
package reorder

import (
	"errors"
	"fmt"
	"slices"
)

// State of a reorder session
type State int

const (
	StateIdle State = iota
	StateDragging
	StateDropped
	StatePersisting
	StateSettled
)

func (s State) String() string {
	return [...]string{"idle", "dragging", "dropped", "persisting", "settled"}[s]
}

var (
	ErrInvalidTransition = errors.New("invalid reorder transition")
	ErrOutOfRange        = errors.New("position out of range")
)

// Move returns a copy of items with the element at from moved to position to (both 0-based)
func Move[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, fmt.Errorf("%w: move %d -> %d in list of %d", ErrOutOfRange, from, to, len(items))
	}

	out := make([]T, 0, len(items))
	picked := items[from]
	for i, item := range items {
		if i == from {
			continue
		}
		out = append(out, item)
	}
	return slices.Insert(out, to, picked), nil
}

// Renumber assigns contiguous sequence numbers 1..N in list order
func Renumber[T any](items []T, set func(item *T, n int)) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		set(&out[i], i+1)
	}
	return out
}

// Session tracks one drag-and-drop reorder and its persistence
type Session[T any] struct {
	state     State
	original  []T
	current   []T
	picked    int
	set       func(item *T, n int)
	persisted bool
	failure   error
}

// NewSession starts an idle session over the authoritative order
func NewSession[T any](items []T, set func(item *T, n int)) *Session[T] {
	original := make([]T, len(items))
	copy(original, items)
	return &Session[T]{
		state:    StateIdle,
		original: original,
		current:  original,
		picked:   -1,
		set:      set,
	}
}

// State returns the current state
func (s *Session[T]) State() State {
	return s.state
}

// Items returns the order the operator currently sees
func (s *Session[T]) Items() []T {
	return s.current
}

// Pick picks up the item at position from
func (s *Session[T]) Pick(from int) error {
	if s.state != StateIdle {
		return fmt.Errorf("%w: pick while %s", ErrInvalidTransition, s.state)
	}
	if from < 0 || from >= len(s.current) {
		return fmt.Errorf("%w: pick %d in list of %d", ErrOutOfRange, from, len(s.current))
	}
	s.picked = from
	s.state = StateDragging
	return nil
}

// Cancel puts the picked item back without changes
func (s *Session[T]) Cancel() error {
	if s.state != StateDragging {
		return fmt.Errorf("%w: cancel while %s", ErrInvalidTransition, s.state)
	}
	s.picked = -1
	s.state = StateIdle
	return nil
}

// Drop splices the picked item into position to and renumbers the list
func (s *Session[T]) Drop(to int) error {
	if s.state != StateDragging {
		return fmt.Errorf("%w: drop while %s", ErrInvalidTransition, s.state)
	}
	moved, err := Move(s.current, s.picked, to)
	if err != nil {
		return err
	}
	s.current = Renumber(moved, s.set)
	s.state = StateDropped
	return nil
}

// Persist marks the optimistic order as being written
func (s *Session[T]) Persist() ([]T, error) {
	if s.state != StateDropped {
		return nil, fmt.Errorf("%w: persist while %s", ErrInvalidTransition, s.state)
	}
	s.state = StatePersisting
	return s.current, nil
}

// Settle finishes the session. On success the optimistic order is kept; on failure
// it is discarded in favour of authoritative, or the original order when that is nil.
func (s *Session[T]) Settle(persistErr error, authoritative []T) error {
	if s.state != StatePersisting {
		return fmt.Errorf("%w: settle while %s", ErrInvalidTransition, s.state)
	}
	s.state = StateSettled
	if persistErr == nil {
		s.persisted = true
		return nil
	}
	s.failure = persistErr
	if authoritative != nil {
		s.current = authoritative
	} else {
		s.current = s.original
	}
	return nil
}

// RolledBack reports whether the optimistic order was discarded
func (s *Session[T]) RolledBack() bool {
	return s.state == StateSettled && !s.persisted
}

// Failure returns the persistence error of a rolled back session
func (s *Session[T]) Failure() error {
	return s.failure
}
