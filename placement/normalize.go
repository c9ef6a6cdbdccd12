// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package placement

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected means no legal ranking could be reached from the given
	// state. The caller should keep its last valid state.
	ErrRejected = errors.New("placement rejected: tie cannot be resolved")

	// ErrStepLimit means the repair rules did not converge. This is a
	// defect in the rules, never a user error.
	ErrStepLimit = errors.New("placement normalization exceeded step limit")
)

type outcome int

const (
	settled outcome = iota
	changed
	stuck
)

// Normalize repairs s into a state that satisfies the ranking invariants
// without adding or dropping occupants. trigger names the occupant whose
// move caused the call; it is only used when a tie cannot be resolved
// otherwise, in which case trigger is moved alone to rank 1 and the rest
// is repaired around it. Pass NoTrigger when there is none.
//
// On ErrRejected and ErrStepLimit the input state is returned unchanged.
func Normalize(s State, trigger Occupant) (State, error) {
	out, err := settle(s)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, ErrRejected) || !s.Known(trigger) {
		return s, err
	}

	anchored, ok := anchor(s, trigger)
	if !ok {
		return s, ErrRejected
	}
	out, err = settle(anchored)
	if err != nil {
		return s, err
	}
	return out, nil
}

// settle applies the repair rules until a pass makes no change.
func settle(s State) (State, error) {
	limit := (s.Placed() + 1) * s.Ranks()
	for range limit {
		next, res := repair(s)
		switch res {
		case settled:
			return s, nil
		case stuck:
			return s, ErrRejected
		}
		s = next
	}
	return s, fmt.Errorf("%w (%d passes)", ErrStepLimit, limit)
}

// repair runs one top-down pass and stops at the first rule that applies.
func repair(s State) (State, outcome) {
	if top := s.slot(1); len(top) > 1 {
		if next, ok := pushDown(s.vacate(1), top, 2); ok {
			return next, changed
		}
		return s, stuck
	}

	for r := Rank(2); int(r) <= s.Ranks(); r++ {
		if s.groupLegal(r) {
			continue
		}
		if next, ok := pushDown(s.vacate(r), s.slot(r), r+1); ok {
			return next, changed
		}
		if next, ok := lift(s, r); ok {
			return next, changed
		}
		return s, stuck
	}
	return s, settled
}

// pushDown places group at r. Whatever held r moves to r+1, and so on,
// until a displaced group lands on an empty rank. It fails if the ripple
// runs past the last rank; s itself is never modified.
func pushDown(s State, group []Occupant, r Rank) (State, bool) {
	next := s
	for len(group) > 0 {
		if int(r) > s.Ranks() {
			return s, false
		}
		displaced := next.slot(r)
		next = next.with(r, group)
		group, r = displaced, r+1
	}
	return next, true
}

// pushUp mirrors pushDown toward rank 1.
func pushUp(s State, group []Occupant, r Rank) (State, bool) {
	next := s
	for len(group) > 0 {
		if r < 1 {
			return s, false
		}
		displaced := next.slot(r)
		next = next.with(r, group)
		group, r = displaced, r-1
	}
	return next, true
}

// lift clears the ranks a tie at r needs by pushing their occupants
// upward. The result is accepted only if everything above the cleared
// window is legal afterwards.
func lift(s State, r Rank) (State, bool) {
	top := r - Rank(len(s.slot(r))) + 1
	if top < 2 {
		return s, false
	}

	next := s
	for q := top; q < r; q++ {
		group := next.slot(q)
		if len(group) == 0 {
			continue
		}
		var ok bool
		if next, ok = pushUp(next.vacate(q), group, top-1); !ok {
			return s, false
		}
	}

	for q := Rank(1); q < top; q++ {
		if !next.groupLegal(q) {
			return s, false
		}
	}
	return next, true
}

// anchor moves trigger alone onto rank 1, cascading the previous rank 1
// group downward.
func anchor(s State, trigger Occupant) (State, bool) {
	s = s.Unplace(trigger)
	displaced := s.slot(1)
	s = s.with(1, []Occupant{trigger})
	return pushDown(s, displaced, 2)
}
