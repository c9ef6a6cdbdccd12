// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package placement

import (
	"fmt"
	"strconv"
)

// Payload is the wire form of a placement: rank number (as a string) to the
// occupants at that rank, e.g. {"1": ["Alice"], "2": [], "3": ["Bob", "Cara"]}.
type Payload map[string][]string

// Payload returns s in wire form. Every rank is present, empty ranks as [].
func (s State) Payload() Payload {
	p := make(Payload, len(s.slots))
	for i, group := range s.slots {
		names := make([]string, 0, len(group))
		for _, o := range group {
			names = append(names, string(o))
		}
		p[strconv.Itoa(i+1)] = names
	}
	return p
}

// Seed places the occupants of a saved payload onto s, lowest rank first.
// Keys that are not a rank of s and occupants outside the roster are
// skipped; an occupant listed twice keeps its first (best) rank.
func (s State) Seed(p Payload) State {
	next := s
	placed := make(map[Occupant]bool)
	for r := Rank(1); int(r) <= s.Ranks(); r++ {
		for _, name := range p[strconv.Itoa(int(r))] {
			o := Occupant(name)
			if placed[o] || !next.Known(o) {
				continue
			}
			placed[o] = true
			next = next.Move(o, r)
		}
	}
	return next
}

// FromPayload builds a state for the given layout and seeds it from p.
func FromPayload(ranks int, roster []string, p Payload) (State, error) {
	occupants := make([]Occupant, 0, len(roster))
	for _, name := range roster {
		occupants = append(occupants, Occupant(name))
	}
	s, err := NewState(ranks, occupants)
	if err != nil {
		return State{}, err
	}
	return s.Seed(p), nil
}

// Points maps every placed occupant to the value a scheme assigns its rank.
// Tied occupants all receive the value of the rank they share.
func (s State) Points(scheme map[Rank]int) map[Occupant]int {
	out := make(map[Occupant]int, s.Placed())
	for i, group := range s.slots {
		for _, o := range group {
			out[o] = scheme[Rank(i+1)]
		}
	}
	return out
}

// Violation describes the first broken invariant of a state.
type Violation struct {
	Rank   Rank
	Reason string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("rank %d: %s", v.Rank, v.Reason)
}

// Check verifies the ranking invariants: every occupant placed at most once,
// rank 1 held by at most one occupant, and each tie of size k at rank p
// backed by k-1 empty ranks directly above it.
func (s State) Check() error {
	seen := make(map[Occupant]bool, s.Placed())
	for i, group := range s.slots {
		r := Rank(i + 1)
		for _, o := range group {
			if seen[o] {
				return &Violation{Rank: r, Reason: fmt.Sprintf("%q is placed twice", o)}
			}
			seen[o] = true
		}
		if !s.groupLegal(r) {
			if r == 1 {
				return &Violation{Rank: r, Reason: "first place cannot be shared"}
			}
			return &Violation{Rank: r, Reason: fmt.Sprintf("tie of %d needs %d empty ranks above", len(group), len(group)-1)}
		}
	}
	return nil
}

// CheckStrict is Check plus at most one occupant per rank.
func (s State) CheckStrict() error {
	for i, group := range s.slots {
		if len(group) > 1 {
			return &Violation{Rank: Rank(i + 1), Reason: "ties are not allowed"}
		}
	}
	return s.Check()
}

// groupLegal reports whether the group at r satisfies the top-rank and
// tie rules given the ranks currently above it.
func (s State) groupLegal(r Rank) bool {
	k := len(s.slot(r))
	if k < 2 {
		return true
	}
	top := r - Rank(k) + 1
	if r == 1 || top < 1 {
		return false
	}
	for q := top; q < r; q++ {
		if len(s.slot(q)) > 0 {
			return false
		}
	}
	return true
}
