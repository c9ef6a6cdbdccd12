// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package placement

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// Occupant identifies a ranked item: a player name or a deck id.
type Occupant string

// Rank is a 1-indexed position; 1 is first place.
type Rank int

// NoTrigger is passed to Normalize when no single occupant caused the change.
const NoTrigger Occupant = ""

// MaxRanks bounds the rank count of any layout.
const MaxRanks = 32

var ErrInvalidLayout = errors.New("invalid placement layout")

// State assigns occupants of a fixed roster to a fixed number of ranks.
// Occupants not at any rank are in the pool. State values are immutable:
// every operation returns a new State.
type State struct {
	roster []Occupant
	labels []string
	slots  [][]Occupant // slots[i] holds rank i+1
}

// NewState creates an empty state with the given rank count and roster.
func NewState(ranks int, roster []Occupant) (State, error) {
	if ranks < 1 {
		return State{}, fmt.Errorf("%w: need at least one rank, got %d", ErrInvalidLayout, ranks)
	}
	if ranks > MaxRanks {
		return State{}, fmt.Errorf("%w: at most %d ranks, got %d", ErrInvalidLayout, MaxRanks, ranks)
	}

	seen := make(map[Occupant]bool, len(roster))
	for _, o := range roster {
		if o == NoTrigger {
			return State{}, fmt.Errorf("%w: empty occupant id", ErrInvalidLayout)
		}
		if seen[o] {
			return State{}, fmt.Errorf("%w: duplicate occupant %q", ErrInvalidLayout, o)
		}
		seen[o] = true
	}

	return State{
		roster: slices.Clone(roster),
		slots:  make([][]Occupant, ranks),
	}, nil
}

// WithLabels returns a copy of s with display labels for its ranks.
// Missing labels fall back to ordinals.
func (s State) WithLabels(labels []string) State {
	next := s.clone()
	next.labels = slices.Clone(labels)
	return next
}

func (s State) Ranks() int {
	return len(s.slots)
}

// Label returns the display label of r ("1st", "2nd", ... by default).
func (s State) Label(r Rank) string {
	if i := int(r) - 1; i >= 0 && i < len(s.labels) && s.labels[i] != "" {
		return s.labels[i]
	}
	return ordinal(int(r))
}

func (s State) Roster() []Occupant {
	return slices.Clone(s.roster)
}

// At returns the occupants at r in placement order.
func (s State) At(r Rank) []Occupant {
	if !s.hasRank(r) {
		return nil
	}
	return slices.Clone(s.slot(r))
}

// RankOf reports where o is placed.
func (s State) RankOf(o Occupant) (Rank, bool) {
	for i, group := range s.slots {
		if slices.Contains(group, o) {
			return Rank(i + 1), true
		}
	}
	return 0, false
}

func (s State) Known(o Occupant) bool {
	return o != NoTrigger && slices.Contains(s.roster, o)
}

// Pool returns the unplaced occupants in roster order.
func (s State) Pool() []Occupant {
	var pool []Occupant
	for _, o := range s.roster {
		if _, ok := s.RankOf(o); !ok {
			pool = append(pool, o)
		}
	}
	return pool
}

// Placed counts occupants assigned to a rank.
func (s State) Placed() int {
	n := 0
	for _, group := range s.slots {
		n += len(group)
	}
	return n
}

// Complete reports whether every roster occupant has a rank.
func (s State) Complete() bool {
	return s.Placed() == len(s.roster)
}

// Move is the raw drop: o leaves its current rank and joins the group at r.
// Unknown occupants or ranks leave the state unchanged.
func (s State) Move(o Occupant, r Rank) State {
	if !s.Known(o) || !s.hasRank(r) {
		return s
	}
	next := s.Unplace(o)
	return next.with(r, append(next.At(r), o))
}

// Unplace returns o to the pool.
func (s State) Unplace(o Occupant) State {
	from, ok := s.RankOf(o)
	if !ok {
		return s
	}
	rest := slices.DeleteFunc(s.At(from), func(x Occupant) bool { return x == o })
	return s.with(from, rest)
}

// Equal compares layouts and placements; labels are ignored.
func (s State) Equal(t State) bool {
	if !slices.Equal(s.roster, t.roster) || len(s.slots) != len(t.slots) {
		return false
	}
	for i := range s.slots {
		if !slices.Equal(s.slots[i], t.slots[i]) {
			return false
		}
	}
	return true
}

func (s State) hasRank(r Rank) bool {
	return r >= 1 && int(r) <= len(s.slots)
}

// slot returns the group at r without copying. Callers must not mutate it.
func (s State) slot(r Rank) []Occupant {
	return s.slots[r-1]
}

// with returns a copy of s with the group at r replaced.
func (s State) with(r Rank, group []Occupant) State {
	next := s.clone()
	if len(group) == 0 {
		next.slots[r-1] = nil
	} else {
		next.slots[r-1] = slices.Clone(group)
	}
	return next
}

func (s State) vacate(r Rank) State {
	return s.with(r, nil)
}

func (s State) clone() State {
	slots := make([][]Occupant, len(s.slots))
	for i, group := range s.slots {
		slots[i] = slices.Clone(group)
	}
	return State{roster: s.roster, labels: s.labels, slots: slots}
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
