// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package placement

// Board owns the placement shown by one view. Every change runs a full
// normalize or place call; a rejected move leaves the board on its last
// valid state. A Board is not safe for concurrent use.
type Board struct {
	state State
}

// NewBoard normalizes initial and returns a board holding it. A saved
// placement that cannot be normalized is reported and the board starts
// from the empty layout instead.
func NewBoard(initial State) (*Board, error) {
	s, err := Normalize(initial, NoTrigger)
	if err != nil {
		empty := State{roster: initial.roster, labels: initial.labels, slots: make([][]Occupant, initial.Ranks())}
		return &Board{state: empty}, err
	}
	return &Board{state: s}, nil
}

func (b *Board) State() State {
	return b.state
}

// Drop moves o onto r the way a drag-drop does and normalizes with o as
// the trigger.
func (b *Board) Drop(o Occupant, r Rank) error {
	s, err := Normalize(b.state.Move(o, r), o)
	if err != nil {
		return err
	}
	b.state = s
	return nil
}

// Remove sends o back to the pool and normalizes the rest.
func (b *Board) Remove(o Occupant) error {
	s, err := Normalize(b.state.Unplace(o), NoTrigger)
	if err != nil {
		return err
	}
	b.state = s
	return nil
}

// Assign places o on r with swap semantics; ties are never formed.
func (b *Board) Assign(o Occupant, r Rank) {
	b.state = Place(b.state, o, r)
}
