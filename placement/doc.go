// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package placement assigns a roster of occupants (players or decks) to
ranked slots and repairs user-made assignments into legal rankings.

# State

A State holds, for each rank 1..N, the ordered group of occupants placed
there. More than one occupant at a rank is a tie. Occupants at no rank are
in the pool. States are values; every operation returns a new State.

	s, err := placement.NewState(4, []placement.Occupant{"Alice", "Bob", "Cara", "Dan"})
	s = s.Move("Alice", 1)

# Ranking Rules

A legal state has:

  - each occupant at most once
  - at most one occupant at rank 1
  - for a tie of k occupants at rank p, ranks p-k+1 .. p-1 present and empty

So two players sharing first place sit at rank 2 with rank 1 empty.

# Normalize

Normalize repairs a state with a fixed-point loop:

  - a shared rank 1 is pushed down to rank 2
  - an illegal tie at rank p is pushed down to p+1, displacing lower groups
  - if the push runs off the end, the ranks the tie needs are lifted upward
  - as a last resort the trigger occupant is moved alone onto rank 1

If nothing works, Normalize returns the input and ErrRejected. Exceeding the
pass limit returns ErrStepLimit, which signals a defect.

# Place

Place is the tie-free alternative used for best-deck voting: occupants swap
ranks, or the displaced holder returns to the pool.

# Wire Format

Payload converts to and from the submission mapping:

	{"1": ["Alice"], "2": [], "3": ["Bob", "Cara"], "4": []}
*/
package placement
