// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package placement

// Place assigns o to target in a tie-free ranking. If o already holds
// another rank, it swaps with whoever holds target; if o comes from the
// pool, the holder of target goes back to the pool. Unknown occupants or
// ranks leave s unchanged.
func Place(s State, o Occupant, target Rank) State {
	if !s.Known(o) || !s.hasRank(target) {
		return s
	}
	from, placed := s.RankOf(o)
	if placed && from == target {
		return s
	}

	holders := s.slot(target)
	next := s.Unplace(o).with(target, []Occupant{o})
	if placed && len(holders) > 0 {
		next = next.with(from, append(next.At(from), holders...))
	}
	return next
}
