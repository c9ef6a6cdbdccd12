// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring turns placements into points.

# Schemes

A Scheme maps ranks to points. Settings groups the three schemes an event
uses:

	play_phase:        {1: 4, 2: 3, 3: 2, 4: 1}
	best_deck_voting:  {1: 3, 2: 2, 3: 1}
	best_deck_overall: {1: 8, 2: 5, 3: 3, 4: 2, 5: 1}

Tied occupants all score the rank they share.

# Tally

Tally aggregates many rankings, either round reports or best-deck ballots,
into ordered standings:

	standings := scoring.Tally(roster, 3, ballots, settings.BestDeckVoting)

Ordering is lexicographic:

 1. Points (higher first)
 2. Placings at rank 1, then rank 2, ... (more first)
 3. Occupant id (ascending)

Standings equal on 1 and 2 share a rank.
*/
package scoring
