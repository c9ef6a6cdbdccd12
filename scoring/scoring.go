// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/danielhkuo/commander-pods/placement"
)

// Scheme names
const (
	SchemePlayPhase       = "play_phase"
	SchemeBestDeckVoting  = "best_deck_voting"
	SchemeBestDeckOverall = "best_deck_overall"
)

var ErrUnknownScheme = errors.New("unknown points scheme")

// Scheme maps a rank to the points it is worth. Ranks not listed score 0.
type Scheme map[placement.Rank]int

// Settings holds the points schemes of an event.
type Settings struct {
	PlayPhase       Scheme `yaml:"play_phase" json:"play_phase"`
	BestDeckVoting  Scheme `yaml:"best_deck_voting" json:"best_deck_voting"`
	BestDeckOverall Scheme `yaml:"best_deck_overall" json:"best_deck_overall"`
}

// DefaultSettings returns the stock schemes: 4/3/2/1 per table, 3/2/1 for
// best-deck ballots and 8/5/3/2/1 for the overall best-deck award.
func DefaultSettings() Settings {
	return Settings{
		PlayPhase:       Scheme{1: 4, 2: 3, 3: 2, 4: 1},
		BestDeckVoting:  Scheme{1: 3, 2: 2, 3: 1},
		BestDeckOverall: Scheme{1: 8, 2: 5, 3: 3, 4: 2, 5: 1, 6: 0, 7: 0, 8: 0},
	}
}

// Scheme looks up a scheme by name. An empty name selects the play phase.
func (s Settings) Scheme(name string) (Scheme, error) {
	switch name {
	case "", SchemePlayPhase:
		return s.PlayPhase, nil
	case SchemeBestDeckVoting:
		return s.BestDeckVoting, nil
	case SchemeBestDeckOverall:
		return s.BestDeckOverall, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// Validate checks every scheme: ranks start at 1, points are never
// negative, and a better rank never scores less than a worse one.
func (s Settings) Validate() error {
	for name, scheme := range map[string]Scheme{
		SchemePlayPhase:       s.PlayPhase,
		SchemeBestDeckVoting:  s.BestDeckVoting,
		SchemeBestDeckOverall: s.BestDeckOverall,
	} {
		if err := scheme.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (sc Scheme) Validate() error {
	if len(sc) == 0 {
		return errors.New("scheme is empty")
	}
	ranks := make([]placement.Rank, 0, len(sc))
	for r, pts := range sc {
		if r < 1 || r > placement.MaxRanks {
			return fmt.Errorf("rank %d is not a place", r)
		}
		if pts < 0 {
			return fmt.Errorf("rank %d has negative points", r)
		}
		ranks = append(ranks, r)
	}
	slices.Sort(ranks)
	for i := 1; i < len(ranks); i++ {
		if sc[ranks[i]] > sc[ranks[i-1]] {
			return fmt.Errorf("rank %d scores more than rank %d", ranks[i], ranks[i-1])
		}
	}
	return nil
}

// Standing is one occupant's aggregate over a set of rankings.
type Standing struct {
	Occupant placement.Occupant `json:"occupant"`
	Points   int                `json:"points"`
	Placings []int              `json:"placings"` // Placings[i] counts rankings with the occupant at rank i+1
	Rank     int                `json:"rank"`     // 1-indexed; equal records share a rank
}

// Tally sums scheme points over rankings that share one layout. Every
// roster occupant gets a standing, even with no placings. Standings are
// ordered by points, then by placings compared rank by rank, then by
// occupant id for a stable order.
func Tally(roster []placement.Occupant, ranks int, rankings []placement.State, scheme Scheme) []Standing {
	byOccupant := make(map[placement.Occupant]*Standing, len(roster))
	standings := make([]*Standing, 0, len(roster))
	for _, o := range roster {
		st := &Standing{Occupant: o, Placings: make([]int, ranks)}
		byOccupant[o] = st
		standings = append(standings, st)
	}

	for _, ranking := range rankings {
		for r := placement.Rank(1); int(r) <= ranks && int(r) <= ranking.Ranks(); r++ {
			for _, o := range ranking.At(r) {
				st, ok := byOccupant[o]
				if !ok {
					continue
				}
				st.Points += scheme[r]
				st.Placings[r-1]++
			}
		}
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]

		// 1. More points
		if a.Points != b.Points {
			return a.Points > b.Points
		}

		// 2. More better placings
		if c := compareRecords(a, b); c != 0 {
			return c > 0
		}

		// 3. Stable tie-breaking by id
		return a.Occupant < b.Occupant
	})

	out := make([]Standing, len(standings))
	for i, st := range standings {
		out[i] = *st
		out[i].Rank = i + 1
		if i > 0 && out[i-1].Points == st.Points && compareRecords(standings[i-1], st) == 0 {
			out[i].Rank = out[i-1].Rank
		}
	}
	return out
}

// compareRecords compares placings rank by rank; positive means a is better.
func compareRecords(a, b *Standing) int {
	for i := range a.Placings {
		if a.Placings[i] != b.Placings[i] {
			return a.Placings[i] - b.Placings[i]
		}
	}
	return 0
}

// Award converts standings into points by final rank, e.g. for the overall
// best-deck scheme. Tied standings receive the points of their shared rank.
func Award(standings []Standing, scheme Scheme) map[placement.Occupant]int {
	out := make(map[placement.Occupant]int, len(standings))
	for _, st := range standings {
		out[st.Occupant] = scheme[placement.Rank(st.Rank)]
	}
	return out
}
