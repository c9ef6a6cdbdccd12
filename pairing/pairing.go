// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pairing

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

// Attempts is the number of random partitions BuildRound scores per round.
const Attempts = 256

var (
	ErrNotEnoughPlayers = errors.New("at least two players are required")
	ErrDuplicatePlayer  = errors.New("duplicate player")
)

// PodSizes splits players over at most pods tables. Sizes are descending
// and differ by at most one.
func PodSizes(players, pods int) []int {
	if players <= 0 {
		return nil
	}
	k := min(max(1, pods), players)
	base, rest := players/k, players%k

	sizes := make([]int, k)
	for i := range sizes {
		sizes[i] = base
		if i < rest {
			sizes[i]++
		}
	}
	return sizes
}

type pair struct{ a, b string }

func newPair(a, b string) pair {
	if b < a {
		a, b = b, a
	}
	return pair{a, b}
}

// History counts how often two players have shared a pod.
type History map[pair]int

func NewHistory() History {
	return make(History)
}

// Record adds every pair of each pod of round.
func (h History) Record(round [][]string) {
	for _, pod := range round {
		for i := range pod {
			for j := i + 1; j < len(pod); j++ {
				h[newPair(pod[i], pod[j])]++
			}
		}
	}
}

func (h History) Count(a, b string) int {
	return h[newPair(a, b)]
}

// cost orders candidate rounds: fewest repeated pairs, then the lowest
// maximum pair count, then the lowest sum of squared counts.
type cost struct {
	repeats, maxCount, sumSq int
}

func (c cost) less(o cost) bool {
	if c.repeats != o.repeats {
		return c.repeats < o.repeats
	}
	if c.maxCount != o.maxCount {
		return c.maxCount < o.maxCount
	}
	return c.sumSq < o.sumSq
}

func (h History) cost(round [][]string) cost {
	next := make(History, len(h))
	for p, n := range h {
		next[p] = n
	}

	var c cost
	for _, pod := range round {
		for i := range pod {
			for j := i + 1; j < len(pod); j++ {
				p := newPair(pod[i], pod[j])
				if h[p] > 0 {
					c.repeats++
				}
				next[p]++
			}
		}
	}
	for _, n := range next {
		c.maxCount = max(c.maxCount, n)
		c.sumSq += n * n
	}
	return c
}

// BuildRound seats players into pods, preferring opponents they have not
// met. The first candidate is the roster order; Attempts-1 shuffles drawn
// from rng follow, and the cheapest candidate wins (earliest on ties).
// Players inside a pod keep roster order.
func BuildRound(players []string, pods int, h History, rng *rand.Rand) ([][]string, error) {
	index, err := indexPlayers(players)
	if err != nil {
		return nil, err
	}

	sizes := PodSizes(len(players), pods)
	order := slices.Clone(players)

	var best [][]string
	var bestCost cost
	for attempt := range Attempts {
		if attempt > 0 {
			rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}
		candidate := split(order, sizes, index)
		if c := h.cost(candidate); best == nil || c.less(bestCost) {
			best, bestCost = candidate, c
		}
	}
	return best, nil
}

// FirstRound seats hosts at the head of the first pods, in case-insensitive
// name order, and deals the other players into the open seats in an order
// drawn from rng. Hosts that are not players are ignored, and so are hosts
// beyond the number of pods.
func FirstRound(players []string, pods int, hosts []string, rng *rand.Rand) ([][]string, error) {
	index, err := indexPlayers(players)
	if err != nil {
		return nil, err
	}
	sizes := PodSizes(len(players), pods)

	heads := make([]string, 0, len(sizes))
	seated := make(map[string]bool, len(sizes))
	for _, h := range hosts {
		if _, ok := index[h]; !ok || seated[h] {
			continue
		}
		if len(heads) == len(sizes) {
			break
		}
		seated[h] = true
		heads = append(heads, h)
	}
	slices.SortStableFunc(heads, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	rest := make([]string, 0, len(players)-len(heads))
	for _, p := range players {
		if !seated[p] {
			rest = append(rest, p)
		}
	}
	rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	round := make([][]string, 0, len(sizes))
	next := 0
	for i, size := range sizes {
		pod := make([]string, 0, size)
		if i < len(heads) {
			pod = append(pod, heads[i])
		}
		open := size - len(pod)
		pod = append(pod, rest[next:next+open]...)
		next += open
		round = append(round, pod)
	}
	return round, nil
}

func indexPlayers(players []string) (map[string]int, error) {
	if len(players) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	index := make(map[string]int, len(players))
	for i, p := range players {
		if _, dup := index[p]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, p)
		}
		index[p] = i
	}
	return index, nil
}

func split(order []string, sizes []int, index map[string]int) [][]string {
	round := make([][]string, 0, len(sizes))
	start := 0
	for _, size := range sizes {
		pod := slices.Clone(order[start : start+size])
		slices.SortFunc(pod, func(a, b string) int { return index[a] - index[b] })
		round = append(round, pod)
		start += size
	}
	return round
}
