// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/commander-pods/placement"
)

// Request types

type CreateEventRequest struct {
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
	NumPods      int      `json:"num_pods,omitempty"`
	Ranks        int      `json:"ranks,omitempty"`
	RankLabels   []string `json:"rank_labels,omitempty"`
	Hosts        []string `json:"hosts,omitempty"`
}

// PlacementRequest carries a layout and a placement. Trigger is read by
// normalize; Occupant and Rank by drop and assign; Scheme by score.
type PlacementRequest struct {
	Ranks      int               `json:"ranks"`
	RankLabels []string          `json:"rank_labels,omitempty"`
	Roster     []string          `json:"roster"`
	Placements placement.Payload `json:"placements"`
	Trigger    string            `json:"trigger,omitempty"`
	Occupant   string            `json:"occupant,omitempty"`
	Rank       int               `json:"rank,omitempty"`
	Scheme     string            `json:"scheme,omitempty"`
}

type TallyRequest struct {
	Ranks   int                 `json:"ranks"`
	Roster  []string            `json:"roster"`
	Ballots []placement.Payload `json:"ballots"`
}

// Response types

type CreateEventResponse struct {
	EventID string `json:"event_id"`
}

type PlacementResponse struct {
	Placements placement.Payload `json:"placements"`
	RankLabels []string          `json:"rank_labels"`
	Pool       []string          `json:"pool"`
	Valid      bool              `json:"valid"`
	Complete   bool              `json:"complete"`
	Violation  *Violation        `json:"violation,omitempty"`
}

// RejectedResponse answers a move that could not be normalized. Placements
// is the request's placement, unchanged.
type RejectedResponse struct {
	Error      string            `json:"error"`
	Message    string            `json:"message,omitempty"`
	Placements placement.Payload `json:"placements"`
}

type ScoreResponse struct {
	Scheme string         `json:"scheme"`
	Points map[string]int `json:"points"`
}

// TallyResponse carries the standings and the best-deck overall points
// each deck earns from its final rank.
type TallyResponse struct {
	Ballots   int            `json:"ballots"`
	Standings []Standing     `json:"standings"`
	Awards    map[string]int `json:"awards"`
}

// Domain types

type Event struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	NumPods      int       `json:"num_pods"`
	Ranks        int       `json:"ranks"`
	RankLabels   []string  `json:"rank_labels"`
	Participants []string  `json:"participants"`
	Hosts        []string  `json:"hosts"`
	Rounds       int       `json:"rounds"`
	CreatedAt    time.Time `json:"created_at"`
}

type Pod struct {
	ID      string   `json:"id"`
	EventID string   `json:"event_id"`
	Round   int      `json:"round"`
	Table   int      `json:"table"`
	Players []string `json:"players"`
}

type Round struct {
	EventID string `json:"event_id"`
	Round   int    `json:"round"`
	Pods    []Pod  `json:"pods"`
}

// PodLayout seeds a ranking view for one table. Placements starts empty
// with every rank present.
type PodLayout struct {
	PodID      string            `json:"pod_id"`
	EventID    string            `json:"event_id"`
	Round      int               `json:"round"`
	Table      int               `json:"table"`
	Ranks      int               `json:"ranks"`
	RankLabels []string          `json:"rank_labels"`
	Roster     []string          `json:"roster"`
	Placements placement.Payload `json:"placements"`
}

type Violation struct {
	Rank   int    `json:"rank"`
	Reason string `json:"reason"`
}

type Standing struct {
	Occupant string `json:"occupant"`
	Points   int    `json:"points"`
	Placings []int  `json:"placings"`
	Rank     int    `json:"rank"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
