// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateEventRequest: name, participants, num_pods, ranks, rank_labels
  - PlacementRequest: ranks, rank_labels, roster, placements plus the
    per-endpoint trigger, occupant, rank or scheme
  - TallyRequest: ranks, roster, ballots

# Response Types

Types for JSON responses:

  - CreateEventResponse: event_id
  - PlacementResponse: placements, rank_labels, pool, valid, complete, violation
  - RejectedResponse: error, message and the unchanged placements
  - ScoreResponse: scheme, points per occupant
  - TallyResponse: ballots counted, standings
  - ErrorResponse: error, message

# Domain Types

  - Event: event settings, participants and rounds paired so far
  - Round: the pods of one round
  - Pod: one table of one round with its players
  - PodLayout: the ranking layout of a pod, ready to seed a placement view
  - Violation: first broken ranking rule
  - Standing: tallied points, placings and competition rank

# Placements

Placements use the placement wire format, rank number to occupants:

	{"1": ["Alice"], "2": [], "3": ["Bob", "Cara"], "4": []}
*/
package models
