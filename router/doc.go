// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the commander-pods API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Events and pairing:

	POST /events                      - Create event with participants
	GET  /events/{id}                 - Event details and rounds paired
	POST /events/{id}/rounds          - Pair the next round
	GET  /events/{id}/rounds/{round}  - Pods of a round
	GET  /events/{id}/stream          - Server-sent events for the event
	GET  /pods/{id}                   - Ranking layout of a pod

Placement engine (stateless, the client sends the placement):

	POST /placements/normalize - Repair a placement
	POST /placements/drop      - Drop an occupant onto a rank
	POST /placements/remove    - Send an occupant back to the pool
	POST /placements/assign    - Place with swap semantics
	POST /placements/check     - Report validity and completeness
	POST /placements/score     - Points per occupant

Voting:

	POST /votes/tally - Tally best-deck ballots

# Handler Initialization

The router creates handler instances with dependency injection:

	hub := realtime.NewHub()
	eventHandler := handlers.NewEventHandler(db, cfg, hub)
	placementHandler := handlers.NewPlacementHandler(cfg)
	voteHandler := handlers.NewVoteHandler(cfg)

The hub is shared so that pairing a round notifies open streams.
*/
package router
