// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the commander-pods API.

# Handler Types

Each handler is a struct with its dependencies:

  - EventHandler: events, rounds, pods and event streams (*sql.DB, Config, *realtime.Hub)
  - PlacementHandler: the placement engine (Config)
  - VoteHandler: best-deck vote tallies (Config)

Handlers are created via constructor functions:

	eventHandler := handlers.NewEventHandler(db, cfg, hub)

# Events and Rounds

	POST /events                     → CreateEvent
	GET  /events/{id}                → GetEvent
	POST /events/{id}/rounds         → CreateRound (409 after max_rounds)
	GET  /events/{id}/rounds/{round} → GetRound
	GET  /pods/{id}                  → GetPod

CreateRound pairs against every earlier round of the event, seeded from the
event id and round number, and publishes a "round" event.

# Placements

The placement endpoints are stateless. Every request carries the layout
(ranks, rank_labels, roster) and the current placements:

	POST /placements/normalize → Normalize (optional trigger)
	POST /placements/drop      → Drop (occupant, rank)
	POST /placements/remove    → Remove (occupant)
	POST /placements/assign    → Assign (occupant, rank), never ties
	POST /placements/check     → Check
	POST /placements/score     → Score (scheme)

A placement that cannot be normalized is answered with 422 and the
placement the client should keep showing.

# Streams

	GET /events/{id}/stream → Stream

Sends "hello" with the number of rounds paired, then one message per
published event, with a keepalive comment every 25 seconds.
*/
package handlers
