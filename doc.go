// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the commander-pods API server.

commander-pods runs a casual Commander event: it seats players into pods
round by round, lets each table report its finishing order through the
placement engine, and tallies best-deck votes.

# Starting the Server

The server reads flags, environment variables and an optional .env file:

	DATABASE_URL=file:pods.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -settings event.yaml

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - EVENT_SETTINGS (-settings): YAML file with pods, rounds and points

# Architecture

The server uses a handler-based architecture with dependency injection:

  - placement: ranking state, tie normalization and swap placement
  - scoring: points schemes and standings
  - pairing: pod sizes and round building
  - realtime: per-event server-sent event fan-out
  - handlers: HTTP request handlers (events, placements, votes, streams)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, panic recovery, JSON helpers
  - models: Request/response types
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
