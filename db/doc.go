// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on PostgreSQL and SQLite.

# Tables

  - event: Event name, pods per round, ranks per pod ranking and rank labels
  - participant: Registered players in registration order
  - pod: One table of one round
  - pod_seat: Players seated at a pod

# Relationships

	event 1──* participant
	event 1──* pod
	pod 1──* pod_seat

All foreign keys use ON DELETE CASCADE. Rankings and votes are not stored;
the placement endpoints are stateless.
*/
package db
