// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Portable between postgres and sqlite: TEXT/INTEGER columns only and
// CURRENT_TIMESTAMP defaults.
const schema = `
-- Events
CREATE TABLE IF NOT EXISTS event (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    num_pods INTEGER NOT NULL CHECK (num_pods >= 1),
    ranks INTEGER NOT NULL CHECK (ranks BETWEEN 1 AND 32),
    rank_labels TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Participants, in registration order
CREATE TABLE IF NOT EXISTS participant (
    event_id TEXT NOT NULL REFERENCES event(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    position INTEGER NOT NULL,
    host INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (event_id, name)
);

CREATE INDEX IF NOT EXISTS idx_participant_event_id ON participant(event_id);

-- Pods: one table of one round
CREATE TABLE IF NOT EXISTS pod (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES event(id) ON DELETE CASCADE,
    round INTEGER NOT NULL CHECK (round >= 1),
    table_no INTEGER NOT NULL CHECK (table_no >= 1),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (event_id, round, table_no)
);

CREATE INDEX IF NOT EXISTS idx_pod_event_round ON pod(event_id, round);

-- Seats
CREATE TABLE IF NOT EXISTS pod_seat (
    pod_id TEXT NOT NULL REFERENCES pod(id) ON DELETE CASCADE,
    participant TEXT NOT NULL,
    seat INTEGER NOT NULL,
    PRIMARY KEY (pod_id, participant)
);

CREATE INDEX IF NOT EXISTS idx_pod_seat_pod_id ON pod_seat(pod_id);
`
