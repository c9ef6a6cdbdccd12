// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/commander-pods/cliparse"
	"github.com/danielhkuo/commander-pods/db"
)

// TestDBURL is the connection string for the test database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is its own database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: "sqlite",
		Settings:     cliparse.DefaultSettings(),
	}
}

// CreateTestEvent inserts an event with its participants and returns its ID
func CreateTestEvent(t *testing.T, conn *sql.DB, numPods, ranks int, participants ...string) string {
	t.Helper()

	eventID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO event (id, name, num_pods, ranks, rank_labels, created_at)
		VALUES ($1, 'Test Event', $2, $3, '[]', $4)
	`, eventID, numPods, ranks, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	for i, p := range participants {
		_, err := conn.Exec(`
			INSERT INTO participant (event_id, name, position)
			VALUES ($1, $2, $3)
		`, eventID, p, i)
		if err != nil {
			t.Fatalf("Failed to create test participant: %v", err)
		}
	}

	return eventID
}

// CreateTestPod seats players at a table of a round and returns the pod ID
func CreateTestPod(t *testing.T, conn *sql.DB, eventID string, round, table int, players ...string) string {
	t.Helper()

	podID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO pod (id, event_id, round, table_no, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, podID, eventID, round, table, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test pod: %v", err)
	}

	for seat, p := range players {
		_, err := conn.Exec(`
			INSERT INTO pod_seat (pod_id, participant, seat)
			VALUES ($1, $2, $3)
		`, podID, p, seat)
		if err != nil {
			t.Fatalf("Failed to create test seat: %v", err)
		}
	}

	return podID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
