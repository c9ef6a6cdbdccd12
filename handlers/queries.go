// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/commander-pods/models"
	"github.com/danielhkuo/commander-pods/pairing"
)

var (
	errEventNotFound = errors.New("event not found")
	errPodNotFound   = errors.New("pod not found")
)

// querier is satisfied by *sql.DB and *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// loadEvent reads an event with its participants and the number of rounds
// paired so far.
func loadEvent(ctx context.Context, q querier, eventID string) (models.Event, error) {
	var (
		ev     models.Event
		labels string
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, name, num_pods, ranks, rank_labels, created_at
		FROM event
		WHERE id = $1
	`, eventID).Scan(&ev.ID, &ev.Name, &ev.NumPods, &ev.Ranks, &labels, &ev.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, errEventNotFound
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("query event: %w", err)
	}
	if err := json.Unmarshal([]byte(labels), &ev.RankLabels); err != nil {
		return models.Event{}, fmt.Errorf("decode rank labels: %w", err)
	}

	ev.Participants, ev.Hosts, err = loadParticipants(ctx, q, eventID)
	if err != nil {
		return models.Event{}, err
	}

	err = q.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(round), 0) FROM pod WHERE event_id = $1
	`, eventID).Scan(&ev.Rounds)
	if err != nil {
		return models.Event{}, fmt.Errorf("count rounds: %w", err)
	}

	return ev, nil
}

// loadParticipants returns every participant in registration order and
// the hosts among them.
func loadParticipants(ctx context.Context, q querier, eventID string) ([]string, []string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT name, host FROM participant
		WHERE event_id = $1
		ORDER BY position
	`, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	names, hosts := []string{}, []string{}
	for rows.Next() {
		var (
			name string
			host int
		)
		if err := rows.Scan(&name, &host); err != nil {
			return nil, nil, fmt.Errorf("scan participant: %w", err)
		}
		names = append(names, name)
		if host != 0 {
			hosts = append(hosts, name)
		}
	}
	return names, hosts, rows.Err()
}

// loadPods returns the pods of an event with their seated players, ordered
// by round then table. round <= 0 selects every round.
func loadPods(ctx context.Context, q querier, eventID string, round int) ([]models.Pod, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT p.id, p.round, p.table_no, s.participant
		FROM pod p
		JOIN pod_seat s ON s.pod_id = p.id
		WHERE p.event_id = $1 AND ($2 <= 0 OR p.round = $2)
		ORDER BY p.round, p.table_no, s.seat
	`, eventID, round)
	if err != nil {
		return nil, fmt.Errorf("query pods: %w", err)
	}
	defer rows.Close()

	pods := []models.Pod{}
	for rows.Next() {
		var (
			id, player   string
			rnd, tableNo int
		)
		if err := rows.Scan(&id, &rnd, &tableNo, &player); err != nil {
			return nil, fmt.Errorf("scan pod: %w", err)
		}
		if n := len(pods); n == 0 || pods[n-1].ID != id {
			pods = append(pods, models.Pod{ID: id, EventID: eventID, Round: rnd, Table: tableNo, Players: []string{}})
		}
		last := &pods[len(pods)-1]
		last.Players = append(last.Players, player)
	}
	return pods, rows.Err()
}

// loadHistory counts every pairing of the rounds played so far.
func loadHistory(ctx context.Context, q querier, eventID string) (pairing.History, error) {
	pods, err := loadPods(ctx, q, eventID, 0)
	if err != nil {
		return nil, err
	}
	h := pairing.NewHistory()
	for _, pod := range pods {
		h.Record([][]string{pod.Players})
	}
	return h, nil
}

// loadPod reads one pod and the ranking layout of its event.
func loadPod(ctx context.Context, q querier, podID string) (models.Pod, models.Event, error) {
	var (
		pod    models.Pod
		ev     models.Event
		labels string
	)
	err := q.QueryRowContext(ctx, `
		SELECT p.id, p.event_id, p.round, p.table_no, e.ranks, e.rank_labels
		FROM pod p
		JOIN event e ON e.id = p.event_id
		WHERE p.id = $1
	`, podID).Scan(&pod.ID, &pod.EventID, &pod.Round, &pod.Table, &ev.Ranks, &labels)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Pod{}, models.Event{}, errPodNotFound
	}
	if err != nil {
		return models.Pod{}, models.Event{}, fmt.Errorf("query pod: %w", err)
	}
	ev.ID = pod.EventID
	if err := json.Unmarshal([]byte(labels), &ev.RankLabels); err != nil {
		return models.Pod{}, models.Event{}, fmt.Errorf("decode rank labels: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT participant FROM pod_seat
		WHERE pod_id = $1
		ORDER BY seat
	`, podID)
	if err != nil {
		return models.Pod{}, models.Event{}, fmt.Errorf("query seats: %w", err)
	}
	defer rows.Close()

	pod.Players = []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return models.Pod{}, models.Event{}, fmt.Errorf("scan seat: %w", err)
		}
		pod.Players = append(pod.Players, name)
	}
	return pod, ev, rows.Err()
}
