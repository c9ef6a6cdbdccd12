// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/commander-pods/cliparse"
	"github.com/danielhkuo/commander-pods/middleware"
	"github.com/danielhkuo/commander-pods/models"
	"github.com/danielhkuo/commander-pods/pairing"
	"github.com/danielhkuo/commander-pods/placement"
	"github.com/danielhkuo/commander-pods/realtime"
)

const maxPods = 32

type EventHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	hub *realtime.Hub
}

func NewEventHandler(db *sql.DB, cfg cliparse.Config, hub *realtime.Hub) *EventHandler {
	return &EventHandler{db: db, cfg: cfg, hub: hub}
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	participants := make([]string, 0, len(req.Participants))
	seen := make(map[string]bool, len(req.Participants))
	for _, p := range req.Participants {
		p = strings.TrimSpace(p)
		if p == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "participant names cannot be empty")
			return
		}
		if seen[p] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "duplicate participant: "+p)
			return
		}
		seen[p] = true
		participants = append(participants, p)
	}
	if need := h.cfg.Settings.MinParticipants; len(participants) < need {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least "+strconv.Itoa(need)+" participants are required")
		return
	}

	if req.NumPods == 0 {
		req.NumPods = h.cfg.Settings.DefaultNumPods
	}
	if req.NumPods < 1 || req.NumPods > maxPods {
		middleware.ErrorResponse(w, http.StatusBadRequest, "num_pods must be between 1 and "+strconv.Itoa(maxPods))
		return
	}
	if req.Ranks == 0 {
		req.Ranks = h.cfg.Settings.RoundRanks
	}
	if req.Ranks < 1 || req.Ranks > placement.MaxRanks {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ranks must be between 1 and "+strconv.Itoa(placement.MaxRanks))
		return
	}
	// Every table must be rankable without ties: a pod seats at most one
	// player per rank.
	if seats := (len(participants) + req.NumPods - 1) / req.NumPods; seats > req.Ranks {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"pods of "+strconv.Itoa(seats)+" players need at least "+strconv.Itoa(seats)+" ranks, got "+strconv.Itoa(req.Ranks))
		return
	}
	hosts := make(map[string]bool, len(req.Hosts))
	for _, host := range req.Hosts {
		host = strings.TrimSpace(host)
		if !seen[host] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "host is not a participant: "+host)
			return
		}
		if hosts[host] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "duplicate host: "+host)
			return
		}
		hosts[host] = true
	}
	if len(hosts) > req.NumPods {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at most one host per pod")
		return
	}
	if len(req.RankLabels) > req.Ranks {
		middleware.ErrorResponse(w, http.StatusBadRequest, "more rank_labels than ranks")
		return
	}
	if req.RankLabels == nil {
		req.RankLabels = []string{}
	}
	labels, err := json.Marshal(req.RankLabels)
	if err != nil {
		slog.Error("failed to encode rank labels", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	eventID := uuid.NewString()

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(r.Context(), `
		INSERT INTO event (id, name, num_pods, ranks, rank_labels, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, eventID, req.Name, req.NumPods, req.Ranks, string(labels), time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	for i, p := range participants {
		_, err = tx.ExecContext(r.Context(), `
			INSERT INTO participant (event_id, name, position, host)
			VALUES ($1, $2, $3, $4)
		`, eventID, p, i, hostFlag(hosts[p]))
		if err != nil {
			slog.Error("failed to insert participant", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	slog.Info("event created", "event_id", eventID, "participants", len(participants), "num_pods", req.NumPods, "hosts", len(hosts))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateEventResponse{EventID: eventID})
}

func hostFlag(host bool) int {
	if host {
		return 1
	}
	return 0
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := loadEvent(r.Context(), h.db, r.PathValue("id"))
	if errors.Is(err, errEventNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to load event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ev)
}

// CreateRound handles POST /events/{id}/rounds
// Pairs the next round against the history of every earlier round. The
// first round of an event with hosts opens each pod with a host.
func (h *EventHandler) CreateRound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := r.PathValue("id")

	ev, err := loadEvent(ctx, h.db, eventID)
	if errors.Is(err, errEventNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to load event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if ev.Rounds >= h.cfg.Settings.MaxRounds {
		middleware.ErrorResponse(w, http.StatusConflict, "All rounds have been paired")
		return
	}

	history, err := loadHistory(ctx, h.db, eventID)
	if err != nil {
		slog.Error("failed to load pairing history", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	round := ev.Rounds + 1
	rng := roundRand(eventID, round)
	var tables [][]string
	if round == 1 && len(ev.Hosts) > 0 {
		tables, err = pairing.FirstRound(ev.Participants, ev.NumPods, ev.Hosts, rng)
	} else {
		tables, err = pairing.BuildRound(ev.Participants, ev.NumPods, history, rng)
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	}

	pods, err := h.insertRound(ctx, eventID, round, tables)
	if err != nil {
		// A concurrent request may have paired this round first
		if existing, qerr := loadPods(ctx, h.db, eventID, round); qerr == nil && len(existing) > 0 {
			middleware.ErrorResponse(w, http.StatusConflict, "Round "+strconv.Itoa(round)+" was already paired")
			return
		}
		slog.Error("failed to insert round", "error", err, "event_id", eventID, "round", round)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create round")
		return
	}

	slog.Info("round paired", "event_id", eventID, "round", round, "pods", len(pods))
	h.hub.Publish(eventID, realtime.EventRound)

	middleware.JSONResponse(w, http.StatusCreated, models.Round{EventID: eventID, Round: round, Pods: pods})
}

func (h *EventHandler) insertRound(ctx context.Context, eventID string, round int, tables [][]string) ([]models.Pod, error) {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	pods := make([]models.Pod, 0, len(tables))
	for i, players := range tables {
		pod := models.Pod{ID: uuid.NewString(), EventID: eventID, Round: round, Table: i + 1, Players: players}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pod (id, event_id, round, table_no, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, pod.ID, eventID, round, pod.Table, now)
		if err != nil {
			return nil, err
		}
		for seat, p := range players {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO pod_seat (pod_id, participant, seat)
				VALUES ($1, $2, $3)
			`, pod.ID, p, seat)
			if err != nil {
				return nil, err
			}
		}
		pods = append(pods, pod)
	}

	return pods, tx.Commit()
}

// roundRand seeds pairing from the event id and round number, so a round
// can be reproduced from the same history.
func roundRand(eventID string, round int) *rand.Rand {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(eventID))
	if parsed, err := uuid.Parse(eventID); err == nil {
		id = parsed
	}
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])
	return rand.New(rand.NewPCG(hi, lo^uint64(round)))
}

// GetRound handles GET /events/{id}/rounds/{round}
func (h *EventHandler) GetRound(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	round, err := strconv.Atoi(r.PathValue("round"))
	if err != nil || round < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "round must be a positive number")
		return
	}

	pods, err := loadPods(r.Context(), h.db, eventID, round)
	if err != nil {
		slog.Error("failed to load round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if len(pods) == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Round not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.Round{EventID: eventID, Round: round, Pods: pods})
}

// GetPod handles GET /pods/{id}
// Returns the empty ranking layout of the table, ready to seed a view.
func (h *EventHandler) GetPod(w http.ResponseWriter, r *http.Request) {
	pod, ev, err := loadPod(r.Context(), h.db, r.PathValue("id"))
	if errors.Is(err, errPodNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pod not found")
		return
	}
	if err != nil {
		slog.Error("failed to load pod", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	state, err := placement.FromPayload(ev.Ranks, pod.Players, nil)
	if err != nil {
		slog.Error("stored pod has an invalid layout", "pod_id", pod.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Invalid pod layout")
		return
	}
	state = state.WithLabels(ev.RankLabels)

	middleware.JSONResponse(w, http.StatusOK, models.PodLayout{
		PodID:      pod.ID,
		EventID:    pod.EventID,
		Round:      pod.Round,
		Table:      pod.Table,
		Ranks:      state.Ranks(),
		RankLabels: rankLabels(state),
		Roster:     pod.Players,
		Placements: state.Payload(),
	})
}
