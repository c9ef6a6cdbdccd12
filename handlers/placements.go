// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/commander-pods/cliparse"
	"github.com/danielhkuo/commander-pods/middleware"
	"github.com/danielhkuo/commander-pods/models"
	"github.com/danielhkuo/commander-pods/placement"
	"github.com/danielhkuo/commander-pods/scoring"
)

// PlacementHandler runs the placement engine for a client. It is stateless:
// every request carries the layout and the current placement.
type PlacementHandler struct {
	cfg cliparse.Config
}

func NewPlacementHandler(cfg cliparse.Config) *PlacementHandler {
	return &PlacementHandler{cfg: cfg}
}

// decodePlacement parses the request and builds its state. Names in
// placements that are not on the roster are ignored.
func decodePlacement(w http.ResponseWriter, r *http.Request) (models.PlacementRequest, placement.State, bool) {
	var req models.PlacementRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return req, placement.State{}, false
	}

	s, err := placement.FromPayload(req.Ranks, req.Roster, req.Placements)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return req, placement.State{}, false
	}
	return req, s.WithLabels(req.RankLabels), true
}

// target validates the occupant and rank of a drop or assign request.
func target(w http.ResponseWriter, req models.PlacementRequest, s placement.State) (placement.Occupant, placement.Rank, bool) {
	o := placement.Occupant(req.Occupant)
	if !s.Known(o) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "occupant is not on the roster")
		return "", 0, false
	}
	if req.Rank < 1 || req.Rank > s.Ranks() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "rank is out of range")
		return "", 0, false
	}
	return o, placement.Rank(req.Rank), true
}

func rankLabels(s placement.State) []string {
	labels := make([]string, 0, s.Ranks())
	for r := placement.Rank(1); int(r) <= s.Ranks(); r++ {
		labels = append(labels, s.Label(r))
	}
	return labels
}

func placementResponse(s placement.State) models.PlacementResponse {
	resp := models.PlacementResponse{
		Placements: s.Payload(),
		RankLabels: rankLabels(s),
		Pool:       []string{},
		Valid:      true,
		Complete:   s.Complete(),
	}
	for _, o := range s.Pool() {
		resp.Pool = append(resp.Pool, string(o))
	}

	var v *placement.Violation
	if err := s.Check(); errors.As(err, &v) {
		resp.Valid = false
		resp.Violation = &models.Violation{Rank: int(v.Rank), Reason: v.Reason}
	}
	return resp
}

// writeMoveError answers a failed normalization. kept is the placement the
// client should keep showing.
func writeMoveError(w http.ResponseWriter, err error, kept placement.State) {
	if errors.Is(err, placement.ErrRejected) {
		middleware.JSONResponse(w, http.StatusUnprocessableEntity, models.RejectedResponse{
			Error:      http.StatusText(http.StatusUnprocessableEntity),
			Message:    "placement cannot be normalized",
			Placements: kept.Payload(),
		})
		return
	}
	slog.Error("failed to normalize placement", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Normalization failed")
}

// Normalize handles POST /placements/normalize
func (h *PlacementHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	req, s, ok := decodePlacement(w, r)
	if !ok {
		return
	}

	next, err := placement.Normalize(s, placement.Occupant(req.Trigger))
	if err != nil {
		writeMoveError(w, err, s)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, placementResponse(next))
}

// Drop handles POST /placements/drop
// The occupant lands on rank, then the placement is normalized with the
// occupant as trigger. A rejected drop answers with the prior placement.
func (h *PlacementHandler) Drop(w http.ResponseWriter, r *http.Request) {
	req, s, ok := decodePlacement(w, r)
	if !ok {
		return
	}
	o, rank, ok := target(w, req, s)
	if !ok {
		return
	}

	board, err := placement.NewBoard(s)
	if err != nil {
		writeMoveError(w, err, s)
		return
	}
	if err := board.Drop(o, rank); err != nil {
		writeMoveError(w, err, board.State())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, placementResponse(board.State()))
}

// Remove handles POST /placements/remove
func (h *PlacementHandler) Remove(w http.ResponseWriter, r *http.Request) {
	req, s, ok := decodePlacement(w, r)
	if !ok {
		return
	}
	o := placement.Occupant(req.Occupant)
	if !s.Known(o) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "occupant is not on the roster")
		return
	}

	board, err := placement.NewBoard(s)
	if err != nil {
		writeMoveError(w, err, s)
		return
	}
	if err := board.Remove(o); err != nil {
		writeMoveError(w, err, board.State())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, placementResponse(board.State()))
}

// Assign handles POST /placements/assign
// Places the occupant with swap semantics; never forms ties.
func (h *PlacementHandler) Assign(w http.ResponseWriter, r *http.Request) {
	req, s, ok := decodePlacement(w, r)
	if !ok {
		return
	}
	o, rank, ok := target(w, req, s)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, placementResponse(placement.Place(s, o, rank)))
}

// Check handles POST /placements/check
func (h *PlacementHandler) Check(w http.ResponseWriter, r *http.Request) {
	_, s, ok := decodePlacement(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, placementResponse(s))
}

// Score handles POST /placements/score
// Only valid placements are scored.
func (h *PlacementHandler) Score(w http.ResponseWriter, r *http.Request) {
	req, s, ok := decodePlacement(w, r)
	if !ok {
		return
	}

	scheme, err := h.cfg.Settings.Points.Scheme(req.Scheme)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.Check(); err != nil {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	name := req.Scheme
	if name == "" {
		name = scoring.SchemePlayPhase
	}
	points := make(map[string]int, s.Placed())
	for o, pts := range s.Points(scheme) {
		points[string(o)] = pts
	}

	middleware.JSONResponse(w, http.StatusOK, models.ScoreResponse{Scheme: name, Points: points})
}
