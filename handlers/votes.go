// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/commander-pods/cliparse"
	"github.com/danielhkuo/commander-pods/middleware"
	"github.com/danielhkuo/commander-pods/models"
	"github.com/danielhkuo/commander-pods/placement"
	"github.com/danielhkuo/commander-pods/scoring"
)

type VoteHandler struct {
	cfg cliparse.Config
}

func NewVoteHandler(cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{cfg: cfg}
}

// Tally handles POST /votes/tally
// Every ballot must be strict: one deck per rank, no deck twice, only
// roster decks. Standings use the best-deck voting scheme; awards turn the
// final ranks into best-deck overall points.
func (h *VoteHandler) Tally(w http.ResponseWriter, r *http.Request) {
	var req models.TallyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	scheme := h.cfg.Settings.Points.BestDeckVoting
	if req.Ranks == 0 {
		req.Ranks = len(scheme)
	}

	layout, err := placement.FromPayload(req.Ranks, req.Roster, nil)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ballots := make([]placement.State, 0, len(req.Ballots))
	for i, p := range req.Ballots {
		s, err := parseBallot(layout, p)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusUnprocessableEntity, fmt.Sprintf("ballot %d: %v", i+1, err))
			return
		}
		ballots = append(ballots, s)
	}

	standings := scoring.Tally(layout.Roster(), req.Ranks, ballots, scheme)
	awards := scoring.Award(standings, h.cfg.Settings.Points.BestDeckOverall)
	resp := models.TallyResponse{
		Ballots:   len(ballots),
		Standings: make([]models.Standing, 0, len(standings)),
		Awards:    make(map[string]int, len(awards)),
	}
	for deck, pts := range awards {
		resp.Awards[string(deck)] = pts
	}
	for _, st := range standings {
		resp.Standings = append(resp.Standings, models.Standing{
			Occupant: string(st.Occupant),
			Points:   st.Points,
			Placings: st.Placings,
			Rank:     st.Rank,
		})
	}

	slog.Info("votes tallied", "ballots", len(ballots), "decks", len(standings))

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// parseBallot rejects what seeding would otherwise skip: unknown ranks,
// unknown decks and decks listed twice.
func parseBallot(layout placement.State, p placement.Payload) (placement.State, error) {
	seen := make(map[string]bool)
	for key, names := range p {
		rank, err := strconv.Atoi(key)
		if err != nil || rank < 1 || rank > layout.Ranks() {
			return placement.State{}, fmt.Errorf("unknown rank %q", key)
		}
		for _, name := range names {
			if !layout.Known(placement.Occupant(name)) {
				return placement.State{}, fmt.Errorf("%q is not on the roster", name)
			}
			if seen[name] {
				return placement.State{}, fmt.Errorf("%q is listed twice", name)
			}
			seen[name] = true
		}
	}

	s := layout.Seed(p)
	if err := s.CheckStrict(); err != nil {
		return placement.State{}, err
	}
	return s, nil
}
