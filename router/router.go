// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/commander-pods/cliparse"
	"github.com/danielhkuo/commander-pods/handlers"
	"github.com/danielhkuo/commander-pods/middleware"
	"github.com/danielhkuo/commander-pods/realtime"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	hub := realtime.NewHub()

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(db, cfg, hub)
	placementHandler := handlers.NewPlacementHandler(cfg)
	voteHandler := handlers.NewVoteHandler(cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Events and pairing
	mux.HandleFunc("POST /events", middleware.WithLogging(eventHandler.CreateEvent))
	mux.HandleFunc("GET /events/{id}", middleware.WithLogging(eventHandler.GetEvent))
	mux.HandleFunc("POST /events/{id}/rounds", middleware.WithLogging(eventHandler.CreateRound))
	mux.HandleFunc("GET /events/{id}/rounds/{round}", middleware.WithLogging(eventHandler.GetRound))
	mux.HandleFunc("GET /events/{id}/stream", middleware.WithLogging(eventHandler.Stream))
	mux.HandleFunc("GET /pods/{id}", middleware.WithLogging(eventHandler.GetPod))

	// Placement engine (stateless)
	mux.HandleFunc("POST /placements/normalize", middleware.WithLogging(placementHandler.Normalize))
	mux.HandleFunc("POST /placements/drop", middleware.WithLogging(placementHandler.Drop))
	mux.HandleFunc("POST /placements/remove", middleware.WithLogging(placementHandler.Remove))
	mux.HandleFunc("POST /placements/assign", middleware.WithLogging(placementHandler.Assign))
	mux.HandleFunc("POST /placements/check", middleware.WithLogging(placementHandler.Check))
	mux.HandleFunc("POST /placements/score", middleware.WithLogging(placementHandler.Score))

	// Best-deck voting
	mux.HandleFunc("POST /votes/tally", middleware.WithLogging(voteHandler.Tally))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("commander-pods API v1"))
	})

	return mux
}
