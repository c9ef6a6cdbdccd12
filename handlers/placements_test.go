// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/commander-pods/models"
	"github.com/danielhkuo/commander-pods/placement"
	"github.com/danielhkuo/commander-pods/testutil"
)

var fourPlayers = []string{"A", "B", "C", "D"}

func servePlacement(h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, testutil.MakeRequest("POST", path, body, nil))
	return w
}

func TestNormalizeEndpoint(t *testing.T) {
	h := NewPlacementHandler(testutil.GetTestConfig())

	tests := []struct {
		name       string
		req        models.PlacementRequest
		wantStatus int
		want       placement.Payload
	}{
		{
			name:       "shared first place moves down",
			req:        models.PlacementRequest{Ranks: 4, Roster: fourPlayers, Placements: placement.Payload{"1": {"A", "B"}}},
			wantStatus: http.StatusOK,
			want:       placement.Payload{"1": {}, "2": {"A", "B"}, "3": {}, "4": {}},
		},
		{
			name:       "valid placement is unchanged",
			req:        models.PlacementRequest{Ranks: 4, Roster: fourPlayers, Placements: placement.Payload{"1": {"A"}, "3": {"B", "C"}}},
			wantStatus: http.StatusOK,
			want:       placement.Payload{"1": {"A"}, "2": {}, "3": {"B", "C"}, "4": {}},
		},
		{
			name:       "overcrowded tie is rejected",
			req:        models.PlacementRequest{Ranks: 2, Roster: []string{"A", "B", "C"}, Placements: placement.Payload{"2": {"A", "B", "C"}}},
			wantStatus: http.StatusUnprocessableEntity,
			want:       placement.Payload{"1": {}, "2": {"A", "B", "C"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := servePlacement(h.Normalize, "/placements/normalize", tt.req)
			testutil.AssertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == http.StatusOK {
				var resp models.PlacementResponse
				testutil.AssertJSON(t, w, &resp)
				if diff := cmp.Diff(tt.want, resp.Placements); diff != "" {
					t.Errorf("placements mismatch (-want +got):\n%s", diff)
				}
				if !resp.Valid {
					t.Errorf("expected a valid placement, got violation %+v", resp.Violation)
				}
				return
			}

			var resp models.RejectedResponse
			testutil.AssertJSON(t, w, &resp)
			if diff := cmp.Diff(tt.want, resp.Placements); diff != "" {
				t.Errorf("rejected placements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeEndpointBadLayout(t *testing.T) {
	h := NewPlacementHandler(testutil.GetTestConfig())

	tests := map[string]any{
		"invalid JSON":     "not an object",
		"no ranks":         models.PlacementRequest{Ranks: 0, Roster: fourPlayers},
		"duplicate roster": models.PlacementRequest{Ranks: 4, Roster: []string{"A", "A"}},
		"empty occupant":   models.PlacementRequest{Ranks: 4, Roster: []string{"A", ""}},
		"too many ranks":   models.PlacementRequest{Ranks: placement.MaxRanks + 1, Roster: fourPlayers},
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := servePlacement(h.Normalize, "/placements/normalize", body)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestCheckEndpointRejectsHugeLayout(t *testing.T) {
	h := NewPlacementHandler(testutil.GetTestConfig())

	w := servePlacement(h.Check, "/placements/check", models.PlacementRequest{
		Ranks:  2_000_000,
		Roster: []string{"A"},
	})
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	if n := w.Body.Len(); n > 512 {
		t.Errorf("Expected a short error body, got %d bytes", n)
	}
}

func TestDropEndpoint(t *testing.T) {
	h := NewPlacementHandler(testutil.GetTestConfig())

	t.Run("terminal tie lifts the blocker", func(t *testing.T) {
		w := servePlacement(h.Drop, "/placements/drop", models.PlacementRequest{
			Ranks:      4,
			Roster:     fourPlayers,
			Placements: placement.Payload{"3": {"B"}, "4": {"A"}},
			Occupant:   "C",
			Rank:       4,
		})
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PlacementResponse
		testutil.AssertJSON(t, w, &resp)
		want := placement.Payload{"1": {}, "2": {"B"}, "3": {}, "4": {"A", "C"}}
		if diff := cmp.Diff(want, resp.Placements); diff != "" {
			t.Errorf("placements mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"D"}, resp.Pool); diff != "" {
			t.Errorf("pool mismatch (-want +got):\n%s", diff)
		}
		if resp.Complete {
			t.Error("placement with D in the pool should not be complete")
		}
	})

	t.Run("rejected drop keeps the prior placement", func(t *testing.T) {
		w := servePlacement(h.Drop, "/placements/drop", models.PlacementRequest{
			Ranks:      2,
			Roster:     []string{"A", "B", "C"},
			Placements: placement.Payload{"1": {"A"}, "2": {"B"}},
			Occupant:   "C",
			Rank:       2,
		})
		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

		var resp models.RejectedResponse
		testutil.AssertJSON(t, w, &resp)
		want := placement.Payload{"1": {"A"}, "2": {"B"}}
		if diff := cmp.Diff(want, resp.Placements); diff != "" {
			t.Errorf("placements mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown occupant", func(t *testing.T) {
		w := servePlacement(h.Drop, "/placements/drop", models.PlacementRequest{
			Ranks: 4, Roster: fourPlayers, Occupant: "Z", Rank: 1,
		})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("rank out of range", func(t *testing.T) {
		w := servePlacement(h.Drop, "/placements/drop", models.PlacementRequest{
			Ranks: 4, Roster: fourPlayers, Occupant: "A", Rank: 5,
		})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestRemoveEndpoint(t *testing.T) {
	h := NewPlacementHandler(testutil.GetTestConfig())

	w := servePlacement(h.Remove, "/placements/remove", models.PlacementRequest{
		Ranks:      4,
		Roster:     fourPlayers,
		Placements: placement.Payload{"1": {"D"}, "2": {"B"}, "4": {"A", "C"}},
		Occupant:   "A",
	})
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PlacementResponse
	testutil.AssertJSON(t, w, &resp)
	want := placement.Payload{"1": {"D"}, "2": {"B"}, "3": {}, "4": {"C"}}
	if diff := cmp.Diff(want, resp.Placements); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignEndpoint(t *testing.T) {
	h := NewPlacementHandler(testutil.GetTestConfig())

	tests := []struct {
		name       string
		placements placement.Payload
		occupant   string
		rank       int
		want       placement.Payload
	}{
		{
			name:       "pool occupant onto empty rank",
			placements: nil,
			occupant:   "A",
			rank:       2,
			want:       placement.Payload{"1": {}, "2": {"A"}, "3": {}},
		},
		{
			name:       "placed occupants swap",
			placements: placement.Payload{"1": {"A"}, "2": {"B"}},
			occupant:   "A",
			rank:       2,
			want:       placement.Payload{"1": {"B"}, "2": {"A"}, "3": {}},
		},
		{
			name:       "pool occupant evicts holder",
			placements: placement.Payload{"1": {"A"}},
			occupant:   "C",
			rank:       1,
			want:       placement.Payload{"1": {"C"}, "2": {}, "3": {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := servePlacement(h.Assign, "/placements/assign", models.PlacementRequest{
				Ranks:      3,
				Roster:     []string{"A", "B", "C"},
				Placements: tt.placements,
				Occupant:   tt.occupant,
				Rank:       tt.rank,
			})
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.PlacementResponse
			testutil.AssertJSON(t, w, &resp)
			if diff := cmp.Diff(tt.want, resp.Placements); diff != "" {
				t.Errorf("placements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckEndpoint(t *testing.T) {
	h := NewPlacementHandler(testutil.GetTestConfig())

	tests := []struct {
		name          string
		placements    placement.Payload
		wantValid     bool
		wantComplete  bool
		wantViolation *models.Violation
	}{
		{
			name:         "complete ranking",
			placements:   placement.Payload{"1": {"A"}, "2": {"B"}, "3": {"C"}, "4": {"D"}},
			wantValid:    true,
			wantComplete: true,
		},
		{
			name:         "legal tie, incomplete",
			placements:   placement.Payload{"1": {"A"}, "3": {"B", "C"}},
			wantValid:    true,
			wantComplete: false,
		},
		{
			name:          "shared first place",
			placements:    placement.Payload{"1": {"A", "B"}},
			wantValid:     false,
			wantViolation: &models.Violation{Rank: 1, Reason: "first place cannot be shared"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := servePlacement(h.Check, "/placements/check", models.PlacementRequest{
				Ranks: 4, Roster: fourPlayers, Placements: tt.placements,
			})
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.PlacementResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Valid != tt.wantValid || resp.Complete != tt.wantComplete {
				t.Errorf("valid=%v complete=%v, want valid=%v complete=%v", resp.Valid, resp.Complete, tt.wantValid, tt.wantComplete)
			}
			if diff := cmp.Diff(tt.wantViolation, resp.Violation); diff != "" {
				t.Errorf("violation mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckEndpointLabels(t *testing.T) {
	h := NewPlacementHandler(testutil.GetTestConfig())

	w := servePlacement(h.Check, "/placements/check", models.PlacementRequest{
		Ranks: 3, RankLabels: []string{"Winner"}, Roster: fourPlayers,
	})
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PlacementResponse
	testutil.AssertJSON(t, w, &resp)
	if diff := cmp.Diff([]string{"Winner", "2nd", "3rd"}, resp.RankLabels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestScoreEndpoint(t *testing.T) {
	h := NewPlacementHandler(testutil.GetTestConfig())

	t.Run("play phase with a tie", func(t *testing.T) {
		w := servePlacement(h.Score, "/placements/score", models.PlacementRequest{
			Ranks:      4,
			Roster:     fourPlayers,
			Placements: placement.Payload{"1": {"A"}, "2": {"B"}, "4": {"C", "D"}},
		})
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ScoreResponse
		testutil.AssertJSON(t, w, &resp)
		want := models.ScoreResponse{
			Scheme: "play_phase",
			Points: map[string]int{"A": 4, "B": 3, "C": 1, "D": 1},
		}
		if diff := cmp.Diff(want, resp); diff != "" {
			t.Errorf("score mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown scheme", func(t *testing.T) {
		w := servePlacement(h.Score, "/placements/score", models.PlacementRequest{
			Ranks: 4, Roster: fourPlayers, Scheme: "golf",
		})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("invalid placement", func(t *testing.T) {
		w := servePlacement(h.Score, "/placements/score", models.PlacementRequest{
			Ranks: 4, Roster: fourPlayers, Placements: placement.Payload{"1": {"A", "B"}},
		})
		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})
}
