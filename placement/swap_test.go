// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package placement

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlace(t *testing.T) {
	roster := []string{"X", "Y", "Z"}

	tests := []struct {
		name     string
		start    Payload
		occupant Occupant
		target   Rank
		want     Payload
		wantPool []Occupant
	}{
		{
			name:     "from pool onto empty rank",
			start:    Payload{},
			occupant: "X",
			target:   2,
			want:     Payload{"1": {}, "2": {"X"}, "3": {}},
			wantPool: []Occupant{"Y", "Z"},
		},
		{
			name:     "from pool displaces holder to pool",
			start:    Payload{"1": {"Y"}},
			occupant: "X",
			target:   1,
			want:     Payload{"1": {"X"}, "2": {}, "3": {}},
			wantPool: []Occupant{"Y", "Z"},
		},
		{
			name:     "ranked occupant swaps with holder",
			start:    Payload{"1": {"Y"}, "2": {"X"}},
			occupant: "X",
			target:   1,
			want:     Payload{"1": {"X"}, "2": {"Y"}, "3": {}},
			wantPool: []Occupant{"Z"},
		},
		{
			name:     "ranked occupant moves to empty rank",
			start:    Payload{"1": {"X"}, "2": {"Y"}},
			occupant: "X",
			target:   3,
			want:     Payload{"1": {}, "2": {"Y"}, "3": {"X"}},
			wantPool: []Occupant{"Z"},
		},
		{
			name:     "same rank is a no-op",
			start:    Payload{"1": {"X"}},
			occupant: "X",
			target:   1,
			want:     Payload{"1": {"X"}, "2": {}, "3": {}},
			wantPool: []Occupant{"Y", "Z"},
		},
		{
			name:     "unknown occupant is a no-op",
			start:    Payload{"1": {"X"}},
			occupant: "Nobody",
			target:   2,
			want:     Payload{"1": {"X"}, "2": {}, "3": {}},
			wantPool: []Occupant{"Y", "Z"},
		},
		{
			name:     "unknown rank is a no-op",
			start:    Payload{"1": {"X"}},
			occupant: "Y",
			target:   7,
			want:     Payload{"1": {"X"}, "2": {}, "3": {}},
			wantPool: []Occupant{"Y", "Z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustState(t, 3, roster, tt.start)
			got := Place(s, tt.occupant, tt.target)

			if diff := cmp.Diff(tt.want, got.Payload()); diff != "" {
				t.Errorf("placement mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantPool, got.Pool()); diff != "" {
				t.Errorf("pool mismatch (-want +got):\n%s", diff)
			}
			if err := got.CheckStrict(); err != nil {
				t.Errorf("Place produced a non-strict ranking: %v", err)
			}
		})
	}
}

func TestPlaceDoesNotModifyInput(t *testing.T) {
	s := mustState(t, 3, []string{"X", "Y"}, Payload{"1": {"Y"}, "2": {"X"}})
	before := s.Payload()

	Place(s, "X", 1)

	if diff := cmp.Diff(before, s.Payload()); diff != "" {
		t.Errorf("input state was mutated (-before +after):\n%s", diff)
	}
}
