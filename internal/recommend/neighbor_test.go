// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"testing"

	"github.com/tomtom215/reelmatch/internal/store"
)

func TestFindNearest(t *testing.T) {
	tests := []struct {
		name     string
		targetID int
		profiles map[int]store.Profile
		want     int
	}{
		{
			name:     "single candidate wins",
			targetID: 10,
			profiles: map[int]store.Profile{
				10: {"Comedy": 5.0, "Drama": 1.0},
				20: {"Comedy": 4.5, "Drama": 5.0},
			},
			want: 20,
		},
		{
			name:     "most similar profile wins",
			targetID: 1,
			profiles: map[int]store.Profile{
				1: {"Comedy": 5.0},
				2: {"Comedy": 5.0},
				3: {"Drama": 5.0},
			},
			want: 2,
		},
		{
			name:     "identical scores break toward the larger id",
			targetID: 1,
			profiles: map[int]store.Profile{
				1: {"Comedy": 5.0},
				5: {"Comedy": 3.0},
				9: {"Comedy": 3.0},
				7: {"Comedy": 3.0},
			},
			want: 9,
		},
		{
			name:     "target with empty profile still selects by tie-break",
			targetID: 1,
			profiles: map[int]store.Profile{
				1: {},
				2: {"Comedy": 1.0},
				3: {"Drama": 2.0},
			},
			// Every candidate scores 0.0 against an empty profile.
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindNearest(tt.targetID, tt.profiles, 4)
			if err != nil {
				t.Fatalf("FindNearest() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FindNearest() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindNearestExcludesTarget(t *testing.T) {
	profiles := map[int]store.Profile{
		10: {"Comedy": 5.0},
		20: {"Drama": 1.0},
	}

	// User 10 is maximally similar to itself; it must still never win.
	got, err := FindNearest(10, profiles, 1)
	if err != nil {
		t.Fatalf("FindNearest() error = %v", err)
	}
	if got == 10 {
		t.Error("FindNearest() selected the target user itself")
	}
}

func TestFindNearestNoCandidates(t *testing.T) {
	profiles := map[int]store.Profile{10: {"Comedy": 5.0}}

	_, err := FindNearest(10, profiles, 4)
	var noOthers *NoOtherUsersError
	if !errors.As(err, &noOthers) {
		t.Fatalf("FindNearest() error = %v, want *NoOtherUsersError", err)
	}
	if noOthers.TargetID != 10 {
		t.Errorf("TargetID = %d, want 10", noOthers.TargetID)
	}
}

func TestFindNearestUnknownTarget(t *testing.T) {
	profiles := map[int]store.Profile{10: {"Comedy": 5.0}}

	_, err := FindNearest(999, profiles, 4)
	var unknownUser *store.UnknownUserError
	if !errors.As(err, &unknownUser) {
		t.Fatalf("FindNearest() error = %v, want *store.UnknownUserError", err)
	}
}

func TestFindNearestDeterministicAcrossWorkerCounts(t *testing.T) {
	// A larger candidate pool with scattered ties; the winner must not
	// depend on how the scan is chunked.
	profiles := map[int]store.Profile{0: {"Comedy": 5.0, "Drama": 2.0}}
	for id := 1; id <= 100; id++ {
		switch id % 3 {
		case 0:
			profiles[id] = store.Profile{"Comedy": 5.0, "Drama": 2.0}
		case 1:
			profiles[id] = store.Profile{"Comedy": 1.0}
		default:
			profiles[id] = store.Profile{"Horror": 4.0}
		}
	}

	want, err := FindNearest(0, profiles, 1)
	if err != nil {
		t.Fatalf("FindNearest() error = %v", err)
	}

	for _, workers := range []int{2, 3, 8, 64, 200} {
		got, err := FindNearest(0, profiles, workers)
		if err != nil {
			t.Fatalf("FindNearest(workers=%d) error = %v", workers, err)
		}
		if got != want {
			t.Errorf("FindNearest(workers=%d) = %d, want %d", workers, got, want)
		}
	}
}
