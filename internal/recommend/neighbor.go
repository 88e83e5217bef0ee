// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"sync"

	"github.com/tomtom215/reelmatch/internal/store"
)

// NoOtherUsersError reports a nearest-neighbor search with no candidates
// besides the target user.
type NoOtherUsersError struct {
	TargetID int
}

func (e *NoOtherUsersError) Error() string {
	return fmt.Sprintf("no users other than %d to compare against", e.TargetID)
}

// scored pairs a candidate user with their similarity to the target.
type scored struct {
	userID int
	score  float64
}

// FindNearest returns the user whose preference profile is most similar to
// the target's. Ties on similarity break toward the numerically larger user
// id; the target itself is never a candidate. An empty candidate set fails
// with *NoOtherUsersError, and a target absent from the snapshot fails with
// *store.UnknownUserError.
//
// The scan is read-only over the profiles snapshot and embarrassingly
// parallel, so it is chunked across workers. The tie-break is applied as a
// single deterministic reduction over the complete scored set afterwards;
// worker scheduling can never influence the winner.
func FindNearest(targetID int, profiles map[int]store.Profile, workers int) (int, error) {
	target, ok := profiles[targetID]
	if !ok {
		return 0, &store.UnknownUserError{UserID: targetID}
	}

	candidates := make([]int, 0, len(profiles)-1)
	for userID := range profiles {
		if userID != targetID {
			candidates = append(candidates, userID)
		}
	}
	if len(candidates) == 0 {
		return 0, &NoOtherUsersError{TargetID: targetID}
	}

	if workers <= 0 {
		workers = 1
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	scores := make([]scored, len(candidates))
	var wg sync.WaitGroup
	chunkSize := (len(candidates) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > len(candidates) {
			end = len(candidates)
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				userID := candidates[i]
				scores[i] = scored{
					userID: userID,
					score:  Similarity(target, profiles[userID]),
				}
			}
		}(start, end)
	}
	wg.Wait()

	// Deterministic reduction: higher score wins, equal score falls to the
	// larger user id.
	best := scored{userID: -1, score: -2}
	for _, s := range scores {
		if s.score > best.score || (s.score == best.score && s.userID > best.userID) {
			best = s
		}
	}
	return best.userID, nil
}
