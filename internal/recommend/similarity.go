// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"

	"github.com/tomtom215/reelmatch/internal/store"
)

// Similarity computes the cosine similarity between two genre preference
// profiles. The dot product runs over shared genres only, while each norm is
// taken over the profile's full value set. Profiles with many unmatched
// genres are therefore penalized even when their overlapping tastes agree.
//
// Degenerate inputs are defined, not errors: zero shared genres or a
// zero-norm profile both yield 0.0. The result is otherwise in [-1, 1], and
// Similarity(a, b) == Similarity(b, a) for all inputs.
func Similarity(a, b store.Profile) float64 {
	// Iterate the smaller profile when intersecting.
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	var dot float64
	shared := false
	for genre, sv := range small {
		if lv, ok := large[genre]; ok {
			dot += sv * lv
			shared = true
		}
	}
	if !shared {
		return 0.0
	}

	normA := norm(a)
	normB := norm(b)
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (normA * normB)
}

// norm returns the L2 norm over every value in the profile.
func norm(p store.Profile) float64 {
	var sumSquares float64
	for _, v := range p {
		sumSquares += v * v
	}
	return math.Sqrt(sumSquares)
}
