// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend implements the recommendation core: cosine similarity
// between genre preference profiles, nearest-neighbor selection with a
// deterministic tie-break, and the filter/rank pipeline that turns a
// neighbor's ratings into a recipient's recommendation set.
//
// The package operates on explicit snapshots from the store package; it holds
// no state of its own beyond the Engine's wiring, which keeps every stage a
// pure function that can be tested and parallelized in isolation.
package recommend
