// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package api provides the HTTP surface for ReelMatch: health, preference
// profiles, recommendations, and ratings merges, routed with Chi.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/store"
)

// Handler contains dependencies for API handlers.
type Handler struct {
	store     *store.Store
	engine    *recommend.Engine
	startTime time.Time
}

// NewHandler creates a new API handler over the store and engine.
func NewHandler(st *store.Store, engine *recommend.Engine) *Handler {
	return &Handler{
		store:     st,
		engine:    engine,
		startTime: time.Now(),
	}
}

// healthData is the payload for the health endpoint.
type healthData struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Users         int     `json:"users"`
	Movies        int     `json:"movies"`
}

// Health reports liveness plus dataset population counts.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondData(w, http.StatusOK, healthData{
		Status:        "ok",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Users:         h.store.Len(),
		Movies:        h.store.Catalog().Len(),
	})
}

// profileData is the payload for the profile endpoint.
type profileData struct {
	UserID  int           `json:"user_id"`
	Profile store.Profile `json:"profile"`
}

// Profile returns one user's genre preference profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	profile, err := h.store.Profile(userID)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, profileData{UserID: userID, Profile: profile})
}

// Recommendations computes and returns the full recommendation record for
// one user.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.engine.RecommendFor(userID)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

// MergeRatings replaces one user's ratings with the request body, a JSON
// object of movie id to rating. Replace semantics per the store contract.
func (h *Handler) MergeRatings(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	var raw map[string]float64
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondError(w, http.StatusBadRequest, "request body must be a JSON object of movie id to rating")
		return
	}

	ratings := make(map[int]float64, len(raw))
	for key, rating := range raw {
		movieID, err := strconv.Atoi(key)
		if err != nil {
			respondError(w, http.StatusBadRequest, "movie id "+key+" is not an integer")
			return
		}
		ratings[movieID] = rating
	}

	if err := h.store.Merge(userID, ratings); err != nil {
		h.respondDomainError(w, err)
		return
	}

	profile, err := h.store.Profile(userID)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, profileData{UserID: userID, Profile: profile})
}

// userIDParam parses the {userID} route parameter, writing a 400 on failure.
func (h *Handler) userIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "userID")
	userID, err := strconv.Atoi(raw)
	if err != nil || userID < 0 {
		respondError(w, http.StatusBadRequest, "user id must be a non-negative integer")
		return 0, false
	}
	return userID, true
}

// respondDomainError maps the core error taxonomy onto HTTP statuses.
func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	var unknownUser *store.UnknownUserError
	var unknownMovie *store.UnknownMovieError
	var noOthers *recommend.NoOtherUsersError

	switch {
	case errors.As(err, &unknownUser):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &unknownMovie):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &noOthers):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
