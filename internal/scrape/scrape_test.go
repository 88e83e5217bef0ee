// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const moviePage1 = `<html><body><table>
<tr><th>ID</th><th>Title</th><th>Genres</th></tr>
<tr><td class="movie_id"> 1 </td><td class="movie_title">The Grand Heist (1999)</td><td class="genres">Comedy, Crime</td></tr>
<tr><td class="movie_id">2</td><td class="movie_title">Starfall</td><td class="genres">Sci-Fi</td></tr>
</table>
<button aria-label="Next page"><a href="page_2.html">next</a></button>
</body></html>`

const moviePage2 = `<html><body><table>
<tr><th>ID</th><th>Title</th><th>Genres</th></tr>
<tr><td class="movie_id">3</td><td class="movie_title">Dial (Again) (2004)</td><td class="genres">Thriller</td></tr>
</table>
<button aria-label="Next page"><a href="">next</a></button>
</body></html>`

const ratingsPage1 = `<html><body><table>
<tr><th>User</th><th>Rating</th></tr>
<tr><td class="user_id">10</td><td class="rating"> 4.5 </td></tr>
<tr><td class="user_id">20</td><td class="rating">2.0</td></tr>
</table></body></html>`

const ratingsPage2 = `<html><body><table>
<tr><th>User</th><th>Rating</th></tr>
<tr><td class="user_id">10</td><td class="rating">3.0</td></tr>
</table></body></html>`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/page_1.html", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(moviePage1))
	})
	mux.HandleFunc("/page_2.html", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(moviePage2))
	})
	mux.HandleFunc("/ratings_1.html", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(ratingsPage1))
	})
	mux.HandleFunc("/ratings_2.html", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(ratingsPage2))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestMovies(t *testing.T) {
	srv := testServer(t)
	client := NewClient(ClientConfig{RequestsPerSecond: 1000, Burst: 10})

	movies, err := Movies(context.Background(), client, srv.URL+"/")
	if err != nil {
		t.Fatalf("Movies() error = %v", err)
	}

	if len(movies) != 3 {
		t.Fatalf("len(movies) = %d, want 3 across pages", len(movies))
	}

	tests := []struct {
		id         int
		wantTitle  string
		wantGenres []string
	}{
		{1, "The Grand Heist", []string{"Comedy", "Crime"}},
		{2, "Starfall", []string{"Sci-Fi"}},
		// The year strip cuts at the last "(" only.
		{3, "Dial (Again)", []string{"Thriller"}},
	}
	for _, tt := range tests {
		mv, ok := movies[tt.id]
		if !ok {
			t.Errorf("movie %d missing", tt.id)
			continue
		}
		if mv.Title != tt.wantTitle {
			t.Errorf("movie %d title = %q, want %q", tt.id, mv.Title, tt.wantTitle)
		}
		if !reflect.DeepEqual(mv.Genres, tt.wantGenres) {
			t.Errorf("movie %d genres = %v, want %v", tt.id, mv.Genres, tt.wantGenres)
		}
	}
}

func TestRatings(t *testing.T) {
	srv := testServer(t)
	client := NewClient(ClientConfig{RequestsPerSecond: 1000, Burst: 10})

	ratings, err := Ratings(context.Background(), client, srv.URL+"/", []int{1, 2})
	if err != nil {
		t.Fatalf("Ratings() error = %v", err)
	}

	want := map[int]map[int]float64{
		10: {1: 4.5, 2: 3.0},
		20: {1: 2.0},
	}
	if !reflect.DeepEqual(ratings, want) {
		t.Errorf("Ratings() = %v, want %v", ratings, want)
	}
}

func TestClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{RequestsPerSecond: 1000, Burst: 10})
	if _, err := client.Get(context.Background(), srv.URL); err == nil {
		t.Error("Get() error = nil, want error for 500 response")
	}
}

func TestMoviesMalformedID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<table>
<tr><th>h</th></tr>
<tr><td class="movie_id">abc</td><td class="movie_title">X</td><td class="genres">Y</td></tr>
</table>`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{RequestsPerSecond: 1000, Burst: 10})
	if _, err := Movies(context.Background(), client, srv.URL+"/"); err == nil {
		t.Error("Movies() error = nil, want error for malformed id")
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Plain Title", "Plain Title"},
		{"With Year (2001)", "With Year"},
		{"  Padded (1988) ", "Padded"},
		{"(Parens) Up Front (1970)", "(Parens) Up Front"},
	}
	for _, tt := range tests {
		if got := cleanTitle(tt.in); got != tt.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
