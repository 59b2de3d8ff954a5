package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/tmdbctl/radarr"
	"github.com/s0up4200/tmdbctl/tmdb"
)

func TestFormatMovieList(t *testing.T) {
	f := NewConsoleFormatter()

	assert.Equal(t, "No movies found\n", f.FormatMovieList("Watchlist", nil, Options{}))

	movies := []tmdb.Movie{
		{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30", VoteAverage: 8.2, VoteCount: 24000, GenreIDs: []int{28, 878}, PosterPath: "/m.jpg"},
		{ID: 1, Title: "Untitled", Overview: strings.Repeat("a", 150)},
	}

	out := f.FormatMovieList("Watchlist", movies, Options{
		ShowDetails: true,
		PosterURL:   func(p string) string { return "https://img" + p },
	})

	assert.Contains(t, out, "Watchlist (2):")
	assert.Contains(t, out, "├── The Matrix (1999) [603]")
	assert.Contains(t, out, "╰── Untitled [1]")
	assert.Contains(t, out, "Rating: 8.2 (24000 votes) | Genres: Action, Science Fiction")
	assert.Contains(t, out, "Poster: https://img/m.jpg")
	assert.Contains(t, out, strings.Repeat("a", 99)+"…")

	brief := f.FormatMovieList("Favorites", movies, Options{})
	assert.NotContains(t, brief, "Rating:")
}

func TestFormatBatchResult(t *testing.T) {
	f := NewConsoleFormatter()

	out := f.FormatBatchResult("Added to favorites", tmdb.BatchResult{
		Requested: 2,
		Succeeded: []int64{603},
		Failed:    []tmdb.BatchError{{MovieID: 7, Err: tmdb.ErrMarkRejected}},
	})

	assert.Contains(t, out, "Added to favorites: 1 of 2 succeeded")
	assert.Contains(t, out, "7: tmdb did not confirm the change")
}

func TestFormatSyncResult(t *testing.T) {
	f := NewConsoleFormatter()

	out := f.FormatSyncResult(radarr.SyncResult{
		Requested: 3,
		DryRun:    true,
		Added:     []tmdb.Movie{{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30"}},
		Skipped:   []tmdb.Movie{{ID: 155, Title: "The Dark Knight"}},
		Failed:    []radarr.SyncError{{Movie: tmdb.Movie{Title: "Spirited Away"}, Err: errors.New("boom")}},
	})

	assert.Contains(t, out, "Would add (1):")
	assert.Contains(t, out, "╰── The Matrix (1999)")
	assert.Contains(t, out, "Already in Radarr (1):")
	assert.Contains(t, out, "Spirited Away: boom")
	assert.Contains(t, out, "Processed: 3 movies")
}
