package radarr

import (
	"context"

	"golift.io/starr/radarr"
)

// MovieStore is the part of Radarr the hand-off needs
type MovieStore interface {
	// Lookup returns the Radarr movie with the given TMDB id, or nil if Radarr does not have it
	Lookup(ctx context.Context, tmdbID int64) (*radarr.Movie, error)

	// Add adds a movie to Radarr
	Add(ctx context.Context, movie *radarr.AddMovieInput) error
}

// starrStore implements MovieStore on top of the starr Radarr client
type starrStore struct {
	client *radarr.Radarr
}

func (s *starrStore) Lookup(ctx context.Context, tmdbID int64) (*radarr.Movie, error) {
	movies, err := s.client.GetMovieContext(ctx, &radarr.GetMovie{TMDBID: tmdbID})
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, nil
	}
	return movies[0], nil
}

func (s *starrStore) Add(ctx context.Context, movie *radarr.AddMovieInput) error {
	_, err := s.client.AddMovieContext(ctx, movie)
	return err
}
