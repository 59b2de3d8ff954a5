package tmdb

import (
	"context"
)

// API defines the interface for TMDB operations
type API interface {
	// TestConnection verifies the API key
	TestConnection(ctx context.Context) error

	// Authentication handshake
	GetRequestToken(ctx context.Context) (string, error)
	Login(ctx context.Context, username, password string) error
	CreateSession(ctx context.Context) (string, error)
	GetAccount(ctx context.Context) (*Account, error)
	Logout(ctx context.Context) error
	WebAuthURL() (string, error)

	// Movies
	Search(ctx context.Context, query string) ([]Movie, error)
	GetFavorites(ctx context.Context) ([]Movie, error)
	GetWatchlist(ctx context.Context) ([]Movie, error)
	MarkFavorite(ctx context.Context, movieID int64, favorite bool) (bool, error)
	MarkWatchlist(ctx context.Context, movieID int64, watchlist bool) (bool, error)

	// Images
	PosterURL(posterPath string) string
	DownloadPoster(ctx context.Context, posterPath string) ([]byte, error)
}

var _ API = (*Client)(nil)
