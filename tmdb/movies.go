package tmdb

import (
	"context"
	"fmt"
	"strings"
)

// Search returns the first page of movies matching query. A blank query
// returns no movies without contacting TMDB.
func (c *Client) Search(ctx context.Context, query string) ([]Movie, error) {
	if strings.TrimSpace(query) == "" {
		return []Movie{}, nil
	}

	resp, err := getJSON[MovieResults](ctx, c, c.searchEndpoint(query))
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}

	c.logger.Debug().
		Str("query", query).
		Int("count", len(resp.Results)).
		Int("total", resp.TotalResults).
		Msg("Searched TMDB movies")
	return resp.Results, nil
}

// GetFavorites returns the first page of the account's favorite movies
func (c *Client) GetFavorites(ctx context.Context) ([]Movie, error) {
	movies, err := c.accountMovies(ctx, "favorite", "movies")
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	return movies, nil
}

// GetWatchlist returns the first page of the account's watchlist movies
func (c *Client) GetWatchlist(ctx context.Context) ([]Movie, error) {
	movies, err := c.accountMovies(ctx, "watchlist", "movies")
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist: %w", err)
	}
	return movies, nil
}

func (c *Client) accountMovies(ctx context.Context, list ...string) ([]Movie, error) {
	accountID, err := c.resolveAccountID(ctx)
	if err != nil {
		return nil, err
	}

	endpoint, err := c.sessionEndpoint(accountPath(accountID, list...), nil)
	if err != nil {
		return nil, err
	}

	resp, err := getJSON[MovieResults](ctx, c, endpoint)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("list", list[0]).
		Int("count", len(resp.Results)).
		Msg("Retrieved account movies from TMDB")
	return resp.Results, nil
}

// MarkFavorite adds (favorite=true) or removes a movie from the account favorites.
// It reports whether TMDB confirmed the change.
func (c *Client) MarkFavorite(ctx context.Context, movieID int64, favorite bool) (bool, error) {
	body := MarkFavorite{
		MediaType: MediaTypeMovie,
		MediaID:   movieID,
		Favorite:  favorite,
	}

	ok, err := c.mark(ctx, "favorite", body)
	if err != nil {
		return false, fmt.Errorf("failed to mark favorite for movie %d: %w", movieID, err)
	}
	return ok, nil
}

// MarkWatchlist adds (watchlist=true) or removes a movie from the account watchlist.
// It reports whether TMDB confirmed the change.
func (c *Client) MarkWatchlist(ctx context.Context, movieID int64, watchlist bool) (bool, error) {
	body := MarkWatchlist{
		MediaType: MediaTypeMovie,
		MediaID:   movieID,
		Watchlist: watchlist,
	}

	ok, err := c.mark(ctx, "watchlist", body)
	if err != nil {
		return false, fmt.Errorf("failed to mark watchlist for movie %d: %w", movieID, err)
	}
	return ok, nil
}

func (c *Client) mark(ctx context.Context, list string, body any) (bool, error) {
	accountID, err := c.resolveAccountID(ctx)
	if err != nil {
		return false, err
	}

	endpoint, err := c.sessionEndpoint(accountPath(accountID, list), nil)
	if err != nil {
		return false, err
	}

	resp, err := postJSON[any, StatusResponse](ctx, c, endpoint, body)
	if err != nil {
		return false, err
	}

	c.logger.Debug().
		Str("list", list).
		Int("status_code", resp.StatusCode).
		Str("status_message", resp.StatusMessage).
		Msg("Marked movie on TMDB list")
	return resp.Succeeded(), nil
}
