package tmdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds concurrent TMDB calls in batch operations
const DefaultConcurrency = 5

// BatchResult contains the results of a batch operation
type BatchResult struct {
	Requested int
	Succeeded []int64
	Failed    []BatchError
}

// BatchError contains information about a failed item in a batch
type BatchError struct {
	MovieID int64
	Err     error
}

// Error implements the error interface
func (e BatchError) Error() string {
	return fmt.Sprintf("movie %d: %v", e.MovieID, e.Err)
}

// Unwrap returns the underlying error
func (e BatchError) Unwrap() error {
	return e.Err
}

// MarkFavorites marks or unmarks many movies as favorites concurrently
func (c *Client) MarkFavorites(ctx context.Context, movieIDs []int64, favorite bool) BatchResult {
	return c.markMany(ctx, movieIDs, func(ctx context.Context, id int64) (bool, error) {
		return c.MarkFavorite(ctx, id, favorite)
	})
}

// MarkWatchlistMany adds or removes many movies from the watchlist concurrently
func (c *Client) MarkWatchlistMany(ctx context.Context, movieIDs []int64, watchlist bool) BatchResult {
	return c.markMany(ctx, movieIDs, func(ctx context.Context, id int64) (bool, error) {
		return c.MarkWatchlist(ctx, id, watchlist)
	})
}

func (c *Client) markMany(ctx context.Context, movieIDs []int64, mark func(context.Context, int64) (bool, error)) BatchResult {
	movieIDs = uniqueIDs(movieIDs)
	result := BatchResult{
		Requested: len(movieIDs),
	}

	if len(movieIDs) == 0 {
		return result
	}

	// Resolve the account once instead of once per goroutine
	if _, err := c.resolveAccountID(ctx); err != nil {
		for _, id := range movieIDs {
			result.Failed = append(result.Failed, BatchError{MovieID: id, Err: err})
		}
		return result
	}

	return c.runBatch(ctx, movieIDs, func(ctx context.Context, id int64) error {
		ok, err := mark(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrMarkRejected
		}
		return nil
	})
}

// DownloadPosters saves the posters of movies into dir as <id><ext>.
// A movie listed twice is downloaded once.
func (c *Client) DownloadPosters(ctx context.Context, movies []Movie, dir string) BatchResult {
	posters := make(map[int64]string, len(movies))
	ids := make([]int64, 0, len(movies))
	for _, movie := range movies {
		if _, seen := posters[movie.ID]; seen {
			continue
		}
		posters[movie.ID] = movie.PosterPath
		ids = append(ids, movie.ID)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		result := BatchResult{Requested: len(ids)}
		for _, id := range ids {
			result.Failed = append(result.Failed, BatchError{MovieID: id, Err: err})
		}
		return result
	}

	return c.runBatch(ctx, ids, func(ctx context.Context, id int64) error {
		posterPath := posters[id]
		data, err := c.DownloadPoster(ctx, posterPath)
		if err != nil {
			return err
		}

		ext := filepath.Ext(posterPath)
		if ext == "" {
			ext = ".jpg"
		}
		target := filepath.Join(dir, strconv.FormatInt(id, 10)+ext)
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write poster: %w", err)
		}
		return nil
	})
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}

// runBatch applies fn to every id with bounded concurrency, collecting per-id outcomes
func (c *Client) runBatch(ctx context.Context, ids []int64, fn func(context.Context, int64) error) BatchResult {
	result := BatchResult{
		Requested: len(ids),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultConcurrency)

	successChan := make(chan int64, len(ids))
	errorChan := make(chan BatchError, len(ids))

	for _, id := range ids {
		g.Go(func() error {
			if err := fn(ctx, id); err != nil {
				c.logger.Warn().Err(err).Int64("movie_id", id).Msg("Batch item failed")
				errorChan <- BatchError{MovieID: id, Err: err}
			} else {
				successChan <- id
			}
			return nil // Don't stop on individual errors
		})
	}

	g.Wait()
	close(successChan)
	close(errorChan)

	for id := range successChan {
		result.Succeeded = append(result.Succeeded, id)
	}
	for err := range errorChan {
		result.Failed = append(result.Failed, err)
	}

	return result
}
