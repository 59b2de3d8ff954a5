package radarr

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"golift.io/starr/radarr"

	"github.com/s0up4200/tmdbctl/tmdb"
)

// MaxConcurrency bounds concurrent Radarr calls
const MaxConcurrency = 5

var (
	// ErrMissingQualityProfile is returned when no quality profile is configured
	ErrMissingQualityProfile = errors.New("radarr quality profile id is required")
	// ErrMissingRootFolder is returned when no root folder is configured
	ErrMissingRootFolder = errors.New("radarr root folder is required")
)

// AddOptions controls how movies are added to Radarr
type AddOptions struct {
	QualityProfileID int64
	RootFolderPath   string
	Monitored        bool
	SearchOnAdd      bool
	Tags             []int
	DryRun           bool
}

func (o AddOptions) validate() error {
	if o.QualityProfileID <= 0 {
		return ErrMissingQualityProfile
	}
	if o.RootFolderPath == "" {
		return ErrMissingRootFolder
	}
	return nil
}

// SyncResult contains the outcome of handing movies to Radarr
type SyncResult struct {
	Requested int
	Added     []tmdb.Movie
	Skipped   []tmdb.Movie
	Failed    []SyncError
	DryRun    bool
}

// SyncError contains information about a movie Radarr did not take
type SyncError struct {
	Movie tmdb.Movie
	Err   error
}

// Error implements the error interface
func (e SyncError) Error() string {
	return fmt.Sprintf("failed to add movie %s (TMDB: %d): %v", e.Movie.Title, e.Movie.ID, e.Err)
}

// Unwrap returns the underlying error
func (e SyncError) Unwrap() error {
	return e.Err
}

// AddMovies adds the movies Radarr does not have yet. Movies already in
// Radarr are skipped. In dry-run mode nothing is added; Added lists what would be.
func (c *Client) AddMovies(ctx context.Context, movies []tmdb.Movie, opts AddOptions) (SyncResult, error) {
	result := SyncResult{
		Requested: len(movies),
		DryRun:    opts.DryRun,
	}

	if err := opts.validate(); err != nil {
		return result, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrency)

	var mu sync.Mutex

	for _, movie := range movies {
		g.Go(func() error {
			outcome, err := c.addMovie(ctx, movie, opts)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err != nil:
				result.Failed = append(result.Failed, SyncError{Movie: movie, Err: err})
			case outcome == outcomeSkipped:
				result.Skipped = append(result.Skipped, movie)
			default:
				result.Added = append(result.Added, movie)
			}
			return nil // Don't stop on individual errors
		})
	}

	g.Wait()

	sortByTitle(result.Added)
	sortByTitle(result.Skipped)
	sort.Slice(result.Failed, func(i, j int) bool {
		return result.Failed[i].Movie.Title < result.Failed[j].Movie.Title
	})

	c.logger.Info().
		Int("added", len(result.Added)).
		Int("skipped", len(result.Skipped)).
		Int("failed", len(result.Failed)).
		Bool("dry_run", opts.DryRun).
		Msg("Radarr hand-off finished")

	return result, nil
}

type addOutcome int

const (
	outcomeAdded addOutcome = iota
	outcomeSkipped
)

func (c *Client) addMovie(ctx context.Context, movie tmdb.Movie, opts AddOptions) (addOutcome, error) {
	existing, err := c.store.Lookup(ctx, movie.ID)
	if err != nil {
		return outcomeAdded, fmt.Errorf("lookup failed: %w", err)
	}
	if existing != nil {
		c.logger.Debug().
			Str("movie", movie.Title).
			Int64("radarr_id", existing.ID).
			Msg("Movie already in Radarr")
		return outcomeSkipped, nil
	}

	if opts.DryRun {
		c.logger.Info().Str("movie", movie.Title).Msg("[DRY RUN] Would add movie to Radarr")
		return outcomeAdded, nil
	}

	input := &radarr.AddMovieInput{
		Title:            movie.Title,
		TmdbID:           movie.ID,
		Year:             movie.Year(),
		QualityProfileID: opts.QualityProfileID,
		RootFolderPath:   opts.RootFolderPath,
		Monitored:        opts.Monitored,
		Tags:             opts.Tags,
		AddOptions: &radarr.AddMovieOptions{
			SearchForMovie: opts.SearchOnAdd,
		},
	}

	if err := c.store.Add(ctx, input); err != nil {
		return outcomeAdded, err
	}

	c.logger.Info().Str("movie", movie.Title).Int64("tmdb_id", movie.ID).Msg("Added movie to Radarr")
	return outcomeAdded, nil
}

func sortByTitle(movies []tmdb.Movie) {
	sort.Slice(movies, func(i, j int) bool {
		return movies[i].Title < movies[j].Title
	})
}
