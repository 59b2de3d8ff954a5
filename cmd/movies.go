package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdbctl/format"
	"github.com/s0up4200/tmdbctl/tmdb"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "Search TMDB for movies",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runSearch,
}

// favoritesCmd lists the account's favorite movies
var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Short:   "List your favorite movies",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), "Favorites", true, tmdbClient.GetFavorites)
	},
}

// watchlistCmd lists the account's watchlist and holds its add/remove subcommands
var watchlistCmd = &cobra.Command{
	Use:     "watchlist",
	Short:   "List or change your watchlist",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), "Watchlist", true, tmdbClient.GetWatchlist)
	},
}

// favoriteCmd groups the favorite add/remove subcommands
var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Add or remove favorite movies",
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(watchlistCmd)
	rootCmd.AddCommand(favoriteCmd)

	addFilterFlags(searchCmd)
	addFilterFlags(favoritesCmd)
	addFilterFlags(watchlistCmd)

	favoriteCmd.AddCommand(
		newMarkCommand("add", "Mark movies as favorite", "Added to favorites", true, tmdbClientMarkFavorites),
		newMarkCommand("remove", "Remove movies from favorites", "Removed from favorites", false, tmdbClientMarkFavorites),
	)
	watchlistCmd.AddCommand(
		newMarkCommand("add", "Add movies to the watchlist", "Added to watchlist", true, tmdbClientMarkWatchlist),
		newMarkCommand("remove", "Remove movies from the watchlist", "Removed from watchlist", false, tmdbClientMarkWatchlist),
	)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	logger.Info().Str("query", query).Msg("Searching movies")

	return runList(cmd.Context(), fmt.Sprintf("Results for %q", query), false, func(ctx context.Context) ([]tmdb.Movie, error) {
		return tmdbClient.Search(ctx, query)
	})
}

// runList fetches one page of movies, applies the filter and prints them
func runList(ctx context.Context, heading string, needsSession bool, fetch func(context.Context) ([]tmdb.Movie, error)) error {
	movieFilter, err := resolveFilter()
	if err != nil {
		return err
	}

	if needsSession {
		if err := ensureSession(ctx); err != nil {
			return err
		}
	}

	movies, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch movies: %w", err)
	}

	movies = filterManager.Apply(movieFilter, movies)

	fmt.Print(formatter.FormatMovieList(heading, movies, format.Options{
		ShowDetails: cfg.Safety.ShowDetails,
		PosterURL:   tmdbClient.PosterURL,
	}))

	return nil
}

type markFunc func(ctx context.Context, movieIDs []int64, value bool) tmdb.BatchResult

func tmdbClientMarkFavorites(ctx context.Context, movieIDs []int64, value bool) tmdb.BatchResult {
	return tmdbClient.MarkFavorites(ctx, movieIDs, value)
}

func tmdbClientMarkWatchlist(ctx context.Context, movieIDs []int64, value bool) tmdb.BatchResult {
	return tmdbClient.MarkWatchlistMany(ctx, movieIDs, value)
}

func newMarkCommand(use, short, action string, value bool, mark markFunc) *cobra.Command {
	return &cobra.Command{
		Use:     use + " <movie-id>...",
		Short:   short,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: initializeApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			movieIDs, err := parseMovieIDs(args)
			if err != nil {
				return err
			}

			if cfg.Safety.DryRun {
				fmt.Printf("[DRY RUN] %s: %s\n", action, joinIDs(movieIDs))
				return nil
			}

			ctx := cmd.Context()
			if err := ensureSession(ctx); err != nil {
				return err
			}

			result := mark(ctx, movieIDs, value)
			fmt.Print(formatter.FormatBatchResult(action, result))

			if len(result.Failed) > 0 {
				return fmt.Errorf("%s failed", plural(len(result.Failed), "movie"))
			}
			return nil
		},
	}
}

func parseMovieIDs(args []string) ([]int64, error) {
	seen := make(map[int64]bool, len(args))
	ids := make([]int64, 0, len(args))

	for _, arg := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid movie id '%s': must be a positive integer", arg)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
