package cmd

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdbctl/tmdb"
)

var (
	posterOutput string
	posterList   string
	posterDir    string
)

// posterCmd downloads a single poster
var posterCmd = &cobra.Command{
	Use:   "poster <poster-path>",
	Short: "Download a movie poster",
	Long: `Download a poster by its TMDB path, e.g. /f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg.
The file is written to the current directory unless -o is given.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runPoster,
}

// postersCmd downloads the posters of every movie in a list
var postersCmd = &cobra.Command{
	Use:     "posters",
	Short:   "Download posters for your favorites or watchlist",
	PreRunE: initializeApp,
	RunE:    runPosters,
}

func init() {
	rootCmd.AddCommand(posterCmd)
	rootCmd.AddCommand(postersCmd)

	posterCmd.Flags().StringVarP(&posterOutput, "output", "o", "", "output file")

	postersCmd.Flags().StringVar(&posterList, "list", "watchlist", "list to download posters for (favorites/watchlist)")
	postersCmd.Flags().StringVar(&posterDir, "dir", "posters", "directory to write posters to")
	addFilterFlags(postersCmd)
}

func runPoster(cmd *cobra.Command, args []string) error {
	posterPath := args[0]

	output := posterOutput
	if output == "" {
		output = path.Base(posterPath)
	}

	if cfg.Safety.DryRun {
		fmt.Printf("[DRY RUN] Would download %s to %s\n", tmdbClient.PosterURL(posterPath), output)
		return nil
	}

	data, err := tmdbClient.DownloadPoster(cmd.Context(), posterPath)
	if err != nil {
		return fmt.Errorf("failed to download poster: %w", err)
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write poster: %w", err)
	}

	fmt.Printf("✓ Saved %s (%d bytes)\n", output, len(data))
	return nil
}

func runPosters(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	movies, err := fetchAccountList(ctx, posterList)
	if err != nil {
		return err
	}

	if len(movies) == 0 {
		fmt.Println("No movies found")
		return nil
	}

	if cfg.Safety.DryRun {
		fmt.Printf("[DRY RUN] Would download %s to %s\n", plural(len(movies), "poster"), posterDir)
		return nil
	}

	result := tmdbClient.DownloadPosters(ctx, movies, posterDir)
	fmt.Print(formatter.FormatBatchResult("Downloaded posters", result))

	if len(result.Failed) > 0 {
		return fmt.Errorf("%s failed", plural(len(result.Failed), "poster"))
	}
	return nil
}

// fetchAccountList loads favorites or watchlist and applies the selected filter
func fetchAccountList(ctx context.Context, list string) ([]tmdb.Movie, error) {
	var fetch func(context.Context) ([]tmdb.Movie, error)
	switch list {
	case "favorites":
		fetch = tmdbClient.GetFavorites
	case "watchlist":
		fetch = tmdbClient.GetWatchlist
	default:
		return nil, fmt.Errorf("invalid list: %s (must be 'favorites' or 'watchlist')", list)
	}

	movieFilter, err := resolveFilter()
	if err != nil {
		return nil, err
	}

	if err := ensureSession(ctx); err != nil {
		return nil, err
	}

	movies, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", list, err)
	}

	return filterManager.Apply(movieFilter, movies), nil
}
