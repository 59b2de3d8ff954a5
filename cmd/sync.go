package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdbctl/radarr"
)

var syncList string

// syncCmd groups hand-offs to other services
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Send TMDB lists to other services",
}

// syncRadarrCmd adds list movies to Radarr
var syncRadarrCmd = &cobra.Command{
	Use:   "radarr",
	Short: "Add your watchlist or favorites to Radarr",
	Long: `Add every movie in your TMDB watchlist (or favorites) to Radarr.

Movies already in Radarr are skipped. New movies use the configured
quality profile, root folder, tags and monitor settings.`,
	PreRunE: initializeApp,
	RunE:    runSyncRadarr,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(syncRadarrCmd)

	syncRadarrCmd.Flags().StringVar(&syncList, "list", "watchlist", "list to sync (favorites/watchlist)")
	syncRadarrCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
	addFilterFlags(syncRadarrCmd)
}

func runSyncRadarr(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if !cfg.Radarr.Enabled {
		return fmt.Errorf("radarr is not enabled. Please set radarr.enabled and its connection settings in config")
	}

	movies, err := fetchAccountList(ctx, syncList)
	if err != nil {
		return err
	}

	if len(movies) == 0 {
		fmt.Println("No movies found")
		return nil
	}

	radarrClient, err := radarr.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, logger)
	if err != nil {
		return fmt.Errorf("failed to create Radarr client: %w", err)
	}

	if !cfg.Safety.DryRun && !confirm(fmt.Sprintf("Add up to %s to Radarr?", plural(len(movies), "movie"))) {
		logger.Info().Msg("Sync cancelled")
		return nil
	}

	result, err := radarrClient.AddMovies(ctx, movies, radarr.AddOptions{
		QualityProfileID: cfg.Radarr.QualityProfileID,
		RootFolderPath:   cfg.Radarr.RootFolder,
		Monitored:        cfg.Radarr.Monitored,
		SearchOnAdd:      cfg.Radarr.SearchOnAdd,
		Tags:             cfg.Radarr.Tags,
		DryRun:           cfg.Safety.DryRun,
	})
	if err != nil {
		return err
	}

	fmt.Print(formatter.FormatSyncResult(result))

	if len(result.Failed) > 0 {
		return fmt.Errorf("%s could not be added", plural(len(result.Failed), "movie"))
	}
	return nil
}
