package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdbctl/radarr"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test connection to TMDB (and Radarr when enabled)",
	PreRunE: initializeApp,
	RunE:    runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fmt.Printf("Testing connection to TMDB at %s...\n", cfg.TMDB.BaseURL)
	if err := tmdbClient.TestConnection(ctx); err != nil {
		return fmt.Errorf("failed to connect to TMDB: %w", err)
	}
	fmt.Println("✓ Connection successful!")

	if cfg.TMDB.SessionID != "" || cfg.TMDB.Username != "" {
		if err := ensureSession(ctx); err != nil {
			return err
		}
		account, err := tmdbClient.GetAccount(ctx)
		if err != nil {
			return fmt.Errorf("failed to get account: %w", err)
		}
		fmt.Printf("- Account: %s (ID: %d)\n", account.GetDisplayName(), account.ID)
	} else {
		fmt.Println("- Account: not logged in")
	}

	if len(cfg.Filter.Presets) > 0 {
		fmt.Printf("- Filter presets: %d\n", len(filterManager.ListFilters()))
	}

	if cfg.Radarr.Enabled {
		fmt.Printf("\nTesting connection to Radarr at %s...\n", cfg.Radarr.URL)
		if _, err := radarr.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, logger); err != nil {
			return fmt.Errorf("failed to connect to Radarr: %w", err)
		}
		fmt.Println("✓ Radarr connection successful!")
	} else {
		fmt.Println("\nRadarr integration: Disabled")
	}

	return nil
}
