package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdbctl/config"
)

var forceUpdate bool

// updateCmd replaces the running binary with the latest release
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update tmdbctl to the latest release",
	RunE:  runUpdate,
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tmdbctl %s (built %s)\n", appVersion, appBuildTime)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)

	updateCmd.Flags().BoolVar(&forceUpdate, "force", false, "update even when running a development build")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	repository := "s0up4200/tmdbctl"
	if loaded, err := config.Load(cfgFile); err == nil && loaded.Update.Repository != "" {
		repository = loaded.Update.Repository
	}

	current, err := semver.ParseTolerant(appVersion)
	if err != nil && !forceUpdate {
		return fmt.Errorf("cannot update development build %q (use --force)", appVersion)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repository))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repository)
	}

	latestVersion, err := semver.ParseTolerant(latest.Version())
	if err != nil {
		return fmt.Errorf("invalid release version %q: %w", latest.Version(), err)
	}

	if !forceUpdate && latestVersion.LTE(current) {
		fmt.Printf("✓ Already up to date (%s)\n", appVersion)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	fmt.Printf("→ Updating %s to %s...\n", appVersion, latestVersion)
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}

	fmt.Printf("✓ Updated to %s\n", latestVersion)
	return nil
}
