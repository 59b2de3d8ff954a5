package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/s0up4200/tmdbctl/config"
	"github.com/s0up4200/tmdbctl/filter"
	"github.com/s0up4200/tmdbctl/format"
	"github.com/s0up4200/tmdbctl/login"
	"github.com/s0up4200/tmdbctl/tmdb"
)

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	tmdbClient    *tmdb.Client
	filterManager *filter.Manager
	formatter     = format.NewConsoleFormatter()

	appVersion   = "dev"
	appBuildTime = "unknown"

	// Command flags
	filterExpr string
	preset     string
	dryRun     bool
	noConfirm  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tmdbctl",
	Short: "Manage your TMDB account from the command line",
	Long: `tmdbctl is a CLI for The Movie Database (TMDB). It logs in to your
account, searches movies, manages your favorites and watchlist, downloads
posters and hands your watchlist over to Radarr.`,
	SilenceUsage: true,
}

// SetVersion records build information shown by the version and update commands
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = version
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "perform a dry run without making changes")
}

// initializeApp loads the configuration and creates the TMDB client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	// Override dry-run from command line if specified
	if cmd.Flags().Changed("dry-run") {
		cfg.Safety.DryRun = dryRun
	}

	opts := []tmdb.Option{
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithWebURL(cfg.TMDB.WebURL),
		tmdb.WithImageURL(cfg.TMDB.ImageURL),
		tmdb.WithRedirectURL(cfg.TMDB.RedirectURL),
		tmdb.WithPosterSize(cfg.TMDB.PosterSize),
	}
	if cfg.TMDB.Timeout > 0 {
		opts = append(opts, tmdb.WithTimeout(cfg.TMDB.Timeout))
	}
	if cfg.TMDB.SessionID != "" {
		opts = append(opts, tmdb.WithSession(tmdb.Session{SessionID: cfg.TMDB.SessionID}))
	}

	tmdbClient, err = tmdb.NewClient(cfg.TMDB.APIKey, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	filterManager = filter.NewManager()
	if err := filterManager.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("failed to load filter presets: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ensureSession makes sure the client holds a session, logging in with the
// configured credentials for this invocation when no session id is configured.
func ensureSession(ctx context.Context) error {
	if tmdbClient.Session().SessionID != "" {
		return nil
	}

	if cfg.TMDB.Username == "" || cfg.TMDB.Password == "" {
		return fmt.Errorf("%w: set tmdb.session_id (run 'tmdbctl login') or tmdb.username and tmdb.password", tmdb.ErrNoSession)
	}

	flow := login.NewFlow(tmdbClient, nil, logger)
	if _, err := flow.Login(ctx, login.Credentials{
		Username: cfg.TMDB.Username,
		Password: cfg.TMDB.Password,
	}); err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}

	return nil
}

// resolveFilter picks the --filter expression, the --preset or the configured default
func resolveFilter() (filter.CompiledFilter, error) {
	f, err := filterManager.Resolve(filterExpr, preset, cfg.Filter.DefaultExpression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	if f != nil {
		logger.Debug().Str("filter", f.Expression()).Msg("Applying filter")
	}
	return f, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

// prompt reads one trimmed line from stdin
func prompt(label string) (string, error) {
	if !isTerminal(os.Stdin) {
		return "", fmt.Errorf("cannot prompt for %s: stdin is not a terminal", strings.ToLower(label))
	}

	fmt.Printf("%s: ", label)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// promptPassword reads a line from stdin without echoing it
func promptPassword(label string) (string, error) {
	if !isTerminal(os.Stdin) {
		return "", fmt.Errorf("cannot prompt for %s: stdin is not a terminal", strings.ToLower(label))
	}

	fmt.Printf("%s: ", label)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(password), nil
}

// confirm asks a y/N question unless confirmation is disabled
func confirm(question string) bool {
	if noConfirm || !cfg.Safety.Confirm {
		return true
	}

	fmt.Printf("%s [y/N]: ", question)
	var response string
	fmt.Scanln(&response)
	return strings.ToLower(strings.TrimSpace(response)) == "y"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
