package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdbctl/login"
	"github.com/s0up4200/tmdbctl/tmdb"
)

var webLogin bool

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to TMDB and print a session id",
	Long: `Log in to your TMDB account and create a session.

Credentials come from tmdb.username and tmdb.password, or are prompted for.
With --web the request token is approved in the browser instead.

The session id is printed, not stored. Export it as TMDBCTL_TMDB_SESSION_ID
or set tmdb.session_id to reuse it.`,
	PreRunE: initializeApp,
	RunE:    runLogin,
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Delete the current TMDB session",
	PreRunE: initializeApp,
	RunE:    runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	loginCmd.Flags().BoolVar(&webLogin, "web", false, "approve the login in a browser")
}

// consoleObserver reports login state changes on the terminal
type consoleObserver struct{}

func (consoleObserver) LoggingIn(active bool) {
	if active {
		fmt.Println("→ Logging in to TMDB...")
	}
}

func (consoleObserver) Finished(session tmdb.Session, err error) {
	if err != nil {
		fmt.Printf("✗ Login failed: %v\n", err)
		return
	}
	fmt.Println("✓ Logged in")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flow := login.NewFlow(tmdbClient, consoleObserver{}, logger)

	var (
		account *tmdb.Account
		err     error
	)

	if webLogin {
		account, err = flow.LoginViaWebsite(ctx, approveInBrowser)
	} else {
		creds, credErr := loginCredentials()
		if credErr != nil {
			return credErr
		}
		account, err = flow.Login(ctx, creds)
	}

	if err != nil {
		var stepErr *login.StepError
		if errors.As(err, &stepErr) {
			logger.Debug().Str("step", stepErr.Step.String()).Err(stepErr.Err).Msg("Login step failed")
		}
		var statusErr *tmdb.StatusError
		if errors.As(err, &statusErr) && statusErr.IsUnauthorized() {
			return fmt.Errorf("TMDB rejected the login: %s", statusErr.StatusMessage)
		}
		return err
	}

	if account != nil {
		fmt.Printf("\nAccount: %s (ID: %d)\n", account.GetDisplayName(), account.ID)
	}
	fmt.Printf("Session: %s\n\n", tmdbClient.Session().SessionID)
	fmt.Println("To reuse this session, run:")
	fmt.Printf("  export TMDBCTL_TMDB_SESSION_ID=%s\n", tmdbClient.Session().SessionID)

	return nil
}

func loginCredentials() (login.Credentials, error) {
	creds := login.Credentials{
		Username: cfg.TMDB.Username,
		Password: cfg.TMDB.Password,
	}

	var err error
	if creds.Username == "" {
		if creds.Username, err = prompt("Username"); err != nil {
			return creds, err
		}
	}
	if creds.Password == "" {
		if creds.Password, err = promptPassword("Password"); err != nil {
			return creds, err
		}
	}

	return creds, nil
}

// approveInBrowser prints the approval URL and waits for the user
func approveInBrowser(ctx context.Context, approvalURL string) error {
	fmt.Println("\nOpen this URL in your browser and approve the request:")
	fmt.Printf("  %s\n\n", approvalURL)

	answer, err := prompt("Press Enter once approved (q to cancel)")
	if err != nil {
		return err
	}
	if answer == "q" {
		return errors.New("login cancelled")
	}

	return ctx.Err()
}

func runLogout(cmd *cobra.Command, args []string) error {
	if tmdbClient.Session().SessionID == "" {
		return fmt.Errorf("%w: set tmdb.session_id to the session to delete", tmdb.ErrNoSession)
	}

	if cfg.Safety.DryRun {
		fmt.Println("[DRY RUN] Would delete the current session")
		return nil
	}

	if err := tmdbClient.Logout(cmd.Context()); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}

	fmt.Println("✓ Session deleted")
	return nil
}
