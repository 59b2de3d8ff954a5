// Package login drives the TMDB sign-in sequence: obtain a request token,
// validate it with the user's credentials (or let the user approve it in a
// browser), then exchange it for a session.
package login

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/s0up4200/tmdbctl/tmdb"
)

var (
	// ErrLoginInProgress is returned when a login is started while another is running
	ErrLoginInProgress = errors.New("login already in progress")
	// ErrMissingCredentials is returned when username or password is empty
	ErrMissingCredentials = errors.New("username and password are required")
)

// Step identifies a stage of the login sequence
type Step int

const (
	StepRequestToken Step = iota + 1
	StepLogin
	StepApprove
	StepCreateSession
)

// String returns the string representation of a Step
func (s Step) String() string {
	switch s {
	case StepRequestToken:
		return "request token"
	case StepLogin:
		return "login"
	case StepApprove:
		return "approve"
	case StepCreateSession:
		return "create session"
	default:
		return "unknown"
	}
}

// StepError reports which step of the sequence failed
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("login failed at %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Authenticator is the part of the TMDB client the flow needs
type Authenticator interface {
	GetRequestToken(ctx context.Context) (string, error)
	Login(ctx context.Context, username, password string) error
	CreateSession(ctx context.Context) (string, error)
	GetAccount(ctx context.Context) (*tmdb.Account, error)
	WebAuthURL() (string, error)
	Session() tmdb.Session
}

// Observer is told when a login starts and stops and how it ended.
// LoggingIn(true) and LoggingIn(false) are each called once per attempt,
// followed by exactly one Finished.
type Observer interface {
	LoggingIn(active bool)
	Finished(session tmdb.Session, err error)
}

// Credentials for a username/password login
type Credentials struct {
	Username string
	Password string
}

// ApproveFunc hands the browser approval URL to the user and returns once
// the token has been approved, or with an error if the user gave up.
type ApproveFunc func(ctx context.Context, approvalURL string) error

// Result is delivered by Start
type Result struct {
	Session tmdb.Session
	Account *tmdb.Account
	Err     error
}

// Flow runs login attempts against an Authenticator, one at a time
type Flow struct {
	auth      Authenticator
	observer  Observer
	logger    zerolog.Logger
	loggingIn atomic.Bool
}

// NewFlow creates a login flow. observer may be nil.
func NewFlow(auth Authenticator, observer Observer, logger zerolog.Logger) *Flow {
	return &Flow{
		auth:     auth,
		observer: observer,
		logger:   logger,
	}
}

// LoggingIn reports whether an attempt is running
func (f *Flow) LoggingIn() bool {
	return f.loggingIn.Load()
}

// Login runs request token → login → session, then looks up the account.
// The account lookup is best effort: a session without an account id is
// still a successful login and the id is resolved on first use.
func (f *Flow) Login(ctx context.Context, creds Credentials) (*tmdb.Account, error) {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return nil, ErrMissingCredentials
	}

	return f.run(ctx, func(ctx context.Context) error {
		if err := f.auth.Login(ctx, creds.Username, creds.Password); err != nil {
			return &StepError{Step: StepLogin, Err: err}
		}
		return nil
	})
}

// LoginViaWebsite obtains a request token, lets the user approve it in a
// browser through approve, then creates a session.
func (f *Flow) LoginViaWebsite(ctx context.Context, approve ApproveFunc) (*tmdb.Account, error) {
	return f.run(ctx, func(ctx context.Context) error {
		approvalURL, err := f.auth.WebAuthURL()
		if err != nil {
			return &StepError{Step: StepApprove, Err: err}
		}
		if err := approve(ctx, approvalURL); err != nil {
			return &StepError{Step: StepApprove, Err: err}
		}
		return nil
	})
}

// Start runs Login in a goroutine and delivers exactly one Result.
// The channel is buffered so the goroutine exits even if nobody reads.
func (f *Flow) Start(ctx context.Context, creds Credentials) <-chan Result {
	results := make(chan Result, 1)

	go func() {
		defer close(results)
		account, err := f.Login(ctx, creds)
		results <- Result{
			Session: f.auth.Session(),
			Account: account,
			Err:     err,
		}
	}()

	return results
}

// run wraps validate between the token and session steps
func (f *Flow) run(ctx context.Context, validate func(context.Context) error) (account *tmdb.Account, err error) {
	if !f.loggingIn.CompareAndSwap(false, true) {
		return nil, ErrLoginInProgress
	}

	f.setLoggingIn(true)
	defer func() {
		// The flag drops only after the observer has seen the end of this
		// attempt, so a new attempt's LoggingIn(true) never precedes Finished.
		defer f.loggingIn.Store(false)
		f.setLoggingIn(false)
		if f.observer != nil {
			f.observer.Finished(f.auth.Session(), err)
		}
	}()

	if _, err := f.auth.GetRequestToken(ctx); err != nil {
		return nil, &StepError{Step: StepRequestToken, Err: err}
	}

	if err := validate(ctx); err != nil {
		return nil, err
	}

	if _, err := f.auth.CreateSession(ctx); err != nil {
		return nil, &StepError{Step: StepCreateSession, Err: err}
	}

	account, accountErr := f.auth.GetAccount(ctx)
	if accountErr != nil {
		f.logger.Warn().Err(accountErr).Msg("Logged in, but failed to look up account")
		return nil, nil
	}

	f.logger.Info().Str("account", account.GetDisplayName()).Msg("Logged in to TMDB")
	return account, nil
}

func (f *Flow) setLoggingIn(active bool) {
	if f.observer != nil {
		f.observer.LoggingIn(active)
	}
}
