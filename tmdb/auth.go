package tmdb

import (
	"context"
	"fmt"
	"net/http"
)

// Session holds the authentication state of a client
type Session struct {
	AccountID    int64
	RequestToken string
	SessionID    string
}

// LoggedIn reports whether a session id is held
func (s Session) LoggedIn() bool {
	return s.SessionID != ""
}

// Session returns a copy of the current session
func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// SetSession replaces the current session
func (c *Client) SetSession(session Session) {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
}

func (c *Client) updateSession(update func(*Session)) {
	c.mu.Lock()
	update(&c.session)
	c.mu.Unlock()
}

// GetRequestToken obtains a fresh request token and holds it for Login or web approval
func (c *Client) GetRequestToken(ctx context.Context) (string, error) {
	resp, err := getJSON[RequestTokenResponse](ctx, c, c.endpoint(pathRequestToken, nil))
	if err != nil {
		return "", fmt.Errorf("failed to get request token: %w", err)
	}
	if resp.RequestToken == "" {
		return "", fmt.Errorf("failed to get request token: %w", ErrInvalidResponse)
	}

	c.updateSession(func(s *Session) {
		s.RequestToken = resp.RequestToken
	})

	c.logger.Debug().
		Time("expires_at", resp.Expires()).
		Msg("Obtained TMDB request token")
	return resp.RequestToken, nil
}

// Login validates the held request token with a username and password
func (c *Client) Login(ctx context.Context, username, password string) error {
	token := c.Session().RequestToken
	if token == "" {
		return ErrNoRequestToken
	}

	body := LoginRequest{
		Username:     username,
		Password:     password,
		RequestToken: token,
	}

	resp, err := postJSON[LoginRequest, RequestTokenResponse](ctx, c, c.endpoint(pathValidateLogin, nil), body)
	if err != nil {
		return fmt.Errorf("failed to validate login: %w", err)
	}
	if resp.RequestToken == "" {
		return fmt.Errorf("failed to validate login: %w", ErrInvalidResponse)
	}

	c.updateSession(func(s *Session) {
		s.RequestToken = resp.RequestToken
	})

	c.logger.Debug().Str("username", username).Msg("Validated TMDB request token with login")
	return nil
}

// CreateSession exchanges the held, validated request token for a session id
func (c *Client) CreateSession(ctx context.Context) (string, error) {
	token := c.Session().RequestToken
	if token == "" {
		return "", ErrNoRequestToken
	}

	resp, err := postJSON[PostSession, SessionResponse](ctx, c, c.endpoint(pathCreateSession, nil), PostSession{RequestToken: token})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	if resp.SessionID == "" {
		return "", fmt.Errorf("failed to create session: %w", ErrInvalidResponse)
	}

	c.updateSession(func(s *Session) {
		s.SessionID = resp.SessionID
		s.AccountID = 0
	})

	c.logger.Info().Msg("Created TMDB session")
	return resp.SessionID, nil
}

// GetAccount fetches the account behind the current session and holds its id
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	endpoint, err := c.sessionEndpoint(pathAccount, nil)
	if err != nil {
		return nil, err
	}

	account, err := getJSON[Account](ctx, c, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account.ID == 0 {
		return nil, fmt.Errorf("failed to get account: %w", ErrInvalidResponse)
	}

	c.updateSession(func(s *Session) {
		s.AccountID = account.ID
	})

	return account, nil
}

// Logout deletes the current session and forgets the session and request token
func (c *Client) Logout(ctx context.Context) error {
	sessionID := c.Session().SessionID
	if sessionID == "" {
		return ErrNoSession
	}

	_, err := sendJSON[LogoutRequest, StatusResponse](ctx, c, http.MethodDelete, c.endpoint(pathSession, nil), LogoutRequest{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	c.SetSession(Session{})
	c.logger.Info().Msg("Deleted TMDB session")
	return nil
}

// resolveAccountID returns the held account id, fetching it on first use
func (c *Client) resolveAccountID(ctx context.Context) (int64, error) {
	session := c.Session()
	if !session.LoggedIn() {
		return 0, ErrNoSession
	}
	if session.AccountID != 0 {
		return session.AccountID, nil
	}

	account, err := c.GetAccount(ctx)
	if err != nil {
		return 0, err
	}
	return account.ID, nil
}
