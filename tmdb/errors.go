package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
	// ErrNoRequestToken indicates an operation needed a request token that was never obtained
	ErrNoRequestToken = errors.New("no request token: call GetRequestToken first")
	// ErrNoSession indicates an operation needed a logged-in session
	ErrNoSession = errors.New("no session: log in first")
	// ErrInvalidResponse indicates TMDB answered with an unexpected payload
	ErrInvalidResponse = errors.New("invalid response from tmdb")
	// ErrMarkRejected indicates TMDB did not confirm a favorite/watchlist change
	ErrMarkRejected = errors.New("tmdb did not confirm the change")
	// ErrNoPoster indicates a movie has no poster image
	ErrNoPoster = errors.New("movie has no poster")
)

// TMDB status codes, see https://developer.themoviedb.org/docs/errors
const (
	StatusSuccess              = 1
	StatusAuthFailed           = 3
	StatusInvalidAPIKey        = 7
	StatusItemUpdated          = 12
	StatusItemDeleted          = 13
	StatusAuthenticationFailed = 14
	StatusSessionDenied        = 17
	StatusInvalidCredentials   = 30
	StatusEmailNotVerified     = 32
	StatusInvalidRequestToken  = 33
	StatusResourceNotFound     = 34
)

// StatusError is a TMDB status envelope returned in place of the expected response.
type StatusError struct {
	HTTPStatus    int
	StatusCode    int
	StatusMessage string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.StatusMessage)
}

// IsUnauthorized reports whether TMDB rejected the API key, credentials, token or session.
func (e *StatusError) IsUnauthorized() bool {
	switch e.StatusCode {
	case StatusAuthFailed, StatusInvalidAPIKey, StatusAuthenticationFailed, StatusSessionDenied,
		StatusInvalidCredentials, StatusEmailNotVerified, StatusInvalidRequestToken:
		return true
	}
	return e.HTTPStatus == http.StatusUnauthorized
}

// IsNotFound reports whether the requested resource does not exist.
func (e *StatusError) IsNotFound() bool {
	return e.StatusCode == StatusResourceNotFound || e.HTTPStatus == http.StatusNotFound
}

// APIError represents a non-2xx response that carried no TMDB envelope
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
