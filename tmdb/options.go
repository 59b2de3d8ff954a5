package tmdb

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithBaseURL overrides the API base URL (default https://api.themoviedb.org/3).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithWebURL overrides the website URL used for browser approval of request tokens.
func WithWebURL(webURL string) Option {
	return func(c *Client) {
		c.webURL = webURL
	}
}

// WithImageURL overrides the image CDN URL.
func WithImageURL(imageURL string) Option {
	return func(c *Client) {
		c.imageURL = imageURL
	}
}

// WithRedirectURL sets where TMDB sends the browser after a token is approved.
func WithRedirectURL(redirectURL string) Option {
	return func(c *Client) {
		c.redirectURL = redirectURL
	}
}

// WithPosterSize sets the poster size segment, e.g. "w342" or "original".
func WithPosterSize(size string) Option {
	return func(c *Client) {
		if size != "" {
			c.posterSize = size
		}
	}
}

// WithSession starts the client with an existing session.
func WithSession(session Session) Option {
	return func(c *Client) {
		c.session = session
	}
}
