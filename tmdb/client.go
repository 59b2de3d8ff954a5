package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL     = "https://api.themoviedb.org/3"
	DefaultWebURL      = "https://www.themoviedb.org"
	DefaultImageURL    = "https://image.tmdb.org/t/p"
	DefaultRedirectURL = "themoviemanager:authenticate"
	DefaultPosterSize  = "w500"
)

// Client represents a TMDB API client
type Client struct {
	baseURL     string
	webURL      string
	imageURL    string
	redirectURL string
	posterSize  string
	apiKey      string
	httpClient  *http.Client
	logger      zerolog.Logger

	mu      sync.RWMutex
	session Session
}

// NewClient creates a new TMDB client
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL:     DefaultBaseURL,
		webURL:      DefaultWebURL,
		imageURL:    DefaultImageURL,
		redirectURL: DefaultRedirectURL,
		posterSize:  DefaultPosterSize,
		apiKey:      apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.baseURL = strings.TrimRight(client.baseURL, "/")
	client.webURL = strings.TrimRight(client.webURL, "/")
	client.imageURL = strings.TrimRight(client.imageURL, "/")

	if client.baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}

	return client, nil
}

// TestConnection verifies the API key against the configuration endpoint
func (c *Client) TestConnection(ctx context.Context) error {
	var cfg struct {
		Images struct {
			SecureBaseURL string   `json:"secure_base_url"`
			PosterSizes   []string `json:"poster_sizes"`
		} `json:"images"`
	}

	resp, err := getJSON[json.RawMessage](ctx, c, c.endpoint(pathConfiguration, nil))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(*resp, &cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	c.logger.Debug().
		Str("image_base", cfg.Images.SecureBaseURL).
		Strs("poster_sizes", cfg.Images.PosterSizes).
		Msg("Connected to TMDB")
	return nil
}

// getJSON performs a GET and decodes the response into T
func getJSON[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return decodeResponse[T](status, body)
}

// postJSON sends payload as a JSON POST body and decodes the response into T
func postJSON[Req, T any](ctx context.Context, c *Client, endpoint string, payload Req) (*T, error) {
	return sendJSON[Req, T](ctx, c, http.MethodPost, endpoint, payload)
}

// sendJSON sends payload as a JSON body with the given method and decodes the response into T
func sendJSON[Req, T any](ctx context.Context, c *Client, method, endpoint string, payload Req) (*T, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	body, status, err := c.do(ctx, method, endpoint, encoded)
	if err != nil {
		return nil, err
	}
	return decodeResponse[T](status, body)
}

// do performs an HTTP request and returns the raw body and status code
func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", redactedPath(endpoint)).
		Msg("Making TMDB API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

// decodeResponse decodes body into T, falling back to the TMDB status envelope.
// An envelope reporting failure wins over the typed decode, since TMDB error
// bodies would otherwise decode into a zero-valued T.
func decodeResponse[T any](status int, body []byte) (*T, error) {
	if statusErr := envelopeError(status, body); statusErr != nil {
		return nil, statusErr
	}

	if status < 200 || status >= 300 {
		return nil, &APIError{
			StatusCode: status,
			Message:    http.StatusText(status),
			Body:       string(body),
		}
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		var envelope StatusResponse
		if envErr := json.Unmarshal(body, &envelope); envErr == nil && envelope.StatusCode != 0 {
			return nil, &StatusError{
				HTTPStatus:    status,
				StatusCode:    envelope.StatusCode,
				StatusMessage: envelope.StatusMessage,
			}
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &out, nil
}

// envelopeError returns the envelope in body as an error when it reports failure
func envelopeError(status int, body []byte) *StatusError {
	if !gjson.ValidBytes(body) {
		return nil
	}

	fields := gjson.GetManyBytes(body, "status_code", "status_message", "success")
	code, message, success := fields[0], fields[1], fields[2]
	if !code.Exists() {
		return nil
	}

	// Without a success flag the code alone decides, so a bare error
	// envelope on a 2xx does not decode into an empty T.
	failed := status >= http.StatusBadRequest
	if success.Exists() {
		failed = failed || !success.Bool()
	} else {
		failed = failed || !succeededCode(int(code.Int()))
	}
	if !failed {
		return nil
	}

	return &StatusError{
		HTTPStatus:    status,
		StatusCode:    int(code.Int()),
		StatusMessage: message.String(),
	}
}

// redactedPath strips the query (api_key, session_id) from a URL for logging
func redactedPath(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}
	return u.Path
}
