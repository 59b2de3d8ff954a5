package radarr

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"
)

// Client hands TMDB movies over to Radarr
type Client struct {
	store  MovieStore
	logger zerolog.Logger
}

// NewClient creates a new Radarr client
func NewClient(url, apiKey string, logger zerolog.Logger) (*Client, error) {
	config := starr.New(apiKey, url, 30*time.Second)
	radarrClient := radarr.New(config)

	// Test the connection
	if err := radarrClient.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to Radarr: %w", err)
	}

	return NewClientWithStore(&starrStore{client: radarrClient}, logger), nil
}

// NewClientWithStore creates a client on top of any MovieStore
func NewClientWithStore(store MovieStore, logger zerolog.Logger) *Client {
	return &Client{
		store:  store,
		logger: logger,
	}
}
