package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DownloadPoster fetches the poster image for posterPath
func (c *Client) DownloadPoster(ctx context.Context, posterPath string) ([]byte, error) {
	if posterPath == "" {
		return nil, ErrNoPoster
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PosterURL(posterPath), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download poster: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read poster: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	c.logger.Debug().Str("poster", posterPath).Int("bytes", len(data)).Msg("Downloaded poster")
	return data, nil
}
