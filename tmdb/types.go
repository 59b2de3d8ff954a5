package tmdb

import (
	"time"
)

// MediaType represents the type of media
type MediaType string

const (
	// MediaTypeMovie represents a movie
	MediaTypeMovie MediaType = "movie"
	// MediaTypeTV represents a TV show
	MediaTypeTV MediaType = "tv"
)

// releaseDateLayout is the layout TMDB uses for release_date
const releaseDateLayout = "2006-01-02"

// expiresAtLayout is the layout TMDB uses for token expiry timestamps
const expiresAtLayout = "2006-01-02 15:04:05 MST"

// Movie represents a movie as returned by search and account lists
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Adult            bool    `json:"adult"`
	Video            bool    `json:"video"`
}

// Released returns the parsed release date, or the zero time if unknown
func (m *Movie) Released() time.Time {
	t, err := time.Parse(releaseDateLayout, m.ReleaseDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Year returns the release year, or 0 if unknown
func (m *Movie) Year() int {
	t := m.Released()
	if t.IsZero() {
		return 0
	}
	return t.Year()
}

// MovieResults is a page of movies
type MovieResults struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// RequestTokenResponse is returned by token/new and token/validate_with_login
type RequestTokenResponse struct {
	Success      bool   `json:"success"`
	ExpiresAt    string `json:"expires_at"`
	RequestToken string `json:"request_token"`
}

// Expires returns the parsed token expiry, or the zero time if absent
func (r *RequestTokenResponse) Expires() time.Time {
	t, err := time.Parse(expiresAtLayout, r.ExpiresAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SessionResponse is returned by session/new
type SessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
}

// LoginRequest validates a request token with username and password
type LoginRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	RequestToken string `json:"request_token"`
}

// PostSession exchanges a validated request token for a session
type PostSession struct {
	RequestToken string `json:"request_token"`
}

// LogoutRequest deletes a session
type LogoutRequest struct {
	SessionID string `json:"session_id"`
}

// MarkFavorite adds or removes a movie from the account favorites
type MarkFavorite struct {
	MediaType MediaType `json:"media_type"`
	MediaID   int64     `json:"media_id"`
	Favorite  bool      `json:"favorite"`
}

// MarkWatchlist adds or removes a movie from the account watchlist
type MarkWatchlist struct {
	MediaType MediaType `json:"media_type"`
	MediaID   int64     `json:"media_id"`
	Watchlist bool      `json:"watchlist"`
}

// StatusResponse is the TMDB status envelope
type StatusResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}

// Succeeded reports whether a write was applied: created, updated or deleted
func (r *StatusResponse) Succeeded() bool {
	return succeededCode(r.StatusCode)
}

func succeededCode(code int) bool {
	switch code {
	case StatusSuccess, StatusItemUpdated, StatusItemDeleted:
		return true
	default:
		return false
	}
}

// Account represents the logged-in TMDB account
type Account struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	ISO6391      string `json:"iso_639_1"`
	ISO31661     string `json:"iso_3166_1"`
	IncludeAdult bool   `json:"include_adult"`
}

// GetDisplayName returns the best available display name for the account
func (a *Account) GetDisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Username
}
