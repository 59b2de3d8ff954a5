package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", zerolog.Nop(), append([]Option{WithBaseURL(server.URL)}, opts...)...)
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		opts    []Option
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			apiKey: "test-key",
		},
		{
			name:    "missing API key",
			apiKey:  "  ",
			wantErr: true,
			errMsg:  "API key is required",
		},
		{
			name:    "empty base URL",
			apiKey:  "test-key",
			opts:    []Option{WithBaseURL("/")},
			wantErr: true,
			errMsg:  "base URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiKey, zerolog.Nop(), tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultBaseURL, client.baseURL)
			assert.Equal(t, DefaultPosterSize, client.posterSize)
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("test-key", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("test-key", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Same(t, customClient, client.httpClient)
	})

	t.Run("trailing slashes are trimmed", func(t *testing.T) {
		client, err := NewClient("test-key", logger,
			WithBaseURL("http://localhost/3/"),
			WithWebURL("http://web/"),
			WithImageURL("http://img/t/p/"),
		)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost/3", client.baseURL)
		assert.Equal(t, "http://web", client.webURL)
		assert.Equal(t, "http://img/t/p", client.imageURL)
	})

	t.Run("with session", func(t *testing.T) {
		session := Session{SessionID: "abc", AccountID: 9}
		client, err := NewClient("test-key", logger, WithSession(session))
		require.NoError(t, err)
		assert.Equal(t, session, client.Session())
		assert.True(t, client.Session().LoggedIn())
	})
}

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantToken  string
		wantStatus int
		wantHTTP   int
		wantDecode bool
	}{
		{
			name:      "typed response",
			status:    http.StatusOK,
			body:      `{"success":true,"expires_at":"2016-08-26 17:04:39 UTC","request_token":"abc"}`,
			wantToken: "abc",
		},
		{
			name:       "envelope with error status",
			status:     http.StatusUnauthorized,
			body:       `{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key.","success":false}`,
			wantStatus: StatusInvalidAPIKey,
		},
		{
			name:       "failure envelope with 200",
			status:     http.StatusOK,
			body:       `{"status_code":33,"status_message":"Invalid request token","success":false}`,
			wantStatus: StatusInvalidRequestToken,
		},
		{
			name:       "typed decode fails, envelope applies",
			status:     http.StatusOK,
			body:       `{"status_code":1,"status_message":"Success.","success":true,"request_token":5}`,
			wantStatus: StatusSuccess,
		},
		{
			name:       "bare error envelope with 200",
			status:     http.StatusOK,
			body:       `{"status_code":34,"status_message":"The resource you requested could not be found."}`,
			wantStatus: StatusResourceNotFound,
		},
		{
			name:      "success code without success flag",
			status:    http.StatusOK,
			body:      `{"status_code":1,"expires_at":"2016-08-26 17:04:39 UTC","request_token":"abc"}`,
			wantToken: "abc",
		},
		{
			name:     "non-2xx without envelope",
			status:   http.StatusInternalServerError,
			body:     `upstream exploded`,
			wantHTTP: http.StatusInternalServerError,
		},
		{
			name:     "not found json without envelope",
			status:   http.StatusNotFound,
			body:     `{"errors":["not here"]}`,
			wantHTTP: http.StatusNotFound,
		},
		{
			name:       "garbage with 200",
			status:     http.StatusOK,
			body:       `<html>`,
			wantDecode: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := decodeResponse[RequestTokenResponse](tt.status, []byte(tt.body))

			switch {
			case tt.wantToken != "":
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, resp.RequestToken)
				assert.Equal(t, 2016, resp.Expires().Year())
			case tt.wantStatus != 0:
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tt.wantStatus, statusErr.StatusCode)
				assert.Equal(t, tt.status, statusErr.HTTPStatus)
			case tt.wantHTTP != 0:
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.wantHTTP, apiErr.StatusCode)
			case tt.wantDecode:
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to decode response")
				var statusErr *StatusError
				assert.False(t, errors.As(err, &statusErr))
			}
		})
	}
}

func TestAuthHandshake(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /authentication/token/new", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		writeJSON(w, http.StatusOK, map[string]any{
			"success":       true,
			"expires_at":    "2030-01-01 00:00:00 UTC",
			"request_token": "token-1",
		})
	})

	mux.HandleFunc("POST /authentication/token/validate_with_login", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, LoginRequest{Username: "neo", Password: "redpill", RequestToken: "token-1"}, body)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "request_token": "token-2"})
	})

	mux.HandleFunc("POST /authentication/session/new", func(w http.ResponseWriter, r *http.Request) {
		var body PostSession
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "token-2", body.RequestToken)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "session_id": "session-1"})
	})

	mux.HandleFunc("GET /account", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "session-1", r.URL.Query().Get("session_id"))
		writeJSON(w, http.StatusOK, map[string]any{"id": 42, "username": "neo"})
	})

	mux.HandleFunc("GET /account/42/watchlist/movies", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "session-1", r.URL.Query().Get("session_id"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		writeJSON(w, http.StatusOK, map[string]any{
			"page":    1,
			"results": []map[string]any{{"id": 603, "title": "The Matrix", "release_date": "1999-03-30"}},
		})
	})

	client := newTestClient(t, mux)
	ctx := context.Background()

	token, err := client.GetRequestToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	require.NoError(t, client.Login(ctx, "neo", "redpill"))
	assert.Equal(t, "token-2", client.Session().RequestToken)

	sessionID, err := client.CreateSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "session-1", sessionID)

	movies, err := client.GetWatchlist(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, int64(603), movies[0].ID)
	assert.Equal(t, 1999, movies[0].Year())

	assert.Equal(t, Session{AccountID: 42, RequestToken: "token-2", SessionID: "session-1"}, client.Session())
}

func TestLoginRequiresToken(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	err := client.Login(context.Background(), "neo", "redpill")
	assert.ErrorIs(t, err, ErrNoRequestToken)

	_, err = client.CreateSession(context.Background())
	assert.ErrorIs(t, err, ErrNoRequestToken)

	_, err = client.WebAuthURL()
	assert.ErrorIs(t, err, ErrNoRequestToken)

	assert.Zero(t, calls.Load())
}

func TestLoginInvalidCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success":        false,
			"status_code":    30,
			"status_message": "Invalid username and/or password: You did not provide a valid login.",
		})
	}), WithSession(Session{RequestToken: "token-1"}))

	err := client.Login(context.Background(), "neo", "bluepill")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, StatusInvalidCredentials, statusErr.StatusCode)
	assert.True(t, statusErr.IsUnauthorized())
	assert.Equal(t, "token-1", client.Session().RequestToken)
}

func TestLogout(t *testing.T) {
	t.Run("deletes session", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/authentication/session", r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"session_id":"session-1"}`, string(body))
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		}), WithSession(Session{SessionID: "session-1", RequestToken: "token", AccountID: 3}))

		require.NoError(t, client.Logout(context.Background()))
		assert.Equal(t, Session{}, client.Session())
	})

	t.Run("keeps session on failure", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}), WithSession(Session{SessionID: "session-1"}))

		require.Error(t, client.Logout(context.Background()))
		assert.Equal(t, "session-1", client.Session().SessionID)
	})

	t.Run("without session", func(t *testing.T) {
		client, err := NewClient("test-key", zerolog.Nop())
		require.NoError(t, err)
		assert.ErrorIs(t, client.Logout(context.Background()), ErrNoSession)
	})
}

func TestSearch(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "fast & furious 7?", r.URL.Query().Get("query"))
		writeJSON(w, http.StatusOK, map[string]any{
			"page":          1,
			"total_results": 2,
			"results": []map[string]any{
				{"id": 168259, "title": "Furious 7"},
				{"id": 9799, "title": "The Fast and the Furious"},
			},
		})
	}))

	movies, err := client.Search(context.Background(), "fast & furious 7?")
	require.NoError(t, err)
	assert.Len(t, movies, 2)
	assert.Equal(t, "Furious 7", movies[0].Title)

	movies, err = client.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, movies)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearchCancelled(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, "matrix")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetFavorites(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/account/7/favorite/movies", r.URL.Path)
		assert.Equal(t, "session-1", r.URL.Query().Get("session_id"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		writeJSON(w, http.StatusOK, map[string]any{
			"results": []map[string]any{{"id": 129, "title": "Spirited Away"}},
		})
	}), WithSession(Session{SessionID: "session-1", AccountID: 7}))

	movies, err := client.GetFavorites(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, int64(129), movies[0].ID)
	assert.Equal(t, "Spirited Away", movies[0].Title)
}

func TestMarkFavorite(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       bool
	}{
		{name: "created", statusCode: StatusSuccess, want: true},
		{name: "updated", statusCode: StatusItemUpdated, want: true},
		{name: "deleted", statusCode: StatusItemDeleted, want: true},
		{name: "unexpected code", statusCode: 5, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/account/7/favorite", r.URL.Path)
				assert.Equal(t, "session-1", r.URL.Query().Get("session_id"))

				var body MarkFavorite
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, MarkFavorite{MediaType: MediaTypeMovie, MediaID: 603, Favorite: true}, body)

				writeJSON(w, http.StatusCreated, map[string]any{
					"success":        true,
					"status_code":    tt.statusCode,
					"status_message": "ok",
				})
			}), WithSession(Session{SessionID: "session-1", AccountID: 7}))

			ok, err := client.MarkFavorite(context.Background(), 603, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestMarkWatchlist(t *testing.T) {
	t.Run("carries session", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/account/7/watchlist", r.URL.Path)
			assert.Equal(t, "session-1", r.URL.Query().Get("session_id"))

			var body MarkWatchlist
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.False(t, body.Watchlist)

			writeJSON(w, http.StatusOK, map[string]any{"success": true, "status_code": StatusItemDeleted})
		}), WithSession(Session{SessionID: "session-1", AccountID: 7}))

		ok, err := client.MarkWatchlist(context.Background(), 603, false)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("without session", func(t *testing.T) {
		client, err := NewClient("test-key", zerolog.Nop())
		require.NoError(t, err)

		_, err = client.MarkWatchlist(context.Background(), 603, true)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("session denied", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success":        false,
				"status_code":    StatusSessionDenied,
				"status_message": "Session denied.",
			})
		}), WithSession(Session{SessionID: "expired", AccountID: 7}))

		_, err := client.MarkWatchlist(context.Background(), 603, true)
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.True(t, statusErr.IsUnauthorized())
	})
}

func TestDownloadPoster(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/w500/poster.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	client, err := NewClient("test-key", zerolog.Nop(), WithImageURL(server.URL))
	require.NoError(t, err)

	data, err := client.DownloadPoster(context.Background(), "/poster.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)

	_, err = client.DownloadPoster(context.Background(), "/missing.jpg")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())

	_, err = client.DownloadPoster(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoPoster)
}

func TestTestConnection(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/configuration", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"images": map[string]any{
				"secure_base_url": "https://image.tmdb.org/t/p/",
				"poster_sizes":    []string{"w92", "w500", "original"},
			},
		})
	}))

	assert.NoError(t, client.TestConnection(context.Background()))
}

func TestStatusError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &StatusError{StatusCode: 7, StatusMessage: "Invalid API key"}
		assert.Equal(t, "tmdb API error: status 7: Invalid API key", err.Error())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			err      StatusError
			expected bool
		}{
			{StatusError{StatusCode: StatusInvalidAPIKey}, true},
			{StatusError{StatusCode: StatusInvalidCredentials}, true},
			{StatusError{StatusCode: StatusSessionDenied}, true},
			{StatusError{StatusCode: 99, HTTPStatus: http.StatusUnauthorized}, true},
			{StatusError{StatusCode: StatusResourceNotFound}, false},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.err.IsUnauthorized(), "status %d", tt.err.StatusCode)
		}
	})

	t.Run("IsNotFound", func(t *testing.T) {
		assert.True(t, (&StatusError{StatusCode: StatusResourceNotFound}).IsNotFound())
		assert.True(t, (&StatusError{HTTPStatus: http.StatusNotFound}).IsNotFound())
		assert.False(t, (&StatusError{StatusCode: StatusInvalidAPIKey}).IsNotFound())
	})
}

func TestAPIError(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "Not Found"}
	assert.Equal(t, "tmdb API error: status 404: Not Found", err.Error())
	assert.True(t, err.IsNotFound())

	for code, expected := range map[int]bool{401: true, 403: true, 404: false, 500: false} {
		assert.Equal(t, expected, (&APIError{StatusCode: code}).IsUnauthorized())
	}
}

func TestMovie(t *testing.T) {
	movie := Movie{ReleaseDate: "1999-03-30"}
	assert.Equal(t, 1999, movie.Year())

	movie.ReleaseDate = ""
	assert.Zero(t, movie.Year())
	assert.True(t, movie.Released().IsZero())
}
