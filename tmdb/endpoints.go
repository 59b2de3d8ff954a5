package tmdb

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	pathRequestToken  = "/authentication/token/new"
	pathValidateLogin = "/authentication/token/validate_with_login"
	pathCreateSession = "/authentication/session/new"
	pathSession       = "/authentication/session"
	pathAccount       = "/account"
	pathSearchMovie   = "/search/movie"
	pathConfiguration = "/configuration"
)

// accountPath builds /account/{id}/{parts...}
func accountPath(accountID int64, parts ...string) string {
	return pathAccount + "/" + strconv.FormatInt(accountID, 10) + "/" + strings.Join(parts, "/")
}

// endpoint builds an API URL carrying the API key and any extra query parameters
func (c *Client) endpoint(path string, params url.Values) string {
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	return c.baseURL + path + "?" + query.Encode()
}

// sessionEndpoint is endpoint plus session_id
func (c *Client) sessionEndpoint(path string, params url.Values) (string, error) {
	sessionID := c.Session().SessionID
	if sessionID == "" {
		return "", ErrNoSession
	}

	withSession := url.Values{}
	for key, values := range params {
		withSession[key] = values
	}
	withSession.Set("session_id", sessionID)

	return c.endpoint(path, withSession), nil
}

// searchEndpoint builds the movie search URL for query
func (c *Client) searchEndpoint(query string) string {
	return c.endpoint(pathSearchMovie, url.Values{"query": {query}})
}

// WebAuthURL returns the TMDB page where a user approves the held request token
// in a browser. TMDB redirects to the configured redirect URL afterwards.
func (c *Client) WebAuthURL() (string, error) {
	token := c.Session().RequestToken
	if token == "" {
		return "", ErrNoRequestToken
	}

	u := fmt.Sprintf("%s/authenticate/%s", c.webURL, url.PathEscape(token))
	if c.redirectURL != "" {
		u += "?" + url.Values{"redirect_to": {c.redirectURL}}.Encode()
	}
	return u, nil
}

// PosterURL returns the image URL for a poster path, or "" if path is empty
func (c *Client) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	if !strings.HasPrefix(posterPath, "/") {
		posterPath = "/" + posterPath
	}
	return c.imageURL + "/" + c.posterSize + posterPath
}
