// Package tmdb provides a client for The Movie Database (TMDB) v3 API.
//
// The client covers the parts of the API a personal movie manager needs:
// the request token / login / session handshake, movie search, the
// account favorite and watchlist lists, marking movies on those lists and
// poster downloads.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient("your-api-key", logger,
//		tmdb.WithTimeout(15*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if _, err := client.GetRequestToken(ctx); err != nil {
//		log.Fatal(err)
//	}
//	if err := client.Login(ctx, "user", "secret"); err != nil {
//		log.Fatal(err)
//	}
//	if _, err := client.CreateSession(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	movies, err := client.GetWatchlist(ctx)
//
// # Responses
//
// Every call decodes into a typed response. When TMDB answers with its
// status envelope instead ({"status_code": 7, "status_message": "...",
// "success": false}) the call returns a *StatusError carrying the TMDB
// status code. Non-2xx answers without an envelope yield an *APIError.
//
//	var statusErr *tmdb.StatusError
//	if errors.As(err, &statusErr) && statusErr.IsUnauthorized() {
//		// credentials or session rejected
//	}
//
// Only the first page of list and search results is fetched.
package tmdb
