package tmdb

// movieGenres is TMDB's fixed movie genre list (GET /genre/movie/list)
var movieGenres = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// GenreName returns the name of a movie genre id, or "" if unknown
func GenreName(id int) string {
	return movieGenres[id]
}

// GenreNames returns the known genre names of the movie, in id order of the movie
func (m *Movie) GenreNames() []string {
	names := make([]string, 0, len(m.GenreIDs))
	for _, id := range m.GenreIDs {
		if name := GenreName(id); name != "" {
			names = append(names, name)
		}
	}
	return names
}
