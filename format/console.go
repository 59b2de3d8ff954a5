// Package format renders movies and batch outcomes for the terminal.
package format

import (
	"fmt"
	"strings"

	"github.com/s0up4200/tmdbctl/radarr"
	"github.com/s0up4200/tmdbctl/tmdb"
)

// Options contains options for formatting movie lists
type Options struct {
	ShowDetails bool
	// PosterURL, when set, resolves poster paths to full URLs
	PosterURL func(posterPath string) string
}

// ConsoleFormatter provides console output formatting for movies
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatMovieList formats a list of movies under a heading
func (f *ConsoleFormatter) FormatMovieList(heading string, movies []tmdb.Movie, options Options) string {
	if len(movies) == 0 {
		return "No movies found\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", heading, len(movies))

	for i, movie := range movies {
		isLast := i == len(movies)-1
		prefix, indent := branch(isLast)

		fmt.Fprintf(&sb, "%s── %s [%d]\n", prefix, titleWithYear(movie), movie.ID)

		if options.ShowDetails {
			var parts []string
			if movie.VoteCount > 0 {
				parts = append(parts, fmt.Sprintf("Rating: %.1f (%d votes)", movie.VoteAverage, movie.VoteCount))
			}
			if genres := movie.GenreNames(); len(genres) > 0 {
				parts = append(parts, "Genres: "+strings.Join(genres, ", "))
			}
			if len(parts) > 0 {
				fmt.Fprintf(&sb, "%s%s\n", indent, strings.Join(parts, " | "))
			}
			if movie.Overview != "" {
				fmt.Fprintf(&sb, "%s%s\n", indent, truncate(movie.Overview, 100))
			}
			if options.PosterURL != nil && movie.PosterPath != "" {
				fmt.Fprintf(&sb, "%sPoster: %s\n", indent, options.PosterURL(movie.PosterPath))
			}
		}

		if !isLast && options.ShowDetails {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatBatchResult summarizes a batch of favorite/watchlist/poster operations
func (f *ConsoleFormatter) FormatBatchResult(action string, result tmdb.BatchResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: %d of %d succeeded\n", action, len(result.Succeeded), result.Requested)
	for _, failure := range result.Failed {
		fmt.Fprintf(&sb, "  ✗ %d: %v\n", failure.MovieID, failure.Err)
	}

	return sb.String()
}

// FormatSyncResult summarizes a Radarr hand-off
func (f *ConsoleFormatter) FormatSyncResult(result radarr.SyncResult) string {
	var sb strings.Builder

	added := "Added"
	if result.DryRun {
		added = "Would add"
	}

	writeSection := func(label string, movies []tmdb.Movie) {
		if len(movies) == 0 {
			return
		}
		fmt.Fprintf(&sb, "%s (%d):\n", label, len(movies))
		for i, movie := range movies {
			prefix, _ := branch(i == len(movies)-1)
			fmt.Fprintf(&sb, "%s── %s\n", prefix, titleWithYear(movie))
		}
		sb.WriteString("\n")
	}

	writeSection(added, result.Added)
	writeSection("Already in Radarr", result.Skipped)

	if len(result.Failed) > 0 {
		fmt.Fprintf(&sb, "Failed (%d):\n", len(result.Failed))
		for _, failure := range result.Failed {
			fmt.Fprintf(&sb, "  ✗ %s: %v\n", titleWithYear(failure.Movie), failure.Err)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Processed: %d movie", result.Requested)
	if result.Requested != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n")

	return sb.String()
}

func branch(isLast bool) (prefix, indent string) {
	if isLast {
		return "╰", "    "
	}
	return "├", "│   "
}

func titleWithYear(movie tmdb.Movie) string {
	if year := movie.Year(); year > 0 {
		return fmt.Sprintf("%s (%d)", movie.Title, year)
	}
	return movie.Title
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
