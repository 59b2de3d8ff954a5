package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/tmdbctl/tmdb"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	extra      map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*ExprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *ExprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *ExprCompiler) {
		maps.Copy(c.customFuncs, funcs)
	}
}

// ExprCompiler implements Compiler for expr-based filters
type ExprCompiler struct {
	customFuncs map[string]any
	cache       *lruCache
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) *ExprCompiler {
	c := &ExprCompiler{
		customFuncs: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile compiles an expression into an executable filter. Unknown names are
// compile errors so typos in field names fail early.
func (c *ExprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.environment(tmdb.Movie{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		extra:      c.customFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *ExprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *ExprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

func (c *ExprCompiler) environment(movie tmdb.Movie) map[string]any {
	return createEnvironment(movie, c.customFuncs)
}

// Expression returns the original filter expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// Evaluate evaluates the filter against a movie. Runtime errors count as no match.
func (f *exprFilter) Evaluate(movie tmdb.Movie) bool {
	result, err := expr.Run(f.program, createEnvironment(movie, f.extra))
	if err != nil {
		return false
	}
	matched, ok := result.(bool)
	return ok && matched
}

// createEnvironment exposes movie fields and helper functions to expressions
func createEnvironment(movie tmdb.Movie, extra map[string]any) map[string]any {
	genreIDs := movie.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}

	env := map[string]any{
		// Movie fields
		"ID":            movie.ID,
		"Title":         movie.Title,
		"OriginalTitle": movie.OriginalTitle,
		"Overview":      movie.Overview,
		"Language":      movie.OriginalLanguage,
		"Year":          movie.Year(),
		"Released":      movie.Released(),
		"Rating":        movie.VoteAverage,
		"Votes":         movie.VoteCount,
		"Popularity":    movie.Popularity,
		"Adult":         movie.Adult,
		"HasPoster":     movie.PosterPath != "",
		"GenreIDs":      genreIDs,
		"Genres":        movie.GenreNames(),

		// Genre helpers
		"hasGenre": func(genre any) bool {
			switch g := genre.(type) {
			case int:
				return slices.Contains(genreIDs, g)
			case string:
				for _, id := range genreIDs {
					if strings.EqualFold(tmdb.GenreName(id), g) {
						return true
					}
				}
			}
			return false
		},

		// Date helpers
		"daysSince": func(t time.Time) int {
			if t.IsZero() {
				return -1
			}
			return int(time.Since(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"monthsAgo": func(months int) time.Time {
			return time.Now().AddDate(0, -months, 0)
		},
		"yearsAgo": func(years int) time.Time {
			return time.Now().AddDate(-years, 0, 0)
		},
		"parseDate": func(dateStr string) time.Time {
			t, _ := time.Parse("2006-01-02", dateStr)
			return t
		},
		"now": time.Now,

		// Case-insensitive string helpers. contains, startsWith and endsWith
		// are expr operators and stay case-sensitive; lower and upper are builtins.
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"istartsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"iendsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
	}

	maps.Copy(env, extra)
	return env
}
