package filter

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/s0up4200/tmdbctl/tmdb"
)

// Manager holds named filter presets and compiles ad-hoc expressions
type Manager struct {
	compiler Compiler
	filters  map[string]CompiledFilter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: NewExprCompiler(WithCache(100)),
		filters:  make(map[string]CompiledFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilters compiles and registers presets. Nothing is registered if any fails.
func (m *Manager) RegisterFilters(presets map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(presets))

	for name, expression := range presets {
		filter, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a compiled preset by name
func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	filter, exists := m.filters[name]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns all registered preset names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve picks the filter to apply.
// Priority: expression > preset > defaultExpression. It returns nil when none is set.
func (m *Manager) Resolve(expression, preset, defaultExpression string) (CompiledFilter, error) {
	switch {
	case expression != "":
		return m.compiler.Compile(expression)
	case preset != "":
		filter, ok := m.GetFilter(preset)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
		}
		return filter, nil
	case defaultExpression != "":
		return m.compiler.Compile(defaultExpression)
	default:
		return nil, nil
	}
}

// Apply filters movies with filter; a nil filter keeps every movie
func (m *Manager) Apply(filter CompiledFilter, movies []tmdb.Movie) []tmdb.Movie {
	if filter == nil {
		return movies
	}
	return Match(filter, movies)
}
