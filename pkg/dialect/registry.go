package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/glot/pkg/token"
)

// ErrDialectRequired is returned when a dialect is required but not provided.
var ErrDialectRequired = errors.New("dialect is required")

// UnknownDialectError is returned when a dialect name is not registered.
type UnknownDialectError struct {
	Name string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q", e.Name)
}

// Registry maps dialect names and aliases to dialects. Names are matched
// case-insensitively. The zero value is not usable; use NewRegistry.
type Registry struct {
	mu       sync.RWMutex
	dialects map[string]*Dialect
	fallback *Dialect
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{dialects: make(map[string]*Dialect)}
}

// Register registers d under its name and any aliases. Registering a name
// again replaces the previous dialect.
func (r *Registry) Register(d *Dialect, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dialects[strings.ToLower(d.Name)] = d
	for _, alias := range aliases {
		r.dialects[strings.ToLower(alias)] = d
	}
}

// SetDefault sets the dialect returned for an empty name.
func (r *Registry) SetDefault(d *Dialect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = d
}

// Default returns the dialect used when no name is given.
func (r *Registry) Default() *Dialect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

// Get returns a dialect by name or alias. The empty name resolves to the
// default dialect.
func (r *Registry) Get(name string) (*Dialect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if strings.TrimSpace(name) == "" {
		return r.fallback, r.fallback != nil
	}
	d, ok := r.dialects[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// GetOrRaise returns a dialect by name or an error naming the failure.
func (r *Registry) GetOrRaise(name string) (*Dialect, error) {
	if d, ok := r.Get(name); ok {
		return d, nil
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrDialectRequired
	}
	return nil, &UnknownDialectError{Name: name}
}

// List returns the canonical names of all registered dialects (sorted).
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, d := range r.dialects {
		seen[strings.ToLower(d.Name)] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aliases returns the alternative names registered for a dialect (sorted).
func (r *Registry) Aliases(name string) []string {
	d, ok := r.Get(name)
	if !ok {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var aliases []string
	for key, other := range r.dialects {
		if other == d && key != strings.ToLower(d.Name) {
			aliases = append(aliases, key)
		}
	}
	sort.Strings(aliases)
	return aliases
}

// Dialect registry
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// Get returns a dialect by name from the process-wide registry.
func Get(name string) (*Dialect, bool) { return defaultRegistry.Get(name) }

// GetOrRaise returns a dialect by name from the process-wide registry.
func GetOrRaise(name string) (*Dialect, error) { return defaultRegistry.GetOrRaise(name) }

// Register registers a dialect in the process-wide registry.
// Called by dialect implementations in their init() functions.
func Register(d *Dialect, aliases ...string) { defaultRegistry.Register(d, aliases...) }

// SetDefault sets the default dialect of the process-wide registry.
func SetDefault(d *Dialect) { defaultRegistry.SetDefault(d) }

// List returns all registered dialect names (sorted).
func List() []string { return defaultRegistry.List() }

// Aliases returns the aliases of a dialect in the process-wide registry.
func Aliases(name string) []string { return defaultRegistry.Aliases(name) }

// Global clause registry - tracks ALL tokens that act as clauses in ANY registered dialect.
// Used purely for generating helpful error messages.
var (
	knownClauses = make(map[token.TokenType]string)
	clausesMu    sync.RWMutex
)

// recordClause registers a token as a clause keyword.
func recordClause(t token.TokenType, name string) {
	clausesMu.Lock()
	defer clausesMu.Unlock()
	knownClauses[t] = name
}

// IsKnownClause returns true if ANY registered dialect uses this token as a clause.
// Returns the clause name for error messages.
func IsKnownClause(t token.TokenType) (string, bool) {
	clausesMu.RLock()
	defer clausesMu.RUnlock()
	name, ok := knownClauses[t]
	return name, ok
}
