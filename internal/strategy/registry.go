package strategy

import (
	"sort"
	"sync"

	"hindsight/internal/core"
)

// Factory builds a fresh, unconfigured source instance.
type Factory func() Source

// Registry manages the available strategy sources. It holds factories
// rather than instances so every Get hands out a fresh source; callers
// can Init it with per-run parameters without racing other runs.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a source factory to the registry. The factory is invoked
// once to learn the source's name; a later registration under the same
// name replaces the earlier one.
func (r *Registry) Register(f Factory) {
	name := f().Name()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Get builds a fresh source by name
func (r *Registry) Get(name string) (Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	if !ok {
		return nil, core.ErrStrategyNotFound
	}
	return f(), nil
}

// Names returns registered source names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// GetAll builds one instance of every registered source, ordered by name
func (r *Registry) GetAll() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Source, 0, len(r.factories))
	for _, name := range r.namesLocked() {
		result = append(result, r.factories[name]())
	}
	return result
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
