package profiles

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages available profiles
type Registry struct {
	profiles map[string]*Profile
	mutex    sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]*Profile),
	}
}

// Register validates and adds a profile
func (r *Registry) Register(p *Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.profiles[p.Name]; exists {
		return fmt.Errorf("profile %s already registered", p.Name)
	}

	r.profiles[p.Name] = p
	return nil
}

// Get retrieves a profile by name
func (r *Registry) Get(name string) (*Profile, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	p, exists := r.profiles[name]
	if !exists {
		return nil, fmt.Errorf("profile %s not found", name)
	}
	return p, nil
}

// List returns all profiles ordered by name
func (r *Registry) List() []*Profile {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered profile names in order
func (r *Registry) Names() []string {
	list := r.List()
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.Name
	}
	return names
}

// Exists checks if a profile exists
func (r *Registry) Exists(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, exists := r.profiles[name]
	return exists
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// DefaultRegistry returns the registry holding the built-in profiles
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		if defaultRegistry == nil {
			defaultRegistry = NewBuiltinRegistry()
		}
	})
	return defaultRegistry
}

// SetDefaultRegistry replaces the default registry (useful for testing)
func SetDefaultRegistry(r *Registry) {
	defaultOnce.Do(func() {})
	defaultRegistry = r
}

// NewBuiltinRegistry returns a registry with every built-in profile
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, p := range []*Profile{Flutter()} {
		if err := r.Register(p); err != nil {
			panic(fmt.Sprintf("built-in profile %s: %v", p.Name, err))
		}
	}
	return r
}
