package publisher

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/restbind/descriptor"
	"github.com/kbukum/restbind/errors"
)

// Registry maps strategy ids to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry holding the built-in strategies.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.factories[descriptor.PublisherNoBody] = NoBody
	r.factories[descriptor.PublisherURLEncoded] = URLEncoded
	r.factories[descriptor.PublisherMultipart] = Multipart
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry used when a binder is not
// given one.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds a strategy. Ids are unique; re-registering one is an error.
func (r *Registry) Register(id string, f Factory) error {
	if id == "" {
		return fmt.Errorf("publisher: id is required")
	}
	if f == nil {
		return fmt.Errorf("publisher: factory for %q is nil", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("publisher: %q already registered", id)
	}
	r.factories[id] = f
	return nil
}

// Lookup returns the factory registered under id.
func (r *Registry) Lookup(id string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[id]
	return f, ok
}

// IDs returns the registered ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve compiles the publisher named by c.Method.Publisher. An unknown id
// is UNKNOWN_PUBLISHER; a failing factory is PUBLISHER_FAILED.
func (r *Registry) Resolve(c Context) (Publisher, error) {
	id := c.Method.Publisher
	f, ok := r.Lookup(id)
	if !ok {
		return nil, errors.UnknownPublisher(c.Method.Name, id)
	}
	pub, err := f(c)
	if err != nil {
		return nil, errors.PublisherFailed(c.Method.Name, id, err)
	}
	if pub == nil {
		return nil, errors.PublisherFailed(c.Method.Name, id, fmt.Errorf("factory returned no publisher"))
	}
	return pub, nil
}
