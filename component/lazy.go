package component

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kbukum/restbind/logger"
)

// Lazy builds a value on first use and shares it afterwards.
//
// Get uses double-checked locking: callers that find the value published
// take an atomic load and never lock; the first caller to find it missing
// takes the mutex, checks again, builds and publishes. A failed build
// publishes nothing, so the next Get tries again.
type Lazy[T any] struct {
	name  string
	build func(ctx context.Context) (T, error)

	value atomic.Pointer[T]
	mu    sync.Mutex
}

// NewLazy creates a cell named name whose value is produced by build.
func NewLazy[T any](name string, build func(context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{name: name, build: build}
}

// Name returns the cell name.
func (l *Lazy[T]) Name() string {
	return l.name
}

// Get returns the value, building it if needed.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	if v := l.value.Load(); v != nil {
		return *v, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring the lock
	if v := l.value.Load(); v != nil {
		return *v, nil
	}

	var zero T
	if l.build == nil {
		return zero, fmt.Errorf("no initializer for component: %s", l.name)
	}

	log := logger.Get(logger.ComponentName)
	log.Debug("initializing lazy component", logger.Fields(logger.FieldComponent, l.name))

	v, err := l.build(ctx)
	if err != nil {
		return zero, fmt.Errorf("failed to initialize %s: %w", l.name, err)
	}
	l.value.Store(&v)

	log.Debug("lazy component initialized", logger.Fields(logger.FieldComponent, l.name))
	return v, nil
}

// Peek returns the value if it has been built, without building it.
func (l *Lazy[T]) Peek() (T, bool) {
	if v := l.value.Load(); v != nil {
		return *v, true
	}
	var zero T
	return zero, false
}

// IsInitialized reports whether the value has been built.
func (l *Lazy[T]) IsInitialized() bool {
	return l.value.Load() != nil
}
