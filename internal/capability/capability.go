// Package capability is the binding point between abstract capabilities
// (filesystem access, the game runner for the active platform, ...) and their
// concrete implementations. A Container is created once at startup and handed
// to the components that need it; tests build their own with fakes bound.
package capability

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotConfigured is returned when a capability is resolved before it was bound
var ErrNotConfigured = errors.New("capability not configured")

// Key names a capability and the type its implementation satisfies
type Key[T any] struct {
	name string
}

// NewKey creates a key for a capability
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the capability name
func (k Key[T]) Name() string {
	return k.name
}

type binding struct {
	once    sync.Once
	factory func() (any, error)
	value   any
	err     error
}

// Container holds capability bindings
type Container struct {
	mu       sync.RWMutex
	bindings map[string]*binding
}

// NewContainer creates an empty container
func NewContainer() *Container {
	return &Container{
		bindings: make(map[string]*binding),
	}
}

// Bind stores a factory for key. The factory runs at most once, on first Resolve.
// Binding a key again replaces the previous binding and drops its instance.
func Bind[T any](c *Container, key Key[T], factory func() (T, error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[key.name] = &binding{
		factory: func() (any, error) {
			return factory()
		},
	}
}

// BindValue binds an already constructed implementation
func BindValue[T any](c *Container, key Key[T], value T) {
	Bind(c, key, func() (T, error) {
		return value, nil
	})
}

// Resolve returns the implementation bound to key, constructing it on first use.
// Unbound keys fail with ErrNotConfigured before anything else happens.
func Resolve[T any](c *Container, key Key[T]) (T, error) {
	var zero T

	c.mu.RLock()
	b, ok := c.bindings[key.name]
	c.mu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotConfigured, key.name)
	}

	b.once.Do(func() {
		b.value, b.err = b.factory()
	})
	if b.err != nil {
		return zero, fmt.Errorf("constructing %s: %w", key.name, b.err)
	}

	v, ok := b.value.(T)
	if !ok {
		return zero, fmt.Errorf("capability %s has type %T", key.name, b.value)
	}
	return v, nil
}

// MustResolve is Resolve for wiring code where a missing binding is a programming error.
func MustResolve[T any](c *Container, key Key[T]) T {
	v, err := Resolve(c, key)
	if err != nil {
		panic(err)
	}
	return v
}

// IsBound reports whether key has a binding
func IsBound[T any](c *Container, key Key[T]) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[key.name]
	return ok
}
