package resource

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// ID is a dense, zero-based identifier assigned to a resource type the
// first time it is registered. IDs are stable for the lifetime of the
// Registry that issued them and are safe to use as slice/bitset indices.
type ID int

// ErrMissing is returned when a resource type has never been inserted
// into a Store.
var ErrMissing = fmt.Errorf("resource: value not present in store")

// Registry assigns dense IDs to Go types on first sight. A Registry is
// safe for concurrent use.
type Registry struct {
	mu   sync.Mutex
	ids  map[reflect.Type]ID
	next ID
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[reflect.Type]ID)}
}

// Len reports how many distinct resource types have been registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

func (r *Registry) idFor(t reflect.Type) ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[t]; ok {
		return id
	}
	id := r.next
	r.ids[t] = id
	r.next++
	return id
}

// IDFor returns the dense ID for T, allocating one on first call.
//
// This is a free function rather than a method on Registry because Go
// does not allow a method to introduce its own type parameter.
func IDFor[T any](r *Registry) ID {
	var zero T
	return r.idFor(reflect.TypeOf(&zero).Elem())
}

// Store owns one value per resource ID. All values are heap-allocated so
// that a shared or exclusive borrow always observes the same underlying
// object, matching the aliasing guarantee the dispatch engine enforces.
type Store struct {
	reg    *Registry
	mu     sync.RWMutex
	values map[ID]any
}

// NewStore returns an empty Store with its own private Registry.
func NewStore() *Store {
	return &Store{reg: NewRegistry(), values: make(map[ID]any)}
}

// Registry returns the Store's type-to-ID registry, used by callers that
// need a resource's ID ahead of a borrow (the stage planner, for one).
func (s *Store) Registry() *Registry { return s.reg }

// Insert stores v as the current value for type T, replacing any prior
// value, and returns T's resource ID.
func Insert[T any](s *Store, v T) ID {
	id := IDFor[T](s.reg)
	p := new(T)
	*p = v
	s.mu.Lock()
	s.values[id] = p
	s.mu.Unlock()
	return id
}

// Contains reports whether a value of type T is currently present.
func Contains[T any](s *Store) bool {
	id := IDFor[T](s.reg)
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[id]
	return ok
}

// ContainsID reports whether a value is present at id in s's own
// registry space. Used by the stage planner to validate, at build time,
// that every resource a system declares is actually present in the
// store it will be built against.
func (s *Store) ContainsID(id ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[id]
	return ok
}

// GetShared returns a pointer to the stored T for read access. Callers
// must not rely on this function alone to enforce the aliasing
// invariant; that is the dispatch engine's job via the borrow ledger. In
// `-tags debug` builds this also asserts the ledger's own bookkeeping,
// panicking if id is already held exclusively.
func GetShared[T any](s *Store) (*T, error) {
	v, err := getTyped[T](s)
	if err != nil {
		return nil, err
	}
	debugAcquireShared(s, IDFor[T](s.reg))
	return v, nil
}

// GetExclusive returns the same pointer as GetShared. It exists as a
// distinct name so handle construction reads symmetrically with the
// shared/exclusive vocabulary used throughout the borrow protocol. In
// `-tags debug` builds this also asserts the ledger's own bookkeeping,
// panicking if id is already held in any mode.
func GetExclusive[T any](s *Store) (*T, error) {
	v, err := getTyped[T](s)
	if err != nil {
		return nil, err
	}
	debugAcquireExclusive(s, IDFor[T](s.reg))
	return v, nil
}

func getTyped[T any](s *Store) (*T, error) {
	id := IDFor[T](s.reg)
	s.mu.RLock()
	v, ok := s.values[id]
	s.mu.RUnlock()
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: %T", ErrMissing, zero)
	}
	return v.(*T), nil
}

// Context is passed to every running system. World carries the concrete
// application state the caller threaded through Engine.Execute, SystemID
// names the currently running system for logging/metrics and Go is the
// caller's context.Context, passed along for the system body's own use;
// the dispatch engine itself never aborts on it.
//
// SystemID is a plain int, not a system.ID, so this package never needs
// to import pkg/system.
type Context struct {
	World    any
	SystemID int
	Go       context.Context
}
