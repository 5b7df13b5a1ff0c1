package handle

import "github.com/cuemby/taskgraph/pkg/resource"

// Handle is the borrow-declaring contract the stage planner and
// dispatch engine use uniformly, whatever resource type or arity of
// tuple sits behind it.
//
// Handle deliberately has no generic "Get the loaded value" method: Go
// does not allow an interface method to return a type parameter that
// varies per implementation, so typed access lives as a concrete Get
// method on Read[T] and Write[T] instead, reached through the typed
// fields of the TupleN types.
type Handle interface {
	// Reads returns the resource IDs this handle borrows for shared
	// (read-only) access. A type the registry has not seen yet is
	// assigned its ID on the first call.
	Reads() []resource.ID
	// Writes returns the resource IDs this handle borrows exclusively.
	Writes() []resource.ID
	// Load resolves the handle's declared resources out of s, granted
	// by the dispatch engine's borrow ledger. Load is called once per
	// run, immediately before the owning system's Execute.
	Load(s *resource.Store) error
	// Flush reconciles any pending side effects after the owning
	// system's Execute has returned. No-op by default.
	Flush()
}

// Read is a shared borrow of T.
type Read[T any] struct {
	reg *resource.Registry
	val *T
}

// NewRead constructs a Read handle for T, registered against reg. reg
// must be the registry of the store the handle will load from (usually
// store.Registry()), so the IDs the planner sees and the IDs the store
// resolves agree.
func NewRead[T any](reg *resource.Registry) *Read[T] {
	return &Read[T]{reg: reg}
}

func (r *Read[T]) Reads() []resource.ID  { return []resource.ID{resource.IDFor[T](r.reg)} }
func (r *Read[T]) Writes() []resource.ID { return nil }

func (r *Read[T]) Load(s *resource.Store) error {
	v, err := resource.GetShared[T](s)
	if err != nil {
		return err
	}
	r.val = v
	return nil
}

// Get returns the loaded value. It is only valid after Load has run.
func (r *Read[T]) Get() *T { return r.val }

// Flush is a no-op: a shared borrow has no side effects to reconcile.
func (r *Read[T]) Flush() {}

// Write is an exclusive borrow of T.
type Write[T any] struct {
	reg *resource.Registry
	val *T
}

// NewWrite constructs a Write handle for T, registered against reg. As
// with NewRead, reg must be the registry of the store the handle will
// load from.
func NewWrite[T any](reg *resource.Registry) *Write[T] {
	return &Write[T]{reg: reg}
}

func (w *Write[T]) Reads() []resource.ID  { return nil }
func (w *Write[T]) Writes() []resource.ID { return []resource.ID{resource.IDFor[T](w.reg)} }

func (w *Write[T]) Load(s *resource.Store) error {
	v, err := resource.GetExclusive[T](s)
	if err != nil {
		return err
	}
	w.val = v
	return nil
}

// Get returns the loaded value for mutation. It is only valid after
// Load has run.
func (w *Write[T]) Get() *T { return w.val }

// Flush is a no-op: mutations through Get land directly in the store's
// value, so there is nothing pending to write back.
func (w *Write[T]) Flush() {}
