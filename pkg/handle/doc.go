// Package handle provides the typed, borrow-declaring views a system
// reads and writes through: Read[T] and Write[T] wrap a single resource
// type, and TupleN composes up to eight of them into the single value a
// system's Execute receives.
//
// Handle.Reads/Handle.Writes are consulted by the stage planner (pkg/plan)
// before any system runs, so a handle's declared footprint must never
// change once constructed. Handle.Load is called by the dispatch engine
// once per system per run, after the borrow ledger has granted the
// handle's resources.
package handle
