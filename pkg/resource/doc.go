// Package resource allocates dense resource identifiers and holds the
// typed values that systems borrow while running.
//
//	Registry  -- maps a Go type to a stable, dense ResourceId
//	Store     -- owns one value per ResourceId, reachable through
//	             Insert/GetShared/GetExclusive
//	Context    -- the per-call handle a system body receives; carries the
//	             caller's opaque world value, the running system's numeric
//	             id and the caller's context.Context
//
// Nothing here knows about systems, stages or dispatch: this package is
// the lowest layer of the module so every other package can depend on it
// without creating an import cycle.
//
// Built with `-tags debug`, GetShared/GetExclusive additionally assert a
// per-resource borrow-mode flag and panic on a conflicting borrow; see
// debug.go. The default build carries none of that bookkeeping.
package resource
