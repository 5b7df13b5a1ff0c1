// Package trace records a dispatch engine's per-system completion
// events to a BoltDB file for offline inspection: a dispatch run has no
// need for a persistent store of its own, but a trace of what it did is
// genuinely worth keeping around between process runs.
//
// Recording is optional and entirely out of the dispatch engine's
// critical path: Attach only ever reads from the engine's existing
// Subscribe channel, so a slow or absent recorder cannot block dispatch.
package trace
