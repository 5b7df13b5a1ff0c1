// Package dispatch runs a plan once against a resource store: it holds
// the borrow ledger that tracks which resources are currently held and
// how, a FIFO of stage tasks waiting to run, a worker pool that bounds
// how many system bodies run concurrently, and a completion channel the
// engine drains to release resources and admit the next waiting task.
//
// A whole stage is dispatched as one pool task that iterates its
// systems in parallel and reports back with a single completion
// message, so the cost of an N-system stage is one acquire, one
// handshake and one release rather than N of each. The stage borrows
// under its aggregate read/write sets; oneshot tasks, reserved for
// dynamically scheduled single systems, would borrow under their own.
//
// The core loop is ported from tonks's scheduler (crossbeam bounded
// channel, BitSet of held writes, per-resource read counts,
// try_obtain_resources), translated from unsafe raw-pointer sharing
// into Go's ordinary shared-pointer-through-a-typed-store model: Go's
// memory model already gives every goroutine a consistent view of
// *T once the dispatch engine has established a happens-before edge via
// the completion channel, so no unsafe package is needed.
package dispatch
