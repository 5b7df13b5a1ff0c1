//go:build debug

package resource

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// debugBorrows tracks, per (Store, ID) pair, a borrow-mode counter: 0
// means free, a positive value is the number of live shared borrows, -1
// means held exclusively. It exists only in `-tags debug` builds, as a
// second, independent check on the dispatch engine's borrow ledger —
// GetShared/GetExclusive panic here if they ever observe a state the
// ledger should have made impossible.
var debugBorrows sync.Map // map[debugKey]*atomic.Int32

type debugKey struct {
	store *Store
	id    ID
}

func debugFlag(s *Store, id ID) *atomic.Int32 {
	v, _ := debugBorrows.LoadOrStore(debugKey{s, id}, new(atomic.Int32))
	return v.(*atomic.Int32)
}

func debugAcquireShared(s *Store, id ID) {
	flag := debugFlag(s, id)
	for {
		cur := flag.Load()
		if cur < 0 {
			panic(fmt.Sprintf("resource: debug aliasing violation: shared borrow of id %d while held exclusively", id))
		}
		if flag.CompareAndSwap(cur, cur+1) {
			return
		}
	}
}

func debugAcquireExclusive(s *Store, id ID) {
	if !debugFlag(s, id).CompareAndSwap(0, -1) {
		panic(fmt.Sprintf("resource: debug aliasing violation: exclusive borrow of id %d while already held", id))
	}
}

// DebugReleaseShared undoes one debugAcquireShared call for id. Called
// by the dispatch engine once per completed system, symmetrically with
// its own ledger release. No-op without the debug build tag.
func (s *Store) DebugReleaseShared(id ID) {
	debugFlag(s, id).Add(-1)
}

// DebugReleaseExclusive undoes a debugAcquireExclusive call for id.
// No-op without the debug build tag.
func (s *Store) DebugReleaseExclusive(id ID) {
	debugFlag(s, id).Store(0)
}
