//go:build !debug

package resource

func debugAcquireShared(s *Store, id ID)    {}
func debugAcquireExclusive(s *Store, id ID) {}

// DebugReleaseShared is a no-op without the debug build tag; see debug.go.
func (s *Store) DebugReleaseShared(id ID) {}

// DebugReleaseExclusive is a no-op without the debug build tag; see debug.go.
func (s *Store) DebugReleaseExclusive(id ID) {}
