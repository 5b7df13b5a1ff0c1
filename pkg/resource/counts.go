package resource

// Counts is a growable per-ID reference count, used by the dispatch
// engine's borrow ledger to track how many systems currently hold a
// shared (read) borrow on a resource.
//
// tonks stores these counts as u8 on the assumption that no more than
// 255 systems can simultaneously read one resource; Go has no narrower
// unsigned type worth the truncation risk, and the number of concurrent
// readers is bounded by the number of systems in the graph anyway, so
// this uses uint32 instead.
type Counts struct {
	n []uint32
}

// NewCounts returns an empty Counts.
func NewCounts() *Counts { return &Counts{} }

func (c *Counts) grow(i int) {
	if i < len(c.n) {
		return
	}
	n := make([]uint32, i+1)
	copy(n, c.n)
	c.n = n
}

// Inc increments the count for id and returns the new value.
func (c *Counts) Inc(id ID) uint32 {
	c.grow(int(id))
	c.n[id]++
	return c.n[id]
}

// Dec decrements the count for id and returns the new value. Dec on a
// zero count is a no-op and returns 0.
func (c *Counts) Dec(id ID) uint32 {
	if int(id) >= len(c.n) || c.n[id] == 0 {
		return 0
	}
	c.n[id]--
	return c.n[id]
}

// Get returns the current count for id.
func (c *Counts) Get(id ID) uint32 {
	if int(id) >= len(c.n) {
		return 0
	}
	return c.n[id]
}
