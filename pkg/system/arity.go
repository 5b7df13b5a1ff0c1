package system

import (
	"github.com/cuemby/taskgraph/pkg/handle"
	"github.com/cuemby/taskgraph/pkg/resource"
)

// System0 is a system that borrows nothing.
type System0 struct {
	name string
	fn   func(resource.Context) error
}

// New0 builds a system with no resource borrows.
func New0(name string, fn func(resource.Context) error) *System0 {
	return &System0{name: name, fn: fn}
}

func (s *System0) Name() string          { return s.name }
func (s *System0) Handle() handle.Handle { return handle.Tuple0{} }
func (s *System0) Execute(ctx resource.Context) error {
	return s.fn(ctx)
}

// System1 is a system that borrows through a single handle.
type System1[A handle.Handle] struct {
	name string
	h    A
	fn   func(resource.Context, A) error
}

// New1 builds a system borrowing through h.
func New1[A handle.Handle](name string, h A, fn func(resource.Context, A) error) *System1[A] {
	return &System1[A]{name: name, h: h, fn: fn}
}

func (s *System1[A]) Name() string          { return s.name }
func (s *System1[A]) Handle() handle.Handle { return s.h }
func (s *System1[A]) Execute(ctx resource.Context) error {
	return s.fn(ctx, s.h)
}

// System2 is a system that borrows through two handles.
type System2[A, B handle.Handle] struct {
	name string
	h    handle.Tuple2[A, B]
	fn   func(resource.Context, A, B) error
}

// New2 builds a system borrowing through a and b.
func New2[A, B handle.Handle](name string, a A, b B, fn func(resource.Context, A, B) error) *System2[A, B] {
	return &System2[A, B]{name: name, h: handle.Tuple2[A, B]{A: a, B: b}, fn: fn}
}

func (s *System2[A, B]) Name() string          { return s.name }
func (s *System2[A, B]) Handle() handle.Handle { return s.h }
func (s *System2[A, B]) Execute(ctx resource.Context) error {
	return s.fn(ctx, s.h.A, s.h.B)
}

// System3 is a system that borrows through three handles.
type System3[A, B, C handle.Handle] struct {
	name string
	h    handle.Tuple3[A, B, C]
	fn   func(resource.Context, A, B, C) error
}

// New3 builds a system borrowing through a, b and c.
func New3[A, B, C handle.Handle](name string, a A, b B, c C, fn func(resource.Context, A, B, C) error) *System3[A, B, C] {
	return &System3[A, B, C]{name: name, h: handle.Tuple3[A, B, C]{A: a, B: b, C: c}, fn: fn}
}

func (s *System3[A, B, C]) Name() string          { return s.name }
func (s *System3[A, B, C]) Handle() handle.Handle { return s.h }
func (s *System3[A, B, C]) Execute(ctx resource.Context) error {
	return s.fn(ctx, s.h.A, s.h.B, s.h.C)
}

// System4 is a system that borrows through four handles.
type System4[A, B, C, D handle.Handle] struct {
	name string
	h    handle.Tuple4[A, B, C, D]
	fn   func(resource.Context, A, B, C, D) error
}

// New4 builds a system borrowing through a, b, c and d.
func New4[A, B, C, D handle.Handle](name string, a A, b B, c C, d D, fn func(resource.Context, A, B, C, D) error) *System4[A, B, C, D] {
	return &System4[A, B, C, D]{name: name, h: handle.Tuple4[A, B, C, D]{A: a, B: b, C: c, D: d}, fn: fn}
}

func (s *System4[A, B, C, D]) Name() string          { return s.name }
func (s *System4[A, B, C, D]) Handle() handle.Handle { return s.h }
func (s *System4[A, B, C, D]) Execute(ctx resource.Context) error {
	return s.fn(ctx, s.h.A, s.h.B, s.h.C, s.h.D)
}

// System5 is a system that borrows through five handles.
type System5[A, B, C, D, E handle.Handle] struct {
	name string
	h    handle.Tuple5[A, B, C, D, E]
	fn   func(resource.Context, A, B, C, D, E) error
}

// New5 builds a system borrowing through a, b, c, d and e.
func New5[A, B, C, D, E handle.Handle](name string, a A, b B, c C, d D, e E, fn func(resource.Context, A, B, C, D, E) error) *System5[A, B, C, D, E] {
	return &System5[A, B, C, D, E]{name: name, h: handle.Tuple5[A, B, C, D, E]{A: a, B: b, C: c, D: d, E: e}, fn: fn}
}

func (s *System5[A, B, C, D, E]) Name() string          { return s.name }
func (s *System5[A, B, C, D, E]) Handle() handle.Handle { return s.h }
func (s *System5[A, B, C, D, E]) Execute(ctx resource.Context) error {
	return s.fn(ctx, s.h.A, s.h.B, s.h.C, s.h.D, s.h.E)
}

// System6 is a system that borrows through six handles.
type System6[A, B, C, D, E, F handle.Handle] struct {
	name string
	h    handle.Tuple6[A, B, C, D, E, F]
	fn   func(resource.Context, A, B, C, D, E, F) error
}

// New6 builds a system borrowing through a, b, c, d, e and f.
func New6[A, B, C, D, E, F handle.Handle](name string, a A, b B, c C, d D, e E, f F, fn func(resource.Context, A, B, C, D, E, F) error) *System6[A, B, C, D, E, F] {
	return &System6[A, B, C, D, E, F]{name: name, h: handle.Tuple6[A, B, C, D, E, F]{A: a, B: b, C: c, D: d, E: e, F: f}, fn: fn}
}

func (s *System6[A, B, C, D, E, F]) Name() string          { return s.name }
func (s *System6[A, B, C, D, E, F]) Handle() handle.Handle { return s.h }
func (s *System6[A, B, C, D, E, F]) Execute(ctx resource.Context) error {
	return s.fn(ctx, s.h.A, s.h.B, s.h.C, s.h.D, s.h.E, s.h.F)
}

// System7 is a system that borrows through seven handles.
type System7[A, B, C, D, E, F, G handle.Handle] struct {
	name string
	h    handle.Tuple7[A, B, C, D, E, F, G]
	fn   func(resource.Context, A, B, C, D, E, F, G) error
}

// New7 builds a system borrowing through a, b, c, d, e, f and g.
func New7[A, B, C, D, E, F, G handle.Handle](name string, a A, b B, c C, d D, e E, f F, g G, fn func(resource.Context, A, B, C, D, E, F, G) error) *System7[A, B, C, D, E, F, G] {
	return &System7[A, B, C, D, E, F, G]{name: name, h: handle.Tuple7[A, B, C, D, E, F, G]{A: a, B: b, C: c, D: d, E: e, F: f, G: g}, fn: fn}
}

func (s *System7[A, B, C, D, E, F, G]) Name() string          { return s.name }
func (s *System7[A, B, C, D, E, F, G]) Handle() handle.Handle { return s.h }
func (s *System7[A, B, C, D, E, F, G]) Execute(ctx resource.Context) error {
	return s.fn(ctx, s.h.A, s.h.B, s.h.C, s.h.D, s.h.E, s.h.F, s.h.G)
}

// System8 is a system that borrows through eight handles, the arity
// cap for this module. Systems needing more should nest tuples by hand
// (see handle.Tuple8's doc comment).
type System8[A, B, C, D, E, F, G, H handle.Handle] struct {
	name string
	h    handle.Tuple8[A, B, C, D, E, F, G, H]
	fn   func(resource.Context, A, B, C, D, E, F, G, H) error
}

// New8 builds a system borrowing through a, b, c, d, e, f, g and h.
func New8[A, B, C, D, E, F, G, H handle.Handle](name string, a A, b B, c C, d D, e E, f F, g G, h H, fn func(resource.Context, A, B, C, D, E, F, G, H) error) *System8[A, B, C, D, E, F, G, H] {
	return &System8[A, B, C, D, E, F, G, H]{name: name, h: handle.Tuple8[A, B, C, D, E, F, G, H]{A: a, B: b, C: c, D: d, E: e, F: f, G: g, H: h}, fn: fn}
}

func (s *System8[A, B, C, D, E, F, G, H]) Name() string          { return s.name }
func (s *System8[A, B, C, D, E, F, G, H]) Handle() handle.Handle { return s.h }
func (s *System8[A, B, C, D, E, F, G, H]) Execute(ctx resource.Context) error {
	return s.fn(ctx, s.h.A, s.h.B, s.h.C, s.h.D, s.h.E, s.h.F, s.h.G, s.h.H)
}
