package handle

import "github.com/cuemby/taskgraph/pkg/resource"

// Tuple0 is the handle for a system that borrows nothing.
type Tuple0 struct{}

func (Tuple0) Reads() []resource.ID       { return nil }
func (Tuple0) Writes() []resource.ID      { return nil }
func (Tuple0) Load(*resource.Store) error { return nil }
func (Tuple0) Flush()                     {}

// Tuple1 composes a single handle. Systems of arity one normally use the
// handle directly (system.New1 does); Tuple1 exists so every arity from 0
// to 8 has a tuple type, mirroring tonks's tuple-impl macro output.
type Tuple1[A Handle] struct{ A A }

func (t Tuple1[A]) Reads() []resource.ID  { return t.A.Reads() }
func (t Tuple1[A]) Writes() []resource.ID { return t.A.Writes() }
func (t Tuple1[A]) Load(s *resource.Store) error {
	return t.A.Load(s)
}
func (t Tuple1[A]) Flush() { t.A.Flush() }

// Tuple2 composes two handles.
type Tuple2[A, B Handle] struct {
	A A
	B B
}

func (t Tuple2[A, B]) Reads() []resource.ID {
	return append(t.A.Reads(), t.B.Reads()...)
}
func (t Tuple2[A, B]) Writes() []resource.ID {
	return append(t.A.Writes(), t.B.Writes()...)
}
func (t Tuple2[A, B]) Load(s *resource.Store) error {
	if err := t.A.Load(s); err != nil {
		return err
	}
	return t.B.Load(s)
}
func (t Tuple2[A, B]) Flush() {
	t.A.Flush()
	t.B.Flush()
}

// Tuple3 composes three handles.
type Tuple3[A, B, C Handle] struct {
	A A
	B B
	C C
}

func (t Tuple3[A, B, C]) Reads() []resource.ID {
	r := t.A.Reads()
	r = append(r, t.B.Reads()...)
	return append(r, t.C.Reads()...)
}
func (t Tuple3[A, B, C]) Writes() []resource.ID {
	w := t.A.Writes()
	w = append(w, t.B.Writes()...)
	return append(w, t.C.Writes()...)
}
func (t Tuple3[A, B, C]) Load(s *resource.Store) error {
	return loadAll(s, t.A, t.B, t.C)
}
func (t Tuple3[A, B, C]) Flush() { flushAll(t.A, t.B, t.C) }

// Tuple4 composes four handles.
type Tuple4[A, B, C, D Handle] struct {
	A A
	B B
	C C
	D D
}

func (t Tuple4[A, B, C, D]) Reads() []resource.ID {
	return concatReads(t.A, t.B, t.C, t.D)
}
func (t Tuple4[A, B, C, D]) Writes() []resource.ID {
	return concatWrites(t.A, t.B, t.C, t.D)
}
func (t Tuple4[A, B, C, D]) Load(s *resource.Store) error {
	return loadAll(s, t.A, t.B, t.C, t.D)
}
func (t Tuple4[A, B, C, D]) Flush() { flushAll(t.A, t.B, t.C, t.D) }

// Tuple5 composes five handles.
type Tuple5[A, B, C, D, E Handle] struct {
	A A
	B B
	C C
	D D
	E E
}

func (t Tuple5[A, B, C, D, E]) Reads() []resource.ID {
	return concatReads(t.A, t.B, t.C, t.D, t.E)
}
func (t Tuple5[A, B, C, D, E]) Writes() []resource.ID {
	return concatWrites(t.A, t.B, t.C, t.D, t.E)
}
func (t Tuple5[A, B, C, D, E]) Load(s *resource.Store) error {
	return loadAll(s, t.A, t.B, t.C, t.D, t.E)
}
func (t Tuple5[A, B, C, D, E]) Flush() { flushAll(t.A, t.B, t.C, t.D, t.E) }

// Tuple6 composes six handles.
type Tuple6[A, B, C, D, E, F Handle] struct {
	A A
	B B
	C C
	D D
	E E
	F F
}

func (t Tuple6[A, B, C, D, E, F]) Reads() []resource.ID {
	return concatReads(t.A, t.B, t.C, t.D, t.E, t.F)
}
func (t Tuple6[A, B, C, D, E, F]) Writes() []resource.ID {
	return concatWrites(t.A, t.B, t.C, t.D, t.E, t.F)
}
func (t Tuple6[A, B, C, D, E, F]) Load(s *resource.Store) error {
	return loadAll(s, t.A, t.B, t.C, t.D, t.E, t.F)
}
func (t Tuple6[A, B, C, D, E, F]) Flush() { flushAll(t.A, t.B, t.C, t.D, t.E, t.F) }

// Tuple7 composes seven handles.
type Tuple7[A, B, C, D, E, F, G Handle] struct {
	A A
	B B
	C C
	D D
	E E
	F F
	G G
}

func (t Tuple7[A, B, C, D, E, F, G]) Reads() []resource.ID {
	return concatReads(t.A, t.B, t.C, t.D, t.E, t.F, t.G)
}
func (t Tuple7[A, B, C, D, E, F, G]) Writes() []resource.ID {
	return concatWrites(t.A, t.B, t.C, t.D, t.E, t.F, t.G)
}
func (t Tuple7[A, B, C, D, E, F, G]) Load(s *resource.Store) error {
	return loadAll(s, t.A, t.B, t.C, t.D, t.E, t.F, t.G)
}
func (t Tuple7[A, B, C, D, E, F, G]) Flush() { flushAll(t.A, t.B, t.C, t.D, t.E, t.F, t.G) }

// Tuple8 composes eight handles, the arity cap for this module. Systems
// needing more resources should nest tuples (Tuple2[Tuple8[...], X]) the
// same way tonks's own macro output tops out and recommends nesting
// beyond its generated arities.
type Tuple8[A, B, C, D, E, F, G, H Handle] struct {
	A A
	B B
	C C
	D D
	E E
	F F
	G G
	H H
}

func (t Tuple8[A, B, C, D, E, F, G, H]) Reads() []resource.ID {
	return concatReads(t.A, t.B, t.C, t.D, t.E, t.F, t.G, t.H)
}
func (t Tuple8[A, B, C, D, E, F, G, H]) Writes() []resource.ID {
	return concatWrites(t.A, t.B, t.C, t.D, t.E, t.F, t.G, t.H)
}
func (t Tuple8[A, B, C, D, E, F, G, H]) Load(s *resource.Store) error {
	return loadAll(s, t.A, t.B, t.C, t.D, t.E, t.F, t.G, t.H)
}
func (t Tuple8[A, B, C, D, E, F, G, H]) Flush() { flushAll(t.A, t.B, t.C, t.D, t.E, t.F, t.G, t.H) }

func concatReads(handles ...Handle) []resource.ID {
	var out []resource.ID
	for _, h := range handles {
		out = append(out, h.Reads()...)
	}
	return out
}

func concatWrites(handles ...Handle) []resource.ID {
	var out []resource.ID
	for _, h := range handles {
		out = append(out, h.Writes()...)
	}
	return out
}

func loadAll(s *resource.Store, handles ...Handle) error {
	for _, h := range handles {
		if err := h.Load(s); err != nil {
			return err
		}
	}
	return nil
}

func flushAll(handles ...Handle) {
	for _, h := range handles {
		h.Flush()
	}
}
