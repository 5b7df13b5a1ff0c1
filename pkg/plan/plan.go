package plan

import (
	"errors"
	"fmt"

	"github.com/cuemby/taskgraph/pkg/resource"
	"github.com/cuemby/taskgraph/pkg/system"
)

// ErrMissingResource is returned by Validate when a registered system
// declares a read or write over a resource ID the store has never had a
// value inserted for.
var ErrMissingResource = errors.New("plan: system declares a resource not present in the store")

// StageID identifies a stage's position within a Plan.
type StageID int

// Instance pairs a system with the resource sets its handle declared at
// plan-build time. The sets are captured once, up front, because a
// system's borrow footprint must not change between planning and
// dispatch.
type Instance struct {
	ID     system.ID
	Spec   system.Spec
	Reads  *resource.Set
	Writes *resource.Set
}

// Stage is a set of systems, identified by ID, that the dispatch engine
// may run concurrently.
type Stage struct {
	ID      StageID
	Systems []system.ID
	Reads   *resource.Set
	Writes  *resource.Set
}

// Plan is the ordered sequence of stages produced by Build, plus the
// per-system borrow metadata the dispatch engine's ledger consults.
type Plan struct {
	Stages    []Stage
	Instances []Instance
}

// System returns the Instance for id.
func (p *Plan) System(id system.ID) Instance {
	return p.Instances[id]
}

// Build assigns each system in specs, in order, to the earliest stage it
// is compatible with. Building a plan has no intrinsic failure mode: an
// empty input yields an empty plan, and any combination of declared
// borrows is placeable (in the worst case, each system gets its own
// stage).
func Build(specs []system.Spec) *Plan {
	instances := make([]Instance, len(specs))
	for i, spec := range specs {
		h := spec.Handle()
		reads := resource.NewSet()
		for _, id := range h.Reads() {
			reads.Add(id)
		}
		writes := resource.NewSet()
		for _, id := range h.Writes() {
			writes.Add(id)
		}
		instances[i] = Instance{ID: system.ID(i), Spec: spec, Reads: reads, Writes: writes}
	}

	var stages []Stage
	for _, inst := range instances {
		placed := false
		for i := range stages {
			if compatible(inst, &stages[i]) {
				stages[i].Systems = append(stages[i].Systems, inst.ID)
				stages[i].Reads.Union(inst.Reads)
				stages[i].Writes.Union(inst.Writes)
				placed = true
				break
			}
		}
		if !placed {
			stage := Stage{
				ID:      StageID(len(stages)),
				Systems: []system.ID{inst.ID},
				Reads:   resource.NewSet(),
				Writes:  resource.NewSet(),
			}
			stage.Reads.Union(inst.Reads)
			stage.Writes.Union(inst.Writes)
			stages = append(stages, stage)
		}
	}

	return &Plan{Stages: stages, Instances: instances}
}

// Validate checks that every resource every system in p declares,
// whether read or written, is present in store. It must be called
// against the same store (and the same Registry used to build the
// handles in specs) that produced p's Instances; a Registry distinct
// from the store's own is a caller bug this cannot detect.
func Validate(p *Plan, store *resource.Store) error {
	for _, inst := range p.Instances {
		var err error
		check := func(id resource.ID) {
			if err == nil && !store.ContainsID(id) {
				err = fmt.Errorf("%w: system %d (%s) resource %d", ErrMissingResource, inst.ID, inst.Spec.Name(), id)
			}
		}
		inst.Reads.Each(check)
		if err == nil {
			inst.Writes.Each(check)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// compatible reports whether inst can join stage without violating the
// aliasing invariant: a resource may be read by any number of systems in
// a stage, but written by at most one, and never both read and written.
func compatible(inst Instance, stage *Stage) bool {
	if inst.Writes.Intersects(stage.Writes) {
		return false
	}
	if inst.Writes.Intersects(stage.Reads) {
		return false
	}
	if inst.Reads.Intersects(stage.Writes) {
		return false
	}
	return true
}
