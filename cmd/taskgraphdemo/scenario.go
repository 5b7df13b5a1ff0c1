package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cuemby/taskgraph/pkg/handle"
	"github.com/cuemby/taskgraph/pkg/resource"
	"github.com/cuemby/taskgraph/pkg/system"
	"github.com/cuemby/taskgraph/pkg/taskgraph"
)

// Scenario configures the demo particle simulation. It is small enough
// to hand-author as YAML.
type Scenario struct {
	Particles  int     `yaml:"particles"`
	Iterations int     `yaml:"iterations"`
	Damping    float64 `yaml:"damping"`
}

// DefaultScenario is a handful of particles sharing one damping factor,
// integrated every dispatch.
func DefaultScenario() Scenario {
	return Scenario{Particles: 4, Iterations: 3, Damping: 0.9}
}

// LoadScenario reads a Scenario from a YAML file, filling in defaults
// for any field left zero.
func LoadScenario(path string) (Scenario, error) {
	sc := DefaultScenario()
	data, err := os.ReadFile(path)
	if err != nil {
		return sc, fmt.Errorf("read scenario: %w", err)
	}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.Particles <= 0 {
		sc.Particles = DefaultScenario().Particles
	}
	if sc.Iterations <= 0 {
		sc.Iterations = DefaultScenario().Iterations
	}
	return sc, nil
}

// Vector2 is a plain 2D vector, the element type of Positions and
// Velocities.
type Vector2 struct {
	X, Y float64
}

// Positions is one resource: every particle's position, indexed
// in parallel with Velocities.
type Positions []Vector2

// Velocities is one resource: every particle's velocity.
type Velocities []Vector2

// World is the opaque handle threaded through Engine.Execute; the demo
// only uses it to carry the iteration number into log lines.
type World struct {
	Iteration int
}

// Build constructs a store populated per sc and a taskgraph.Builder with
// the integrate/log/damp systems wired up, demonstrating a write-after-
// read dependency (damp must follow integrate, since integrate still
// needs last iteration's velocities) alongside a same-stage packing
// (log-positions shares a stage with damp, since neither touches the
// other's resource).
func (sc Scenario) Build() (*resource.Store, *taskgraph.Builder) {
	store := resource.NewStore()
	reg := store.Registry()

	positions := make(Positions, sc.Particles)
	velocities := make(Velocities, sc.Particles)
	for i := range velocities {
		velocities[i] = Vector2{X: 1, Y: float64(i) / 2}
	}
	resource.Insert(store, positions)
	resource.Insert(store, velocities)

	integrate := system.New2("integrate",
		handle.NewRead[Velocities](reg), handle.NewWrite[Positions](reg),
		func(ctx resource.Context, vel *handle.Read[Velocities], pos *handle.Write[Positions]) error {
			v, p := *vel.Get(), *pos.Get()
			for i := range p {
				p[i].X += v[i].X
				p[i].Y += v[i].Y
			}
			return nil
		})

	logPositions := system.New1("log-positions", handle.NewRead[Positions](reg),
		func(ctx resource.Context, pos *handle.Read[Positions]) error {
			world, _ := ctx.World.(*World)
			iteration := -1
			if world != nil {
				iteration = world.Iteration
			}
			logger := demoLog()
			for i, p := range *pos.Get() {
				logger.Debug().Int("iteration", iteration).Int("particle", i).
					Float64("x", p.X).Float64("y", p.Y).Msg("position")
			}
			return nil
		})

	damp := system.New1("damp", handle.NewWrite[Velocities](reg),
		func(ctx resource.Context, vel *handle.Write[Velocities]) error {
			v := *vel.Get()
			for i := range v {
				v[i].X *= sc.Damping
				v[i].Y *= sc.Damping
			}
			return nil
		})

	builder := taskgraph.NewBuilder().With(integrate).With(logPositions).With(damp)
	return store, builder
}
