package taskgraph

import (
	"context"
	"errors"
	"fmt"

	"github.com/cuemby/taskgraph/pkg/dispatch"
	"github.com/cuemby/taskgraph/pkg/metrics"
	"github.com/cuemby/taskgraph/pkg/plan"
	"github.com/cuemby/taskgraph/pkg/resource"
	"github.com/cuemby/taskgraph/pkg/system"
)

// ErrNoSystems is returned by Builder.Build when no system was added.
var ErrNoSystems = errors.New("taskgraph: at least one system is required")

type options struct {
	concurrency int
	pool        dispatch.Pool
}

// Option configures a Builder.
type Option func(*options)

// WithConcurrency bounds how many systems the built Engine may run at
// once. The default is runtime.GOMAXPROCS(0). Ignored if WithPool is
// also given.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// WithPool supplies a custom worker pool, overriding WithConcurrency.
func WithPool(pool dispatch.Pool) Option {
	return func(o *options) { o.pool = pool }
}

// Builder accumulates systems and builds an Engine that dispatches them
// against a resource store.
type Builder struct {
	specs []system.Spec
	opts  options
}

// NewBuilder returns an empty Builder configured by opts.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b
}

// With adds a system to the graph. It returns the Builder for chaining.
func (b *Builder) With(spec system.Spec) *Builder {
	b.specs = append(b.specs, spec)
	return b
}

// Build plans the accumulated systems and returns an Engine ready to
// dispatch them against store.
func (b *Builder) Build(store *resource.Store) (*Engine, error) {
	if len(b.specs) == 0 {
		return nil, ErrNoSystems
	}

	p := plan.Build(b.specs)
	if err := plan.Validate(p, store); err != nil {
		metrics.RegisterComponent("store", false, err.Error())
		return nil, err
	}
	metrics.RegisterComponent("store", true, fmt.Sprintf("%d systems planned", len(p.Instances)))

	pool := b.opts.pool
	if pool == nil {
		pool = dispatch.NewErrgroupPool(b.opts.concurrency)
	}

	return &Engine{inner: dispatch.NewEngine(p, store, pool), plan: p}, nil
}

// Engine runs a built graph's systems against its resource store. It is
// a thin facade over dispatch.Engine so callers of this package never
// need to import pkg/dispatch directly for ordinary use.
type Engine struct {
	inner *dispatch.Engine
	plan  *plan.Plan
}

// Plan returns the stage plan computed for this graph, for introspection
// and diagnostics (for example, the demo CLI's run subcommand prints it).
func (e *Engine) Plan() *plan.Plan {
	return e.plan
}

// Execute runs every system in the graph to completion. world is handed
// to each system unmodified via resource.Context.World.
func (e *Engine) Execute(ctx context.Context, world any) error {
	return e.inner.Execute(ctx, world)
}

// Resources returns the store this Engine dispatches against, so callers
// can insert or replace resources between Execute calls.
func (e *Engine) Resources() *resource.Store {
	return e.inner.Resources()
}

// Subscribe registers a listener for per-system completion events. See
// dispatch.Engine.Subscribe for details.
func (e *Engine) Subscribe(bufSize int) (<-chan dispatch.Event, func()) {
	return e.inner.Subscribe(bufSize)
}
