package taskgraph_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/cuemby/taskgraph/pkg/handle"
	"github.com/cuemby/taskgraph/pkg/plan"
	"github.com/cuemby/taskgraph/pkg/resource"
	"github.com/cuemby/taskgraph/pkg/system"
	"github.com/cuemby/taskgraph/pkg/taskgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The resource types below are distinct Go types purely so each one gets
// its own resource ID; their shape (a bare uint32) carries no meaning
// beyond that.
type resA uint32
type resB uint32
type resC uint32
type resP uint32
type resQ uint32
type resR uint32
type resX uint32
type resY0 uint32
type resY1 uint32
type resY2 uint32

func TestScenarioS1Sum(t *testing.T) {
	store := resource.NewStore()
	reg := store.Registry()
	resource.Insert(store, resA(10))
	resource.Insert(store, resB(5))

	sum := system.New2("sum", handle.NewRead[resA](reg), handle.NewWrite[resB](reg),
		func(ctx resource.Context, a *handle.Read[resA], b *handle.Write[resB]) error {
			*b.Get() += resB(*a.Get())
			return nil
		})

	eng, err := taskgraph.NewBuilder().With(sum).Build(store)
	require.NoError(t, err)
	require.NoError(t, eng.Execute(context.Background(), nil))

	a, err := resource.GetShared[resA](store)
	require.NoError(t, err)
	b, err := resource.GetShared[resB](store)
	require.NoError(t, err)
	assert.Equal(t, resA(10), *a)
	assert.Equal(t, resB(15), *b)
}

func TestScenarioS2ParallelReaders(t *testing.T) {
	store := resource.NewStore()
	reg := store.Registry()
	resource.Insert(store, resX(7))
	resource.Insert(store, resY0(0))
	resource.Insert(store, resY1(0))
	resource.Insert(store, resY2(0))

	doubleInto0 := system.New2("double-into-y0", handle.NewRead[resX](reg), handle.NewWrite[resY0](reg),
		func(ctx resource.Context, x *handle.Read[resX], y *handle.Write[resY0]) error {
			*y.Get() = resY0(*x.Get() * 2)
			return nil
		})
	doubleInto1 := system.New2("double-into-y1", handle.NewRead[resX](reg), handle.NewWrite[resY1](reg),
		func(ctx resource.Context, x *handle.Read[resX], y *handle.Write[resY1]) error {
			*y.Get() = resY1(*x.Get() * 2)
			return nil
		})
	doubleInto2 := system.New2("double-into-y2", handle.NewRead[resX](reg), handle.NewWrite[resY2](reg),
		func(ctx resource.Context, x *handle.Read[resX], y *handle.Write[resY2]) error {
			*y.Get() = resY2(*x.Get() * 2)
			return nil
		})

	eng, err := taskgraph.NewBuilder().
		With(doubleInto0).With(doubleInto1).With(doubleInto2).
		Build(store)
	require.NoError(t, err)

	assert.Len(t, eng.Plan().Stages, 1, "three independent writers sharing only a read must pack into one stage")
	assert.Len(t, eng.Plan().Stages[0].Systems, 3)

	require.NoError(t, eng.Execute(context.Background(), nil))

	y0, err := resource.GetShared[resY0](store)
	require.NoError(t, err)
	y1, err := resource.GetShared[resY1](store)
	require.NoError(t, err)
	y2, err := resource.GetShared[resY2](store)
	require.NoError(t, err)
	assert.Equal(t, resY0(14), *y0)
	assert.Equal(t, resY1(14), *y1)
	assert.Equal(t, resY2(14), *y2)
}

func TestScenarioS3WriteConflictSerializes(t *testing.T) {
	store := resource.NewStore()
	reg := store.Registry()
	resource.Insert(store, resC(0))

	addOne := system.New1("add-one", handle.NewWrite[resC](reg),
		func(ctx resource.Context, c *handle.Write[resC]) error {
			*c.Get() += 1
			return nil
		})
	double := system.New1("double", handle.NewWrite[resC](reg),
		func(ctx resource.Context, c *handle.Write[resC]) error {
			*c.Get() *= 2
			return nil
		})

	eng, err := taskgraph.NewBuilder().With(addOne).With(double).Build(store)
	require.NoError(t, err)
	assert.Len(t, eng.Plan().Stages, 2, "two writers of the same resource must serialize into separate stages")

	require.NoError(t, eng.Execute(context.Background(), nil))
	c, err := resource.GetShared[resC](store)
	require.NoError(t, err)
	assert.Equal(t, resC(2), *c)

	require.NoError(t, eng.Execute(context.Background(), nil))
	c, err = resource.GetShared[resC](store)
	require.NoError(t, err)
	assert.Equal(t, resC(6), *c)
}

func TestScenarioS4ReadVsWrite(t *testing.T) {
	store := resource.NewStore()
	reg := store.Registry()
	resource.Insert(store, resP(3))
	resource.Insert(store, resQ(0))

	alpha := system.New2("alpha", handle.NewRead[resP](reg), handle.NewWrite[resQ](reg),
		func(ctx resource.Context, p *handle.Read[resP], q *handle.Write[resQ]) error {
			*q.Get() = resQ(*p.Get())
			return nil
		})
	beta := system.New1("beta", handle.NewWrite[resP](reg),
		func(ctx resource.Context, p *handle.Write[resP]) error {
			*p.Get() = 9
			return nil
		})

	eng, err := taskgraph.NewBuilder().With(alpha).With(beta).Build(store)
	require.NoError(t, err)
	assert.Len(t, eng.Plan().Stages, 2, "a reader registered before a conflicting writer must land in an earlier stage")

	require.NoError(t, eng.Execute(context.Background(), nil))

	p, err := resource.GetShared[resP](store)
	require.NoError(t, err)
	q, err := resource.GetShared[resQ](store)
	require.NoError(t, err)
	assert.Equal(t, resP(9), *p)
	assert.Equal(t, resQ(3), *q)
}

func TestScenarioS5ManyStages(t *testing.T) {
	store := resource.NewStore()
	reg := store.Registry()
	resource.Insert(store, resR(0))

	builder := taskgraph.NewBuilder()
	for i := 0; i < 8; i++ {
		builder = builder.With(system.New1("link", handle.NewWrite[resR](reg),
			func(ctx resource.Context, r *handle.Write[resR]) error {
				*r.Get() += 1
				return nil
			}))
	}

	eng, err := builder.Build(store)
	require.NoError(t, err)

	assert.Len(t, eng.Plan().Stages, 8)
	for _, stage := range eng.Plan().Stages {
		assert.Len(t, stage.Systems, 1)
	}

	require.NoError(t, eng.Execute(context.Background(), nil))
	r, err := resource.GetShared[resR](store)
	require.NoError(t, err)
	assert.Equal(t, resR(8), *r)
}

func TestScenarioS6NoResources(t *testing.T) {
	store := resource.NewStore()

	var runs atomic.Int32
	builder := taskgraph.NewBuilder()
	for i := 0; i < 5; i++ {
		builder = builder.With(system.New0("noop", func(ctx resource.Context) error {
			runs.Add(1)
			return nil
		}))
	}

	eng, err := builder.Build(store)
	require.NoError(t, err)

	assert.Len(t, eng.Plan().Stages, 1, "systems with empty borrow sets must pack into a single stage")
	assert.Len(t, eng.Plan().Stages[0].Systems, 5)

	require.NoError(t, eng.Execute(context.Background(), nil))
	assert.Equal(t, int32(5), runs.Load())
}

func TestNoopSystemsLeaveStoreUnchanged(t *testing.T) {
	store := resource.NewStore()
	reg := store.Registry()
	resource.Insert(store, resA(10))
	resource.Insert(store, resB(5))

	noopRead := func(name string) system.Spec {
		return system.New1(name, handle.NewRead[resA](reg),
			func(ctx resource.Context, a *handle.Read[resA]) error { return nil })
	}

	eng, err := taskgraph.NewBuilder().With(noopRead("noop-a")).With(noopRead("noop-b")).Build(store)
	require.NoError(t, err)
	require.NoError(t, eng.Execute(context.Background(), nil))

	a, err := resource.GetShared[resA](store)
	require.NoError(t, err)
	b, err := resource.GetShared[resB](store)
	require.NoError(t, err)
	assert.Equal(t, resA(10), *a)
	assert.Equal(t, resB(5), *b)
}

func TestBuildWithNoSystemsReturnsError(t *testing.T) {
	_, err := taskgraph.NewBuilder().Build(resource.NewStore())
	assert.ErrorIs(t, err, taskgraph.ErrNoSystems)
}

func TestBuildWithMissingResourceReturnsError(t *testing.T) {
	store := resource.NewStore()
	reg := store.Registry()
	// resA is never inserted into store.
	sum := system.New1("needs-a", handle.NewRead[resA](reg),
		func(ctx resource.Context, a *handle.Read[resA]) error { return nil })

	_, err := taskgraph.NewBuilder().With(sum).Build(store)
	assert.ErrorIs(t, err, plan.ErrMissingResource)
}
