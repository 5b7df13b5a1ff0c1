package system_test

import (
	"context"
	"testing"

	"github.com/cuemby/taskgraph/pkg/handle"
	"github.com/cuemby/taskgraph/pkg/resource"
	"github.com/cuemby/taskgraph/pkg/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ N int }

func TestSystem0HasNoBorrows(t *testing.T) {
	ran := false
	s := system.New0("noop", func(resource.Context) error {
		ran = true
		return nil
	})

	assert.Empty(t, s.Handle().Reads())
	assert.Empty(t, s.Handle().Writes())
	require.NoError(t, s.Handle().Load(nil))
	require.NoError(t, s.Execute(resource.Context{Go: context.Background()}))
	assert.True(t, ran)
}

func TestSystem1ExecutesAgainstLoadedHandle(t *testing.T) {
	store := resource.NewStore()
	reg := store.Registry()
	id := resource.Insert(store, counter{N: 1})

	s := system.New1("increment", handle.NewWrite[counter](reg),
		func(ctx resource.Context, w *handle.Write[counter]) error {
			w.Get().N++
			return nil
		})

	require.NoError(t, s.Handle().Load(store))
	require.NoError(t, s.Execute(resource.Context{Go: context.Background()}))

	// Release the debug-build borrow flag before re-borrowing; no-op in
	// default builds.
	store.DebugReleaseExclusive(id)

	got, err := resource.GetShared[counter](store)
	require.NoError(t, err)
	assert.Equal(t, 2, got.N)
}

func TestSystem2DeclaresCombinedBorrows(t *testing.T) {
	reg := resource.NewRegistry()

	s := system.New2("two-borrows",
		handle.NewRead[counter](reg),
		handle.NewWrite[counter](reg),
		func(resource.Context, *handle.Read[counter], *handle.Write[counter]) error { return nil })

	assert.Len(t, s.Handle().Reads(), 1)
	assert.Len(t, s.Handle().Writes(), 1)
}
