// Package taskgraph is the public entry point: Builder assembles a set
// of systems and a resource store into a ready-to-run Engine, hiding the
// planning and dispatch machinery behind a small construction API.
//
//	store := resource.NewStore()
//	resource.Insert(store, Position{})
//	resource.Insert(store, Velocity{DX: 1})
//
//	eng, err := taskgraph.NewBuilder(taskgraph.WithConcurrency(4)).
//		With(applyVelocity).
//		With(logPosition).
//		Build(store)
//	if err != nil { ... }
//	if err := eng.Execute(ctx, nil); err != nil { ... }
package taskgraph
