package system

import (
	"github.com/cuemby/taskgraph/pkg/handle"
	"github.com/cuemby/taskgraph/pkg/resource"
)

// ID identifies a system's position within a single dispatch plan. It is
// assigned densely by the stage planner and is only meaningful relative
// to the Plan that produced it.
type ID int

// Spec is the uniform contract the stage planner and dispatch engine
// operate against, whatever arity of resources the concrete system
// borrows.
type Spec interface {
	// Name identifies the system in logs, metrics and error messages.
	Name() string
	// Handle returns the borrow declaration the planner inspects to
	// assign this system to a stage, and the dispatch engine loads
	// immediately before Execute.
	Handle() handle.Handle
	// Execute runs the system body. The dispatch engine guarantees
	// Handle().Load has already succeeded by the time Execute runs.
	Execute(resource.Context) error
}
