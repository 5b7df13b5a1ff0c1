package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cuemby/taskgraph/pkg/log"
	"github.com/cuemby/taskgraph/pkg/metrics"
	"github.com/cuemby/taskgraph/pkg/plan"
	"github.com/cuemby/taskgraph/pkg/resource"
	"github.com/cuemby/taskgraph/pkg/system"
)

// messageBuffer matches crossbeam's bounded(8) channel in the scheduler
// this engine was ported from: the overhead of a bounded channel falls
// on the senders, and the single receiving engine goroutine plows
// through messages.
const messageBuffer = 8

// taskKind discriminates what a queued task dispatches.
type taskKind int

const (
	// taskStage dispatches an entire stage as one parallel batch,
	// borrowing under the stage's aggregate read/write sets.
	taskStage taskKind = iota
	// taskOneshot is reserved for dynamically scheduled single systems,
	// which borrow under their own sets. Nothing enqueues one yet; the
	// engine handles both kinds uniformly so the hook stays open.
	taskOneshot
)

// task is one entry in the dispatch queue.
type task struct {
	kind   taskKind
	stage  plan.StageID
	system system.ID
}

// msgKind discriminates completion messages sent back to the engine.
type msgKind int

const (
	// msgStageComplete is sent exactly once per dispatched stage, after
	// its last system has returned. Ordinary stage systems do not send
	// per-system messages; one handshake covers the whole batch.
	msgStageComplete msgKind = iota
	// msgSystemComplete is reserved for oneshot systems.
	msgSystemComplete
)

// message is a completion report from a running task.
type message struct {
	kind   msgKind
	stage  plan.StageID
	system system.ID
	// errs holds one entry per system in the completed stage, indexed in
	// parallel with the stage's Systems slice. For a oneshot completion
	// it holds a single entry.
	errs []error
}

// Event is published once per completed system to anything that
// subscribed via Engine.Subscribe; the optional trace recorder is the
// intended consumer, but nothing here knows about tracing specifically.
type Event struct {
	Dispatch string
	System   system.ID
	Name     string
	Stage    plan.StageID
	Err      error
}

// Engine runs a single Plan's systems against a Store, enforcing the
// aliasing invariant at runtime via a borrow ledger: a resource may be
// held for shared read access by any number of tasks simultaneously, or
// for exclusive write access by exactly one, never both.
//
// The engine itself is single-threaded: only the goroutine inside
// Execute touches the ledger and the task queue. All parallelism lives
// in spawned tasks, which report back over the completion channel.
type Engine struct {
	plan  *plan.Plan
	store *resource.Store
	pool  Pool

	// startingQueue is the task queue every dispatch begins from: one
	// stage task per stage, in plan order.
	startingQueue []task

	writesHeld     *resource.Set
	readsHeld      *resource.Counts
	readsHeldSet   *resource.Set
	runningSystems *resource.Set
	runningCount   int

	messages chan message

	subsMu sync.Mutex
	subs   map[chan Event]struct{}
}

// NewEngine returns an Engine that dispatches p's systems against store,
// bounding concurrent system execution with pool.
func NewEngine(p *plan.Plan, store *resource.Store, pool Pool) *Engine {
	starting := make([]task, len(p.Stages))
	for i := range p.Stages {
		starting[i] = task{kind: taskStage, stage: p.Stages[i].ID}
	}
	return &Engine{
		plan:           p,
		store:          store,
		pool:           pool,
		startingQueue:  starting,
		writesHeld:     resource.NewSet(),
		readsHeld:      resource.NewCounts(),
		readsHeldSet:   resource.NewSet(),
		runningSystems: resource.NewSet(),
		messages:       make(chan message, messageBuffer),
		subs:           make(map[chan Event]struct{}),
	}
}

// Resources returns the Store this Engine dispatches against, so callers
// can insert or replace resources between Execute calls.
func (e *Engine) Resources() *resource.Store { return e.store }

// Subscribe registers a new listener for per-system completion events
// and returns its channel along with an unsubscribe function. The
// channel is buffered to bufSize; a slow subscriber drops events rather
// than blocking dispatch.
func (e *Engine) Subscribe(bufSize int) (<-chan Event, func()) {
	ch := make(chan Event, bufSize)
	e.subsMu.Lock()
	e.subs[ch] = struct{}{}
	e.subsMu.Unlock()

	unsubscribe := func() {
		e.subsMu.Lock()
		if _, ok := e.subs[ch]; ok {
			delete(e.subs, ch)
			close(ch)
		}
		e.subsMu.Unlock()
	}
	return ch, unsubscribe
}

func (e *Engine) publish(ev Event) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for ch := range e.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Execute runs one dispatch: every stage in the plan, in plan order,
// each dispatched as a single parallel batch once the ledger grants its
// aggregate read/write sets. Execute blocks until every spawned task
// has reported completion; there is no cancellation mid-dispatch. ctx
// is threaded through to each system's body via resource.Context.Go for
// the systems' own use, never to abort the scheduler's bookkeeping.
// world is handed to every system unmodified via resource.Context.World.
//
// Execute is not safe to call concurrently with itself on the same
// Engine; call it again only after the previous call has returned.
func (e *Engine) Execute(ctx context.Context, world any) error {
	if len(e.plan.Instances) == 0 {
		return nil
	}

	dispatchID := uuid.NewString()
	dispatchLog := log.WithDispatchID(dispatchID)
	dispatchLog.Info().
		Int("systems", len(e.plan.Instances)).
		Int("stages", len(e.plan.Stages)).
		Msg("dispatch starting")

	// Reset. The ledger is empty between dispatches because every
	// acquire was released; clearing is cheap and keeps a broken prior
	// run from poisoning this one.
	e.writesHeld.Clear()
	e.readsHeldSet.Clear()
	e.readsHeld = resource.NewCounts()
	e.runningSystems.Clear()
	e.runningCount = 0

	queue := append([]task(nil), e.startingQueue...)

	stageStart := make([]time.Time, len(e.plan.Stages))
	var firstErr error

	process := func(msg message) {
		switch msg.kind {
		case msgStageComplete:
			st := e.plan.Stages[msg.stage]
			e.release(st.Reads, st.Writes)
			e.runningCount -= len(st.Systems)
			metrics.ActiveSystems.Sub(float64(len(st.Systems)))
			metrics.StageDuration.Observe(time.Since(stageStart[msg.stage]).Seconds())
			for i, sid := range st.Systems {
				e.runningSystems.Remove(resource.ID(sid))
				inst := e.plan.System(sid)
				err := msg.errs[i]
				e.publish(Event{Dispatch: dispatchID, System: sid, Name: inst.Spec.Name(), Stage: st.ID, Err: err})
				if err != nil {
					dispatchLog.Error().Err(err).Str("system", inst.Spec.Name()).Msg("system failed")
					if firstErr == nil {
						firstErr = err
					}
				}
			}
		case msgSystemComplete:
			inst := e.plan.System(msg.system)
			e.release(inst.Reads, inst.Writes)
			e.runningCount--
			metrics.ActiveSystems.Dec()
			e.runningSystems.Remove(resource.ID(msg.system))
			err := msg.errs[0]
			e.publish(Event{Dispatch: dispatchID, System: msg.system, Name: inst.Spec.Name(), Err: err})
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	// Drain the queue, blocking on the completion channel whenever the
	// head task's resources are held; then wait out the remaining
	// running tasks, re-draining anything a completion enqueued.
	for {
		for len(queue) > 0 {
			t := queue[0]
			reads, writes := e.taskSets(t)
			if !e.tryAcquire(reads, writes) {
				metrics.BorrowConflictsTotal.Inc()
				break
			}
			queue = queue[1:]
			if t.kind == taskStage {
				stageStart[t.stage] = time.Now()
			}
			started := e.dispatchTask(ctx, world, t, dispatchID)
			e.runningCount += started
			metrics.ActiveSystems.Add(float64(started))
		}

		if len(queue) == 0 && e.runningCount == 0 {
			break
		}
		process(<-e.messages)
	}

	if e.writesHeld.Count() != 0 || e.readsHeldSet.Count() != 0 {
		dispatchLog.Error().Msg("borrow ledger not empty after dispatch")
	}

	if firstErr != nil {
		metrics.DispatchTotal.WithLabelValues("error").Inc()
		metrics.RegisterComponent("dispatch", false, firstErr.Error())
	} else {
		metrics.DispatchTotal.WithLabelValues("ok").Inc()
		metrics.RegisterComponent("dispatch", true, fmt.Sprintf("dispatch %s ok", dispatchID))
	}
	dispatchLog.Info().Err(firstErr).Msg("dispatch complete")

	return firstErr
}

// taskSets returns the read/write sets a task borrows under: the
// stage's aggregates for a stage task, the system's own for a oneshot.
func (e *Engine) taskSets(t task) (reads, writes *resource.Set) {
	if t.kind == taskStage {
		st := e.plan.Stages[t.stage]
		return st.Reads, st.Writes
	}
	inst := e.plan.System(t.system)
	return inst.Reads, inst.Writes
}

// dispatchTask marks the task's systems running and spawns it onto the
// worker pool, returning how many systems it represents. A stage task
// is one pool spawn that iterates its systems in parallel and sends a
// single completion message for the whole batch.
func (e *Engine) dispatchTask(ctx context.Context, world any, t task, dispatchID string) int {
	if t.kind == taskOneshot {
		e.runningSystems.Add(resource.ID(t.system))
		id := t.system
		e.pool.Spawn(func() {
			err := e.runSystem(ctx, world, id)
			e.messages <- message{kind: msgSystemComplete, system: id, errs: []error{err}}
		})
		return 1
	}

	st := e.plan.Stages[t.stage]
	for _, sid := range st.Systems {
		e.runningSystems.Add(resource.ID(sid))
	}
	dispatchLog := log.WithComponent("dispatch")
	dispatchLog.Debug().
		Str("dispatch_id", dispatchID).
		Int("stage", int(st.ID)).
		Int("systems", len(st.Systems)).
		Msg("stage dispatched")

	e.pool.Spawn(func() {
		errs := make([]error, len(st.Systems))
		e.pool.ForEach(len(st.Systems), func(i int) {
			errs[i] = e.runSystem(ctx, world, st.Systems[i])
		})
		e.messages <- message{kind: msgStageComplete, stage: st.ID, errs: errs}
	})
	return len(st.Systems)
}

// runSystem loads one system's handle, runs its body and flushes the
// handle, translating a panic anywhere in that sequence into a
// PanicError so the ledger accounting above it stays intact.
func (e *Engine) runSystem(ctx context.Context, world any, id system.ID) (err error) {
	inst := e.plan.System(id)
	loaded := false
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{System: inst.Spec.Name(), Value: r}
		}
		// Clear the debug-build aliasing flags (a no-op without
		// `-tags debug`) symmetrically with the Load that set them.
		if loaded {
			inst.Reads.Each(e.store.DebugReleaseShared)
			inst.Writes.Each(e.store.DebugReleaseExclusive)
		}
	}()

	h := inst.Spec.Handle()
	if lerr := h.Load(e.store); lerr != nil {
		return lerr
	}
	loaded = true

	rc := resource.Context{World: world, SystemID: int(id), Go: ctx}
	if xerr := inst.Spec.Execute(rc); xerr != nil {
		return xerr
	}
	h.Flush()
	return nil
}

// tryAcquire grants the given sets if doing so would not violate the
// aliasing invariant, recording the grant in the ledger and reporting
// true; otherwise it leaves the ledger untouched and reports false.
func (e *Engine) tryAcquire(reads, writes *resource.Set) bool {
	if reads.Intersects(e.writesHeld) {
		return false
	}
	if writes.Intersects(e.writesHeld) || writes.Intersects(e.readsHeldSet) {
		return false
	}

	reads.Each(func(rid resource.ID) {
		if e.readsHeld.Inc(rid) == 1 {
			e.readsHeldSet.Add(rid)
		}
	})
	writes.Each(func(rid resource.ID) {
		e.writesHeld.Add(rid)
	})
	return true
}

// release undoes the grant tryAcquire made for the given sets, freeing
// their resources for the next queued task.
func (e *Engine) release(reads, writes *resource.Set) {
	reads.Each(func(rid resource.ID) {
		if e.readsHeld.Dec(rid) == 0 {
			e.readsHeldSet.Remove(rid)
		}
	})
	writes.Each(func(rid resource.ID) {
		e.writesHeld.Remove(rid)
	})
}
