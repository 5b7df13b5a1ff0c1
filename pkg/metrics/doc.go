/*
Package metrics defines and registers the Prometheus metrics the
dispatch engine and its surrounding CLI expose, following the same
package-init registration pattern used throughout this module.

# Architecture

	┌──────────────────── METRICS SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │          Prometheus Registry                │          │
	│  │  - Global DefaultRegistry                   │          │
	│  │  - MustRegister at package init             │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │              Metric Catalog                  │          │
	│  │                                              │          │
	│  │  taskgraph_stage_duration_seconds (hist)    │          │
	│  │  taskgraph_dispatch_duration_seconds (hist) │          │
	│  │  taskgraph_borrow_conflicts_total (counter) │          │
	│  │  taskgraph_dispatch_total{outcome} (counter)│          │
	│  │  taskgraph_active_systems (gauge)           │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │          HTTP Metrics Endpoint               │          │
	│  │  - Handler(): promhttp.Handler()             │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Usage

	timer := metrics.NewTimer()
	if err := engine.Execute(ctx, world); err != nil {
		...
	}
	timer.ObserveDuration(metrics.DispatchDuration)

# Integration Points

  - pkg/dispatch: increments ActiveSystems/BorrowConflictsTotal and
    DispatchTotal as it runs, observes StageDuration per completed stage
  - cmd/taskgraphdemo: observes DispatchDuration per Execute call,
    serves Handler() on an HTTP endpoint
*/
package metrics
