/*
Package log provides structured logging for the scheduler using zerolog.

The log package wraps zerolog to provide JSON-structured logging with
component-specific loggers, configurable log levels, and helper functions
for common logging patterns. All logs include timestamps and support
filtering by severity level.

# Architecture

	┌──────────────────── LOGGING SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Global Logger                    │          │
	│  │  - Zerolog instance                         │          │
	│  │  - Initialized via log.Init()               │          │
	│  │  - Thread-safe for concurrent use           │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Configuration                     │          │
	│  │  - Level: debug/info/warn/error             │          │
	│  │  - Format: JSON or console (human)          │          │
	│  │  - Output: stdout, file, or custom writer   │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │         Component Loggers                   │          │
	│  │  - WithComponent("dispatch")                │          │
	│  │  - WithSystem("apply-velocity")              │          │
	│  │  - WithStage(2)                             │          │
	│  │  - WithDispatchID("01J...")                 │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │            Log Output                       │          │
	│  │                                              │          │
	│  │  JSON Format:                               │          │
	│  │  {                                           │          │
	│  │    "level": "info",                         │          │
	│  │    "component": "dispatch",                 │          │
	│  │    "system": "apply-velocity",               │          │
	│  │    "time": "2026-07-29T10:30:00Z",          │          │
	│  │    "message": "system completed"            │          │
	│  │  }                                           │          │
	│  │                                              │          │
	│  │  Console Format:                            │          │
	│  │  10:30AM INF system completed system=apply-velocity │  │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Usage

	import "github.com/cuemby/taskgraph/pkg/log"

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

	log.Info("dispatch starting")

	dispatchLog := log.WithDispatchID(dispatchID)
	dispatchLog.Info().Int("systems", len(specs)).Msg("dispatch starting")

	sysLog := log.WithSystem("apply-velocity").With().Int("stage", 2).Logger()
	sysLog.Error().Err(err).Msg("system failed")

# Integration Points

This package integrates with:

  - pkg/dispatch: logs dispatch start/complete, each stage it dispatches,
    and each system that fails or panics
  - cmd/taskgraphdemo: initializes the logger from CLI flags before
    building and running a graph

# Best Practices

Do:
  - Use Info level for production
  - Use structured fields for queryable data
  - Create a dispatch-scoped logger per Execute call via WithDispatchID
  - Log errors with .Err() for stack traces

Don't:
  - Log in tight loops inside a system body
  - Concatenate strings (use .Str, .Int)
  - Block on log writes (use buffered output)
*/
package log
