package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rs/zerolog"

	"github.com/cuemby/taskgraph/pkg/log"
	"github.com/cuemby/taskgraph/pkg/metrics"
	"github.com/cuemby/taskgraph/pkg/resource"
	"github.com/cuemby/taskgraph/pkg/trace"
)

func resourcePositions(store *resource.Store) (Positions, error) {
	p, err := resource.GetShared[Positions](store)
	if err != nil {
		return nil, err
	}
	return *p, nil
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo particle simulation",
	Long: `Run builds the integrate/log-positions/damp system graph,
plans it into stages, and executes it once per the scenario's iterations
setting, printing the resulting stage plan and final particle positions.

Examples:
  # Run the built-in default scenario
  taskgraphdemo run

  # Run a scenario file and record every completion to a trace file
  taskgraphdemo run -f scenario.yaml --trace run.trace`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringP("file", "f", "", "Scenario YAML file (defaults to the built-in scenario)")
	runCmd.Flags().String("trace", "", "If set, record every completion event to this bbolt file")
	runCmd.Flags().String("metrics-addr", "", "If set, serve Prometheus metrics on this address while running")
}

func runRun(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	tracePath, _ := cmd.Flags().GetString("trace")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	sc := DefaultScenario()
	if file != "" {
		var err error
		sc, err = LoadScenario(file)
		if err != nil {
			return err
		}
	}

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		mux.HandleFunc("/health", metrics.HealthHandler())
		mux.HandleFunc("/ready", metrics.ReadyHandler())
		mux.HandleFunc("/live", metrics.LivenessHandler())
		dl := demoLog()
		go func() {
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				dl.Error().Err(err).Msg("metrics server exited")
			}
		}()
		dl.Info().Str("addr", metricsAddr).Msg("serving metrics")
	}

	store, builder := sc.Build()

	eng, err := builder.Build(store)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	if tracePath != "" {
		recorder, err := trace.Open(tracePath)
		if err != nil {
			return err
		}
		recorder.Attach(eng)
		defer recorder.Close()
	}

	plan := eng.Plan()
	fmt.Printf("plan: %d stages over %d systems\n", len(plan.Stages), len(plan.Instances))
	for _, st := range plan.Stages {
		names := make([]string, len(st.Systems))
		for i, sid := range st.Systems {
			names[i] = plan.System(sid).Spec.Name()
		}
		fmt.Printf("  stage %d: %v\n", st.ID, names)
	}

	runID := uuid.NewString()
	for i := 0; i < sc.Iterations; i++ {
		world := &World{Iteration: i}
		timer := metrics.NewTimer()
		if err := eng.Execute(context.Background(), world); err != nil {
			return fmt.Errorf("dispatch %s iteration %d: %w", runID, i, err)
		}
		timer.ObserveDuration(metrics.DispatchDuration)
	}

	positions, err := resourcePositions(store)
	if err != nil {
		return err
	}
	for i, p := range positions {
		fmt.Printf("particle %d: (%.2f, %.2f)\n", i, p.X, p.Y)
	}

	return nil
}

func demoLog() zerolog.Logger { return log.WithComponent("taskgraphdemo") }
