package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuemby/taskgraph/pkg/trace"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Inspect recorded dispatch traces",
}

var traceShowCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Print every completion event recorded in a trace file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := trace.All(args[0])
		if err != nil {
			return err
		}
		for _, rec := range records {
			status := "ok"
			if rec.Err != "" {
				status = "error: " + rec.Err
			}
			fmt.Printf("%d\t%s\tstage=%d\t%s\t%s\n", rec.Seq, rec.Dispatch, rec.Stage, rec.System, status)
		}
		return nil
	},
}

func init() {
	traceCmd.AddCommand(traceShowCmd)
}
