// File: cmd/simulate.go
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/reachctl/internal/config"
	"github.com/xkilldash9x/reachctl/internal/cursor"
	"github.com/xkilldash9x/reachctl/internal/geometry"
	"github.com/xkilldash9x/reachctl/internal/observability"
	"github.com/xkilldash9x/reachctl/internal/orchestrator"
	"github.com/xkilldash9x/reachctl/internal/runner"
	"github.com/xkilldash9x/reachctl/internal/trace"
	"github.com/xkilldash9x/reachctl/internal/trial"
)

type simulateOptions struct {
	repeat   int
	realtime bool
	seed     int64
	record   string
}

func newSimulateCmd() *cobra.Command {
	var opts simulateOptions

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the configured trials against a simulated participant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			if opts.repeat < 1 {
				return fmt.Errorf("--trials must be at least 1, got %d", opts.repeat)
			}
			run := *cfg
			run.Trials = repeatTrials(cfg.Trials, opts.repeat)
			if cmd.Flags().Changed("realtime") {
				run.Runner.Realtime = opts.realtime
			}
			if cmd.Flags().Changed("seed") {
				run.Participant.Seed = opts.seed
			}
			return runSimulate(cmd, &run, opts.record)
		},
	}
	cmd.Flags().IntVar(&opts.repeat, "trials", 1, "number of passes over the configured trial list")
	cmd.Flags().BoolVar(&opts.realtime, "realtime", false, "pace frames at the configured frame rate")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "participant random seed (0 seeds from the clock)")
	cmd.Flags().StringVar(&opts.record, "record", "", "write the simulated hand trace to this JSON-lines file")
	return cmd
}

func runSimulate(cmd *cobra.Command, cfg *config.Config, record string) error {
	logger := observability.GetLogger()

	rigOpts := runner.RigOptions{Simulated: true}
	var writer *trace.Writer
	if record != "" {
		f, err := os.Create(record)
		if err != nil {
			return fmt.Errorf("failed to create trace file: %w", err)
		}
		defer f.Close()
		writer = trace.NewWriter(f)
		var writeErr error
		rigOpts.OnFrame = func(now time.Duration, hand geometry.Vector3D, _ trial.Transition) {
			if writeErr == nil {
				writeErr = writer.Write(trace.NewSample(now, hand))
			}
		}
		defer func() {
			if writeErr != nil {
				logger.Error("Trace recording failed", zap.Error(writeErr))
			}
		}()
	}

	rig, err := runner.NewRig(cfg, rigOpts, logger)
	if err != nil {
		return err
	}
	res, err := rig.Runner.Simulate(cmd.Context(), rig.Participant, rig.Session.Done)
	if writer != nil {
		if ferr := writer.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("failed to flush trace: %w", ferr)
		}
	}
	printSummary(cmd.OutOrStdout(), rig.Session.Attempts(), res)
	return err
}

// repeatTrials concatenates n copies of trials.
func repeatTrials(trials []cursor.TrialConfig, n int) []cursor.TrialConfig {
	out := make([]cursor.TrialConfig, 0, len(trials)*n)
	for i := 0; i < n; i++ {
		out = append(out, trials...)
	}
	return out
}

func printSummary(w io.Writer, attempts []orchestrator.Attempt, res runner.Result) {
	fmt.Fprintf(w, "%-6s %-9s %9s %7s %10s %6s\n", "TRIAL", "TYPE", "ROTATION", "TARGET", "REACH", "QUICK")
	for _, a := range attempts {
		quick := "no"
		if a.Quick {
			quick = "yes"
		}
		fmt.Fprintf(w, "%-6d %-9s %9.1f %7.1f %10s %6s\n",
			a.Trial.Index,
			a.Trial.Config.Type,
			a.Trial.Config.CursorRotation,
			a.Trial.Config.TargetAngle,
			a.ReachTime().Round(time.Millisecond),
			quick)
	}
	fmt.Fprintf(w, "%d attempts in %d frames (%s)\n", len(attempts), res.Frames, res.Duration.Round(time.Millisecond))
}
