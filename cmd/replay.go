// File: cmd/replay.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/reachctl/internal/observability"
	"github.com/xkilldash9x/reachctl/internal/runner"
)

func newReplayCmd() *cobra.Command {
	var realtime bool

	cmd := &cobra.Command{
		Use:   "replay <trace.jsonl>",
		Short: "Drive the controller with a recorded hand trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			run := *cfg
			if cmd.Flags().Changed("realtime") {
				run.Runner.Realtime = realtime
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open trace: %w", err)
			}
			defer f.Close()

			rig, err := runner.NewRig(&run, runner.RigOptions{}, observability.GetLogger())
			if err != nil {
				return err
			}
			res, err := rig.Runner.Replay(cmd.Context(), f)
			printSummary(cmd.OutOrStdout(), rig.Session.Attempts(), res)
			return err
		},
	}
	cmd.Flags().BoolVar(&realtime, "realtime", false, "pace samples at the configured frame rate")
	return cmd
}
