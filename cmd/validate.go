// File: cmd/validate.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The root pre-run has already validated; reaching here means success.
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "configuration OK")
			fmt.Fprintf(out, "pause: every %s, window %d, threshold %g\n",
				cfg.Pause.Period, cfg.Pause.Window, cfg.Pause.Threshold)
			fmt.Fprintf(out, "quick reach: under %s\n", cfg.Feedback.QuickReach)
			for i, t := range cfg.Trials {
				fmt.Fprintf(out, "trial %d: type=%s cursor_rotation=%g target_angle=%g\n",
					i, t.Type, t.CursorRotation, t.TargetAngle)
			}
			return nil
		},
	}
}
