// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/reachctl/internal/config"
	"github.com/xkilldash9x/reachctl/internal/observability"
)

type contextKey string

const configKey contextKey = "config"

// ErrNoConfig is returned by subcommands run without the root's pre-run.
var ErrNoConfig = errors.New("configuration not loaded")

// NewRootCommand builds a fresh command tree. Each call is independent, so
// tests can run several in one process.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "reachctl",
		Short:         "reachctl drives hand-tracked reaching trials.",
		Long:          "reachctl runs the reaching-task controller against a simulated participant or a recorded hand trace.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)
			if err := initializeConfig(v, cfgFile); err != nil {
				return err
			}

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "reachctl"})
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("Starting reachctl",
				zap.String("version", Version),
				zap.String("config_file", v.ConfigFileUsed()))

			cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./reachctl.yaml)")
	cmd.SetVersionTemplate(`{{printf "reachctl version %s\n" .Version}}`)

	cmd.AddCommand(newSimulateCmd())
	cmd.AddCommand(newReplayCmd())
	cmd.AddCommand(newValidateCmd())
	return cmd
}

// Execute runs the command tree with ctx and logs any failure.
func Execute(ctx context.Context) error {
	defer observability.Sync()
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			observability.GetLogger().Error("Command execution failed", zap.Error(err))
		}
		return err
	}
	return nil
}

// initializeConfig reads the config file, if any, and enables environment
// overrides. A missing default config file is not an error.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("reachctl")
		v.SetConfigType("yaml")
	}
	config.BindEnvironment(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// getConfigFromContext returns the configuration stored by the root pre-run.
func getConfigFromContext(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, ErrNoConfig
	}
	return cfg, nil
}
