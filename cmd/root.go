package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/squadform/internal/adapters/llm"
	service "github.com/okian/squadform/internal/app"
	"github.com/okian/squadform/internal/config"
	"github.com/okian/squadform/pkg/logger"
)

type rootOptions struct {
	configFile string
	envFile    string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "squadform",
		Short:        "Season performance dashboard for one youth squad",
		Long:         "Serves the dashboard API when run without a subcommand.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts.cfg)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// One-shot commands keep stdout for their output.
			out := cmd.OutOrStdout()
			if cmd.Annotations["output"] == "stdout" {
				out = cmd.ErrOrStderr()
			}
			return opts.init(cmd, out)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file (overrides "+config.EnvConfigPath+")")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", config.DefaultDotEnv, "dotenv file read before the environment; empty to skip")

	cmd.AddCommand(newServeCmd(opts), newReportCmd(opts), newVerifyCmd(opts))
	return cmd
}

// init loads configuration and sets up the global logger.
func (o *rootOptions) init(cmd *cobra.Command, out io.Writer) error {
	cfg, err := config.Load(cmd.Context(), config.WithDotEnv(o.envFile), config.WithFile(o.configFile))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(logger.WithOutput(out), logger.WithFormat(logger.Format(cfg.LogFormat))); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	o.cfg = cfg
	return nil
}

// newService builds the service from configuration. The narrative
// generator stays disabled when no API key is configured.
func newService(cfg *config.Config, log logger.Logger) *service.Service {
	gen := llm.New(cfg.NarrativeAPIKey,
		llm.WithBaseURL(cfg.NarrativeBaseURL),
		llm.WithModel(cfg.NarrativeModel),
		llm.WithTimeout(cfg.NarrativeTimeout()),
		llm.WithRatePerMinute(cfg.NarrativeRatePerMinute),
		llm.WithBreakerFailures(cfg.NarrativeBreakerFailures),
		llm.WithLogger(log.Named("llm")),
	)
	return service.New(
		service.WithLogger(log.Named("service")),
		service.WithTeam(cfg.TeamName, cfg.Season),
		service.WithGenerator(gen),
	)
}
