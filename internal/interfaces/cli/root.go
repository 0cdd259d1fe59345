// Package cli implements the labqc operational command line: schema
// migrations and one-shot rule evaluation.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/config"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
)

// Build-time variables, injected by the linker.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds the persistent flags shared by all subcommands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// CLIContext carries the loaded configuration and logger into subcommands.
type CLIContext struct {
	Config *config.Config
	Logger logging.Logger
}

// NewRootCommand builds the labqc root command with its persistent flags and
// subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cliCtx := &CLIContext{}

	cmd := &cobra.Command{
		Use:     "labqc",
		Short:   "labqc operates the laboratory quality-control backend",
		Long:    "labqc is the operational companion to the laudo apiserver:\nit runs schema migrations and evaluates test results against\ntolerance rules without a running server.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initContext(cliCtx, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: configs/config.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(cliCtx),
		newMigrateCmd(cliCtx),
		newEvaluateCmd(),
	)
	return cmd
}

func initContext(cliCtx *CLIContext, opts *RootOptions) error {
	path := opts.ConfigPath
	if path == "" {
		path = "configs/config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		// The evaluate subcommand works without any configuration; commands
		// that need one check cliCtx.Config themselves.
		cfg = nil
	}
	cliCtx.Config = cfg

	logCfg := logging.Config{Level: "info", Format: "console"}
	if cfg != nil {
		logCfg = cfg.Logging
	}
	if opts.LogLevel != "" {
		logCfg.Level = opts.LogLevel
	}
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	cliCtx.Logger = logger
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
