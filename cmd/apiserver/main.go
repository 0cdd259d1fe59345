// Command apiserver runs the laboratory quality-control HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/config"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/interfaces/cli"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: config file unavailable, using environment configuration: %v\n", err)
		cfg, err = config.LoadFromEnv()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.Info("starting laudo apiserver", logging.Int("port", cfg.Server.Port))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.RunServer(ctx, cfg, logger)
}
