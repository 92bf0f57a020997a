// Package main is the entry point for the interactive batch viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/draycott/meshbatch/internal/config"
	"github.com/draycott/meshbatch/internal/logger"
	"github.com/draycott/meshbatch/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if len(cfg.Scene.Models) == 0 {
		fmt.Fprintln(os.Stderr, "No models configured; add a scene section to the config file")
		os.Exit(1)
	}

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
