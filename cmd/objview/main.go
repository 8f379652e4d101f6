// Package main is the entry point for the OBJ model viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/wfobj/internal/assets"
	"github.com/Faultbox/wfobj/internal/config"
	"github.com/Faultbox/wfobj/internal/logger"
	"github.com/Faultbox/wfobj/internal/viewer"
)

func main() {
	config.ParseFlags()

	if len(config.Args()) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objview [options] <model.obj>")
		os.Exit(1)
	}
	path := config.Args()[0]

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

	logger.Info("=== wfobj viewer ===", zap.String("model", path))
	logger.Sugar.Debugf("Config: %+v", cfg)

	mgr, err := assets.Open(cfg.Assets.Dirs, cfg.Assets.Packs)
	if err != nil {
		logger.Error("failed to open assets", zap.Error(err))
		os.Exit(1)
	}
	defer mgr.Close()

	v, err := viewer.New(cfg, mgr, path)
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
