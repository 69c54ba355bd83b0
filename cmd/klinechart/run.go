package main

import (
	"fmt"

	"klinechart/config"
	"klinechart/internal/app"
	"klinechart/logger"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// setup loads the config named by --config and builds the logger.
func setup(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.Path("config"))
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

func run(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := cfg.Select(c.String("symbol"), c.String("interval")); err != nil {
		return err
	}

	if err := app.Run(cfg, log); err != nil {
		log.Error("chart exited with error", zap.Error(err))
		return err
	}
	return nil
}
