package main

import (
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.PathFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to config.yaml (default: ./config/config.yaml or $HOME/.klinechart/config.yaml)",
		EnvVars: []string{"KLINECHART_CONFIG"},
	}
	symbolFlag = &cli.StringFlag{
		Name:  "symbol",
		Usage: "initial symbol, e.g. btcusdt",
	}
	intervalFlag = &cli.StringFlag{
		Name:  "interval",
		Usage: "initial kline interval, e.g. 1m",
	}

	globalFlags = []cli.Flag{configFlag, symbolFlag, intervalFlag}
	runFlags    = []cli.Flag{symbolFlag, intervalFlag}
)
