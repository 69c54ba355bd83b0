package main

import (
	"github.com/urfave/cli/v2"
)

var commands = []*cli.Command{
	{
		Name:   "run",
		Usage:  "Show the live chart (default)",
		Action: run,
		Flags:  runFlags,
	}, {
		Name:  "cache",
		Usage: "Inspect or reset the persisted candle cache",
		Subcommands: []*cli.Command{{
			Name:      "show",
			Usage:     "Print the cached candles as YAML",
			ArgsUsage: "[symbol]",
			Action:    cacheShow,
		}, {
			Name:   "clear",
			Usage:  "Drop every cached candle",
			Action: cacheClear,
		}},
	},
}
