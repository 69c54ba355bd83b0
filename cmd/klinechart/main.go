package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:     "klinechart",
		Usage:    "Live Binance candlestick chart in the terminal",
		Version:  "v0.1.0",
		Flags:    globalFlags,
		Action:   run,
		Commands: commands,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
