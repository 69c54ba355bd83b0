package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"klinechart/config"
	"klinechart/internal/cache"
	"klinechart/internal/candle"
	"klinechart/pkg/binance"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// candleRow is the YAML view of one cached candle.
type candleRow struct {
	Time   string `yaml:"time"`
	Open   string `yaml:"open"`
	High   string `yaml:"high"`
	Low    string `yaml:"low"`
	Close  string `yaml:"close"`
	Volume string `yaml:"volume"`
}

type symbolRows struct {
	Symbol  string      `yaml:"symbol"`
	Candles []candleRow `yaml:"candles"`
}

func openCache(cfg *config.Config, log *zap.Logger) (*cache.SeriesCache, func(), error) {
	store, err := cache.OpenStore(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache store: %w", err)
	}
	c := cache.New(store, cache.Options{
		Key:        cfg.Cache.Key,
		MaxCandles: cfg.Cache.MaxCandles,
		Timeout:    cfg.Cache.Timeout,
	}, log)
	c.Load()

	closeFn := func() {
		if err := store.Close(); err != nil {
			log.Warn("failed to close cache store", zap.Error(err))
		}
	}
	return c, closeFn, nil
}

func cacheShow(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	defer log.Sync()

	seriesCache, closeFn, err := openCache(cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	out := toRows(seriesCache.Snapshot(), c.Args().First())

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(out)
}

func cacheClear(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	defer log.Sync()

	seriesCache, closeFn, err := openCache(cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := seriesCache.Clear(); err != nil {
		return err
	}
	log.Info("cache cleared", zap.String("driver", cfg.Cache.Driver), zap.String("key", cfg.Cache.Key))
	fmt.Println("cache cleared")
	return nil
}

// toRows orders the series by symbol. A non-empty filter keeps only that
// symbol, listed even when nothing is cached for it.
func toRows(series cache.Series, filter string) []symbolRows {
	var names []string
	if filter != "" {
		names = []string{binance.NormalizeSymbol(filter)}
	} else {
		for sym := range series {
			names = append(names, sym)
		}
		sort.Strings(names)
	}

	out := make([]symbolRows, 0, len(names))
	for _, sym := range names {
		rows := make([]candleRow, 0, len(series[sym]))
		for _, k := range series[sym] {
			rows = append(rows, toRow(k))
		}
		out = append(out, symbolRows{Symbol: sym, Candles: rows})
	}
	return out
}

func toRow(k candle.Candle) candleRow {
	return candleRow{
		Time:   k.Time.UTC().Format(time.RFC3339),
		Open:   k.Open.String(),
		High:   k.High.String(),
		Low:    k.Low.String(),
		Close:  k.Close.String(),
		Volume: k.Volume.String(),
	}
}
