package app

import (
	"fmt"

	"klinechart/config"
	"klinechart/internal/cache"
	"klinechart/internal/chart"
	"klinechart/internal/session"
	"klinechart/internal/symbols"
	"klinechart/pkg/binance"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Run opens the cache store, starts the chart session and blocks until the
// user quits.
func Run(cfg *config.Config, logger *zap.Logger) error {
	store, err := cache.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open cache store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close cache store", zap.Error(err))
		}
	}()

	seriesCache := cache.New(store, cache.Options{
		Key:        cfg.Cache.Key,
		MaxCandles: cfg.Cache.MaxCandles,
		Timeout:    cfg.Cache.Timeout,
	}, logger)
	renderer := chart.NewRenderer(chart.DefaultOptions())

	// Send blocks until the program runs, so connection goroutines started
	// from Init wait for the event loop.
	var program *tea.Program
	sess := session.New(session.Config{
		Symbol:   cfg.Chart.Symbol,
		Interval: cfg.Chart.Interval,
		Cache:    seriesCache,
		Renderer: renderer,
		Dialer:   &session.WSDialer{BaseURL: cfg.Binance.WS.BaseURL, Logger: logger},
		Post:     func(e session.Event) { program.Send(feedMsg(e)) },
		Logger:   logger,
	})

	m := newModel(sess, renderer, cfg.Chart.Symbols, cfg.Chart.Intervals, logger)
	program = tea.NewProgram(m, tea.WithAltScreen())

	if cfg.Binance.REST.Discover {
		loader := &symbols.Loader{
			Source:     binance.NewRESTClient(cfg.Binance.REST.BaseURL, cfg.Binance.REST.Timeout),
			QuoteAsset: cfg.Binance.REST.QuoteAsset,
			Timeout:    cfg.Binance.REST.Timeout,
			Logger:     logger,
		}
		scheduler := symbols.NewScheduler(logger)
		err := scheduler.Start(cfg.Binance.REST.RefreshCron, loader.LoadSymbols, func(list []string) {
			program.Send(symbolsMsg(list))
		})
		if err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	logger.Info("chart starting",
		zap.String("symbol", cfg.Chart.Symbol),
		zap.String("interval", cfg.Chart.Interval),
		zap.String("cache", cfg.Cache.Driver))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chart failed: %w", err)
	}
	return nil
}
