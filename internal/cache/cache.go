package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"klinechart/internal/candle"
	"klinechart/pkg/storage"

	"go.uber.org/zap"
)

// DefaultMaxCandles is the per-symbol cap.
const DefaultMaxCandles = 50

// Series maps a symbol to its candles in arrival order.
type Series map[string][]candle.Candle

// SeriesCache keeps the most recent candles per symbol and mirrors the whole
// map into one storage slot after every change.
//
// It is not safe for concurrent use; the session mutates it from a single
// event loop.
type SeriesCache struct {
	store   storage.Store
	key     string
	max     int
	timeout time.Duration
	logger  *zap.Logger

	data Series
}

type Options struct {
	Key        string
	MaxCandles int
	Timeout    time.Duration // per storage call
}

// New creates an empty cache bound to store. Call Load to read the slot.
func New(store storage.Store, opts Options, logger *zap.Logger) *SeriesCache {
	if opts.MaxCandles <= 0 {
		opts.MaxCandles = DefaultMaxCandles
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	return &SeriesCache{
		store:   store,
		key:     opts.Key,
		max:     opts.MaxCandles,
		timeout: opts.Timeout,
		logger:  logger,
		data:    Series{},
	}
}

// Load reads the persisted snapshot and makes it the cache contents.
// A missing or unreadable snapshot yields an empty map; the failure is only
// logged at debug level.
func (c *SeriesCache) Load() Series {
	c.data = c.read()
	return c.data
}

func (c *SeriesCache) read() Series {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, storage.ErrNotFound) {
		c.logger.Debug("no cached series", zap.String("key", c.key))
		return Series{}
	}
	if err != nil {
		c.logger.Debug("failed to read cached series", zap.String("key", c.key), zap.Error(err))
		return Series{}
	}

	var s Series
	if err := json.Unmarshal(raw, &s); err != nil {
		c.logger.Debug("failed to parse cached series", zap.String("key", c.key), zap.Error(err))
		return Series{}
	}
	if s == nil {
		s = Series{}
	}
	return s
}

// Save serializes the whole map and overwrites the slot.
func (c *SeriesCache) Save() error {
	raw, err := json.Marshal(c.data)
	if err != nil {
		return fmt.Errorf("encode series: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.store.Put(ctx, c.key, raw); err != nil {
		return fmt.Errorf("save series: %w", err)
	}
	return nil
}

// Append adds a candle to symbol's series, evicting the single oldest entry
// once the cap is exceeded, then saves. The in-memory series is updated even
// when the save fails.
func (c *SeriesCache) Append(symbol string, k candle.Candle) error {
	s := append(c.data[symbol], k)
	if len(s) > c.max {
		s = s[1:]
	}
	c.data[symbol] = s

	return c.Save()
}

// Series returns a copy of symbol's cached candles, empty when none.
func (c *SeriesCache) Series(symbol string) []candle.Candle {
	s := c.data[symbol]
	out := make([]candle.Candle, len(s))
	copy(out, s)
	return out
}

// Snapshot returns a deep copy of the whole map.
func (c *SeriesCache) Snapshot() Series {
	out := make(Series, len(c.data))
	for sym := range c.data {
		out[sym] = c.Series(sym)
	}
	return out
}

// Clear drops every symbol and saves the empty map.
func (c *SeriesCache) Clear() error {
	c.data = Series{}
	return c.Save()
}

// MaxCandles is the per-symbol cap in effect.
func (c *SeriesCache) MaxCandles() int { return c.max }
