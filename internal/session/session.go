package session

import (
	"klinechart/internal/cache"
	"klinechart/internal/candle"
	"klinechart/internal/stream"
	"klinechart/pkg/binance"

	"go.uber.org/zap"
)

// Conn is an open streaming connection.
type Conn interface {
	Close() error
}

// Dialer opens a streaming connection for symbol/interval. handle receives
// the connection's events, in order, from any goroutine.
type Dialer interface {
	Dial(symbol, interval string, handle func(binance.Event)) Conn
}

// Renderer draws the active series.
type Renderer interface {
	Init(label string, series []candle.Candle)
	Update(series []candle.Candle)
	Clear()
	SetLabel(label string)
}

// Cache holds the recent candles per symbol.
type Cache interface {
	Load() cache.Series
	Append(symbol string, c candle.Candle) error
	Series(symbol string) []candle.Candle
}

// Event is a connection event tagged with the connection it came from.
type Event struct {
	Gen      uint64
	Symbol   string
	Interval string
	binance.Event
}

type Config struct {
	Symbol   string
	Interval string

	Cache    Cache
	Renderer Renderer
	Dialer   Dialer

	// Post hands an event to the goroutine that owns the session, which
	// must then call Handle. It is called from connection goroutines.
	Post func(Event)

	Logger *zap.Logger
}

// ChartSession ties one chart to one live kline stream.
//
// Apart from Post, every method must be called from the single goroutine
// that owns the session.
type ChartSession struct {
	symbol   string
	interval string

	cache    Cache
	renderer Renderer
	dialer   Dialer
	post     func(Event)
	logger   *zap.Logger

	conn      Conn
	gen       uint64
	loading   bool
	onMessage func([]byte)
}

func New(cfg Config) *ChartSession {
	s := &ChartSession{
		symbol:   binance.NormalizeSymbol(cfg.Symbol),
		interval: cfg.Interval,
		cache:    cfg.Cache,
		renderer: cfg.Renderer,
		dialer:   cfg.Dialer,
		post:     cfg.Post,
		logger:   cfg.Logger,
		loading:  true,
	}
	s.onMessage = stream.MakeMessageHandler(cfg.Logger, s.record)
	return s
}

func (s *ChartSession) Symbol() string   { return s.symbol }
func (s *ChartSession) Interval() string { return s.interval }

// Loading reports whether the loading indicator should be shown.
func (s *ChartSession) Loading() bool { return s.loading }

// Start loads the cache, draws the cached series and connects.
func (s *ChartSession) Start() {
	s.cache.Load()
	s.renderer.Init(s.symbol, s.cache.Series(s.symbol))
	s.connect()
}

// SwitchSymbol moves the session to symbol/interval. It is a no-op when
// both are unchanged and reports whether a switch happened.
func (s *ChartSession) SwitchSymbol(symbol, interval string) bool {
	symbol = binance.NormalizeSymbol(symbol)
	if symbol == s.symbol && interval == s.interval {
		return false
	}

	s.logger.Info("switching stream",
		zap.String("from", s.symbol+"@"+s.interval), zap.String("to", symbol+"@"+interval))

	s.symbol = symbol
	s.interval = interval

	s.renderer.Clear()
	s.renderer.SetLabel(symbol)
	s.renderer.Update(s.cache.Series(symbol))

	s.connect()
	return true
}

// Handle applies one connection event. Events from a replaced connection
// are dropped.
func (s *ChartSession) Handle(e Event) {
	if e.Gen != s.gen {
		s.logger.Debug("dropping event from replaced connection",
			zap.Stringer("type", e.Type), zap.String("stream", e.Symbol+"@"+e.Interval))
		return
	}

	switch e.Type {
	case binance.EventOpen:
		s.loading = false
	case binance.EventMessage:
		s.onMessage(e.Data)
	case binance.EventError:
		s.logger.Error("stream error", zap.String("stream", e.Symbol+"@"+e.Interval), zap.Error(e.Err))
		s.loading = true
	case binance.EventClose:
		s.logger.Info("stream closed", zap.String("stream", e.Symbol+"@"+e.Interval), zap.Error(e.Err))
		s.loading = true
	}
}

// Close tears down the active connection.
func (s *ChartSession) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	s.gen++
	return err
}

func (s *ChartSession) connect() {
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			s.logger.Warn("failed to close previous stream", zap.Error(err))
		}
	}

	s.gen++
	s.loading = true

	gen, symbol, interval := s.gen, s.symbol, s.interval
	s.conn = s.dialer.Dial(symbol, interval, func(e binance.Event) {
		s.post(Event{Gen: gen, Symbol: symbol, Interval: interval, Event: e})
	})
}

func (s *ChartSession) record(c candle.Candle) {
	if err := s.cache.Append(s.symbol, c); err != nil {
		s.logger.Warn("failed to save cache", zap.String("symbol", s.symbol), zap.Error(err))
	}
	s.renderer.Update(s.cache.Series(s.symbol))
}
