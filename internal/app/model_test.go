package app

import (
	"context"
	"strings"
	"testing"

	"klinechart/internal/cache"
	"klinechart/internal/chart"
	"klinechart/internal/session"
	"klinechart/pkg/binance"
	"klinechart/pkg/storage"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type memStore struct{ slots map[string][]byte }

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.slots[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return v, nil
}

func (s *memStore) Put(_ context.Context, key string, value []byte) error {
	s.slots[key] = value
	return nil
}

func (s *memStore) Close() error { return nil }

type stubConn struct {
	stream string
	handle func(binance.Event)
	closes int
}

func (c *stubConn) Close() error {
	c.closes++
	return nil
}

type stubDialer struct{ conns []*stubConn }

func (d *stubDialer) Dial(symbol, interval string, handle func(binance.Event)) session.Conn {
	c := &stubConn{stream: symbol + "@" + interval, handle: handle}
	d.conns = append(d.conns, c)
	return c
}

func (d *stubDialer) last() *stubConn { return d.conns[len(d.conns)-1] }

type fixture struct {
	m      *model
	dialer *stubDialer
	posted []session.Event
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{dialer: &stubDialer{}}
	logger := zap.NewNop()
	c := cache.New(&memStore{slots: map[string][]byte{}}, cache.Options{Key: "cryptoData"}, logger)
	renderer := chart.NewRenderer(chart.DefaultOptions())
	sess := session.New(session.Config{
		Symbol:   "ethusdt",
		Interval: "1m",
		Cache:    c,
		Renderer: renderer,
		Dialer:   f.dialer,
		Post:     func(e session.Event) { f.posted = append(f.posted, e) },
		Logger:   logger,
	})
	f.m = newModel(sess, renderer, []string{"ethusdt", "btcusdt", "solusdt"}, []string{"1m", "5m"}, logger)
	if cmd := f.m.Init(); cmd == nil {
		t.Fatal("expected the entrance animation to start")
	}
	f.m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return f
}

// deliver feeds every posted event through the model, like Program.Send.
func (f *fixture) deliver() {
	for len(f.posted) > 0 {
		e := f.posted[0]
		f.posted = f.posted[1:]
		f.m.Update(feedMsg(e))
	}
}

func (f *fixture) emit(e binance.Event) {
	f.dialer.last().handle(e)
	f.deliver()
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// go test -v --run TestModelStartsStream
func TestModelStartsStream(t *testing.T) {
	f := newFixture(t)

	if len(f.dialer.conns) != 1 || f.dialer.last().stream != "ethusdt@1m" {
		t.Fatalf("unexpected dials: %+v", f.dialer.conns)
	}
	if !strings.Contains(f.m.View(), "loading") {
		t.Error("loading indicator should show before the stream opens")
	}

	f.emit(binance.Event{Type: binance.EventOpen})
	if strings.Contains(f.m.View(), "loading") {
		t.Error("loading indicator should hide after open")
	}
}

// go test -v --run TestModelSymbolKeys
func TestModelSymbolKeys(t *testing.T) {
	f := newFixture(t)

	f.m.Update(key("s"))
	if f.dialer.last().stream != "btcusdt@1m" {
		t.Errorf("expected btcusdt@1m, got %s", f.dialer.last().stream)
	}
	if f.dialer.conns[0].closes != 1 {
		t.Error("previous stream should be closed")
	}

	f.m.Update(key("S"))
	f.m.Update(key("S"))
	if f.dialer.last().stream != "solusdt@1m" {
		t.Errorf("expected wrap-around to solusdt@1m, got %s", f.dialer.last().stream)
	}

	f.m.Update(key("i"))
	if f.dialer.last().stream != "solusdt@5m" {
		t.Errorf("expected solusdt@5m, got %s", f.dialer.last().stream)
	}
	if len(f.dialer.conns) != 5 {
		t.Errorf("expected 5 dials, got %d", len(f.dialer.conns))
	}
	if label := f.m.renderer.Widget().Label(); label != "solusdt" {
		t.Errorf("chart label not updated: %s", label)
	}
}

// go test -v --run TestModelLiveCandle
func TestModelLiveCandle(t *testing.T) {
	f := newFixture(t)
	f.emit(binance.Event{Type: binance.EventOpen})
	f.emit(binance.Event{
		Type: binance.EventMessage,
		Data: []byte(`{"k":{"t":1700000000000,"o":"100.5","h":"101.0","l":"99.8","c":"100.9","v":"12.3","x":true}}`),
	})

	if n := len(f.m.renderer.Widget().Data()); n != 1 {
		t.Fatalf("expected one rendered candle, got %d", n)
	}

	f.m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	view := f.m.View()
	if !strings.Contains(view, "Open: 100.5") || !strings.Contains(view, "Close: 100.9") {
		t.Errorf("tooltip missing from view:\n%s", view)
	}

	f.m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if f.m.renderer.Widget().Tooltip() != nil {
		t.Error("esc should hide the tooltip")
	}
}

// go test -v --run TestModelSymbolRefresh
func TestModelSymbolRefresh(t *testing.T) {
	f := newFixture(t)

	f.m.Update(symbolsMsg{"adausdt", "btcusdt"})
	opts := f.m.symbols.Options()
	if len(opts) != 3 || opts[0] != "ethusdt" || f.m.symbols.Value() != "ethusdt" {
		t.Errorf("current symbol should be kept: %v (%s)", opts, f.m.symbols.Value())
	}
	if len(f.dialer.conns) != 1 {
		t.Error("refreshing options must not switch streams")
	}
}

// go test -v --run TestModelAnimation
func TestModelAnimation(t *testing.T) {
	f := newFixture(t)

	steps := 0
	for f.m.renderer.Widget().Animating() {
		f.m.Update(frameMsg{})
		steps++
		if steps > chart.AnimationFrames {
			t.Fatal("animation did not finish")
		}
	}
	if _, cmd := f.m.Update(frameMsg{}); cmd != nil {
		t.Error("ticker should stop once the animation is done")
	}
	if f.m.ticking {
		t.Error("ticking flag not reset")
	}
}

// go test -v --run TestModelQuit
func TestModelQuit(t *testing.T) {
	f := newFixture(t)

	_, cmd := f.m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if f.dialer.last().closes != 1 {
		t.Error("stream should be closed on quit")
	}
}
