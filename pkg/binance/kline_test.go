package binance

import "testing"

// go test -v --run TestParseKlineMessage
func TestParseKlineMessage(t *testing.T) {
	msg := []byte(`{"e":"kline","E":1700000060001,"s":"ETHUSDT","k":{"t":1700000000000,"T":1700000059999,"i":"1m","o":"100.5","h":"101.0","l":"99.8","c":"100.9","v":"12.3","x":true}}`)

	k, err := ParseKlineMessage(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.OpenTime != 1700000000000 || k.Open != "100.5" || k.Volume != "12.3" || !k.IsClosed {
		t.Errorf("unexpected kline: %+v", k)
	}
}

// go test -v --run TestParseKlineMessageErrors
func TestParseKlineMessageErrors(t *testing.T) {
	cases := map[string]string{
		"not json":   `{"k":`,
		"no payload": `{"result":null,"id":1}`,
		"wrong type": `{"k":"oops"}`,
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseKlineMessage([]byte(msg)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

// go test -v --run TestStreamURL
func TestStreamURL(t *testing.T) {
	cases := []struct {
		base, symbol, interval, want string
	}{
		{"wss://stream.binance.com:9443/ws/", "ethusdt", "1m", "wss://stream.binance.com:9443/ws/ethusdt@kline_1m"},
		{"wss://stream.binance.com:9443/ws", "BTCUSDT", "1h", "wss://stream.binance.com:9443/ws/btcusdt@kline_1h"},
	}
	for _, tc := range cases {
		if got := StreamURL(tc.base, tc.symbol, tc.interval); got != tc.want {
			t.Errorf("StreamURL(%q, %q, %q) = %q, want %q", tc.base, tc.symbol, tc.interval, got, tc.want)
		}
	}
}

// go test -v --run TestParseKlineInterval
func TestParseKlineInterval(t *testing.T) {
	meta, err := ParseKlineInterval("15m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Duration.Minutes() != 15 {
		t.Errorf("unexpected duration: %v", meta.Duration)
	}
	if _, err := ParseKlineInterval("1"); err == nil {
		t.Error("expected error for bybit-style interval")
	}
	if !Interval1Min.IsValid() || KlineInterval("2m").IsValid() {
		t.Error("IsValid returned the wrong answer")
	}
}
