package stream

import (
	"testing"
	"time"

	"klinechart/internal/candle"

	"go.uber.org/zap"
)

func record(t *testing.T, msgs ...string) []candle.Candle {
	t.Helper()
	var got []candle.Candle
	h := MakeMessageHandler(zap.NewNop(), func(c candle.Candle) { got = append(got, c) })
	for _, m := range msgs {
		h([]byte(m))
	}
	return got
}

// go test -v --run TestHandlerClosedCandle
func TestHandlerClosedCandle(t *testing.T) {
	got := record(t, `{"k":{"t":1700000000000,"o":"100.5","h":"101.0","l":"99.8","c":"100.9","v":"12.3","x":true}}`)
	if len(got) != 1 {
		t.Fatalf("expected 1 candle, got %d", len(got))
	}

	want, _ := candle.FromText(1700000000000, "100.5", "101.0", "99.8", "100.9", "12.3")
	if !got[0].Equal(want) {
		t.Errorf("unexpected candle: %+v", got[0])
	}
	if !got[0].Time.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("unexpected time: %v", got[0].Time)
	}
}

// go test -v --run TestHandlerDropsOpenCandles
func TestHandlerDropsOpenCandles(t *testing.T) {
	open := `{"k":{"t":1700000000000,"o":"100.5","h":"101.0","l":"99.8","c":"100.9","v":"12.3","x":false}}`
	closed := `{"k":{"t":1700000000000,"o":"100.5","h":"101.0","l":"99.8","c":"100.9","v":"12.3","x":true}}`

	got := record(t, open, open, closed)
	if len(got) != 1 {
		t.Fatalf("expected exactly one recorded candle, got %d", len(got))
	}
	if got[0].Close.String() != "100.9" {
		t.Errorf("unexpected close: %s", got[0].Close)
	}
}

// go test -v --run TestHandlerSurvivesMalformed
func TestHandlerSurvivesMalformed(t *testing.T) {
	got := record(t,
		`not json`,
		`{"result":null,"id":1}`,
		`{"k":{"t":1,"o":"x","h":"1","l":"1","c":"1","v":"1","x":true}}`,
		`{"k":{"t":1700000060000,"o":"1","h":"2","l":"0.5","c":"1.5","v":"3","x":true}}`,
	)
	if len(got) != 1 {
		t.Fatalf("expected the valid candle after malformed ones, got %d", len(got))
	}
}
