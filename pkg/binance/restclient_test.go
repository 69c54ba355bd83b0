package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const exchangeInfoBody = `{
  "timezone": "UTC",
  "serverTime": 1700000000000,
  "symbols": [
    {"symbol": "SOLUSDT", "status": "TRADING", "baseAsset": "SOL", "quoteAsset": "USDT"},
    {"symbol": "ETHBTC",  "status": "TRADING", "baseAsset": "ETH", "quoteAsset": "BTC"},
    {"symbol": "LUNAUSDT", "status": "BREAK",  "baseAsset": "LUNA", "quoteAsset": "USDT"},
    {"symbol": "ETHUSDT", "status": "TRADING", "baseAsset": "ETH", "quoteAsset": "USDT"}
  ]
}`

// go test -v --run TestGetTradingSymbols
func TestGetTradingSymbols(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/exchangeInfo" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(exchangeInfoBody))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	symbols, err := client.GetTradingSymbols(ctx, "USDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(symbols, ","); got != "ethusdt,solusdt" {
		t.Errorf("unexpected symbols: %s", got)
	}
}

// go test -v --run TestGetTradingSymbolsAPIError
func TestGetTradingSymbolsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"code":-1003,"msg":"Too many requests"}`))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, 5*time.Second)
	_, err := client.GetTradingSymbols(context.Background(), "USDT")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "Too many requests") {
		t.Errorf("error should carry the API message: %v", err)
	}
}
