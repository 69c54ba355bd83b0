package session

import (
	"klinechart/pkg/binance"

	"go.uber.org/zap"
)

// WSDialer opens Binance kline streams under BaseURL.
type WSDialer struct {
	BaseURL string
	Logger  *zap.Logger
}

func (d *WSDialer) Dial(symbol, interval string, handle func(binance.Event)) Conn {
	url := binance.StreamURL(d.BaseURL, symbol, interval)
	client := binance.NewWSClient(url, d.Logger.With(zap.String("stream", symbol+"@"+interval)))
	client.SetEventHandler(handle)
	client.Connect()
	return client
}
