package binance

import (
	"encoding/json"
	"errors"
	"fmt"
)

// KlineMessage is the kline stream envelope. Only the nested kline is used.
type KlineMessage struct {
	EventType string `json:"e"` // "kline"
	EventTime int64  `json:"E"` // Event time (ms since epoch)
	Symbol    string `json:"s"` // e.g. "ETHUSDT"
	Kline     *Kline `json:"k"`
}

// Kline is a single candlestick update as pushed by the stream.
// Price and volume fields are numeric strings.
type Kline struct {
	OpenTime  int64  `json:"t"` // Open time (ms since epoch)
	CloseTime int64  `json:"T"` // Close time (ms since epoch)
	Interval  string `json:"i"` // e.g. "1m"
	Open      string `json:"o"`
	High      string `json:"h"`
	Low       string `json:"l"`
	Close     string `json:"c"`
	Volume    string `json:"v"`
	IsClosed  bool   `json:"x"` // true once the interval has elapsed and values are final
}

var errNoKline = errors.New("message has no kline payload")

// ParseKlineMessage decodes a stream message and returns its kline.
func ParseKlineMessage(msg []byte) (*Kline, error) {
	var m KlineMessage
	if err := json.Unmarshal(msg, &m); err != nil {
		return nil, fmt.Errorf("decode kline message: %w", err)
	}
	if m.Kline == nil {
		return nil, errNoKline
	}
	return m.Kline, nil
}
