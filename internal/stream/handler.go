package stream

import (
	"klinechart/internal/candle"
	"klinechart/pkg/binance"

	"go.uber.org/zap"
)

// MakeMessageHandler returns a function that handles incoming kline stream
// messages: it passes every closed candle to onClosed and silently drops
// in-progress updates. Malformed messages are logged and dropped so a single
// bad frame never ends the connection.
func MakeMessageHandler(logger *zap.Logger, onClosed func(candle.Candle)) func(msg []byte) {
	return func(msg []byte) {
		k, err := binance.ParseKlineMessage(msg)
		if err != nil {
			logger.Warn("failed to parse kline message", zap.ByteString("msg", truncate(msg, 256)), zap.Error(err))
			return
		}

		if !k.IsClosed {
			return
		}

		c, err := candle.FromText(k.OpenTime, k.Open, k.High, k.Low, k.Close, k.Volume)
		if err != nil {
			logger.Warn("failed to convert kline to candle", zap.Int64("openTime", k.OpenTime), zap.Error(err))
			return
		}

		onClosed(c)
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
