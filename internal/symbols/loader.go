package symbols

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Source lists the trading pairs quoted in one asset.
type Source interface {
	GetTradingSymbols(ctx context.Context, quoteAsset string) ([]string, error)
}

type Loader struct {
	Source     Source
	QuoteAsset string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// LoadSymbols fetches the pairs quoted in QuoteAsset that are currently
// trading. The request is bounded by Timeout.
func (l *Loader) LoadSymbols() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.Timeout)
	defer cancel()

	symbols, err := l.Source.GetTradingSymbols(ctx, l.QuoteAsset)
	if err != nil {
		l.Logger.Error("failed to load trading symbols", zap.String("quote", l.QuoteAsset), zap.Error(err))
		return nil, err
	}
	l.Logger.Info("loaded symbols", zap.String("quote", l.QuoteAsset), zap.Int("count", len(symbols)))

	return symbols, nil
}
