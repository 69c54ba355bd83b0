package binance

import (
	"fmt"
	"strings"
	"time"
)

// KlineInterval is the interval token used in stream names, e.g. "1m".
type KlineInterval string

// KlineIntervalMeta holds the stream token and the nominal bar length.
type KlineIntervalMeta struct {
	APIValue string
	Duration time.Duration
}

const (
	Interval1Sec    KlineInterval = "1s"
	Interval1Min    KlineInterval = "1m"
	Interval3Min    KlineInterval = "3m"
	Interval5Min    KlineInterval = "5m"
	Interval15Min   KlineInterval = "15m"
	Interval30Min   KlineInterval = "30m"
	Interval1Hour   KlineInterval = "1h"
	Interval2Hour   KlineInterval = "2h"
	Interval4Hour   KlineInterval = "4h"
	Interval6Hour   KlineInterval = "6h"
	Interval8Hour   KlineInterval = "8h"
	Interval12Hour  KlineInterval = "12h"
	IntervalDaily   KlineInterval = "1d"
	Interval3Day    KlineInterval = "3d"
	IntervalWeekly  KlineInterval = "1w"
	IntervalMonthly KlineInterval = "1M"
)

const day = 24 * time.Hour

// validKlineIntervals lists every interval the kline stream accepts.
var validKlineIntervals = map[KlineInterval]KlineIntervalMeta{
	Interval1Sec:    {APIValue: "1s", Duration: time.Second},
	Interval1Min:    {APIValue: "1m", Duration: time.Minute},
	Interval3Min:    {APIValue: "3m", Duration: 3 * time.Minute},
	Interval5Min:    {APIValue: "5m", Duration: 5 * time.Minute},
	Interval15Min:   {APIValue: "15m", Duration: 15 * time.Minute},
	Interval30Min:   {APIValue: "30m", Duration: 30 * time.Minute},
	Interval1Hour:   {APIValue: "1h", Duration: time.Hour},
	Interval2Hour:   {APIValue: "2h", Duration: 2 * time.Hour},
	Interval4Hour:   {APIValue: "4h", Duration: 4 * time.Hour},
	Interval6Hour:   {APIValue: "6h", Duration: 6 * time.Hour},
	Interval8Hour:   {APIValue: "8h", Duration: 8 * time.Hour},
	Interval12Hour:  {APIValue: "12h", Duration: 12 * time.Hour},
	IntervalDaily:   {APIValue: "1d", Duration: day},
	Interval3Day:    {APIValue: "3d", Duration: 3 * day},
	IntervalWeekly:  {APIValue: "1w", Duration: 7 * day},
	IntervalMonthly: {APIValue: "1M", Duration: 30 * day}, // nominal; calendar months vary
}

// IsValid checks if the KlineInterval is a valid predefined interval
func (k KlineInterval) IsValid() bool {
	_, ok := validKlineIntervals[k]
	return ok
}

// ParseKlineInterval parses a string into a valid KlineIntervalMeta
func ParseKlineInterval(s string) (KlineIntervalMeta, error) {
	meta, ok := validKlineIntervals[KlineInterval(s)]
	if !ok {
		return KlineIntervalMeta{}, fmt.Errorf("invalid KlineInterval: %s", s)
	}
	return meta, nil
}

// NormalizeSymbol returns the lower-case form used in stream names and as
// the cache key, e.g. "ETHUSDT" -> "ethusdt".
func NormalizeSymbol(symbol string) string {
	return strings.ToLower(strings.TrimSpace(symbol))
}

// StreamURL builds the kline stream address: base + "<symbol>@kline_<interval>".
func StreamURL(base, symbol, interval string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return fmt.Sprintf("%s%s@kline_%s", base, NormalizeSymbol(symbol), interval)
}
