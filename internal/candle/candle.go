package candle

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Candle is one finalized OHLCV bar.
type Candle struct {
	Time   time.Time       // Open time of the bar (UTC)
	Open   decimal.Decimal // Opening price
	High   decimal.Decimal // Highest price during the interval
	Low    decimal.Decimal // Lowest price during the interval
	Close  decimal.Decimal // Closing price
	Volume decimal.Decimal // Traded base-asset volume
}

// record is the cache representation: {t, o, h, l, c, v}.
// Prices are written as JSON numbers, t as an RFC 3339 datetime.
type record struct {
	T time.Time   `json:"t"`
	O json.Number `json:"o"`
	H json.Number `json:"h"`
	L json.Number `json:"l"`
	C json.Number `json:"c"`
	V json.Number `json:"v"`
}

// FromText builds a Candle from an epoch-millisecond open time and
// numeric-as-text price fields, as delivered by the exchange.
func FromText(openTimeMs int64, open, high, low, closePrice, volume string) (Candle, error) {
	fields := []struct {
		name string
		raw  string
	}{
		{"open", open}, {"high", high}, {"low", low}, {"close", closePrice}, {"volume", volume},
	}

	var vals [5]decimal.Decimal
	for i, f := range fields {
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			return Candle{}, fmt.Errorf("parse %s %q: %w", f.name, f.raw, err)
		}
		vals[i] = d
	}

	return Candle{
		Time:   time.UnixMilli(openTimeMs).UTC(),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}

// Equal reports whether both candles carry the same instant and values.
// Decimal scale is ignored, so 101.0 equals 101.
func (c Candle) Equal(o Candle) bool {
	return c.Time.Equal(o.Time) &&
		c.Open.Equal(o.Open) &&
		c.High.Equal(o.High) &&
		c.Low.Equal(o.Low) &&
		c.Close.Equal(o.Close) &&
		c.Volume.Equal(o.Volume)
}

// Bullish is true when the bar closed at or above its open.
func (c Candle) Bullish() bool {
	return c.Close.GreaterThanOrEqual(c.Open)
}

func (c Candle) MarshalJSON() ([]byte, error) {
	return json.Marshal(record{
		T: c.Time.UTC(),
		O: json.Number(c.Open.String()),
		H: json.Number(c.High.String()),
		L: json.Number(c.Low.String()),
		C: json.Number(c.Close.String()),
		V: json.Number(c.Volume.String()),
	})
}

func (c *Candle) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}

	parsed, err := FromText(0, r.O.String(), r.H.String(), r.L.String(), r.C.String(), r.V.String())
	if err != nil {
		return err
	}
	parsed.Time = r.T.UTC()

	*c = parsed
	return nil
}

// EqualSeries compares two series element-wise with Candle.Equal.
func EqualSeries(a, b []Candle) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
