package chart

import (
	"time"

	"klinechart/internal/candle"

	"github.com/charmbracelet/lipgloss"
)

// TypeCandlestick is the only series type the widget draws.
const TypeCandlestick = "candlestick"

// Axis describes one chart axis.
type Axis struct {
	Type        string        // "time" or "linear"
	TimeUnit    time.Duration // tick label granularity for time axes
	BeginAtZero bool          // force the linear range through zero
	Title       string
}

type Options struct {
	X, Y Axis

	// Tooltip returns the lines shown for the hovered candle.
	Tooltip func(c candle.Candle) []string

	Bull   lipgloss.Color
	Bear   lipgloss.Color
	Wick   lipgloss.Color
	Axis   lipgloss.Color
	Cursor lipgloss.Color
}

// DefaultOptions is a time x-axis with minute ticks, a price y-axis that is
// not forced through zero, and an OHLC tooltip.
func DefaultOptions() Options {
	return Options{
		X: Axis{Type: "time", TimeUnit: time.Minute, Title: "Time"},
		Y: Axis{Type: "linear", BeginAtZero: false, Title: "Price"},

		Tooltip: OHLCTooltip,

		Bull:   lipgloss.Color("#26a641"),
		Bear:   lipgloss.Color("#e05c5c"),
		Wick:   lipgloss.Color("#888888"),
		Axis:   lipgloss.Color("#555555"),
		Cursor: lipgloss.Color("#4bc0c0"),
	}
}

func OHLCTooltip(c candle.Candle) []string {
	return []string{
		"Open: " + c.Open.String(),
		"High: " + c.High.String(),
		"Low: " + c.Low.String(),
		"Close: " + c.Close.String(),
	}
}

// timeLayout picks a tick label layout for the axis unit.
func timeLayout(unit time.Duration) string {
	switch {
	case unit < time.Minute:
		return "15:04:05"
	case unit < time.Hour:
		return "15:04"
	case unit < 24*time.Hour:
		return "02 15h"
	default:
		return "Jan 02"
	}
}
