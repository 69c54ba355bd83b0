package chart

import (
	"fmt"
	"math"
	"strings"

	"klinechart/internal/candle"

	"github.com/charmbracelet/lipgloss"
)

const yAxisWidth = 13 // " 123456.1234 │"

// View renders the widget into a width x height block of text.
// Each candle takes two columns: body/wick and a gap.
func (w *Widget) View(width, height int) string {
	axis := lipgloss.NewStyle().Foreground(w.opts.Axis)

	// Reserve: 1 title row + chart rows + 1 x-axis line + 1 time-label line.
	chartH := height - 3
	if chartH < 3 {
		chartH = 3
	}

	var b strings.Builder
	b.WriteString(axis.Render(fmt.Sprintf("%*s", yAxisWidth-2, w.opts.Y.Title)))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(w.label))
	b.WriteByte('\n')

	candles := w.visible()
	offset := 0
	maxCols := (width - yAxisWidth) / 2
	if maxCols < 1 {
		maxCols = 1
	}
	if len(candles) > maxCols {
		offset = len(candles) - maxCols
		candles = candles[offset:]
	}

	if len(candles) == 0 {
		for row := 0; row < chartH; row++ {
			b.WriteString(axis.Render(strings.Repeat(" ", yAxisWidth-1) + "│"))
			if row == chartH/2 {
				b.WriteString(axis.Render("  waiting for closed candles…"))
			}
			b.WriteByte('\n')
		}
		w.writeXAxis(&b, axis, nil, width-yAxisWidth)
		return b.String()
	}

	hi, lo := w.priceRange(candles)
	if hi == lo {
		hi = lo + 1
	}
	prec := pricePrecision(hi)

	cols := len(candles) * 2
	grid := make([][]string, chartH)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	for i, c := range candles {
		w.paintCandle(grid, c, i*2, chartH, hi, lo, offset+i == w.cursor)
	}

	for row := 0; row < chartH; row++ {
		price := rowToPrice(row, chartH, hi, lo)
		b.WriteString(axis.Render(fmt.Sprintf("%*.*f │", yAxisWidth-2, prec, price)))
		b.WriteString(strings.Join(grid[row], ""))
		b.WriteByte('\n')
	}

	w.writeXAxis(&b, axis, candles, cols)
	return b.String()
}

// writeXAxis writes the separator, one time label every labelEvery candles
// and the axis title.
func (w *Widget) writeXAxis(b *strings.Builder, axis lipgloss.Style, candles []candle.Candle, cols int) {
	if cols < 0 {
		cols = 0
	}
	b.WriteString(axis.Render(strings.Repeat("─", yAxisWidth-1) + "┴" + strings.Repeat("─", cols)))
	b.WriteByte('\n')

	layout := timeLayout(w.opts.X.TimeUnit)
	labelEvery := (len(layout) + 2 + 1) / 2 // candles per label, labels never overlap

	line := []rune(strings.Repeat(" ", cols))
	for i := 0; i < len(candles); i += labelEvery {
		label := []rune(candles[i].Time.UTC().Format(layout))
		for j, r := range label {
			if i*2+j < len(line) {
				line[i*2+j] = r
			}
		}
	}

	b.WriteString(strings.Repeat(" ", yAxisWidth))
	b.WriteString(axis.Render(string(line)))
	b.WriteString("  ")
	b.WriteString(axis.Render(w.opts.X.Title))
}

// paintCandle paints one candle into the grid at column x.
func (w *Widget) paintCandle(grid [][]string, c candle.Candle, x, chartH int, hi, lo float64, hovered bool) {
	open := c.Open.InexactFloat64()
	cls := c.Close.InexactFloat64()
	high := c.High.InexactFloat64()
	low := c.Low.InexactFloat64()

	color := w.opts.Bull
	if !c.Bullish() {
		color = w.opts.Bear
	}
	if hovered {
		color = w.opts.Cursor
	}
	body := lipgloss.NewStyle().Foreground(color)
	wick := lipgloss.NewStyle().Foreground(w.opts.Wick)

	fH := float64(chartH)
	bodyTop := priceToRow(math.Max(open, cls), fH, hi, lo)
	bodyBot := priceToRow(math.Min(open, cls), fH, hi, lo)
	wickTop := priceToRow(high, fH, hi, lo)
	wickBot := priceToRow(low, fH, hi, lo)

	for row := 0; row < chartH; row++ {
		var cell string
		switch {
		case row >= bodyTop && row <= bodyBot:
			cell = body.Render("█")
		case row >= wickTop && row <= wickBot:
			cell = wick.Render("│")
		default:
			continue
		}
		if x < len(grid[row]) {
			grid[row][x] = cell
		}
	}
	if hovered && x+1 < len(grid[chartH-1]) {
		grid[chartH-1][x+1] = body.Render("◂")
	}
}

// priceRange returns the high and low across candles, widened to zero when
// the y-axis begins at zero.
func (w *Widget) priceRange(candles []candle.Candle) (hi, lo float64) {
	hi = -math.MaxFloat64
	lo = math.MaxFloat64
	for _, c := range candles {
		hi = math.Max(hi, c.High.InexactFloat64())
		lo = math.Min(lo, c.Low.InexactFloat64())
	}
	if w.opts.Y.BeginAtZero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}
	return hi, lo
}

// priceToRow converts a price to a grid row (0 = top = high).
func priceToRow(price, chartH float64, hi, lo float64) int {
	if hi == lo {
		return int(chartH) / 2
	}
	r := int(math.Round((hi - price) / (hi - lo) * (chartH - 1)))
	if r < 0 {
		r = 0
	}
	if r >= int(chartH) {
		r = int(chartH) - 1
	}
	return r
}

// rowToPrice is the inverse of priceToRow.
func rowToPrice(row, chartH int, hi, lo float64) float64 {
	if chartH <= 1 {
		return hi
	}
	return hi - float64(row)/float64(chartH-1)*(hi-lo)
}

func pricePrecision(hi float64) int {
	switch {
	case hi >= 1000:
		return 2
	case hi >= 1:
		return 4
	default:
		return 8
	}
}
