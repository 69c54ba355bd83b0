package chart

import (
	"klinechart/internal/candle"
)

// Mode selects how a redraw is presented.
type Mode int

const (
	// ModeDefault plays the entrance animation.
	ModeDefault Mode = iota
	// ModeQuiet draws the final frame immediately, without animation.
	ModeQuiet
)

// AnimationFrames is the length of the entrance animation.
const AnimationFrames = 8

// Widget is one candlestick chart bound to one data array.
type Widget struct {
	label string
	kind  string
	data  []candle.Candle
	opts  Options

	frame   int // AnimationFrames when idle
	cursor  int // hovered index, -1 when nothing is hovered
	redraws int
}

func newWidget(label string, data []candle.Candle, opts Options) *Widget {
	return &Widget{
		label:  label,
		kind:   TypeCandlestick,
		data:   data,
		opts:   opts,
		frame:  AnimationFrames,
		cursor: -1,
	}
}

func (w *Widget) Label() string         { return w.label }
func (w *Widget) Type() string          { return w.kind }
func (w *Widget) Options() Options      { return w.opts }
func (w *Widget) Data() []candle.Candle { return w.data }
func (w *Widget) Redraws() int          { return w.redraws }
func (w *Widget) Animating() bool       { return w.frame < AnimationFrames }
func (w *Widget) setLabel(label string) { w.label = label }

func (w *Widget) bind(d []candle.Candle) {
	w.data = d
	w.clampCursor()
}

// Update redraws the widget with its current data.
func (w *Widget) Update(mode Mode) {
	w.redraws++
	if mode == ModeQuiet {
		w.frame = AnimationFrames
		return
	}
	w.frame = 0
}

// Step advances the entrance animation by one frame and reports whether
// more frames remain.
func (w *Widget) Step() bool {
	if w.frame < AnimationFrames {
		w.frame++
	}
	return w.Animating()
}

// visible is the prefix of the data revealed by the current frame.
func (w *Widget) visible() []candle.Candle {
	if !w.Animating() {
		return w.data
	}
	n := (len(w.data)*w.frame + AnimationFrames - 1) / AnimationFrames
	return w.data[:n]
}

// Hover moves the hover cursor by delta candles. The first move starts
// from the newest candle.
func (w *Widget) Hover(delta int) {
	if len(w.data) == 0 {
		w.cursor = -1
		return
	}
	if w.cursor < 0 {
		w.cursor = len(w.data) - 1
		return
	}
	w.cursor += delta
	if w.cursor < 0 {
		w.cursor = 0
	}
	w.clampCursor()
}

// Unhover hides the tooltip.
func (w *Widget) Unhover() { w.cursor = -1 }

func (w *Widget) clampCursor() {
	if w.cursor < 0 {
		return
	}
	if len(w.data) == 0 {
		w.cursor = -1
		return
	}
	if w.cursor >= len(w.data) {
		w.cursor = len(w.data) - 1
	}
}

// Hovered returns the candle under the cursor.
func (w *Widget) Hovered() (candle.Candle, bool) {
	if w.cursor < 0 || w.cursor >= len(w.data) {
		return candle.Candle{}, false
	}
	return w.data[w.cursor], true
}

// Tooltip returns the tooltip lines for the hovered candle, nil when
// nothing is hovered.
func (w *Widget) Tooltip() []string {
	c, ok := w.Hovered()
	if !ok || w.opts.Tooltip == nil {
		return nil
	}
	return w.opts.Tooltip(c)
}
