package chart

import "klinechart/internal/candle"

// Renderer owns exactly one chart widget. Init builds it on first use and
// only rebinds it afterwards.
type Renderer struct {
	opts   Options
	widget *Widget
}

func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Init binds the initial series under label and draws it with the entrance
// animation.
func (r *Renderer) Init(label string, series []candle.Candle) {
	if r.widget == nil {
		r.widget = newWidget(label, series, r.opts)
	} else {
		r.widget.setLabel(label)
		r.widget.bind(series)
	}
	r.widget.Update(ModeDefault)
}

// Update replaces the bound data and redraws quietly.
func (r *Renderer) Update(series []candle.Candle) {
	w := r.mustWidget()
	w.bind(series)
	w.Update(ModeQuiet)
}

// Clear empties the bound data and redraws quietly.
func (r *Renderer) Clear() {
	w := r.mustWidget()
	w.bind(nil)
	w.Update(ModeQuiet)
}

// SetLabel renames the series without redrawing.
func (r *Renderer) SetLabel(label string) {
	r.mustWidget().setLabel(label)
}

// Widget returns the owned widget, nil before Init.
func (r *Renderer) Widget() *Widget { return r.widget }

func (r *Renderer) mustWidget() *Widget {
	if r.widget == nil {
		panic("chart: renderer used before Init")
	}
	return r.widget
}
