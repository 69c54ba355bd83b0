package controls

// Names of the controls the chart shell exposes.
const (
	Symbol   = "symbol"
	Interval = "interval"
)

// Registry dispatches change events of named controls to their listeners.
// It holds no toolkit state; a UI translates its own input events into Emit.
type Registry struct {
	listeners map[string][]func(value string)
}

func NewRegistry() *Registry {
	return &Registry{listeners: make(map[string][]func(string))}
}

// On registers fn for change events of the named control.
func (r *Registry) On(name string, fn func(value string)) {
	r.listeners[name] = append(r.listeners[name], fn)
}

// Emit invokes every listener of name, in registration order, with value.
func (r *Registry) Emit(name, value string) {
	for _, fn := range r.listeners[name] {
		fn(value)
	}
}

// Selector is a drop-down style control: a list of options with one
// selected. Moving the selection emits the new value on the registry.
type Selector struct {
	name     string
	options  []string
	selected int
	registry *Registry
}

// NewSelector creates a selector with value selected. If value is not among
// options it is prepended.
func NewSelector(r *Registry, name string, options []string, value string) *Selector {
	s := &Selector{name: name, registry: r}
	s.SetOptions(options, value)
	return s
}

func (s *Selector) Name() string      { return s.name }
func (s *Selector) Options() []string { return s.options }
func (s *Selector) Value() string     { return s.options[s.selected] }

// SetOptions replaces the option list without emitting, keeping value
// selected.
func (s *Selector) SetOptions(options []string, value string) {
	s.options = append([]string(nil), options...)
	s.selected = -1
	for i, o := range s.options {
		if o == value {
			s.selected = i
			break
		}
	}
	if s.selected < 0 {
		s.options = append([]string{value}, s.options...)
		s.selected = 0
	}
}

// Next selects the following option (wrapping) and emits it.
func (s *Selector) Next() { s.move(1) }

// Prev selects the previous option (wrapping) and emits it.
func (s *Selector) Prev() { s.move(-1) }

func (s *Selector) move(delta int) {
	n := len(s.options)
	s.selected = ((s.selected+delta)%n + n) % n
	s.registry.Emit(s.name, s.Value())
}

// Select picks value if it is an option and emits it. It reports whether
// value was found.
func (s *Selector) Select(value string) bool {
	for i, o := range s.options {
		if o == value {
			s.selected = i
			s.registry.Emit(s.name, value)
			return true
		}
	}
	return false
}
