package app

import (
	"strings"
	"time"

	"klinechart/internal/chart"
	"klinechart/internal/controls"
	"klinechart/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// ── styles ────────────────────────────────────────────────────────────────────

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#aaaaaa"))
	selectStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4bc0c0"))
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0b84c"))
	tooltipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dddddd"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
)

const frameInterval = 40 * time.Millisecond

// ── messages ──────────────────────────────────────────────────────────────────

// feedMsg carries one connection event onto the event loop.
type feedMsg session.Event

// symbolsMsg replaces the symbol selector options.
type symbolsMsg []string

type frameMsg struct{}

// ── model ─────────────────────────────────────────────────────────────────────

type model struct {
	sess      *session.ChartSession
	renderer  *chart.Renderer
	symbols   *controls.Selector
	intervals *controls.Selector
	logger    *zap.Logger

	width   int
	height  int
	ticking bool
}

// newModel wires the selectors to the session: a change on either control
// switches the session to the new symbol/interval pair.
func newModel(sess *session.ChartSession, renderer *chart.Renderer, symbols, intervals []string, logger *zap.Logger) *model {
	registry := controls.NewRegistry()
	m := &model{
		sess:      sess,
		renderer:  renderer,
		symbols:   controls.NewSelector(registry, controls.Symbol, symbols, sess.Symbol()),
		intervals: controls.NewSelector(registry, controls.Interval, intervals, sess.Interval()),
		logger:    logger,
	}

	registry.On(controls.Symbol, func(v string) {
		sess.SwitchSymbol(v, sess.Interval())
	})
	registry.On(controls.Interval, func(v string) {
		sess.SwitchSymbol(sess.Symbol(), v)
	})
	return m
}

// ── Init / Update / View ──────────────────────────────────────────────────────

func (m *model) Init() tea.Cmd {
	m.sess.Start()
	return m.animate()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if err := m.sess.Close(); err != nil {
				m.logger.Warn("failed to close stream", zap.Error(err))
			}
			return m, tea.Quit
		case "s":
			m.symbols.Next()
		case "S":
			m.symbols.Prev()
		case "i":
			m.intervals.Next()
		case "I":
			m.intervals.Prev()
		case "left", "h":
			m.renderer.Widget().Hover(-1)
		case "right", "l":
			m.renderer.Widget().Hover(1)
		case "esc":
			m.renderer.Widget().Unhover()
		}
		return m, m.animate()

	case feedMsg:
		m.sess.Handle(session.Event(msg))
		return m, m.animate()

	case symbolsMsg:
		m.symbols.SetOptions(msg, m.sess.Symbol())
		m.logger.Debug("symbol options refreshed", zap.Int("count", len(msg)))
		return m, nil

	case frameMsg:
		if m.renderer.Widget().Step() {
			return m, tick()
		}
		m.ticking = false
		return m, nil
	}

	return m, nil
}

func (m *model) View() string {
	if m.width == 0 {
		return "connecting…"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteByte('\n')

	if m.sess.Loading() {
		b.WriteString(loadingStyle.Render("● loading " + m.sess.Symbol() + "@" + m.sess.Interval() + "…"))
	}
	b.WriteByte('\n')

	// Reserve: header + loading line + tooltip line + footer.
	b.WriteString(m.renderer.Widget().View(m.width, m.height-4))
	b.WriteByte('\n')

	b.WriteString(tooltipStyle.Render(strings.Join(m.renderer.Widget().Tooltip(), "  ")))
	b.WriteByte('\n')
	b.WriteString(footerStyle.Render("[s/S] symbol  [i/I] interval  [←/→] hover  [esc] unhover  [q] quit"))
	return b.String()
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (m *model) renderHeader() string {
	return headerStyle.Render("symbol ") + selectStyle.Render(strings.ToUpper(m.symbols.Value())) +
		headerStyle.Render("   interval ") + selectStyle.Render(m.intervals.Value())
}

// animate starts the frame ticker while the entrance animation runs.
func (m *model) animate() tea.Cmd {
	if m.ticking || !m.renderer.Widget().Animating() {
		return nil
	}
	m.ticking = true
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}
