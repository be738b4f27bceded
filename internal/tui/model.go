package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/username/daypicker/internal/calendar"
	"github.com/username/daypicker/internal/render"
	"github.com/username/daypicker/pkg/dateutil"
)

// activity is shared between model copies so day handlers can report back
type activity struct {
	last *calendar.DayEvent
}

type model struct {
	picker   *calendar.Picker
	renderer *render.Renderer
	logger   *zap.Logger
	keys     keyMap

	focus    time.Time
	activity *activity
	err      error
}

func newModel(p *calendar.Picker, r *render.Renderer, logger *zap.Logger) model {
	m := model{
		picker:   p,
		renderer: r,
		logger:   logger,
		keys:     defaultKeyMap(),
		activity: &activity{},
	}

	act := m.activity
	p.OnDay(calendar.Click, func(e calendar.DayEvent) {
		act.last = &e
	})

	m.focus = dateutil.Today()
	m.refocus()
	return m
}

// refocus keeps focus inside the rendered months after a month change
func (m *model) refocus() {
	if m.picker.Window().Contains(m.focus) {
		return
	}
	m.focus = m.picker.CurrentMonth()
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.err = nil
	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.PrevDay):
		m.focus, m.err = m.picker.HandleDayKey(m.focus, calendar.KeyLeft)
	case key.Matches(km, m.keys.NextDay):
		m.focus, m.err = m.picker.HandleDayKey(m.focus, calendar.KeyRight)
	case key.Matches(km, m.keys.PrevMonth):
		m.picker.HandleRootKey(calendar.KeyLeft)
		m.refocus()
	case key.Matches(km, m.keys.NextMonth):
		m.picker.HandleRootKey(calendar.KeyRight)
		m.refocus()
	case key.Matches(km, m.keys.Activate):
		m.focus, m.err = m.picker.HandleDayKey(m.focus, calendar.KeyEnter)
	}

	if m.err != nil {
		var resErr *calendar.FocusResolutionError
		if !errors.As(m.err, &resErr) {
			m.logger.Warn("Key handling failed", zap.String("key", km.String()), zap.Error(m.err))
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	grids, err := m.picker.Months()
	b.WriteString(m.renderer.Months(grids, m.focus))
	b.WriteString("\n\n")

	switch {
	case err != nil:
		b.WriteString(fmt.Sprintf("error: %v", err))
	case m.err != nil:
		b.WriteString(fmt.Sprintf("error: %v", m.err))
	default:
		b.WriteString(m.status())
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().Faint(true).Render(m.helpLine()))
	return b.String()
}

func (m model) status() string {
	ev := m.activity.last
	if ev == nil {
		return "focus: " + m.focus.Format("2006-01-02")
	}
	line := "selected: " + ev.Date.Format("2006-01-02")
	if len(ev.Modifiers) > 0 {
		line += " (" + strings.Join(ev.Modifiers, ", ") + ")"
	}
	return line
}

func (m model) helpLine() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// Run starts the interactive picker on the alternate screen
func Run(p *calendar.Picker, r *render.Renderer, logger *zap.Logger) error {
	m := newModel(p, r, logger)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run picker: %w", err)
	}
	return nil
}
