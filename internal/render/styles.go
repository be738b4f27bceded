package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/username/daypicker/internal/modifier"
)

// Modifier names the default styles know about besides the built-ins
const (
	Weekends = "weekends"
	Holidays = "holidays"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Styles holds the lipgloss styles a Renderer paints with
type Styles struct {
	Caption lipgloss.Style
	Header  lipgloss.Style
	Day     lipgloss.Style
	Focused lipgloss.Style

	// Modifiers maps a modifier name to the style layered on top of Day,
	// in the order the modifiers appear on the cell.
	Modifiers map[string]lipgloss.Style
}

// DefaultStyles returns the built-in palette for r; nil means the default renderer
func DefaultStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	muted := ac("240", "243")

	return Styles{
		Caption: r.NewStyle().Bold(true),
		Header:  r.NewStyle().Foreground(muted),
		Day:     r.NewStyle(),
		Focused: r.NewStyle().Reverse(true),
		Modifiers: map[string]lipgloss.Style{
			modifier.Today:   r.NewStyle().Bold(true).Underline(true),
			modifier.Outside: r.NewStyle().Foreground(muted),
			Weekends:         r.NewStyle().Foreground(ac("27", "62")),
			Holidays:         r.NewStyle().Foreground(ac("#c0392b", "#d16d7a")).Bold(true),
		},
	}
}

// For returns the style of a cell carrying names
func (s Styles) For(names []string) lipgloss.Style {
	st := s.Day
	for _, name := range names {
		if ms, ok := s.Modifiers[name]; ok {
			st = ms.Inherit(st)
		}
	}
	return st
}
