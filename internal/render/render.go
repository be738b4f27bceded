package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/username/daypicker/internal/calendar"
	"github.com/username/daypicker/internal/locale"
	"github.com/username/daypicker/pkg/dateutil"
)

const (
	cellWidth = 3
	monthGap  = "   "
)

// Width is the display width of one rendered month
const Width = calendar.DaysPerWeek*cellWidth + calendar.DaysPerWeek - 1

// Renderer turns month grids into terminal text
type Renderer struct {
	Locale       string
	Provider     locale.Provider
	WeekStartsOn time.Weekday
	Styles       Styles
}

// New creates a renderer; a nil provider means locale.Default()
func New(localeKey string, provider locale.Provider, weekStartsOn time.Weekday, styles Styles) *Renderer {
	if provider == nil {
		provider = locale.Default()
	}
	return &Renderer{
		Locale:       localeKey,
		Provider:     provider,
		WeekStartsOn: weekStartsOn,
		Styles:       styles,
	}
}

// Caption returns the month name and year, e.g. "July 2015"
func (r *Renderer) Caption(m dateutil.Month) string {
	return fmt.Sprintf("%s %d", r.Provider.MonthName(r.Locale, m.Month), m.Year)
}

// Header returns the weekday row starting at the week start
func (r *Renderer) Header() string {
	cols := make([]string, calendar.DaysPerWeek)
	for i := range cols {
		wd := time.Weekday((int(r.WeekStartsOn) + i) % calendar.DaysPerWeek)
		name := runewidth.Truncate(r.Provider.WeekdayShort(r.Locale, wd), cellWidth, "")
		cols[i] = r.Styles.Header.Render(runewidth.FillLeft(name, cellWidth))
	}
	return strings.Join(cols, " ")
}

// Month renders one grid. The cell for focus, if any, is highlighted.
func (r *Renderer) Month(grid calendar.MonthGrid, focus time.Time) string {
	lines := make([]string, 0, len(grid.Weeks)+2)
	lines = append(lines, r.Styles.Caption.Render(center(r.Caption(grid.Month), Width)))
	lines = append(lines, r.Header())

	for _, week := range grid.Weeks {
		cols := make([]string, 0, calendar.DaysPerWeek)
		for _, cell := range week {
			cols = append(cols, r.cell(cell, focus))
		}
		lines = append(lines, strings.Join(cols, " "))
	}
	return strings.Join(lines, "\n")
}

// Months renders grids side by side
func (r *Renderer) Months(grids []calendar.MonthGrid, focus time.Time) string {
	blocks := make([]string, 0, 2*len(grids))
	for i, g := range grids {
		if i > 0 {
			blocks = append(blocks, monthGap)
		}
		blocks = append(blocks, r.Month(g, focus))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (r *Renderer) cell(cell calendar.DayCell, focus time.Time) string {
	if cell.IsInert {
		return strings.Repeat(" ", cellWidth)
	}

	text := runewidth.FillLeft(fmt.Sprintf("%d", cell.Date.Day()), cellWidth)
	st := r.Styles.For(cell.Modifiers)
	if cell.Focusable() && !focus.IsZero() && dateutil.IsSameDay(cell.Date, focus) {
		st = r.Styles.Focused.Inherit(st)
	}
	return st.Render(text)
}

func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
