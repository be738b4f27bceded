package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/daypicker/pkg/dateutil"
)

// DaysPerWeek is the fixed width of every grid row
const DaysPerWeek = 7

var (
	// ErrInvalidConfig is returned for configuration the picker cannot work with
	ErrInvalidConfig = errors.New("invalid calendar configuration")
	// ErrFocusNotFound is returned when the focused date is not a focusable cell of the rendered grids
	ErrFocusNotFound = errors.New("focused date is not rendered")
)

// FocusResolutionError reports a focus target that could not be found after the required month transition
type FocusResolutionError struct {
	Target time.Time
	Anchor dateutil.Month
}

func (e *FocusResolutionError) Error() string {
	return fmt.Sprintf("focus target %s not rendered after showing %s",
		e.Target.Format("2006-01-02"), e.Anchor)
}

// DayCell represents one position of a month grid
type DayCell struct {
	Date      time.Time // zero for inert cells
	Modifiers []string
	IsOutside bool // date belongs to an adjacent month, or the cell is an inert slot
	IsInert   bool // padding slot with no date and no interaction
}

// Focusable reports whether keyboard focus may land on the cell
func (c DayCell) Focusable() bool {
	return !c.IsOutside && !c.IsInert
}

// Interactive reports whether day events may fire for the cell
func (c DayCell) Interactive() bool {
	return !c.IsInert
}

// Has reports whether the cell carries the named modifier
func (c DayCell) Has(name string) bool {
	for _, m := range c.Modifiers {
		if m == name {
			return true
		}
	}
	return false
}

// Week is one row of a month grid
type Week [DaysPerWeek]DayCell

// MonthGrid is the computed layout of a single month
type MonthGrid struct {
	Month dateutil.Month
	Weeks []Week
}

// Find returns the coordinates of the in-month cell for date
func (g MonthGrid) Find(date time.Time) (week, day int, ok bool) {
	if !g.Month.Contains(date) {
		return 0, 0, false
	}
	for w := range g.Weeks {
		for d := range g.Weeks[w] {
			cell := g.Weeks[w][d]
			if cell.Focusable() && dateutil.IsSameDay(cell.Date, date) {
				return w, d, true
			}
		}
	}
	return 0, 0, false
}

// Days returns all cells in reading order
func (g MonthGrid) Days() []DayCell {
	cells := make([]DayCell, 0, len(g.Weeks)*DaysPerWeek)
	for _, w := range g.Weeks {
		cells = append(cells, w[:]...)
	}
	return cells
}
