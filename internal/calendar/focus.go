package calendar

import (
	"fmt"
	"time"

	"github.com/username/daypicker/pkg/dateutil"
)

// Direction of a keyboard focus move
type Direction int

const (
	Previous Direction = iota
	Next
)

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

// FocusMove is the outcome of a focus move
type FocusMove struct {
	Target time.Time
	// RequiresMonthTransition is set when Target lies outside the rendered months;
	// the caller must show the adjacent months before focusing it.
	RequiresMonthTransition bool
}

type coord struct {
	grid, week, day int
}

// MoveFocus computes the next focus target from focused among the rendered grids.
// Outside cells are never targets; the walk skips over them.
func MoveFocus(dir Direction, focused time.Time, grids []MonthGrid) (FocusMove, error) {
	at, ok := locate(focused, grids)
	if !ok {
		return FocusMove{}, fmt.Errorf("%w: %s", ErrFocusNotFound, focused.Format("2006-01-02"))
	}

	if dir == Previous {
		return movePrevious(at, grids), nil
	}
	return moveNext(at, grids), nil
}

func locate(date time.Time, grids []MonthGrid) (coord, bool) {
	for g := range grids {
		if w, d, ok := grids[g].Find(date); ok {
			return coord{grid: g, week: w, day: d}, true
		}
	}
	return coord{}, false
}

func movePrevious(at coord, grids []MonthGrid) FocusMove {
	weeks := grids[at.grid].Weeks

	// same week
	for d := at.day - 1; d >= 0; d-- {
		if cell := weeks[at.week][d]; cell.Focusable() {
			return FocusMove{Target: cell.Date}
		}
	}
	// earlier week of the same month
	for w := at.week - 1; w >= 0; w-- {
		if cell, ok := lastFocusable(weeks[w]); ok {
			return FocusMove{Target: cell.Date}
		}
	}
	// an earlier rendered month
	for g := at.grid - 1; g >= 0; g-- {
		for w := len(grids[g].Weeks) - 1; w >= 0; w-- {
			if cell, ok := lastFocusable(grids[g].Weeks[w]); ok {
				return FocusMove{Target: cell.Date}
			}
		}
	}

	first := grids[0].Month.Start()
	return FocusMove{Target: first.AddDate(0, 0, -1), RequiresMonthTransition: true}
}

func moveNext(at coord, grids []MonthGrid) FocusMove {
	weeks := grids[at.grid].Weeks

	for d := at.day + 1; d < DaysPerWeek; d++ {
		if cell := weeks[at.week][d]; cell.Focusable() {
			return FocusMove{Target: cell.Date}
		}
	}
	for w := at.week + 1; w < len(weeks); w++ {
		if cell, ok := firstFocusable(weeks[w]); ok {
			return FocusMove{Target: cell.Date}
		}
	}
	for g := at.grid + 1; g < len(grids); g++ {
		for _, week := range grids[g].Weeks {
			if cell, ok := firstFocusable(week); ok {
				return FocusMove{Target: cell.Date}
			}
		}
	}

	last := grids[len(grids)-1].Month
	return FocusMove{Target: last.Add(1).Start(), RequiresMonthTransition: true}
}

func firstFocusable(week Week) (DayCell, bool) {
	for _, cell := range week {
		if cell.Focusable() {
			return cell, true
		}
	}
	return DayCell{}, false
}

func lastFocusable(week Week) (DayCell, bool) {
	for d := DaysPerWeek - 1; d >= 0; d-- {
		if week[d].Focusable() {
			return week[d], true
		}
	}
	return DayCell{}, false
}

// Focusable reports whether date is a focus target in the rendered grids
func Focusable(date time.Time, grids []MonthGrid) bool {
	_, ok := locate(dateutil.Normalize(date), grids)
	return ok
}
