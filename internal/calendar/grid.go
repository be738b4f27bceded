package calendar

import (
	"fmt"
	"time"

	"github.com/username/daypicker/internal/modifier"
	"github.com/username/daypicker/pkg/dateutil"
)

// GridOptions holds the inputs shared by every month of a render pass
type GridOptions struct {
	WeekStartsOn      time.Weekday
	Modifiers         *modifier.Set
	EnableOutsideDays bool
	Today             time.Time // sampled once per render pass
}

// BuildMonth computes the weeks and day cells of one month
func BuildMonth(owner dateutil.Month, opts GridOptions) (MonthGrid, error) {
	leading := dateutil.LeadingOutsideDays(owner.Year, owner.Month, opts.WeekStartsOn)
	trailing := dateutil.TrailingOutsideDays(owner.Year, owner.Month, opts.WeekStartsOn)
	days := dateutil.DaysInMonth(owner.Year, owner.Month)

	total := len(leading) + days + len(trailing)
	cells := make([]DayCell, 0, total)

	outside := func(date time.Time) (DayCell, error) {
		if !opts.EnableOutsideDays {
			return DayCell{IsOutside: true, IsInert: true}, nil
		}
		return classify(date, owner, opts, true)
	}

	for _, date := range leading {
		cell, err := outside(date)
		if err != nil {
			return MonthGrid{}, err
		}
		cells = append(cells, cell)
	}

	for day := 1; day <= days; day++ {
		cell, err := classify(dateutil.Date(owner.Year, owner.Month, day), owner, opts, false)
		if err != nil {
			return MonthGrid{}, err
		}
		cells = append(cells, cell)
	}

	for _, date := range trailing {
		cell, err := outside(date)
		if err != nil {
			return MonthGrid{}, err
		}
		cells = append(cells, cell)
	}

	grid := MonthGrid{
		Month: owner,
		Weeks: make([]Week, 0, total/DaysPerWeek),
	}
	for i := 0; i < len(cells); i += DaysPerWeek {
		var week Week
		copy(week[:], cells[i:i+DaysPerWeek])
		grid.Weeks = append(grid.Weeks, week)
	}

	return grid, nil
}

// BuildMonths computes n consecutive month grids starting at anchor
func BuildMonths(anchor dateutil.Month, n int, opts GridOptions) ([]MonthGrid, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: number of months must be at least 1, got %d", ErrInvalidConfig, n)
	}

	grids := make([]MonthGrid, 0, n)
	for i := 0; i < n; i++ {
		month := anchor.Add(i)
		grid, err := BuildMonth(month, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", month, err)
		}
		grids = append(grids, grid)
	}
	return grids, nil
}

func classify(date time.Time, owner dateutil.Month, opts GridOptions, isOutside bool) (DayCell, error) {
	names, err := modifier.Classify(date, opts.Modifiers, owner, opts.Today)
	if err != nil {
		return DayCell{}, err
	}
	return DayCell{
		Date:      date,
		Modifiers: names,
		IsOutside: isOutside,
	}, nil
}
