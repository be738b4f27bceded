package modifier

import (
	"time"

	"github.com/username/daypicker/pkg/dateutil"
)

// Func adapts an infallible check into a Predicate
func Func(fn func(day time.Time) bool) Predicate {
	return func(day time.Time) (bool, error) {
		return fn(day), nil
	}
}

// Weekdays matches any of the given weekdays
func Weekdays(days ...time.Weekday) Predicate {
	var mask [7]bool
	for _, d := range days {
		mask[d] = true
	}
	return Func(func(day time.Time) bool {
		return mask[day.Weekday()]
	})
}

// Weekend matches Saturdays and Sundays
func Weekend() Predicate {
	return Func(dateutil.IsWeekend)
}

// Dates matches exactly the given calendar dates
func Dates(dates ...time.Time) Predicate {
	set := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		set[dateutil.Normalize(d)] = struct{}{}
	}
	return Func(func(day time.Time) bool {
		_, ok := set[dateutil.Normalize(day)]
		return ok
	})
}

// FirstDayOfMonth matches day 1 of every month
func FirstDayOfMonth() Predicate {
	return Func(func(day time.Time) bool {
		return day.Day() == 1
	})
}

// Between matches dates in the inclusive range [from, to]
func Between(from, to time.Time) Predicate {
	from, to = dateutil.Normalize(from), dateutil.Normalize(to)
	return Func(func(day time.Time) bool {
		d := dateutil.Normalize(day)
		return !d.Before(from) && !d.After(to)
	})
}
