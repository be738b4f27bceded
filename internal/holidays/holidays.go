package holidays

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/daypicker/internal/modifier"
)

// DayType is the kind of day a source reports
type DayType string

const (
	DayTypeWorkday   DayType = "workday"
	DayTypeWeekend   DayType = "weekend"
	DayTypeHoliday   DayType = "holiday"
	DayTypeShortened DayType = "shortened"
)

// ErrNotFound is returned by a source that knows nothing about a date
var ErrNotFound = errors.New("day not found in calendar")

// Day is one entry of a holiday calendar
type Day struct {
	Date time.Time
	Type DayType
	Note string
}

// Source looks up calendar information for a single date
type Source interface {
	Lookup(date time.Time) (*Day, error)
}

// ParseDayType parses one of workday, weekend, holiday, shortened
func ParseDayType(s string) (DayType, error) {
	switch t := DayType(s); t {
	case DayTypeWorkday, DayTypeWeekend, DayTypeHoliday, DayTypeShortened:
		return t, nil
	default:
		return "", fmt.Errorf("unknown day type %q", s)
	}
}

// Predicate adapts a source into a modifier predicate matching days of the given types.
// Unknown days never match; any other lookup failure is reported to the caller.
func Predicate(src Source, types ...DayType) modifier.Predicate {
	return func(date time.Time) (bool, error) {
		day, err := src.Lookup(date)
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		for _, t := range types {
			if day.Type == t {
				return true, nil
			}
		}
		return false, nil
	}
}

func dayKey(date time.Time) string {
	return date.Format("2006-01-02")
}
