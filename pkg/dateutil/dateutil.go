package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// Month identifies a calendar month without a day component
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month the given date belongs to
func MonthOf(date time.Time) Month {
	return Month{Year: date.Year(), Month: date.Month()}
}

// Start returns the first day of the month
func (m Month) Start() time.Time {
	return StartOfMonth(m.Year, m.Month)
}

// Add returns the month n months away (n may be negative)
func (m Month) Add(n int) Month {
	return MonthOf(AddMonths(m.Start(), n))
}

// Index returns a monotonic month number, handy for comparisons and distances
func (m Month) Index() int {
	return m.Year*12 + int(m.Month) - 1
}

// Before reports whether m is earlier than other
func (m Month) Before(other Month) bool {
	return m.Index() < other.Index()
}

// After reports whether m is later than other
func (m Month) After(other Month) bool {
	return m.Index() > other.Index()
}

// IsZero reports whether the month is unset
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Contains reports whether the date falls within the month
func (m Month) Contains(date time.Time) bool {
	return date.Year() == m.Year && date.Month() == m.Month
}

// String formats the month as YYYY-MM
func (m Month) String() string {
	return fmt.Sprintf("%d-%02d", m.Year, int(m.Month))
}

// Date returns the calendar date at 00:00 UTC
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize drops the time of day and location, keeping the calendar date as seen in date's location
func Normalize(date time.Time) time.Time {
	return Date(date.Year(), date.Month(), date.Day())
}

// DaysInMonth returns the number of days in the month, leap years included
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfMonth returns the first day of the month
func StartOfMonth(year int, month time.Month) time.Time {
	return Date(year, month, 1)
}

// AddMonths moves date by n months and normalizes the result to day 1
func AddMonths(date time.Time, n int) time.Time {
	return StartOfMonth(date.Year(), date.Month()+time.Month(n))
}

// WeekdayIndex returns the column of date in a week starting on weekStartsOn (0..6)
func WeekdayIndex(date time.Time, weekStartsOn time.Weekday) int {
	return (int(date.Weekday()) - int(weekStartsOn) + 7) % 7
}

// StartOfWeek returns the first day of the week containing date
func StartOfWeek(date time.Time, weekStartsOn time.Weekday) time.Time {
	return Normalize(date).AddDate(0, 0, -WeekdayIndex(date, weekStartsOn))
}

// EndOfWeek returns the last day of the week containing date
func EndOfWeek(date time.Time, weekStartsOn time.Weekday) time.Time {
	return StartOfWeek(date, weekStartsOn).AddDate(0, 0, 6)
}

// LeadingOutsideDays returns the days of the previous month shown before day 1
func LeadingOutsideDays(year int, month time.Month, weekStartsOn time.Weekday) []time.Time {
	first := StartOfMonth(year, month)
	n := WeekdayIndex(first, weekStartsOn)

	days := make([]time.Time, 0, n)
	for d := StartOfWeek(first, weekStartsOn); d.Before(first); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// TrailingOutsideDays returns the days of the next month needed to complete the last week
func TrailingOutsideDays(year int, month time.Month, weekStartsOn time.Weekday) []time.Time {
	last := Date(year, month, DaysInMonth(year, month))
	end := EndOfWeek(last, weekStartsOn)

	days := make([]time.Time, 0, 6)
	for d := last.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// IsSameMonth returns true if two dates are in the same month of the same year
func IsSameMonth(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() && date1.Month() == date2.Month()
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02.01.2006",
		"2006/01/02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, strings.TrimSpace(dateStr)); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", dateStr)
}

// ParseMonth parses YYYY-MM or MM.YYYY
func ParseMonth(monthStr string) (Month, error) {
	formats := []string{
		"2006-01",
		"01.2006",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, strings.TrimSpace(monthStr)); err == nil {
			return MonthOf(t), nil
		}
	}

	return Month{}, fmt.Errorf("unrecognized month %q", monthStr)
}

// ParseWeekday parses an English weekday name or its three-letter abbreviation
func ParseWeekday(name string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		full := strings.ToLower(wd.String())
		if key == full || key == full[:3] {
			return wd, nil
		}
	}
	return time.Sunday, fmt.Errorf("unrecognized weekday %q", name)
}

// Today returns today's date (00:00 UTC, calendar date taken from local time)
func Today() time.Time {
	return Normalize(time.Now())
}
