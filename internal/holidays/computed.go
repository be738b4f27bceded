package holidays

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/username/daypicker/pkg/dateutil"
)

// RegionNRW selects the public holidays of North Rhine-Westphalia
const RegionNRW = "nrw"

// ComputedSource derives public holidays from the calendar, without any data file
type ComputedSource struct {
	region string

	mu    sync.Mutex
	years map[int]map[string]*Day
}

// NewComputedSource creates a source for a supported region
func NewComputedSource(region string) (*ComputedSource, error) {
	region = strings.ToLower(strings.TrimSpace(region))
	if region != RegionNRW {
		return nil, fmt.Errorf("unsupported holiday region %q", region)
	}
	return &ComputedSource{
		region: region,
		years:  make(map[int]map[string]*Day),
	}, nil
}

// Lookup returns the public holiday on date
func (cs *ComputedSource) Lookup(date time.Time) (*Day, error) {
	cs.mu.Lock()
	year, ok := cs.years[date.Year()]
	if !ok {
		year = nrwHolidays(date.Year())
		cs.years[date.Year()] = year
	}
	cs.mu.Unlock()

	day, ok := year[dayKey(date)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, dayKey(date))
	}
	return day, nil
}

// nrwHolidays returns all public holidays in NRW for the given year
func nrwHolidays(year int) map[string]*Day {
	days := make(map[string]*Day)
	add := func(date time.Time, note string) {
		days[dayKey(date)] = &Day{Date: date, Type: DayTypeHoliday, Note: note}
	}

	// Fixed holidays
	add(dateutil.Date(year, time.January, 1), "Neujahr")
	add(dateutil.Date(year, time.May, 1), "Tag der Arbeit")
	add(dateutil.Date(year, time.October, 3), "Tag der Deutschen Einheit")
	add(dateutil.Date(year, time.November, 1), "Allerheiligen")
	add(dateutil.Date(year, time.December, 25), "1. Weihnachtstag")
	add(dateutil.Date(year, time.December, 26), "2. Weihnachtstag")

	// Easter-based holidays (movable)
	easter := Easter(year)
	add(easter.AddDate(0, 0, -2), "Karfreitag")
	add(easter.AddDate(0, 0, 1), "Ostermontag")
	add(easter.AddDate(0, 0, 39), "Christi Himmelfahrt")
	add(easter.AddDate(0, 0, 50), "Pfingstmontag")
	add(easter.AddDate(0, 0, 60), "Fronleichnam")

	return days
}

// Easter calculates Easter Sunday using the Meeus/Jones/Butcher algorithm
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return dateutil.Date(year, time.Month(month), day)
}
