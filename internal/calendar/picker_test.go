package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/daypicker/internal/modifier"
	"github.com/username/daypicker/pkg/dateutil"
)

func fixedClock(date time.Time) func() time.Time {
	return func() time.Time { return date }
}

func newPicker(t *testing.T, initial time.Time, mutate func(*Options)) *Picker {
	t.Helper()
	opts := DefaultOptions()
	opts.InitialMonth = initial
	opts.Clock = fixedClock(someday)
	if mutate != nil {
		mutate(&opts)
	}
	p, err := NewPicker(opts, zap.NewNop())
	require.NoError(t, err)
	return p
}

func TestPickerDefaults(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 1, opts.NumberOfMonths)
	assert.Equal(t, "en", opts.Locale)
	assert.False(t, opts.EnableOutsideDays)
	assert.True(t, opts.CanChangeMonth)

	today := time.Date(2015, time.March, 18, 16, 0, 0, 0, time.Local)
	opts.Clock = fixedClock(today)
	p, err := NewPicker(opts, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, dateutil.Date(2015, time.March, 1), p.CurrentMonth())
	assert.Equal(t, time.Sunday, p.WeekStartsOn())
	assert.False(t, p.InteractionEnabled())

	grids, err := p.Months()
	require.NoError(t, err)
	require.Len(t, grids, 1)

	cell, err := p.Cell(dateutil.Date(2015, time.March, 18))
	require.NoError(t, err)
	assert.True(t, cell.Has(modifier.Today))
}

func TestPickerRejectsInvalidMonthCount(t *testing.T) {
	opts := DefaultOptions()
	opts.NumberOfMonths = 0
	_, err := NewPicker(opts, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestPickerLocaleWeekStart(t *testing.T) {
	p := newPicker(t, dateutil.Date(2015, time.July, 1), func(o *Options) { o.Locale = "de-DE" })
	assert.Equal(t, time.Monday, p.WeekStartsOn())

	grids, err := p.Months()
	require.NoError(t, err)
	// July 1 2015 is a Wednesday: two leading slots on Monday-first weeks
	assert.Equal(t, dateutil.Date(2015, time.July, 1), grids[0].Weeks[0][2].Date)

	sat := time.Saturday
	p = newPicker(t, dateutil.Date(2015, time.July, 1), func(o *Options) {
		o.Locale = "de-DE"
		o.WeekStartsOn = &sat
	})
	assert.Equal(t, time.Saturday, p.WeekStartsOn())
}

func TestPickerCaptionsAcrossYears(t *testing.T) {
	p := newPicker(t, dateutil.Date(2015, time.December, 5), func(o *Options) { o.NumberOfMonths = 4 })

	grids, err := p.Months()
	require.NoError(t, err)

	var captions []string
	for _, g := range grids {
		captions = append(captions, g.Month.String())
	}
	assert.Equal(t, []string{"2015-12", "2016-01", "2016-02", "2016-03"}, captions)
}

func TestPickerShowNextMonthNotifies(t *testing.T) {
	p := newPicker(t, dateutil.Date(2015, time.August, 1), func(o *Options) { o.NumberOfMonths = 2 })

	var changes []dateutil.Month
	p.OnMonthChange(func(m dateutil.Month) { changes = append(changes, m) })

	called := 0
	require.True(t, p.ShowNextMonth(func() {
		called++
		// the transition is committed before the callback runs
		assert.Equal(t, dateutil.Date(2015, time.October, 1), p.CurrentMonth())
	}))
	assert.Equal(t, 1, called)
	assert.Equal(t, []dateutil.Month{{Year: 2015, Month: time.October}}, changes)

	require.True(t, p.ShowPreviousMonth(nil))
	require.True(t, p.ShowPreviousMonth(nil))
	assert.Equal(t, dateutil.Date(2015, time.June, 1), p.CurrentMonth())

	p.ShowMonth(dateutil.Date(2016, time.September, 1))
	assert.Equal(t, dateutil.Date(2016, time.September, 1), p.CurrentMonth())
	assert.Len(t, changes, 4)
}

func TestPickerFocusAcrossMonths(t *testing.T) {
	p := newPicker(t, dateutil.Date(2015, time.June, 1), nil)

	var changes []dateutil.Month
	p.OnMonthChange(func(m dateutil.Month) { changes = append(changes, m) })

	got, err := p.FocusPreviousDay(dateutil.Date(2015, time.June, 2))
	require.NoError(t, err)
	assert.Equal(t, dateutil.Date(2015, time.June, 1), got)
	assert.Empty(t, changes)

	got, err = p.FocusPreviousDay(dateutil.Date(2015, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, dateutil.Date(2015, time.May, 31), got)
	assert.Equal(t, dateutil.Date(2015, time.May, 1), p.CurrentMonth())
	assert.Equal(t, []dateutil.Month{{Year: 2015, Month: time.May}}, changes)

	got, err = p.FocusNextDay(got)
	require.NoError(t, err)
	assert.Equal(t, dateutil.Date(2015, time.June, 1), got)
	assert.Equal(t, dateutil.Date(2015, time.June, 1), p.CurrentMonth())

	got, err = p.FocusNextDay(dateutil.Date(2015, time.June, 30))
	require.NoError(t, err)
	assert.Equal(t, dateutil.Date(2015, time.July, 1), got)
	assert.Equal(t, dateutil.Date(2015, time.July, 1), p.CurrentMonth())
}

func TestPickerFocusRoundTrip(t *testing.T) {
	for _, months := range []int{1, 2, 3} {
		p := newPicker(t, dateutil.Date(2015, time.January, 1), func(o *Options) { o.NumberOfMonths = months })

		focus := dateutil.Date(2015, time.January, 1)
		for i := 0; i < 400; i++ {
			next, err := p.FocusNextDay(focus)
			require.NoError(t, err)
			require.Equal(t, focus.AddDate(0, 0, 1), next)

			back, err := p.FocusPreviousDay(next)
			require.NoError(t, err)
			require.Equal(t, focus, back, "%d months, from %s", months, focus.Format("2006-01-02"))

			focus, err = p.FocusNextDay(back)
			require.NoError(t, err)
			require.True(t, p.Window().Contains(focus))
		}
	}
}

func TestPickerFocusStopsAtBounds(t *testing.T) {
	p := newPicker(t, dateutil.Date(2015, time.June, 1), func(o *Options) {
		o.Policy = MonthRange{To: dateutil.Month{Year: 2015, Month: time.June}}
	})
	p.OnMonthChange(func(dateutil.Month) { t.Fatal("unexpected month change") })

	got, err := p.FocusNextDay(dateutil.Date(2015, time.June, 30))
	require.NoError(t, err)
	assert.Equal(t, dateutil.Date(2015, time.June, 30), got)
	assert.Equal(t, dateutil.Date(2015, time.June, 1), p.CurrentMonth())
}

func TestPickerNonInteractiveMonthChange(t *testing.T) {
	p := newPicker(t, dateutil.Date(2015, time.December, 5), func(o *Options) { o.CanChangeMonth = false })

	assert.False(t, p.HandleRootKey(KeyLeft))
	assert.False(t, p.HandleRootKey(KeyRight))
	assert.False(t, p.ShowNextMonth(nil))

	got, err := p.FocusPreviousDay(dateutil.Date(2015, time.December, 1))
	require.NoError(t, err)
	assert.Equal(t, dateutil.Date(2015, time.December, 1), got)

	p.ShowMonth(dateutil.Date(2016, time.January, 1))
	assert.Equal(t, dateutil.Date(2016, time.January, 1), p.CurrentMonth())
}

func TestPickerRootKeys(t *testing.T) {
	p := newPicker(t, dateutil.Date(2015, time.June, 1), nil)

	assert.False(t, p.HandleRootKey(KeyEnter))
	assert.Equal(t, dateutil.Date(2015, time.June, 1), p.CurrentMonth())

	assert.True(t, p.HandleRootKey(KeyLeft))
	assert.Equal(t, dateutil.Date(2015, time.May, 1), p.CurrentMonth())

	assert.True(t, p.HandleRootKey(KeyRight))
	assert.True(t, p.HandleRootKey(KeyRight))
	assert.Equal(t, dateutil.Date(2015, time.July, 1), p.CurrentMonth())
}

func TestPickerDayHandlers(t *testing.T) {
	firstDay := dateutil.Date(2015, time.December, 1)
	set := modifier.NewSet()
	require.NoError(t, set.Add("firstDay", modifier.Dates(firstDay)))

	p := newPicker(t, dateutil.Date(2015, time.December, 5), func(o *Options) { o.Modifiers = set })

	var events []DayEvent
	record := func(e DayEvent) { events = append(events, e) }
	for _, kind := range []Interaction{Click, MouseEnter, MouseLeave, TouchTap} {
		p.OnDay(kind, record)
	}
	assert.True(t, p.InteractionEnabled())

	grids, err := p.Months()
	require.NoError(t, err)
	cell := grids[0].Days()[2]
	require.Equal(t, firstDay, cell.Date)

	for _, kind := range []Interaction{Click, MouseEnter, MouseLeave, TouchTap} {
		assert.True(t, p.HandleDay(cell, kind))
	}
	require.Len(t, events, 4)
	for i, kind := range []Interaction{Click, MouseEnter, MouseLeave, TouchTap} {
		assert.Equal(t, kind, events[i].Interaction)
		assert.Equal(t, firstDay, events[i].Date)
		assert.Equal(t, []string{"firstDay"}, events[i].Modifiers)
	}

	// inert leading slots never fire
	events = nil
	inert := grids[0].Days()[0]
	require.True(t, inert.IsInert)
	for _, kind := range []Interaction{Click, MouseEnter, MouseLeave, TouchTap} {
		assert.False(t, p.HandleDay(inert, kind))
	}
	assert.Empty(t, events)
}

func TestPickerDayHandlersOptional(t *testing.T) {
	p := newPicker(t, dateutil.Date(2015, time.December, 5), nil)

	cell, err := p.Cell(dateutil.Date(2015, time.December, 1))
	require.NoError(t, err)
	assert.False(t, p.HandleDay(cell, Click))

	p.OnDay(Click, func(DayEvent) {})
	assert.True(t, p.InteractionEnabled())
	p.OnDay(Click, nil)
	assert.False(t, p.InteractionEnabled())
}

func TestPickerOutsideDayActivationChangesMonth(t *testing.T) {
	for _, kind := range []Interaction{Click, TouchTap} {
		t.Run(kind.String(), func(t *testing.T) {
			p := newPicker(t, dateutil.Date(2015, time.July, 5), func(o *Options) { o.EnableOutsideDays = true })

			fired := false
			p.OnDay(kind, func(e DayEvent) {
				fired = true
				assert.Equal(t, dateutil.Date(2015, time.June, 28), e.Date)
				assert.Contains(t, e.Modifiers, modifier.Outside)
			})

			grids, err := p.Months()
			require.NoError(t, err)
			assert.True(t, p.HandleDay(grids[0].Days()[0], kind))
			assert.True(t, fired)
			assert.Equal(t, time.June, p.CurrentMonth().Month())
		})
	}

	t.Run("hover does not navigate", func(t *testing.T) {
		p := newPicker(t, dateutil.Date(2015, time.July, 5), func(o *Options) { o.EnableOutsideDays = true })
		grids, err := p.Months()
		require.NoError(t, err)

		p.HandleDay(grids[0].Days()[0], MouseEnter)
		assert.Equal(t, time.July, p.CurrentMonth().Month())
	})
}

func TestPickerDayKeys(t *testing.T) {
	p := newPicker(t, dateutil.Date(2015, time.June, 1), nil)

	var kinds []Interaction
	p.OnDay(Click, func(e DayEvent) { kinds = append(kinds, e.Interaction) })
	p.OnDay(TouchTap, func(e DayEvent) { kinds = append(kinds, e.Interaction) })

	for _, key := range []Key{KeyEnter, KeySpace} {
		got, err := p.HandleDayKey(dateutil.Date(2015, time.June, 10), key)
		require.NoError(t, err)
		assert.Equal(t, dateutil.Date(2015, time.June, 10), got)
	}
	assert.Equal(t, []Interaction{Click, TouchTap, Click, TouchTap}, kinds)

	got, err := p.HandleDayKey(dateutil.Date(2015, time.June, 10), KeyLeft)
	require.NoError(t, err)
	assert.Equal(t, dateutil.Date(2015, time.June, 9), got)

	got, err = p.HandleDayKey(dateutil.Date(2015, time.June, 10), KeyRight)
	require.NoError(t, err)
	assert.Equal(t, dateutil.Date(2015, time.June, 11), got)

	got, err = p.HandleDayKey(dateutil.Date(2015, time.June, 10), KeyOther)
	require.NoError(t, err)
	assert.Equal(t, dateutil.Date(2015, time.June, 10), got)

	_, err = p.HandleDayKey(dateutil.Date(2015, time.August, 10), KeyEnter)
	assert.ErrorIs(t, err, ErrFocusNotFound)
}

func TestPickerCaptionClick(t *testing.T) {
	p := newPicker(t, dateutil.Date(2015, time.June, 1), nil)

	var got dateutil.Month
	p.OnCaptionClick(func(m dateutil.Month) { got = m })
	p.CaptionClick(june2015)
	assert.Equal(t, june2015, got)
}

func TestPickerCachesGrids(t *testing.T) {
	today := dateutil.Date(2015, time.June, 10)
	p := newPicker(t, dateutil.Date(2015, time.June, 1), func(o *Options) {
		o.Clock = func() time.Time { return today }
	})

	first, err := p.Months()
	require.NoError(t, err)
	again, err := p.Months()
	require.NoError(t, err)
	assert.Same(t, &first[0].Weeks[0], &again[0].Weeks[0])

	// a new "today" sample invalidates the grids
	today = dateutil.Date(2015, time.June, 11)
	rebuilt, err := p.Months()
	require.NoError(t, err)
	assert.NotSame(t, &first[0].Weeks[0], &rebuilt[0].Weeks[0])

	cell, err := p.Cell(today)
	require.NoError(t, err)
	assert.True(t, cell.Has(modifier.Today))
}

func TestPickerKeepsLastGoodGrids(t *testing.T) {
	boom := errors.New("holiday service unavailable")
	failing := false

	set := modifier.NewSet()
	require.NoError(t, set.Add("holiday", func(time.Time) (bool, error) {
		if failing {
			return false, boom
		}
		return false, nil
	}))

	p := newPicker(t, dateutil.Date(2015, time.June, 1), func(o *Options) { o.Modifiers = set })

	good, err := p.Months()
	require.NoError(t, err)

	failing = true
	require.True(t, p.ShowNextMonth(nil))

	grids, err := p.Months()
	var evalErr *modifier.EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, good, grids)

	_, err = p.FocusNextDay(dateutil.Date(2015, time.July, 1))
	assert.ErrorIs(t, err, boom)
}

func TestPickerSetOptions(t *testing.T) {
	p := newPicker(t, dateutil.Date(2015, time.December, 10), nil)
	p.OnMonthChange(func(dateutil.Month) { t.Fatal("reconfiguring must not notify") })

	opts := DefaultOptions()
	opts.InitialMonth = dateutil.Date(2015, time.December, 10)
	opts.Clock = fixedClock(someday)
	opts.NumberOfMonths = 3
	require.NoError(t, p.SetOptions(opts))
	assert.Equal(t, dateutil.Date(2015, time.December, 1), p.CurrentMonth())
	assert.Equal(t, 3, p.Window().Months)

	opts.InitialMonth = dateutil.Date(2015, time.September, 10)
	require.NoError(t, p.SetOptions(opts))
	assert.Equal(t, dateutil.Date(2015, time.September, 1), p.CurrentMonth())

	set := modifier.NewSet()
	require.NoError(t, set.Add("all", modifier.Func(func(time.Time) bool { return true })))
	opts.Modifiers = set
	require.NoError(t, p.SetOptions(opts))

	cell, err := p.Cell(dateutil.Date(2015, time.September, 2))
	require.NoError(t, err)
	assert.True(t, cell.Has("all"))

	opts.NumberOfMonths = 0
	assert.ErrorIs(t, p.SetOptions(opts), ErrInvalidConfig)
}
