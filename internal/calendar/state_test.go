package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/daypicker/pkg/dateutil"
)

func newState(t *testing.T, initial time.Time, months int) *State {
	t.Helper()
	s, err := NewState(initial, months, true, nil)
	require.NoError(t, err)
	return s
}

func TestNewStateNormalizesAnchor(t *testing.T) {
	s := newState(t, time.Date(2015, time.December, 5, 13, 45, 0, 0, time.UTC), 4)

	assert.Equal(t, dateutil.Date(2015, time.December, 1), s.CurrentMonth())
	assert.Equal(t, []dateutil.Month{
		{Year: 2015, Month: time.December},
		{Year: 2016, Month: time.January},
		{Year: 2016, Month: time.February},
		{Year: 2016, Month: time.March},
	}, s.Months())
}

func TestNewStateRejectsInvalidMonthCount(t *testing.T) {
	_, err := NewState(dateutil.Date(2015, time.July, 1), 0, true, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestShowNextMonthAdvancesByWindow(t *testing.T) {
	s := newState(t, dateutil.Date(2015, time.August, 1), 2)

	var events []string
	s.OnMonthChange(func(m dateutil.Month) { events = append(events, "change:"+m.String()) })

	ok := s.ShowNextMonth(func() { events = append(events, "callback") })
	require.True(t, ok)
	assert.Equal(t, dateutil.Date(2015, time.October, 1), s.CurrentMonth())
	assert.Equal(t, []string{"change:2015-10", "callback"}, events)
}

func TestShowPreviousMonthMovesBackByWindow(t *testing.T) {
	s := newState(t, dateutil.Date(2015, time.August, 1), 2)

	calls := 0
	changes := 0
	s.OnMonthChange(func(dateutil.Month) { changes++ })

	require.True(t, s.ShowPreviousMonth(func() { calls++ }))
	assert.Equal(t, dateutil.Date(2015, time.June, 1), s.CurrentMonth())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, changes)
}

func TestSingleMonthStepsAcrossYears(t *testing.T) {
	s := newState(t, dateutil.Date(2015, time.December, 5), 1)

	require.True(t, s.ShowNextMonth(nil))
	assert.Equal(t, dateutil.Date(2016, time.January, 1), s.CurrentMonth())

	require.True(t, s.ShowPreviousMonth(nil))
	require.True(t, s.ShowPreviousMonth(nil))
	assert.Equal(t, dateutil.Date(2015, time.November, 1), s.CurrentMonth())
}

func TestShowMonth(t *testing.T) {
	s := newState(t, dateutil.Date(2015, time.July, 1), 1)

	var got []dateutil.Month
	s.OnMonthChange(func(m dateutil.Month) { got = append(got, m) })

	s.ShowMonth(time.Date(2016, time.September, 17, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, dateutil.Date(2016, time.September, 1), s.CurrentMonth())
	assert.Equal(t, []dateutil.Month{{Year: 2016, Month: time.September}}, got)
}

func TestNavigationGuards(t *testing.T) {
	t.Run("bound policy", func(t *testing.T) {
		policy := MonthRange{
			From: dateutil.Month{Year: 2015, Month: time.November},
			To:   dateutil.Month{Year: 2016, Month: time.January},
		}
		s, err := NewState(dateutil.Date(2015, time.December, 1), 2, true, policy)
		require.NoError(t, err)

		changes, calls := 0, 0
		s.OnMonthChange(func(dateutil.Month) { changes++ })

		assert.False(t, s.ShowNextMonth(func() { calls++ }))
		assert.False(t, s.ShowPreviousMonth(func() { calls++ }))
		assert.Equal(t, dateutil.Date(2015, time.December, 1), s.CurrentMonth())
		assert.Zero(t, changes)
		assert.Zero(t, calls)

		// programmatic jumps ignore the policy
		s.ShowMonth(dateutil.Date(2020, time.May, 1))
		assert.Equal(t, 1, changes)
	})

	t.Run("month changes disabled", func(t *testing.T) {
		s, err := NewState(dateutil.Date(2015, time.December, 1), 1, false, nil)
		require.NoError(t, err)

		assert.False(t, s.ShowNextMonth(nil))
		assert.False(t, s.ShowPreviousMonth(nil))
		assert.Equal(t, dateutil.Date(2015, time.December, 1), s.CurrentMonth())

		s.ShowMonth(dateutil.Date(2016, time.February, 1))
		assert.Equal(t, dateutil.Date(2016, time.February, 1), s.CurrentMonth())
	})
}

func TestMonthRange(t *testing.T) {
	r := MonthRange{To: dateutil.Month{Year: 2015, Month: time.December}}

	assert.True(t, r.CanNavigateForward(Window{Anchor: dateutil.Month{Year: 2015, Month: time.November}, Months: 2}))
	assert.False(t, r.CanNavigateForward(Window{Anchor: dateutil.Month{Year: 2015, Month: time.December}, Months: 2}))
	assert.True(t, r.CanNavigateBackward(Window{Anchor: dateutil.Month{Year: 1900, Month: time.January}, Months: 1}))
}

func TestSetNumberOfMonthsKeepsAnchor(t *testing.T) {
	s := newState(t, dateutil.Date(2015, time.July, 1), 1)

	require.NoError(t, s.SetNumberOfMonths(3))
	assert.Equal(t, dateutil.Date(2015, time.July, 1), s.CurrentMonth())
	assert.Len(t, s.Months(), 3)

	assert.ErrorIs(t, s.SetNumberOfMonths(0), ErrInvalidConfig)
	assert.Equal(t, 3, s.NumberOfMonths())
}

func TestResetDoesNotNotify(t *testing.T) {
	s := newState(t, dateutil.Date(2015, time.December, 10), 1)
	s.OnMonthChange(func(dateutil.Month) { t.Fatal("unexpected month change") })

	s.Reset(dateutil.Date(2015, time.September, 10))
	assert.Equal(t, dateutil.Date(2015, time.September, 1), s.CurrentMonth())
}

func TestShowMonthThenPreviousRestoresAnchor(t *testing.T) {
	for months := 1; months <= 3; months++ {
		for i := 0; i < 36; i++ {
			anchor := dateutil.AddMonths(dateutil.Date(2014, time.January, 1), i)
			s := newState(t, anchor, months)

			next := dateutil.AddMonths(anchor, months)
			s.ShowMonth(next)
			require.True(t, s.ShowPreviousMonth(nil))
			require.Equal(t, anchor, s.CurrentMonth(), "anchor %s, %d months", anchor.Format("2006-01"), months)
		}
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{Anchor: december2015, Months: 2}

	assert.True(t, w.Contains(dateutil.Date(2015, time.December, 31)))
	assert.True(t, w.Contains(dateutil.Date(2016, time.January, 1)))
	assert.False(t, w.Contains(dateutil.Date(2016, time.February, 1)))
	assert.False(t, w.Contains(dateutil.Date(2015, time.November, 30)))
	assert.Equal(t, dateutil.Month{Year: 2016, Month: time.January}, w.Last())
}
