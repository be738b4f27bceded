package calendar

import (
	"fmt"
	"time"

	"github.com/username/daypicker/pkg/dateutil"
)

// Window is a run of consecutive rendered months
type Window struct {
	Anchor dateutil.Month
	Months int
}

// Last returns the final month of the window
func (w Window) Last() dateutil.Month {
	return w.Anchor.Add(w.Months - 1)
}

// Contains reports whether date falls inside one of the window's months
func (w Window) Contains(date time.Time) bool {
	m := dateutil.MonthOf(date)
	return !m.Before(w.Anchor) && !m.After(w.Last())
}

// Policy decides whether a next/previous transition to the given window is allowed
type Policy interface {
	CanNavigateForward(to Window) bool
	CanNavigateBackward(to Window) bool
}

// MonthRange bounds navigation to [From, To]; a zero bound is open
type MonthRange struct {
	From dateutil.Month
	To   dateutil.Month
}

// CanNavigateForward allows moves whose last month stays within To
func (r MonthRange) CanNavigateForward(to Window) bool {
	return r.To.IsZero() || !to.Last().After(r.To)
}

// CanNavigateBackward allows moves whose anchor stays within From
func (r MonthRange) CanNavigateBackward(to Window) bool {
	return r.From.IsZero() || !to.Anchor.Before(r.From)
}

// MonthChangeFunc is notified once per committed transition with the new anchor
type MonthChangeFunc func(anchor dateutil.Month)

// State is the navigation state machine of a picker.
// Next/previous moves advance by the number of rendered months, so the new window
// starts right after (or ends right before) the current one.
type State struct {
	current        dateutil.Month
	numberOfMonths int
	canChangeMonth bool
	policy         Policy
	onMonthChange  MonthChangeFunc
}

// NewState creates a state anchored at the month of initial
func NewState(initial time.Time, numberOfMonths int, canChangeMonth bool, policy Policy) (*State, error) {
	if numberOfMonths < 1 {
		return nil, fmt.Errorf("%w: number of months must be at least 1, got %d", ErrInvalidConfig, numberOfMonths)
	}
	if policy == nil {
		policy = MonthRange{}
	}
	return &State{
		current:        dateutil.MonthOf(initial),
		numberOfMonths: numberOfMonths,
		canChangeMonth: canChangeMonth,
		policy:         policy,
	}, nil
}

// OnMonthChange registers the month-change listener
func (s *State) OnMonthChange(fn MonthChangeFunc) {
	s.onMonthChange = fn
}

// CurrentMonth returns the first day of the anchor month
func (s *State) CurrentMonth() time.Time {
	return s.current.Start()
}

// Anchor returns the anchor month
func (s *State) Anchor() dateutil.Month {
	return s.current
}

// NumberOfMonths returns how many months are rendered
func (s *State) NumberOfMonths() int {
	return s.numberOfMonths
}

// CanChangeMonth reports whether next/previous navigation is enabled
func (s *State) CanChangeMonth() bool {
	return s.canChangeMonth
}

// Window returns the currently rendered months
func (s *State) Window() Window {
	return Window{Anchor: s.current, Months: s.numberOfMonths}
}

// Months returns the anchor and the following months, in order
func (s *State) Months() []dateutil.Month {
	months := make([]dateutil.Month, s.numberOfMonths)
	for i := range months {
		months[i] = s.current.Add(i)
	}
	return months
}

// SetNumberOfMonths changes the window size without moving the anchor
func (s *State) SetNumberOfMonths(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: number of months must be at least 1, got %d", ErrInvalidConfig, n)
	}
	s.numberOfMonths = n
	return nil
}

// SetCanChangeMonth toggles next/previous navigation
func (s *State) SetCanChangeMonth(enabled bool) {
	s.canChangeMonth = enabled
}

// SetPolicy replaces the bound policy; nil means unbounded
func (s *State) SetPolicy(policy Policy) {
	if policy == nil {
		policy = MonthRange{}
	}
	s.policy = policy
}

// Reset re-anchors the state without notifying listeners
func (s *State) Reset(month time.Time) {
	s.current = dateutil.MonthOf(month)
}

// ShowMonth anchors the window at the month of target. It always succeeds.
func (s *State) ShowMonth(target time.Time) {
	s.commit(dateutil.MonthOf(target), nil)
}

// ShowNextMonth moves the window forward. It returns false, without notifying,
// when month changes are disabled or the policy rejects the move.
func (s *State) ShowNextMonth(callback func()) bool {
	to := Window{Anchor: s.current.Add(s.numberOfMonths), Months: s.numberOfMonths}
	if !s.canChangeMonth || !s.policy.CanNavigateForward(to) {
		return false
	}
	s.commit(to.Anchor, callback)
	return true
}

// ShowPreviousMonth moves the window backward; see ShowNextMonth
func (s *State) ShowPreviousMonth(callback func()) bool {
	to := Window{Anchor: s.current.Add(-s.numberOfMonths), Months: s.numberOfMonths}
	if !s.canChangeMonth || !s.policy.CanNavigateBackward(to) {
		return false
	}
	s.commit(to.Anchor, callback)
	return true
}

func (s *State) commit(anchor dateutil.Month, callback func()) {
	s.current = anchor
	if s.onMonthChange != nil {
		s.onMonthChange(anchor)
	}
	if callback != nil {
		callback()
	}
}
