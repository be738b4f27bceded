package modifier

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/daypicker/pkg/dateutil"
)

// Built-in modifier names, always evaluated before host modifiers
const (
	Today   = "today"
	Outside = "outside"
)

var (
	// ErrDuplicate is returned when a modifier name is registered twice
	ErrDuplicate = errors.New("duplicate modifier name")
	// ErrInvalidName is returned for empty or reserved modifier names
	ErrInvalidName = errors.New("invalid modifier name")
)

// Predicate decides whether a modifier applies to a date
type Predicate func(day time.Time) (bool, error)

// EvaluationError reports a predicate that failed while classifying a date
type EvaluationError struct {
	Name string
	Date time.Time
	Err  error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("modifier %q failed for %s: %v", e.Name, e.Date.Format("2006-01-02"), e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

type entry struct {
	name      string
	predicate Predicate
}

// Set is an ordered registry of named predicates
type Set struct {
	entries []entry
	index   map[string]int
}

// NewSet creates an empty modifier set
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Add registers a predicate under name. Names must be unique and must not shadow a built-in.
func (s *Set) Add(name string, predicate Predicate) error {
	if name == "" || name == Today || name == Outside {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if predicate == nil {
		return fmt.Errorf("%w: %q has no predicate", ErrInvalidName, name)
	}
	if _, exists := s.index[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}

	s.index[name] = len(s.entries)
	s.entries = append(s.entries, entry{name: name, predicate: predicate})
	return nil
}

// Names returns the registered names in declaration order
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of host modifiers
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Classify returns the names of all modifiers matching date.
// today must be sampled once by the caller for the whole render pass.
func Classify(date time.Time, set *Set, owner dateutil.Month, today time.Time) ([]string, error) {
	var names []string

	if dateutil.IsSameDay(date, today) {
		names = append(names, Today)
	}
	if !owner.Contains(date) {
		names = append(names, Outside)
	}

	if set == nil {
		return names, nil
	}

	for _, e := range set.entries {
		ok, err := evaluate(e, date)
		if err != nil {
			return nil, &EvaluationError{Name: e.name, Date: date, Err: err}
		}
		if ok {
			names = append(names, e.name)
		}
	}

	return names, nil
}

func evaluate(e entry, date time.Time) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("predicate panicked: %v", r)
		}
	}()
	return e.predicate(date)
}

// Has reports whether name is present in a classification result
func Has(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
