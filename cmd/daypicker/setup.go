package main

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/username/daypicker/internal/calendar"
	"github.com/username/daypicker/internal/config"
	"github.com/username/daypicker/internal/holidays"
	"github.com/username/daypicker/internal/modifier"
	"github.com/username/daypicker/internal/render"
)

// Modifier names registered from configuration flags
const (
	firstDayOfMonthModifier = "firstDayOfMonth"
)

// pickerOverrides are command-line values that take precedence over the config file
type pickerOverrides struct {
	month   string
	months  int
	outside bool
}

func initializePicker(cfg *config.Config, overrides pickerOverrides) (*calendar.Picker, error) {
	set, err := buildModifiers(cfg)
	if err != nil {
		return nil, err
	}

	opts := calendar.DefaultOptions()
	opts.Locale = cfg.Picker.Locale
	opts.WeekStartsOn = cfg.Picker.GetWeekStartsOn()
	opts.NumberOfMonths = cfg.Picker.NumberOfMonths
	opts.EnableOutsideDays = cfg.Picker.EnableOutsideDays
	opts.CanChangeMonth = cfg.Picker.CanChangeMonth
	opts.Modifiers = set

	if opts.InitialMonth, err = cfg.Picker.GetInitialMonth(); err != nil {
		return nil, fmt.Errorf("invalid initial month: %w", err)
	}
	from, to, err := cfg.Picker.GetRange()
	if err != nil {
		return nil, err
	}
	if !from.IsZero() || !to.IsZero() {
		opts.Policy = calendar.MonthRange{From: from, To: to}
	}

	if overrides.month != "" {
		override := config.PickerConfig{InitialMonth: overrides.month}
		if opts.InitialMonth, err = override.GetInitialMonth(); err != nil {
			return nil, fmt.Errorf("invalid --month: %w", err)
		}
	}
	if overrides.months > 0 {
		opts.NumberOfMonths = overrides.months
	}
	if overrides.outside {
		opts.EnableOutsideDays = true
	}

	picker, err := calendar.NewPicker(opts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create picker: %w", err)
	}
	return picker, nil
}

func buildModifiers(cfg *config.Config) (*modifier.Set, error) {
	set := modifier.NewSet()
	mc := cfg.Modifiers

	if mc.Weekends {
		if err := set.Add(render.Weekends, modifier.Weekend()); err != nil {
			return nil, err
		}
	}
	if mc.FirstDayOfMonth {
		if err := set.Add(firstDayOfMonthModifier, modifier.FirstDayOfMonth()); err != nil {
			return nil, err
		}
	}

	src, err := initializeHolidays(mc)
	if err != nil {
		return nil, err
	}
	if src != nil {
		if err := set.Add(render.Holidays, holidays.Predicate(src, holidays.DayTypeHoliday)); err != nil {
			return nil, err
		}
	}

	datesNames := maps.Keys(mc.Dates)
	slices.Sort(datesNames)
	for _, name := range datesNames {
		if err := set.Add(name, modifier.Dates(mc.GetDates(name)...)); err != nil {
			return nil, fmt.Errorf("modifier %q: %w", name, err)
		}
	}
	weekdaysNames := maps.Keys(mc.Weekdays)
	slices.Sort(weekdaysNames)
	for _, name := range weekdaysNames {
		if err := set.Add(name, modifier.Weekdays(mc.GetWeekdays(name)...)); err != nil {
			return nil, fmt.Errorf("modifier %q: %w", name, err)
		}
	}

	return set, nil
}

// initializeHolidays returns the configured holiday source, or nil when none is configured
func initializeHolidays(mc config.ModifiersConfig) (holidays.Source, error) {
	var file *holidays.FileSource
	if mc.HolidayFile != "" {
		file = holidays.NewFileSource(mc.HolidayFile, logger)
		if err := file.Load(); err != nil {
			return nil, fmt.Errorf("failed to load holidays: %w", err)
		}
	}

	var computed *holidays.ComputedSource
	if mc.HolidayRegion != "" {
		var err error
		if computed, err = holidays.NewComputedSource(mc.HolidayRegion); err != nil {
			return nil, err
		}
		logger.Info("Using computed public holidays", zap.String("region", mc.HolidayRegion))
	}

	switch {
	case file != nil && computed != nil:
		return holidays.NewCompositeSource(file, computed, logger), nil
	case file != nil:
		return file, nil
	case computed != nil:
		return computed, nil
	default:
		return nil, nil
	}
}

func newRenderer(picker *calendar.Picker) *render.Renderer {
	return render.New(picker.Locale(), nil, picker.WeekStartsOn(), render.DefaultStyles(nil))
}
