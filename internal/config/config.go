package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/username/daypicker/internal/holidays"
	"github.com/username/daypicker/pkg/dateutil"
)

// Config represents application configuration
type Config struct {
	Picker    PickerConfig    `mapstructure:"picker"`
	Modifiers ModifiersConfig `mapstructure:"modifiers"`
	Log       LogConfig       `mapstructure:"log"`
}

// PickerConfig represents the day picker options
type PickerConfig struct {
	Locale            string `mapstructure:"locale"`
	WeekStartsOn      string `mapstructure:"week_starts_on"` // empty means the locale default
	NumberOfMonths    int    `mapstructure:"number_of_months"`
	EnableOutsideDays bool   `mapstructure:"enable_outside_days"`
	CanChangeMonth    bool   `mapstructure:"can_change_month"`
	InitialMonth      string `mapstructure:"initial_month"` // YYYY-MM, empty means the current month
	FromMonth         string `mapstructure:"from_month"`
	ToMonth           string `mapstructure:"to_month"`
}

// ModifiersConfig represents the named day modifiers
type ModifiersConfig struct {
	Weekends        bool                `mapstructure:"weekends"`
	FirstDayOfMonth bool                `mapstructure:"first_day_of_month"`
	HolidayFile     string              `mapstructure:"holiday_file"`   // "YYYY-MM-DD type [note]" lines
	HolidayRegion   string              `mapstructure:"holiday_region"` // "nrw"
	Dates           map[string][]string `mapstructure:"dates"`          // name -> dates
	Weekdays        map[string][]string `mapstructure:"weekdays"`       // name -> weekday names
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. Without an explicit path a missing
// config file is not an error and the defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.daypicker")
		v.AddConfigPath("/etc/daypicker")
	}

	// Read environment variables
	v.SetEnvPrefix("DAYPICKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("picker.locale", "en")
	v.SetDefault("picker.number_of_months", 1)
	v.SetDefault("picker.enable_outside_days", false)
	v.SetDefault("picker.can_change_month", true)
	v.SetDefault("modifiers.weekends", true)
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate Picker config
	if c.Picker.NumberOfMonths < 1 {
		return fmt.Errorf("picker.number_of_months must be at least 1")
	}
	if c.Picker.WeekStartsOn != "" {
		if _, err := dateutil.ParseWeekday(c.Picker.WeekStartsOn); err != nil {
			return fmt.Errorf("picker.week_starts_on: %w", err)
		}
	}
	if _, err := c.Picker.GetInitialMonth(); err != nil {
		return fmt.Errorf("picker.initial_month: %w", err)
	}
	from, to, err := c.Picker.GetRange()
	if err != nil {
		return err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return fmt.Errorf("picker.to_month %s is before picker.from_month %s", to, from)
	}

	// Validate Modifiers config
	switch strings.ToLower(c.Modifiers.HolidayRegion) {
	case "", holidays.RegionNRW:
	default:
		return fmt.Errorf("modifiers.holiday_region must be '%s' or empty, got '%s'", holidays.RegionNRW, c.Modifiers.HolidayRegion)
	}
	for name, dates := range c.Modifiers.Dates {
		for _, d := range dates {
			if _, err := dateutil.ParseDate(d); err != nil {
				return fmt.Errorf("modifiers.dates.%s: %w", name, err)
			}
		}
	}
	for name, days := range c.Modifiers.Weekdays {
		for _, d := range days {
			if _, err := dateutil.ParseWeekday(d); err != nil {
				return fmt.Errorf("modifiers.weekdays.%s: %w", name, err)
			}
		}
	}

	// Validate Log config
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got '%s'", c.Log.Level)
	}

	return nil
}

// GetInitialMonth returns the first day of the configured initial month, or the zero time
func (c *PickerConfig) GetInitialMonth() (time.Time, error) {
	if c.InitialMonth == "" {
		return time.Time{}, nil
	}
	m, err := dateutil.ParseMonth(c.InitialMonth)
	if err != nil {
		return time.Time{}, err
	}
	return m.Start(), nil
}

// GetWeekStartsOn returns the configured first weekday, or nil for the locale default
func (c *PickerConfig) GetWeekStartsOn() *time.Weekday {
	if c.WeekStartsOn == "" {
		return nil
	}
	wd, err := dateutil.ParseWeekday(c.WeekStartsOn)
	if err != nil {
		return nil
	}
	return &wd
}

// GetRange returns the navigation bounds; a zero month is open
func (c *PickerConfig) GetRange() (from, to dateutil.Month, err error) {
	if c.FromMonth != "" {
		if from, err = dateutil.ParseMonth(c.FromMonth); err != nil {
			return from, to, fmt.Errorf("picker.from_month: %w", err)
		}
	}
	if c.ToMonth != "" {
		if to, err = dateutil.ParseMonth(c.ToMonth); err != nil {
			return from, to, fmt.Errorf("picker.to_month: %w", err)
		}
	}
	return from, to, nil
}

// GetDates returns the parsed dates of a named date-list modifier
func (c *ModifiersConfig) GetDates(name string) []time.Time {
	var dates []time.Time
	for _, d := range c.Dates[name] {
		if t, err := dateutil.ParseDate(d); err == nil {
			dates = append(dates, t)
		}
	}
	return dates
}

// GetWeekdays returns the parsed weekdays of a named weekday modifier
func (c *ModifiersConfig) GetWeekdays(name string) []time.Weekday {
	var days []time.Weekday
	for _, d := range c.Weekdays[name] {
		if wd, err := dateutil.ParseWeekday(d); err == nil {
			days = append(days, wd)
		}
	}
	return days
}

// ExpandEnvVars expands environment variables in config paths
func (c *Config) ExpandEnvVars() {
	c.Modifiers.HolidayFile = os.ExpandEnv(c.Modifiers.HolidayFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
