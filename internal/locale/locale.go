package locale

import (
	"time"

	"golang.org/x/text/language"
)

// DefaultKey is used when no locale is configured
const DefaultKey = "en"

// Provider supplies the week conventions and names the grid is labelled with
type Provider interface {
	// FirstDayOfWeek returns the locale's first weekday
	FirstDayOfWeek(key string) time.Weekday
	// WeekdayShort returns the column header for wd
	WeekdayShort(key string, wd time.Weekday) string
	// MonthName returns the caption name for m
	MonthName(key string, m time.Month) string
}

type table struct {
	weekdays [7]string // Sunday first
	months   [12]string
}

var tables = []struct {
	tag   language.Tag
	names table
}{
	{language.English, table{
		weekdays: [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
		months: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
	}},
	{language.German, table{
		weekdays: [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
		months: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember"},
	}},
	{language.French, table{
		weekdays: [7]string{"di", "lu", "ma", "me", "je", "ve", "sa"},
		months: [12]string{"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	}},
	{language.Spanish, table{
		weekdays: [7]string{"do", "lu", "ma", "mi", "ju", "vi", "sá"},
		months: [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	}},
	{language.Italian, table{
		weekdays: [7]string{"do", "lu", "ma", "me", "gi", "ve", "sa"},
		months: [12]string{"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
			"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"},
	}},
	{language.Russian, table{
		weekdays: [7]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"},
		months: [12]string{"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
			"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь"},
	}},
}

// Regions whose weeks do not start on Monday
var (
	sundayRegions = map[string]bool{
		"US": true, "CA": true, "MX": true, "BR": true, "JP": true, "KR": true,
		"TW": true, "HK": true, "IL": true, "IN": true, "PH": true, "ZA": true,
	}
	saturdayRegions = map[string]bool{
		"AE": true, "EG": true, "DZ": true, "IQ": true, "JO": true,
		"KW": true, "LY": true, "OM": true, "QA": true, "SY": true,
	}
)

// Tables is the built-in Provider backed by static name tables
type Tables struct {
	matcher language.Matcher
}

// Default returns the built-in provider
func Default() *Tables {
	tags := make([]language.Tag, len(tables))
	for i, t := range tables {
		tags[i] = t.tag
	}
	return &Tables{matcher: language.NewMatcher(tags)}
}

func parse(key string) language.Tag {
	if key == "" {
		key = DefaultKey
	}
	tag, err := language.Parse(key)
	if err != nil {
		return language.English
	}
	return tag
}

func (t *Tables) lookup(key string) table {
	_, idx, conf := t.matcher.Match(parse(key))
	if conf == language.No {
		return tables[0].names
	}
	return tables[idx].names
}

// FirstDayOfWeek derives the week start from the (possibly inferred) region of key
func (t *Tables) FirstDayOfWeek(key string) time.Weekday {
	region, conf := parse(key).Region()
	if conf == language.No {
		return time.Monday
	}
	switch code := region.String(); {
	case sundayRegions[code]:
		return time.Sunday
	case saturdayRegions[code]:
		return time.Saturday
	default:
		return time.Monday
	}
}

// WeekdayShort returns the two-letter weekday label
func (t *Tables) WeekdayShort(key string, wd time.Weekday) string {
	return t.lookup(key).weekdays[wd]
}

// MonthName returns the month's name
func (t *Tables) MonthName(key string, m time.Month) string {
	return t.lookup(key).months[m-1]
}

// Canonical returns the BCP 47 form of key, falling back to DefaultKey
func Canonical(key string) string {
	return parse(key).String()
}
