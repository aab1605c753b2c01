package engine

import "time"

// Names supplies the calendar words used by the MMMM, MMM, dddd and ddd tokens.
// The UI injects a localized implementation; EnglishNames is the default.
type Names interface {
	Month(m time.Month) string
	MonthShort(m time.Month) string
	Weekday(d time.Weekday) string
	WeekdayShort(d time.Weekday) string
}

// EnglishNames renders names from the standard library tables.
type EnglishNames struct{}

func (EnglishNames) Month(m time.Month) string { return m.String() }

func (EnglishNames) MonthShort(m time.Month) string { return m.String()[:3] }

func (EnglishNames) Weekday(d time.Weekday) string { return d.String() }

func (EnglishNames) WeekdayShort(d time.Weekday) string { return d.String()[:3] }
