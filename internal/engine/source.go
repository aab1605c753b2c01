package engine

import (
	"log/slog"
	"sync"
	"time"

	// Embed the IANA database so zone lookups do not depend on the host.
	_ "time/tzdata"

	"github.com/tartampluch/go-clock/internal/config"
)

// LoadTimezone resolves an IANA identifier such as "Europe/Paris".
// Unknown identifiers yield a *TimezoneError.
func LoadTimezone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &TimezoneError{Name: name, Err: err}
	}
	return loc, nil
}

// TimeSource produces the current Instant in a configurable timezone.
//
// The zone used when none is configured is explicit: it is the location
// passed to NewTimeSource. The settings window may change the zone while the
// display loop reads it, so the configuration is guarded by a mutex.
type TimeSource struct {
	clock      Clock
	defaultLoc *time.Location

	mu        sync.RWMutex
	loc       *time.Location // nil means defaultLoc
	formatter *Formatter
}

// NewTimeSource builds a TimeSource reading from clock.
// A nil clock uses RealClock; a nil defaultLoc uses time.Local.
func NewTimeSource(clock Clock, defaultLoc *time.Location) *TimeSource {
	if clock == nil {
		clock = RealClock{}
	}
	if defaultLoc == nil {
		defaultLoc = time.Local
	}

	slog.Debug(config.MsgSourceInit,
		config.LogKeyComponent, config.CompSource,
		config.LogKeyTimezone, defaultLoc.String())

	return &TimeSource{
		clock:      clock,
		defaultLoc: defaultLoc,
		formatter:  NewFormatter(nil),
	}
}

// CurrentInstant returns "now" in the configured timezone.
func (s *TimeSource) CurrentInstant() Instant {
	return NewInstant(s.clock.Now().In(s.Location()))
}

// Location returns the effective timezone.
func (s *TimeSource) Location() *time.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loc == nil {
		return s.defaultLoc
	}
	return s.loc
}

// Timezone returns the configured identifier, or "" when the default is in use.
func (s *TimeSource) Timezone() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loc == nil {
		return ""
	}
	return s.loc.String()
}

// SetTimezone switches to the named zone and returns the previously
// configured identifier. An empty name restores the default zone.
// On error the configuration is left untouched.
func (s *TimeSource) SetTimezone(name string) (string, error) {
	if name == "" {
		prev := s.SetLocation(nil)
		return locationName(prev), nil
	}

	loc, err := LoadTimezone(name)
	if err != nil {
		return s.Timezone(), err
	}
	prev := s.SetLocation(loc)
	return locationName(prev), nil
}

// SetLocation replaces the configured zone and returns the previous one
// (nil when the default was in use). A nil loc restores the default.
func (s *TimeSource) SetLocation(loc *time.Location) *time.Location {
	s.mu.Lock()
	prev := s.loc
	s.loc = loc
	s.mu.Unlock()

	slog.Info(config.MsgTimezoneUpdate,
		config.LogKeyComponent, config.CompSource,
		config.LogKeyOld, locationName(prev),
		config.LogKeyNew, locationName(loc))
	return prev
}

// Formatter returns the formatter used by FormatTime and FormatDate.
func (s *TimeSource) Formatter() *Formatter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.formatter
}

// SetFormatter swaps the formatter, typically after a language change.
func (s *TimeSource) SetFormatter(f *Formatter) {
	if f == nil {
		f = NewFormatter(nil)
	}
	s.mu.Lock()
	s.formatter = f
	s.mu.Unlock()
}

// FormatTime renders inst with pattern, defaulting to "HH:mm:ss".
func (s *TimeSource) FormatTime(inst Instant, pattern string) (string, error) {
	if pattern == "" {
		pattern = config.DefaultTimePattern
	}
	return s.Formatter().Format(inst, pattern)
}

// FormatDate renders inst with pattern, defaulting to "DD/MM/YYYY".
func (s *TimeSource) FormatDate(inst Instant, pattern string) (string, error) {
	if pattern == "" {
		pattern = config.DefaultDatePattern
	}
	return s.Formatter().Format(inst, pattern)
}

// Time formats the current instant as a time.
func (s *TimeSource) Time(pattern string) (string, error) {
	return s.FormatTime(s.CurrentInstant(), pattern)
}

// Date formats the current instant as a date.
func (s *TimeSource) Date(pattern string) (string, error) {
	return s.FormatDate(s.CurrentInstant(), pattern)
}

func locationName(loc *time.Location) string {
	if loc == nil {
		return ""
	}
	return loc.String()
}
