package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-clock/internal/config"
)

var (
	// ErrInvalidTimezone is matched by every *TimezoneError.
	ErrInvalidTimezone = errors.New(config.ErrInvalidTimezone)

	// ErrFormat is matched by every *FormatError.
	ErrFormat = errors.New(config.ErrFormatPattern)
)

// TimezoneError reports an identifier the timezone database does not know.
type TimezoneError struct {
	Name string
	Err  error
}

func (e *TimezoneError) Error() string {
	return fmt.Sprintf("%s %q: %v", config.ErrInvalidTimezone, e.Name, e.Err)
}

// Unwrap exposes both the sentinel and the underlying lookup error.
func (e *TimezoneError) Unwrap() []error {
	return []error{ErrInvalidTimezone, e.Err}
}

// FormatError reports a pattern that cannot be rendered.
type FormatError struct {
	Pattern string
	Offset  int
	Reason  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s %q at offset %d: %s", config.ErrFormatPattern, e.Pattern, e.Offset, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}
