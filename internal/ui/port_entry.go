package ui

import (
	"errors"
	"strconv"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-clock/internal/config"
)

// maxPortDigits is the length of "65535".
const maxPortDigits = 5

// PortEntry is an Entry that only accepts digits and validates a TCP port.
type PortEntry struct {
	widget.Entry
}

// NewPortEntry creates a PortEntry. msg translates the validation error keys.
func NewPortEntry(msg func(key string) string) *PortEntry {
	entry := &PortEntry{}
	entry.ExtendBaseWidget(entry)
	entry.Validator = portValidator(msg)
	return entry
}

// TypedRune drops anything that is not a digit, and digits past the
// longest valid port. Pasted text bypasses this and is caught by the Validator.
func (e *PortEntry) TypedRune(r rune) {
	if r < '0' || r > '9' || len(e.Text) >= maxPortDigits {
		return
	}
	e.Entry.TypedRune(r)
}

// Keyboard requests the numeric keypad on mobile devices.
func (e *PortEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

func portValidator(msg func(key string) string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.New(msg(config.TKeyErrPortReq))
		}
		port, err := strconv.Atoi(s)
		if err != nil {
			return errors.New(msg(config.TKeyErrPortNum))
		}
		if port < config.MinPort || port > config.MaxPort {
			return errors.New(msg(config.TKeyErrPortRange))
		}
		return nil
	}
}
