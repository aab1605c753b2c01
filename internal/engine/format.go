package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/tartampluch/go-clock/internal/config"
)

// renderer turns one field of t into text.
type renderer func(names Names, t time.Time) string

// token binds a pattern code to its renderer.
type token struct {
	code   string
	render renderer
}

// tokens is the full vocabulary understood by the Formatter.
// Codes sharing a prefix are listed longest first so matching is greedy.
// Sub-second runs (S, SS, SSS...) and [literals] are handled by the scanner.
var tokens = []token{
	{"YYYY", func(_ Names, t time.Time) string { return fmt.Sprintf("%04d", t.Year()) }},
	{"YY", func(_ Names, t time.Time) string { return fmt.Sprintf("%02d", t.Year()%100) }},

	{"MMMM", func(n Names, t time.Time) string { return n.Month(t.Month()) }},
	{"MMM", func(n Names, t time.Time) string { return n.MonthShort(t.Month()) }},
	{"MM", func(_ Names, t time.Time) string { return fmt.Sprintf("%02d", int(t.Month())) }},
	{"M", func(_ Names, t time.Time) string { return strconv.Itoa(int(t.Month())) }},

	{"DDDD", func(_ Names, t time.Time) string { return fmt.Sprintf("%03d", t.YearDay()) }},
	{"DDD", func(_ Names, t time.Time) string { return strconv.Itoa(t.YearDay()) }},
	{"DD", func(_ Names, t time.Time) string { return fmt.Sprintf("%02d", t.Day()) }},
	{"Do", func(_ Names, t time.Time) string { return humanize.Ordinal(t.Day()) }},
	{"D", func(_ Names, t time.Time) string { return strconv.Itoa(t.Day()) }},

	{"dddd", func(n Names, t time.Time) string { return n.Weekday(t.Weekday()) }},
	{"ddd", func(n Names, t time.Time) string { return n.WeekdayShort(t.Weekday()) }},
	{"d", func(_ Names, t time.Time) string { return strconv.Itoa(isoWeekday(t)) }},

	{"HH", func(_ Names, t time.Time) string { return fmt.Sprintf("%02d", t.Hour()) }},
	{"H", func(_ Names, t time.Time) string { return strconv.Itoa(t.Hour()) }},
	{"hh", func(_ Names, t time.Time) string { return fmt.Sprintf("%02d", hour12(t)) }},
	{"h", func(_ Names, t time.Time) string { return strconv.Itoa(hour12(t)) }},

	{"A", func(_ Names, t time.Time) string { return session(t) }},
	{"a", func(_ Names, t time.Time) string { return strings.ToLower(session(t)) }},

	{"mm", func(_ Names, t time.Time) string { return fmt.Sprintf("%02d", t.Minute()) }},
	{"m", func(_ Names, t time.Time) string { return strconv.Itoa(t.Minute()) }},
	{"ss", func(_ Names, t time.Time) string { return fmt.Sprintf("%02d", t.Second()) }},
	{"s", func(_ Names, t time.Time) string { return strconv.Itoa(t.Second()) }},

	{"ZZZ", func(_ Names, t time.Time) string { name, _ := t.Zone(); return name }},
	{"ZZ", func(_ Names, t time.Time) string { return offset(t, ":") }},
	{"Z", func(_ Names, t time.Time) string { return offset(t, "") }},

	{"X", func(_ Names, t time.Time) string { return strconv.FormatInt(t.Unix(), 10) }},
	{"x", func(_ Names, t time.Time) string { return strconv.FormatInt(t.UnixMicro(), 10) }},
	{"W", func(_ Names, t time.Time) string { return isoWeekDate(t) }},
}

// Formatter renders Instants through token patterns such as "hh:mm:ss A".
// A Formatter is immutable once built and safe for concurrent use.
type Formatter struct {
	names Names
}

// NewFormatter returns a Formatter using names for calendar words.
// A nil names falls back to EnglishNames.
func NewFormatter(names Names) *Formatter {
	if names == nil {
		names = EnglishNames{}
	}
	return &Formatter{names: names}
}

// Names returns the calendar words in use.
func (f *Formatter) Names() Names {
	return f.names
}

// Format renders inst according to pattern.
// Unknown characters are copied verbatim; text inside [brackets] is copied
// without the brackets.
func (f *Formatter) Format(inst Instant, pattern string) (string, error) {
	t := inst.Time()
	var b strings.Builder
	b.Grow(len(pattern) + 8)

	for i := 0; i < len(pattern); {
		switch pattern[i] {
		case '[':
			end := strings.IndexByte(pattern[i+1:], ']')
			if end < 0 {
				return "", &FormatError{Pattern: pattern, Offset: i, Reason: config.ErrUnterminated}
			}
			b.WriteString(pattern[i+1 : i+1+end])
			i += end + 2
			continue
		case 'S':
			n := runLength(pattern[i:], 'S')
			b.WriteString(fraction(t, n))
			i += n
			continue
		}

		if tok, ok := matchToken(pattern[i:]); ok {
			b.WriteString(tok.render(f.names, t))
			i += len(tok.code)
			continue
		}

		_, size := utf8.DecodeRuneInString(pattern[i:])
		b.WriteString(pattern[i : i+size])
		i += size
	}
	return b.String(), nil
}

// Validate reports whether pattern can be rendered.
func (f *Formatter) Validate(pattern string) error {
	_, err := f.Format(NewInstant(time.Unix(0, 0).UTC()), pattern)
	return err
}

func matchToken(s string) (token, bool) {
	for _, tok := range tokens {
		if strings.HasPrefix(s, tok.code) {
			return tok, true
		}
	}
	return token{}, false
}

func runLength(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// fraction returns the first n digits of the second's fraction.
// Digits past nanosecond precision are zeros.
func fraction(t time.Time, n int) string {
	digits := fmt.Sprintf("%09d", t.Nanosecond())
	if n <= len(digits) {
		return digits[:n]
	}
	return digits + strings.Repeat("0", n-len(digits))
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

func session(t time.Time) string {
	if t.Hour() < 12 {
		return "AM"
	}
	return "PM"
}

// isoWeekday numbers Monday as 1 and Sunday as 7.
func isoWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

func isoWeekDate(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d-%d", year, week, isoWeekday(t))
}

func offset(t time.Time, sep string) string {
	_, secs := t.Zone()
	sign := '+'
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("%c%02d%s%02d", sign, secs/3600, sep, secs%3600/60)
}
