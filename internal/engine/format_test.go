package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// reference is Tuesday 2024-03-05 14:07:09.123456789 UTC.
var reference = time.Date(2024, 3, 5, 14, 7, 9, 123456789, time.UTC)

// TestFormat_Tokens covers every entry of the token vocabulary.
func TestFormat_Tokens(t *testing.T) {
	f := NewFormatter(nil)
	inst := NewInstant(reference)

	tests := []struct {
		pattern string
		want    string
	}{
		{"YYYY", "2024"},
		{"YY", "24"},
		{"MMMM", "March"},
		{"MMM", "Mar"},
		{"MM", "03"},
		{"M", "3"},
		{"DDDD", "065"},
		{"DDD", "65"},
		{"DD", "05"},
		{"D", "5"},
		{"Do", "5th"},
		{"dddd", "Tuesday"},
		{"ddd", "Tue"},
		{"d", "2"},
		{"HH", "14"},
		{"H", "14"},
		{"hh", "02"},
		{"h", "2"},
		{"A", "PM"},
		{"a", "pm"},
		{"mm", "07"},
		{"m", "7"},
		{"ss", "09"},
		{"s", "9"},
		{"S", "1"},
		{"SS", "12"},
		{"SSS", "123"},
		{"SSSSSS", "123456"},
		{"SSSSSSSSS", "123456789"},
		{"SSSSSSSSSSS", "12345678900"},
		{"ZZZ", "UTC"},
		{"ZZ", "+00:00"},
		{"Z", "+0000"},
		{"X", "1709647629"},
		{"x", "1709647629123456"},
		{"W", "2024-W10-2"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := f.Format(inst, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Literals(t *testing.T) {
	f := NewFormatter(nil)
	inst := NewInstant(reference)

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"Separators", "YYYY-MM-DDTHH:mm:ss", "2024-03-05T14:07:09"},
		{"Unknown letters pass through", "Q YYYY", "Q 2024"},
		{"Bracket escape", "[Today is] dddd", "Today is Tuesday"},
		{"Bracketed tokens are not expanded", "[YYYY]", "YYYY"},
		{"Empty brackets", "HH[]mm", "1407"},
		{"Non-ASCII passes through", "HH時mm分", "14時07分"},
		{"Empty pattern", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Format(inst, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_UnterminatedLiteral(t *testing.T) {
	f := NewFormatter(nil)

	_, err := f.Format(NewInstant(reference), "HH [oops")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat))

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 3, fe.Offset)
	assert.Equal(t, "HH [oops", fe.Pattern)

	assert.Error(t, f.Validate("["))
	assert.NoError(t, f.Validate("hh:mm:ss A"))
}

func TestFormat_Offsets(t *testing.T) {
	f := NewFormatter(nil)

	tests := []struct {
		name string
		loc  *time.Location
		zz   string
		z    string
	}{
		{"Positive half hour", time.FixedZone("IST", 5*3600+30*60), "+05:30", "+0530"},
		{"Negative half hour", time.FixedZone("NST", -(3*3600 + 30*60)), "-03:30", "-0330"},
		{"Whole hours", time.FixedZone("CET", 3600), "+01:00", "+0100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := NewInstant(reference.In(tt.loc))
			got, err := f.Format(inst, "ZZ|Z|ZZZ")
			require.NoError(t, err)
			assert.Equal(t, tt.zz+"|"+tt.z+"|"+tt.loc.String(), got)
		})
	}
}

// TestFormat_Boundaries pins the 12-hour clock edges and zero sub-seconds.
func TestFormat_Boundaries(t *testing.T) {
	f := NewFormatter(nil)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"Midnight", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "12 AM 00"},
		{"Just before noon", time.Date(2024, 1, 1, 11, 59, 59, 0, time.UTC), "11 AM 00"},
		{"Noon", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), "12 PM 00"},
		{"One PM", time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC), "01 PM 00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Format(NewInstant(tt.at), "hh A SS")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Ordinals(t *testing.T) {
	f := NewFormatter(nil)
	want := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd", 31: "31st"}

	for day, ord := range want {
		got, err := f.Format(NewInstant(time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)), "Do")
		require.NoError(t, err)
		assert.Equal(t, ord, got, "day %d", day)
	}
}

func TestFormat_SundayIsSeven(t *testing.T) {
	f := NewFormatter(nil)
	got, err := f.Format(NewInstant(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)), "d ddd")
	require.NoError(t, err)
	assert.Equal(t, "7 Sun", got)
}

type shoutingNames struct{ EnglishNames }

func (shoutingNames) Month(m time.Month) string { return "MONTH-" + m.String() }

func TestFormat_InjectedNames(t *testing.T) {
	f := NewFormatter(shoutingNames{})
	got, err := f.Format(NewInstant(reference), "MMMM MMM")
	require.NoError(t, err)
	assert.Equal(t, "MONTH-March Mar", got)
}

func drawTime(t *rapid.T) time.Time {
	secs := rapid.Int64Range(0, 4102444800).Draw(t, "secs") // 1970..2100
	nanos := rapid.Int64Range(0, 999999999).Draw(t, "nanos")
	return time.Unix(secs, nanos).UTC()
}

func TestFormat_Idempotent(t *testing.T) {
	f := NewFormatter(nil)
	rapid.Check(t, func(t *rapid.T) {
		inst := NewInstant(drawTime(t))
		first, err := f.Format(inst, "HH:mm:ss")
		if err != nil {
			t.Fatal(err)
		}
		second, _ := f.Format(inst, "HH:mm:ss")
		if first != second {
			t.Fatalf("%q != %q", first, second)
		}
	})
}

// TestFormat_MatchesStdlib cross-checks numeric tokens against time.Format layouts.
func TestFormat_MatchesStdlib(t *testing.T) {
	f := NewFormatter(nil)
	rapid.Check(t, func(t *rapid.T) {
		at := drawTime(t)
		got, err := f.Format(NewInstant(at), "YYYY-MM-DD HH:mm:ss.SSS hh A ddd MMM")
		if err != nil {
			t.Fatal(err)
		}
		want := at.Format("2006-01-02 15:04:05.000 03 PM Mon Jan")
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})
}
