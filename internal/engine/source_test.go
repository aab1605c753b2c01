package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSource_DefaultLocationIsInjected(t *testing.T) {
	tokyo, err := LoadTimezone("Asia/Tokyo")
	require.NoError(t, err)

	src := NewTimeSource(FixedClock{T: reference}, tokyo)
	inst := src.CurrentInstant()

	assert.Equal(t, "Asia/Tokyo", inst.Location().String())
	assert.True(t, inst.Time().Equal(reference), "Changing zone must not move the instant")
	assert.Equal(t, 23, inst.Time().Hour(), "14:07 UTC is 23:07 in Tokyo")
	assert.Empty(t, src.Timezone(), "No zone is configured, only the default")
}

func TestTimeSource_SetTimezone(t *testing.T) {
	src := NewTimeSource(FixedClock{T: reference}, time.UTC)

	prev, err := src.SetTimezone("Europe/Paris")
	require.NoError(t, err)
	assert.Empty(t, prev)
	assert.Equal(t, "Europe/Paris", src.Timezone())

	got, err := src.Time("HH:mm ZZ")
	require.NoError(t, err)
	assert.Equal(t, "15:07 +01:00", got)

	prev, err = src.SetTimezone("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", prev)

	prev, err = src.SetTimezone("")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", prev)
	assert.Equal(t, time.UTC, src.Location())
}

func TestTimeSource_InvalidTimezone(t *testing.T) {
	src := NewTimeSource(FixedClock{T: reference}, time.UTC)
	_, err := src.SetTimezone("Asia/Kolkata")
	require.NoError(t, err)

	prev, err := src.SetTimezone("Mars/Olympus_Mons")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTimezone))

	var tzErr *TimezoneError
	require.True(t, errors.As(err, &tzErr))
	assert.Equal(t, "Mars/Olympus_Mons", tzErr.Name)

	assert.Equal(t, "Asia/Kolkata", prev, "Failed updates report the zone still in use")
	assert.Equal(t, "Asia/Kolkata", src.Timezone(), "Failed updates must not change the zone")
}

func TestTimeSource_SetLocation(t *testing.T) {
	src := NewTimeSource(FixedClock{T: reference}, time.UTC)
	fixed := time.FixedZone("ACST", 9*3600+1800)

	assert.Nil(t, src.SetLocation(fixed), "Nothing was configured before")
	assert.Equal(t, "ACST", src.Timezone())

	got, err := src.Time("HH:mm ZZZ Z")
	require.NoError(t, err)
	assert.Equal(t, "23:37 ACST +0930", got)

	assert.Equal(t, fixed, src.SetLocation(nil))
	assert.Empty(t, src.Timezone())
	assert.Equal(t, time.UTC, src.Location())
}

func TestTimeSource_DefaultPatterns(t *testing.T) {
	src := NewTimeSource(FixedClock{T: reference}, time.UTC)
	inst := src.CurrentInstant()

	tm, err := src.FormatTime(inst, "")
	require.NoError(t, err)
	assert.Equal(t, "14:07:09", tm)

	dt, err := src.FormatDate(inst, "")
	require.NoError(t, err)
	assert.Equal(t, "05/03/2024", dt)
}

// TestTimeSource_EndToEnd pins the reference rendering of 2024-03-05 14:07:09 UTC.
func TestTimeSource_EndToEnd(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	src := NewTimeSource(FixedClock{T: at}, time.UTC)
	inst := NewInstant(at)

	tm, err := src.FormatTime(inst, "hh:mm:ss A")
	require.NoError(t, err)
	assert.Equal(t, "02:07:09 PM", tm)

	dt, err := src.FormatDate(inst, "DD MMM, YYYY")
	require.NoError(t, err)
	assert.Equal(t, "05 Mar, 2024", dt)

	ex := NewExtractor(src)
	assert.Equal(t, TimeBreakdown{Hour: "02", Minute: "07", Second: "09", SubSecond: "00", Session: "PM"}, ex.TimeOf(inst))
	assert.Equal(t, DateBreakdown{Day: "05", Month: "Mar", Year: "2024"}, ex.DateOf(inst))
}

// TestTimeSource_MatchesReferenceConversion compares the source against an
// independent conversion of UTC now, using the real clock.
func TestTimeSource_MatchesReferenceConversion(t *testing.T) {
	zones := []string{"UTC", "Europe/Paris", "America/Los_Angeles", "Asia/Kathmandu", "Australia/Lord_Howe", "Pacific/Chatham"}
	src := NewTimeSource(RealClock{}, time.UTC)

	for _, name := range zones {
		t.Run(name, func(t *testing.T) {
			_, err := src.SetTimezone(name)
			require.NoError(t, err)

			got := src.CurrentInstant().Time()
			loc, err := time.LoadLocation(name)
			require.NoError(t, err)
			want := time.Now().UTC().In(loc)

			assert.Equal(t, name, got.Location().String())
			assert.WithinDuration(t, want, got, time.Second)

			_, gotOffset := got.Zone()
			_, wantOffset := want.Zone()
			assert.Equal(t, wantOffset, gotOffset)
		})
	}
}

func TestTimeSource_SetFormatter(t *testing.T) {
	src := NewTimeSource(FixedClock{T: reference}, time.UTC)
	src.SetFormatter(NewFormatter(shoutingNames{}))

	got, err := src.Date("MMMM")
	require.NoError(t, err)
	assert.Equal(t, "MONTH-March", got)

	src.SetFormatter(nil)
	got, err = src.Date("MMMM")
	require.NoError(t, err)
	assert.Equal(t, "March", got)
}
