package engine

import "time"

// Instant is an immutable snapshot of a calendar date and time of day,
// carried in the timezone it was observed in.
type Instant struct {
	t time.Time
}

// NewInstant wraps t. The location of t is kept as the instant's timezone.
func NewInstant(t time.Time) Instant {
	return Instant{t: t}
}

// Time returns the underlying time value.
func (i Instant) Time() time.Time {
	return i.t
}

// Location returns the timezone of the instant.
func (i Instant) Location() *time.Location {
	return i.t.Location()
}

// In returns the same instant viewed from loc.
func (i Instant) In(loc *time.Location) Instant {
	return Instant{t: i.t.In(loc)}
}

// IsZero reports whether the instant was never set.
func (i Instant) IsZero() bool {
	return i.t.IsZero()
}

func (i Instant) String() string {
	return i.t.String()
}
