package engine

import "github.com/tartampluch/go-clock/internal/config"

// TimeBreakdown holds the clock fields of one Instant as display strings.
// The zero value means "not populated".
type TimeBreakdown struct {
	Hour      string `json:"hour"`       // 12-hour, zero-padded
	Minute    string `json:"minute"`     // zero-padded
	Second    string `json:"second"`     // zero-padded
	SubSecond string `json:"sub_second"` // two digits
	Session   string `json:"session"`    // AM or PM
}

// IsZero reports whether no field has been populated.
func (b TimeBreakdown) IsZero() bool {
	return b == TimeBreakdown{}
}

// DateBreakdown holds the calendar fields of one Instant as display strings.
type DateBreakdown struct {
	Day   string `json:"day"`   // zero-padded
	Month string `json:"month"` // three-letter abbreviation
	Year  string `json:"year"`  // four digits
}

// IsZero reports whether no field has been populated.
func (b DateBreakdown) IsZero() bool {
	return b == DateBreakdown{}
}

// Extractor decomposes Instants into breakdowns.
// The current-instant methods delegate to the explicit ones so both paths
// always produce the same field formats. Fields use English names whatever
// formatter the source displays with.
type Extractor struct {
	Source *TimeSource

	formatter *Formatter
}

// NewExtractor returns an Extractor reading "now" from source.
func NewExtractor(source *TimeSource) *Extractor {
	return &Extractor{Source: source, formatter: NewFormatter(nil)}
}

// Time breaks down the current instant.
func (e *Extractor) Time() TimeBreakdown {
	return e.TimeOf(e.Source.CurrentInstant())
}

// TimeOf breaks down inst.
func (e *Extractor) TimeOf(inst Instant) TimeBreakdown {
	f := e.formatter
	return TimeBreakdown{
		Hour:      field(f, inst, config.BreakdownHour),
		Minute:    field(f, inst, config.BreakdownMinute),
		Second:    field(f, inst, config.BreakdownSecond),
		SubSecond: field(f, inst, config.BreakdownSubSecond),
		Session:   field(f, inst, config.BreakdownSession),
	}
}

// Date breaks down the current instant.
func (e *Extractor) Date() DateBreakdown {
	return e.DateOf(e.Source.CurrentInstant())
}

// DateOf breaks down inst.
func (e *Extractor) DateOf(inst Instant) DateBreakdown {
	f := e.formatter
	return DateBreakdown{
		Day:   field(f, inst, config.BreakdownDay),
		Month: field(f, inst, config.BreakdownMonth),
		Year:  field(f, inst, config.BreakdownYear),
	}
}

// field renders a single breakdown token. These patterns contain no
// literals, so Format cannot fail on them.
func field(f *Formatter, inst Instant, pattern string) string {
	s, _ := f.Format(inst, pattern)
	return s
}
