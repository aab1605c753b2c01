package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-clock/internal/config"
)

// Display receives formatted strings from the Loop.
type Display interface {
	UpdateTime(value string)
	UpdateDate(value string)
}

// Committer is implemented by displays that publish the updates of one tick
// together. The loop calls Commit after the updates of any tick that changed
// a field, with the instant both strings were rendered from.
type Committer interface {
	Commit(inst Instant)
}

// Displays fans updates out to several displays, in order.
type Displays []Display

func (ds Displays) UpdateTime(value string) {
	for _, d := range ds {
		d.UpdateTime(value)
	}
}

func (ds Displays) UpdateDate(value string) {
	for _, d := range ds {
		d.UpdateDate(value)
	}
}

// Commit forwards to the displays that implement Committer.
func (ds Displays) Commit(inst Instant) {
	for _, d := range ds {
		if c, ok := d.(Committer); ok {
			c.Commit(inst)
		}
	}
}

// Loop polls the TimeSource and pushes changed strings to a Display.
//
// Time and date are dirty-checked independently: a field is only pushed when
// its formatted value differs from the one pushed on the previous tick. Nothing
// has been pushed before the first tick, so it always updates both fields.
type Loop struct {
	Source   *TimeSource
	Display  Display
	Interval time.Duration

	mu          sync.Mutex
	timePattern string
	datePattern string

	// Written only by the goroutine calling Tick.
	drawn    bool
	prevTime string
	prevDate string
}

// NewLoop wires a loop ticking once per config.TickInterval.
func NewLoop(source *TimeSource, display Display, timePattern, datePattern string) *Loop {
	return &Loop{
		Source:      source,
		Display:     display,
		Interval:    config.TickInterval,
		timePattern: timePattern,
		datePattern: datePattern,
	}
}

// Patterns returns the time and date patterns in use.
func (l *Loop) Patterns() (timePattern, datePattern string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.timePattern, l.datePattern
}

// SetPatterns changes the patterns used from the next tick on.
func (l *Loop) SetPatterns(timePattern, datePattern string) {
	l.mu.Lock()
	l.timePattern = timePattern
	l.datePattern = datePattern
	l.mu.Unlock()

	slog.Debug(config.MsgLoopPatterns,
		config.LogKeyComponent, config.CompLoop,
		slog.Group(config.LogKeyPattern,
			slog.String(config.FlagTimeFormat, timePattern),
			slog.String(config.FlagDateFormat, datePattern),
		),
	)
}

// Tick formats time and date from a single instant and pushes the fields
// that changed. A panic raised by the display is returned as an error.
func (l *Loop) Tick() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", config.ErrLoopPanic, r)
		}
	}()

	timePattern, datePattern := l.Patterns()
	inst := l.Source.CurrentInstant()

	currentTime, err := l.Source.FormatTime(inst, timePattern)
	if err != nil {
		return err
	}
	currentDate, err := l.Source.FormatDate(inst, datePattern)
	if err != nil {
		return err
	}

	var changed bool
	if !l.drawn || currentTime != l.prevTime {
		slog.Debug(config.MsgUpdateTime,
			config.LogKeyComponent, config.CompLoop,
			config.LogKeyValue, currentTime)
		l.Display.UpdateTime(currentTime)
		l.prevTime = currentTime
		changed = true
	}
	if !l.drawn || currentDate != l.prevDate {
		slog.Debug(config.MsgUpdateDate,
			config.LogKeyComponent, config.CompLoop,
			config.LogKeyValue, currentDate)
		l.Display.UpdateDate(currentDate)
		l.prevDate = currentDate
		changed = true
	}
	if c, ok := l.Display.(Committer); ok && changed {
		c.Commit(inst)
	}
	l.drawn = true
	return nil
}

// Run ticks immediately, then once per Interval, until ctx is cancelled or a
// tick fails. A failed tick is logged and returned; there are no retries.
func (l *Loop) Run(ctx context.Context) error {
	interval := l.Interval
	if interval <= 0 {
		interval = config.TickInterval
	}

	log := slog.With(config.LogKeyComponent, config.CompLoop)
	log.Info(config.MsgLoopStart, config.LogKeyInterval, interval)
	defer log.Info(config.MsgLoopStop)

	if err := l.Tick(); err != nil {
		log.Error(config.ErrLoopFailed, config.LogKeyError, err)
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := l.Tick(); err != nil {
				log.Error(config.ErrLoopFailed, config.LogKeyError, err)
				return err
			}
		}
	}
}
