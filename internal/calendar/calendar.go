// Package calendar counts the days of the mayor's year.
package calendar

import (
	"fmt"
	"strconv"

	"github.com/samdwyer/cityhall/internal/config"
)

// Result describes what a day advance changed.
type Result int

const (
	Ongoing Result = iota
	LastDaysStarted
	TimeUp
)

// String returns the result name for logging.
func (r Result) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case LastDaysStarted:
		return "last_days_started"
	case TimeUp:
		return "time_up"
	default:
		return "unknown"
	}
}

// Counter tracks the current day and the value multiplier.
type Counter struct {
	daysPerYear        int
	lastDaysCount      int
	lastDaysMultiplier float64

	day        int
	multiplier float64
	lastDays   bool
	finished   bool
}

// New starts a counter at day 1. When the whole year is last days the
// counter starts with the last-days multiplier.
func New(opts config.GameOptions) *Counter {
	c := &Counter{
		daysPerYear:        opts.DaysPerYear,
		lastDaysCount:      opts.LastDaysCount,
		lastDaysMultiplier: opts.LastDaysMultiplier,
		day:                1,
		multiplier:         1,
	}
	if opts.DaysPerYear == opts.LastDaysCount {
		c.multiplier = c.lastDaysMultiplier
		c.lastDays = true
	}
	return c
}

// Advance moves to the next day. Thresholds apply to completed days, so
// the year ends after DaysPerYear advances. Once the year is over further
// calls return TimeUp without changing anything.
func (c *Counter) Advance() Result {
	if c.finished {
		return TimeUp
	}

	c.day++
	completed := c.day - 1

	switch {
	case completed >= c.daysPerYear:
		c.day = 1
		c.multiplier = 1
		c.lastDays = false
		c.finished = true
		return TimeUp
	case completed >= c.daysPerYear-c.lastDaysCount:
		c.multiplier = c.lastDaysMultiplier
		if !c.lastDays {
			c.lastDays = true
			return LastDaysStarted
		}
		return Ongoing
	default:
		c.multiplier = 1
		return Ongoing
	}
}

// Day returns the current 1-based day.
func (c *Counter) Day() int { return c.day }

// DaysPerYear returns the length of the year.
func (c *Counter) DaysPerYear() int { return c.daysPerYear }

// Multiplier returns the factor applied to every consequence today.
func (c *Counter) Multiplier() float64 { return c.multiplier }

// LastDays reports whether the last-days multiplier is active.
func (c *Counter) LastDays() bool { return c.lastDays }

// Finished reports whether the year is over.
func (c *Counter) Finished() bool { return c.finished }

// Label renders the day line, e.g. "DAY 16 / 25 (x2)".
func (c *Counter) Label() string {
	label := fmt.Sprintf("DAY %d / %d", c.day, c.daysPerYear)
	if c.lastDays {
		label += " (x" + strconv.FormatFloat(c.multiplier, 'f', -1, 64) + ")"
	}
	return label
}
