// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"time"
)

// NewTime creates a new time service. A zero FramesPerSecond leaves
// the frame ticker effectively uncapped, a zero EventPollDelay polls
// every millisecond.
func NewTime(cfg TimeConfiguration) Time {
	var interval time.Duration
	if cfg.FramesPerSecond == 0 {
		interval = time.Nanosecond
	} else {
		interval = time.Second / (time.Duration)(cfg.FramesPerSecond)
	}

	poll := cfg.EventPollDelay
	if poll == 0 {
		poll = 1
	}

	return Time{
		fps:            cfg.FramesPerSecond,
		fpsTicker:      time.NewTicker(interval),
		eventPollDelay: poll,
		eventTicker:    time.NewTicker(time.Duration(poll) * time.Millisecond),
		last:           time.Now(),
	}
}

// Time contains all the time services and tickers
type Time struct {
	fps       int
	fpsTicker *time.Ticker

	eventPollDelay int
	eventTicker    *time.Ticker

	last time.Time
}

// Fps gets the set frames per second
func (t *Time) Fps() int {
	return t.fps
}

// FpsTicker gets the initialized fps ticker
func (t *Time) FpsTicker() *time.Ticker {
	return t.fpsTicker
}

// EventTicker gets the initialized event ticker for the event loop
func (t *Time) EventTicker() *time.Ticker {
	return t.eventTicker
}

// Step returns the seconds elapsed since the previous Step, for
// advancing animations and camera glides.
func (t *Time) Step() float32 {
	now := time.Now()
	dt := now.Sub(t.last)
	t.last = now
	return float32(dt.Seconds())
}

// Stop stops the tickers. A stopped time service cannot be restarted.
func (t *Time) Stop() {
	t.fpsTicker.Stop()
	t.eventTicker.Stop()
}
