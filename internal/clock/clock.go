// Package clock allows injecting time into components that count down
// or timestamp records, so tests can drive ticks deterministically.
package clock

import "time"

// Clock provides the current time and repeating tickers.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers periodic ticks until stopped. Stop releases the
// underlying timer; no tick is delivered after Stop returns.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now and time.NewTicker.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) NewTicker(d time.Duration) Ticker {
	return &systemTicker{t: time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (s *systemTicker) C() <-chan time.Time { return s.t.C }
func (s *systemTicker) Stop()               { s.t.Stop() }

// Manual is a hand-driven clock for tests: Tick delivers one tick to the
// most recently created ticker, and Advance moves Now forward.
type Manual struct {
	now  time.Time
	tick chan time.Time
}

// NewManual returns a manual clock starting at t.
func NewManual(t time.Time) *Manual {
	return &Manual{
		now:  t.UTC(),
		tick: make(chan time.Time),
	}
}

func (m *Manual) Now() time.Time {
	return m.now
}

func (m *Manual) NewTicker(d time.Duration) Ticker {
	return manualTicker{c: m.tick}
}

// Advance moves the clock forward without ticking.
func (m *Manual) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

// Tick delivers a single tick, blocking until the consumer receives it.
func (m *Manual) Tick() {
	m.tick <- m.now
}

type manualTicker struct {
	c chan time.Time
}

func (t manualTicker) C() <-chan time.Time { return t.c }
func (t manualTicker) Stop()               {}
