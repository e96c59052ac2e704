package engine

import (
	"fmt"
	"testing"
	"time"
)

// base is the fixed reference time all engine tests build from.
var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// testViewport is the default viewport used across tests.
var testViewport = Viewport{Width: 800, Height: 600}

// newTestEngine builds an engine with default config and a frozen clock.
func newTestEngine(t *testing.T, opts ...func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(cfg, WithClock(func() time.Time { return base }))
}

// evt builds an event n days after the base time.
func evt(id string, daysAfter float64) Event {
	return Event{
		ID:        id,
		Timestamp: base.Add(time.Duration(daysAfter * 24 * float64(time.Hour))),
		Title:     "event " + id,
	}
}

// evts builds n events spaced evenly across spanDays.
func evts(n int, spanDays float64) []Event {
	out := make([]Event, n)
	step := 0.0
	if n > 1 {
		step = spanDays / float64(n-1)
	}
	for i := 0; i < n; i++ {
		out[i] = evt(fmt.Sprintf("e%02d", i), float64(i)*step)
	}
	return out
}
