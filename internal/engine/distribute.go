package engine

import (
	"sort"
	"time"
)

// distribute maps events to horizontal pixel positions and annotates
// each with its local density. Events are processed in chronological
// order with a stable tie-break, so identical inputs always produce
// identical positions.
func distribute(events []Event, b Bounds, viewportWidth float64, cfg Config) []DistributedEvent {
	if len(events) == 0 {
		return nil
	}

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	out := make([]DistributedEvent, len(sorted))
	for i, e := range sorted {
		out[i] = DistributedEvent{
			Event: e,
			X:     b.XForTime(e.Timestamp, viewportWidth),
		}
	}

	annotateDensity(out, cfg.DensityWindowDays)
	enforceMinPitch(out, b, viewportWidth, cfg)

	return out
}

// annotateDensity computes events-per-day within a sliding window
// centered on each event. The input must be sorted chronologically.
func annotateDensity(events []DistributedEvent, windowDays int) {
	if windowDays <= 0 {
		windowDays = 30
	}
	halfWindow := time.Duration(windowDays) * 24 * time.Hour / 2

	lo := 0
	hi := 0
	for i := range events {
		center := events[i].Timestamp
		for lo < len(events) && events[lo].Timestamp.Before(center.Add(-halfWindow)) {
			lo++
		}
		if hi < i {
			hi = i
		}
		for hi < len(events) && !events[hi].Timestamp.After(center.Add(halfWindow)) {
			hi++
		}
		events[i].Density = float64(hi-lo) / float64(windowDays)
	}
}

// enforceMinPitch applies a monotonic left-to-right spacing pass when
// the recommended column count falls short of the event count. Each
// event is pushed rightward just enough to keep the minimum pitch from
// its predecessor; order is never changed, and sparse inputs keep their
// time-proportional positions untouched (so coincident timestamps stay
// coincident).
func enforceMinPitch(events []DistributedEvent, b Bounds, viewportWidth float64, cfg Config) {
	if len(events) < 2 || cfg.MinEventPitch <= 0 {
		return
	}

	usable := b.usableWidth(viewportWidth)
	recommendedColumns := int(usable / cfg.MinEventPitch)
	if recommendedColumns >= len(events) {
		return
	}

	for i := 1; i < len(events); i++ {
		floor := events[i-1].X + cfg.MinEventPitch
		if events[i].X < floor {
			events[i].X = floor
		}
	}
}
