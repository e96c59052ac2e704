package engine

import "time"

const (
	minWindowDuration = 24 * time.Hour
	minPadding        = 7 * 24 * time.Hour
	maxPadding        = 365 * 24 * time.Hour
)

// Bounds is the visible time window of one layout pass, plus the margin
// needed to convert between times and pixels.
type Bounds struct {
	Start   time.Time
	End     time.Time
	marginX float64
}

// Duration returns the window length.
func (b Bounds) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// usableWidth returns the pixel span available for events after the
// fixed UI margins are removed. Never negative.
func (b Bounds) usableWidth(viewportWidth float64) float64 {
	w := viewportWidth - 2*b.marginX
	if w < 0 {
		return 0
	}
	return w
}

// XForTime maps a timestamp to a horizontal pixel position within the
// viewport. Times before Start clamp to the left margin.
func (b Bounds) XForTime(t time.Time, viewportWidth float64) float64 {
	dur := b.Duration()
	if dur <= 0 {
		return b.marginX
	}
	frac := float64(t.Sub(b.Start)) / float64(dur)
	return b.marginX + frac*b.usableWidth(viewportWidth)
}

// TimeForX is the inverse of XForTime.
func (b Bounds) TimeForX(x, viewportWidth float64) time.Time {
	usable := b.usableWidth(viewportWidth)
	if usable <= 0 {
		return b.Start
	}
	frac := (x - b.marginX) / usable
	return b.Start.Add(time.Duration(frac * float64(b.Duration())))
}

// computeBounds derives the visible window from the event set and zoom
// factor. Padding is max(7 days, min(1 year, 10% of the base span));
// zoom shrinks or widens the padded window around its midpoint. Zero
// events yield a one-year window centered on now.
func computeBounds(events []Event, zoom float64, marginX float64, now time.Time) Bounds {
	if zoom <= 0 {
		zoom = 1.0
	}

	if len(events) == 0 {
		half := 365 * 24 * time.Hour / 2
		return Bounds{
			Start:   now.Add(-half),
			End:     now.Add(half),
			marginX: marginX,
		}
	}

	minTs, maxTs := events[0].Timestamp, events[0].Timestamp
	for _, e := range events[1:] {
		if e.Timestamp.Before(minTs) {
			minTs = e.Timestamp
		}
		if e.Timestamp.After(maxTs) {
			maxTs = e.Timestamp
		}
	}

	base := maxTs.Sub(minTs)
	padding := time.Duration(float64(base) * 0.10)
	if padding < minPadding {
		padding = minPadding
	}
	if padding > maxPadding {
		padding = maxPadding
	}

	padded := base + 2*padding
	zoomed := time.Duration(float64(padded) / zoom)
	if zoomed < minWindowDuration {
		zoomed = minWindowDuration
	}

	mid := minTs.Add(base / 2)
	return Bounds{
		Start:   mid.Add(-zoomed / 2),
		End:     mid.Add(zoomed / 2),
		marginX: marginX,
	}
}
