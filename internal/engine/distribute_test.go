package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distributeForTest(t *testing.T, events []Event, vpWidth float64) []DistributedEvent {
	t.Helper()
	cfg := DefaultConfig()
	b := computeBounds(events, 1.0, cfg.MarginX, base)
	return distribute(events, b, vpWidth, cfg)
}

func TestDistribute_SortsChronologically(t *testing.T) {
	events := []Event{evt("late", 30), evt("early", 0), evt("mid", 15)}

	out := distributeForTest(t, events, 800)
	require.Len(t, out, 3)

	assert.Equal(t, "early", out[0].Event.ID)
	assert.Equal(t, "mid", out[1].Event.ID)
	assert.Equal(t, "late", out[2].Event.ID)

	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i].X, out[i-1].X, "x positions must be monotonic")
	}
}

func TestDistribute_StableTieBreak(t *testing.T) {
	// Three events share one timestamp; original relative order must
	// survive the sort.
	events := []Event{evt("first", 10), evt("second", 10), evt("third", 10)}

	out := distributeForTest(t, events, 800)
	require.Len(t, out, 3)
	assert.Equal(t, "first", out[0].Event.ID)
	assert.Equal(t, "second", out[1].Event.ID)
	assert.Equal(t, "third", out[2].Event.ID)
}

func TestDistribute_CoincidentTimestampsShareX(t *testing.T) {
	events := []Event{evt("a", 10), evt("b", 10)}

	out := distributeForTest(t, events, 800)
	require.Len(t, out, 2)
	assert.Equal(t, out[0].X, out[1].X)
}

func TestDistribute_Density(t *testing.T) {
	// Five events within four days: every event sees all five inside
	// its 30-day window.
	out := distributeForTest(t, evts(5, 4), 800)

	for _, e := range out {
		assert.InDelta(t, 5.0/30.0, e.Density, 1e-9)
	}
}

func TestDistribute_DensityIsolatedEvent(t *testing.T) {
	// An event 100 days from the others only sees itself.
	events := []Event{evt("a", 0), evt("b", 1), evt("far", 100)}

	out := distributeForTest(t, events, 800)
	require.Len(t, out, 3)
	assert.InDelta(t, 1.0/30.0, out[2].Density, 1e-9)
}

func TestDistribute_MinPitchWhenCrowded(t *testing.T) {
	// 40 events on one day, narrow viewport: fewer pitch columns than
	// events, so the spacing pass kicks in.
	events := evts(40, 0)

	out := distributeForTest(t, events, 300)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i].X-out[i-1].X, DefaultConfig().MinEventPitch-1e-9)
	}
}

func TestDistribute_NoSpreadWhenSparse(t *testing.T) {
	// Two coincident events in a wide viewport keep their shared x.
	events := []Event{evt("a", 5), evt("b", 5)}

	out := distributeForTest(t, events, 1600)
	require.Len(t, out, 2)
	assert.Equal(t, out[0].X, out[1].X)
}

func TestDistribute_Deterministic(t *testing.T) {
	events := evts(50, 365)

	a := distributeForTest(t, events, 800)
	b := distributeForTest(t, events, 800)
	assert.Equal(t, a, b)
}

func TestDistribute_Empty(t *testing.T) {
	out := distributeForTest(t, nil, 800)
	assert.Empty(t, out)
}
