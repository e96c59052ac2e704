package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// layoutAndValidate runs a layout and its validator in one step.
func layoutAndValidate(t *testing.T, e *Engine, events []Event, vp Viewport, zoom float64) (LayoutResult, ValidationReport) {
	t.Helper()
	result := e.Layout(events, vp, zoom)
	report := Validate(result, len(events), vp)
	return result, report
}

// --- boundary and degenerate inputs ---

func TestLayout_EmptyInput(t *testing.T) {
	e := newTestEngine(t)

	result := e.Layout(nil, testViewport, 1.0)

	assert.NotNil(t, result.Cards)
	assert.Empty(t, result.Cards)
	assert.Empty(t, result.Anchors)
	assert.Empty(t, result.Clusters)
	assert.Equal(t, UtilizationStats{}, result.Utilization)
}

func TestLayout_ZeroViewportWidth(t *testing.T) {
	e := newTestEngine(t)

	result, report := layoutAndValidate(t, e, evts(5, 30), Viewport{Width: 0, Height: 600}, 1.0)

	require.NotEmpty(t, result.Cards)
	assert.True(t, report.Valid || len(report.Errors) == 0, "no hard errors on zero-width viewport")
	for _, c := range result.Cards {
		assert.False(t, c.X != c.X, "card x must not be NaN")
		assert.False(t, c.Y != c.Y, "card y must not be NaN")
	}
}

func TestLayout_AllIdenticalTimestamps(t *testing.T) {
	e := newTestEngine(t)
	events := []Event{evt("a", 10), evt("b", 10), evt("c", 10), evt("d", 10)}

	result, report := layoutAndValidate(t, e, events, testViewport, 1.0)

	require.Len(t, result.Clusters, 1)
	assert.True(t, report.Valid, "errors: %v", report.Errors)
}

// --- spec scenarios ---

func TestLayout_ScenarioA_SingleEventFullCard(t *testing.T) {
	e := newTestEngine(t)

	result, report := layoutAndValidate(t, e, []Event{evt("only", 0)}, testViewport, 1.0)

	require.Len(t, result.Cards, 1)
	card := result.Cards[0]
	assert.Equal(t, CardFull, card.Type)
	assert.Equal(t, 1, card.EventCount)
	assert.True(t, card.Side == SideAbove || card.Side == SideBelow)
	assert.True(t, report.Valid, "errors: %v", report.Errors)
}

func TestLayout_ScenarioB_ThreeEventsCompact(t *testing.T) {
	e := newTestEngine(t)
	// Three events within the cluster threshold; single-column strategy
	// places the whole cluster on one side.
	events := []Event{evt("a", 10), evt("b", 10.2), evt("c", 10.4)}

	result, report := layoutAndValidate(t, e, events, testViewport, 1.0)

	require.Len(t, result.Clusters, 1)
	require.Len(t, result.Cards, 3)
	side := result.Cards[0].Side
	for _, c := range result.Cards {
		assert.Equal(t, CardCompact, c.Type)
		assert.Equal(t, side, c.Side, "one cluster stays on one side")
	}
	assert.True(t, report.Valid, "errors: %v", report.Errors)
}

func TestLayout_ScenarioC_DensePackDegradesWithoutOverlap(t *testing.T) {
	e := newTestEngine(t)
	// 25 events packed into ten days: side capacity is exceeded, so the
	// layout must fall back to multi-event or infinite cards.
	events := evts(25, 10)

	result, report := layoutAndValidate(t, e, events, testViewport, 1.0)

	assert.True(t, report.Valid, "errors: %v", report.Errors)
	degraded := report.HasInfiniteCards || report.CardTypeCounts[CardMultiEvent] > 0
	assert.True(t, degraded, "expected multi-event or infinite cards, got %v", report.CardTypeCounts)

	covered := 0
	for _, c := range result.Cards {
		covered += c.EventCount
	}
	assert.Equal(t, 25, covered)
}

func TestLayout_ScenarioD_IdenticalTimestampsShareAnchor(t *testing.T) {
	e := newTestEngine(t)
	events := []Event{evt("a", 10), evt("b", 10)}

	result, _ := layoutAndValidate(t, e, events, testViewport, 1.0)

	require.Len(t, result.Clusters, 1)
	require.Len(t, result.Clusters[0].Events, 2)
	sharedX := result.Clusters[0].Events[0].X
	assert.Equal(t, sharedX, result.Clusters[0].Events[1].X)
	assert.InDelta(t, sharedX, result.Anchors[0].X, 1e-9)
}

// --- global properties ---

func TestLayout_CoverageProperty(t *testing.T) {
	e := newTestEngine(t)

	for _, n := range []int{1, 3, 7, 12, 40, 150} {
		t.Run(fmt.Sprintf("%d_events", n), func(t *testing.T) {
			events := evts(n, 90)
			result := e.Layout(events, testViewport, 1.0)

			covered := 0
			seen := map[string]int{}
			for _, c := range result.Cards {
				covered += c.EventCount
				for _, id := range c.EventIDs {
					seen[id]++
				}
			}
			assert.Equal(t, n, covered)
			for id, count := range seen {
				assert.Equal(t, 1, count, "event %s must appear in exactly one card", id)
			}
			assert.Len(t, seen, n)
		})
	}
}

func TestLayout_NoOverlapProperty(t *testing.T) {
	e := newTestEngine(t)

	for _, n := range []int{2, 10, 50, 200} {
		t.Run(fmt.Sprintf("%d_events", n), func(t *testing.T) {
			result := e.Layout(evts(n, 60), testViewport, 1.0)

			for i := 0; i < len(result.Cards); i++ {
				for j := i + 1; j < len(result.Cards); j++ {
					assert.False(t, rectanglesOverlap(result.Cards[i], result.Cards[j]),
						"cards %s and %s overlap", result.Cards[i].ID, result.Cards[j].ID)
				}
			}
		})
	}
}

func TestLayout_Deterministic(t *testing.T) {
	events := evts(80, 365)

	a := newTestEngine(t).Layout(events, testViewport, 1.5)
	b := newTestEngine(t).Layout(events, testViewport, 1.5)

	require.Equal(t, a, b, "identical inputs must yield bit-identical output")
}

func TestLayout_ZoomIdempotence(t *testing.T) {
	e := newTestEngine(t)
	events := evts(30, 120)

	first := e.Layout(events, testViewport, 2.0)
	second := e.Layout(events, testViewport, 2.0)

	assert.Equal(t, first.Clusters, second.Clusters)
	assert.Equal(t, first.Anchors, second.Anchors)
}

func TestLayout_DegradationMonotonicWithinCluster(t *testing.T) {
	e := newTestEngine(t)
	events := evts(60, 20)

	result := e.Layout(events, testViewport, 1.0)

	byCluster := map[string]map[CardType]bool{}
	for _, c := range result.Cards {
		if byCluster[c.ClusterID] == nil {
			byCluster[c.ClusterID] = map[CardType]bool{}
		}
		byCluster[c.ClusterID][c.Type] = true
	}

	for id, types := range byCluster {
		// Uniform mode allows at most one type per cluster, plus the
		// infinite overflow sink.
		nonSink := 0
		for tt := range types {
			if tt != CardInfinite {
				nonSink++
			}
		}
		assert.LessOrEqual(t, nonSink, 1, "cluster %s mixes card types: %v", id, types)
	}
}

func TestLayout_MixedModeEngine(t *testing.T) {
	e := newTestEngine(t, func(cfg *Config) { cfg.MixedMode = true })
	events := evts(12, 0.5)

	result, report := layoutAndValidate(t, e, events, testViewport, 1.0)

	assert.True(t, report.Valid, "errors: %v", report.Errors)
	covered := 0
	for _, c := range result.Cards {
		covered += c.EventCount
	}
	assert.Equal(t, 12, covered)
}

func TestLayout_DualColumnEngine(t *testing.T) {
	e := newTestEngine(t, func(cfg *Config) { cfg.Strategy = StrategyDualColumn })
	events := evts(6, 0.5)

	result, report := layoutAndValidate(t, e, events, testViewport, 1.0)

	assert.True(t, report.Valid, "errors: %v", report.Errors)

	above, below := false, false
	for _, c := range result.Cards {
		if c.Side == SideAbove {
			above = true
		} else {
			below = true
		}
	}
	assert.True(t, above && below, "dual-column layout should use both sides")
}

func TestLayout_UtilizationStats(t *testing.T) {
	e := newTestEngine(t)

	result := e.Layout([]Event{evt("a", 0)}, testViewport, 1.0)

	// One cluster: a full card uses 4 of 16 slots.
	assert.Equal(t, 16, result.Utilization.TotalSlots)
	assert.Equal(t, 4, result.Utilization.UsedSlots)
	assert.InDelta(t, 25.0, result.Utilization.Percent, 1e-9)
}

func TestLayout_CardsCenteredOnAnchor(t *testing.T) {
	e := newTestEngine(t)

	result := e.Layout([]Event{evt("a", 0)}, testViewport, 1.0)

	require.Len(t, result.Cards, 1)
	card := result.Cards[0]
	assert.InDelta(t, result.Anchors[0].X, card.X+card.Width/2, 1e-9)
}

func TestLayout_StackedOutwardFromAxis(t *testing.T) {
	e := newTestEngine(t)
	// Three compact cards in one cluster, stacked on one side.
	events := []Event{evt("a", 10), evt("b", 10.1), evt("c", 10.2)}

	result := e.Layout(events, testViewport, 1.0)
	require.Len(t, result.Cards, 3)

	axisY := testViewport.Height / 2
	cfg := DefaultConfig()
	if result.Cards[0].Side == SideAbove {
		assert.InDelta(t, axisY-cfg.AxisGap, result.Cards[0].Y+result.Cards[0].Height, 1e-9)
		assert.Less(t, result.Cards[1].Y, result.Cards[0].Y, "later cards stack further from the axis")
	} else {
		assert.InDelta(t, axisY+cfg.AxisGap, result.Cards[0].Y, 1e-9)
		assert.Greater(t, result.Cards[1].Y, result.Cards[0].Y)
	}
}
