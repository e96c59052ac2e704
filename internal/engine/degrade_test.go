package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCoordinator(cfg Config) degradationCoordinator {
	return degradationCoordinator{cfg: cfg, positioner: positionerFor(cfg.Strategy)}
}

// clusterOf builds a cluster of n coincident events for cascade tests.
func clusterOf(n int) *Cluster {
	events := make([]DistributedEvent, n)
	for i := 0; i < n; i++ {
		events[i] = DistributedEvent{Event: evt(fmt.Sprintf("e%02d", i), 0), X: 200}
	}
	c := &Cluster{ID: "cluster-0", Events: events}
	c.Anchor = recomputeAnchor("anchor-0", events)
	return c
}

func cardTypes(cards []cardPlan) []CardType {
	out := make([]CardType, len(cards))
	for i, c := range cards {
		out[i] = c.cardType
	}
	return out
}

func totalEvents(cards []cardPlan) int {
	n := 0
	for _, c := range cards {
		n += len(c.eventIDs)
	}
	return n
}

// --- cascade selection ---

func TestDegrade_Cascade(t *testing.T) {
	tests := []struct {
		events    int
		wantTypes []CardType
	}{
		{1, []CardType{CardFull}},
		{2, []CardType{CardFull, CardFull}},
		{3, []CardType{CardCompact, CardCompact, CardCompact}},
		{4, []CardType{CardTitleOnly, CardTitleOnly, CardTitleOnly, CardTitleOnly}},
		{8, []CardType{CardTitleOnly, CardTitleOnly, CardTitleOnly, CardTitleOnly, CardTitleOnly, CardTitleOnly, CardTitleOnly, CardTitleOnly}},
		{9, []CardType{CardMultiEvent, CardMultiEvent}},
		{20, []CardType{CardMultiEvent, CardMultiEvent, CardMultiEvent, CardMultiEvent}},
		{25, []CardType{CardMultiEvent, CardMultiEvent, CardMultiEvent, CardInfinite}},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d_events", tc.events), func(t *testing.T) {
			coor := newCoordinator(DefaultConfig())
			plan := coor.planCluster(clusterOf(tc.events), 0)

			assert.Equal(t, tc.wantTypes, cardTypes(plan.cards))
			assert.Equal(t, tc.events, totalEvents(plan.cards), "every event must be represented")
			require.NoError(t, plan.grid.Validate())
		})
	}
}

func TestDegrade_InfiniteAbsorbsRemainder(t *testing.T) {
	coor := newCoordinator(DefaultConfig())
	plan := coor.planCluster(clusterOf(25), 0)

	last := plan.cards[len(plan.cards)-1]
	assert.Equal(t, CardInfinite, last.cardType)
	assert.Equal(t, 10, len(last.eventIDs), "3 multi-event cards hold 15, infinite takes the rest")
}

func TestDegrade_ZeroCapacityStillEmitsInfinite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SlotsPerSide = 0

	coor := newCoordinator(cfg)
	plan := coor.planCluster(clusterOf(7), 0)

	require.Len(t, plan.cards, 1)
	assert.Equal(t, CardInfinite, plan.cards[0].cardType)
	assert.Equal(t, 7, len(plan.cards[0].eventIDs))
}

func TestDegrade_SingleColumnAlternatesSides(t *testing.T) {
	coor := newCoordinator(DefaultConfig())

	even := coor.planCluster(clusterOf(2), 0)
	odd := coor.planCluster(clusterOf(2), 1)

	for _, c := range even.cards {
		assert.Equal(t, SideAbove, c.side)
	}
	for _, c := range odd.cards {
		assert.Equal(t, SideBelow, c.side)
	}
}

func TestDegrade_DualColumnSplitsSides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyDualColumn

	coor := newCoordinator(cfg)
	plan := coor.planCluster(clusterOf(4), 0)

	above, below := 0, 0
	for _, c := range plan.cards {
		if c.side == SideAbove {
			above += len(c.eventIDs)
		} else {
			below += len(c.eventIDs)
		}
	}
	assert.Equal(t, 2, above)
	assert.Equal(t, 2, below)
}

func TestDegrade_DualColumnSingleEventStaysAbove(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyDualColumn

	coor := newCoordinator(cfg)
	plan := coor.planCluster(clusterOf(1), 3)

	require.Len(t, plan.cards, 1)
	assert.Equal(t, SideAbove, plan.cards[0].side)
}

// --- mixed mode ---

func TestDegrade_MixedModeFavorsEarlierEvents(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MixedMode = true

	coor := newCoordinator(cfg)
	plan := coor.planCluster(clusterOf(6), 0)

	types := cardTypes(plan.cards)
	require.NotEmpty(t, types)
	assert.Equal(t, CardFull, types[0], "earliest event gets the highest fidelity")
	for i := 1; i < len(types); i++ {
		assert.GreaterOrEqual(t, types[i], types[i-1], "fidelity must not increase later in the cluster")
	}
	assert.Equal(t, 6, totalEvents(plan.cards))
	require.NoError(t, plan.grid.Validate())
}

// --- promotion ---

func TestPromote_LowUtilizationPromotesOneStep(t *testing.T) {
	cfg := DefaultConfig()
	coor := newCoordinator(cfg)

	// Four events render title-only (4 slots of 16 used = 25%), below
	// the 40% low-water mark; compact (4x2=8 slots) still fits.
	plans := []clusterPlan{coor.planCluster(clusterOf(4), 0)}
	coor.promote(plans)

	types := cardTypes(plans[0].cards)
	for _, tt := range types {
		assert.Equal(t, CardCompact, tt)
	}
	require.NoError(t, plans[0].grid.Validate())
}

func TestPromote_SkipsWhenPromotedFootprintTooBig(t *testing.T) {
	cfg := DefaultConfig()
	coor := newCoordinator(cfg)

	// Three compact cards use 6 of 16 slots (37.5% < 40%), but three
	// full cards would need 12 of 8 per-side slots.
	plans := []clusterPlan{coor.planCluster(clusterOf(3), 0)}
	coor.promote(plans)

	for _, tt := range cardTypes(plans[0].cards) {
		assert.Equal(t, CardCompact, tt)
	}
}

func TestPromote_SkipsWhenUtilizationHigh(t *testing.T) {
	cfg := DefaultConfig()
	coor := newCoordinator(cfg)

	// Two full cards use 8 of 16 slots = 50%, above the low-water mark.
	plans := []clusterPlan{coor.planCluster(clusterOf(2), 0)}
	before := cardTypes(plans[0].cards)
	coor.promote(plans)

	assert.Equal(t, before, cardTypes(plans[0].cards))
}

func TestPromote_FullCardsNeverPromote(t *testing.T) {
	cfg := DefaultConfig()
	coor := newCoordinator(cfg)

	// One full card: 4 of 16 slots = 25% utilization, but there is
	// nothing above full in the cascade.
	plans := []clusterPlan{coor.planCluster(clusterOf(1), 0)}
	coor.promote(plans)

	require.Len(t, plans[0].cards, 1)
	assert.Equal(t, CardFull, plans[0].cards[0].cardType)
}
