package engine

import "fmt"

// cardPlan is a card that has been assigned a type, a side, and events,
// but no geometry yet. Assembly turns plans into PositionedCards.
type cardPlan struct {
	id       string
	cardType CardType
	side     Side
	eventIDs []string
}

// halfColumn is the unit the cascade operates on: the events a cluster
// contributes to one side of the axis.
type halfColumn struct {
	side   Side
	events []DistributedEvent
}

// Positioner decides how a cluster's events are split into half-columns.
// Strategies are injected into the degradation coordinator so the
// slot-mutation logic lives in exactly one place.
type Positioner interface {
	split(c *Cluster, clusterIndex int) []halfColumn
}

// singleColumn puts the whole cluster on one side, alternating sides
// between consecutive clusters so neighbors never share a half-plane.
type singleColumn struct{}

func (singleColumn) split(c *Cluster, clusterIndex int) []halfColumn {
	side := SideAbove
	if clusterIndex%2 == 1 {
		side = SideBelow
	}
	return []halfColumn{{side: side, events: c.Events}}
}

// dualColumn decorrelates above and below: the chronologically earlier
// half of the cluster goes above the axis, the rest below.
type dualColumn struct{}

func (dualColumn) split(c *Cluster, clusterIndex int) []halfColumn {
	n := len(c.Events)
	cut := (n + 1) / 2
	cols := []halfColumn{{side: SideAbove, events: c.Events[:cut]}}
	if cut < n {
		cols = append(cols, halfColumn{side: SideBelow, events: c.Events[cut:]})
	}
	return cols
}

func positionerFor(s Strategy) Positioner {
	if s == StrategyDualColumn {
		return dualColumn{}
	}
	return singleColumn{}
}

// degradationCoordinator owns all slot mutation: it walks the cascade
// per half-column, occupies the grid, and later runs the promotion pass.
type degradationCoordinator struct {
	cfg        Config
	positioner Positioner
}

// clusterPlan pairs a cluster with its grid and planned cards for the
// duration of one pass.
type clusterPlan struct {
	cluster *Cluster
	grid    *SlotGrid
	cards   []cardPlan
}

// cardsNeeded returns how many cards of type t represent n events.
func (d *degradationCoordinator) cardsNeeded(t CardType, n int) int {
	switch t {
	case CardMultiEvent:
		max := d.cfg.maxEventsPerMulti()
		return (n + max - 1) / max
	case CardInfinite:
		return 1
	default:
		return n
	}
}

// planCluster selects card types for every half-column of one cluster
// and records the occupancy in a fresh grid.
func (d *degradationCoordinator) planCluster(c *Cluster, clusterIndex int) clusterPlan {
	grid := NewSlotGrid(d.cfg.SlotsPerSide)
	plan := clusterPlan{cluster: c, grid: grid}

	seq := 0
	for _, col := range d.positioner.split(c, clusterIndex) {
		var cards []cardPlan
		if d.cfg.MixedMode {
			cards = d.selectMixed(c.ID, col, grid, &seq)
		} else {
			cards = d.selectUniform(c.ID, col, grid, &seq)
		}
		plan.cards = append(plan.cards, cards...)
	}
	return plan
}

// selectUniform walks the cascade from full down to infinite and stops
// at the first type whose total
// footprint fits the half-column's remaining budget. 1-2 events render
// full, exactly 3 compact, 4 or more title-only; past the per-side
// capacity, events bundle into multi-event cards and any remainder
// collapses into a single infinite card. Never fails: with zero capacity
// everything lands in one unoccupied infinite card.
func (d *degradationCoordinator) selectUniform(clusterID string, col halfColumn, grid *SlotGrid, seq *int) []cardPlan {
	n := len(col.events)
	if n == 0 {
		return nil
	}
	free := grid.FreeSlots(col.side)

	fits := func(t CardType, cards int) bool {
		return cards*d.cfg.spec(t).SlotsPerSide <= free
	}

	switch {
	case n <= 2 && fits(CardFull, n):
		return d.emitSingles(clusterID, col, CardFull, grid, seq)
	case n <= 3 && fits(CardCompact, n):
		return d.emitSingles(clusterID, col, CardCompact, grid, seq)
	case fits(CardTitleOnly, n):
		return d.emitSingles(clusterID, col, CardTitleOnly, grid, seq)
	}

	if m := d.cardsNeeded(CardMultiEvent, n); fits(CardMultiEvent, m) {
		return d.emitBundles(clusterID, col.events, col.side, grid, seq)
	}

	// Over budget even for pure multi-event: pack what fits into
	// multi-event cards, reserving one slot for the overflow sink.
	multiCost := d.cfg.spec(CardMultiEvent).SlotsPerSide
	infCost := d.cfg.spec(CardInfinite).SlotsPerSide
	maxMultiCards := 0
	if multiCost > 0 && free > infCost {
		maxMultiCards = (free - infCost) / multiCost
	}

	perCard := d.cfg.maxEventsPerMulti()
	bundled := maxMultiCards * perCard
	if bundled > n {
		bundled = n
	}

	var out []cardPlan
	if bundled > 0 {
		out = d.emitBundles(clusterID, col.events[:bundled], col.side, grid, seq)
	}
	out = append(out, d.emitInfinite(clusterID, col.events[bundled:], col.side, grid, seq))
	return out
}

// selectMixed assigns chronologically earlier events higher-fidelity
// types, degrading per event as the half-column's budget runs out.
func (d *degradationCoordinator) selectMixed(clusterID string, col halfColumn, grid *SlotGrid, seq *int) []cardPlan {
	var out []cardPlan
	events := col.events

	for i := 0; i < len(events); {
		remaining := len(events) - i
		free := grid.FreeSlots(col.side)
		placed := false

		for _, t := range []CardType{CardFull, CardCompact, CardTitleOnly, CardMultiEvent} {
			spec := d.cfg.spec(t)
			consume := 1
			if t == CardMultiEvent {
				consume = d.cfg.maxEventsPerMulti()
				if consume > remaining {
					consume = remaining
				}
			}
			// Keep one slot in reserve for the overflow sink when more
			// events will follow this card.
			reserve := 0
			if remaining-consume > 0 {
				reserve = d.cfg.spec(CardInfinite).SlotsPerSide
			}
			if spec.SlotsPerSide+reserve > free {
				continue
			}
			out = append(out, d.emit(clusterID, t, events[i:i+consume], col.side, grid, seq))
			i += consume
			placed = true
			break
		}

		if !placed {
			out = append(out, d.emitInfinite(clusterID, events[i:], col.side, grid, seq))
			break
		}
	}
	return out
}

// emitSingles produces one card per event, all of the same type.
func (d *degradationCoordinator) emitSingles(clusterID string, col halfColumn, t CardType, grid *SlotGrid, seq *int) []cardPlan {
	out := make([]cardPlan, 0, len(col.events))
	for i := range col.events {
		out = append(out, d.emit(clusterID, t, col.events[i:i+1], col.side, grid, seq))
	}
	return out
}

// emitBundles chunks events into multi-event cards.
func (d *degradationCoordinator) emitBundles(clusterID string, events []DistributedEvent, side Side, grid *SlotGrid, seq *int) []cardPlan {
	perCard := d.cfg.maxEventsPerMulti()
	var out []cardPlan
	for i := 0; i < len(events); i += perCard {
		end := i + perCard
		if end > len(events) {
			end = len(events)
		}
		out = append(out, d.emit(clusterID, CardMultiEvent, events[i:end], side, grid, seq))
	}
	return out
}

// emitInfinite produces the overflow sink card. The card is emitted even
// when the grid cannot hold it, so no event is ever dropped.
func (d *degradationCoordinator) emitInfinite(clusterID string, events []DistributedEvent, side Side, grid *SlotGrid, seq *int) cardPlan {
	return d.emit(clusterID, CardInfinite, events, side, grid, seq)
}

// emit builds one card plan and records its footprint in the grid.
// Occupancy failure is tolerated only for the infinite sink.
func (d *degradationCoordinator) emit(clusterID string, t CardType, events []DistributedEvent, side Side, grid *SlotGrid, seq *int) cardPlan {
	id := fmt.Sprintf("%s-card-%d", clusterID, *seq)
	*seq++

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.Event.ID
	}

	grid.Occupy(d.cfg.spec(t), t, id, side)

	return cardPlan{id: id, cardType: t, side: side, eventIDs: ids}
}

// promote runs the promotion pass: when global utilization is below the
// low-water mark, each cluster whose cards share one type gets one step
// back up the cascade, provided the promoted footprint still fits its
// half-column budget.
func (d *degradationCoordinator) promote(plans []clusterPlan) {
	total, used := 0, 0
	for _, p := range plans {
		total += p.grid.TotalSlots()
		used += p.grid.OccupiedSlots()
	}
	if total == 0 || float64(used)/float64(total) >= d.cfg.PromotionThreshold {
		return
	}

	for i := range plans {
		d.promoteCluster(&plans[i])
	}
}

// promoteCluster rewrites one cluster's plans at the next higher detail
// level when every half-column can absorb the larger footprint.
func (d *degradationCoordinator) promoteCluster(p *clusterPlan) {
	t, uniform := uniformType(p.cards)
	if !uniform || t == CardFull {
		return
	}
	promoted := t - 1

	// Group events back into half-columns, preserving card order.
	bySide := map[Side][]string{}
	var sideOrder []Side
	for _, c := range p.cards {
		if _, ok := bySide[c.side]; !ok {
			sideOrder = append(sideOrder, c.side)
		}
		bySide[c.side] = append(bySide[c.side], c.eventIDs...)
	}

	spec := d.cfg.spec(promoted)
	for _, side := range sideOrder {
		needed := d.cardsNeeded(promoted, len(bySide[side]))
		if needed*spec.SlotsPerSide > p.grid.Capacity() {
			return
		}
	}

	for _, c := range p.cards {
		p.grid.Release(c.id)
	}

	events := indexEvents(p.cluster.Events)
	seq := 0
	var cards []cardPlan
	for _, side := range sideOrder {
		col := halfColumn{side: side, events: resolveEvents(bySide[side], events)}
		if promoted == CardMultiEvent {
			cards = append(cards, d.emitBundles(p.cluster.ID, col.events, side, p.grid, &seq)...)
		} else {
			cards = append(cards, d.emitSingles(p.cluster.ID, col, promoted, p.grid, &seq)...)
		}
	}
	p.cards = cards
}

// uniformType reports the single card type shared by all plans, if any.
func uniformType(cards []cardPlan) (CardType, bool) {
	if len(cards) == 0 {
		return 0, false
	}
	t := cards[0].cardType
	for _, c := range cards[1:] {
		if c.cardType != t {
			return 0, false
		}
	}
	return t, true
}

func indexEvents(events []DistributedEvent) map[string]DistributedEvent {
	m := make(map[string]DistributedEvent, len(events))
	for _, e := range events {
		m[e.Event.ID] = e
	}
	return m
}

func resolveEvents(ids []string, byID map[string]DistributedEvent) []DistributedEvent {
	out := make([]DistributedEvent, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out
}
