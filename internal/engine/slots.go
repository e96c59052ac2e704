package engine

import "fmt"

// Slot is one discrete placement unit on a half-column.
type Slot struct {
	Index    int
	Side     Side
	Column   int
	Occupied bool
	CardID   string
	CardType CardType
}

// SlotGrid is the capacity bookkeeping for one cluster: two fixed pools
// of slots, above and below the axis. A fresh grid is allocated for each
// cluster on every layout pass; grids are never shared across passes.
type SlotGrid struct {
	capacity int
	above    []Slot
	below    []Slot
}

// NewSlotGrid allocates an empty grid with the given per-side capacity.
func NewSlotGrid(capacity int) *SlotGrid {
	if capacity < 0 {
		capacity = 0
	}
	g := &SlotGrid{capacity: capacity}
	g.above = make([]Slot, capacity)
	g.below = make([]Slot, capacity)
	for i := 0; i < capacity; i++ {
		g.above[i] = Slot{Index: i, Side: SideAbove}
		g.below[i] = Slot{Index: i, Side: SideBelow}
	}
	return g
}

// Capacity returns the slot budget of each side.
func (g *SlotGrid) Capacity() int { return g.capacity }

func (g *SlotGrid) pool(side Side) []Slot {
	if side == SideAbove {
		return g.above
	}
	return g.below
}

// FreeSlots returns the number of unoccupied slots on one side.
func (g *SlotGrid) FreeSlots(side Side) int {
	free := 0
	for _, s := range g.pool(side) {
		if !s.Occupied {
			free++
		}
	}
	return free
}

// CheckAvailability reports whether a card of the given type fits on the
// given side, along with the free and required slot counts. It never
// mutates the grid.
func (g *SlotGrid) CheckAvailability(spec CardTypeSpec, side Side) (fits bool, free, needed int) {
	free = g.FreeSlots(side)
	needed = spec.SlotsPerSide
	return needed <= free, free, needed
}

// Occupy claims the slots a card needs on one side. It is all or
// nothing: when the side cannot hold the full footprint, no slot is
// touched and false is returned.
func (g *SlotGrid) Occupy(spec CardTypeSpec, cardType CardType, cardID string, side Side) bool {
	fits, _, needed := g.CheckAvailability(spec, side)
	if !fits {
		return false
	}

	pool := g.pool(side)
	claimed := 0
	for i := range pool {
		if claimed == needed {
			break
		}
		if pool[i].Occupied {
			continue
		}
		pool[i].Occupied = true
		pool[i].CardID = cardID
		pool[i].CardType = cardType
		claimed++
	}
	return true
}

// Release frees every slot held by the given card id, on both sides.
// Used only when a pass is re-run (promotion); never mid-placement.
func (g *SlotGrid) Release(cardID string) {
	for _, pool := range [][]Slot{g.above, g.below} {
		for i := range pool {
			if pool[i].Occupied && pool[i].CardID == cardID {
				pool[i].Occupied = false
				pool[i].CardID = ""
				pool[i].CardType = 0
			}
		}
	}
}

// OccupiedSlots returns the total occupied count across both sides.
func (g *SlotGrid) OccupiedSlots() int {
	used := 0
	for _, pool := range [][]Slot{g.above, g.below} {
		for _, s := range pool {
			if s.Occupied {
				used++
			}
		}
	}
	return used
}

// TotalSlots returns the combined slot budget of both sides.
func (g *SlotGrid) TotalSlots() int { return 2 * g.capacity }

// Utilization returns occupied/total as a percentage. An empty grid is
// 0% utilized.
func (g *SlotGrid) Utilization() float64 {
	total := g.TotalSlots()
	if total == 0 {
		return 0
	}
	return float64(g.OccupiedSlots()) / float64(total) * 100
}

// Validate checks the bookkeeping invariant: the occupied count derived
// from slot flags must match a per-card tally. Test harnesses call this
// after every mutation batch.
func (g *SlotGrid) Validate() error {
	byFlag := g.OccupiedSlots()
	byCard := 0
	seen := map[string]int{}
	for _, pool := range [][]Slot{g.above, g.below} {
		for _, s := range pool {
			if s.Occupied {
				if s.CardID == "" {
					return fmt.Errorf("slot %d/%s occupied without a card id", s.Index, s.Side)
				}
				seen[s.CardID]++
				byCard++
			}
		}
	}
	if byFlag != byCard {
		return fmt.Errorf("occupancy mismatch: %d flags vs %d card slots", byFlag, byCard)
	}
	return nil
}
