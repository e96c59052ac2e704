package engine

// Strategy selects how a cluster's cards are distributed around the axis.
// It is fixed at engine construction so a given engine instance always
// behaves the same way.
type Strategy int

const (
	// StrategySingleColumn places each cluster's cards in one column on a
	// single side of the axis, alternating sides between clusters.
	StrategySingleColumn Strategy = iota

	// StrategyDualColumn splits each cluster's events between the above
	// and below half-columns, halving stack height per side.
	StrategyDualColumn
)

func (s Strategy) String() string {
	if s == StrategyDualColumn {
		return "dual-column"
	}
	return "single-column"
}

// Config holds all layout tuning. Hosts retune visual density here
// without touching engine logic.
type Config struct {
	// CardTypes maps each detail level to its geometry and slot cost.
	CardTypes map[CardType]CardTypeSpec

	// ClusterThreshold is the horizontal proximity (px) within which an
	// event joins an existing cluster rather than starting a new one.
	// Card widths should stay below it so same-side clusters cannot
	// collide.
	ClusterThreshold float64

	// SlotsPerSide is the slot budget of each half-column.
	SlotsPerSide int

	// PromotionThreshold is the global utilization fraction below which
	// clusters are promoted one step back up the cascade.
	PromotionThreshold float64

	// AxisGap is the vertical distance (px) from the axis to the nearest
	// card edge on either side.
	AxisGap float64

	// CardGap is the vertical spacing (px) between stacked cards.
	CardGap float64

	// MarginX is the fixed horizontal UI margin (px) on each edge of the
	// viewport, excluded from the time-to-pixel mapping.
	MarginX float64

	// DensityWindowDays is the sliding window (days) used when computing
	// local event density.
	DensityWindowDays int

	// MinEventPitch is the minimum horizontal spacing (px) enforced by
	// the spreading pass when the view is underused.
	MinEventPitch float64

	// Strategy picks the positioner variant.
	Strategy Strategy

	// MixedMode lets one cluster mix card types, giving chronologically
	// earlier events higher fidelity.
	MixedMode bool
}

// DefaultConfig returns the canonical capacity model: an 8-slot budget
// per half-column with footprints chosen so 1-2 events render full,
// 3 render compact, 4-8 title-only, and denser clusters collapse into
// multi-event and infinite cards.
func DefaultConfig() Config {
	return Config{
		CardTypes: map[CardType]CardTypeSpec{
			CardFull:       {Width: 72, Height: 64, SlotsPerSide: 4},
			CardCompact:    {Width: 72, Height: 44, SlotsPerSide: 2},
			CardTitleOnly:  {Width: 72, Height: 24, SlotsPerSide: 1},
			CardMultiEvent: {Width: 72, Height: 48, SlotsPerSide: 2, MaxEvents: 5},
			CardInfinite:   {Width: 72, Height: 28, SlotsPerSide: 1},
		},
		ClusterThreshold:   80,
		SlotsPerSide:       8,
		PromotionThreshold: 0.40,
		AxisGap:            12,
		CardGap:            8,
		MarginX:            40,
		DensityWindowDays:  30,
		MinEventPitch:      12,
		Strategy:           StrategySingleColumn,
		MixedMode:          false,
	}
}

// spec returns the geometry for a card type, falling back to the
// defaults when the host config omits one.
func (c Config) spec(t CardType) CardTypeSpec {
	if s, ok := c.CardTypes[t]; ok {
		return s
	}
	return DefaultConfig().CardTypes[t]
}

// maxEventsPerMulti returns the bundle limit for multi-event cards.
func (c Config) maxEventsPerMulti() int {
	if s, ok := c.CardTypes[CardMultiEvent]; ok && s.MaxEvents > 0 {
		return s.MaxEvents
	}
	return 5
}
