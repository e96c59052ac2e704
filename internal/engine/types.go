package engine

import "time"

// Event is a single immutable timeline entry supplied by the caller.
// The engine never mutates events; every layout pass reads them fresh.
type Event struct {
	ID          string
	Timestamp   time.Time
	Title       string
	Description string
	Sources     []string
}

// Viewport describes the pixel area the layout must fit into.
type Viewport struct {
	Width  float64
	Height float64
}

// Side marks which half of the timeline axis a slot or card occupies.
type Side int

const (
	SideAbove Side = iota
	SideBelow
)

// String returns "above" or "below".
func (s Side) String() string {
	if s == SideAbove {
		return "above"
	}
	return "below"
}

// CardType is a detail level in the degradation cascade, ordered from
// highest fidelity (full) to lowest (infinite overflow container).
type CardType int

const (
	CardFull CardType = iota
	CardCompact
	CardTitleOnly
	CardMultiEvent
	CardInfinite
)

var cardTypeNames = map[CardType]string{
	CardFull:       "full",
	CardCompact:    "compact",
	CardTitleOnly:  "title-only",
	CardMultiEvent: "multi-event",
	CardInfinite:   "infinite",
}

func (t CardType) String() string {
	if name, ok := cardTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// CardTypeSpec holds the fixed geometry and slot cost of one card type.
type CardTypeSpec struct {
	Width        float64
	Height       float64
	SlotsPerSide int // slots consumed on the card's own side
	MaxEvents    int // 0 means exactly one event; CardInfinite ignores this
}

// DistributedEvent is an event annotated with its horizontal pixel
// position and local density (events per day in a sliding window).
type DistributedEvent struct {
	Event
	X       float64
	Density float64
}

// Anchor is the representative point of a cluster: the centroid of its
// member positions and timestamps. Recomputed on every membership change.
type Anchor struct {
	ID        string
	X         float64
	Timestamp time.Time
	EventIDs  []string
	Count     int
}

// Cluster groups events whose x positions fall within the proximity
// threshold of its anchor. Clusters live for a single layout pass.
type Cluster struct {
	ID     string
	Anchor Anchor
	Events []DistributedEvent
}

// PositionedCard is the engine's output unit: a rectangle plus the
// events it represents.
type PositionedCard struct {
	ID         string
	Type       CardType
	ClusterID  string
	Side       Side
	X          float64 // left edge
	Y          float64 // top edge
	Width      float64
	Height     float64
	EventIDs   []string
	EventCount int
}

// UtilizationStats summarizes slot usage across the whole layout.
type UtilizationStats struct {
	TotalSlots int
	UsedSlots  int
	Percent    float64
}

// LayoutResult is the complete output of one layout pass.
type LayoutResult struct {
	Cards       []PositionedCard
	Anchors     []Anchor
	Clusters    []Cluster
	Utilization UtilizationStats
}
