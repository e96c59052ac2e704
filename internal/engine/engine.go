// Package engine computes collision-free card layouts for timestamped
// events along a horizontal axis. Each call is a full, stateless,
// synchronous recomputation: the same events, viewport, and zoom always
// produce the same geometry, and the output card count stays bounded no
// matter how many events crowd a narrow time window.
package engine

import "time"

// Engine runs the layout pipeline: bounds, distribution, clustering,
// degradation, assembly. It holds only configuration; all per-pass
// state (clusters, slot grids) is allocated fresh inside Layout, so
// concurrent calls on one Engine are independent.
type Engine struct {
	cfg  Config
	coor degradationCoordinator
	now  func() time.Time
}

// Option adjusts an Engine at construction time.
type Option func(*Engine)

// WithClock substitutes the time source used for the empty-input default
// window. Tests rely on this for reproducible bounds.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an Engine from a config. The strategy and mixed-mode flag
// in cfg are fixed for the engine's lifetime.
func New(cfg Config, opts ...Option) *Engine {
	if cfg.CardTypes == nil {
		cfg.CardTypes = DefaultConfig().CardTypes
	}
	e := &Engine{
		cfg: cfg,
		coor: degradationCoordinator{
			cfg:        cfg,
			positioner: positionerFor(cfg.Strategy),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Layout computes a full layout for the given events. It never fails:
// degenerate inputs (no events, zero-width viewport, identical
// timestamps) produce well-defined minimal results, and density pressure
// is absorbed by the degradation cascade rather than dropped events.
func (e *Engine) Layout(events []Event, vp Viewport, zoom float64) LayoutResult {
	if len(events) == 0 {
		return LayoutResult{
			Cards:    []PositionedCard{},
			Anchors:  []Anchor{},
			Clusters: []Cluster{},
		}
	}

	bounds := computeBounds(events, zoom, e.cfg.MarginX, e.now())
	distributed := distribute(events, bounds, vp.Width, e.cfg)
	clusters := clusterEvents(distributed, e.cfg.ClusterThreshold)

	plans := make([]clusterPlan, len(clusters))
	for i, c := range clusters {
		plans[i] = e.coor.planCluster(c, i)
	}

	if !e.cfg.MixedMode {
		e.coor.promote(plans)
	}

	result := LayoutResult{
		Cards:       assemble(plans, vp, e.cfg),
		Anchors:     make([]Anchor, len(clusters)),
		Clusters:    make([]Cluster, len(clusters)),
		Utilization: utilization(plans),
	}
	for i, c := range clusters {
		result.Anchors[i] = c.Anchor
		result.Clusters[i] = *c
	}
	return result
}

// Bounds exposes the computed time window for a given event set and
// zoom, for hosts that need the time-to-pixel mapping (axis labels, hit
// testing).
func (e *Engine) Bounds(events []Event, zoom float64) Bounds {
	return computeBounds(events, zoom, e.cfg.MarginX, e.now())
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }
