package engine

// assemble converts planned cards into final rectangles. Cards are
// centered on their cluster's anchor x and stacked outward from the
// axis, nearest card first, separated by the configured gap.
func assemble(plans []clusterPlan, vp Viewport, cfg Config) []PositionedCard {
	axisY := vp.Height / 2
	var out []PositionedCard

	for _, p := range plans {
		anchorX := p.cluster.Anchor.X

		// Per-side running offset from the axis, in pixels.
		offset := map[Side]float64{
			SideAbove: cfg.AxisGap,
			SideBelow: cfg.AxisGap,
		}

		for _, c := range p.cards {
			spec := cfg.spec(c.cardType)

			var y float64
			if c.side == SideAbove {
				y = axisY - offset[SideAbove] - spec.Height
				offset[SideAbove] += spec.Height + cfg.CardGap
			} else {
				y = axisY + offset[SideBelow]
				offset[SideBelow] += spec.Height + cfg.CardGap
			}

			out = append(out, PositionedCard{
				ID:         c.id,
				Type:       c.cardType,
				ClusterID:  p.cluster.ID,
				Side:       c.side,
				X:          anchorX - spec.Width/2,
				Y:          y,
				Width:      spec.Width,
				Height:     spec.Height,
				EventIDs:   c.eventIDs,
				EventCount: len(c.eventIDs),
			})
		}
	}

	return out
}

// utilization aggregates slot usage across every cluster grid.
func utilization(plans []clusterPlan) UtilizationStats {
	stats := UtilizationStats{}
	for _, p := range plans {
		stats.TotalSlots += p.grid.TotalSlots()
		stats.UsedSlots += p.grid.OccupiedSlots()
	}
	if stats.TotalSlots > 0 {
		stats.Percent = float64(stats.UsedSlots) / float64(stats.TotalSlots) * 100
	}
	return stats
}
