package engine

import (
	"fmt"
	"math"
	"time"
)

// clusterEvents groups distributed events whose x positions fall within
// threshold of an existing cluster's anchor. A single left-to-right scan
// over chronologically sorted events keeps the result deterministic:
// each event joins the nearest qualifying cluster or opens a new one,
// and the anchor is recomputed as the member centroid on every join.
func clusterEvents(events []DistributedEvent, threshold float64) []*Cluster {
	var clusters []*Cluster

	for _, e := range events {
		best := -1
		bestDist := math.Inf(1)
		for i, c := range clusters {
			d := math.Abs(e.X - c.Anchor.X)
			if d <= threshold && d < bestDist {
				best = i
				bestDist = d
			}
		}

		if best >= 0 {
			c := clusters[best]
			c.Events = append(c.Events, e)
			c.Anchor = recomputeAnchor(c.Anchor.ID, c.Events)
			continue
		}

		id := fmt.Sprintf("cluster-%d", len(clusters))
		c := &Cluster{
			ID:     id,
			Events: []DistributedEvent{e},
		}
		c.Anchor = recomputeAnchor(fmt.Sprintf("anchor-%d", len(clusters)), c.Events)
		clusters = append(clusters, c)
	}

	return clusters
}

// recomputeAnchor returns the centroid anchor of the given members.
func recomputeAnchor(id string, members []DistributedEvent) Anchor {
	var sumX float64
	var sumOffset time.Duration
	base := members[0].Timestamp
	ids := make([]string, len(members))

	for i, m := range members {
		sumX += m.X
		sumOffset += m.Timestamp.Sub(base)
		ids[i] = m.Event.ID
	}

	n := len(members)
	return Anchor{
		ID:        id,
		X:         sumX / float64(n),
		Timestamp: base.Add(sumOffset / time.Duration(n)),
		EventIDs:  ids,
		Count:     n,
	}
}
