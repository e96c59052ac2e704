package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chronolay/chronolay/internal/config"
	"github.com/chronolay/chronolay/internal/engine"
)

// cardJSON is the JSON output shape for one positioned card.
type cardJSON struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	ClusterID  string   `json:"cluster_id"`
	Side       string   `json:"side"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	EventIDs   []string `json:"event_ids"`
	EventCount int      `json:"event_count"`
}

type anchorJSON struct {
	ID        string   `json:"id"`
	X         float64  `json:"x"`
	Timestamp string   `json:"timestamp"`
	EventIDs  []string `json:"event_ids"`
	Count     int      `json:"count"`
}

type utilizationJSON struct {
	TotalSlots int     `json:"total_slots"`
	UsedSlots  int     `json:"used_slots"`
	Percent    float64 `json:"percent"`
}

type layoutJSON struct {
	EventCount  int             `json:"event_count"`
	Cards       []cardJSON      `json:"cards"`
	Anchors     []anchorJSON    `json:"anchors"`
	Utilization utilizationJSON `json:"utilization"`
}

// Execute implements the go-flags Commander interface for LayoutCommand.
func (c *LayoutCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithConfig(cfg)
}

// executeWithConfig runs the layout against a provided config (for testing).
func (c *LayoutCommand) executeWithConfig(cfg *config.Config) error {
	log := newLogger(c.globals, cfg)

	if c.Strategy != "" {
		cfg.Layout.Strategy = c.Strategy
	}
	if c.Mixed {
		cfg.Layout.MixedMode = true
	}

	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		return err
	}

	events, err := loadLayoutEvents(c.File, c.globals, cfg, log)
	if err != nil {
		return err
	}
	log.Debugf("laying out %d events at zoom %.2f", len(events), c.Zoom)

	eng := engine.New(engineCfg)
	vp := engine.Viewport{Width: c.Width, Height: c.Height}
	result := eng.Layout(events, vp, c.Zoom)

	report := engine.Validate(result, len(events), vp)
	for _, w := range report.Warnings {
		log.Debug(w)
	}
	if !report.Valid {
		for _, e := range report.Errors {
			log.Warn(e)
		}
	}

	if c.globals != nil && c.globals.JSON {
		return printLayoutJSON(result, len(events))
	}
	return printLayoutHuman(result, len(events))
}

func printLayoutJSON(result engine.LayoutResult, eventCount int) error {
	out := layoutJSON{
		EventCount: eventCount,
		Cards:      make([]cardJSON, len(result.Cards)),
		Anchors:    make([]anchorJSON, len(result.Anchors)),
		Utilization: utilizationJSON{
			TotalSlots: result.Utilization.TotalSlots,
			UsedSlots:  result.Utilization.UsedSlots,
			Percent:    result.Utilization.Percent,
		},
	}

	for i, card := range result.Cards {
		out.Cards[i] = cardJSON{
			ID:         card.ID,
			Type:       card.Type.String(),
			ClusterID:  card.ClusterID,
			Side:       card.Side.String(),
			X:          card.X,
			Y:          card.Y,
			Width:      card.Width,
			Height:     card.Height,
			EventIDs:   card.EventIDs,
			EventCount: card.EventCount,
		}
	}
	for i, a := range result.Anchors {
		out.Anchors[i] = anchorJSON{
			ID:        a.ID,
			X:         a.X,
			Timestamp: a.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
			EventIDs:  a.EventIDs,
			Count:     a.Count,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printLayoutHuman(result engine.LayoutResult, eventCount int) error {
	fmt.Printf("Layout: %d events -> %d clusters, %d cards\n",
		eventCount, len(result.Clusters), len(result.Cards))

	byType := map[engine.CardType]int{}
	for _, card := range result.Cards {
		byType[card.Type]++
	}
	for _, t := range []engine.CardType{
		engine.CardFull, engine.CardCompact, engine.CardTitleOnly,
		engine.CardMultiEvent, engine.CardInfinite,
	} {
		if byType[t] > 0 {
			fmt.Printf("  %-12s %d\n", t.String()+":", byType[t])
		}
	}

	fmt.Printf("Utilization: %d/%d slots (%.1f%%)\n",
		result.Utilization.UsedSlots, result.Utilization.TotalSlots,
		result.Utilization.Percent)

	return nil
}
