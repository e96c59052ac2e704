package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chronolay/chronolay/internal/config"
	"github.com/chronolay/chronolay/internal/storage"
)

type statsJSON struct {
	TotalEvents  int64            `json:"total_events"`
	OldestEvent  string           `json:"oldest_event,omitempty"`
	NewestEvent  string           `json:"newest_event,omitempty"`
	DatabaseSize int64            `json:"database_size_bytes"`
	Sources      map[string]int64 `json:"sources"`
	Strategy     string           `json:"strategy"`
	SlotsPerSide int              `json:"slots_per_side"`
}

// Execute implements the go-flags Commander interface for StatsCommand.
func (c *StatsCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithConfig(cfg, store)
}

func (c *StatsCommand) executeWithConfig(cfg *config.Config, store *storage.SQLiteStore) error {
	stats, err := store.GetStats(context.Background())
	if err != nil {
		return fmt.Errorf("gathering statistics: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(cfg, stats)
	}
	return c.printHuman(cfg, stats)
}

func (c *StatsCommand) printJSON(cfg *config.Config, stats *storage.Stats) error {
	out := statsJSON{
		TotalEvents:  stats.TotalEvents,
		DatabaseSize: stats.DatabaseSizeBytes,
		Sources:      make(map[string]int64),
		Strategy:     cfg.Layout.Strategy,
		SlotsPerSide: cfg.Layout.SlotsPerSide,
	}
	if !stats.OldestEvent.IsZero() {
		out.OldestEvent = stats.OldestEvent.UTC().Format(time.RFC3339)
	}
	if !stats.NewestEvent.IsZero() {
		out.NewestEvent = stats.NewestEvent.UTC().Format(time.RFC3339)
	}
	for _, sc := range stats.SourceCounts {
		out.Sources[sc.Source] = sc.Count
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (c *StatsCommand) printHuman(cfg *config.Config, stats *storage.Stats) error {
	fmt.Println("Database Statistics")
	fmt.Println("===================")
	fmt.Printf("Total events:  %s\n", formatNumber(stats.TotalEvents))
	if !stats.OldestEvent.IsZero() {
		fmt.Printf("Oldest event:  %s\n", stats.OldestEvent.Format("2006-01-02"))
		fmt.Printf("Newest event:  %s\n", stats.NewestEvent.Format("2006-01-02"))
	}
	fmt.Printf("Database size: %s bytes\n", formatNumber(stats.DatabaseSizeBytes))

	if len(stats.SourceCounts) > 0 {
		fmt.Println("\nEvents by source:")
		for _, sc := range stats.SourceCounts {
			fmt.Printf("  %-10s %s\n", sc.Source, formatNumber(sc.Count))
		}
	}

	fmt.Println("\nLayout Configuration")
	fmt.Println("====================")
	fmt.Printf("Strategy:       %s\n", cfg.Layout.Strategy)
	fmt.Printf("Slots per side: %d\n", cfg.Layout.SlotsPerSide)
	fmt.Printf("Cluster radius: %.0f px\n", cfg.Layout.ClusterThreshold)
	fmt.Printf("Mixed mode:     %v\n", cfg.Layout.MixedMode)

	return nil
}
