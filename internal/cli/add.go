package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chronolay/chronolay/internal/storage"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	if c.Title == "" {
		return fmt.Errorf("--title is required for add command")
	}
	if c.Date == "" {
		return fmt.Errorf("--date is required for add command")
	}

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

	return c.executeWithStore(store)
}

// executeWithStore runs the add logic against a provided store (used by tests).
func (c *AddCommand) executeWithStore(store *storage.SQLiteStore) error {
	ts, err := parseDate(c.Date)
	if err != nil {
		return err
	}

	event := &storage.Event{
		ID:          c.ID,
		Timestamp:   ts,
		Title:       c.Title,
		Description: c.Description,
		Source:      "manual",
		Tags:        c.Tag,
	}

	ctx := context.Background()
	if err := store.AddEvent(ctx, event); err != nil {
		return fmt.Errorf("storing event: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		out := map[string]interface{}{
			"id":    event.ID,
			"title": event.Title,
			"ts":    event.Timestamp.UTC().Format(time.RFC3339),
			"tags":  event.Tags,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Added event %s (%s)\n", event.ID, event.Timestamp.Format("2006-01-02"))
	fmt.Printf("  Title: %s\n", event.Title)
	if event.Description != "" {
		fmt.Printf("  Description: %s\n", event.Description)
	}
	if len(event.Tags) > 0 {
		fmt.Printf("  Tags: %v\n", event.Tags)
	}

	return nil
}
