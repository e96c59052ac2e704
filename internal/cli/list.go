package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chronolay/chronolay/internal/storage"
)

type eventJSON struct {
	ID          string   `json:"id"`
	Timestamp   string   `json:"ts"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Source      string   `json:"source"`
	Tags        []string `json:"tags,omitempty"`
}

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
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

func (c *ListCommand) executeWithStore(store *storage.SQLiteStore) error {
	query := storage.ListQuery{
		Source: c.Source,
		Tag:    c.Tag,
		Limit:  c.Limit,
		Offset: c.Offset,
	}

	if c.From != "" {
		since, err := parseDate(c.From)
		if err != nil {
			return err
		}
		query.Since = since
	}
	if c.To != "" {
		until, err := parseDate(c.To)
		if err != nil {
			return err
		}
		// Inclusive day filter: push the bound to end of day when the
		// user gave a bare date.
		if len(c.To) == len("2006-01-02") {
			until = until.Add(24*time.Hour - time.Nanosecond)
		}
		query.Until = until
	}

	events, err := store.ListEvents(context.Background(), query)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(events)
	}
	return c.printHuman(events)
}

func (c *ListCommand) printJSON(events []storage.Event) error {
	out := make([]eventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, eventJSON{
			ID:          e.ID,
			Timestamp:   e.Timestamp.UTC().Format(time.RFC3339),
			Title:       e.Title,
			Description: e.Description,
			Source:      e.Source,
			Tags:        e.Tags,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (c *ListCommand) printHuman(events []storage.Event) error {
	if len(events) == 0 {
		fmt.Println("No events found.")
		return nil
	}

	for _, e := range events {
		fmt.Printf("%s  %s  %s\n", e.Timestamp.Format("2006-01-02"), e.ID, e.Title)
		if e.Description != "" {
			fmt.Printf("    %s\n", e.Description)
		}
		if len(e.Tags) > 0 {
			fmt.Printf("    tags: %v\n", e.Tags)
		}
	}
	fmt.Printf("\n%d events\n", len(events))

	return nil
}
