package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/chronolay/chronolay/internal/storage"
)

// Execute implements the go-flags Commander interface for ImportCommand.
func (c *ImportCommand) Execute(args []string) error {
	if c.File == "" {
		return fmt.Errorf("--file is required for import command")
	}

	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	log := newLogger(c.globals, cfg)

	store, db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store, log)
}

// executeWithStore runs the import against a provided store (used by tests).
func (c *ImportCommand) executeWithStore(store *storage.SQLiteStore, log *logrus.Logger) error {
	entries, skipped, err := LoadEventFileEntries(c.File)
	if err != nil {
		return err
	}
	if skipped > 0 {
		log.Warnf("skipped %d events with unparseable dates in %s", skipped, c.File)
	}

	ctx := context.Background()
	imported := 0
	for _, entry := range entries {
		ts, err := parseDate(entry.Date)
		if err != nil {
			continue
		}

		event := &storage.Event{
			ID:          entry.ID,
			Timestamp:   ts,
			Title:       entry.Title,
			Description: entry.Description,
			Source:      "import",
			Tags:        entry.Tags,
		}
		if err := store.AddEvent(ctx, event); err != nil {
			return fmt.Errorf("storing event %q: %w", entry.Title, err)
		}
		imported++
	}

	if c.globals != nil && c.globals.JSON {
		out := map[string]interface{}{
			"imported": imported,
			"skipped":  skipped,
			"file":     c.File,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Imported %d events from %s", imported, c.File)
	if skipped > 0 {
		fmt.Printf(" (%d skipped)", skipped)
	}
	fmt.Println()

	return nil
}
