package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/chronolay/chronolay/internal/storage"
)

// setDB injects a database handle for testing.
func (c *PurgeCommand) setDB(db *sql.DB) {
	c.db = db
}

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all to confirm intent")
	}

	db := c.db
	if db == nil {
		cfg, err := loadConfig(c.globals)
		if err != nil {
			return err
		}

		st, opened, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		st.Close()
		db = opened
		defer db.Close()
	}

	return c.executeWithDB(db)
}

func (c *PurgeCommand) executeWithDB(db *sql.DB) error {
	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	count, err := store.CountEvents(ctx)
	if err != nil {
		return fmt.Errorf("counting events: %w", err)
	}

	if count == 0 {
		fmt.Println("Database is already empty.")
		return nil
	}

	if !c.Force {
		fmt.Printf("This will permanently delete %s events.\n", formatNumber(count))
		fmt.Print("Type PURGE to confirm: ")

		reader := bufio.NewReader(os.Stdin)
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		if strings.TrimSpace(input) != "PURGE" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := store.PurgeAll(ctx); err != nil {
		return fmt.Errorf("purging events: %w", err)
	}

	fmt.Printf("Purged %s events.\n", formatNumber(count))
	return nil
}
