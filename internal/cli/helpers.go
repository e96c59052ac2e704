package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/chronolay/chronolay/internal/config"
	"github.com/chronolay/chronolay/internal/engine"
	"github.com/chronolay/chronolay/internal/storage"
)

// newLogger builds the CLI logger. Verbose enables debug output; the
// config file level applies otherwise.
func newLogger(globals *GlobalFlags, cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level := logrus.InfoLevel
	if cfg != nil {
		if parsed, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
			level = parsed
		}
	}
	if globals != nil && globals.Verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	return log
}

// loadConfig resolves the config file: an explicit --config path must
// exist; otherwise the default path is loaded or created.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.Load(globals.Config)
	}
	return config.LoadOrCreate()
}

// openStore opens the configured SQLite database, runs migrations, and
// returns a ready-to-use store plus the underlying *sql.DB.
func openStore(cfg *config.Config) (*storage.SQLiteStore, *sql.DB, error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init store: %w", err)
	}

	return store, db, nil
}

// parseDate accepts a calendar date or a full timestamp.
func parseDate(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q (use 2006-01-02 or RFC3339)", s)
}

// toEngineEvents converts stored events to the engine's input type.
func toEngineEvents(events []storage.Event) []engine.Event {
	out := make([]engine.Event, len(events))
	for i, e := range events {
		out[i] = engine.Event{
			ID:          e.ID,
			Timestamp:   e.Timestamp,
			Title:       e.Title,
			Description: e.Description,
		}
	}
	return out
}

// loadLayoutEvents reads events either from a YAML file or from the
// database. Unparseable file entries are skipped with a warning, per the
// engine's input contract.
func loadLayoutEvents(file string, globals *GlobalFlags, cfg *config.Config, log *logrus.Logger) ([]engine.Event, error) {
	if file != "" {
		events, skipped, err := LoadEventFile(file)
		if err != nil {
			return nil, err
		}
		if skipped > 0 {
			log.Warnf("skipped %d events with unparseable dates in %s", skipped, file)
		}
		return events, nil
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	defer store.Close()

	stored, err := store.ListEvents(context.Background(), storage.ListQuery{})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return toEngineEvents(stored), nil
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	out := ""
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(r)
	}
	return out
}
