package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chronolay/chronolay/internal/engine"
)

// eventFile is the YAML document shape for bulk event input.
type eventFile struct {
	Events []eventEntry `yaml:"events"`
}

type eventEntry struct {
	ID          string   `yaml:"id"`
	Date        string   `yaml:"date"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Sources     []string `yaml:"sources"`
	Tags        []string `yaml:"tags"`
}

// LoadEventFile parses a YAML event file. Entries with unparseable
// dates are skipped rather than failing the whole load; the skip count
// is returned so callers can warn. Missing IDs are numbered by file
// position, which keeps repeated loads deterministic.
func LoadEventFile(path string) ([]engine.Event, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading event file: %w", err)
	}

	var doc eventFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("parsing event file: %w", err)
	}

	var events []engine.Event
	skipped := 0
	for i, entry := range doc.Events {
		ts, err := parseDate(entry.Date)
		if err != nil {
			skipped++
			continue
		}

		id := entry.ID
		if id == "" {
			id = fmt.Sprintf("file-%d", i)
		}

		events = append(events, engine.Event{
			ID:          id,
			Timestamp:   ts,
			Title:       entry.Title,
			Description: entry.Description,
			Sources:     entry.Sources,
		})
	}

	return events, skipped, nil
}

// LoadEventFileEntries parses a YAML event file into raw entries for
// database import, applying the same skip-on-bad-date policy.
func LoadEventFileEntries(path string) ([]eventEntry, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading event file: %w", err)
	}

	var doc eventFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("parsing event file: %w", err)
	}

	var entries []eventEntry
	skipped := 0
	for _, entry := range doc.Events {
		if _, err := parseDate(entry.Date); err != nil {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped, nil
}
