package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store defines the interface for timeline event persistence.
type Store interface {
	AddEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context, query ListQuery) ([]Event, error)
	CountEvents(ctx context.Context) (int64, error)
	DeleteEvent(ctx context.Context, id string) error
	PurgeAll(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertEvent *sql.Stmt
	getEvent    *sql.Stmt
	deleteEvent *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and
// migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertEvent, err = s.db.Prepare(`
		INSERT INTO events (id, ts, title, description, source, tags)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.getEvent, err = s.db.Prepare(`
		SELECT id, ts, title, description, source, tags
		FROM events WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.deleteEvent, err = s.db.Prepare(`DELETE FROM events WHERE id = ?`)
	if err != nil {
		return err
	}

	return nil
}

// generateID creates an event ID: EVT- plus a random UUID.
func generateID() string {
	return "EVT-" + uuid.NewString()
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999999-07:00",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// encodeTags marshals tags into the JSON column format.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// decodeTags unmarshals the JSON column format back into a slice.
func decodeTags(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}

// AddEvent inserts a new event into the database. The event's ID is
// populated automatically when empty; a zero timestamp becomes now.
func (s *SQLiteStore) AddEvent(ctx context.Context, event *Event) error {
	if event.ID == "" {
		event.ID = generateID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	tsFormatted := event.Timestamp.UTC().Format(time.RFC3339)
	_, err := s.insertEvent.ExecContext(ctx,
		event.ID, tsFormatted, event.Title, event.Description,
		event.Source, encodeTags(event.Tags),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	return nil
}

// GetEvent retrieves an event by ID. Returns sql.ErrNoRows if not found.
func (s *SQLiteStore) GetEvent(ctx context.Context, id string) (*Event, error) {
	var e Event
	var ts, tags string

	err := s.getEvent.QueryRowContext(ctx, id).Scan(
		&e.ID, &ts, &e.Title, &e.Description, &e.Source, &tags,
	)
	if err != nil {
		return nil, err
	}

	e.Timestamp, err = parseTimestamp(ts)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", id, err)
	}
	e.Tags = decodeTags(tags)

	return &e, nil
}

// ListEvents returns events matching the query, ordered chronologically.
func (s *SQLiteStore) ListEvents(ctx context.Context, query ListQuery) ([]Event, error) {
	var conditions []string
	var args []interface{}

	if !query.Since.IsZero() {
		conditions = append(conditions, "ts >= ?")
		args = append(args, query.Since.UTC().Format(time.RFC3339))
	}
	if !query.Until.IsZero() {
		conditions = append(conditions, "ts <= ?")
		args = append(args, query.Until.UTC().Format(time.RFC3339))
	}
	if query.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, query.Source)
	}
	if query.Tag != "" {
		// Tags are stored as a JSON array of strings.
		conditions = append(conditions, "tags LIKE ?")
		args = append(args, `%"`+query.Tag+`"%`)
	}

	q := "SELECT id, ts, title, description, source, tags FROM events"
	if len(conditions) > 0 {
		q += " WHERE " + strings.Join(conditions, " AND ")
	}
	q += " ORDER BY ts ASC, id ASC"

	if query.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, query.Limit)
		if query.Offset > 0 {
			q += " OFFSET ?"
			args = append(args, query.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var ts, tags string
		if err := rows.Scan(&e.ID, &ts, &e.Title, &e.Description, &e.Source, &tags); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Timestamp, err = parseTimestamp(ts)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", e.ID, err)
		}
		e.Tags = decodeTags(tags)
		events = append(events, e)
	}

	return events, rows.Err()
}

// CountEvents returns the total number of stored events.
func (s *SQLiteStore) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count)
	return count, err
}

// DeleteEvent removes an event by ID. Deleting a missing ID is not an error.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id string) error {
	_, err := s.deleteEvent.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// PurgeAll deletes every stored event.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM events"); err != nil {
		return fmt.Errorf("purge events: %w", err)
	}
	return nil
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&stats.TotalEvents)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	if stats.TotalEvents > 0 {
		var oldest, newest string
		err = s.db.QueryRowContext(ctx, "SELECT MIN(ts), MAX(ts) FROM events").Scan(&oldest, &newest)
		if err != nil {
			return nil, fmt.Errorf("event range: %w", err)
		}
		if stats.OldestEvent, err = parseTimestamp(oldest); err != nil {
			return nil, err
		}
		if stats.NewestEvent, err = parseTimestamp(newest); err != nil {
			return nil, err
		}
	}

	var pageCount, pageSize int64
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err != nil {
		return nil, fmt.Errorf("page size: %w", err)
	}
	stats.DatabaseSizeBytes = pageCount * pageSize

	rows, err := s.db.QueryContext(ctx, `
		SELECT source, COUNT(*) AS n FROM events
		GROUP BY source ORDER BY n DESC, source ASC LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("source counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, err
		}
		stats.SourceCounts = append(stats.SourceCounts, sc)
	}

	return stats, rows.Err()
}

// Close releases prepared statements. The caller owns the *sql.DB.
func (s *SQLiteStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.insertEvent, s.getEvent, s.deleteEvent} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
