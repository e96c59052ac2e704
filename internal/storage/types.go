package storage

import "time"

// Event is a single timeline entry as persisted on disk.
type Event struct {
	ID          string
	Timestamp   time.Time
	Title       string
	Description string
	Source      string // "manual", "import"
	Tags        []string
}

// ListQuery defines filters for listing events.
type ListQuery struct {
	Since  time.Time
	Until  time.Time
	Source string
	Tag    string
	Limit  int
	Offset int
}

// Stats holds aggregate statistics about the event database.
type Stats struct {
	TotalEvents       int64
	OldestEvent       time.Time
	NewestEvent       time.Time
	DatabaseSizeBytes int64
	SourceCounts      []SourceCount
}

// SourceCount pairs an event source with its count.
type SourceCount struct {
	Source string
	Count  int64
}
