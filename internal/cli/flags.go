package cli

import "database/sql"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// LayoutCommand — compute a card layout for stored or file-based events.
type LayoutCommand struct {
	File     string  `long:"file" description:"Read events from a YAML file instead of the database"`
	Width    float64 `long:"width" description:"Viewport width in pixels" default:"1200"`
	Height   float64 `long:"height" description:"Viewport height in pixels" default:"640"`
	Zoom     float64 `long:"zoom" description:"Zoom factor (1.0 = unzoomed)" default:"1"`
	Strategy string  `long:"strategy" description:"Positioning strategy: single-column | dual-column"`
	Mixed    bool    `long:"mixed" description:"Allow mixed card types within one cluster"`

	globals *GlobalFlags
	version string
}

// RenderCommand — compute a layout and write it as an SVG document.
type RenderCommand struct {
	File   string  `long:"file" description:"Read events from a YAML file instead of the database"`
	Out    string  `long:"out" description:"Output SVG path (default: timeline-<timestamp>.svg)"`
	Width  float64 `long:"width" description:"Viewport width in pixels"`
	Height float64 `long:"height" description:"Viewport height in pixels"`
	Zoom   float64 `long:"zoom" description:"Zoom factor (1.0 = unzoomed)" default:"1"`

	globals *GlobalFlags
	version string
}

// ValidateCommand — run a layout and print its validation report.
type ValidateCommand struct {
	File   string  `long:"file" description:"Read events from a YAML file instead of the database"`
	Width  float64 `long:"width" description:"Viewport width in pixels" default:"1200"`
	Height float64 `long:"height" description:"Viewport height in pixels" default:"640"`
	Zoom   float64 `long:"zoom" description:"Zoom factor (1.0 = unzoomed)" default:"1"`

	globals *GlobalFlags
	version string
}

// AddCommand — insert a single event into the database.
type AddCommand struct {
	Title       string   `long:"title" description:"Event title (required)"`
	Date        string   `long:"date" description:"Event date, e.g. 1969-07-20 or full RFC3339 (required)"`
	Description string   `long:"description" description:"Longer event description"`
	Tag         []string `long:"tag" description:"Tag (repeatable)"`
	ID          string   `long:"id" description:"Explicit event ID (generated when omitted)"`

	globals *GlobalFlags
	version string
}

// ImportCommand — bulk-load events from a YAML file into the database.
type ImportCommand struct {
	File string `long:"file" description:"YAML file of events (required)"`

	globals *GlobalFlags
	version string
}

// ListCommand — list stored events with range filters.
type ListCommand struct {
	From   string `long:"from" description:"Only events on or after this date (2006-01-02)"`
	To     string `long:"to" description:"Only events on or before this date (2006-01-02)"`
	Source string `long:"source" description:"Filter by source (manual, import)"`
	Tag    string `long:"tag" description:"Filter by tag"`
	Limit  int    `long:"limit" description:"Maximum results" default:"20"`
	Offset int    `long:"offset" description:"Skip first N results" default:"0"`

	globals *GlobalFlags
	version string
}

// StatsCommand — show database statistics and configuration summary.
type StatsCommand struct {
	globals *GlobalFlags
	version string
}

// PurgeCommand — delete ALL stored events with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	db      *sql.DB // injectable for testing; nil means open default DB
}
