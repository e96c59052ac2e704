package config

// DefaultConfig returns a Config populated with all default values.
// The layout numbers mirror the engine defaults so a generated config
// file documents the canonical capacity model.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:       "~/.config/chronolay",
			SQLiteFile: "chronolay.db",
		},
		Layout: LayoutConfig{
			Strategy:           "single-column",
			MixedMode:          false,
			ClusterThreshold:   80,
			SlotsPerSide:       8,
			PromotionThreshold: 0.40,
			AxisGap:            12,
			CardGap:            8,
			MarginX:            40,
			DensityWindowDays:  30,
			MinEventPitch:      12,
			CardTypes: map[string]CardTypeConfig{
				"full":        {Width: 72, Height: 64, SlotsPerSide: 4},
				"compact":     {Width: 72, Height: 44, SlotsPerSide: 2},
				"title-only":  {Width: 72, Height: 24, SlotsPerSide: 1},
				"multi-event": {Width: 72, Height: 48, SlotsPerSide: 2, MaxEvents: 5},
				"infinite":    {Width: 72, Height: 28, SlotsPerSide: 1},
			},
		},
		Render: RenderConfig{
			Width:      1200,
			Height:     640,
			Background: "#ffffff",
			AxisColor:  "#333333",
			CardFill:   "#f4f6fa",
			CardStroke: "#8899aa",
			TextColor:  "#222222",
			FontFamily: "Arial, sans-serif",
			FontSize:   11,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
