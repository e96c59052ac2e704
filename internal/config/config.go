package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chronolay/chronolay/internal/engine"
)

// Default config file path.
const DefaultConfigPath = "~/.config/chronolay/config.yaml"

// Config holds all chronolay configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Layout  LayoutConfig  `yaml:"layout"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

type StorageConfig struct {
	Path       string `yaml:"path"`
	SQLiteFile string `yaml:"sqlite_file"`
}

// CardTypeConfig tunes one detail level's geometry without touching
// engine logic.
type CardTypeConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	SlotsPerSide int     `yaml:"slots_per_side"`
	MaxEvents    int     `yaml:"max_events,omitempty"`
}

type LayoutConfig struct {
	Strategy           string                    `yaml:"strategy"` // "single-column" or "dual-column"
	MixedMode          bool                      `yaml:"mixed_mode"`
	ClusterThreshold   float64                   `yaml:"cluster_threshold"`
	SlotsPerSide       int                       `yaml:"slots_per_side"`
	PromotionThreshold float64                   `yaml:"promotion_threshold"`
	AxisGap            float64                   `yaml:"axis_gap"`
	CardGap            float64                   `yaml:"card_gap"`
	MarginX            float64                   `yaml:"margin_x"`
	DensityWindowDays  int                       `yaml:"density_window_days"`
	MinEventPitch      float64                   `yaml:"min_event_pitch"`
	CardTypes          map[string]CardTypeConfig `yaml:"card_types"`
}

type RenderConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Background string  `yaml:"background"`
	AxisColor  string  `yaml:"axis_color"`
	CardFill   string  `yaml:"card_fill"`
	CardStroke string  `yaml:"card_stroke"`
	TextColor  string  `yaml:"text_color"`
	FontFamily string  `yaml:"font_family"`
	FontSize   int     `yaml:"font_size"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// cardTypeNames maps YAML keys to engine card types.
var cardTypeNames = map[string]engine.CardType{
	"full":        engine.CardFull,
	"compact":     engine.CardCompact,
	"title-only":  engine.CardTitleOnly,
	"multi-event": engine.CardMultiEvent,
	"infinite":    engine.CardInfinite,
}

// EngineConfig converts the layout section into the engine's config,
// filling any omitted card type from the engine defaults.
func (c *Config) EngineConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	l := c.Layout

	switch l.Strategy {
	case "", "single-column":
		cfg.Strategy = engine.StrategySingleColumn
	case "dual-column":
		cfg.Strategy = engine.StrategyDualColumn
	default:
		return engine.Config{}, fmt.Errorf("unknown layout strategy %q", l.Strategy)
	}

	cfg.MixedMode = l.MixedMode
	if l.ClusterThreshold > 0 {
		cfg.ClusterThreshold = l.ClusterThreshold
	}
	if l.SlotsPerSide > 0 {
		cfg.SlotsPerSide = l.SlotsPerSide
	}
	if l.PromotionThreshold > 0 {
		cfg.PromotionThreshold = l.PromotionThreshold
	}
	if l.AxisGap > 0 {
		cfg.AxisGap = l.AxisGap
	}
	if l.CardGap > 0 {
		cfg.CardGap = l.CardGap
	}
	if l.MarginX > 0 {
		cfg.MarginX = l.MarginX
	}
	if l.DensityWindowDays > 0 {
		cfg.DensityWindowDays = l.DensityWindowDays
	}
	if l.MinEventPitch > 0 {
		cfg.MinEventPitch = l.MinEventPitch
	}

	for name, ct := range l.CardTypes {
		t, ok := cardTypeNames[name]
		if !ok {
			return engine.Config{}, fmt.Errorf("unknown card type %q", name)
		}
		cfg.CardTypes[t] = engine.CardTypeSpec{
			Width:        ct.Width,
			Height:       ct.Height,
			SlotsPerSide: ct.SlotsPerSide,
			MaxEvents:    ct.MaxEvents,
		}
	}

	return cfg, nil
}

// DatabasePath returns the resolved SQLite file path.
func (c *Config) DatabasePath() (string, error) {
	dir, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
