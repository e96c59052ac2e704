package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/chronolay/chronolay/internal/config"
	"github.com/chronolay/chronolay/internal/engine"
	"github.com/chronolay/chronolay/internal/render"
)

// Execute implements the go-flags Commander interface for RenderCommand.
func (c *RenderCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithConfig(cfg)
}

// executeWithConfig runs the render against a provided config (for testing).
func (c *RenderCommand) executeWithConfig(cfg *config.Config) error {
	log := newLogger(c.globals, cfg)

	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		return err
	}

	events, err := loadLayoutEvents(c.File, c.globals, cfg, log)
	if err != nil {
		return err
	}

	opts := render.Options{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Background: cfg.Render.Background,
		AxisColor:  cfg.Render.AxisColor,
		CardFill:   cfg.Render.CardFill,
		CardStroke: cfg.Render.CardStroke,
		TextColor:  cfg.Render.TextColor,
		FontFamily: cfg.Render.FontFamily,
		FontSize:   cfg.Render.FontSize,
	}
	if c.Width > 0 {
		opts.Width = c.Width
	}
	if c.Height > 0 {
		opts.Height = c.Height
	}

	eng := engine.New(engineCfg)
	vp := engine.Viewport{Width: opts.Width, Height: opts.Height}
	result := eng.Layout(events, vp, c.Zoom)
	bounds := eng.Bounds(events, c.Zoom)

	report := engine.Validate(result, len(events), vp)
	if !report.Valid {
		for _, e := range report.Errors {
			log.Warn(e)
		}
	}

	doc := render.SVG(result, events, bounds, opts)

	out := c.Out
	if out == "" {
		out = render.FileName(time.Now())
	}
	if err := os.WriteFile(out, []byte(doc), 0644); err != nil {
		return fmt.Errorf("writing SVG: %w", err)
	}

	log.Debugf("rendered %d cards", len(result.Cards))
	fmt.Printf("Wrote %s (%d events, %d cards)\n", out, len(events), len(result.Cards))
	return nil
}
