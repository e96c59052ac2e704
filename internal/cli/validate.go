package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chronolay/chronolay/internal/config"
	"github.com/chronolay/chronolay/internal/engine"
)

// reportJSON is the JSON output shape for the validate command.
type reportJSON struct {
	Valid            bool           `json:"valid"`
	Errors           []string       `json:"errors"`
	Warnings         []string       `json:"warnings"`
	HasInfiniteCards bool           `json:"has_infinite_cards"`
	CardTypeCounts   map[string]int `json:"card_type_counts"`
}

// Execute implements the go-flags Commander interface for ValidateCommand.
func (c *ValidateCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithConfig(cfg)
}

// executeWithConfig runs validation against a provided config (for testing).
func (c *ValidateCommand) executeWithConfig(cfg *config.Config) error {
	log := newLogger(c.globals, cfg)

	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		return err
	}

	events, err := loadLayoutEvents(c.File, c.globals, cfg, log)
	if err != nil {
		return err
	}

	eng := engine.New(engineCfg)
	vp := engine.Viewport{Width: c.Width, Height: c.Height}
	result := eng.Layout(events, vp, c.Zoom)
	report := engine.Validate(result, len(events), vp)

	if c.globals != nil && c.globals.JSON {
		out := reportJSON{
			Valid:            report.Valid,
			Errors:           report.Errors,
			Warnings:         report.Warnings,
			HasInfiniteCards: report.HasInfiniteCards,
			CardTypeCounts:   map[string]int{},
		}
		if out.Errors == nil {
			out.Errors = []string{}
		}
		if out.Warnings == nil {
			out.Warnings = []string{}
		}
		for t, n := range report.CardTypeCounts {
			out.CardTypeCounts[t.String()] = n
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if report.Valid {
		fmt.Printf("VALID: %d events, %d cards, no overlaps\n", len(events), len(result.Cards))
	} else {
		fmt.Printf("INVALID: %d errors\n", len(report.Errors))
		for _, e := range report.Errors {
			fmt.Printf("  error: %s\n", e)
		}
	}
	for _, w := range report.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	if report.HasInfiniteCards {
		fmt.Println("  note: layout contains infinite overflow cards")
	}

	return nil
}
