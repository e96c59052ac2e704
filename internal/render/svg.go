// Package render turns a layout result into an SVG document. It draws
// the axis, anchor markers, and card rectangles; all geometry comes from
// the engine, so this package makes no layout decisions of its own.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/chronolay/chronolay/internal/engine"
)

// Options controls the visual styling of the SVG output.
type Options struct {
	Width      float64
	Height     float64
	Background string
	AxisColor  string
	CardFill   string
	CardStroke string
	TextColor  string
	FontFamily string
	FontSize   int
}

// DefaultOptions returns styling suitable for quick previews.
func DefaultOptions() Options {
	return Options{
		Width:      1200,
		Height:     640,
		Background: "#ffffff",
		AxisColor:  "#333333",
		CardFill:   "#f4f6fa",
		CardStroke: "#8899aa",
		TextColor:  "#222222",
		FontFamily: "Arial, sans-serif",
		FontSize:   11,
	}
}

// escapeXML replaces the five XML special characters in text content.
func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

// truncate shortens a string to max runes, appending an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

// SVG renders a layout result into a complete SVG document. Events are
// passed alongside the result so card titles can be resolved from their
// event ids.
func SVG(result engine.LayoutResult, events []engine.Event, bounds engine.Bounds, opts Options) string {
	titles := make(map[string]string, len(events))
	for _, e := range events {
		titles[e.ID] = e.Title
	}

	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)
	fmt.Fprintf(&b, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", opts.Background)

	writeAxis(&b, bounds, opts)
	writeAnchors(&b, result.Anchors, opts)
	for _, card := range result.Cards {
		writeCard(&b, card, titles, opts)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// writeAxis draws the horizontal timeline line with its start and end
// date labels.
func writeAxis(b *strings.Builder, bounds engine.Bounds, opts Options) {
	axisY := opts.Height / 2
	x1 := bounds.XForTime(bounds.Start, opts.Width)
	x2 := bounds.XForTime(bounds.End, opts.Width)

	fmt.Fprintf(b, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
		x1, axisY, x2, axisY, opts.AxisColor)

	labelY := axisY + float64(opts.FontSize) + 4
	fmt.Fprintf(b, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%d" fill="%s">%s</text>`+"\n",
		x1, labelY, opts.FontFamily, opts.FontSize, opts.TextColor,
		bounds.Start.Format("2006-01-02"))
	fmt.Fprintf(b, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%d" fill="%s" text-anchor="end">%s</text>`+"\n",
		x2, labelY, opts.FontFamily, opts.FontSize, opts.TextColor,
		bounds.End.Format("2006-01-02"))
}

// writeAnchors draws a small tick on the axis for every cluster anchor.
func writeAnchors(b *strings.Builder, anchors []engine.Anchor, opts Options) {
	axisY := opts.Height / 2
	for _, a := range anchors {
		fmt.Fprintf(b, `  <circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n",
			a.X, axisY, opts.AxisColor)
	}
}

// writeCard draws one card rectangle plus its label text.
func writeCard(b *strings.Builder, card engine.PositionedCard, titles map[string]string, opts Options) {
	fmt.Fprintf(b, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" fill="%s" stroke="%s"/>`+"\n",
		card.X, card.Y, card.Width, card.Height, opts.CardFill, opts.CardStroke)

	textX := card.X + 4
	textY := card.Y + float64(opts.FontSize) + 3
	maxChars := int(card.Width / (float64(opts.FontSize) * 0.55))

	switch card.Type {
	case engine.CardMultiEvent:
		fmt.Fprintf(b, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%d" fill="%s">%d events</text>`+"\n",
			textX, textY, opts.FontFamily, opts.FontSize, opts.TextColor, card.EventCount)
		if len(card.EventIDs) > 0 {
			title := escapeXML(truncate(titles[card.EventIDs[0]], maxChars))
			fmt.Fprintf(b, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%d" fill="%s">%s</text>`+"\n",
				textX, textY+float64(opts.FontSize)+2, opts.FontFamily, opts.FontSize, opts.TextColor, title)
		}
	case engine.CardInfinite:
		// Overflow container: only the count is displayed.
		fmt.Fprintf(b, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%d" fill="%s">+%d more</text>`+"\n",
			textX, textY, opts.FontFamily, opts.FontSize, opts.TextColor, card.EventCount)
	default:
		title := "(untitled)"
		if len(card.EventIDs) > 0 {
			if t, ok := titles[card.EventIDs[0]]; ok && t != "" {
				title = t
			}
		}
		fmt.Fprintf(b, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%d" fill="%s">%s</text>`+"\n",
			textX, textY, opts.FontFamily, opts.FontSize, opts.TextColor,
			escapeXML(truncate(title, maxChars)))
	}
}

// FileName suggests an output filename stamped with the render time.
func FileName(now time.Time) string {
	return "timeline-" + now.Format("20060102-150405") + ".svg"
}
