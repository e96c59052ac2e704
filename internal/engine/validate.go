package engine

import "fmt"

// ValidationReport is read-only diagnostic output. Failures are data for
// the host to log or act on, never control flow: the layout that
// produced them is still returned.
type ValidationReport struct {
	Valid            bool
	Errors           []string
	Warnings         []string
	HasInfiniteCards bool
	CardTypeCounts   map[CardType]int
}

// Validate checks a layout result against its input size and viewport:
// every pair of card rectangles must be disjoint, the per-card event
// counts must sum to the input event count, and cards should stay
// inside the viewport (a warning, since hosts may scroll).
func Validate(result LayoutResult, eventCount int, vp Viewport) ValidationReport {
	report := ValidationReport{
		Valid:          true,
		CardTypeCounts: map[CardType]int{},
	}

	covered := 0
	for _, c := range result.Cards {
		covered += c.EventCount
		report.CardTypeCounts[c.Type]++
		if c.Type == CardInfinite {
			report.HasInfiniteCards = true
		}

		if c.Width <= 0 || c.Height <= 0 {
			report.Errors = append(report.Errors,
				fmt.Sprintf("card %s has degenerate size %.1fx%.1f", c.ID, c.Width, c.Height))
		}
		if c.X < 0 || c.Y < 0 || c.X+c.Width > vp.Width || c.Y+c.Height > vp.Height {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("card %s extends outside the viewport", c.ID))
		}
	}

	if covered != eventCount {
		report.Errors = append(report.Errors,
			fmt.Sprintf("event coverage mismatch: cards hold %d events, input has %d", covered, eventCount))
	}

	for i := 0; i < len(result.Cards); i++ {
		for j := i + 1; j < len(result.Cards); j++ {
			if rectanglesOverlap(result.Cards[i], result.Cards[j]) {
				report.Errors = append(report.Errors,
					fmt.Sprintf("cards %s and %s overlap", result.Cards[i].ID, result.Cards[j].ID))
			}
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}

// rectanglesOverlap reports whether two cards' bounding boxes intersect
// with positive area. Shared edges do not count as overlap.
func rectanglesOverlap(a, b PositionedCard) bool {
	if a.X+a.Width <= b.X || b.X+b.Width <= a.X {
		return false
	}
	if a.Y+a.Height <= b.Y || b.Y+b.Height <= a.Y {
		return false
	}
	return true
}
