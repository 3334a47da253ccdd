package empowerment

import (
	"fmt"

	"empower-commerce-be/pkg/catalog"
)

// Guard enforces empowerment policies over a drafted response: it scans the
// rationale for alienation cues and manipulation patterns, and checks product
// confidence safeguards.
type Guard struct{}

func NewGuard() *Guard {
	return &Guard{}
}

// Check evaluates a rationale along with any clarifications and products that
// will accompany it. Clarification strings are folded in as flags so they
// surface in the review trail.
func (g *Guard) Check(rationale string, clarifications []string, products []catalog.ProductSummary) GuardResult {
	constraints := CheckConstraints(rationale, products)

	var flags []string
	flags = append(flags, clarifications...)
	if hasLowConfidence(products, 0.5) {
		flags = append(flags, "Some recommendations fall below confidence safeguards; confirm consent before action.")
	}
	if signal := DetectAlienation(rationale); signal != nil {
		flags = append(flags, fmt.Sprintf("Alienation signal detected: %s (severity %.1f)", signal.Label, signal.Severity))
	}

	status := StatusClear
	switch {
	case constraints.Blocked:
		status = StatusBlocked
	case len(flags) > 0 || len(constraints.Violations) > 0:
		status = StatusNeedsReview
	}

	return GuardResult{
		Status:      status,
		Flags:       flags,
		Constraints: &constraints,
		Summary:     constraints.Summary,
	}
}
