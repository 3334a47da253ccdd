package commerce

import (
	"fmt"
	"strings"

	"empower-commerce-be/pkg/catalog"
	"empower-commerce-be/pkg/empowerment"
)

// Explain renders a short recommendation explanation for the plan's products.
func Explain(products []catalog.ProductSummary) string {
	explanations := make([]string, len(products))
	for i, product := range products {
		base := fmt.Sprintf("%s (confidence %.2f, source %s)", product.Name, product.Confidence, product.Source)
		if product.Confidence < 0.75 {
			base += " — verify details before purchasing."
		}
		explanations[i] = base
	}
	return fmt.Sprintf("These items were selected because they reinforce autonomy: %s", strings.Join(explanations, "; "))
}

// Reflect summarizes a plan as reflection points for the session record.
func Reflect(plan Plan) string {
	entries := []string{
		fmt.Sprintf("Plan query: %s", plan.Query),
		fmt.Sprintf("Products considered: %d", len(plan.Products)),
		fmt.Sprintf("Average data confidence: %v", plan.DataQuality.AverageConfidence),
	}
	for _, message := range plan.Clarifications {
		entries = append(entries, fmt.Sprintf("Clarification: %s", message))
	}
	return empowerment.GenerateReflection(entries)
}
