package commerce

import (
	"empower-commerce-be/pkg/catalog"
	"empower-commerce-be/pkg/empowerment"
)

// TrustedSource is the first-party catalog source; products from anywhere
// else carry an availability caveat.
const TrustedSource = "shopify"

// DataQuality aggregates trust metrics for a recommendation set.
type DataQuality struct {
	AverageConfidence     float64  `json:"average_confidence"`
	Sources               []string `json:"sources"`
	FilteredLowConfidence int      `json:"filtered_low_confidence"`
}

// ProductExplanation is a per-product slice of the plan used by the
// explanation surface.
type ProductExplanation struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Reasoning           string   `json:"reasoning"`
	CapabilitiesEnabled []string `json:"capabilities_enabled"`
	Confidence          float64  `json:"confidence"`
}

// EmpowermentSnapshot carries the goal alignment computed for a plan.
type EmpowermentSnapshot struct {
	GoalAlignment empowerment.GoalAlignmentResult `json:"goal_alignment"`
}

// Plan is the per-turn recommendation output. Ephemeral; only product ids,
// score, and query are persisted via a Recommendation record.
type Plan struct {
	Query               string                   `json:"query"`
	Products            []catalog.ProductSummary `json:"products"`
	ProductExplanations []ProductExplanation     `json:"product_explanations"`
	Comparison          string                   `json:"comparison"`
	DataQuality         DataQuality              `json:"data_quality"`
	Clarifications      []string                 `json:"clarifications"`
	Empowerment         EmpowermentSnapshot      `json:"empowerment"`
}
