package commerce

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"empower-commerce-be/pkg/catalog"
	"empower-commerce-be/pkg/empowerment"
	"empower-commerce-be/pkg/intent"
)

// PlanBuilder turns a classified intent and the session's goals into a
// recommendation plan: query derivation with fallback cascade,
// confidence-based selection, data quality metrics, clarification messages,
// and an empowerment snapshot.
type PlanBuilder struct {
	searcher catalog.Searcher
	reasoner *Reasoner
	engine   *empowerment.AlignmentEngine
	logger   *log.Logger

	ConfidenceThreshold float64
	FallbackLimit       int
}

func NewPlanBuilder(searcher catalog.Searcher, reasoner *Reasoner, engine *empowerment.AlignmentEngine, logger *log.Logger) *PlanBuilder {
	return &PlanBuilder{
		searcher:            searcher,
		reasoner:            reasoner,
		engine:              engine,
		logger:              logger,
		ConfidenceThreshold: 0.65,
		FallbackLimit:       3,
	}
}

// BuildPlan assembles a complete plan for the intent. Query candidates are
// tried in order until one returns products; a non-first hit is surfaced as a
// fallback clarification.
func (b *PlanBuilder) BuildPlan(ctx context.Context, detected intent.Intent, goals []string, sessionContext string) Plan {
	queries := deriveQueries(detected)
	query := queries[0]
	fallbackReason := ""
	var products []catalog.Product

	for _, candidate := range queries {
		found := b.searcher.Search(candidate)
		if len(found) == 0 {
			continue
		}
		products = found
		query = candidate
		if candidate != queries[0] {
			fallbackReason = fmt.Sprintf("No products for '%s', fell back to '%s'.", queries[0], candidate)
		}
		break
	}

	selected, filteredCount := b.selectProducts(products)
	annotated := catalog.SummarizeAll(selected)
	if b.reasoner != nil {
		annotated = b.reasoner.ReasonAboutProducts(ctx, goals, annotated, sessionContext)
	}

	comparison := catalog.Compare(headProducts(selected, 2))
	dataQuality := b.dataQuality(annotated)
	dataQuality.FilteredLowConfidence = filteredCount
	clarifications := b.clarifications(annotated, dataQuality, filteredCount, fallbackReason)
	snapshot := b.empowermentSnapshot(goals, selected)

	return Plan{
		Query:               query,
		Products:            annotated,
		ProductExplanations: productExplanations(annotated),
		Comparison:          comparison,
		DataQuality:         dataQuality,
		Clarifications:      clarifications,
		Empowerment:         snapshot,
	}
}

func deriveQueries(detected intent.Intent) []string {
	var candidates []string
	if detected.Label != "" {
		candidates = append(candidates, strings.ReplaceAll(detected.Label, "_", " "))
	}
	if detected.Domain != "" && !containsString(candidates, detected.Domain) {
		candidates = append(candidates, detected.Domain)
	}
	candidates = append(candidates, "workspace")
	return candidates
}

// selectProducts keeps products at or above the confidence threshold. When
// nothing clears it, the top few by confidence are kept instead; nothing was
// filtered in that branch, so the hidden counter stays zero.
func (b *PlanBuilder) selectProducts(products []catalog.Product) ([]catalog.Product, int) {
	sorted := make([]catalog.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	var filtered []catalog.Product
	for _, product := range sorted {
		if product.Confidence >= b.ConfidenceThreshold {
			filtered = append(filtered, product)
		}
	}
	filteredCount := len(sorted) - len(filtered)
	if len(filtered) == 0 {
		filtered = headProducts(sorted, b.FallbackLimit)
		filteredCount = 0
	}
	if filteredCount < 0 {
		filteredCount = 0
	}
	return filtered, filteredCount
}

func (b *PlanBuilder) dataQuality(products []catalog.ProductSummary) DataQuality {
	if len(products) == 0 {
		return DataQuality{AverageConfidence: 0.0, Sources: []string{}, FilteredLowConfidence: 0}
	}
	total := 0.0
	sourceSet := map[string]bool{}
	for _, product := range products {
		total += product.Confidence
		sourceSet[product.Source] = true
	}
	sources := make([]string, 0, len(sourceSet))
	for source := range sourceSet {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	average := math.Round(total/float64(len(products))*100) / 100
	return DataQuality{AverageConfidence: average, Sources: sources, FilteredLowConfidence: 0}
}

func (b *PlanBuilder) clarifications(products []catalog.ProductSummary, quality DataQuality, filteredCount int, fallbackReason string) []string {
	var clarifications []string
	if quality.AverageConfidence < 0.75 {
		clarifications = append(clarifications, "Data confidence is low; request merchant-verified options or additional context.")
	}
	if filteredCount > 0 {
		clarifications = append(clarifications, fmt.Sprintf("%d low-confidence products were hidden from the plan.", filteredCount))
	}
	for _, product := range products {
		if product.Source != TrustedSource {
			clarifications = append(clarifications, "Some recommendations come from discovery surfaces (e.g., Google Shopping). Confirm availability before purchasing.")
			break
		}
	}
	if fallbackReason != "" {
		clarifications = append(clarifications, fallbackReason)
	}
	if len(clarifications) == 0 {
		clarifications = append(clarifications, "All recommendations are merchant-verified with high confidence.")
	}
	return clarifications
}

func (b *PlanBuilder) empowermentSnapshot(goals []string, selected []catalog.Product) EmpowermentSnapshot {
	if b.engine == nil {
		misaligned := append([]string{}, goals...)
		return EmpowermentSnapshot{
			GoalAlignment: empowerment.GoalAlignmentResult{
				Score:              0.0,
				AlignedGoals:       []string{},
				MisalignedGoals:    misaligned,
				SupportingProducts: []string{},
				ConfidenceSummary: empowerment.ConfidenceSummary{
					AverageConfidence:     0.0,
					AlignedGoalConfidence: map[string]float64{},
					Method:                empowerment.MethodKeyword,
				},
			},
		}
	}
	if len(goals) == 0 || len(selected) == 0 {
		return EmpowermentSnapshot{GoalAlignment: b.engine.Assess(goals, selected, true)}
	}
	return EmpowermentSnapshot{GoalAlignment: b.engine.Assess(goals, selected, true)}
}

func productExplanations(products []catalog.ProductSummary) []ProductExplanation {
	explanations := make([]ProductExplanation, len(products))
	for i, product := range products {
		explanations[i] = ProductExplanation{
			ID:                  product.ID,
			Name:                product.Name,
			Reasoning:           product.Reasoning,
			CapabilitiesEnabled: product.CapabilitiesEnabled,
			Confidence:          product.Confidence,
		}
	}
	return explanations
}

func headProducts(products []catalog.Product, limit int) []catalog.Product {
	if len(products) <= limit {
		return products
	}
	return products[:limit]
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
