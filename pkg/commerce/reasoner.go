package commerce

import (
	"context"
	"fmt"
	"log"
	"strings"

	"empower-commerce-be/pkg/catalog"
	"empower-commerce-be/pkg/llm"
)

const productReasoningPrompt = `You explain why a product serves a shopper's stated goals.
Write 1-2 factual sentences connecting the product's capabilities to the goals.
Never use urgency, scarcity, or social pressure. If the fit is weak, say so plainly.`

// Reasoner annotates plan products with a short goal-fit explanation from the
// generative service. Any generation failure leaves the product without
// reasoning rather than failing the plan.
type Reasoner struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewReasoner(provider llm.LLMProvider, logger *log.Logger) *Reasoner {
	return &Reasoner{provider: provider, logger: logger}
}

func (r *Reasoner) ReasonAboutProducts(ctx context.Context, goals []string, products []catalog.ProductSummary, sessionContext string) []catalog.ProductSummary {
	if len(products) == 0 || r.provider == nil {
		return products
	}
	annotated := make([]catalog.ProductSummary, len(products))
	for i, product := range products {
		annotated[i] = product
		response, err := r.provider.Generate(ctx, r.composePrompt(goals, product, sessionContext))
		if err != nil {
			r.logger.Printf("[WARN] Product reasoning failed for %s: %v", product.ID, err)
			continue
		}
		annotated[i].Reasoning = strings.TrimSpace(response)
	}
	return annotated
}

func (r *Reasoner) composePrompt(goals []string, product catalog.ProductSummary, sessionContext string) string {
	sections := []string{productReasoningPrompt}
	if sessionContext != "" {
		sections = append(sections, fmt.Sprintf("Session context:\n%s", sessionContext))
	}
	goalsText := "No explicit goals captured."
	if len(goals) > 0 {
		lines := make([]string, len(goals))
		for i, goal := range goals {
			lines[i] = fmt.Sprintf("- %s", goal)
		}
		goalsText = strings.Join(lines, "\n")
	}
	details := []string{
		fmt.Sprintf("Name: %s", product.Name),
		fmt.Sprintf("Capabilities: %s", strings.Join(product.CapabilitiesEnabled, ", ")),
		fmt.Sprintf("Confidence: %.2f", product.Confidence),
		fmt.Sprintf("Source: %s", product.Source),
	}
	sections = append(sections, fmt.Sprintf("User goals:\n%s\n\nProduct:\n%s", goalsText, strings.Join(details, "\n")))
	return strings.Join(sections, "\n\n")
}
