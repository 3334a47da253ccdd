package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"empower-commerce-be/pkg/catalog"
	"empower-commerce-be/pkg/commerce"
	"empower-commerce-be/pkg/empowerment"
	"empower-commerce-be/pkg/intent"

	"github.com/fatih/color"
)

// Offline walkthrough of the recommendation pipeline. No database, no LLM;
// the keyword classifier and keyword alignment paths carry the whole run.
func main() {
	logger := log.New(os.Stdout, "[simulate] ", log.LstdFlags)

	searcher, err := catalog.NewSearcher("embedded")
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	taxonomy := intent.MustLoadTaxonomy()
	classifier := intent.NewKeywordClassifier(taxonomy)
	engine := empowerment.NewAlignmentEngine(nil, logger)
	reasoner := commerce.NewReasoner(nil, logger)
	builder := commerce.NewPlanBuilder(searcher, reasoner, engine, logger)
	guard := empowerment.NewGuard()

	scenarios := []struct {
		message string
		goals   []string
	}{
		{
			message: "I want a standing desk to reduce back pain while I work",
			goals:   []string{"reduce back pain", "work comfortably for long sessions"},
		},
		{
			message: "Looking for noise cancelling headphones for deep focus",
			goals:   []string{"enable deep focus", "block out office noise"},
		},
		{
			message: "Something to help me learn woodworking",
			goals:   []string{"learn woodworking"},
		},
	}

	heading := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgYellow)
	warn := color.New(color.FgRed)

	ctx := context.Background()
	for i, scenario := range scenarios {
		heading.Printf("\n=== Turn %d: %s\n", i+1, scenario.message)

		detected := classifier.Classify(scenario.message)
		label.Printf("Intent: %s (%.2f, source=%s)\n", detected.Label, detected.Confidence, detected.Source)

		plan := builder.BuildPlan(ctx, detected, scenario.goals, "")
		label.Printf("Query: %s\n", plan.Query)
		for _, product := range plan.Products {
			fmt.Printf("  - %s (confidence %.2f, source %s)\n", product.Name, product.Confidence, product.Source)
		}
		label.Printf("Alignment: %.3f via %s\n", plan.Empowerment.GoalAlignment.Score, plan.Empowerment.GoalAlignment.ConfidenceSummary.Method)
		for _, clarification := range plan.Clarifications {
			warn.Printf("Clarification: %s\n", clarification)
		}

		verdict := guard.Check("", plan.Clarifications, plan.Products)
		label.Printf("Guard: %s", verdict.Status)
		if len(verdict.Flags) > 0 {
			fmt.Printf(" (%d flags)", len(verdict.Flags))
		}
		fmt.Println()

		fmt.Println(commerce.Explain(plan.Products))
	}
}
