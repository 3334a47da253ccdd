package empowerment

import (
	"strings"

	"empower-commerce-be/pkg/catalog"
)

type constraintPattern struct {
	pattern        string
	severity       ConstraintSeverity
	keywords       []string
	explanation    string
	recommendation string
}

var constraintPatterns = []constraintPattern{
	{
		pattern:        PatternArtificialScarcity,
		severity:       SeverityBlock,
		keywords:       []string{"only 3 left", "limited stock", "selling out", "last chance"},
		explanation:    "Scarcity pressure detected.",
		recommendation: "Remove scarcity language and present availability neutrally.",
	},
	{
		pattern:        PatternTimePressure,
		severity:       SeverityBlock,
		keywords:       []string{"limited time", "act now", "expires in", "today only"},
		explanation:    "Time pressure detected.",
		recommendation: "Offer a calm timeline and a save-for-later option.",
	},
	{
		pattern:        PatternExpiringDeal,
		severity:       SeverityWarn,
		keywords:       []string{"deal ends", "offer expires", "ending soon"},
		explanation:    "Expiring deal language detected.",
		recommendation: "Provide alternatives and explain tradeoffs.",
	},
	{
		pattern:        PatternSocialProof,
		severity:       SeverityWarn,
		keywords:       []string{"everyone's buying", "most popular", "trending", "bestseller"},
		explanation:    "Social pressure detected.",
		recommendation: "Reframe as optional and include alternatives.",
	},
	{
		pattern:        PatternPopularityPressure,
		severity:       SeverityWarn,
		keywords:       []string{"people like you", "top rated", "hot right now"},
		explanation:    "Popularity pressure detected.",
		recommendation: "Avoid social ranking; emphasize fit to goals.",
	},
	{
		pattern:        PatternFearOfMissingOut,
		severity:       SeverityWarn,
		keywords:       []string{"don't miss out", "missing out", "fomo"},
		explanation:    "FOMO language detected.",
		recommendation: "Replace with transparent tradeoffs.",
	},
	{
		pattern:        PatternConfirmShaming,
		severity:       SeverityWarn,
		keywords:       []string{"no thanks, i hate saving", "i don't want to save", "no, i prefer to waste"},
		explanation:    "Confirm-shaming language detected.",
		recommendation: "Offer neutral opt-out wording.",
	},
	{
		pattern:        PatternForcedUpsell,
		severity:       SeverityWarn,
		keywords:       []string{"preselected add-on", "auto-added", "upgrade selected"},
		explanation:    "Forced upsell pattern detected.",
		recommendation: "Let users explicitly opt into add-ons.",
	},
	{
		pattern:        PatternMisdirection,
		severity:       SeverityWarn,
		keywords:       []string{"tiny print", "hidden button", "greyed out"},
		explanation:    "Misdirection pattern detected.",
		recommendation: "Present clear choices with equal visibility.",
	},
	{
		pattern:        PatternRoachMotel,
		severity:       SeverityWarn,
		keywords:       []string{"cancel anytime", "hard to cancel", "call to cancel"},
		explanation:    "Roach-motel pattern detected.",
		recommendation: "Clarify cancellation steps and alternatives.",
	},
	{
		pattern:        PatternBaitAndSwitch,
		severity:       SeverityBlock,
		keywords:       []string{"unavailable", "out of stock", "similar item instead"},
		explanation:    "Bait-and-switch signal detected.",
		recommendation: "Disclose availability and avoid substitution pressure.",
	},
	{
		pattern:        PatternGuiltTripping,
		severity:       SeverityWarn,
		keywords:       []string{"don't let your", "cart is lonely", "sad without you"},
		explanation:    "Guilt-tripping language detected.",
		recommendation: "Remove emotional pressure and provide facts.",
	},
	{
		pattern:        PatternHiddenCosts,
		severity:       SeverityBlock,
		keywords:       []string{"fees apply", "taxes at checkout", "shipping calculated later"},
		explanation:    "Potential hidden costs detected.",
		recommendation: "Disclose full price upfront when possible.",
	},
	{
		pattern:        PatternOptionOverload,
		severity:       SeverityWarn,
		keywords:       []string{"too many choices", "overwhelmed"},
		explanation:    "Option overload signal detected.",
		recommendation: "Reduce to top 3 and offer a guided comparison.",
	},
}

// CheckConstraints scans a rationale and optional product metadata against
// the manipulation pattern table.
func CheckConstraints(rationale string, products []catalog.ProductSummary) ConstraintResult {
	lowered := strings.ToLower(rationale)
	var violations []ConstraintViolation

	for _, entry := range constraintPatterns {
		matches := findMatches(lowered, entry.keywords)
		if len(matches) == 0 {
			continue
		}
		violations = append(violations, ConstraintViolation{
			Pattern:        entry.pattern,
			Severity:       entry.severity,
			Evidence:       strings.Join(matches, ", "),
			Explanation:    entry.explanation,
			Recommendation: entry.recommendation,
		})
	}

	if hasLowConfidence(products, 0.3) {
		violations = append(violations, ConstraintViolation{
			Pattern:        PatternInformationHiding,
			Severity:       SeverityWarn,
			Evidence:       "low-confidence products present",
			Explanation:    "Some products lack sufficient information.",
			Recommendation: "Confirm details or reduce to verified options.",
		})
	}

	blocked := false
	for _, violation := range violations {
		if violation.Severity == SeverityBlock {
			blocked = true
			break
		}
	}

	summary := "No constraint violations detected."
	if blocked {
		summary = "Blocking violations detected."
	} else if len(violations) > 0 {
		summary = "Constraint warnings detected."
	}

	return ConstraintResult{Blocked: blocked, Violations: violations, Summary: summary}
}

func findMatches(text string, keywords []string) []string {
	var matches []string
	for _, phrase := range keywords {
		if strings.Contains(text, phrase) {
			matches = append(matches, phrase)
		}
	}
	return matches
}

func hasLowConfidence(products []catalog.ProductSummary, threshold float64) bool {
	for _, product := range products {
		if product.Confidence < threshold {
			return true
		}
	}
	return false
}
