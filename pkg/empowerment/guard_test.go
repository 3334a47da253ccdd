package empowerment

import (
	"strings"
	"testing"

	"empower-commerce-be/pkg/catalog"
)

func TestCheckConstraintsBlocking(t *testing.T) {
	tests := []struct {
		name        string
		rationale   string
		wantPattern string
	}{
		{"scarcity", "Only 3 left in stock, better hurry", PatternArtificialScarcity},
		{"time pressure", "This is a limited time offer", PatternTimePressure},
		{"bait and switch", "That one is out of stock, take a similar item instead", PatternBaitAndSwitch},
		{"hidden costs", "Great price, fees apply at checkout", PatternHiddenCosts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckConstraints(tt.rationale, nil)

			if !result.Blocked {
				t.Fatal("expected a blocking verdict")
			}
			if result.Summary != "Blocking violations detected." {
				t.Errorf("Summary = %q", result.Summary)
			}
			found := false
			for _, violation := range result.Violations {
				if violation.Pattern == tt.wantPattern {
					found = true
					if violation.Severity != SeverityBlock {
						t.Errorf("Severity = %q, want block", violation.Severity)
					}
				}
			}
			if !found {
				t.Errorf("pattern %q missing from violations %v", tt.wantPattern, result.Violations)
			}
		})
	}
}

func TestCheckConstraintsWarnOnly(t *testing.T) {
	result := CheckConstraints("This is our most popular bestseller", nil)

	if result.Blocked {
		t.Fatal("social proof alone must not block")
	}
	if len(result.Violations) == 0 {
		t.Fatal("expected a social_proof warning")
	}
	if result.Summary != "Constraint warnings detected." {
		t.Errorf("Summary = %q", result.Summary)
	}
}

func TestCheckConstraintsClean(t *testing.T) {
	result := CheckConstraints("These match your stated goals.", nil)

	if result.Blocked || len(result.Violations) != 0 {
		t.Fatalf("unexpected violations: %+v", result.Violations)
	}
	if result.Summary != "No constraint violations detected." {
		t.Errorf("Summary = %q", result.Summary)
	}
}

func TestCheckConstraintsInformationHiding(t *testing.T) {
	products := []catalog.ProductSummary{
		{ID: "p1", Name: "Desk", Confidence: 0.9},
		{ID: "p2", Name: "Mystery Gadget", Confidence: 0.2},
	}

	result := CheckConstraints("Neutral rationale.", products)

	if result.Blocked {
		t.Fatal("information hiding is a warning, not a block")
	}
	if len(result.Violations) != 1 || result.Violations[0].Pattern != PatternInformationHiding {
		t.Fatalf("Violations = %+v, want information_hiding", result.Violations)
	}
}

func TestDetectAlienation(t *testing.T) {
	if signal := DetectAlienation("I am overwhelmed by all these choices"); signal == nil || signal.Label != "overload" || signal.Severity != 0.7 {
		t.Errorf("overload signal = %+v", signal)
	}
	if signal := DetectAlienation("Honestly I'm confused now"); signal == nil || signal.Label != "ambiguity" || signal.Severity != 0.5 {
		t.Errorf("ambiguity signal = %+v", signal)
	}
	if signal := DetectAlienation("All clear, thanks"); signal != nil {
		t.Errorf("unexpected signal = %+v", signal)
	}
}

func TestGuardCheckBlocked(t *testing.T) {
	guard := NewGuard()

	result := guard.Check("Only 3 left, limited time offer!", nil, nil)

	if result.Status != StatusBlocked {
		t.Fatalf("Status = %q, want blocked", result.Status)
	}
	if !result.Constraints.Blocked {
		t.Error("constraint result should carry the block")
	}
}

func TestGuardCheckNeedsReview(t *testing.T) {
	guard := NewGuard()
	products := []catalog.ProductSummary{{ID: "p1", Name: "Lamp", Confidence: 0.4}}

	result := guard.Check("These fit your goals.", []string{"Average data confidence is low."}, products)

	if result.Status != StatusNeedsReview {
		t.Fatalf("Status = %q, want needs_review", result.Status)
	}
	if len(result.Flags) != 2 {
		t.Fatalf("Flags = %v, want clarification + confidence safeguard", result.Flags)
	}
	if !strings.Contains(result.Flags[1], "confidence safeguards") {
		t.Errorf("Flags[1] = %q", result.Flags[1])
	}
}

func TestGuardCheckAlienationFlag(t *testing.T) {
	guard := NewGuard()

	result := guard.Check("The user said they feel overwhelmed.", nil, nil)

	if result.Status != StatusNeedsReview {
		t.Fatalf("Status = %q, want needs_review", result.Status)
	}
	found := false
	for _, flag := range result.Flags {
		if strings.Contains(flag, "Alienation signal detected: overload (severity 0.7)") {
			found = true
		}
	}
	if !found {
		t.Errorf("Flags = %v, want alienation flag", result.Flags)
	}
}

func TestGuardCheckClear(t *testing.T) {
	guard := NewGuard()
	products := []catalog.ProductSummary{{ID: "p1", Name: "Desk", Confidence: 0.95}}

	result := guard.Check("Aligned with your goals.", nil, products)

	if result.Status != StatusClear {
		t.Fatalf("Status = %q, want clear", result.Status)
	}
	if len(result.Flags) != 0 {
		t.Errorf("Flags = %v, want none", result.Flags)
	}
}
