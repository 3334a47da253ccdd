package intent

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"empower-commerce-be/pkg/llm"
)

type stubProvider struct {
	response string
	err      error
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.response, p.err
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.response, p.err
}

func (p *stubProvider) GenerateWithTools(ctx context.Context, prompt string, tools []llm.Tool, options ...llm.Option) (*llm.ToolResponse, error) {
	return &llm.ToolResponse{Text: p.response}, p.err
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func TestHybridClassifyGenerativeWins(t *testing.T) {
	provider := &stubProvider{
		response: `Here you go: {"label": "skill_development", "confidence": 0.9, "domain": "career", "evidence": ["wants to learn"]}`,
	}
	classifier := NewHybridClassifier(nil, provider, 0.55, testLogger())

	got := classifier.Classify(context.Background(), "I want to pick up a new craft", "")

	if got.Label != "skill_development" {
		t.Errorf("Label = %q, want skill_development", got.Label)
	}
	if got.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", got.Confidence)
	}
	if got.Source != SourceGenerative {
		t.Errorf("Source = %q, want %q", got.Source, SourceGenerative)
	}
	if len(got.Evidence) != 1 || got.Evidence[0] != "wants to learn" {
		t.Errorf("Evidence = %v, want generative evidence", got.Evidence)
	}
}

func TestHybridClassifyLowConfidenceFallsBack(t *testing.T) {
	provider := &stubProvider{
		response: `{"label": "skill_development", "confidence": 0.3, "domain": "hobbies"}`,
	}
	classifier := NewHybridClassifier(nil, provider, 0.55, testLogger())

	got := classifier.Classify(context.Background(), "I need a desk for my office", "")

	if got.Label != "workspace_upgrade" {
		t.Errorf("Label = %q, want keyword label workspace_upgrade", got.Label)
	}
	if got.Source != SourceKeywordFallback {
		t.Errorf("Source = %q, want %q", got.Source, SourceKeywordFallback)
	}
	// Non-empty generative fields still override the keyword result.
	if got.Domain != "hobbies" {
		t.Errorf("Domain = %q, want hobbies", got.Domain)
	}
}

func TestHybridClassifyProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("model unavailable")}
	classifier := NewHybridClassifier(nil, provider, 0.55, testLogger())

	got := classifier.Classify(context.Background(), "I need a desk for my office", "")

	if got.Label != "workspace_upgrade" {
		t.Errorf("Label = %q, want workspace_upgrade", got.Label)
	}
	if got.Source != SourceKeywordFallback {
		t.Errorf("Source = %q, want %q", got.Source, SourceKeywordFallback)
	}
}

func TestHybridClassifyMalformedJSON(t *testing.T) {
	provider := &stubProvider{response: "I could not decide on an intent."}
	classifier := NewHybridClassifier(nil, provider, 0.55, testLogger())

	got := classifier.Classify(context.Background(), "cheap ways to save on spending", "")

	if got.Label != "budget_management" {
		t.Errorf("Label = %q, want budget_management", got.Label)
	}
	if got.Source != SourceKeywordFallback {
		t.Errorf("Source = %q, want %q", got.Source, SourceKeywordFallback)
	}
}

func TestHybridClassifyNilProvider(t *testing.T) {
	classifier := NewHybridClassifier(nil, nil, 0.55, testLogger())

	got := classifier.Classify(context.Background(), "I need a desk", "")

	if got.Source != SourceKeyword {
		t.Errorf("Source = %q, want plain keyword path", got.Source)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"fenced object", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose around object", `sure: {"a": 1} hope that helps`, `{"a": 1}`},
		{"no object", "no json here", ""},
		{"unbalanced", "} {", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.response); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.response, got, tt.want)
			}
		})
	}
}
