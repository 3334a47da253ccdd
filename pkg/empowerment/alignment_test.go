package empowerment

import (
	"errors"
	"log"
	"os"
	"testing"

	"empower-commerce-be/pkg/catalog"
	"empower-commerce-be/pkg/embedding"
)

type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeEmbedder) GenerateBatch(texts []string, taskType string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vector, ok := f.vectors[text]
		if !ok {
			vector = []float32{0, 1}
		}
		out[i] = vector
	}
	return out, nil
}

func alignmentLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func TestAssessEmptyInputs(t *testing.T) {
	engine := NewAlignmentEngine(nil, alignmentLogger())

	result := engine.Assess(nil, []catalog.Product{{ID: "p1"}}, false)
	if result.Score != 0.0 {
		t.Errorf("Score = %v, want 0 for empty goals", result.Score)
	}

	result = engine.Assess([]string{"reduce back pain"}, nil, false)
	if result.Score != 0.0 {
		t.Errorf("Score = %v, want 0 for empty products", result.Score)
	}
	if len(result.MisalignedGoals) != 1 {
		t.Errorf("MisalignedGoals = %v, want the lone goal", result.MisalignedGoals)
	}
	if result.AlignedGoals == nil || result.SupportingProducts == nil {
		t.Error("empty result slices must be non-nil")
	}
}

func TestAssessKeywordPath(t *testing.T) {
	engine := NewAlignmentEngine(nil, alignmentLogger())
	products := []catalog.Product{
		{
			ID:                  "p1",
			Name:                "Noise Cancelling Headphones",
			CapabilitiesEnabled: []string{"deep focus", "quiet commute"},
			Confidence:          0.9,
		},
		{
			ID:         "p2",
			Name:       "Desk Lamp",
			Tags:       []string{"lighting"},
			Confidence: 0.8,
		},
	}

	result := engine.Assess([]string{"enable deep focus", "learn woodworking"}, products, false)

	if result.ConfidenceSummary.Method != MethodKeyword {
		t.Errorf("Method = %q, want keyword", result.ConfidenceSummary.Method)
	}
	if len(result.AlignedGoals) != 1 || result.AlignedGoals[0] != "enable deep focus" {
		t.Fatalf("AlignedGoals = %v", result.AlignedGoals)
	}
	if len(result.MisalignedGoals) != 1 || result.MisalignedGoals[0] != "learn woodworking" {
		t.Fatalf("MisalignedGoals = %v", result.MisalignedGoals)
	}
	if len(result.SupportingProducts) != 1 || result.SupportingProducts[0] != "p1" {
		t.Fatalf("SupportingProducts = %v", result.SupportingProducts)
	}
	// base 0.5, goal confidence 0.9: 0.5 * (0.7 + 0.3*0.9) = 0.485
	if result.Score != 0.485 {
		t.Errorf("Score = %v, want 0.485", result.Score)
	}
}

func TestAssessSemanticPath(t *testing.T) {
	goal := "reduce back pain"
	productText := "enables: ergonomic posture, relief from back pain furniture ergonomic"
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		goal:        {1, 0},
		productText: {1, 0},
	}}
	engine := NewAlignmentEngine(embedder, alignmentLogger())
	products := []catalog.Product{
		{
			ID:                  "p1",
			Name:                "Standing Desk",
			CapabilitiesEnabled: []string{"ergonomic posture", "relief from back pain"},
			Category:            "furniture",
			Tags:                []string{"ergonomic"},
			Confidence:          0.8,
		},
	}

	result := engine.Assess([]string{goal}, products, true)

	if result.ConfidenceSummary.Method != MethodSemantic {
		t.Fatalf("Method = %q, want semantic", result.ConfidenceSummary.Method)
	}
	if len(result.AlignedGoals) != 1 {
		t.Fatalf("AlignedGoals = %v", result.AlignedGoals)
	}
	// similarity 1.0, confidence 0.8: 1.0 * (0.6 + 0.4*0.8) = 0.92
	if result.Score != 0.92 {
		t.Errorf("Score = %v, want 0.92", result.Score)
	}
	if result.ConfidenceSummary.AlignedGoalConfidence[goal] != 0.8 {
		t.Errorf("AlignedGoalConfidence = %v", result.ConfidenceSummary.AlignedGoalConfidence)
	}
}

func TestAssessSemanticFallsBackOnError(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("embedding service down")}
	engine := NewAlignmentEngine(embedder, alignmentLogger())
	products := []catalog.Product{
		{ID: "p1", CapabilitiesEnabled: []string{"deep focus"}, Confidence: 0.9},
	}

	result := engine.Assess([]string{"deep focus time"}, products, true)

	if result.ConfidenceSummary.Method != MethodKeyword {
		t.Errorf("Method = %q, want keyword fallback", result.ConfidenceSummary.Method)
	}
	if len(result.AlignedGoals) != 1 {
		t.Errorf("AlignedGoals = %v", result.AlignedGoals)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"length mismatch", []float32{1, 0}, []float32{1}, 0.0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosineSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("cosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}
