package empowerment

import (
	"log"
	"math"
	"strings"

	"empower-commerce-be/pkg/catalog"
	"empower-commerce-be/pkg/embedding"
)

const (
	// similarityThreshold is the minimum cosine similarity for a product to
	// count toward a goal in the semantic path.
	similarityThreshold = 0.5

	MethodSemantic = "semantic"
	MethodKeyword  = "keyword"
)

// AlignmentEngine scores how well products serve declared goals. With an
// embedding provider it compares goal and product embeddings; without one, or
// whenever the embedding service fails, it degrades to keyword overlap.
type AlignmentEngine struct {
	embedder embedding.EmbeddingProvider
	logger   *log.Logger
}

func NewAlignmentEngine(embedder embedding.EmbeddingProvider, logger *log.Logger) *AlignmentEngine {
	return &AlignmentEngine{embedder: embedder, logger: logger}
}

// Assess scores the product set against the goals. Empty goals or products
// yield a zero-score, fully misaligned result without touching the embedding
// service.
func (e *AlignmentEngine) Assess(goals []string, products []catalog.Product, useSemantic bool) GoalAlignmentResult {
	semantic := useSemantic && e.embedder != nil
	if len(goals) == 0 || len(products) == 0 {
		method := MethodKeyword
		if semantic {
			method = MethodSemantic
		}
		return GoalAlignmentResult{
			Score:              0.0,
			AlignedGoals:       []string{},
			MisalignedGoals:    append([]string{}, goals...),
			SupportingProducts: []string{},
			ConfidenceSummary: ConfidenceSummary{
				AverageConfidence:     0.0,
				AlignedGoalConfidence: map[string]float64{},
				Method:                method,
			},
		}
	}

	if semantic {
		result, err := e.assessSemantic(goals, products)
		if err == nil {
			return result
		}
		e.logger.Printf("[WARN] Semantic alignment failed, falling back to keyword overlap: %v", err)
	}
	return e.assessKeyword(goals, products)
}

func (e *AlignmentEngine) assessSemantic(goals []string, products []catalog.Product) (GoalAlignmentResult, error) {
	goalVectors, err := e.embedder.GenerateBatch(goals, embedding.TaskSemanticSimilarity)
	if err != nil {
		return GoalAlignmentResult{}, err
	}
	productTexts := make([]string, len(products))
	for i, product := range products {
		productTexts[i] = productEmbeddingText(product)
	}
	productVectors, err := e.embedder.GenerateBatch(productTexts, embedding.TaskSemanticSimilarity)
	if err != nil {
		return GoalAlignmentResult{}, err
	}

	var aligned []string
	var supporting []string
	goalConfidence := map[string]float64{}

	for i, goal := range goals {
		maxSimilarity := 0.0
		var matching []catalog.Product
		for j, product := range products {
			similarity := cosineSimilarity(goalVectors[i], productVectors[j])
			if similarity < similarityThreshold {
				continue
			}
			matching = append(matching, product)
			if similarity > maxSimilarity {
				maxSimilarity = similarity
			}
		}
		if len(matching) == 0 {
			continue
		}
		aligned = append(aligned, goal)
		for _, product := range matching {
			supporting = append(supporting, product.ID)
		}
		goalConfidence[goal] = maxSimilarity * averageConfidence(matching)
	}

	return e.buildResult(goals, products, aligned, supporting, goalConfidence, 0.6, 0.4, MethodSemantic), nil
}

func (e *AlignmentEngine) assessKeyword(goals []string, products []catalog.Product) GoalAlignmentResult {
	var aligned []string
	var supporting []string
	goalConfidence := map[string]float64{}

	for _, goal := range goals {
		normalized := strings.ToLower(goal)
		goalTokens := tokenSet(normalized)
		var matching []catalog.Product
		for _, product := range products {
			if keywordMatch(goalTokens, normalized, product) {
				matching = append(matching, product)
			}
		}
		if len(matching) == 0 {
			continue
		}
		aligned = append(aligned, goal)
		for _, product := range matching {
			supporting = append(supporting, product.ID)
		}
		goalConfidence[goal] = averageConfidence(matching)
	}

	return e.buildResult(goals, products, aligned, supporting, goalConfidence, 0.7, 0.3, MethodKeyword)
}

func (e *AlignmentEngine) buildResult(goals []string, products []catalog.Product, aligned, supporting []string, goalConfidence map[string]float64, baseWeight, confWeight float64, method string) GoalAlignmentResult {
	alignedSet := map[string]bool{}
	for _, goal := range aligned {
		alignedSet[goal] = true
	}
	var misaligned []string
	for _, goal := range goals {
		if !alignedSet[goal] {
			misaligned = append(misaligned, goal)
		}
	}

	baseScore := float64(len(aligned)) / float64(len(goals))
	confidenceWeight := 0.0
	if len(goalConfidence) > 0 {
		total := 0.0
		for _, value := range goalConfidence {
			total += value
		}
		confidenceWeight = total / float64(len(goalConfidence))
	}
	score := roundTo(baseScore*(baseWeight+confWeight*confidenceWeight), 3)

	roundedConfidence := make(map[string]float64, len(goalConfidence))
	for goal, value := range goalConfidence {
		roundedConfidence[goal] = roundTo(value, 2)
	}
	if supporting == nil {
		supporting = []string{}
	}
	if aligned == nil {
		aligned = []string{}
	}

	return GoalAlignmentResult{
		Score:              score,
		AlignedGoals:       aligned,
		MisalignedGoals:    misaligned,
		SupportingProducts: supporting,
		ConfidenceSummary: ConfidenceSummary{
			AverageConfidence:     roundTo(averageConfidence(products), 2),
			AlignedGoalConfidence: roundedConfidence,
			Method:                method,
		},
	}
}

// productEmbeddingText flattens the attributes that describe what a product
// does, falling back to the name when nothing else is populated.
func productEmbeddingText(product catalog.Product) string {
	var parts []string
	if len(product.CapabilitiesEnabled) > 0 {
		parts = append(parts, "enables: "+strings.Join(product.CapabilitiesEnabled, ", "))
	}
	if product.Description != "" {
		parts = append(parts, product.Description)
	}
	if product.Category != "" {
		parts = append(parts, product.Category)
	}
	if len(product.Tags) > 0 {
		parts = append(parts, strings.Join(product.Tags, " "))
	}
	if len(parts) == 0 {
		return product.Name
	}
	return strings.Join(parts, " ")
}

func keywordMatch(goalTokens map[string]bool, normalizedGoal string, product catalog.Product) bool {
	for _, capability := range product.CapabilitiesEnabled {
		for _, token := range strings.Fields(strings.ToLower(capability)) {
			if goalTokens[token] {
				return true
			}
		}
	}
	for _, tag := range product.Tags {
		lowered := strings.ToLower(tag)
		if strings.Contains(normalizedGoal, lowered) || strings.Contains(lowered, normalizedGoal) {
			return true
		}
	}
	return false
}

func tokenSet(text string) map[string]bool {
	tokens := map[string]bool{}
	for _, token := range strings.Fields(text) {
		tokens[token] = true
	}
	return tokens
}

func averageConfidence(products []catalog.Product) float64 {
	if len(products) == 0 {
		return 0.0
	}
	total := 0.0
	for _, product := range products {
		total += product.Confidence
	}
	return total / float64(len(products))
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
