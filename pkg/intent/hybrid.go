package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"empower-commerce-be/pkg/llm"
)

const classificationPrompt = `You are an intent classifier for a shopping assistant.
Classify the user input into a short snake_case label with a domain.
Respond with ONLY valid JSON:
{
  "label": "workspace_upgrade",
  "domain": "career",
  "confidence": 0.9,
  "evidence": ["phrases from the input"],
  "clarifying_questions": ["optional follow-up questions"]
}`

// HybridClassifier runs the keyword classifier first and merges in a
// generative classification when it is confident enough. Any model or parse
// failure degrades to the keyword result; classification itself never fails.
type HybridClassifier struct {
	keyword   *KeywordClassifier
	provider  llm.LLMProvider
	threshold float64
	logger    *log.Logger
}

func NewHybridClassifier(taxonomy []IntentDefinition, provider llm.LLMProvider, threshold float64, logger *log.Logger) *HybridClassifier {
	if threshold <= 0 {
		threshold = 0.55
	}
	return &HybridClassifier{
		keyword:   NewKeywordClassifier(taxonomy),
		provider:  provider,
		threshold: threshold,
		logger:    logger,
	}
}

// Classify resolves an intent for the given text. sessionContext, when
// non-empty, is appended to the generative prompt.
func (c *HybridClassifier) Classify(ctx context.Context, text string, sessionContext string) Intent {
	keywordResult := c.keyword.Classify(text)
	if c.provider == nil {
		return keywordResult
	}

	parsed, err := c.callGenerative(ctx, text, sessionContext)
	if err != nil {
		c.logger.Printf("[WARN] Generative intent classification failed, using keyword result: %v", err)
		parsed = map[string]interface{}{}
	}

	label := getString(parsed, []string{"label", "intent"}, keywordResult.Label)
	confidence := getFloat(parsed, []string{"confidence", "score"}, 0.0)
	domain := getString(parsed, []string{"domain"}, keywordResult.Domain)
	evidence := getStringList(parsed, []string{"evidence"}, keywordResult.Evidence)
	questions := getStringList(parsed, []string{"clarifying_questions"}, keywordResult.ClarifyingQuestions)

	if label != "" && label != LabelUnknown && confidence >= c.threshold {
		return Intent{
			Label:               label,
			Confidence:          confidence,
			Evidence:            evidence,
			Domain:              domain,
			ClarifyingQuestions: questions,
			Source:              SourceGenerative,
		}
	}

	merged := Intent{
		Label:               keywordResult.Label,
		Confidence:          keywordResult.Confidence,
		Evidence:            keywordResult.Evidence,
		Domain:              keywordResult.Domain,
		ClarifyingQuestions: keywordResult.ClarifyingQuestions,
		Source:              SourceKeywordFallback,
	}
	if confidence > merged.Confidence {
		merged.Confidence = confidence
	}
	if len(evidence) > 0 {
		merged.Evidence = evidence
	}
	if domain != "" {
		merged.Domain = domain
	}
	if len(questions) > 0 {
		merged.ClarifyingQuestions = questions
	}
	return merged
}

func (c *HybridClassifier) callGenerative(ctx context.Context, text, sessionContext string) (map[string]interface{}, error) {
	prompt := classificationPrompt
	if sessionContext != "" {
		prompt = fmt.Sprintf("%s\n\nSession context:\n%s", prompt, sessionContext)
	}
	prompt = fmt.Sprintf("%s\nInput: %s", prompt, text)

	raw, err := c.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	return parseClassification(raw)
}

// parseClassification extracts the JSON object from a model reply. A missing
// or malformed object is an explicit error so callers branch visibly into the
// keyword fallback.
func parseClassification(response string) (map[string]interface{}, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(jsonContent), &parsed); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}
	return parsed, nil
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}

func getString(data map[string]interface{}, keys []string, fallback string) string {
	for _, key := range keys {
		if value, ok := data[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return fallback
}

func getFloat(data map[string]interface{}, keys []string, fallback float64) float64 {
	for _, key := range keys {
		switch value := data[key].(type) {
		case float64:
			return value
		case int:
			return float64(value)
		case string:
			continue
		}
	}
	return fallback
}

func getStringList(data map[string]interface{}, keys []string, fallback []string) []string {
	for _, key := range keys {
		raw, ok := data[key].([]interface{})
		if !ok {
			continue
		}
		items := make([]string, 0, len(raw))
		valid := true
		for _, entry := range raw {
			s, ok := entry.(string)
			if !ok {
				valid = false
				break
			}
			items = append(items, s)
		}
		if valid && len(items) > 0 {
			return items
		}
	}
	return fallback
}
