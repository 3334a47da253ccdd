package intent

import (
	"sort"
	"strings"
)

// KeywordClassifier scores taxonomy entries by keyword coverage and repeat
// salience. It never fails and never calls out to a model.
type KeywordClassifier struct {
	taxonomy []IntentDefinition
}

func NewKeywordClassifier(taxonomy []IntentDefinition) *KeywordClassifier {
	if taxonomy == nil {
		taxonomy = MustLoadTaxonomy()
	}
	return &KeywordClassifier{taxonomy: taxonomy}
}

// Classify determines intent from keywords alone.
func (c *KeywordClassifier) Classify(text string) Intent {
	lowered := strings.ToLower(text)

	type ranked struct {
		definition IntentDefinition
		confidence float64
		evidence   []string
	}

	var candidates []ranked
	for _, definition := range c.taxonomy {
		confidence, hits := scoreDefinition(lowered, definition)
		if confidence > 0 {
			candidates = append(candidates, ranked{definition, confidence, hits})
		}
	}

	if len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].confidence > candidates[j].confidence
		})
		top := candidates[0]
		return Intent{
			Label:               top.definition.Label,
			Confidence:          top.confidence,
			Evidence:            top.evidence,
			Domain:              top.definition.Domain,
			ClarifyingQuestions: top.definition.Questions,
			Source:              SourceKeyword,
		}
	}

	return Intent{
		Label:               LabelUnknown,
		Confidence:          0.1,
		Evidence:            []string{"insufficient context"},
		Domain:              "unknown",
		ClarifyingQuestions: []string{"What goal are you working toward?", "How can we help?"},
		Source:              SourceKeyword,
	}
}

// scoreDefinition returns 0 when no keyword hits; otherwise
// min(1, 0.4 + 0.5*coverage + 0.1*salience) where salience is the highest
// repeat count among the keywords that hit.
func scoreDefinition(loweredText string, definition IntentDefinition) (float64, []string) {
	var hits []string
	for _, keyword := range definition.Keywords {
		if strings.Contains(loweredText, keyword) {
			hits = append(hits, keyword)
		}
	}
	if len(hits) == 0 {
		return 0, nil
	}

	coverage := float64(len(hits)) / float64(len(definition.Keywords))
	salience := 0
	for _, keyword := range hits {
		if n := strings.Count(loweredText, keyword); n > salience {
			salience = n
		}
	}

	confidence := 0.4 + 0.5*coverage + 0.1*float64(salience)
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence, hits
}
