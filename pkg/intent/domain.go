package intent

// Source values describing which path produced an intent.
const (
	SourceKeyword         = "keyword"
	SourceGenerative      = "generative"
	SourceKeywordFallback = "keyword_fallback"
)

// LabelUnknown is returned when no taxonomy entry matches.
const LabelUnknown = "unknown"

// Intent is a resolved user intention.
type Intent struct {
	Label               string   `json:"label"`
	Confidence          float64  `json:"confidence"`
	Evidence            []string `json:"evidence"`
	Domain              string   `json:"domain"`
	ClarifyingQuestions []string `json:"clarifying_questions"`
	Source              string   `json:"source"`
}

// IntentDefinition is one taxonomy entry scored against user text.
type IntentDefinition struct {
	Label     string   `json:"label"`
	Domain    string   `json:"domain"`
	Keywords  []string `json:"keywords"`
	Questions []string `json:"questions"`
}
