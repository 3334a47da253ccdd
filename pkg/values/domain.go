package values

// ClarificationTurn is a single exchange in the clarification dialogue.
type ClarificationTurn struct {
	Speaker string `json:"speaker"`
	Content string `json:"content"`
}

// ClarificationState tracks a values clarification dialogue. Exactly one live
// instance exists per session; it is serialized into the session state blob.
// ReadyForProducts is monotonic: once true it never flips back.
type ClarificationState struct {
	Query            string              `json:"query"`
	Turns            []ClarificationTurn `json:"turns"`
	ExtractedGoals   []string            `json:"extracted_goals"`
	ReadyForProducts bool                `json:"ready_for_products"`
	Metadata         map[string]string   `json:"metadata,omitempty"`
}

func (s *ClarificationState) AddTurn(speaker, content string) {
	s.Turns = append(s.Turns, ClarificationTurn{Speaker: speaker, Content: content})
}
