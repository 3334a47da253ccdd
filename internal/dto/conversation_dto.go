package dto

import (
	"empower-commerce-be/pkg/commerce"
	"empower-commerce-be/pkg/empowerment"
	"empower-commerce-be/pkg/intent"
	"empower-commerce-be/pkg/session"
	"empower-commerce-be/pkg/values"
)

type ClarifiedGoal struct {
	GoalText   string   `json:"goal_text" validate:"required"`
	Domain     string   `json:"domain,omitempty"`
	Importance *float64 `json:"importance,omitempty"`
}

// ImportanceOrDefault applies the default weight for clarified goals.
func (g ClarifiedGoal) ImportanceOrDefault() float64 {
	if g.Importance == nil {
		return 0.7
	}
	return *g.Importance
}

type ConversationStartRequest struct {
	UserID         string                 `json:"user_id,omitempty"`
	OpeningMessage string                 `json:"opening_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	ClarifiedGoals []ClarifiedGoal        `json:"clarified_goals,omitempty"`
}

type MessageRequest struct {
	Message        string                 `json:"message" validate:"required"`
	UserID         string                 `json:"user_id,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	ClarifiedGoals []ClarifiedGoal        `json:"clarified_goals,omitempty"`
}

type ClarifiedGoalsRequest struct {
	Goals  []ClarifiedGoal `json:"goals" validate:"required,min=1,dive"`
	UserID string          `json:"user_id,omitempty"`
}

// ConversationResponse is the full per-turn payload. Optional sections are
// nil when a turn stayed inside the clarification dialogue.
type ConversationResponse struct {
	SessionID           string                        `json:"session_id"`
	UserID              string                        `json:"user_id"`
	Snapshot            *session.Snapshot             `json:"snapshot"`
	Intent              *intent.Intent                `json:"intent,omitempty"`
	Plan                *commerce.Plan                `json:"plan,omitempty"`
	Guardrails          *empowerment.GuardResult      `json:"guardrails,omitempty"`
	Explanation         string                        `json:"explanation,omitempty"`
	Reflection          string                        `json:"reflection,omitempty"`
	ProductExplanations []commerce.ProductExplanation `json:"product_explanations,omitempty"`
	ValuesState         *values.ClarificationState    `json:"values_state,omitempty"`
	Clarification       string                        `json:"clarification,omitempty"`
	Goals               []string                      `json:"goals,omitempty"`
}
