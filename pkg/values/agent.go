package values

import (
	"context"
	"fmt"
	"log"
	"strings"

	"empower-commerce-be/pkg/llm"
)

const clarificationSystemPrompt = `You are a values clarification assistant for a shopping dialogue.
Before any product is discussed, help the user surface what they actually want to achieve.
Ask one open question at a time about underlying goals, constraints, and budget.
Never use urgency, scarcity, or pressure of any kind.
When you believe you understand the user's goals, reply with a bullet-point summary of them and ask "Does that capture what you're looking for?"`

const fallbackQuestion = "Before we look at products, what are you hoping this purchase will help you achieve?"

// goalKeywords marks summary bullet lines worth keeping as goals.
var goalKeywords = []string{"goal", "reduce", "enable", "budget"}

// Agent drives the pre-commerce clarification dialogue. A dialogue stays in
// the collecting phase until the model's reply reads like a summary, at which
// point goals are extracted and the state becomes ready for products.
type Agent struct {
	provider llm.LLMProvider
	logger   *log.Logger

	// MinQuestions is the intended minimum clarifying exchange count.
	// Readiness is currently driven by the summary heuristic alone, so this
	// is declarative until a turn counter is added.
	MinQuestions int
}

func NewAgent(provider llm.LLMProvider, logger *log.Logger) *Agent {
	return &Agent{provider: provider, logger: logger, MinQuestions: 2}
}

// Start opens a new dialogue for the user's request and emits exactly one
// clarifying question.
func (a *Agent) Start(ctx context.Context, query string, metadata map[string]string, sessionContext string) *ClarificationState {
	state := &ClarificationState{Query: query, Metadata: metadata}
	prompt := fmt.Sprintf("User request: %s\nRespond per instructions.", query)
	response := a.chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, sessionContext)
	state.AddTurn("user", query)
	state.AddTurn("agent", strings.TrimSpace(response))
	return state
}

// ContinueDialogue appends the user's message, re-invokes the dialogue model
// with the full history, and checks the reply for a summary. On a summary the
// extracted goals are recorded and ReadyForProducts flips to true.
func (a *Agent) ContinueDialogue(ctx context.Context, state *ClarificationState, userMessage string, sessionContext string) *ClarificationState {
	history := make([]llm.Message, 0, len(state.Turns)+1)
	for _, turn := range state.Turns {
		history = append(history, llm.Message{Role: turn.Speaker, Content: turn.Content})
	}
	history = append(history, llm.Message{Role: "user", Content: userMessage})

	response := a.chat(ctx, history, sessionContext)
	state.AddTurn("user", userMessage)
	state.AddTurn("agent", strings.TrimSpace(response))
	if HasSummary(response) {
		state.ExtractedGoals = ExtractGoals(response)
		state.ReadyForProducts = true
	}
	return state
}

func (a *Agent) chat(ctx context.Context, history []llm.Message, sessionContext string) string {
	system := clarificationSystemPrompt
	if sessionContext != "" {
		system = fmt.Sprintf("%s\n\nSession context:\n%s", system, sessionContext)
	}
	if a.provider == nil {
		return fallbackQuestion
	}
	messages := append([]llm.Message{{Role: "system", Content: system}}, history...)
	response, err := a.provider.Chat(ctx, messages)
	if err != nil {
		a.logger.Printf("[WARN] Clarification dialogue call failed, emitting fallback question: %v", err)
		return fallbackQuestion
	}
	return response
}

// HasSummary reports whether an agent reply reads like a goal summary.
func HasSummary(agentResponse string) bool {
	lowered := strings.ToLower(agentResponse)
	return strings.Contains(lowered, "does that capture") || strings.Contains(lowered, "summary")
}

// ExtractGoals collects bullet or numbered lines mentioning a goal keyword.
// When no line matches, the whole reply stands in as a single goal.
func ExtractGoals(agentResponse string) []string {
	var goals []string
	for _, line := range strings.Split(agentResponse, "\n") {
		stripped := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•0123456789. "))
		if stripped == "" {
			continue
		}
		lowered := strings.ToLower(stripped)
		for _, keyword := range goalKeywords {
			if strings.Contains(lowered, keyword) {
				goals = append(goals, stripped)
				break
			}
		}
	}
	if len(goals) == 0 {
		return []string{strings.TrimSpace(agentResponse)}
	}
	return goals
}
