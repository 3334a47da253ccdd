package values

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"empower-commerce-be/pkg/llm"
)

type scriptedProvider struct {
	replies []string
	calls   int
	err     error
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	reply := p.replies[p.calls%len(p.replies)]
	p.calls++
	return reply, nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, nil)
}

func (p *scriptedProvider) GenerateWithTools(ctx context.Context, prompt string, tools []llm.Tool, options ...llm.Option) (*llm.ToolResponse, error) {
	text, err := p.Chat(ctx, nil)
	return &llm.ToolResponse{Text: text}, err
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func TestStartOpensWithOneQuestion(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"What would this desk change about your workday?"}}
	agent := NewAgent(provider, testLogger())

	state := agent.Start(context.Background(), "I want a standing desk", nil, "")

	if state.ReadyForProducts {
		t.Error("new dialogue must not be ready for products")
	}
	if len(state.Turns) != 2 {
		t.Fatalf("Turns = %d, want user + agent", len(state.Turns))
	}
	if state.Turns[0].Speaker != "user" || state.Turns[1].Speaker != "agent" {
		t.Errorf("unexpected turn order: %+v", state.Turns)
	}
}

func TestContinueDialogueReachesReadiness(t *testing.T) {
	summary := "Here is what I'm hearing:\n- Reduce back pain during long work sessions\n- Enable focused work at home\nDoes that capture what you're looking for?"
	provider := &scriptedProvider{replies: []string{
		"What does your current setup look like?",
		"How many hours a day are you at the desk?",
		summary,
	}}
	agent := NewAgent(provider, testLogger())

	state := agent.Start(context.Background(), "I want a standing desk", nil, "")
	state = agent.ContinueDialogue(context.Background(), state, "I sit all day and my back hurts", "")
	if state.ReadyForProducts {
		t.Fatal("dialogue became ready before the summary turn")
	}

	state = agent.ContinueDialogue(context.Background(), state, "mostly the back pain", "")
	if !state.ReadyForProducts {
		t.Fatal("summary reply should flip readiness")
	}
	if len(state.ExtractedGoals) != 2 {
		t.Fatalf("ExtractedGoals = %v, want both bullet goals", state.ExtractedGoals)
	}
	if state.ExtractedGoals[0] != "Reduce back pain during long work sessions" {
		t.Errorf("first goal = %q", state.ExtractedGoals[0])
	}
}

func TestContinueDialogueFallbackOnError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("model unavailable")}
	agent := NewAgent(provider, testLogger())

	state := agent.Start(context.Background(), "I want headphones", nil, "")

	if got := state.Turns[1].Content; got != fallbackQuestion {
		t.Errorf("agent turn = %q, want fallback question", got)
	}
	if state.ReadyForProducts {
		t.Error("fallback question must not signal readiness")
	}
}

func TestHasSummary(t *testing.T) {
	tests := []struct {
		response string
		want     bool
	}{
		{"Does that capture what you're looking for?", true},
		{"Here is a SUMMARY of your goals", true},
		{"What is your budget?", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := HasSummary(tt.response); got != tt.want {
			t.Errorf("HasSummary(%q) = %v, want %v", tt.response, got, tt.want)
		}
	}
}

func TestExtractGoals(t *testing.T) {
	response := "Here is what I heard:\n- Reduce screen fatigue\n* enable deep work\n1. keep the budget under $200\n- likes the color blue"
	goals := ExtractGoals(response)

	want := []string{"Reduce screen fatigue", "enable deep work", "keep the budget under $200"}
	if len(goals) != len(want) {
		t.Fatalf("goals = %v, want %v", goals, want)
	}
	for i := range want {
		if goals[i] != want[i] {
			t.Errorf("goals[%d] = %q, want %q", i, goals[i], want[i])
		}
	}
}

func TestExtractGoalsWholeReplyFallback(t *testing.T) {
	response := "You want a quieter home office."
	goals := ExtractGoals(response)
	if len(goals) != 1 || goals[0] != response {
		t.Errorf("goals = %v, want the whole reply", goals)
	}
}
