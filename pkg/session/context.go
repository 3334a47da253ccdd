package session

import (
	"context"
	"fmt"
	"strings"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/pkg/values"
)

// Snapshot is the per-turn view of a session returned by Summary and by the
// API layer.
type Snapshot struct {
	Session       *entity.Session `json:"session"`
	Turns         []*entity.Turn  `json:"turns"`
	Goals         []string        `json:"goals"`
	SemanticGoals []string        `json:"semantic_goals"`
	LatestEpisode *entity.Episode `json:"latest_episode,omitempty"`
}

// RenderContext flattens a snapshot into the text block used to condition
// generative prompts.
func RenderContext(snapshot *Snapshot, includeTurns int) string {
	explicitGoals := "None captured"
	if len(snapshot.Goals) > 0 {
		explicitGoals = strings.Join(snapshot.Goals, ", ")
	}
	semantic := "None recorded"
	if len(snapshot.SemanticGoals) > 0 {
		semantic = strings.Join(snapshot.SemanticGoals, ", ")
	}
	episodeText := "No reflections yet"
	if snapshot.LatestEpisode != nil {
		if len(snapshot.LatestEpisode.Takeaways) > 0 {
			episodeText = strings.Join(snapshot.LatestEpisode.Takeaways, "; ")
		} else if snapshot.LatestEpisode.Outcome != "" {
			episodeText = snapshot.LatestEpisode.Outcome
		}
	}

	turns := snapshot.Turns
	if includeTurns > 0 && len(turns) > includeTurns {
		turns = turns[len(turns)-includeTurns:]
	}
	recentTurns := FormatTurns(turns)
	if recentTurns == "" {
		recentTurns = "(no prior turns)"
	}

	return fmt.Sprintf(
		"Session ID: %s\nUser ID: %s\nExplicit goals: %s\nSemantic goals: %s\nLatest reflection: %s\nState metadata:\n%s\nRecent conversation:\n%s",
		snapshot.Session.Id,
		snapshot.Session.UserId,
		explicitGoals,
		semantic,
		episodeText,
		formatStateMetadata(snapshot.Session.State),
		recentTurns,
	)
}

// ContextFor builds and renders prompt context for the coordinator's session.
func ContextFor(ctx context.Context, coordinator *Coordinator, includeTurns int) (*Snapshot, string, error) {
	snapshot, err := coordinator.Summary(ctx, includeTurns)
	if err != nil {
		return nil, "", err
	}
	return snapshot, RenderContext(snapshot, includeTurns), nil
}

func FormatTurns(turns []*entity.Turn) string {
	lines := make([]string, len(turns))
	for i, turn := range turns {
		lines[i] = fmt.Sprintf("%s: %s", turn.Speaker, turn.Content)
	}
	return strings.Join(lines, "\n")
}

// formatStateMetadata renders state fields other than the clarification
// transcript, which is too noisy for prompt conditioning.
func formatStateMetadata(state entity.SessionState) string {
	var lines []string
	if state.LastIntent != nil {
		lines = append(lines, fmt.Sprintf("- last_intent: %s (%.2f)", state.LastIntent.Label, state.LastIntent.Confidence))
	}
	if state.LastQuery != "" {
		lines = append(lines, fmt.Sprintf("- last_query: %s", state.LastQuery))
	}
	if state.LastEmpowerment != nil {
		lines = append(lines, fmt.Sprintf("- last_empowerment: %.3f", *state.LastEmpowerment))
	}
	if len(lines) == 0 {
		return "(no state metadata)"
	}
	return strings.Join(lines, "\n")
}

// ValuesContext renders context for the clarification dialogue, appending
// progress markers for the live clarification state.
func ValuesContext(ctx context.Context, coordinator *Coordinator, state *values.ClarificationState, includeTurns int) (string, error) {
	_, rendered, err := ContextFor(ctx, coordinator, includeTurns)
	if err != nil {
		return "", err
	}
	turnCount := 0
	ready := false
	if state != nil {
		turnCount = len(state.Turns)
		ready = state.ReadyForProducts
	}
	return fmt.Sprintf("%s\nClarification progress: %d turns, ready_for_products=%t", rendered, turnCount, ready), nil
}
