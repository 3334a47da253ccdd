package session

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/pkg/intent"
)

func TestRenderContextEmptySession(t *testing.T) {
	snapshot := &Snapshot{
		Session: &entity.Session{Id: uuid.New(), UserId: "alice"},
	}

	rendered := RenderContext(snapshot, 5)

	require.Contains(t, rendered, "User ID: alice")
	require.Contains(t, rendered, "Explicit goals: None captured")
	require.Contains(t, rendered, "Semantic goals: None recorded")
	require.Contains(t, rendered, "Latest reflection: No reflections yet")
	require.Contains(t, rendered, "(no state metadata)")
	require.Contains(t, rendered, "(no prior turns)")
}

func TestRenderContextPopulated(t *testing.T) {
	score := 0.82
	sessionID := uuid.New()
	snapshot := &Snapshot{
		Session: &entity.Session{
			Id:     sessionID,
			UserId: "alice",
			State: entity.SessionState{
				LastIntent:      &intent.Intent{Label: "workspace_upgrade", Confidence: 0.9},
				LastQuery:       "workspace upgrade",
				LastEmpowerment: &score,
			},
		},
		Turns: []*entity.Turn{
			{SessionId: sessionID, Speaker: "user", Content: "first"},
			{SessionId: sessionID, Speaker: "agent", Content: "second"},
			{SessionId: sessionID, Speaker: "user", Content: "third"},
		},
		Goals:         []string{"reduce back pain"},
		SemanticGoals: []string{"reduce back pain", "learn woodworking"},
		LatestEpisode: &entity.Episode{Takeaways: []string{"Plan query: workspace"}},
	}

	rendered := RenderContext(snapshot, 2)

	require.Contains(t, rendered, "Explicit goals: reduce back pain")
	require.Contains(t, rendered, "Semantic goals: reduce back pain, learn woodworking")
	require.Contains(t, rendered, "Latest reflection: Plan query: workspace")
	require.Contains(t, rendered, "- last_intent: workspace_upgrade (0.90)")
	require.Contains(t, rendered, "- last_query: workspace upgrade")
	require.Contains(t, rendered, "- last_empowerment: 0.820")
	// Only the last two turns survive the limit.
	require.NotContains(t, rendered, "user: first")
	require.Contains(t, rendered, "agent: second")
	require.Contains(t, rendered, "user: third")
}

func TestValuesContextProgressLine(t *testing.T) {
	store := newMemoryStore()
	coordinator, err := Open(context.Background(), testDeps(store), "", "alice")
	require.NoError(t, err)

	rendered, err := ValuesContext(context.Background(), coordinator, nil, 5)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(rendered, "Clarification progress: 0 turns, ready_for_products=false"))
}
