package session

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"empower-commerce-be/internal/constant"
	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/repository/specification"
	"empower-commerce-be/internal/repository/unitofwork"
	"empower-commerce-be/pkg/embedding"
	"empower-commerce-be/pkg/intent"
)

// Deps are the collaborators a Coordinator needs. Embedder is optional;
// without it goals are stored without embeddings.
type Deps struct {
	Factory  unitofwork.RepositoryFactory
	Embedder embedding.EmbeddingProvider
	Logger   *log.Logger
}

// Coordinator owns one session: identity, turn history, the goal ledgers,
// and the typed state blob. Every mutation is persisted immediately so a
// crash between calls loses at most the in-flight write.
type Coordinator struct {
	deps    Deps
	session *entity.Session
	ledger  *SemanticLedger
}

// Open resolves an existing session or creates one, ensuring the user row
// first. An unknown session id silently creates a fresh session.
func Open(ctx context.Context, deps Deps, sessionID, userID string) (*Coordinator, error) {
	if userID == "" {
		userID = constant.DefaultUserID
	}
	uow := deps.Factory.NewUnitOfWork(ctx)
	if _, err := uow.UserRepository().Ensure(ctx, userID); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	var resolved *entity.Session
	if sessionID != "" {
		id, err := uuid.Parse(sessionID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid session id %q", ErrValidation, sessionID)
		}
		existing, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return nil, fmt.Errorf("find session: %w", err)
		}
		resolved = existing
	}
	if resolved == nil {
		resolved = &entity.Session{
			Id:     uuid.New(),
			UserId: userID,
			State:  entity.SessionState{Version: constant.SessionStateVersion},
		}
		if err := uow.SessionRepository().Create(ctx, resolved); err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
	}

	return &Coordinator{
		deps:    deps,
		session: resolved,
		ledger:  NewSemanticLedger(deps.Factory, resolved.UserId),
	}, nil
}

func (c *Coordinator) SessionID() uuid.UUID { return c.session.Id }
func (c *Coordinator) UserID() string       { return c.session.UserId }

// State returns a copy of the current session state.
func (c *Coordinator) State() entity.SessionState { return c.session.State }

func (c *Coordinator) Ledger() *SemanticLedger { return c.ledger }

func (c *Coordinator) RecordTurn(ctx context.Context, speaker, content string, metadata map[string]interface{}) (*entity.Turn, error) {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	turn := &entity.Turn{
		Id:        uuid.New(),
		SessionId: c.session.Id,
		Speaker:   speaker,
		Content:   content,
		Metadata:  metadata,
	}
	uow := c.deps.Factory.NewUnitOfWork(ctx)
	if err := uow.TurnRepository().Create(ctx, turn); err != nil {
		return nil, fmt.Errorf("record turn: %w", err)
	}
	return turn, nil
}

// NormalizeGoalText replaces underscores with spaces and trims whitespace.
func NormalizeGoalText(goalText string) string {
	return strings.TrimSpace(strings.ReplaceAll(goalText, "_", " "))
}

// RecordGoal stores a normalized goal in the session ledger and, when new,
// in the user's semantic ledger. Empty normalized text is a validation error.
func (c *Coordinator) RecordGoal(ctx context.Context, goalText, domain string, importance float64) (*entity.Goal, error) {
	normalized := NormalizeGoalText(goalText)
	if normalized == "" {
		return nil, fmt.Errorf("%w: goal text cannot be empty", ErrValidation)
	}

	sessionID := c.session.Id
	goal := &entity.Goal{
		Id:         uuid.New(),
		UserId:     c.session.UserId,
		SessionId:  &sessionID,
		GoalText:   normalized,
		Domain:     domain,
		Importance: importance,
		Embedding:  c.embedGoal(normalized),
	}
	uow := c.deps.Factory.NewUnitOfWork(ctx)
	if err := uow.GoalRepository().Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("record goal: %w", err)
	}

	existing, err := c.ledger.Get(ctx, constant.SemanticGoalsKey)
	if err != nil {
		return nil, fmt.Errorf("read semantic goals: %w", err)
	}
	if !containsString(existing, normalized) {
		if err := c.ledger.Append(ctx, constant.SemanticGoalsKey, normalized); err != nil {
			return nil, fmt.Errorf("append semantic goal: %w", err)
		}
	}
	return goal, nil
}

// IngestIntentAsGoal treats a confident intent label as an initial goal
// signal. Unknown or empty labels are ignored.
func (c *Coordinator) IngestIntentAsGoal(ctx context.Context, detected intent.Intent) error {
	if detected.Label == "" || detected.Label == intent.LabelUnknown {
		return nil
	}
	importance := detected.Confidence
	if importance == 0 {
		importance = 0.5
	}
	_, err := c.RecordGoal(ctx, detected.Label, detected.Domain, importance)
	return err
}

// GoalTexts returns the ordered deduplicated union of session-scoped and
// semantic goals, session-scoped first.
func (c *Coordinator) GoalTexts(ctx context.Context) ([]string, error) {
	sessionGoals, err := c.sessionGoalTexts(ctx)
	if err != nil {
		return nil, err
	}
	semanticGoals, err := c.ledger.Get(ctx, constant.SemanticGoalsKey)
	if err != nil {
		return nil, fmt.Errorf("read semantic goals: %w", err)
	}

	var seen []string
	for _, goal := range append(sessionGoals, semanticGoals...) {
		if !containsString(seen, goal) {
			seen = append(seen, goal)
		}
	}
	return seen, nil
}

func (c *Coordinator) RecordRecommendation(ctx context.Context, productIDs []string, empoweringScore *float64, context map[string]interface{}) (*entity.Recommendation, error) {
	if context == nil {
		context = map[string]interface{}{}
	}
	recommendation := &entity.Recommendation{
		Id:              uuid.New(),
		SessionId:       c.session.Id,
		ProductIds:      productIDs,
		EmpoweringScore: empoweringScore,
		Context:         context,
	}
	uow := c.deps.Factory.NewUnitOfWork(ctx)
	if err := uow.RecommendationRepository().Create(ctx, recommendation); err != nil {
		return nil, fmt.Errorf("record recommendation: %w", err)
	}
	return recommendation, nil
}

func (c *Coordinator) RecordReflection(ctx context.Context, reflectionText string) (*entity.Episode, error) {
	episode := &entity.Episode{
		Id:        uuid.New(),
		UserId:    c.session.UserId,
		SessionId: c.session.Id,
		Outcome:   constant.ReflectionOutcome,
		Takeaways: []string{reflectionText},
	}
	uow := c.deps.Factory.NewUnitOfWork(ctx)
	if err := uow.EpisodeRepository().Create(ctx, episode); err != nil {
		return nil, fmt.Errorf("record reflection: %w", err)
	}
	return episode, nil
}

// UpdateState applies a mutation to the typed state blob and persists the
// session immediately.
func (c *Coordinator) UpdateState(ctx context.Context, mutate func(*entity.SessionState)) error {
	mutate(&c.session.State)
	if c.session.State.Version == 0 {
		c.session.State.Version = constant.SessionStateVersion
	}
	uow := c.deps.Factory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Update(ctx, c.session); err != nil {
		return fmt.Errorf("persist session state: %w", err)
	}
	return nil
}

// ListTurns returns the last limit turns in chronological order.
func (c *Coordinator) ListTurns(ctx context.Context, limit int) ([]*entity.Turn, error) {
	uow := c.deps.Factory.NewUnitOfWork(ctx)
	turns, err := uow.TurnRepository().FindAll(ctx,
		specification.BySessionID{SessionID: c.session.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// Summary snapshots the session: info, recent turns, both goal ledgers, and
// the latest reflection episode.
func (c *Coordinator) Summary(ctx context.Context, turnLimit int) (*Snapshot, error) {
	turns, err := c.ListTurns(ctx, turnLimit)
	if err != nil {
		return nil, err
	}
	goals, err := c.sessionGoalTexts(ctx)
	if err != nil {
		return nil, err
	}
	semanticGoals, err := c.ledger.Get(ctx, constant.SemanticGoalsKey)
	if err != nil {
		return nil, fmt.Errorf("read semantic goals: %w", err)
	}
	uow := c.deps.Factory.NewUnitOfWork(ctx)
	latest, err := uow.EpisodeRepository().FindOne(ctx,
		specification.ByUserID{UserID: c.session.UserId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("latest episode: %w", err)
	}

	return &Snapshot{
		Session:       c.session,
		Turns:         turns,
		Goals:         goals,
		SemanticGoals: semanticGoals,
		LatestEpisode: latest,
	}, nil
}

func (c *Coordinator) sessionGoalTexts(ctx context.Context) ([]string, error) {
	uow := c.deps.Factory.NewUnitOfWork(ctx)
	goals, err := uow.GoalRepository().FindAll(ctx,
		specification.BySessionID{SessionID: c.session.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, fmt.Errorf("list session goals: %w", err)
	}
	texts := make([]string, len(goals))
	for i, goal := range goals {
		texts[i] = goal.GoalText
	}
	return texts, nil
}

// embedGoal is best effort: a missing or failing embedding service leaves
// the goal unembedded.
func (c *Coordinator) embedGoal(text string) []float32 {
	if c.deps.Embedder == nil {
		return nil
	}
	response, err := c.deps.Embedder.Generate(text, embedding.TaskSemanticSimilarity)
	if err != nil {
		c.deps.Logger.Printf("[WARN] Goal embedding failed: %v", err)
		return nil
	}
	return response.Embedding.Values
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
