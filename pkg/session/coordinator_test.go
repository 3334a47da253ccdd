package session

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"empower-commerce-be/internal/constant"
	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/repository/contract"
	"empower-commerce-be/internal/repository/specification"
	"empower-commerce-be/internal/repository/unitofwork"
	"empower-commerce-be/pkg/intent"
)

// memoryStore backs the fake repositories with plain slices and maps, kept
// in insertion order so the order specifications can be interpreted.
type memoryStore struct {
	users           map[string]*entity.User
	sessions        map[uuid.UUID]*entity.Session
	turns           []*entity.Turn
	goals           []*entity.Goal
	recommendations []*entity.Recommendation
	episodes        []*entity.Episode
	semantic        map[string]*entity.SemanticEntry
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    map[string]*entity.User{},
		sessions: map[uuid.UUID]*entity.Session{},
		semantic: map[string]*entity.SemanticEntry{},
	}
}

type memoryFactory struct {
	store *memoryStore
}

func (f *memoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memoryUnitOfWork{store: f.store}
}

type memoryUnitOfWork struct {
	store *memoryStore
}

func (u *memoryUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *memoryUnitOfWork) Commit() error                   { return nil }
func (u *memoryUnitOfWork) Rollback() error                 { return nil }

func (u *memoryUnitOfWork) UserRepository() contract.UserRepository {
	return &memoryUserRepo{store: u.store}
}
func (u *memoryUnitOfWork) SessionRepository() contract.SessionRepository {
	return &memorySessionRepo{store: u.store}
}
func (u *memoryUnitOfWork) TurnRepository() contract.TurnRepository {
	return &memoryTurnRepo{store: u.store}
}
func (u *memoryUnitOfWork) GoalRepository() contract.GoalRepository {
	return &memoryGoalRepo{store: u.store}
}
func (u *memoryUnitOfWork) RecommendationRepository() contract.RecommendationRepository {
	return &memoryRecommendationRepo{store: u.store}
}
func (u *memoryUnitOfWork) EpisodeRepository() contract.EpisodeRepository {
	return &memoryEpisodeRepo{store: u.store}
}
func (u *memoryUnitOfWork) SemanticEntryRepository() contract.SemanticEntryRepository {
	return &memorySemanticRepo{store: u.store}
}

// querySpec collects the concrete specifications the fakes understand.
type querySpec struct {
	byID        *uuid.UUID
	bySessionID *uuid.UUID
	byUserID    *string
	byKey       *string
	desc        bool
	limit       int
}

func interpret(specs []specification.Specification) querySpec {
	var q querySpec
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			q.byID = &id
		case specification.BySessionID:
			id := s.SessionID
			q.bySessionID = &id
		case specification.ByUserID:
			userID := s.UserID
			q.byUserID = &userID
		case specification.ByKey:
			key := s.Key
			q.byKey = &key
		case specification.OrderBy:
			q.desc = s.Desc
		case specification.Pagination:
			q.limit = s.Limit
		}
	}
	return q
}

type memoryUserRepo struct{ store *memoryStore }

func (r *memoryUserRepo) Ensure(ctx context.Context, id string) (*entity.User, error) {
	if user, ok := r.store.users[id]; ok {
		return user, nil
	}
	user := &entity.User{Id: id}
	r.store.users[id] = user
	return user, nil
}

type memorySessionRepo struct{ store *memoryStore }

func (r *memorySessionRepo) Create(ctx context.Context, session *entity.Session) error {
	copied := *session
	r.store.sessions[session.Id] = &copied
	return nil
}

func (r *memorySessionRepo) Update(ctx context.Context, session *entity.Session) error {
	copied := *session
	r.store.sessions[session.Id] = &copied
	return nil
}

func (r *memorySessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	q := interpret(specs)
	if q.byID == nil {
		return nil, errors.New("session lookup requires an id")
	}
	session, ok := r.store.sessions[*q.byID]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

type memoryTurnRepo struct{ store *memoryStore }

func (r *memoryTurnRepo) Create(ctx context.Context, turn *entity.Turn) error {
	copied := *turn
	r.store.turns = append(r.store.turns, &copied)
	return nil
}

func (r *memoryTurnRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Turn, error) {
	q := interpret(specs)
	var results []*entity.Turn
	for _, turn := range r.store.turns {
		if q.bySessionID != nil && turn.SessionId != *q.bySessionID {
			continue
		}
		results = append(results, turn)
	}
	if q.desc {
		for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
			results[i], results[j] = results[j], results[i]
		}
	}
	if q.limit > 0 && len(results) > q.limit {
		results = results[:q.limit]
	}
	return results, nil
}

func (r *memoryTurnRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	results, err := r.FindAll(ctx, specs...)
	return int64(len(results)), err
}

type memoryGoalRepo struct{ store *memoryStore }

func (r *memoryGoalRepo) Create(ctx context.Context, goal *entity.Goal) error {
	copied := *goal
	r.store.goals = append(r.store.goals, &copied)
	return nil
}

func (r *memoryGoalRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Goal, error) {
	q := interpret(specs)
	var results []*entity.Goal
	for _, goal := range r.store.goals {
		if q.bySessionID != nil && (goal.SessionId == nil || *goal.SessionId != *q.bySessionID) {
			continue
		}
		if q.byUserID != nil && goal.UserId != *q.byUserID {
			continue
		}
		results = append(results, goal)
	}
	return results, nil
}

type memoryRecommendationRepo struct{ store *memoryStore }

func (r *memoryRecommendationRepo) Create(ctx context.Context, recommendation *entity.Recommendation) error {
	copied := *recommendation
	r.store.recommendations = append(r.store.recommendations, &copied)
	return nil
}

func (r *memoryRecommendationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Recommendation, error) {
	q := interpret(specs)
	var results []*entity.Recommendation
	for _, recommendation := range r.store.recommendations {
		if q.bySessionID != nil && recommendation.SessionId != *q.bySessionID {
			continue
		}
		results = append(results, recommendation)
	}
	return results, nil
}

type memoryEpisodeRepo struct{ store *memoryStore }

func (r *memoryEpisodeRepo) Create(ctx context.Context, episode *entity.Episode) error {
	copied := *episode
	r.store.episodes = append(r.store.episodes, &copied)
	return nil
}

func (r *memoryEpisodeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Episode, error) {
	q := interpret(specs)
	var match *entity.Episode
	for _, episode := range r.store.episodes {
		if q.byUserID != nil && episode.UserId != *q.byUserID {
			continue
		}
		// Insertion order stands in for created_at; keep the last match
		// when descending order was requested.
		if match == nil || q.desc {
			match = episode
		}
	}
	return match, nil
}

type memorySemanticRepo struct{ store *memoryStore }

func semanticKey(userID, key string) string { return userID + "|" + key }

func (r *memorySemanticRepo) Upsert(ctx context.Context, entry *entity.SemanticEntry) error {
	copied := *entry
	r.store.semantic[semanticKey(entry.UserId, entry.Key)] = &copied
	return nil
}

func (r *memorySemanticRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SemanticEntry, error) {
	q := interpret(specs)
	if q.byUserID == nil || q.byKey == nil {
		return nil, errors.New("semantic lookup requires user id and key")
	}
	entry, ok := r.store.semantic[semanticKey(*q.byUserID, *q.byKey)]
	if !ok {
		return nil, nil
	}
	copied := *entry
	return &copied, nil
}

func testDeps(store *memoryStore) Deps {
	return Deps{
		Factory: &memoryFactory{store: store},
		Logger:  log.New(os.Stderr, "", 0),
	}
}

func TestOpenCreatesSessionWithDefaultUser(t *testing.T) {
	store := newMemoryStore()
	coordinator, err := Open(context.Background(), testDeps(store), "", "")
	require.NoError(t, err)

	require.Equal(t, constant.DefaultUserID, coordinator.UserID())
	require.NotEqual(t, uuid.Nil, coordinator.SessionID())
	require.Contains(t, store.users, constant.DefaultUserID)
	require.Contains(t, store.sessions, coordinator.SessionID())
	require.Equal(t, constant.SessionStateVersion, coordinator.State().Version)
}

func TestOpenInvalidSessionID(t *testing.T) {
	store := newMemoryStore()
	_, err := Open(context.Background(), testDeps(store), "not-a-uuid", "alice")
	require.ErrorIs(t, err, ErrValidation)
}

func TestOpenResolvesExistingSession(t *testing.T) {
	store := newMemoryStore()
	deps := testDeps(store)
	first, err := Open(context.Background(), deps, "", "alice")
	require.NoError(t, err)

	require.NoError(t, first.UpdateState(context.Background(), func(state *entity.SessionState) {
		state.LastQuery = "workspace"
	}))

	second, err := Open(context.Background(), deps, first.SessionID().String(), "alice")
	require.NoError(t, err)
	require.Equal(t, first.SessionID(), second.SessionID())
	require.Equal(t, "workspace", second.State().LastQuery)
}

func TestOpenUnknownSessionIDCreatesFresh(t *testing.T) {
	store := newMemoryStore()
	coordinator, err := Open(context.Background(), testDeps(store), uuid.NewString(), "alice")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, coordinator.SessionID())
}

func TestNormalizeGoalText(t *testing.T) {
	require.Equal(t, "reduce back pain", NormalizeGoalText(" reduce_back_pain "))
	require.Equal(t, "", NormalizeGoalText("___"))
}

func TestRecordGoalValidation(t *testing.T) {
	store := newMemoryStore()
	coordinator, err := Open(context.Background(), testDeps(store), "", "alice")
	require.NoError(t, err)

	_, err = coordinator.RecordGoal(context.Background(), "  ", "career", 0.7)
	require.ErrorIs(t, err, ErrValidation)

	goal, err := coordinator.RecordGoal(context.Background(), "reduce_back_pain", "health", 0.8)
	require.NoError(t, err)
	require.Equal(t, "reduce back pain", goal.GoalText)
	require.Equal(t, "alice", goal.UserId)
}

func TestRecordGoalSemanticDedup(t *testing.T) {
	store := newMemoryStore()
	coordinator, err := Open(context.Background(), testDeps(store), "", "alice")
	require.NoError(t, err)

	ctx := context.Background()
	_, err = coordinator.RecordGoal(ctx, "reduce back pain", "health", 0.8)
	require.NoError(t, err)
	_, err = coordinator.RecordGoal(ctx, "reduce_back_pain", "health", 0.9)
	require.NoError(t, err)

	// Session ledger keeps both rows; the semantic ledger holds one entry.
	require.Len(t, store.goals, 2)
	semantic, err := coordinator.Ledger().Get(ctx, constant.SemanticGoalsKey)
	require.NoError(t, err)
	require.Equal(t, []string{"reduce back pain"}, semantic)

	texts, err := coordinator.GoalTexts(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"reduce back pain"}, texts)
}

func TestGoalTextsUnionOrder(t *testing.T) {
	store := newMemoryStore()
	deps := testDeps(store)
	ctx := context.Background()

	earlier, err := Open(ctx, deps, "", "alice")
	require.NoError(t, err)
	_, err = earlier.RecordGoal(ctx, "learn woodworking", "hobby", 0.6)
	require.NoError(t, err)

	current, err := Open(ctx, deps, "", "alice")
	require.NoError(t, err)
	_, err = current.RecordGoal(ctx, "reduce back pain", "health", 0.8)
	require.NoError(t, err)

	texts, err := current.GoalTexts(ctx)
	require.NoError(t, err)
	// Session-scoped goals come first, then the carried-over semantic goals.
	require.Equal(t, []string{"reduce back pain", "learn woodworking"}, texts)
}

func TestIngestIntentAsGoal(t *testing.T) {
	store := newMemoryStore()
	coordinator, err := Open(context.Background(), testDeps(store), "", "alice")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, coordinator.IngestIntentAsGoal(ctx, intent.Intent{Label: intent.LabelUnknown}))
	require.Empty(t, store.goals)

	require.NoError(t, coordinator.IngestIntentAsGoal(ctx, intent.Intent{
		Label:      "workspace_upgrade",
		Domain:     "career",
		Confidence: 0.8,
	}))
	require.Len(t, store.goals, 1)
	require.Equal(t, "workspace upgrade", store.goals[0].GoalText)
	require.Equal(t, 0.8, store.goals[0].Importance)

	require.NoError(t, coordinator.IngestIntentAsGoal(ctx, intent.Intent{
		Label:  "skill_development",
		Domain: "career",
	}))
	require.Equal(t, 0.5, store.goals[1].Importance)
}

func TestRecordTurnAndListOrder(t *testing.T) {
	store := newMemoryStore()
	coordinator, err := Open(context.Background(), testDeps(store), "", "alice")
	require.NoError(t, err)
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		_, err := coordinator.RecordTurn(ctx, constant.SpeakerUser, content, nil)
		require.NoError(t, err)
	}

	turns, err := coordinator.ListTurns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	// Last two turns, oldest first.
	require.Equal(t, "second", turns[0].Content)
	require.Equal(t, "third", turns[1].Content)
}

func TestUpdateStatePersists(t *testing.T) {
	store := newMemoryStore()
	coordinator, err := Open(context.Background(), testDeps(store), "", "alice")
	require.NoError(t, err)

	score := 0.75
	require.NoError(t, coordinator.UpdateState(context.Background(), func(state *entity.SessionState) {
		state.LastQuery = "workspace"
		state.LastEmpowerment = &score
	}))

	persisted := store.sessions[coordinator.SessionID()]
	require.Equal(t, "workspace", persisted.State.LastQuery)
	require.NotNil(t, persisted.State.LastEmpowerment)
	require.Equal(t, 0.75, *persisted.State.LastEmpowerment)
	require.Equal(t, constant.SessionStateVersion, persisted.State.Version)
}

func TestSummarySnapshot(t *testing.T) {
	store := newMemoryStore()
	coordinator, err := Open(context.Background(), testDeps(store), "", "alice")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = coordinator.RecordTurn(ctx, constant.SpeakerUser, "I need a desk", nil)
	require.NoError(t, err)
	_, err = coordinator.RecordGoal(ctx, "reduce back pain", "health", 0.8)
	require.NoError(t, err)
	_, err = coordinator.RecordReflection(ctx, "Reflection Points:\n- Plan query: workspace")
	require.NoError(t, err)

	snapshot, err := coordinator.Summary(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, coordinator.SessionID(), snapshot.Session.Id)
	require.Len(t, snapshot.Turns, 1)
	require.Equal(t, []string{"reduce back pain"}, snapshot.Goals)
	require.Equal(t, []string{"reduce back pain"}, snapshot.SemanticGoals)
	require.NotNil(t, snapshot.LatestEpisode)
	require.Equal(t, constant.ReflectionOutcome, snapshot.LatestEpisode.Outcome)
}
