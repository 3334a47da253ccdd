package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"empower-commerce-be/internal/constant"
	"empower-commerce-be/internal/dto"
	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/pkg/logger"
	"empower-commerce-be/internal/repository/unitofwork"
	"empower-commerce-be/pkg/commerce"
	"empower-commerce-be/pkg/embedding"
	"empower-commerce-be/pkg/empowerment"
	"empower-commerce-be/pkg/events"
	"empower-commerce-be/pkg/intent"
	"empower-commerce-be/pkg/session"
	"empower-commerce-be/pkg/values"
)

const (
	snapshotCachePrefix = "conversation:snapshot:"
	snapshotCacheTTL    = 5 * time.Minute
	snapshotTurnLimit   = 50
	contextTurnLimit    = 8
	valuesTurnLimit     = 10
)

type IConversationService interface {
	Start(ctx context.Context, req *dto.ConversationStartRequest) (*dto.ConversationResponse, error)
	ProcessMessage(ctx context.Context, sessionID string, req *dto.MessageRequest) (*dto.ConversationResponse, error)
	GetSnapshot(ctx context.Context, sessionID, userID string) (*dto.ConversationResponse, error)
	IngestGoals(ctx context.Context, sessionID string, req *dto.ClarifiedGoalsRequest) (*dto.ConversationResponse, error)
}

// conversationService orchestrates one turn end to end: clarification gate,
// intent, plan, guard, persistence, telemetry. Stages run strictly in
// sequence because each consumes the previous stage's output.
type conversationService struct {
	uowFactory  unitofwork.RepositoryFactory
	embedder    embedding.EmbeddingProvider
	classifier  *intent.HybridClassifier
	valuesAgent *values.Agent
	planBuilder *commerce.PlanBuilder
	guard       *empowerment.Guard
	publisher   IPublisherService
	redisClient *redis.Client
	pkgLogger   *log.Logger
	logger      logger.ILogger
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.EmbeddingProvider,
	classifier *intent.HybridClassifier,
	valuesAgent *values.Agent,
	planBuilder *commerce.PlanBuilder,
	guard *empowerment.Guard,
	publisher IPublisherService,
	redisClient *redis.Client,
	pkgLogger *log.Logger,
	log logger.ILogger,
) IConversationService {
	return &conversationService{
		uowFactory:  uowFactory,
		embedder:    embedder,
		classifier:  classifier,
		valuesAgent: valuesAgent,
		planBuilder: planBuilder,
		guard:       guard,
		publisher:   publisher,
		redisClient: redisClient,
		pkgLogger:   pkgLogger,
		logger:      log,
	}
}

func (s *conversationService) open(ctx context.Context, sessionID, userID string) (*session.Coordinator, error) {
	return session.Open(ctx, session.Deps{
		Factory:  s.uowFactory,
		Embedder: s.embedder,
		Logger:   s.pkgLogger,
	}, sessionID, userID)
}

func (s *conversationService) Start(ctx context.Context, req *dto.ConversationStartRequest) (*dto.ConversationResponse, error) {
	coordinator, err := s.open(ctx, "", req.UserID)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, events.NewSessionStarted(coordinator.SessionID().String(), coordinator.UserID()))

	if req.OpeningMessage != "" {
		return s.processMessage(ctx, coordinator, req.OpeningMessage, req.Metadata, req.ClarifiedGoals)
	}
	if err := s.recordClarifiedGoals(ctx, coordinator, req.ClarifiedGoals); err != nil {
		return nil, err
	}
	return s.sessionResponse(ctx, coordinator)
}

func (s *conversationService) ProcessMessage(ctx context.Context, sessionID string, req *dto.MessageRequest) (*dto.ConversationResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", session.ErrValidation)
	}
	coordinator, err := s.open(ctx, sessionID, req.UserID)
	if err != nil {
		return nil, err
	}
	return s.processMessage(ctx, coordinator, req.Message, req.Metadata, req.ClarifiedGoals)
}

func (s *conversationService) GetSnapshot(ctx context.Context, sessionID, userID string) (*dto.ConversationResponse, error) {
	if cached := s.cachedSnapshot(ctx, sessionID); cached != nil {
		return &dto.ConversationResponse{
			SessionID: sessionID,
			UserID:    cached.Session.UserId,
			Snapshot:  cached,
		}, nil
	}
	coordinator, err := s.open(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	return s.sessionResponse(ctx, coordinator)
}

func (s *conversationService) IngestGoals(ctx context.Context, sessionID string, req *dto.ClarifiedGoalsRequest) (*dto.ConversationResponse, error) {
	if len(req.Goals) == 0 {
		return nil, fmt.Errorf("%w: at least one goal is required", session.ErrValidation)
	}
	coordinator, err := s.open(ctx, sessionID, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.recordClarifiedGoals(ctx, coordinator, req.Goals); err != nil {
		return nil, err
	}
	response, err := s.sessionResponse(ctx, coordinator)
	if err != nil {
		return nil, err
	}
	goals, err := coordinator.GoalTexts(ctx)
	if err != nil {
		return nil, err
	}
	response.Goals = goals
	return response, nil
}

// processMessage is the per-turn pipeline. While the clarification dialogue
// is not ready, the turn short-circuits with the agent's next question.
func (s *conversationService) processMessage(ctx context.Context, coordinator *session.Coordinator, message string, metadata map[string]interface{}, clarifiedGoals []dto.ClarifiedGoal) (*dto.ConversationResponse, error) {
	if err := s.recordClarifiedGoals(ctx, coordinator, clarifiedGoals); err != nil {
		return nil, err
	}
	if _, err := coordinator.RecordTurn(ctx, constant.SpeakerUser, message, metadata); err != nil {
		return nil, err
	}

	state, clarificationReply, err := s.handleValuesDialogue(ctx, coordinator, message, metadata)
	if err != nil {
		return nil, err
	}
	if clarificationReply != "" {
		response, err := s.sessionResponse(ctx, coordinator)
		if err != nil {
			return nil, err
		}
		response.Clarification = clarificationReply
		response.ValuesState = state
		return response, nil
	}

	sessionContext := s.renderContext(ctx, coordinator)
	detected := s.classifier.Classify(ctx, message, sessionContext)
	if err := coordinator.IngestIntentAsGoal(ctx, detected); err != nil {
		return nil, err
	}
	goals, err := coordinator.GoalTexts(ctx)
	if err != nil {
		return nil, err
	}

	plan := s.planBuilder.BuildPlan(ctx, detected, goals, sessionContext)
	guardResult := s.guard.Check(strings.Join(plan.Clarifications, "; "), plan.Clarifications, plan.Products)
	explanation := commerce.Explain(plan.Products)
	reflection := commerce.Reflect(plan)

	if _, err := coordinator.RecordTurn(ctx, constant.SpeakerAgent, explanation, map[string]interface{}{
		"type":           "plan_explanation",
		"clarifications": plan.Clarifications,
	}); err != nil {
		return nil, err
	}

	score := plan.Empowerment.GoalAlignment.Score
	productIDs := make([]string, len(plan.Products))
	for i, product := range plan.Products {
		productIDs[i] = product.ID
	}
	if _, err := coordinator.RecordRecommendation(ctx, productIDs, &score, map[string]interface{}{
		"query":          plan.Query,
		"goal_alignment": plan.Empowerment.GoalAlignment,
		"data_quality":   plan.DataQuality,
	}); err != nil {
		return nil, err
	}
	if _, err := coordinator.RecordReflection(ctx, reflection); err != nil {
		return nil, err
	}
	if err := coordinator.UpdateState(ctx, func(state *entity.SessionState) {
		state.LastIntent = &detected
		state.LastQuery = plan.Query
		state.LastEmpowerment = &score
	}); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewRecommendationIssued(coordinator.SessionID().String(), coordinator.UserID(), plan.Query, productIDs, score))
	s.publisher.Publish(ctx, events.NewGuardVerdict(coordinator.SessionID().String(), coordinator.UserID(), guardResult.Status, len(guardResult.Flags)))

	response, err := s.sessionResponse(ctx, coordinator)
	if err != nil {
		return nil, err
	}
	response.Intent = &detected
	response.Plan = &plan
	response.Guardrails = &guardResult
	response.Explanation = explanation
	response.Reflection = reflection
	response.ProductExplanations = plan.ProductExplanations
	response.ValuesState = coordinator.State().Clarification
	return response, nil
}

// handleValuesDialogue keeps the turn inside the clarification state machine
// until readiness. The ready transition is one-way; once true, the dialogue
// is bypassed on every later turn.
func (s *conversationService) handleValuesDialogue(ctx context.Context, coordinator *session.Coordinator, message string, metadata map[string]interface{}) (*values.ClarificationState, string, error) {
	state := coordinator.State().Clarification
	if state != nil && state.ReadyForProducts {
		return state, "", nil
	}

	valuesContext, err := session.ValuesContext(ctx, coordinator, state, valuesTurnLimit)
	if err != nil {
		s.logger.Warn("conversation", "Failed to build values context", map[string]interface{}{"error": err.Error()})
		valuesContext = ""
	}

	if state != nil {
		state = s.valuesAgent.ContinueDialogue(ctx, state, message, valuesContext)
	} else {
		state = s.valuesAgent.Start(ctx, message, stringifyMetadata(metadata), valuesContext)
	}
	if err := coordinator.UpdateState(ctx, func(sessionState *entity.SessionState) {
		sessionState.Clarification = state
	}); err != nil {
		return nil, "", err
	}

	var latest *values.ClarificationTurn
	if len(state.Turns) > 0 {
		latest = &state.Turns[len(state.Turns)-1]
	}
	if !state.ReadyForProducts && latest != nil && latest.Speaker == constant.SpeakerAgent {
		if _, err := coordinator.RecordTurn(ctx, constant.SpeakerAgent, latest.Content, map[string]interface{}{"type": "clarification"}); err != nil {
			return nil, "", err
		}
		return state, latest.Content, nil
	}

	if state.ReadyForProducts {
		for _, goal := range state.ExtractedGoals {
			if _, err := coordinator.RecordGoal(ctx, goal, "", 0.5); err != nil {
				if errors.Is(err, session.ErrValidation) {
					continue
				}
				return nil, "", err
			}
		}
	}
	return state, "", nil
}

func (s *conversationService) recordClarifiedGoals(ctx context.Context, coordinator *session.Coordinator, goals []dto.ClarifiedGoal) error {
	for _, clarified := range goals {
		goal, err := coordinator.RecordGoal(ctx, clarified.GoalText, clarified.Domain, clarified.ImportanceOrDefault())
		if err != nil {
			return err
		}
		s.publisher.Publish(ctx, events.NewGoalRecorded(coordinator.SessionID().String(), coordinator.UserID(), goal.GoalText, goal.Domain))
	}
	return nil
}

func (s *conversationService) sessionResponse(ctx context.Context, coordinator *session.Coordinator) (*dto.ConversationResponse, error) {
	snapshot, err := coordinator.Summary(ctx, snapshotTurnLimit)
	if err != nil {
		return nil, err
	}
	s.cacheSnapshot(ctx, coordinator.SessionID().String(), snapshot)
	return &dto.ConversationResponse{
		SessionID: coordinator.SessionID().String(),
		UserID:    coordinator.UserID(),
		Snapshot:  snapshot,
	}, nil
}

// renderContext is best effort; classification and planning survive without
// prompt conditioning.
func (s *conversationService) renderContext(ctx context.Context, coordinator *session.Coordinator) string {
	_, rendered, err := session.ContextFor(ctx, coordinator, contextTurnLimit)
	if err != nil {
		s.logger.Warn("conversation", "Failed to render session context", map[string]interface{}{"error": err.Error()})
		return ""
	}
	return rendered
}

func (s *conversationService) cacheSnapshot(ctx context.Context, sessionID string, snapshot *session.Snapshot) {
	if s.redisClient == nil {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, snapshotCachePrefix+sessionID, raw, snapshotCacheTTL).Err(); err != nil {
		s.logger.Warn("conversation", "Snapshot cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *conversationService) cachedSnapshot(ctx context.Context, sessionID string) *session.Snapshot {
	if s.redisClient == nil || sessionID == "" {
		return nil
	}
	raw, err := s.redisClient.Get(ctx, snapshotCachePrefix+sessionID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("conversation", "Snapshot cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}
	var snapshot session.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

func stringifyMetadata(metadata map[string]interface{}) map[string]string {
	if len(metadata) == 0 {
		return nil
	}
	out := make(map[string]string, len(metadata))
	for key, value := range metadata {
		out[key] = fmt.Sprint(value)
	}
	return out
}
