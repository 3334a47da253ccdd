package events

import "time"

const (
	TypeSessionStarted       = "SESSION_STARTED"
	TypeRecommendationIssued = "RECOMMENDATION_ISSUED"
	TypeGuardVerdict         = "GUARD_VERDICT"
	TypeGoalRecorded         = "GOAL_RECORDED"
)

func NewSessionStarted(sessionID, userID string) Event {
	return BaseEvent{
		Type: TypeSessionStarted,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
		},
		OccurredAt: time.Now(),
	}
}

func NewRecommendationIssued(sessionID, userID, query string, productIDs []string, empoweringScore float64) Event {
	return BaseEvent{
		Type: TypeRecommendationIssued,
		Data: map[string]interface{}{
			"session_id":       sessionID,
			"user_id":          userID,
			"query":            query,
			"product_ids":      productIDs,
			"empowering_score": empoweringScore,
		},
		OccurredAt: time.Now(),
	}
}

func NewGuardVerdict(sessionID, userID, status string, flagCount int) Event {
	return BaseEvent{
		Type: TypeGuardVerdict,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
			"status":     status,
			"flag_count": flagCount,
		},
		OccurredAt: time.Now(),
	}
}

func NewGoalRecorded(sessionID, userID, goalText, domain string) Event {
	return BaseEvent{
		Type: TypeGoalRecorded,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
			"goal_text":  goalText,
			"domain":     domain,
		},
		OccurredAt: time.Now(),
	}
}
