package mapper

import (
	"encoding/json"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/model"
)

type RecommendationMapper struct{}

func NewRecommendationMapper() *RecommendationMapper {
	return &RecommendationMapper{}
}

func (m *RecommendationMapper) ToEntity(r *model.Recommendation) *entity.Recommendation {
	if r == nil {
		return nil
	}
	var productIds []string
	if len(r.ProductIds) > 0 {
		_ = json.Unmarshal(r.ProductIds, &productIds)
	}
	context := map[string]interface{}{}
	if len(r.Context) > 0 {
		_ = json.Unmarshal(r.Context, &context)
	}
	return &entity.Recommendation{
		Id:              r.Id,
		SessionId:       r.SessionId,
		ProductIds:      productIds,
		EmpoweringScore: r.EmpoweringScore,
		Context:         context,
		CreatedAt:       r.CreatedAt,
	}
}

func (m *RecommendationMapper) ToModel(r *entity.Recommendation) *model.Recommendation {
	if r == nil {
		return nil
	}
	return &model.Recommendation{
		Id:              r.Id,
		SessionId:       r.SessionId,
		ProductIds:      marshalJSON(r.ProductIds),
		EmpoweringScore: r.EmpoweringScore,
		Context:         marshalJSON(r.Context),
		CreatedAt:       r.CreatedAt,
	}
}
