package mapper

import (
	"github.com/pgvector/pgvector-go"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/model"
)

type GoalMapper struct{}

func NewGoalMapper() *GoalMapper {
	return &GoalMapper{}
}

func (m *GoalMapper) ToEntity(g *model.Goal) *entity.Goal {
	if g == nil {
		return nil
	}
	var embedding []float32
	if g.GoalEmbedding != nil {
		embedding = g.GoalEmbedding.Slice()
	}
	return &entity.Goal{
		Id:         g.Id,
		UserId:     g.UserId,
		SessionId:  g.SessionId,
		GoalText:   g.GoalText,
		Domain:     g.Domain,
		Importance: g.Importance,
		Embedding:  embedding,
		CreatedAt:  g.CreatedAt,
	}
}

func (m *GoalMapper) ToModel(g *entity.Goal) *model.Goal {
	if g == nil {
		return nil
	}
	var embedding *pgvector.Vector
	if len(g.Embedding) > 0 {
		vector := pgvector.NewVector(g.Embedding)
		embedding = &vector
	}
	return &model.Goal{
		Id:            g.Id,
		UserId:        g.UserId,
		SessionId:     g.SessionId,
		GoalText:      g.GoalText,
		Domain:        g.Domain,
		Importance:    g.Importance,
		GoalEmbedding: embedding,
		CreatedAt:     g.CreatedAt,
	}
}

func (m *GoalMapper) ToEntities(models []*model.Goal) []*entity.Goal {
	entities := make([]*entity.Goal, len(models))
	for i, g := range models {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
