package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/model"
)

type TurnMapper struct{}

func NewTurnMapper() *TurnMapper {
	return &TurnMapper{}
}

func (m *TurnMapper) ToEntity(t *model.Turn) *entity.Turn {
	if t == nil {
		return nil
	}
	metadata := map[string]interface{}{}
	if len(t.Metadata) > 0 {
		_ = json.Unmarshal(t.Metadata, &metadata)
	}
	return &entity.Turn{
		Id:        t.Id,
		SessionId: t.SessionId,
		Speaker:   t.Speaker,
		Content:   t.Content,
		Metadata:  metadata,
		CreatedAt: t.CreatedAt,
	}
}

func (m *TurnMapper) ToModel(t *entity.Turn) *model.Turn {
	if t == nil {
		return nil
	}
	return &model.Turn{
		Id:        t.Id,
		SessionId: t.SessionId,
		Speaker:   t.Speaker,
		Content:   t.Content,
		Metadata:  marshalJSON(t.Metadata),
		CreatedAt: t.CreatedAt,
	}
}

func (m *TurnMapper) ToEntities(models []*model.Turn) []*entity.Turn {
	entities := make([]*entity.Turn, len(models))
	for i, t := range models {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func marshalJSON(value interface{}) datatypes.JSON {
	raw, err := json.Marshal(value)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}
