package mapper

import (
	"encoding/json"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/model"
)

type SemanticEntryMapper struct{}

func NewSemanticEntryMapper() *SemanticEntryMapper {
	return &SemanticEntryMapper{}
}

func (m *SemanticEntryMapper) ToEntity(s *model.SemanticEntry) *entity.SemanticEntry {
	if s == nil {
		return nil
	}
	var value []string
	if len(s.Value) > 0 {
		_ = json.Unmarshal(s.Value, &value)
	}
	return &entity.SemanticEntry{
		Id:        s.Id,
		UserId:    s.UserId,
		Key:       s.Key,
		Value:     value,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *SemanticEntryMapper) ToModel(s *entity.SemanticEntry) *model.SemanticEntry {
	if s == nil {
		return nil
	}
	return &model.SemanticEntry{
		Id:        s.Id,
		UserId:    s.UserId,
		Key:       s.Key,
		Value:     marshalJSON(s.Value),
		UpdatedAt: s.UpdatedAt,
	}
}
