package mapper

import (
	"encoding/json"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/model"
)

type EpisodeMapper struct{}

func NewEpisodeMapper() *EpisodeMapper {
	return &EpisodeMapper{}
}

func (m *EpisodeMapper) ToEntity(e *model.Episode) *entity.Episode {
	if e == nil {
		return nil
	}
	var takeaways []string
	if len(e.Takeaways) > 0 {
		_ = json.Unmarshal(e.Takeaways, &takeaways)
	}
	return &entity.Episode{
		Id:        e.Id,
		UserId:    e.UserId,
		SessionId: e.SessionId,
		Outcome:   e.Outcome,
		Takeaways: takeaways,
		CreatedAt: e.CreatedAt,
	}
}

func (m *EpisodeMapper) ToModel(e *entity.Episode) *model.Episode {
	if e == nil {
		return nil
	}
	return &model.Episode{
		Id:        e.Id,
		UserId:    e.UserId,
		SessionId: e.SessionId,
		Outcome:   e.Outcome,
		Takeaways: marshalJSON(e.Takeaways),
		CreatedAt: e.CreatedAt,
	}
}
