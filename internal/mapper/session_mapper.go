package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"empower-commerce-be/internal/constant"
	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}
	return &entity.Session{
		Id:        s.Id,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
		State:     decodeState(s.State),
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}
	return &model.Session{
		Id:        s.Id,
		UserId:    s.UserId,
		State:     encodeState(s.State),
		CreatedAt: s.CreatedAt,
	}
}

func encodeState(state entity.SessionState) datatypes.JSON {
	if state.Version == 0 {
		state.Version = constant.SessionStateVersion
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return datatypes.JSON([]byte(`{"version":1}`))
	}
	return datatypes.JSON(raw)
}

// decodeState tolerates rows written by older builds: an undecodable blob
// yields a fresh state rather than an error.
func decodeState(raw datatypes.JSON) entity.SessionState {
	state := entity.SessionState{Version: constant.SessionStateVersion}
	if len(raw) == 0 {
		return state
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		return entity.SessionState{Version: constant.SessionStateVersion}
	}
	if state.Version == 0 {
		state.Version = constant.SessionStateVersion
	}
	return state
}
