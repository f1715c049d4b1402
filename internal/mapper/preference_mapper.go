package mapper

import (
	"time"

	"ai-editor-be/internal/entity"
	"ai-editor-be/internal/model"
)

type PreferenceMapper struct{}

func NewPreferenceMapper() *PreferenceMapper {
	return &PreferenceMapper{}
}

func (m *PreferenceMapper) ToEntity(e *model.UserPreference) *entity.UserPreference {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.UserPreference{
		Id:              e.Id,
		UserId:          e.UserId,
		TextType:        e.TextType,
		PreferenceKey:   e.PreferenceKey,
		PreferenceValue: e.PreferenceValue,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *PreferenceMapper) ToModel(e *entity.UserPreference) *model.UserPreference {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.UserPreference{
		Id:              e.Id,
		UserId:          e.UserId,
		TextType:        e.TextType,
		PreferenceKey:   e.PreferenceKey,
		PreferenceValue: e.PreferenceValue,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *PreferenceMapper) ToEntities(prefs []*model.UserPreference) []*entity.UserPreference {
	entities := make([]*entity.UserPreference, len(prefs))
	for i, p := range prefs {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
