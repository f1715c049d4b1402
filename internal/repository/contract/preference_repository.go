package contract

import (
	"context"

	"ai-editor-be/internal/entity"
	"ai-editor-be/internal/repository/specification"
)

type PreferenceRepository interface {
	Create(ctx context.Context, pref *entity.UserPreference) error
	CreateBulk(ctx context.Context, prefs []*entity.UserPreference) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserPreference, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
