package implementation

import (
	"context"

	"ai-editor-be/internal/entity"
	"ai-editor-be/internal/mapper"
	"ai-editor-be/internal/model"
	"ai-editor-be/internal/repository/contract"
	"ai-editor-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PreferenceMapper
}

func NewPreferenceRepository(db *gorm.DB) contract.PreferenceRepository {
	return &PreferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPreferenceMapper(),
	}
}

func (r *PreferenceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PreferenceRepositoryImpl) Create(ctx context.Context, pref *entity.UserPreference) error {
	m := r.mapper.ToModel(pref)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*pref = *r.mapper.ToEntity(m)
	return nil
}

func (r *PreferenceRepositoryImpl) CreateBulk(ctx context.Context, prefs []*entity.UserPreference) error {
	if len(prefs) == 0 {
		return nil
	}
	models := make([]*model.UserPreference, len(prefs))
	for i, p := range prefs {
		models[i] = r.mapper.ToModel(p)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*prefs[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *PreferenceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserPreference, error) {
	var models []*model.UserPreference
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PreferenceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.UserPreference{}).Count(&count).Error
	return count, err
}
