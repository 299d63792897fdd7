package persistent

import (
	"context"

	"magazine/internal/entity"
	"magazine/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	List(ctx context.Context) ([]*entity.Profile, error)
	GetByUsername(ctx context.Context, username string) (*entity.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) List(ctx context.Context) ([]*entity.Profile, error) {
	var profileModels []model.ProfileModel
	err := r.db.WithContext(ctx).
		Joins("User").
		Order("\"User\".\"username\" ASC").
		Find(&profileModels).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]*entity.Profile, len(profileModels))
	for i := range profileModels {
		profiles[i] = ToProfileEntity(&profileModels[i])
	}
	return profiles, nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	var profileModel model.ProfileModel
	err := r.db.WithContext(ctx).
		Joins("User").
		Where("\"User\".\"username\" = ?", username).
		First(&profileModel).Error
	if err != nil {
		return nil, notFound(err)
	}
	return ToProfileEntity(&profileModel), nil
}
