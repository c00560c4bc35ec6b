package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

type ProfileRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewProfileRepository(writerDB, readerDB *gorm.DB) *ProfileRepository {
	return &ProfileRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if err := r.writerDB.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.readerDB.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	return r.writerDB.WithContext(ctx).Save(profile).Error
}
