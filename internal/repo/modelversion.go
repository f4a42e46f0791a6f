package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/placehirex/placement-backend/internal/models"
)

func (r *GormRepo) ActiveModel(ctx context.Context) (*models.ModelVersion, error) {
	var model models.ModelVersion
	if err := r.DB.WithContext(ctx).Where("is_active = ?", true).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &model, nil
}

func (r *GormRepo) ListModels(ctx context.Context) ([]models.ModelVersion, error) {
	var list []models.ModelVersion
	if err := r.DB.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// SelectModel activates one model version with two conditional updates
// inside a transaction, so concurrent selections cannot leave zero or
// two active rows.
func (r *GormRepo) SelectModel(ctx context.Context, id uint) (*models.ModelVersion, error) {
	var selected models.ModelVersion
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&selected, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&models.ModelVersion{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&selected).Update("is_active", true).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &selected, nil
}

func (r *GormRepo) AddModel(ctx context.Context, m *models.ModelVersion) error {
	m.UploadedAt = time.Now().UTC()
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ModelVersion{}).
			Where("model_name = ?", m.ModelName).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrModelExists
		}
		if m.IsActive {
			if err := tx.Model(&models.ModelVersion{}).
				Where("is_active = ?", true).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(m).Error
	})
}
