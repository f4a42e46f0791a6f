package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/placehirex/placement-backend/internal/models"
)

func (r *GormRepo) FindProfileByUserID(ctx context.Context, userID uint) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *GormRepo) SaveProfile(ctx context.Context, p *models.StudentProfile) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

// SavePredictionOutcome persists the updated readiness fields and the
// history record as one unit. Either both rows land or neither does.
func (r *GormRepo) SavePredictionOutcome(ctx context.Context, profile *models.StudentProfile, record *models.PredictionHistory) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		record.StudentProfileID = profile.ID
		return appendHistory(tx, record)
	})
}
