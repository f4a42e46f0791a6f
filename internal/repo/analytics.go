package repo

import (
	"context"

	"github.com/placehirex/placement-backend/internal/models"
)

func (r *GormRepo) CountProfiles(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.StudentProfile{}).Count(&count).Error
	return count, err
}

func (r *GormRepo) CountByReadinessLabel(ctx context.Context, label string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.StudentProfile{}).
		Where("readiness_label = ?", label).
		Count(&count).Error
	return count, err
}

func (r *GormRepo) AverageReadinessScore(ctx context.Context) (float64, error) {
	var avg float64
	err := r.DB.WithContext(ctx).Model(&models.StudentProfile{}).
		Select("COALESCE(AVG(readiness_score), 0)").
		Scan(&avg).Error
	return avg, err
}
