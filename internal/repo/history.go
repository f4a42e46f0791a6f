package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/placehirex/placement-backend/internal/models"
)

// appendHistory is the single write path for history records, used
// standalone and from inside the prediction transaction.
func appendHistory(db *gorm.DB, record *models.PredictionHistory) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	return db.Create(record).Error
}

func (r *GormRepo) AppendHistory(ctx context.Context, record *models.PredictionHistory) error {
	return appendHistory(r.DB.WithContext(ctx), record)
}

func (r *GormRepo) LatestHistoryByEmail(ctx context.Context, email string, n int) ([]models.PredictionHistory, error) {
	var records []models.PredictionHistory
	err := r.DB.WithContext(ctx).
		Joins("JOIN student_profiles ON student_profiles.id = prediction_histories.student_profile_id").
		Joins("JOIN app_users ON app_users.id = student_profiles.user_id").
		Where("app_users.email = ?", email).
		Order("prediction_histories.timestamp DESC").
		Limit(n).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
