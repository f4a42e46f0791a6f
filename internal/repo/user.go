package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/placehirex/placement-backend/internal/models"
)

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.AppUser, error) {
	var user models.AppUser
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UserExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.AppUser{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser relies on the unique index over email, so a duplicate
// surfaces as ErrUserExists even when two registrations race.
func (r *GormRepo) CreateUser(ctx context.Context, u *models.AppUser) error {
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}
	return nil
}
