package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrUserExists  = errors.New("email is already registered")
	ErrModelExists = errors.New("model with this name already exists")
)

type GormRepo struct {
	DB *gorm.DB
}
