package models

import "time"

type AppUser struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
	Enabled      bool   `gorm:"not null;default:true"    json:"enabled"`
}

type StudentProfile struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint    `gorm:"uniqueIndex;not null"     json:"user_id"`
	User           AppUser `gorm:"foreignKey:UserID"        json:"-"`
	Cgpa           float64 `json:"cgpa"`
	DsaRating      int     `json:"dsaRating"`
	ProjectsCount  int     `json:"projectsCount"`
	Internship     bool    `json:"internship"`
	Attendance     float64 `json:"attendance"`
	AptitudeScore  float64 `json:"aptitudeScore"`
	ReadinessScore float64 `json:"readinessScore"`
	ReadinessLabel string  `json:"readinessLabel"`
}

type PredictionHistory struct {
	ID               uint           `gorm:"primaryKey;autoIncrement"  json:"id"`
	StudentProfileID uint           `gorm:"index;not null"            json:"student_profile_id"`
	StudentProfile   StudentProfile `gorm:"foreignKey:StudentProfileID" json:"-"`
	PredictionScore  float64        `json:"predictionScore"`
	PredictionLabel  string         `json:"predictionLabel"`
	Timestamp        time.Time      `gorm:"index;not null"            json:"timestamp"`
}

type ModelVersion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ModelName   string    `gorm:"uniqueIndex;not null"     json:"modelName"`
	Accuracy    float64   `json:"accuracy"`
	IsActive    bool      `gorm:"not null;default:false"   json:"isActive"`
	UploadedAt  time.Time `json:"uploadedAt"`
	Description string    `json:"description"`
}

func All() []any {
	return []any{&AppUser{}, &StudentProfile{}, &PredictionHistory{}, &ModelVersion{}}
}
