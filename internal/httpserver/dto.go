package httpserver

import "time"

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
	Role      string `json:"role"`
	Email     string `json:"email"`
}

type profileRequest struct {
	Cgpa          float64 `json:"cgpa"`
	DsaRating     int     `json:"dsaRating"`
	ProjectsCount int     `json:"projectsCount"`
	Internship    bool    `json:"internship"`
	Attendance    float64 `json:"attendance"`
	AptitudeScore float64 `json:"aptitudeScore"`
}

type historyResponse struct {
	PredictionScore float64   `json:"predictionScore"`
	PredictionLabel string    `json:"predictionLabel"`
	Timestamp       time.Time `json:"timestamp"`
}

type analyticsResponse struct {
	TotalStudents         int64   `json:"totalStudents"`
	ReadyStudentsCount    int64   `json:"readyStudentsCount"`
	NotReadyStudentsCount int64   `json:"notReadyStudentsCount"`
	AverageReadinessScore float64 `json:"averageReadinessScore"`
}
