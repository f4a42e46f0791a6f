package service

import (
	"context"
	"errors"
	"time"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/placehirex/placement-backend/internal/events"
	"github.com/placehirex/placement-backend/internal/logging"
	"github.com/placehirex/placement-backend/internal/metrics"
	"github.com/placehirex/placement-backend/internal/mlclient"
	"github.com/placehirex/placement-backend/internal/models"
	"github.com/placehirex/placement-backend/internal/repo"
	"github.com/placehirex/placement-backend/internal/search"
)

var ErrPersistence = errors.New("failed to record prediction")

// Predictor is the outbound scoring contract used by the orchestrator.
type Predictor interface {
	Predict(ctx context.Context, req mlclient.PredictionRequest) (*mlclient.PredictionResponse, error)
}

type PredictionService struct {
	Repo     *repo.GormRepo
	ML       Predictor
	Producer *events.Producer
	ES       *elasticsearch.Client
}

// PredictAndPersist calls the scoring service and, only on success,
// writes the updated readiness fields plus one history record as a
// single unit. Gateway errors propagate unchanged; write failures
// surface as ErrPersistence and leave nothing recorded.
func (s *PredictionService) PredictAndPersist(ctx context.Context, email string, profile *models.StudentProfile) (*mlclient.PredictionResponse, error) {
	l := logging.FromContext(ctx).With("svc", "prediction.predict", "email", email)

	req := mlclient.PredictionRequest{
		Cgpa:          profile.Cgpa,
		DsaRating:     profile.DsaRating,
		ProjectsCount: profile.ProjectsCount,
		Internship:    profile.Internship,
		Attendance:    profile.Attendance,
		AptitudeScore: profile.AptitudeScore,
	}

	started := time.Now()
	resp, err := s.ML.Predict(ctx, req)
	if err != nil {
		metrics.ObservePrediction("upstream_error", started)
		return nil, err
	}
	metrics.ObservePrediction("success", started)

	profile.ReadinessScore = resp.Probability
	profile.ReadinessLabel = resp.Label

	record := &models.PredictionHistory{
		PredictionScore: resp.Probability,
		PredictionLabel: resp.Label,
		Timestamp:       time.Now().UTC(),
	}
	if err := s.Repo.SavePredictionOutcome(ctx, profile, record); err != nil {
		l.Error("persist_failed", "error", err)
		return nil, ErrPersistence
	}

	event := map[string]any{
		"type":  "prediction_completed",
		"email": email,
		"score": resp.Probability,
		"label": resp.Label,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicPredictionEvents, email, event); err != nil {
		l.Warn("kafka publish failed", "error", err)
	}

	if err := search.IndexProfile(ctx, s.ES, search.ProfileIndex, search.ProfileDoc{
		Email:          email,
		Cgpa:           profile.Cgpa,
		ReadinessScore: profile.ReadinessScore,
		ReadinessLabel: profile.ReadinessLabel,
	}); err != nil {
		l.Warn("search index failed", "error", err)
	}

	l.Info("prediction_recorded", "score", resp.Probability, "label", resp.Label)
	return &mlclient.PredictionResponse{
		Probability:     profile.ReadinessScore,
		Label:           profile.ReadinessLabel,
		Explanations:    buildExplanations(profile),
		Recommendations: buildRecommendations(profile),
	}, nil
}

// The explanation and recommendation lists are derived from fixed
// thresholds over the persisted profile, in a fixed order.
func buildExplanations(profile *models.StudentProfile) []string {
	explanations := []string{}
	if profile.AptitudeScore < 50 {
		explanations = append(explanations, "Low aptitude score")
	}
	if profile.Attendance < 75 {
		explanations = append(explanations, "Low attendance")
	}
	if profile.ProjectsCount < 2 {
		explanations = append(explanations, "Few projects")
	}
	if !profile.Internship {
		explanations = append(explanations, "No internship experience")
	}
	return explanations
}

func buildRecommendations(profile *models.StudentProfile) []string {
	recommendations := []string{}
	if profile.DsaRating < 3 {
		recommendations = append(recommendations, "Increase DSA practice to at least level 3")
	}
	if profile.ProjectsCount < 2 {
		recommendations = append(recommendations, "Build two or more quality projects")
	}
	if !profile.Internship {
		recommendations = append(recommendations, "Try to secure at least one internship")
	}
	if profile.Attendance < 80 {
		recommendations = append(recommendations, "Improve attendance above 80%")
	}
	return recommendations
}
