package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placehirex/placement-backend/internal/events"
	"github.com/placehirex/placement-backend/internal/mlclient"
	"github.com/placehirex/placement-backend/internal/models"
	"github.com/placehirex/placement-backend/internal/repo"
)

type fakePredictor struct {
	resp  *mlclient.PredictionResponse
	err   error
	calls int
}

func (f *fakePredictor) Predict(ctx context.Context, req mlclient.PredictionRequest) (*mlclient.PredictionResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func seedProfile(t *testing.T, r *repo.GormRepo, email string, profile models.StudentProfile) *models.StudentProfile {
	t.Helper()

	user := &models.AppUser{Email: email, PasswordHash: "x", Role: "STUDENT", Enabled: true}
	require.NoError(t, r.CreateUser(context.Background(), user))
	profile.UserID = user.ID
	require.NoError(t, r.SaveProfile(context.Background(), &profile))
	return &profile
}

func newPredictionService(t *testing.T, ml Predictor) *PredictionService {
	t.Helper()

	return &PredictionService{
		Repo:     newTestRepo(t),
		ML:       ml,
		Producer: events.NewProducer(nil),
	}
}

func TestPredictionService_PredictAndPersist_Success(t *testing.T) {
	t.Parallel()

	ml := &fakePredictor{resp: &mlclient.PredictionResponse{
		Probability:     0.91,
		Label:           "Likely Placed",
		Explanations:    []string{},
		Recommendations: []string{},
	}}
	svc := newPredictionService(t, ml)
	ctx := context.Background()

	profile := seedProfile(t, svc.Repo, "student@example.com", models.StudentProfile{
		Cgpa:          8.5,
		DsaRating:     4,
		ProjectsCount: 3,
		Internship:    true,
		Attendance:    90,
		AptitudeScore: 80,
	})

	res, err := svc.PredictAndPersist(ctx, "student@example.com", profile)
	require.NoError(t, err)
	assert.Equal(t, 1, ml.calls)

	assert.Equal(t, 0.91, res.Probability)
	assert.Equal(t, "Likely Placed", res.Label)
	assert.Empty(t, res.Explanations)
	assert.Empty(t, res.Recommendations)

	stored, err := svc.Repo.FindProfileByUserID(ctx, profile.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0.91, stored.ReadinessScore)
	assert.Equal(t, "Likely Placed", stored.ReadinessLabel)

	records, err := svc.Repo.LatestHistoryByEmail(ctx, "student@example.com", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 0.91, records[0].PredictionScore)
	assert.Equal(t, "Likely Placed", records[0].PredictionLabel)
	assert.False(t, records[0].Timestamp.IsZero())
}

func TestPredictionService_PredictAndPersist_ThresholdLists(t *testing.T) {
	t.Parallel()

	ml := &fakePredictor{resp: &mlclient.PredictionResponse{Probability: 0.2, Label: "Needs Improvement"}}
	svc := newPredictionService(t, ml)
	ctx := context.Background()

	profile := seedProfile(t, svc.Repo, "weak@example.com", models.StudentProfile{
		Cgpa:          6.0,
		DsaRating:     2,
		ProjectsCount: 1,
		Internship:    false,
		Attendance:    70,
		AptitudeScore: 45,
	})

	res, err := svc.PredictAndPersist(ctx, "weak@example.com", profile)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Low aptitude score",
		"Low attendance",
		"Few projects",
		"No internship experience",
	}, res.Explanations)

	assert.Equal(t, []string{
		"Increase DSA practice to at least level 3",
		"Build two or more quality projects",
		"Try to secure at least one internship",
		"Improve attendance above 80%",
	}, res.Recommendations)
}

func TestPredictionService_PredictAndPersist_GatewayErrorPropagates(t *testing.T) {
	t.Parallel()

	gatewayErr := &mlclient.PredictionError{
		Message: "Prediction API is unavailable. Please try again later.",
		Status:  http.StatusServiceUnavailable,
	}
	ml := &fakePredictor{err: gatewayErr}
	svc := newPredictionService(t, ml)
	ctx := context.Background()

	profile := seedProfile(t, svc.Repo, "student@example.com", models.StudentProfile{Attendance: 90})

	_, err := svc.PredictAndPersist(ctx, "student@example.com", profile)
	require.Error(t, err)

	var predErr *mlclient.PredictionError
	require.True(t, errors.As(err, &predErr))
	assert.Same(t, gatewayErr, predErr)

	// Nothing is recorded when the gateway fails.
	records, err := svc.Repo.LatestHistoryByEmail(ctx, "student@example.com", 10)
	require.NoError(t, err)
	assert.Empty(t, records)

	stored, err := svc.Repo.FindProfileByUserID(ctx, profile.UserID)
	require.NoError(t, err)
	assert.Zero(t, stored.ReadinessScore)
	assert.Empty(t, stored.ReadinessLabel)
}

func TestBuildExplanations_AttendanceBoundary(t *testing.T) {
	t.Parallel()

	// 75 is not "low attendance" for explanations, but below the 80
	// bar for the attendance recommendation.
	profile := &models.StudentProfile{
		DsaRating:     3,
		ProjectsCount: 2,
		Internship:    true,
		Attendance:    75,
		AptitudeScore: 50,
	}

	assert.Empty(t, buildExplanations(profile))
	assert.Equal(t, []string{"Improve attendance above 80%"}, buildRecommendations(profile))
}
