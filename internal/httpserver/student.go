package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placehirex/placement-backend/internal/logging"
	mw "github.com/placehirex/placement-backend/internal/middleware"
	"github.com/placehirex/placement-backend/internal/models"
	"github.com/placehirex/placement-backend/internal/repo"
	"github.com/placehirex/placement-backend/internal/service"
)

const historyLimit = 10

type StudentHTTP struct {
	Repo *repo.GormRepo
	Svc  *service.PredictionService
}

func (h *StudentHTTP) UpsertProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "student_profile_upsert")

	subject, _, ok := mw.Principal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("profile_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Repo.FindUserByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "authenticated user not found")
		}
		return toHTTPError(err)
	}

	// Latest-wins upsert: one profile per user.
	profile, err := h.Repo.FindProfileByUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return toHTTPError(err)
		}
		profile = &models.StudentProfile{UserID: user.ID}
	}

	profile.Cgpa = req.Cgpa
	profile.DsaRating = req.DsaRating
	profile.ProjectsCount = req.ProjectsCount
	profile.Internship = req.Internship
	profile.Attendance = req.Attendance
	profile.AptitudeScore = req.AptitudeScore

	if err := h.Repo.SaveProfile(ctx, profile); err != nil {
		l.Error("profile_error", "status", 500, "error", err)
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *StudentHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	subject, _, ok := mw.Principal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	profile, err := h.findProfile(ctx, subject)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *StudentHTTP) Predict(c echo.Context) error {
	ctx := c.Request().Context()

	subject, _, ok := mw.Principal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	profile, err := h.findProfile(ctx, subject)
	if err != nil {
		return err
	}

	res, err := h.Svc.PredictAndPersist(ctx, subject, profile)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, res)
}

func (h *StudentHTTP) History(c echo.Context) error {
	ctx := c.Request().Context()

	subject, _, ok := mw.Principal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	records, err := h.Repo.LatestHistoryByEmail(ctx, subject, historyLimit)
	if err != nil {
		return toHTTPError(err)
	}

	out := make([]historyResponse, len(records))
	for i, r := range records {
		out[i] = historyResponse{
			PredictionScore: r.PredictionScore,
			PredictionLabel: r.PredictionLabel,
			Timestamp:       r.Timestamp,
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StudentHTTP) findProfile(ctx context.Context, subject string) (*models.StudentProfile, error) {
	user, err := h.Repo.FindUserByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "authenticated user not found")
		}
		return nil, toHTTPError(err)
	}

	profile, err := h.Repo.FindProfileByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Student profile not found")
		}
		return nil, toHTTPError(err)
	}
	return profile, nil
}
