package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/placehirex/placement-backend/internal/logging"
	"github.com/placehirex/placement-backend/internal/models"
	"github.com/placehirex/placement-backend/internal/repo"
	"github.com/placehirex/placement-backend/internal/search"
)

// readyLabel is the readiness label counted as "placed" in analytics.
const readyLabel = "Likely Placed"

// Retrainer uploads a training dataset to the scoring service.
type Retrainer interface {
	Retrain(ctx context.Context, filename string, dataset io.Reader) (string, error)
}

type AdminHTTP struct {
	Repo *repo.GormRepo
	ML   Retrainer
	ES   *elasticsearch.Client
}

func (h *AdminHTTP) Analytics(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := h.Repo.CountProfiles(ctx)
	if err != nil {
		return toHTTPError(err)
	}
	ready, err := h.Repo.CountByReadinessLabel(ctx, readyLabel)
	if err != nil {
		return toHTTPError(err)
	}
	average, err := h.Repo.AverageReadinessScore(ctx)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, analyticsResponse{
		TotalStudents:         total,
		ReadyStudentsCount:    ready,
		NotReadyStudentsCount: total - ready,
		AverageReadinessScore: average,
	})
}

func (h *AdminHTTP) ListModels(c echo.Context) error {
	list, err := h.Repo.ListModels(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AdminHTTP) SelectModel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_model_select")

	id, err := strconv.ParseUint(c.QueryParam("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid model id")
	}

	selected, err := h.Repo.SelectModel(ctx, uint(id))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Model not found")
		}
		l.Error("model_select_error", "status", 500, "error", err)
		return toHTTPError(err)
	}

	l.Info("model_selected", "model", selected.ModelName)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Model " + selected.ModelName + " activated successfully",
	})
}

func (h *AdminHTTP) AddModel(c echo.Context) error {
	ctx := c.Request().Context()

	var model models.ModelVersion
	if err := c.Bind(&model); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if model.ModelName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "modelName is required")
	}

	if err := h.Repo.AddModel(ctx, &model); err != nil {
		if errors.Is(err, repo.ErrModelExists) {
			return echo.NewHTTPError(http.StatusBadRequest, repo.ErrModelExists.Error())
		}
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, model)
}

func (h *AdminHTTP) UploadDataset(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_upload_dataset")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Please select a file to upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read uploaded file")
	}
	defer file.Close()

	result, err := h.ML.Retrain(ctx, fileHeader.Filename, file)
	if err != nil {
		l.Error("retrain_error", "error", err)
		return toHTTPError(err)
	}

	l.Info("retrain_completed", "file", fileHeader.Filename)
	return c.JSON(http.StatusOK, echo.Map{"message": result})
}

func (h *AdminHTTP) SearchStudents(c echo.Context) error {
	ctx := c.Request().Context()

	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	query := search.NormalizeQuery(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	from := 0
	size := 20
	if v, err := strconv.Atoi(c.QueryParam("from")); err == nil && v >= 0 {
		from = v
	}
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil && v > 0 && v <= 100 {
		size = v
	}

	total, docs, err := search.SearchProfiles(ctx, h.ES, search.ProfileIndex, query, from, size)
	if err != nil {
		logging.FromContext(ctx).Error("search_error", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "search failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total":   total,
		"results": docs,
	})
}
