package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/placehirex/placement-backend/internal/logging"
	"github.com/placehirex/placement-backend/internal/models"
)

const (
	predictTimeout = 5 * time.Second
	retrainTimeout = 2 * time.Minute

	modelHeader = "X-Model-Name"
)

type PredictionRequest struct {
	Cgpa          float64 `json:"cgpa"`
	DsaRating     int     `json:"dsaRating"`
	ProjectsCount int     `json:"projectsCount"`
	Internship    bool    `json:"internship"`
	Attendance    float64 `json:"attendance"`
	AptitudeScore float64 `json:"aptitudeScore"`
}

type PredictionResponse struct {
	Probability     float64  `json:"probability"`
	Label           string   `json:"label"`
	Explanations    []string `json:"explanations"`
	Recommendations []string `json:"recommendations"`
}

// PredictionError carries the externally visible status class for an
// upstream failure: 503 when the service cannot be reached at all, 502
// when it answered with an error or a malformed body.
type PredictionError struct {
	Message string
	Status  int
}

func (e *PredictionError) Error() string { return e.Message }

func unavailable() *PredictionError {
	return &PredictionError{
		Message: "Prediction API is unavailable. Please try again later.",
		Status:  http.StatusServiceUnavailable,
	}
}

func badGateway(message string) *PredictionError {
	return &PredictionError{Message: message, Status: http.StatusBadGateway}
}

// ModelSelector resolves the currently active model version, if any.
type ModelSelector interface {
	ActiveModel(ctx context.Context) (*models.ModelVersion, error)
}

type Client struct {
	baseURL  string
	http     *http.Client
	selector ModelSelector
	timeout  time.Duration
}

func New(baseURL string, selector ModelSelector) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		selector: selector,
		timeout:  predictTimeout,
	}
}

// Predict issues exactly one call to the scoring endpoint, bounded by a
// five second timeout. No retries; retrying is the caller's decision.
func (c *Client) Predict(ctx context.Context, req PredictionRequest) (*PredictionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, badGateway("Failed to process prediction response")
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, badGateway("Failed to process prediction response")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.attachModelHeader(ctx, httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, unavailable()
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, badGateway("Prediction API returned error: " + readErrorBody(resp.Body))
	}

	// The timeout covers the whole exchange. A deadline that fires
	// mid-body is still "upstream did not answer in time", not a bad
	// response.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, unavailable()
		}
		return nil, badGateway("Failed to process prediction response")
	}
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return nil, badGateway("Prediction API returned an empty response")
	}

	var out PredictionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, badGateway("Failed to process prediction response")
	}

	// Partial responses are valid: only probability and label are
	// required fields of the contract.
	if out.Explanations == nil {
		out.Explanations = []string{}
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}

	return &out, nil
}

// Retrain uploads a CSV dataset to the scoring service and returns its
// textual summary. Training is slow, so the bound is wider than the
// predict path.
func (c *Client) Retrain(ctx context.Context, filename string, dataset io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", badGateway("Failed to build retrain request")
	}
	if _, err := io.Copy(part, dataset); err != nil {
		return "", badGateway("Failed to build retrain request")
	}
	if err := mw.Close(); err != nil {
		return "", badGateway("Failed to build retrain request")
	}

	callCtx, cancel := context.WithTimeout(ctx, retrainTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+"/retrain", &buf)
	if err != nil {
		return "", badGateway("Failed to build retrain request")
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", unavailable()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", unavailable()
		}
		return "", badGateway("Failed to process retrain response")
	}
	if resp.StatusCode >= 400 {
		return "", badGateway("Retraining failed: " + errorBodyOrDefault(raw))
	}

	return string(raw), nil
}

func (c *Client) attachModelHeader(ctx context.Context, req *http.Request) {
	if c.selector == nil {
		return
	}
	model, err := c.selector.ActiveModel(ctx)
	if err != nil || model == nil {
		// No active model selected: the upstream falls back to its
		// default, so the header is simply omitted.
		if err != nil {
			logging.FromContext(ctx).Debug("active model lookup failed", "error", err)
		}
		return
	}
	req.Header.Set(modelHeader, model.ModelName)
}

func readErrorBody(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return "No error details"
	}
	return errorBodyOrDefault(raw)
}

func errorBodyOrDefault(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return "No error details"
	}
	return body
}
