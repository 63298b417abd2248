// Package prediction talks to the external food-waste prediction API and
// provides the local helpers that feed it: the stub estimator, the weather
// lookups used to pre-fill forms and the inventory-to-request mappings.
package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/obs"
)

// DefaultTotalFood is the food total in kg assumed when a request carries none.
const DefaultTotalFood = 400.0

// ErrUnavailable is returned when the prediction API cannot be reached.
var ErrUnavailable = errors.New("could not connect to the prediction server")

// APIError is a non-2xx answer from the prediction API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// Client calls the prediction API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// apiResult is the body the prediction API returns.
type apiResult struct {
	Prediction      float64  `json:"prediction"`
	CO2Saved        float64  `json:"co2_saved"`
	Recommendations []string `json:"recommendations"`
	UtilizationRate *float64 `json:"utilization_rate,omitempty"`
}

// HealthStatus is the prediction API health answer.
type HealthStatus struct {
	Status string `json:"status"`
}

// Predict forwards a grocery prediction request.
func (c *Client) Predict(ctx context.Context, req model.PredictionRequest) (model.PredictionResponse, error) {
	var res apiResult
	if err := c.post(ctx, "/predict", req, &res, "Failed to get prediction"); err != nil {
		obs.Logger.Warnw("prediction_failed", "endpoint", "/predict", "error", err)
		return model.PredictionResponse{}, fmt.Errorf("predict: %w", err)
	}
	total := DefaultTotalFood
	if req.QuantityOfFood != nil && *req.QuantityOfFood != 0 {
		total = *req.QuantityOfFood
	}
	return derive(res, req.ProductType, total), nil
}

// PredictRestaurant forwards a restaurant prediction request.
func (c *Client) PredictRestaurant(ctx context.Context, req model.RestaurantPredictionRequest) (model.PredictionResponse, error) {
	var res apiResult
	if err := c.post(ctx, "/restaurant/predict", req, &res, "Failed to get restaurant prediction"); err != nil {
		obs.Logger.Warnw("prediction_failed", "endpoint", "/restaurant/predict", "error", err)
		return model.PredictionResponse{}, fmt.Errorf("predict restaurant: %w", err)
	}
	return derive(res, req.FoodType, DefaultTotalFood), nil
}

// Health asks the prediction API for its status.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return HealthStatus{}, transportError(ctx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return HealthStatus{}, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("API health check failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}
	var h HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return HealthStatus{}, fmt.Errorf("decode health: %w", err)
	}
	return h, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any, fallbackMsg string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(ctx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp, fallbackMsg)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage prefers the API's "detail" field. An unparseable body yields
// "<status>: <text>".
func errorMessage(resp *http.Response, fallbackMsg string) string {
	var body struct {
		Detail any `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil {
		return fmt.Sprintf("%d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	switch d := body.Detail.(type) {
	case string:
		if d != "" {
			return d
		}
	case nil:
	default:
		if b, err := json.Marshal(d); err == nil {
			return string(b)
		}
	}
	return fallbackMsg
}

func transportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func derive(res apiResult, foodType string, total float64) model.PredictionResponse {
	recs := res.Recommendations
	if recs == nil {
		recs = []string{}
	}
	return model.PredictionResponse{
		Prediction:      res.Prediction,
		CO2Saved:        res.CO2Saved,
		Recommendations: recs,
		UtilizationRate: res.UtilizationRate,
		FoodType:        foodType,
		TotalFood:       total,
		WasteAmount:     res.Prediction,
		WastePercentage: roundHalfUp(res.Prediction / total * 100),
		CO2Emissions:    res.CO2Saved,
	}
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
