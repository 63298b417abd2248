package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/prediction"
)

// writePredictionError maps prediction and validation failures to responses.
func writePredictionError(w http.ResponseWriter, err error) {
	var verr *prediction.ValidationError
	var apiErr *prediction.APIError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "validation_error",
			"details": verr.Error(),
			"fields":  verr.Fields,
		})
	case errors.Is(err, prediction.ErrUnavailable):
		WriteJSONError(w, http.StatusServiceUnavailable, "prediction_unavailable", prediction.ErrUnavailable.Error())
	case errors.As(err, &apiErr):
		WriteJSONError(w, http.StatusBadGateway, "prediction_failed", apiErr.Message)
	case errors.Is(err, context.DeadlineExceeded):
		WriteJSONError(w, http.StatusGatewayTimeout, "prediction_timeout", "")
	case errors.Is(err, context.Canceled):
		// client is gone
	default:
		WriteJSONError(w, http.StatusBadGateway, "prediction_failed", err.Error())
	}
}

func (a *App) predictHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	var req model.PredictionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writePredictionError(w, err)
		return
	}
	res, err := a.Predictor.Predict(r.Context(), req)
	if err != nil {
		writePredictionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *App) predictRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	var req model.RestaurantPredictionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writePredictionError(w, err)
		return
	}
	res, err := a.Predictor.PredictRestaurant(r.Context(), req)
	if err != nil {
		writePredictionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *App) predictionHealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	h, err := a.Predictor.Health(r.Context())
	if err != nil {
		writePredictionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (a *App) estimateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	var req model.EstimateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writePredictionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prediction.Estimate(req))
}

func (a *App) weatherHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	cond, err := a.Weather.CurrentConditions(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		// only a cancelled request fails
		return
	}
	writeJSON(w, http.StatusOK, cond)
}
