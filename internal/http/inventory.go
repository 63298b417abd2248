package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/catalog"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/obs"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/prediction"
)

func (a *App) listInventoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	writeJSON(w, http.StatusOK, a.Catalog.Snapshot(r.Context()))
}

func (a *App) getItemHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	it, ok := a.Catalog.Item(r.Context(), r.PathValue("id"))
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (a *App) searchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	qs := r.URL.Query()
	f, p, err := parseSearch(qs)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	page, err := a.Catalog.Search(r.Context(), qs.Get("q"), f, p)
	if err != nil {
		// the client went away during the search delay
		obs.Logger.Debugw("search_abandoned", "request_id", RequestIDFromContext(r.Context()), "error", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (a *App) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	writeJSON(w, http.StatusOK, catalog.Categories())
}

func (a *App) storageLocationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	writeJSON(w, http.StatusOK, catalog.StorageLocations())
}

func (a *App) refreshHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	if err := a.Catalog.Invalidate(r.Context()); err != nil {
		obs.Logger.Errorw("catalog_invalidate_failed", "error", err)
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	obs.Logger.Infow("catalog_invalidated", "request_id", RequestIDFromContext(r.Context()))
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "invalidated"})
}

type itemPrediction struct {
	Item       model.InventoryItem      `json:"item"`
	Conditions model.Conditions         `json:"conditions"`
	Request    model.PredictionRequest  `json:"request"`
	Prediction model.PredictionResponse `json:"prediction"`
}

// itemPredictionHandler predicts waste for one catalog item under the
// current weather at the requested location.
func (a *App) itemPredictionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	it, ok := a.Catalog.Item(r.Context(), r.PathValue("id"))
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	cond, err := a.Weather.CurrentConditions(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		writePredictionError(w, err)
		return
	}
	req := prediction.RequestForItem(it, cond)
	res, err := a.Predictor.Predict(r.Context(), req)
	if err != nil {
		writePredictionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemPrediction{Item: it, Conditions: cond, Request: req, Prediction: res})
}

func parseSearch(qs url.Values) (model.SearchFilters, model.Pagination, error) {
	var f model.SearchFilters
	p := model.Pagination{Page: 1}

	if v := qs.Get("category"); v != "" {
		c := model.Category(v)
		if c != model.CategoryOther && !slices.Contains(catalog.Categories(), c) {
			return f, p, fmt.Errorf("unknown category %q", v)
		}
		f.Category = c
	}
	if v := qs.Get("storage_location"); v != "" {
		s := model.StorageLocation(v)
		if !slices.Contains(catalog.StorageLocations(), s) {
			return f, p, fmt.Errorf("unknown storage_location %q", v)
		}
		f.StorageLocation = s
	}
	if v := qs.Get("in_stock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, p, fmt.Errorf("in_stock must be a boolean")
		}
		f.InStock = &b
	}
	var err error
	if f.MinQuantity, err = optionalInt(qs, "min_quantity"); err != nil {
		return f, p, err
	}
	if f.MaxDaysUntilExpiry, err = optionalInt(qs, "max_days_until_expiry"); err != nil {
		return f, p, err
	}
	if v := qs.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, p, fmt.Errorf("page must be an integer")
		}
		p.Page = n
	}
	if v := qs.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n > 100 {
			return f, p, fmt.Errorf("page_size must be an integer <= 100")
		}
		p.PageSize = n
	}
	return f, p, nil
}

func optionalInt(qs url.Values, key string) (*int, error) {
	v := qs.Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &n, nil
}
