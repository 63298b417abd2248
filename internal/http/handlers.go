package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/autosave"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/catalog"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/config"
	httpopenapi "github.com/fairyhunter13/food-waste-inventory-service/internal/http/openapi"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/prediction"
)

// Predictor forwards prediction requests to the prediction API.
type Predictor interface {
	Predict(ctx context.Context, req model.PredictionRequest) (model.PredictionResponse, error)
	PredictRestaurant(ctx context.Context, req model.RestaurantPredictionRequest) (model.PredictionResponse, error)
	Health(ctx context.Context) (prediction.HealthStatus, error)
}

type App struct {
	Cfg       config.Config
	Catalog   *catalog.Catalog
	Predictor Predictor
	Weather   *prediction.Weather
	Drafts    *autosave.Autosaver

	validate *prediction.Validator
	closing  atomic.Bool
	started  time.Time
}

func NewApp(cfg config.Config, cat *catalog.Catalog, pred Predictor, weather *prediction.Weather, drafts *autosave.Autosaver) *App {
	return &App{
		Cfg:       cfg,
		Catalog:   cat,
		Predictor: pred,
		Weather:   weather,
		Drafts:    drafts,
		validate:  prediction.NewValidator(),
		started:   time.Now(),
	}
}

// StartShutdown makes write endpoints answer 503.
func (a *App) StartShutdown() {
	a.closing.Store(true)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON enforces a JSON content type and rejects unknown fields.
// It writes the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	m := map[string]any{
		"catalog":    a.Catalog.Stats(),
		"autosave":   a.Drafts.Metrics(),
		"uptime_sec": time.Since(a.started).Seconds(),
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Food Waste Inventory API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
