package httpapi

import (
	"expvar"
	"net/http"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/inventory", app.listInventoryHandler)
	mux.HandleFunc("/inventory/search", app.searchHandler)
	mux.HandleFunc("/inventory/categories", app.categoriesHandler)
	mux.HandleFunc("/inventory/storage-locations", app.storageLocationsHandler)
	mux.HandleFunc("/inventory/refresh", app.refreshHandler)
	mux.HandleFunc("/inventory/{id}", app.getItemHandler)
	mux.HandleFunc("/inventory/{id}/prediction", app.itemPredictionHandler)
	mux.HandleFunc("/predictions", app.predictHandler)
	mux.HandleFunc("/predictions/restaurant", app.predictRestaurantHandler)
	mux.HandleFunc("/predictions/health", app.predictionHealthHandler)
	mux.HandleFunc("/estimates", app.estimateHandler)
	mux.HandleFunc("/weather", app.weatherHandler)
	mux.HandleFunc("/drafts/{id}", app.draftHandler)
	mux.HandleFunc("/healthz", app.healthHandler)
	mux.HandleFunc("/debug/metrics", app.metricsHandler)
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/openapi.yaml", app.openapiHandler)
	mux.HandleFunc("/docs", app.docsHandler)
	return WithRequestID(WithLogging(mux))
}
