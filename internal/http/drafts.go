package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/autosave"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/obs"
)

type draftAck struct {
	Status     string `json:"status"`
	RequestID  string `json:"request_id"`
	FormID     string `json:"form_id"`
	Sequence   uint64 `json:"sequence"`
	ReceivedAt string `json:"received_at"`
	Pending    int    `json:"pending"`
}

func (a *App) draftHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		a.putDraft(w, r)
	case http.MethodGet:
		a.getDraft(w, r)
	default:
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
	}
}

func (a *App) putDraft(w http.ResponseWriter, r *http.Request) {
	if a.closing.Load() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	id := r.PathValue("id")
	var fields map[string]any
	if !decodeJSON(w, r, &fields) {
		return
	}
	d, err := a.Drafts.Save(id, fields)
	if errors.Is(err, autosave.ErrClosed) {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	ac := draftAck{
		Status:     "accepted",
		RequestID:  RequestIDFromContext(r.Context()),
		FormID:     id,
		Sequence:   d.Sequence,
		ReceivedAt: d.SavedAt.Format(time.RFC3339),
		Pending:    a.Drafts.Metrics().Pending,
	}
	writeJSON(w, http.StatusAccepted, ac)
	obs.Logger.Infow("draft_accepted",
		"request_id", ac.RequestID,
		"form_id", ac.FormID,
		"sequence", ac.Sequence,
		"pending", ac.Pending,
	)
}

func (a *App) getDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := a.Drafts.Get(r.PathValue("id"))
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, d)
}
