package server

import (
	"errors"
	"net/http"

	"github.com/NextSpark-js/nextspark-sub000/internal"
	"github.com/NextSpark-js/nextspark-sub000/pkg/models"
	"github.com/google/uuid"
)

const traceIDHeader = "X-Trace-Id"

var log = internal.GetLogger()

// ClassifyHandler returns a handler for POST requests to /api/v1/classify.
// The response is always a classification envelope, even when the router
// degraded to the clarification fallback.
func ClassifyHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.ClassifyRequest
		if err := decodeJSON(r, &request); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}

		// assign a trace ID so callers can correlate the span with this
		// response
		if request.Principal != nil && request.Principal.TraceID == "" {
			request.Principal.TraceID = uuid.New().String()
		}
		if request.Principal != nil {
			w.Header().Set(traceIDHeader, request.Principal.TraceID)
		}

		result, err := appState.Router.Classify(r.Context(), &request)
		if err != nil {
			if errors.Is(err, models.ErrEmptyInput) {
				renderError(w, err, http.StatusBadRequest)
				return
			}
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		if err := encodeJSON(w, result); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetToolsHandler returns a handler for GET requests to /api/v1/tools.
// It lists the configured tool catalog and system intents.
func GetToolsHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response := models.ToolCatalogResponse{
			Tools:         appState.Orchestrator.Tools,
			SystemIntents: appState.Orchestrator.SystemIntentsOrDefault(),
		}
		if err := encodeJSON(w, response); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
